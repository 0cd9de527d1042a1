// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/sanitizer"
)

func envConfigToSanitizerConfig() (*sanitizer.Config, error) {
	doubleQuote := true
	if viper.IsSet("CSVSANITY_INPUT_DOUBLE_QUOTE") {
		doubleQuote = viper.GetBool("CSVSANITY_INPUT_DOUBLE_QUOTE")
	}

	inputOpts, err := parseTableOptions(
		viper.GetString("CSVSANITY_INPUT_DELIMITER"),
		viper.GetString("CSVSANITY_INPUT_QUOTE"),
		viper.GetString("CSVSANITY_INPUT_ESCAPE"),
		viper.GetString("CSVSANITY_INPUT_TERMINATOR"),
		doubleQuote,
	)
	if err != nil {
		return nil, fmt.Errorf("parsing input config: %w", err)
	}

	outputOpts, err := parseWriterOptions(
		viper.GetString("CSVSANITY_OUTPUT_DELIMITER"),
		viper.GetBool("CSVSANITY_OUTPUT_USE_CRLF"),
	)
	if err != nil {
		return nil, fmt.Errorf("parsing output config: %w", err)
	}

	return &sanitizer.Config{
		Input: sanitizer.InputConfig{
			Path:  viper.GetString("CSVSANITY_INPUT_PATH"),
			Table: inputOpts,
		},
		Output: sanitizer.OutputConfig{
			Path:       valueOrDefault(viper.GetString("CSVSANITY_OUTPUT_PATH"), sanitizer.DefaultOutputPath),
			ErrorsPath: valueOrDefault(viper.GetString("CSVSANITY_OUTPUT_ERRORS_PATH"), sanitizer.DefaultErrorsPath),
			Table:      outputOpts,
			Progress:   viper.GetBool("CSVSANITY_OUTPUT_PROGRESS"),
		},
	}, nil
}

func envToOtelConfig() (*otel.Config, error) {
	cfg := &otel.Config{}
	if endpoint := viper.GetString("CSVSANITY_METRICS_ENDPOINT"); endpoint != "" {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           endpoint,
			CollectionInterval: viper.GetDuration("CSVSANITY_METRICS_COLLECTION_INTERVAL"),
		}
	}
	if endpoint := viper.GetString("CSVSANITY_TRACES_ENDPOINT"); endpoint != "" {
		sampleRatio := viper.GetFloat64("CSVSANITY_TRACES_SAMPLE_RATIO")
		if sampleRatio < 0 || sampleRatio > 1 {
			return nil, errInvalidSampleRatio
		}
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    endpoint,
			SampleRatio: sampleRatio,
		}
	}
	return cfg, nil
}
