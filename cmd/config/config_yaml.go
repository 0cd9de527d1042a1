// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/sanitizer"
	"github.com/xataio/csvsanity/pkg/table"
)

// YAMLConfig is the layout of the YAML configuration file. Rules can also be
// inlined at the top level, with the same layout as a rules file, and are
// parsed separately by ParseRulesConfig.
type YAMLConfig struct {
	Input           InputConfig           `mapstructure:"input" yaml:"input"`
	Output          OutputConfig          `mapstructure:"output" yaml:"output"`
	Instrumentation InstrumentationConfig `mapstructure:"instrumentation" yaml:"instrumentation"`
	RulesFile       string                `mapstructure:"rules_file" yaml:"rules_file"`
}

type InputConfig struct {
	Path        string `mapstructure:"path" yaml:"path"`
	Delimiter   string `mapstructure:"delimiter" yaml:"delimiter"`
	Quote       string `mapstructure:"quote" yaml:"quote"`
	Escape      string `mapstructure:"escape" yaml:"escape"`
	DoubleQuote *bool  `mapstructure:"double_quote" yaml:"double_quote"`
	Terminator  string `mapstructure:"terminator" yaml:"terminator"`
}

type OutputConfig struct {
	Path       string `mapstructure:"path" yaml:"path"`
	ErrorsPath string `mapstructure:"errors_path" yaml:"errors_path"`
	Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
	UseCRLF    bool   `mapstructure:"use_crlf" yaml:"use_crlf"`
	Progress   bool   `mapstructure:"progress" yaml:"progress"`
}

type InstrumentationConfig struct {
	Metrics *MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Traces  *TracesConfig  `mapstructure:"traces" yaml:"traces"`
}

type MetricsConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	// CollectionInterval is in seconds
	CollectionInterval int `mapstructure:"collection_interval" yaml:"collection_interval"`
}

type TracesConfig struct {
	Endpoint    string  `mapstructure:"endpoint" yaml:"endpoint"`
	SampleRatio float64 `mapstructure:"sample_ratio" yaml:"sample_ratio"`
}

var errInvalidSampleRatio = errors.New("sample_ratio must be between 0.0 and 1.0")

func (c *YAMLConfig) toSanitizerConfig() (*sanitizer.Config, error) {
	inputOpts, err := c.Input.parseTableOptions()
	if err != nil {
		return nil, fmt.Errorf("parsing input config: %w", err)
	}
	outputOpts, err := c.Output.parseWriterOptions()
	if err != nil {
		return nil, fmt.Errorf("parsing output config: %w", err)
	}

	return &sanitizer.Config{
		Input: sanitizer.InputConfig{
			Path:  c.Input.Path,
			Table: inputOpts,
		},
		Output: sanitizer.OutputConfig{
			Path:       valueOrDefault(c.Output.Path, sanitizer.DefaultOutputPath),
			ErrorsPath: valueOrDefault(c.Output.ErrorsPath, sanitizer.DefaultErrorsPath),
			Table:      outputOpts,
			Progress:   c.Output.Progress,
		},
	}, nil
}

func (c *InputConfig) parseTableOptions() (table.Options, error) {
	doubleQuote := true
	if c.DoubleQuote != nil {
		doubleQuote = *c.DoubleQuote
	}
	return parseTableOptions(c.Delimiter, c.Quote, c.Escape, c.Terminator, doubleQuote)
}

func (c *OutputConfig) parseWriterOptions() (table.WriterOptions, error) {
	return parseWriterOptions(c.Delimiter, c.UseCRLF)
}

func (c *InstrumentationConfig) toOtelConfig() (*otel.Config, error) {
	cfg := &otel.Config{}
	if c.Metrics != nil {
		cfg.Metrics = &otel.MetricsConfig{
			Endpoint:           c.Metrics.Endpoint,
			CollectionInterval: time.Duration(c.Metrics.CollectionInterval) * time.Second,
		}
	}
	if c.Traces != nil {
		if c.Traces.SampleRatio < 0 || c.Traces.SampleRatio > 1 {
			return nil, errInvalidSampleRatio
		}
		cfg.Traces = &otel.TracesConfig{
			Endpoint:    c.Traces.Endpoint,
			SampleRatio: c.Traces.SampleRatio,
		}
	}
	return cfg, nil
}

func parseTableOptions(delimiter, quote, escape, terminator string, doubleQuote bool) (table.Options, error) {
	opts := table.DefaultOptions()
	opts.DoubleQuote = doubleQuote

	var err error
	if opts.Delimiter, err = parseCharacterOrDefault(delimiter, opts.Delimiter); err != nil {
		return table.Options{}, fmt.Errorf("delimiter: %w", err)
	}
	if opts.Quote, err = parseCharacterOrDefault(quote, opts.Quote); err != nil {
		return table.Options{}, fmt.Errorf("quote: %w", err)
	}
	if opts.Escape, err = table.ParseCharacter(escape); err != nil {
		return table.Options{}, fmt.Errorf("escape: %w", err)
	}
	if opts.Terminator, err = table.ParseTerminator(terminator); err != nil {
		return table.Options{}, fmt.Errorf("terminator: %w", err)
	}
	return opts, nil
}

func parseWriterOptions(delimiter string, useCRLF bool) (table.WriterOptions, error) {
	opts := table.DefaultWriterOptions()
	opts.UseCRLF = useCRLF

	var err error
	if opts.Delimiter, err = parseCharacterOrDefault(delimiter, opts.Delimiter); err != nil {
		return table.WriterOptions{}, fmt.Errorf("delimiter: %w", err)
	}
	return opts, nil
}

func parseCharacterOrDefault(s string, defaultChar rune) (rune, error) {
	r, err := table.ParseCharacter(s)
	if err != nil {
		return 0, err
	}
	if r == 0 {
		return defaultChar, nil
	}
	return r, nil
}

func valueOrDefault(v, defaultValue string) string {
	if v == "" {
		return defaultValue
	}
	return v
}
