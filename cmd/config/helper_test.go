// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/sanitizer"
	"github.com/xataio/csvsanity/pkg/table"
)

func boolPtr(b bool) *bool {
	return &b
}

func testRulesConfig() ruleset.Config {
	return ruleset.Config{
		DefaultRules: boolPtr(false),
		Rules: []ruleset.RuleConfig{
			{
				Applicability: ruleset.ApplicabilityConfig{Fields: []string{"name"}},
				Transformer:   ruleset.TransformerConfig{Name: "capitalize"},
			},
			{
				Applicability: ruleset.ApplicabilityConfig{Global: true},
				Transformer:   ruleset.TransformerConfig{Name: "trim"},
				Priority:      -10,
			},
		},
	}
}

func validateTestSanitizerConfig(t *testing.T, cfg *sanitizer.Config) {
	want := &sanitizer.Config{
		Input: sanitizer.InputConfig{
			Path: "customers.csv",
			Table: table.Options{
				Delimiter:   ';',
				Quote:       '\'',
				Escape:      '\\',
				DoubleQuote: false,
				Terminator:  0,
			},
		},
		Output: sanitizer.OutputConfig{
			Path:       "clean.csv",
			ErrorsPath: "rejected.csv",
			Table: table.WriterOptions{
				Delimiter: '\t',
				UseCRLF:   true,
			},
			Progress: true,
		},
		Rules: testRulesConfig(),
	}
	require.Empty(t, cmp.Diff(want, cfg))
}

func validateTestOtelConfig(t *testing.T, otelConfig *otel.Config) {
	require.Equal(t, &otel.Config{
		Metrics: &otel.MetricsConfig{
			Endpoint:           "http://localhost:4317",
			CollectionInterval: 60 * time.Second,
		},
		Traces: &otel.TracesConfig{
			Endpoint:    "http://localhost:4317",
			SampleRatio: 0.5,
		},
	}, otelConfig)
}
