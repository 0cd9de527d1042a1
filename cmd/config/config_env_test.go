// SPDX-License-Identifier: Apache-2.0

package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func Test_EnvConfigToSanitizerConfig(t *testing.T) {
	viper.Reset()
	require.NoError(t, LoadFile("test/test_config.env"))
	require.Equal(t, `\`, viper.GetString("CSVSANITY_INPUT_ESCAPE"))
	require.Equal(t, `\t`, viper.GetString("CSVSANITY_OUTPUT_DELIMITER"))

	cfg, err := ParseSanitizerConfig()
	require.NoError(t, err)
	validateTestSanitizerConfig(t, cfg)

	otelConfig, err := ParseInstrumentationConfig()
	require.NoError(t, err)
	validateTestOtelConfig(t, otelConfig)
}

func Test_EnvVarsToSanitizerConfig(t *testing.T) {
	viper.Reset()
	viper.AutomaticEnv()

	t.Setenv("CSVSANITY_INPUT_PATH", "customers.csv")
	t.Setenv("CSVSANITY_INPUT_DELIMITER", ";")
	t.Setenv("CSVSANITY_INPUT_QUOTE", "'")
	t.Setenv("CSVSANITY_INPUT_ESCAPE", `\`)
	t.Setenv("CSVSANITY_INPUT_DOUBLE_QUOTE", "false")
	t.Setenv("CSVSANITY_INPUT_TERMINATOR", "crlf")
	t.Setenv("CSVSANITY_OUTPUT_PATH", "clean.csv")
	t.Setenv("CSVSANITY_OUTPUT_ERRORS_PATH", "rejected.csv")
	t.Setenv("CSVSANITY_OUTPUT_DELIMITER", `\t`)
	t.Setenv("CSVSANITY_OUTPUT_USE_CRLF", "true")
	t.Setenv("CSVSANITY_OUTPUT_PROGRESS", "true")
	t.Setenv("CSVSANITY_METRICS_ENDPOINT", "http://localhost:4317")
	t.Setenv("CSVSANITY_METRICS_COLLECTION_INTERVAL", "60s")
	t.Setenv("CSVSANITY_TRACES_ENDPOINT", "http://localhost:4317")
	t.Setenv("CSVSANITY_TRACES_SAMPLE_RATIO", "0.5")
	t.Setenv("CSVSANITY_RULES_FILE", "test/test_rules.yaml")

	cfg, err := ParseSanitizerConfig()
	require.NoError(t, err)
	validateTestSanitizerConfig(t, cfg)

	otelConfig, err := ParseInstrumentationConfig()
	require.NoError(t, err)
	validateTestOtelConfig(t, otelConfig)
}

func Test_EnvToOtelConfig_invalidSampleRatio(t *testing.T) {
	viper.Reset()
	viper.Set("CSVSANITY_TRACES_ENDPOINT", "http://localhost:4317")
	viper.Set("CSVSANITY_TRACES_SAMPLE_RATIO", 2)

	_, err := envToOtelConfig()
	require.ErrorIs(t, err, errInvalidSampleRatio)
}

func TestLoadFile_unsupportedExtension(t *testing.T) {
	viper.Reset()
	require.ErrorIs(t, LoadFile("test/config.toml"), errUnsupportedConfigFile)
}

func TestParseRulesConfig_missingDefaultFile(t *testing.T) {
	viper.Reset()

	t.Chdir(t.TempDir())
	_, err := ParseRulesConfig()
	require.Error(t, err)
}
