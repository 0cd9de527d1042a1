// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/sanitizer"
)

const (
	// DefaultRulesFile is the rules file used when no rules are configured.
	DefaultRulesFile = "ruleset.json"

	RulesFileEnv = "CSVSANITY_RULES_FILE"
	LogLevelEnv  = "CSVSANITY_LOG_LEVEL"
)

var errUnsupportedConfigFile = errors.New("unsupported config file extension, expected .yaml, .yml or .env")

func Load() error {
	return LoadFile(viper.GetString("config"))
}

func LoadFile(file string) error {
	if file == "" {
		return nil
	}

	ext := filepath.Ext(file)
	switch ext {
	case ".yml", ".yaml", ".env":
	default:
		return fmt.Errorf("%w: %q", errUnsupportedConfigFile, file)
	}

	viper.SetConfigFile(file)
	viper.SetConfigType(ext[1:])
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func isYAMLConfig() bool {
	switch filepath.Ext(viper.GetViper().ConfigFileUsed()) {
	case ".yml", ".yaml":
		return true
	default:
		return false
	}
}

// ParseSanitizerConfig returns the run configuration, including the rules.
func ParseSanitizerConfig() (*sanitizer.Config, error) {
	var cfg *sanitizer.Config
	var err error
	if isYAMLConfig() {
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, err
		}
		cfg, err = yamlCfg.toSanitizerConfig()
	} else {
		cfg, err = envConfigToSanitizerConfig()
	}
	if err != nil {
		return nil, err
	}

	rules, err := ParseRulesConfig()
	if err != nil {
		return nil, err
	}
	cfg.Rules = *rules
	return cfg, nil
}

func ParseInstrumentationConfig() (*otel.Config, error) {
	if isYAMLConfig() {
		yamlCfg := YAMLConfig{}
		if err := viper.Unmarshal(&yamlCfg); err != nil {
			return nil, err
		}
		return yamlCfg.Instrumentation.toOtelConfig()
	}
	return envToOtelConfig()
}

// ParseRulesConfig returns the rules from the configured rules file. When no
// rules file is set, the rules inlined in the YAML config are used, and
// DefaultRulesFile otherwise.
func ParseRulesConfig() (*ruleset.Config, error) {
	file := RulesFile()
	if file == "" && isYAMLConfig() && (viper.IsSet("rules") || viper.IsSet("default_rules")) {
		raw := map[string]any{}
		for _, key := range []string{"rules", "default_rules"} {
			if viper.IsSet(key) {
				raw[key] = viper.Get(key)
			}
		}
		rules, err := ruleset.DecodeConfig(raw)
		if err != nil {
			return nil, fmt.Errorf("parsing inline rules: %w", err)
		}
		return rules, nil
	}

	if file == "" {
		file = DefaultRulesFile
	}
	return ruleset.ReadRulesFile(file)
}

// RulesFile returns the rules file set by flag, yaml or env configuration, in
// that order.
func RulesFile() string {
	switch {
	case viper.GetString("rules-file") != "":
		// CLI argument
		return viper.GetString("rules-file")
	case viper.GetString("rules_file") != "":
		// yaml config
		return viper.GetString("rules_file")
	default:
		// env config
		return viper.GetString(RulesFileEnv)
	}
}
