// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/xataio/csvsanity/pkg/transformers"
)

// Config is the rules document. Default rules are added unless explicitly
// disabled.
type Config struct {
	DefaultRules *bool        `yaml:"default_rules,omitempty" mapstructure:"default_rules"`
	Rules        []RuleConfig `yaml:"rules" mapstructure:"rules"`
}

type RuleConfig struct {
	Applicability ApplicabilityConfig `yaml:"applicability" mapstructure:"applicability"`
	Transformer   TransformerConfig   `yaml:"transformer" mapstructure:"transformer"`
	Priority      int                 `yaml:"priority,omitempty" mapstructure:"priority"`
}

type ApplicabilityConfig struct {
	Global bool     `yaml:"global,omitempty" mapstructure:"global"`
	Fields []string `yaml:"fields,omitempty,flow" mapstructure:"fields"`
}

type TransformerConfig struct {
	Name       string         `yaml:"name" mapstructure:"name"`
	Parameters map[string]any `yaml:"parameters,omitempty" mapstructure:"parameters"`
}

type transformerBuilder interface {
	New(*transformers.Config) (transformers.Transformer, error)
}

var (
	ErrInvalidApplicability = errors.New("applicability must be either global or a non empty list of fields")
	errMissingTransformer   = errors.New("missing transformer name")
)

func (c *Config) HasNoRules() bool {
	return c == nil || len(c.Rules) == 0
}

func (c *Config) defaultRulesEnabled() bool {
	return c.DefaultRules == nil || *c.DefaultRules
}

// ReadRulesFile reads a YAML (or JSON) rules document.
func ReadRulesFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules from file: %w", err)
	}
	defer f.Close()

	return ReadRules(f)
}

func ReadRules(r io.Reader) (*Config, error) {
	raw := map[string]any{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unmarshaling yaml into rules: %w", err)
	}
	return DecodeConfig(raw)
}

// DecodeConfig decodes a generic rules document, as produced by the yaml or
// viper decoders, rejecting unknown keys.
func DecodeConfig(raw map[string]any) (*Config, error) {
	cfg := &Config{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decoding rules: %w", err)
	}
	return cfg, nil
}

// NewRulesetFromConfig builds a ruleset from the rules document, using the
// builder on input for the rule transformers. All the invalid rules are
// reported at once.
func NewRulesetFromConfig(cfg *Config, b transformerBuilder, opts ...Option) (*Ruleset, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if !cfg.defaultRulesEnabled() {
		opts = append(opts, WithoutDefaultRules())
	}
	r := New(opts...)

	var errs []error
	for i, ruleCfg := range cfg.Rules {
		rule, err := ruleCfg.toRule(b)
		if err != nil {
			errs = append(errs, fmt.Errorf("rule %d: %w", i+1, err))
			continue
		}
		r.AddRule(rule)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *RuleConfig) toRule(b transformerBuilder) (Rule, error) {
	applicability, err := c.Applicability.toApplicability()
	if err != nil {
		return Rule{}, err
	}

	if c.Transformer.Name == "" {
		return Rule{}, errMissingTransformer
	}

	t, err := b.New(&transformers.Config{
		Name:       transformers.TransformerType(c.Transformer.Name),
		Parameters: c.Transformer.Parameters,
	})
	if err != nil {
		return Rule{}, err
	}

	return Rule{
		Applicability: applicability,
		Transformer:   t,
		Priority:      c.Priority,
	}, nil
}

func (c *ApplicabilityConfig) toApplicability() (Applicability, error) {
	switch {
	case c.Global && len(c.Fields) == 0:
		return Global(), nil
	case !c.Global && len(c.Fields) > 0:
		return Fields(c.Fields...), nil
	default:
		return Applicability{}, ErrInvalidApplicability
	}
}

// Config returns the rules document describing the ruleset. Default rules are
// listed explicitly, so the document can be loaded back into an equal
// ruleset.
func (r *Ruleset) Config() *Config {
	defaultRules := false
	cfg := &Config{
		DefaultRules: &defaultRules,
		Rules:        make([]RuleConfig, 0, len(r.rules)),
	}
	for _, rule := range r.rules {
		params := rule.Transformer.Parameters()
		if len(params) == 0 {
			params = nil
		}
		cfg.Rules = append(cfg.Rules, RuleConfig{
			Applicability: ApplicabilityConfig{
				Global: rule.Applicability.IsGlobal(),
				Fields: rule.Applicability.FieldNames(),
			},
			Transformer: TransformerConfig{
				Name:       string(rule.Transformer.Type()),
				Parameters: params,
			},
			Priority: rule.Priority,
		})
	}
	return cfg
}

// Dump writes the ruleset rules document as YAML.
func (r *Ruleset) Dump(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(r.Config()); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return encoder.Close()
}
