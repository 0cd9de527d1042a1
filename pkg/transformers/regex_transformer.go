// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"fmt"
	"regexp"
)

// RegexTransformer replaces a matching field with the configured template,
// expanded with the pattern capture groups ($1, ${name}). Fields that don't
// match the pattern fail the transformation.
type RegexTransformer struct {
	pattern  *regexp.Regexp
	template string
}

var regexParams = []Parameter{
	{
		Name:          "pattern",
		SupportedType: "string",
		Required:      true,
	},
	{
		Name:          "template",
		SupportedType: "string",
		Required:      true,
	},
}

func NewRegexTransformer(params Parameters) (*RegexTransformer, error) {
	if err := ValidateParameters(params, []string{"pattern", "template"}); err != nil {
		return nil, err
	}

	regex, err := compilePatternParameter(params, Regex)
	if err != nil {
		return nil, err
	}

	template, err := findRequiredParameter[string](params, "template")
	if err != nil {
		return nil, fmt.Errorf("regex: template must be a string: %w", err)
	}

	return &RegexTransformer{
		pattern:  regex,
		template: template,
	}, nil
}

func (t *RegexTransformer) Transform(_ context.Context, v Value) Outcome {
	match := t.pattern.FindStringSubmatchIndex(v.FieldValue)
	if match == nil {
		return Failed(v, "did not match pattern "+t.pattern.String())
	}
	expanded := t.pattern.ExpandString(nil, t.template, v.FieldValue, match)
	return Present(string(expanded))
}

func (t *RegexTransformer) Type() TransformerType {
	return Regex
}

func (t *RegexTransformer) Parameters() Parameters {
	return Parameters{
		"pattern":  t.pattern.String(),
		"template": t.template,
	}
}

func RegexTransformerDefinition() *Definition {
	return &Definition{
		Parameters: regexParams,
	}
}

// RegexMatchTransformer keeps the field unchanged when it matches the pattern
// (or doesn't, when negated) and fails the transformation otherwise.
type RegexMatchTransformer struct {
	pattern *regexp.Regexp
	negate  bool
}

var regexMatchParams = []Parameter{
	{
		Name:          "pattern",
		SupportedType: "string",
		Required:      true,
	},
	{
		Name:          "negate",
		SupportedType: "boolean",
		Default:       false,
		Required:      false,
	},
}

func NewRegexMatchTransformer(params Parameters) (*RegexMatchTransformer, error) {
	if err := ValidateParameters(params, []string{"pattern", "negate"}); err != nil {
		return nil, err
	}

	regex, err := compilePatternParameter(params, RegexMatch)
	if err != nil {
		return nil, err
	}

	negate, err := FindParameterWithDefault(params, "negate", false)
	if err != nil {
		return nil, fmt.Errorf("regex_match: negate must be a boolean: %w", err)
	}

	return &RegexMatchTransformer{
		pattern: regex,
		negate:  negate,
	}, nil
}

func (t *RegexMatchTransformer) Transform(_ context.Context, v Value) Outcome {
	if t.pattern.MatchString(v.FieldValue) != t.negate {
		return Present(v.FieldValue)
	}
	if t.negate {
		return Failed(v, "matched exclusionary pattern "+t.pattern.String())
	}
	return Failed(v, "did not match pattern "+t.pattern.String())
}

func (t *RegexMatchTransformer) Type() TransformerType {
	return RegexMatch
}

func (t *RegexMatchTransformer) Parameters() Parameters {
	return Parameters{
		"pattern": t.pattern.String(),
		"negate":  t.negate,
	}
}

func RegexMatchTransformerDefinition() *Definition {
	return &Definition{
		Parameters: regexMatchParams,
	}
}

func compilePatternParameter(params Parameters, name TransformerType) (*regexp.Regexp, error) {
	pattern, err := findRequiredParameter[string](params, "pattern")
	if err != nil {
		return nil, fmt.Errorf("%s: pattern must be a string: %w", name, err)
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid pattern %q: %v: %w", name, pattern, err, ErrInvalidParameters)
	}
	return regex, nil
}
