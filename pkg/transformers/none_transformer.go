// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"fmt"
	"regexp"
)

// BlankPattern matches values made only of control, separator and white
// space characters, including the empty string.
const BlankPattern = `\A[\p{Cc}\p{Z}\s]*\z`

// NoneTransformer excludes the field when it matches the configured pattern,
// leaving it unchanged otherwise.
type NoneTransformer struct {
	pattern *regexp.Regexp
}

var noneParams = []Parameter{
	{
		Name:          "pattern",
		SupportedType: "string",
		Default:       BlankPattern,
		Required:      false,
	},
}

func NewNoneTransformer(params Parameters) (*NoneTransformer, error) {
	if err := ValidateParameters(params, []string{"pattern"}); err != nil {
		return nil, err
	}

	pattern, err := FindParameterWithDefault(params, "pattern", BlankPattern)
	if err != nil {
		return nil, fmt.Errorf("none: pattern must be a string: %w", err)
	}

	regex, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("none: invalid pattern %q: %w", pattern, ErrInvalidParameters)
	}

	return &NoneTransformer{
		pattern: regex,
	}, nil
}

// NewBlankTransformer returns a NoneTransformer matching blank values.
func NewBlankTransformer() *NoneTransformer {
	return &NoneTransformer{
		pattern: blankRegex,
	}
}

var blankRegex = regexp.MustCompile(BlankPattern)

func (t *NoneTransformer) Transform(_ context.Context, v Value) Outcome {
	if t.pattern.MatchString(v.FieldValue) {
		return Excluded()
	}
	return Present(v.FieldValue)
}

func (t *NoneTransformer) Type() TransformerType {
	return None
}

func (t *NoneTransformer) Parameters() Parameters {
	return Parameters{
		"pattern": t.pattern.String(),
	}
}

func NoneTransformerDefinition() *Definition {
	return &Definition{
		Parameters: noneParams,
	}
}
