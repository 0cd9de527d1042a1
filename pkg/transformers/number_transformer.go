// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"regexp"
	"strings"
)

// NumberTransformer validates the field is an integer without leading zeros.
type NumberTransformer struct{}

var integerRegex = regexp.MustCompile(`\A(?:0|[1-9]\d*)\z`)

func NewNumberTransformer(params Parameters) (*NumberTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &NumberTransformer{}, nil
}

func (t *NumberTransformer) Transform(_ context.Context, v Value) Outcome {
	number := strings.TrimSpace(v.FieldValue)
	if !integerRegex.MatchString(number) {
		return Failed(v, "not a valid number")
	}
	return Present(number)
}

func (t *NumberTransformer) Type() TransformerType {
	return Number
}

func (t *NumberTransformer) Parameters() Parameters {
	return Parameters{}
}

func NumberTransformerDefinition() *Definition {
	return &Definition{}
}
