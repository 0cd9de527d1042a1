// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"regexp"
	"strings"
)

// ZipcodeTransformer validates US zip codes, with an optional +4 suffix
// separated by any run of non digits, and normalises them to DDDDD or
// DDDDD-DDDD.
type ZipcodeTransformer struct{}

var zipcodeRegex = regexp.MustCompile(`\A(\d{5})\D*(\d{4})?\z`)

func NewZipcodeTransformer(params Parameters) (*ZipcodeTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &ZipcodeTransformer{}, nil
}

func (t *ZipcodeTransformer) Transform(_ context.Context, v Value) Outcome {
	matches := zipcodeRegex.FindStringSubmatch(strings.TrimSpace(v.FieldValue))
	if matches == nil {
		return Failed(v, "not a valid zipcode")
	}
	if matches[2] == "" {
		return Present(matches[1])
	}
	return Present(matches[1] + "-" + matches[2])
}

func (t *ZipcodeTransformer) Type() TransformerType {
	return Zipcode
}

func (t *ZipcodeTransformer) Parameters() Parameters {
	return Parameters{}
}

func ZipcodeTransformerDefinition() *Definition {
	return &Definition{}
}
