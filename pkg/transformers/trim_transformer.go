// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"strings"
)

// TrimTransformer strips leading and trailing white space from the field.
type TrimTransformer struct{}

func NewTrimTransformer(params Parameters) (*TrimTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &TrimTransformer{}, nil
}

func (t *TrimTransformer) Transform(_ context.Context, v Value) Outcome {
	return Present(strings.TrimSpace(v.FieldValue))
}

func (t *TrimTransformer) Type() TransformerType {
	return Trim
}

func (t *TrimTransformer) Parameters() Parameters {
	return Parameters{}
}

func TrimTransformerDefinition() *Definition {
	return &Definition{}
}
