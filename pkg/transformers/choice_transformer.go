// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"
)

// ChoiceTransformer validates the field is one of the configured choices.
type ChoiceTransformer struct {
	choices []string
	reason  string
}

var choiceParams = []Parameter{
	{
		Name:          "choices",
		SupportedType: "array",
		Required:      true,
	},
}

var errChoicesEmpty = errors.New("choice: choices must not be empty")

func NewChoiceTransformer(params Parameters) (*ChoiceTransformer, error) {
	if err := ValidateParameters(params, []string{"choices"}); err != nil {
		return nil, err
	}

	choices, found, err := FindParameterArray[string](params, "choices")
	if err != nil {
		return nil, fmt.Errorf("choice: choices must be an array of strings: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("choice: %w: choices", ErrRequiredParameter)
	}
	if len(choices) == 0 {
		return nil, errChoicesEmpty
	}

	return &ChoiceTransformer{
		choices: choices,
		reason:  fmt.Sprintf("not in valid choices %q", choices),
	}, nil
}

func (t *ChoiceTransformer) Transform(_ context.Context, v Value) Outcome {
	if !slices.Contains(t.choices, v.FieldValue) {
		return Failed(v, t.reason)
	}
	return Present(v.FieldValue)
}

func (t *ChoiceTransformer) Type() TransformerType {
	return Choice
}

func (t *ChoiceTransformer) Parameters() Parameters {
	choices := make([]any, 0, len(t.choices))
	for _, c := range t.choices {
		choices = append(choices, c)
	}
	return Parameters{
		"choices": choices,
	}
}

func ChoiceTransformerDefinition() *Definition {
	return &Definition{
		Parameters: choiceParams,
	}
}
