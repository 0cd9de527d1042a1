// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"regexp"
	"strings"
)

// EmailTransformer validates the field is an email address and lower cases
// it. Surrounding white space is ignored and removed.
type EmailTransformer struct{}

var emailRegex = regexp.MustCompile("(?i)\\A[a-z0-9!#$%&'*+/=?^_`{|}~-]+(?:\\.[a-z0-9!#$%&'*+/=?^_`{|}~-]+)*@(?:[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\.)+[a-z0-9](?:[a-z0-9-]*[a-z0-9])?\\z")

func NewEmailTransformer(params Parameters) (*EmailTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &EmailTransformer{}, nil
}

func (t *EmailTransformer) Transform(_ context.Context, v Value) Outcome {
	email := strings.TrimSpace(v.FieldValue)
	if !emailRegex.MatchString(email) {
		return Failed(v, "invalid email address")
	}
	return Present(strings.ToLower(email))
}

func (t *EmailTransformer) Type() TransformerType {
	return Email
}

func (t *EmailTransformer) Parameters() Parameters {
	return Parameters{}
}

func EmailTransformerDefinition() *Definition {
	return &Definition{}
}
