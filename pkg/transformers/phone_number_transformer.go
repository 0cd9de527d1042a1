// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"regexp"
	"strings"
)

// PhoneNumberTransformer validates North American Numbering Plan phone
// numbers and normalises them to "+1 AAA EEE SSSS". Separators, parentheses
// around the area code and a leading 1 or +1 country code are accepted.
type PhoneNumberTransformer struct{}

var nanpRegex = regexp.MustCompile(`\A(?:\+?1)?\D*\(?(?P<area>\d{3})\)?\D*(?P<exchange>\d{3})\D*(?P<subscriber>\d{4})\z`)

var (
	areaIndex       = nanpRegex.SubexpIndex("area")
	exchangeIndex   = nanpRegex.SubexpIndex("exchange")
	subscriberIndex = nanpRegex.SubexpIndex("subscriber")
)

func NewPhoneNumberTransformer(params Parameters) (*PhoneNumberTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &PhoneNumberTransformer{}, nil
}

func (t *PhoneNumberTransformer) Transform(_ context.Context, v Value) Outcome {
	matches := nanpRegex.FindStringSubmatch(strings.TrimSpace(v.FieldValue))
	if matches == nil {
		return Failed(v, "not a valid NANP format phone number")
	}
	return Present("+1 " + matches[areaIndex] + " " + matches[exchangeIndex] + " " + matches[subscriberIndex])
}

func (t *PhoneNumberTransformer) Type() TransformerType {
	return PhoneNumber
}

func (t *PhoneNumberTransformer) Parameters() Parameters {
	return Parameters{}
}

func PhoneNumberTransformerDefinition() *Definition {
	return &Definition{}
}
