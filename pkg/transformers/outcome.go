// SPDX-License-Identifier: Apache-2.0

package transformers

import "fmt"

type outcomeKind uint8

const (
	outcomePresent outcomeKind = iota
	outcomeExcluded
	outcomeFailed
)

// Outcome is the result of applying a transformer to a field. It is exactly
// one of present (with a value), excluded (the field is omitted) or failed
// (with a transform error).
type Outcome struct {
	kind  outcomeKind
	value string
	err   *TransformError
}

func Present(value string) Outcome {
	return Outcome{kind: outcomePresent, value: value}
}

func Excluded() Outcome {
	return Outcome{kind: outcomeExcluded}
}

// Failed builds a failed outcome for the value on input. The reason should be
// a short lower case sentence without trailing punctuation, e.g. "not a valid
// zipcode".
func Failed(v Value, reason string) Outcome {
	return Outcome{
		kind: outcomeFailed,
		err: &TransformError{
			RecordNumber: v.RecordNumber,
			FieldName:    v.FieldName,
			FieldValue:   v.FieldValue,
			Reason:       reason,
		},
	}
}

func (o Outcome) IsPresent() bool  { return o.kind == outcomePresent }
func (o Outcome) IsExcluded() bool { return o.kind == outcomeExcluded }
func (o Outcome) IsFailed() bool   { return o.kind == outcomeFailed }

// Value returns the transformed value. It is only meaningful for present
// outcomes.
func (o Outcome) Value() (string, bool) {
	if o.kind != outcomePresent {
		return "", false
	}
	return o.value, true
}

// Err returns the transform error of a failed outcome, nil otherwise.
func (o Outcome) Err() *TransformError {
	if o.kind != outcomeFailed {
		return nil
	}
	return o.err
}

func (o Outcome) String() string {
	switch o.kind {
	case outcomePresent:
		return fmt.Sprintf("present(%q)", o.value)
	case outcomeExcluded:
		return "excluded"
	default:
		return fmt.Sprintf("failed(%s)", o.err.Reason)
	}
}

// TransformError describes a failed field transformation. FieldValue holds the
// field value as read from the input.
type TransformError struct {
	RecordNumber int    `json:"record_number"`
	FieldName    string `json:"field_name"`
	FieldValue   string `json:"field_value"`
	Reason       string `json:"reason"`
}

func (e TransformError) Error() string {
	return "failed to transform field: " + e.Reason
}
