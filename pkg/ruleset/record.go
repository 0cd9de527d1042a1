// SPDX-License-Identifier: Apache-2.0

package ruleset

import "github.com/xataio/csvsanity/pkg/transformers"

// TransformedRecord is the result of applying a ruleset to a record. It
// holds one value per processed field, in column order, where nil denotes
// an omitted field, along with the errors found while transforming it.
type TransformedRecord struct {
	FieldValues []*string
	Errors      []transformers.TransformError
}

// Values returns the field values padded to n columns, with omitted and
// missing fields as empty strings.
func (r *TransformedRecord) Values(n int) []string {
	values := make([]string, max(n, len(r.FieldValues)))
	for i, v := range r.FieldValues {
		if v != nil {
			values[i] = *v
		}
	}
	return values
}
