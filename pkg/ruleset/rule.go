// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"context"

	"github.com/google/go-cmp/cmp"
	"github.com/xataio/csvsanity/pkg/transformers"
)

// Rule binds a transformer to the fields it applies to, along with a
// priority. Rules with a higher priority are applied first.
type Rule struct {
	Applicability Applicability
	Transformer   transformers.Transformer
	Priority      int
}

func NewGlobalRule(t transformers.Transformer, priority int) Rule {
	return Rule{
		Applicability: Global(),
		Transformer:   t,
		Priority:      priority,
	}
}

func NewFieldsRule(fieldNames []string, t transformers.Transformer, priority int) Rule {
	return Rule{
		Applicability: Fields(fieldNames...),
		Transformer:   t,
		Priority:      priority,
	}
}

// Apply applies the rule transformer to the field value if the rule applies
// to the field. Otherwise the value is returned unchanged.
func (r Rule) Apply(ctx context.Context, value, fieldName string, recordNumber int) transformers.Outcome {
	if !r.Applicability.Applies(fieldName) {
		return transformers.Present(value)
	}
	return r.Transformer.Transform(ctx, transformers.Value{
		FieldValue:   value,
		FieldName:    fieldName,
		RecordNumber: recordNumber,
	})
}

// Equal compares rules structurally: applicability, priority, transformer
// type and transformer parameters.
func (r Rule) Equal(other Rule) bool {
	return r.Priority == other.Priority &&
		r.Applicability.Equal(other.Applicability) &&
		r.Transformer.Type() == other.Transformer.Type() &&
		cmp.Equal(r.Transformer.Parameters(), other.Transformer.Parameters())
}
