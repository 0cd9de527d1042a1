// SPDX-License-Identifier: Apache-2.0

package ruleset

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/exp/slices"

	loglib "github.com/xataio/csvsanity/pkg/log"
	"github.com/xataio/csvsanity/pkg/transformers"
)

// Ruleset is a list of rules sorted by descending priority. Rules with the
// same priority keep their insertion order. A ruleset is read only once
// built and safe for concurrent use.
type Ruleset struct {
	rules         []Rule
	logger        loglib.Logger
	defaultsAdded bool
}

type Option func(*Ruleset)

// DefaultRulesPriority is the priority of the default rules, so that they run
// after any rule with the default priority of 0.
const DefaultRulesPriority = -10

// New returns a ruleset seeded with the default global rules: a blank match
// rule excluding fields made of white space and control characters, followed
// by a trim rule.
func New(opts ...Option) *Ruleset {
	r := &Ruleset{
		logger:        loglib.NewNoopLogger(),
		defaultsAdded: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.defaultsAdded {
		r.AddRule(NewGlobalRule(transformers.NewBlankTransformer(), DefaultRulesPriority))
		r.AddRule(NewGlobalRule(&transformers.TrimTransformer{}, DefaultRulesPriority))
	}
	return r
}

func WithoutDefaultRules() Option {
	return func(r *Ruleset) {
		r.defaultsAdded = false
	}
}

func WithLogger(l loglib.Logger) Option {
	return func(r *Ruleset) {
		r.logger = loglib.WithModule(l, "ruleset")
	}
}

// AddRule inserts the rule after all the rules with a higher or equal
// priority.
func (r *Ruleset) AddRule(rule Rule) {
	i := slices.IndexFunc(r.rules, func(existing Rule) bool {
		return existing.Priority < rule.Priority
	})
	if i < 0 {
		i = len(r.rules)
	}
	r.rules = slices.Insert(r.rules, i, rule)
}

// Rules returns a copy of the rules in the order they are applied.
func (r *Ruleset) Rules() []Rule {
	return slices.Clone(r.rules)
}

func (r *Ruleset) Len() int {
	return len(r.rules)
}

// ApplyRules applies the ruleset to every field of the record. Fields beyond
// the number of headers are reported as errors and left out of the field
// values. Records with fewer fields than headers only get their present
// fields processed.
func (r *Ruleset) ApplyRules(ctx context.Context, headers, fields []string, recordNumber int) TransformedRecord {
	record := TransformedRecord{
		FieldValues: make([]*string, 0, min(len(fields), len(headers))),
	}

	for i, value := range fields {
		if i >= len(headers) {
			record.Errors = append(record.Errors, transformers.TransformError{
				RecordNumber: recordNumber,
				FieldName:    strconv.Itoa(i),
				FieldValue:   value,
				Reason:       fmt.Sprintf("found %d header fields but record had extra field at position %d", len(headers), i),
			})
			continue
		}

		transformed, transformErr := r.applyToField(ctx, value, headers[i], recordNumber)
		if transformErr != nil {
			r.logger.Debug("field transformation failed", loglib.Fields{
				loglib.RecordNumberField: recordNumber,
				loglib.FieldNameField:    headers[i],
				"reason":                 transformErr.Reason,
			})
			record.Errors = append(record.Errors, *transformErr)
		}
		record.FieldValues = append(record.FieldValues, transformed)
	}

	return record
}

// applyToField runs the rule chain on a single field. The chain stops as
// soon as the field is excluded, either explicitly or by a failed
// transformation, in which case the field is omitted and the error returned.
func (r *Ruleset) applyToField(ctx context.Context, value, fieldName string, recordNumber int) (*string, *transformers.TransformError) {
	current := value
	for _, rule := range r.rules {
		outcome := rule.Apply(ctx, current, fieldName, recordNumber)
		if outcome.IsFailed() {
			transformErr := *outcome.Err()
			// errors report the field as read from the input
			transformErr.FieldValue = value
			return nil, &transformErr
		}

		v, present := outcome.Value()
		if !present {
			return nil, nil
		}
		current = v
	}
	return &current, nil
}

// ValidateRules makes sure all the fields referenced by the rules are part of
// the headers. All the rules are checked, and a ValidationErrors with one
// error per offending rule is returned.
func (r *Ruleset) ValidateRules(headers []string) error {
	headerSet := make(map[string]struct{}, len(headers))
	for _, h := range headers {
		headerSet[h] = struct{}{}
	}

	var errs ValidationErrors
	for _, rule := range r.rules {
		if rule.Applicability.IsGlobal() {
			continue
		}
		if missing := rule.Applicability.missingFields(headerSet); len(missing) > 0 {
			errs = append(errs, &ValidationError{MissingFields: missing})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
