// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/transformers/builder"
)

const maxConcurrentValidations = 8

// Validate builds the configured rules and checks them against the headers of
// every input file. Invalid rules and headers are reported on the returned
// status, the error is only set when the validation could not complete.
func Validate(ctx context.Context, config *Config, inputs ...string) (*RulesStatus, error) {
	if config == nil {
		return nil, errors.New("sanitizer validate: config cannot be nil")
	}

	status := &RulesStatus{Valid: true}
	rules, err := ruleset.NewRulesetFromConfig(&config.Rules, builder.NewTransformerBuilder())
	if err != nil {
		status.Valid = false
		status.Errors = errorMessages(err)
		return status, nil
	}

	if err := config.Input.Table.Validate(); err != nil {
		status.Valid = false
		status.Errors = []string{err.Error()}
		return status, nil
	}

	status.Files = make([]*FileRulesStatus, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentValidations)
	for i, input := range inputs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			status.Files[i] = validateFile(rules, config, input)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	for _, f := range status.Files {
		if !f.Valid {
			status.Valid = false
		}
	}
	return status, nil
}

func validateFile(rules *ruleset.Ruleset, config *Config, path string) *FileRulesStatus {
	status := &FileRulesStatus{Path: path, Valid: true}
	headers, err := readFileHeaders(path, config.Input.Table)
	if err != nil {
		status.Valid = false
		status.Errors = []string{err.Error()}
		return status
	}
	if err := rules.ValidateRules(headers); err != nil {
		status.Valid = false
		status.Errors = errorMessages(err)
	}
	return status
}

// errorMessages returns one message per validation error, or per rule error
// when the ruleset could not be built. Other errors keep a single message.
func errorMessages(err error) []string {
	var validationErrs ruleset.ValidationErrors
	if errors.As(err, &validationErrs) {
		msgs := make([]string, 0, len(validationErrs))
		for _, e := range validationErrs {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		msgs := make([]string, 0, len(errs))
		for _, e := range errs {
			msgs = append(msgs, e.Error())
		}
		return msgs
	}
	return []string{err.Error()}
}
