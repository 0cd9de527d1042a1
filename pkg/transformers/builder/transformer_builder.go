// SPDX-License-Identifier: Apache-2.0

package builder

import (
	"fmt"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/transformers"
	"github.com/xataio/csvsanity/pkg/transformers/instrumentation"
)

type TransformerBuilder struct {
	instrumentation *otel.Instrumentation
}

type Option func(b *TransformerBuilder)

func NewTransformerBuilder(opts ...Option) *TransformerBuilder {
	b := &TransformerBuilder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// WithInstrumentation wraps every transformer built with an instrumented
// transformer reporting latency, outcomes and spans.
func WithInstrumentation(i *otel.Instrumentation) Option {
	return func(b *TransformerBuilder) {
		b.instrumentation = i
	}
}

type buildFn func(params transformers.Parameters) (transformers.Transformer, error)

var TransformersMap = map[transformers.TransformerType]struct {
	Definition *transformers.Definition
	BuildFn    buildFn
}{
	transformers.Trim: {
		Definition: transformers.TrimTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewTrimTransformer(params)
		},
	},
	transformers.None: {
		Definition: transformers.NoneTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewNoneTransformer(params)
		},
	},
	transformers.Regex: {
		Definition: transformers.RegexTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewRegexTransformer(params)
		},
	},
	transformers.RegexMatch: {
		Definition: transformers.RegexMatchTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewRegexMatchTransformer(params)
		},
	},
	transformers.Capitalize: {
		Definition: transformers.CapitalizeTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewCapitalizeTransformer(params)
		},
	},
	transformers.Email: {
		Definition: transformers.EmailTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewEmailTransformer(params)
		},
	},
	transformers.Number: {
		Definition: transformers.NumberTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewNumberTransformer(params)
		},
	},
	transformers.Date: {
		Definition: transformers.DateTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewDateTransformer(params)
		},
	},
	transformers.Choice: {
		Definition: transformers.ChoiceTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewChoiceTransformer(params)
		},
	},
	transformers.Zipcode: {
		Definition: transformers.ZipcodeTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewZipcodeTransformer(params)
		},
	},
	transformers.PhoneNumber: {
		Definition: transformers.PhoneNumberTransformerDefinition(),
		BuildFn: func(params transformers.Parameters) (transformers.Transformer, error) {
			return transformers.NewPhoneNumberTransformer(params)
		},
	},
}

func (b *TransformerBuilder) New(cfg *transformers.Config) (transformers.Transformer, error) {
	transformer, ok := TransformersMap[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: unexpected transformer name '%s'", transformers.ErrUnsupportedTransformer, cfg.Name)
	}

	if err := transformers.ValidateParameters(cfg.Parameters, transformer.Definition.ParameterNames()); err != nil {
		return nil, err
	}

	t, err := transformer.BuildFn(cfg.Parameters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Name, err)
	}

	if b.instrumentation.IsEnabled() {
		return instrumentation.NewTransformer(t, b.instrumentation)
	}
	return t, nil
}
