// SPDX-License-Identifier: Apache-2.0

package otel

import "context"

type InstrumentationProvider interface {
	NewInstrumentation(name string) *Instrumentation
	Close() error
}

type noopProvider struct{}

func (p *noopProvider) NewInstrumentation(name string) *Instrumentation {
	return nil
}

func (p *noopProvider) Close() error {
	return nil
}

// NewInstrumentationProvider returns an OTLP provider for the configured
// signals, or a noop provider with instrumentation disabled when neither
// metrics nor traces are configured.
func NewInstrumentationProvider(ctx context.Context, cfg *Config) (InstrumentationProvider, error) {
	if cfg == nil || !cfg.IsEnabled() {
		return &noopProvider{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewProvider(ctx, cfg)
}
