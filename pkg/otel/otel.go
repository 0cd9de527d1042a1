// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation is the meter and tracer handed to an instrumented
// component. A nil instrumentation disables instrumentation.
type Instrumentation struct {
	Meter  metric.Meter
	Tracer trace.Tracer
}

// Attribute keys shared by the csvsanity spans and metrics.
const (
	FileKey            = attribute.Key("csvsanity.file")
	TransformerTypeKey = attribute.Key("csvsanity.transformer_type")
	OutcomeKey         = attribute.Key("csvsanity.outcome")
	RecordsKey         = attribute.Key("csvsanity.records")
	FailedRecordsKey   = attribute.Key("csvsanity.failed_records")
)

func (i *Instrumentation) IsEnabled() bool {
	return i != nil && (i.Meter != nil || i.Tracer != nil)
}

// TracerOrNil returns the instrumentation tracer, or nil when the
// instrumentation is nil.
func (i *Instrumentation) TracerOrNil() trace.Tracer {
	if i == nil {
		return nil
	}
	return i.Tracer
}

// StartSpan starts a span with the tracer on input. A nil tracer returns the
// context unchanged and a nil span.
func StartSpan(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, nil
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// EndSpan sets the attributes on input, records err when not nil and ends the
// span. A nil span is ignored.
func EndSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil {
		return
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
