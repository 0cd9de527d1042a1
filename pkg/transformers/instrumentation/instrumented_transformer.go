// SPDX-License-Identifier: Apache-2.0

package instrumentation

import (
	"context"
	"fmt"
	"time"

	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/transformers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Transformer struct {
	inner   transformers.Transformer
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *metrics
}

type metrics struct {
	transformLatency metric.Int64Histogram
	transformOutcome metric.Int64Counter
}

func NewTransformer(t transformers.Transformer, instrumentation *otel.Instrumentation) (transformers.Transformer, error) {
	if instrumentation == nil {
		return t, nil
	}

	transformer := &Transformer{
		inner:   t,
		tracer:  instrumentation.Tracer,
		meter:   instrumentation.Meter,
		metrics: &metrics{},
	}

	if err := transformer.initMetrics(); err != nil {
		return nil, fmt.Errorf("initialising transformer metrics: %w", err)
	}

	return transformer, nil
}

func (i *Transformer) Transform(ctx context.Context, v transformers.Value) (out transformers.Outcome) {
	ctx, span := otel.StartSpan(ctx, i.tracer, "transformer.Transform", i.typeAttribute())
	defer func() {
		var err error
		if transformErr := out.Err(); transformErr != nil {
			err = transformErr
		}
		otel.EndSpan(span, err, outcomeAttribute(out))
	}()

	if i.meter != nil {
		startTime := time.Now()
		defer func() {
			i.metrics.transformLatency.Record(ctx, time.Since(startTime).Microseconds(), metric.WithAttributes(i.typeAttribute()))
			i.metrics.transformOutcome.Add(ctx, 1, metric.WithAttributes(i.typeAttribute(), outcomeAttribute(out)))
		}()
	}
	return i.inner.Transform(ctx, v)
}

func (i *Transformer) Type() transformers.TransformerType {
	return i.inner.Type()
}

func (i *Transformer) Parameters() transformers.Parameters {
	return i.inner.Parameters()
}

func (i *Transformer) initMetrics() error {
	if i.meter == nil {
		return nil
	}

	var err error
	i.metrics.transformLatency, err = i.meter.Int64Histogram("csvsanity.transformer.latency",
		metric.WithUnit("us"),
		metric.WithDescription("Distribution of the time taken to transform a field value"))
	if err != nil {
		return err
	}

	i.metrics.transformOutcome, err = i.meter.Int64Counter("csvsanity.transformer.outcomes",
		metric.WithUnit("{outcome}"),
		metric.WithDescription("Count of transformation outcomes by type"))
	if err != nil {
		return err
	}

	return nil
}

func (i *Transformer) typeAttribute() attribute.KeyValue {
	return otel.TransformerTypeKey.String(string(i.inner.Type()))
}

func outcomeAttribute(o transformers.Outcome) attribute.KeyValue {
	switch {
	case o.IsFailed():
		return otel.OutcomeKey.String("failed")
	case o.IsExcluded():
		return otel.OutcomeKey.String("excluded")
	default:
		return otel.OutcomeKey.String("present")
	}
}
