// SPDX-License-Identifier: Apache-2.0

package otel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestSpans(t *testing.T) {
	t.Parallel()

	errTest := errors.New("oh noes")

	tests := []struct {
		name string
		err  error

		wantStatus codes.Code
		wantEvents int
	}{
		{
			name:       "ok",
			wantStatus: codes.Unset,
		},
		{
			name:       "error",
			err:        errTest,
			wantStatus: codes.Error,
			wantEvents: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			recorder := tracetest.NewSpanRecorder()
			tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
			instrumentation := &Instrumentation{Tracer: tp.Tracer("test")}

			_, span := StartSpan(context.Background(), instrumentation.TracerOrNil(), "test.Span", FileKey.String("in.csv"))
			EndSpan(span, tc.err, RecordsKey.Int(3))

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			require.Equal(t, "test.Span", spans[0].Name())
			require.ElementsMatch(t, spans[0].Attributes(), []attribute.KeyValue{FileKey.String("in.csv"), RecordsKey.Int(3)})
			require.Equal(t, tc.wantStatus, spans[0].Status().Code)
			require.Len(t, spans[0].Events(), tc.wantEvents)
		})
	}
}

func TestSpans_disabled(t *testing.T) {
	t.Parallel()

	var instrumentation *Instrumentation
	require.False(t, instrumentation.IsEnabled())
	require.Nil(t, instrumentation.TracerOrNil())

	ctx := context.Background()
	gotCtx, span := StartSpan(ctx, instrumentation.TracerOrNil(), "test.Span")
	require.Equal(t, ctx, gotCtx)
	require.Nil(t, span)
	EndSpan(span, errors.New("ignored"))
}

func TestProvider_Close(t *testing.T) {
	t.Parallel()

	errFirst := errors.New("first")
	errSecond := errors.New("second")

	calls := []string{}
	p := &Provider{
		shutdownFns: []func(context.Context) error{
			func(context.Context) error { calls = append(calls, "meter"); return errFirst },
			func(context.Context) error { calls = append(calls, "tracer"); return errSecond },
		},
	}

	err := p.Close()
	require.ErrorIs(t, err, errFirst)
	require.ErrorIs(t, err, errSecond)
	require.Equal(t, []string{"tracer", "meter"}, calls)

	require.NoError(t, p.Close())
}
