// Package tracing wraps each HTTP call in an OpenTelemetry client span and
// propagates W3C trace context through request headers.
package tracing

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/Goden-Gun/httpcall-lib"
	// TraceIDHeader mirrors the trace id for backends that do not parse traceparent.
	TraceIDHeader = "X-Trace-Id"
)

var propagator = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})

// Tracer returns the library tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// StartCall opens a client span for one HTTP call.
func StartCall(ctx context.Context, method, url string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", url),
		),
	)
}

// Inject writes the trace context of ctx into h.
func Inject(ctx context.Context, h http.Header) {
	if h == nil {
		return
	}
	propagator.Inject(ctx, propagation.HeaderCarrier(h))
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		h.Set(TraceIDHeader, sc.TraceID().String())
	}
}

// Extract returns ctx enriched with the trace context carried by h.
func Extract(ctx context.Context, h http.Header) context.Context {
	if h == nil {
		return ctx
	}
	return propagator.Extract(ctx, propagation.HeaderCarrier(h))
}

// EndCall records the outcome and ends span. outcome is the classification
// name, status the HTTP status (0 when no response arrived).
func EndCall(span trace.Span, outcome string, status int, err error) {
	if span == nil {
		return
	}
	span.SetAttributes(attribute.String("httpcall.outcome", outcome))
	if status > 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", status))
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
