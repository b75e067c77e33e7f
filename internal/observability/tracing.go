package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Tracer returns the tracer service operations wrap their work in. Span
// export is wired by the deployment (OTEL_* env vars picked up by a
// collector sidecar); when nothing is configured the global provider is a
// no-op and spans cost almost nothing.
func Tracer(service string) trace.Tracer {
	return otel.Tracer(service)
}
