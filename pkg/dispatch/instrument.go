package dispatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/flightsim-go/simconnect/pkg/metrics"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
)

// ActiveRequest tracks one in-flight request-layer operation's metrics
// and tracing span from issue to completion. Every request-layer service
// (sysstate, simobject, event, facility) opens one via StartRequest right
// after allocating its RequestId and closes it with Finish on whatever
// path the request concludes: response received, explicit cancellation,
// or a send error.
type ActiveRequest struct {
	kind    string
	started time.Time
	metrics metrics.ClientMetrics
	span    trace.Span
	done    bool
}

// StartRequest records the start of a request: increments the in-flight
// gauge for kind (if m is non-nil) and opens a tracing span named
// spanName, tagged with kind, reqID, and any extra attributes. m may be
// the nil value of metrics.ClientMetrics; the returned ActiveRequest
// handles that transparently.
func StartRequest(m metrics.ClientMetrics, spanName, kind string, reqID uint32, attrs ...attribute.KeyValue) *ActiveRequest {
	if m != nil {
		m.RecordRequestStart(kind)
	}
	_, span := telemetry.StartRequestSpan(context.Background(), spanName, kind, reqID, attrs...)
	return &ActiveRequest{kind: kind, started: time.Now(), metrics: m, span: span}
}

// Finish records outcome ("ok", "cancelled", or "error") on the request's
// metrics and ends its span. Safe to call on a nil *ActiveRequest, and
// safe to call more than once: only the first call has any effect, so
// callers on both the response path and the cancellation path can call
// Finish unconditionally without coordinating who got there first.
func (a *ActiveRequest) Finish(outcome string) {
	if a == nil || a.done {
		return
	}
	a.done = true
	if a.metrics != nil {
		a.metrics.RecordRequestEnd(a.kind, time.Since(a.started), outcome)
	}
	if outcome != "ok" {
		a.span.SetStatus(codes.Error, outcome)
	}
	a.span.End()
}
