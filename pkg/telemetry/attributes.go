package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys for client operations.
const (
	AttrRequestID    = "simconnect.request_id"
	AttrRequestKind  = "simconnect.request_kind" // sysstate, simobject, event, facility
	AttrMessageType  = "simconnect.message_type"
	AttrObjectID     = "simconnect.object_id"
	AttrDefinitionID = "simconnect.definition_id"
	AttrEventID      = "simconnect.event_id"
	AttrEventName    = "simconnect.event_name"
	AttrICAO         = "simconnect.icao"
	AttrException    = "simconnect.exception_code"
	AttrGeneration   = "simconnect.generation" // legacy, current
)

// Span names for client operations.
const (
	SpanDispatch        = "simconnect.dispatch"
	SpanRequestSysState = "simconnect.request.sysstate"
	SpanRequestSimObj   = "simconnect.request.simobject"
	SpanRequestEvent    = "simconnect.request.event"
	SpanRequestFacility = "simconnect.request.facility"
)

// RequestID returns an attribute for a request ID.
func RequestID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrRequestID, int64(id))
}

// RequestKind returns an attribute for a request's domain ("sysstate", "simobject", "event", "facility").
func RequestKind(kind string) attribute.KeyValue {
	return attribute.String(AttrRequestKind, kind)
}

// MessageType returns an attribute for a received message type name.
func MessageType(name string) attribute.KeyValue {
	return attribute.String(AttrMessageType, name)
}

// ObjectID returns an attribute for a SimObject ID.
func ObjectID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrObjectID, int64(id))
}

// DefinitionID returns an attribute for a data definition ID.
func DefinitionID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrDefinitionID, int64(id))
}

// EventID returns an attribute for a client event ID.
func EventID(id uint32) attribute.KeyValue {
	return attribute.Int64(AttrEventID, int64(id))
}

// EventName returns an attribute for a named client event.
func EventName(name string) attribute.KeyValue {
	return attribute.String(AttrEventName, name)
}

// ICAO returns an attribute for an airport/facility ICAO identifier.
func ICAO(code string) attribute.KeyValue {
	return attribute.String(AttrICAO, code)
}

// ExceptionCode returns an attribute for a host exception code.
func ExceptionCode(code uint32) attribute.KeyValue {
	return attribute.Int64(AttrException, int64(code))
}

// Generation returns an attribute for the facility-data token generation.
func Generation(gen string) attribute.KeyValue {
	return attribute.String(AttrGeneration, gen)
}

// StartRequestSpan starts a span for a request-layer operation, tagging
// it with its kind and request ID.
func StartRequestSpan(ctx context.Context, spanName, kind string, reqID uint32, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{
		RequestKind(kind),
		RequestID(reqID),
	}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, spanName, trace.WithAttributes(allAttrs...))
}

// StartDispatchSpan starts a span for a single dispatch poll.
func StartDispatchSpan(ctx context.Context) (context.Context, trace.Span) {
	return StartSpan(ctx, SpanDispatch)
}
