package metrics

import "time"

// ClientMetrics provides observability for the client's dispatch loop,
// request lifecycle, and connection health.
//
// Implementations should be safe to call on a nil receiver, so callers
// can pass nil to disable collection with zero overhead:
//
//	m := prometheus.NewClientMetrics() // nil if metrics.IsEnabled() is false
//	conn, err := connection.Open(host, "MyClient", 0)
//	conn.SetMetrics(m)
type ClientMetrics interface {
	// RecordDispatch records one CallDispatch poll, whether or not it
	// delivered a message.
	RecordDispatch(duration time.Duration, delivered bool)

	// RecordMessage records one message pulled off the wire, tagged by
	// its message type name (e.g. "SIMOBJECT_DATA", "EVENT", "EXCEPTION").
	RecordMessage(messageType string)

	// RecordRequestStart increments the in-flight request gauge for a
	// request kind ("sysstate", "simobject", "event", "facility").
	RecordRequestStart(kind string)

	// RecordRequestEnd records a completed request: its kind, total
	// duration from issue to first (or final) callback, and outcome
	// ("ok", "cancelled", "exception").
	RecordRequestEnd(kind string, duration time.Duration, outcome string)

	// RecordException records a host exception frame by its numeric
	// exception code.
	RecordException(code uint32)

	// SetActiveRequests updates the current in-flight request count
	// across all kinds.
	SetActiveRequests(count int)

	// SetConnectionState updates the connection state gauge. connected
	// is true while the transport session with the host is open.
	SetConnectionState(connected bool)

	// RecordReconnect counts one reconnect attempt, tagged with its
	// outcome ("ok", "error").
	RecordReconnect(outcome string)
}
