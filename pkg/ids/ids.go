// Package ids provides the process-wide, monotonically increasing id
// allocators the client uses to correlate outbound requests, data
// definitions, client events, and notification groups with their inbound
// responses. Each id kind is allocated from its own counter; ids are never
// reused within a connection's lifetime, and an id issued against one
// definition is never reused for a different definition.
package ids

import "sync/atomic"

// Allocator issues strictly increasing, process-wide unique ids for a
// single id kind. The zero value is ready to use and starts at 1 (0 is
// reserved so callers can treat it as "unset").
type Allocator struct {
	counter atomic.Uint32
}

// Next returns the next id in the sequence. Safe for concurrent use.
func (a *Allocator) Next() uint32 {
	return a.counter.Add(1)
}

// Current reports the most recently issued id, or 0 if none has been
// issued yet.
func (a *Allocator) Current() uint32 {
	return a.counter.Load()
}

var (
	requests     Allocator
	definitions  Allocator
	events       Allocator
	groups       Allocator
)

// NextRequestID allocates a RequestId: correlates an outgoing request with
// one or more inbound responses.
func NextRequestID() uint32 { return requests.Next() }

// NextDefinitionID allocates a DefinitionId: names a registered data
// definition for sim-objects or facilities.
func NextDefinitionID() uint32 { return definitions.Next() }

// NextEventID allocates an EventId: names a client event, unique within
// the process for the client-side id <-> name binding.
func NextEventID() uint32 { return events.Next() }

// NextGroupID allocates a NotificationGroupId: names a notification group
// used to collect events under a shared priority.
func NextGroupID() uint32 { return groups.Next() }
