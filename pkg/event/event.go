// Package event implements the client-event subsystem: name-to-id
// mapping, notification groups with priority and maskability, transmit,
// and receive.
package event

import (
	"sync"

	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/ids"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// requestKind tags every metric and span this package records.
const requestKind = "event"

// ObjectIDCurrent is the host's sentinel for "the user's own aircraft",
// the default target of a group- or priority-scoped send.
const ObjectIDCurrent uint32 = 0

// Received is the decoded shape of an inbound event frame.
type Received struct {
	GroupID uint32
	EventID uint32
	Data    uint32
}

// Decoder turns a raw transport.Frame carrying an event notification into
// Received.
type Decoder func(transport.Frame) (Received, error)

// Service owns the event catalog, every notification group created
// through it, and the receive-side dispatch table keyed by EventId.
type Service struct {
	conn     *connection.Connection
	catalog  *ids.EventCatalog
	receive  *dispatch.MessageDispatcher[uint32, Received]

	mu     sync.Mutex
	groups map[uint32]*Group
}

// New returns an event service bound to conn, decoding inbound event
// frames of msgType with decode.
func New(conn *connection.Connection, msgType uint32, decode Decoder) *Service {
	s := &Service{
		conn:    conn,
		catalog: ids.NewEventCatalog(),
		receive: dispatch.NewMessageDispatcher[uint32, Received](),
		groups:  make(map[uint32]*Group),
	}
	conn.Dispatcher().OnMessageType(msgType, func(raw transport.Frame) {
		r, err := decode(raw)
		if err != nil {
			logger.Warn("event: decode failed", logger.Err(err))
			return
		}
		s.receive.Dispatch(r.EventID, r)
	})
	return s
}

// Get returns the catalog record for name, allocating a client-side
// EventId on first use. Mapping to the host is a separate, explicit step.
func (s *Service) Get(name string) *ids.EventRecord {
	return s.catalog.Get(name)
}

// MapEvent submits name's client-id-to-name binding to the host.
// Idempotent: a second call for an already-mapped event is a no-op.
func (s *Service) MapEvent(name string) (*ids.EventRecord, error) {
	rec := s.catalog.Get(name)
	if rec.Mapped {
		return rec, nil
	}

	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestEvent, requestKind, rec.ID, telemetry.EventName(name))
	err := s.conn.Do(rec.ID, func(host transport.RawHost, handle transport.Handle) error {
		return host.MapClientEventToSimEvent(handle, rec.ID, rec.Name)
	})
	if err != nil {
		active.Finish("error")
		return rec, err
	}
	active.Finish("ok")
	s.catalog.MarkMapped(rec.ID)
	return rec, nil
}

// On registers cb to run for every inbound notification carrying eventID.
// Multiple callbacks may be registered for the same event; all are
// invoked in registration order (multi-handler receive policy).
func (s *Service) On(eventID uint32, cb func(Received)) uint64 {
	return s.receive.Slot(eventID).Add(cb, false)
}

// Off removes a single receive registration added by On.
func (s *Service) Off(eventID uint32, handlerID uint64) {
	if slot, ok := s.receive.Lookup(eventID); ok {
		slot.Remove(handlerID)
	}
}

// CreateNotificationGroup allocates a fresh, empty, not-yet-created
// group. Select a priority via one of the With* methods before adding the
// first event.
func (s *Service) CreateNotificationGroup() *Group {
	g := &Group{
		id:       ids.NextGroupID(),
		priority: transport.PriorityDefault,
		svc:      s,
	}
	s.mu.Lock()
	s.groups[g.id] = g
	s.mu.Unlock()
	return g
}

// send issues transmit-client-event. groupOrPriority and flags are
// computed by the caller: a group-targeted send passes the
// NotificationGroupId with flags=0; a group-less priority send passes the
// Priority value with transport.EventFlagGroupIDIsPriority set.
func (s *Service) send(objID, eventID, groupOrPriority uint32, flags uint32, data transport.ClientEventData) error {
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestEvent, requestKind, eventID, telemetry.EventID(eventID))
	err := s.conn.Do(eventID, func(host transport.RawHost, handle transport.Handle) error {
		return host.TransmitClientEvent(handle, objID, eventID, groupOrPriority, flags, data)
	})
	if err != nil {
		active.Finish("error")
		return err
	}
	active.Finish("ok")
	return nil
}

// SendEvent transmits event through groupID to the user's own aircraft,
// with the given up-to-five DWORD payload.
func (s *Service) SendEvent(eventID, groupID uint32, data transport.ClientEventData) error {
	return s.send(ObjectIDCurrent, eventID, groupID, 0, data)
}

// SendEventWithPriority transmits event without a group, at the given raw
// priority, to the user's own aircraft.
func (s *Service) SendEventWithPriority(eventID uint32, priority transport.Priority, data transport.ClientEventData) error {
	return s.send(ObjectIDCurrent, eventID, uint32(priority), transport.EventFlagGroupIDIsPriority, data)
}

// SendEventToObject is the object-targeted variant of SendEvent.
func (s *Service) SendEventToObject(eventID, groupID, objID uint32, data transport.ClientEventData) error {
	return s.send(objID, eventID, groupID, 0, data)
}

// SendEventToObjectWithPriority is the object-targeted variant of
// SendEventWithPriority.
func (s *Service) SendEventToObjectWithPriority(eventID uint32, priority transport.Priority, objID uint32, data transport.ClientEventData) error {
	return s.send(objID, eventID, uint32(priority), transport.EventFlagGroupIDIsPriority, data)
}
