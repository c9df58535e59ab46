// Package fake implements transport.RawHost entirely in memory, for tests
// that exercise the dispatch/connection/request layers without a running
// simulator. It records every call it receives and lets a test inject
// frames directly onto a session's receive queue.
package fake

import (
	"sync"

	"github.com/flightsim-go/simconnect/pkg/simerr"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// session holds per-Handle state: the client name, the receive queue and
// whether the session is open. The config indices this fake was told to
// reject are recorded on Host, not here.
type session struct {
	mu    sync.Mutex
	name  string
	queue []transport.Frame
	open  bool
}

// Host is an in-memory transport.RawHost. The zero value is not usable;
// construct with New.
type Host struct {
	mu            sync.Mutex
	nextHandle    transport.Handle
	sessions      map[transport.Handle]*session
	rejectConfigs map[uint32]bool

	// Calls records every method invocation, in order, for assertions.
	Calls []Call
}

// Call records one RawHost invocation for test assertions.
type Call struct {
	Method string
	Args   []any
}

// New returns an empty fake Host.
func New() *Host {
	return &Host{
		sessions:      make(map[transport.Handle]*session),
		rejectConfigs: make(map[uint32]bool),
	}
}

// RejectConfigIndex makes a future Open with this ConfigIndex fail with a
// BadConfig error, as the host does for an invalid configuration section.
func (h *Host) RejectConfigIndex(idx uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rejectConfigs[idx] = true
}

func (h *Host) record(method string, args ...any) {
	h.mu.Lock()
	h.Calls = append(h.Calls, Call{Method: method, Args: args})
	h.mu.Unlock()
}

func (h *Host) Open(opts transport.OpenOptions) (transport.Handle, error) {
	h.record("Open", opts)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rejectConfigs[opts.ConfigIndex] {
		return 0, simerr.New(simerr.BadConfig, opts.Name).WithFieldIndex(int(opts.ConfigIndex))
	}

	h.nextHandle++
	handle := h.nextHandle
	h.sessions[handle] = &session{name: opts.Name, open: true}
	return handle, nil
}

func (h *Host) Close(handle transport.Handle) error {
	h.record("Close", handle)

	h.mu.Lock()
	s, ok := h.sessions[handle]
	h.mu.Unlock()
	if !ok {
		return simerr.New(simerr.TransportFailure, "close on unknown handle")
	}

	s.mu.Lock()
	s.open = false
	s.mu.Unlock()
	return nil
}

// InjectFrame appends a frame to handle's receive queue, as if it had
// arrived from the simulator. Tests use this to drive dispatch/connection
// behavior deterministically.
func (h *Host) InjectFrame(handle transport.Handle, frame transport.Frame) {
	h.mu.Lock()
	s := h.sessions[handle]
	h.mu.Unlock()
	if s == nil {
		return
	}
	s.mu.Lock()
	s.queue = append(s.queue, frame)
	s.mu.Unlock()
}

func (h *Host) GetNextDispatch(handle transport.Handle) (transport.Frame, bool, error) {
	h.mu.Lock()
	s, ok := h.sessions[handle]
	h.mu.Unlock()
	if !ok {
		return transport.Frame{}, false, simerr.New(simerr.TransportFailure, "get_next_dispatch on unknown handle")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return transport.Frame{}, false, nil
	}
	frame := s.queue[0]
	s.queue = s.queue[1:]
	return frame, true, nil
}

func (h *Host) CallDispatch(handle transport.Handle, cb func(transport.Frame)) error {
	h.mu.Lock()
	s, ok := h.sessions[handle]
	h.mu.Unlock()
	if !ok {
		return simerr.New(simerr.TransportFailure, "call_dispatch on unknown handle")
	}

	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, frame := range pending {
		cb(frame)
	}
	return nil
}

func (h *Host) SubscribeSystemEvent(handle transport.Handle, eventID uint32, name string) error {
	h.record("SubscribeSystemEvent", handle, eventID, name)
	return nil
}

func (h *Host) UnsubscribeSystemEvent(handle transport.Handle, eventID uint32) error {
	h.record("UnsubscribeSystemEvent", handle, eventID)
	return nil
}

func (h *Host) AddToDataDefinition(handle transport.Handle, defID uint32, name, units string, dataType transport.DataType, epsilon float32, datumID uint32) error {
	h.record("AddToDataDefinition", handle, defID, name, units, dataType, epsilon, datumID)
	return nil
}

func (h *Host) RequestSystemState(handle transport.Handle, reqID uint32, name string) error {
	h.record("RequestSystemState", handle, reqID, name)
	return nil
}

func (h *Host) RequestDataOnSimObject(handle transport.Handle, reqID, defID, objID uint32, period transport.Period, flags, origin, interval, limit uint32) error {
	h.record("RequestDataOnSimObject", handle, reqID, defID, objID, period, flags, origin, interval, limit)
	return nil
}

func (h *Host) RequestDataByType(handle transport.Handle, reqID, defID uint32, radiusMeters uint32, objType transport.SimObjectType) error {
	h.record("RequestDataByType", handle, reqID, defID, radiusMeters, objType)
	return nil
}

func (h *Host) MapClientEventToSimEvent(handle transport.Handle, eventID uint32, name string) error {
	h.record("MapClientEventToSimEvent", handle, eventID, name)
	return nil
}

func (h *Host) TransmitClientEvent(handle transport.Handle, objID, eventID, groupOrPriority, flags uint32, data transport.ClientEventData) error {
	h.record("TransmitClientEvent", handle, objID, eventID, groupOrPriority, flags, data)
	return nil
}

func (h *Host) AddClientEventToNotificationGroup(handle transport.Handle, groupID, eventID uint32, maskable bool) error {
	h.record("AddClientEventToNotificationGroup", handle, groupID, eventID, maskable)
	return nil
}

func (h *Host) SetNotificationGroupPriority(handle transport.Handle, groupID, priority uint32) error {
	h.record("SetNotificationGroupPriority", handle, groupID, priority)
	return nil
}

func (h *Host) RemoveClientEventFromNotificationGroup(handle transport.Handle, groupID, eventID uint32) error {
	h.record("RemoveClientEventFromNotificationGroup", handle, groupID, eventID)
	return nil
}

func (h *Host) ClearNotificationGroup(handle transport.Handle, groupID uint32) error {
	h.record("ClearNotificationGroup", handle, groupID)
	return nil
}

func (h *Host) ListFacilities(handle transport.Handle, reqID uint32, scope transport.FacilityScope, listType transport.FacilityListType) error {
	h.record("ListFacilities", handle, reqID, scope, listType)
	return nil
}

func (h *Host) RequestFacilityData(handle transport.Handle, defID, reqID uint32, icao, region string) error {
	h.record("RequestFacilityData", handle, defID, reqID, icao, region)
	return nil
}

var _ transport.RawHost = (*Host)(nil)
