package transport

// RawHost is the L0 boundary: the set of primitives the simulator exposes
// through its client DLL. It is consumed, never implemented, by this
// module's own code outside of fake — a real build binds it to the host
// SDK; tests bind it to fake.Host.
//
// RawHost never interprets application-level semantics (no retries, no
// id allocation, no handler dispatch): every method is a thin, blocking
// call across the host boundary, returning an error for any non-success
// result. Higher layers (pkg/connection, pkg/dispatch, the per-module
// request services) are responsible for everything above this line.
type RawHost interface {
	// Open establishes a session and returns its Handle. Fails with a
	// simerr.BadConfig-classified error when the host rejects the named
	// configuration section at opts.ConfigIndex.
	Open(opts OpenOptions) (Handle, error)

	// Close tears down a session. Idempotent from the caller's point of
	// view: pkg/connection guards against calling it twice, but RawHost
	// implementations should not themselves panic if asked to.
	Close(h Handle) error

	// GetNextDispatch pulls at most one frame from the session's receive
	// queue. ok is false when the queue is currently empty; it is not an
	// error.
	GetNextDispatch(h Handle) (frame Frame, ok bool, err error)

	// CallDispatch is the push-style variant: cb is invoked once per
	// frame currently queued, in arrival order, before CallDispatch
	// returns.
	CallDispatch(h Handle, cb func(Frame)) error

	// SubscribeSystemEvent / UnsubscribeSystemEvent bind an EventId to a
	// named system event (e.g. "Sim", "Pause", "6Hz").
	SubscribeSystemEvent(h Handle, eventID uint32, name string) error
	UnsubscribeSystemEvent(h Handle, eventID uint32) error

	// AddToDataDefinition appends one field to a data definition. datumID
	// is either an auto-assigned sequential tag (tagged mode) or the
	// host's "unused" sentinel (untagged mode) — see the data definition
	// open question in DESIGN.md.
	AddToDataDefinition(h Handle, defID uint32, name, units string, dataType DataType, epsilon float32, datumID uint32) error

	// RequestSystemState issues a named system-state query correlated by
	// reqID.
	RequestSystemState(h Handle, reqID uint32, name string) error

	// RequestDataOnSimObject issues a (possibly repeating) data request
	// against one sim object, correlated by reqID.
	RequestDataOnSimObject(h Handle, reqID, defID, objID uint32, period Period, flags, origin, interval, limit uint32) error

	// RequestDataByType issues a bulk, radius-scoped data request across
	// every sim object of objType, correlated by reqID.
	RequestDataByType(h Handle, reqID, defID uint32, radiusMeters uint32, objType SimObjectType) error

	// MapClientEventToSimEvent binds a client-side EventId to a named
	// simulator action.
	MapClientEventToSimEvent(h Handle, eventID uint32, name string) error

	// TransmitClientEvent sends a mapped event, optionally targeted at a
	// specific sim object; groupOrPriority is either a NotificationGroupId
	// or a raw priority value when the "group-id-is-priority" flag is set
	// in flags.
	TransmitClientEvent(h Handle, objID, eventID, groupOrPriority, flags uint32, data ClientEventData) error

	// AddClientEventToNotificationGroup adds eventID to groupID; maskable
	// controls whether other applications still see the event once this
	// client has consumed it.
	AddClientEventToNotificationGroup(h Handle, groupID, eventID uint32, maskable bool) error

	// SetNotificationGroupPriority assigns or changes a group's priority.
	SetNotificationGroupPriority(h Handle, groupID, priority uint32) error

	// RemoveClientEventFromNotificationGroup removes eventID's membership
	// in groupID without affecting the event's client-id-to-name mapping.
	RemoveClientEventFromNotificationGroup(h Handle, groupID, eventID uint32) error

	// ClearNotificationGroup removes every event from groupID, leaving the
	// group itself (and its priority) intact.
	ClearNotificationGroup(h Handle, groupID uint32) error

	// ListFacilities requests an enumeration of the given facility type,
	// correlated by reqID and bounded by scope.
	ListFacilities(h Handle, reqID uint32, scope FacilityScope, listType FacilityListType) error

	// RequestFacilityData requests the structured, nested facility record
	// for one named facility (identified by ICAO code and region).
	RequestFacilityData(h Handle, defID, reqID uint32, icao, region string) error
}
