package transport

// Handle identifies an open session with the host. It is opaque: callers
// never interpret its bits, only pass it back into RawHost methods.
type Handle uintptr

// OpenOptions carries the parameters of the host's open primitive. Only
// Name is required; WindowHandle/UserMessage/EventHandle are mutually
// exclusive driver hooks supplied by exactly one of the three connection
// open-path specializations.
type OpenOptions struct {
	Name         string
	ConfigIndex  uint32
	WindowHandle uintptr
	UserMessage  uint32
	EventHandle  uintptr
}

// DataType enumerates the field encodings add_to_data_definition accepts.
type DataType int

const (
	DataTypeInt32 DataType = iota
	DataTypeInt64
	DataTypeFloat32
	DataTypeFloat64
	DataTypeString8
	DataTypeString32
	DataTypeString64
	DataTypeString128
	DataTypeString256
	DataTypeString260
	DataTypeStringV
	DataTypeInitPosition
	DataTypeLatLonAlt
	DataTypeXYZ
	DataTypePBH
	DataTypeWaypoint
	DataTypeMarkerState
)

// Period enumerates how often request_data_on_sim_object repeats.
type Period int

const (
	PeriodNever Period = iota
	PeriodOnce
	PeriodVisualFrame
	PeriodSimFrame
	PeriodSecond
)

// SimObjectType enumerates the object classes request_data_by_type can
// scope a bulk request to.
type SimObjectType int

const (
	SimObjectTypeUser SimObjectType = iota
	SimObjectTypeAll
	SimObjectTypeAircraft
	SimObjectTypeHelicopter
	SimObjectTypeBoat
	SimObjectTypeGround
)

// FacilityListType enumerates the facility kinds list_facilities can
// enumerate.
type FacilityListType int

const (
	FacilityListAirport FacilityListType = iota
	FacilityListWaypoint
	FacilityListNDB
	FacilityListVOR
)

// FacilityScope selects how list_facilities bounds its search.
type FacilityScope int

const (
	// FacilityScopeAll enumerates the entire loaded navigation database.
	FacilityScopeAll FacilityScope = iota
	// FacilityScopeBubble enumerates only facilities within the user
	// aircraft's current reality bubble.
	FacilityScopeBubble
	// FacilityScopeCache enumerates only facilities the simulator
	// currently holds in memory, regardless of reality bubble.
	FacilityScopeCache
)

// ClientEventData holds the up-to-five DWORD payload slots a transmitted
// client event can carry.
type ClientEventData [5]uint32

// Priority is a notification group's scheduling priority: the order in
// which the host invokes competing clients' handlers for the same
// simulator action.
type Priority uint32

// The five discrete priority levels a notification group can hold.
const (
	PriorityHighest         Priority = 1
	PriorityHighestMaskable Priority = 10000000
	PriorityStandard        Priority = 1900000000
	PriorityDefault         Priority = 2000000000
	PriorityLowest          Priority = 4000000000
)

// EventFlagGroupIDIsPriority, set in TransmitClientEvent's flags, tells
// the host to treat groupOrPriority as a raw Priority value rather than a
// NotificationGroupId — the group-less "send with priority" form.
const EventFlagGroupIDIsPriority uint32 = 0x00000010

// UnusedDatumID is the host's sentinel for "no per-field datum id", passed
// to add_to_data_definition for fields of a definition that was not built
// with tagged delivery in mind.
const UnusedDatumID uint32 = 0xFFFFFFFF
