// Package facility implements the facility service: list enumeration
// (airports/waypoints/NDBs/VORs across all/bubble/cache scopes) and
// structured, nested facility-data requests.
package facility

import (
	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/ids"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// requestKind tags every metric and span this package records.
const requestKind = "facility"

// Service routes list-facilities and facility-data responses by
// RequestId. A single raw-frame dispatcher backs every request shape
// this package exposes; New registers it once per message-type id the
// host uses for these responses.
type Service struct {
	conn       *connection.Connection
	dispatcher *dispatch.MessageDispatcher[uint32, transport.Frame]
	generation Generation
}

// New returns a facility service bound to conn. msgTypes are every
// message-type id the host emits for list-facilities or facility-data
// responses; each routes, by the frame's RequestId, to this service's
// internal dispatcher.
func New(conn *connection.Connection, generation Generation, msgTypes ...uint32) *Service {
	s := &Service{conn: conn, dispatcher: dispatch.NewMessageDispatcher[uint32, transport.Frame](), generation: generation}
	for _, mt := range msgTypes {
		conn.Dispatcher().OnMessageType(mt, func(raw transport.Frame) {
			s.dispatcher.Dispatch(raw.Version, raw)
		})
	}
	return s
}

// Generation reports the facility-data token generation this service was
// constructed with.
func (s *Service) Generation() Generation { return s.generation }

// ListEntry is one enumerated facility: its ident/region plus the
// per-kind details payload.
type ListEntry[D any] struct {
	Ident  string
	Region string
	Details D
}

// ListFrame is the decoded shape of one list-facilities response part.
type ListFrame[D any] struct {
	EntryNum uint32
	OutOf    uint32
	Entries  []ListEntry[D]
}

// ListDecoder turns a raw transport.Frame into a ListFrame of the given
// entry-details type. Supplied by the caller wiring this service to a
// connection, since the host's exact array-of-entries byte layout is
// host-specific.
type ListDecoder[D any] func(transport.Frame) (ListFrame[D], error)

// requestList issues list-facilities for listType and scope, invoking
// onEntry for every enumerated item and onDone once after the last part
// (entry_number+1 == out_of), per spec §4.10.
func requestList[D any](s *Service, scope transport.FacilityScope, listType transport.FacilityListType, decode ListDecoder[D], onEntry func(ident, region string, d D), onDone func()) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestFacility, requestKind, reqID)

	slot := s.dispatcher.Slot(reqID)
	var handlerID uint64
	handlerID = slot.Add(func(raw transport.Frame) {
		lf, err := decode(raw)
		if err != nil {
			logger.Warn("facility: list decode failed", logger.RequestID(reqID), logger.Err(err))
			return
		}
		for _, e := range lf.Entries {
			if onEntry != nil {
				onEntry(e.Ident, e.Region, e.Details)
			}
		}
		if lf.EntryNum+1 == lf.OutOf {
			if onDone != nil {
				onDone()
			}
			active.Finish("ok")
			slot.Remove(handlerID)
		}
	}, false)

	req := dispatch.NewRequest(reqID, func() {
		slot.Remove(handlerID)
		s.dispatcher.Cancel(reqID)
		active.Finish("cancelled")
	})

	err := s.conn.Do(reqID, func(host transport.RawHost, handle transport.Handle) error {
		return host.ListFacilities(handle, reqID, scope, listType)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}

// ListAirports enumerates airports in scope.
func ListAirports(s *Service, scope transport.FacilityScope, decode ListDecoder[AirportDetails], onEntry func(ident, region string, d AirportDetails), onDone func()) (*dispatch.Request, error) {
	return requestList(s, scope, transport.FacilityListAirport, decode, onEntry, onDone)
}

// ListWaypoints enumerates waypoints in scope.
func ListWaypoints(s *Service, scope transport.FacilityScope, decode ListDecoder[WaypointDetails], onEntry func(ident, region string, d WaypointDetails), onDone func()) (*dispatch.Request, error) {
	return requestList(s, scope, transport.FacilityListWaypoint, decode, onEntry, onDone)
}

// ListNDBs enumerates NDBs in scope.
func ListNDBs(s *Service, scope transport.FacilityScope, decode ListDecoder[NDBDetails], onEntry func(ident, region string, d NDBDetails), onDone func()) (*dispatch.Request, error) {
	return requestList(s, scope, transport.FacilityListNDB, decode, onEntry, onDone)
}

// ListVORs enumerates VORs in scope.
func ListVORs(s *Service, scope transport.FacilityScope, decode ListDecoder[VORDetails], onEntry func(ident, region string, d VORDetails), onDone func()) (*dispatch.Request, error) {
	return requestList(s, scope, transport.FacilityListVOR, decode, onEntry, onDone)
}
