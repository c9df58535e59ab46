// Package simobject implements the SimObject data service: one-shot and
// periodic telemetry requests against a single object, and bulk by-type
// requests scoped to a radius.
package simobject

import (
	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/datadef"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/ids"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// requestKind tags every metric and span this package records.
const requestKind = "simobject"

// ObjectIDCurrent is the host's sentinel for "the user's own aircraft",
// the default target of a one-shot or periodic request.
const ObjectIDCurrent uint32 = 0

// Frame is the decoded shape of one data-on-sim-object response, carrying
// just what the service needs to route and, for multi-part responses,
// detect the last part.
type Frame struct {
	RequestID  uint32
	ObjectID   uint32
	EntryNum   uint32 // 0-based index of this entry within the response
	OutOf      uint32 // total entry count; last entry iff EntryNum+1 == OutOf
	Tagged     bool
	FieldCount int
	Data       []byte
}

// Decoder turns a raw transport.Frame carrying data-on-sim-object or
// data-by-type payload into a Frame. Supplied by the caller wiring this
// service to a connection, since the exact byte layout of the envelope
// around the data section is host-specific.
type Decoder func(transport.Frame) (Frame, error)

// Service issues request-data-on-sim-object and request-data-by-type
// calls and routes their responses by RequestId.
type Service struct {
	conn       *connection.Connection
	dispatcher *dispatch.MessageDispatcher[uint32, Frame]
}

// New returns a SimObject data service bound to conn, decoding response
// frames of msgType with decode.
func New(conn *connection.Connection, msgType uint32, decode Decoder) *Service {
	s := &Service{conn: conn, dispatcher: dispatch.NewMessageDispatcher[uint32, Frame]()}
	conn.Dispatcher().OnMessageType(msgType, func(raw transport.Frame) {
		f, err := decode(raw)
		if err != nil {
			logger.Warn("simobject: decode failed", logger.Err(err))
			return
		}
		s.dispatcher.Dispatch(f.RequestID, f)
	})
	return s
}

func decodeOne[R any](def *datadef.DataDefinition[R], f Frame) (R, error) {
	var r R
	rd := wire.NewReader(f.Data)
	var err error
	if f.Tagged {
		err = def.UnmarshalTagged(rd, &r, f.FieldCount)
	} else {
		err = def.Unmarshal(rd, &r)
	}
	if err != nil {
		return r, err
	}
	if holder, ok := any(&r).(datadef.SimObjectIdHolder); ok {
		holder.SetSimObjectID(f.ObjectID)
	}
	return r, nil
}

// RequestOnce issues a one-shot request against objectID (ObjectIDCurrent
// for the user's own aircraft) and invokes cb exactly once with the
// decoded record.
func RequestOnce[R any](s *Service, defID uint32, def *datadef.DataDefinition[R], objectID uint32, cb func(R)) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestSimObj, requestKind, reqID,
		telemetry.DefinitionID(defID), telemetry.ObjectID(objectID))

	slot := s.dispatcher.Slot(reqID)
	handlerID := slot.Add(func(f Frame) {
		r, err := decodeOne(def, f)
		if err != nil {
			logger.Warn("simobject: one-shot decode failed", logger.RequestID(reqID), logger.Err(err))
			return
		}
		active.Finish("ok")
		cb(r)
	}, true)

	req := dispatch.NewRequest(reqID, func() {
		slot.Remove(handlerID)
		s.dispatcher.Cancel(reqID)
		active.Finish("cancelled")
	})

	err := s.conn.Do(reqID, func(host transport.RawHost, handle transport.Handle) error {
		return host.RequestDataOnSimObject(handle, reqID, defID, objectID, transport.PeriodOnce, 0, 0, 0, 0)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}

// PeriodicOptions configures a recurring request.
type PeriodicOptions struct {
	Period           transport.Period
	OnlyWhenChanged  bool
	OriginCount      uint32
	LimitCount       uint32
}

// RequestPeriodic issues a recurring request against objectID. The
// handler is not auto-removed: cancel via the returned Request.
func RequestPeriodic[R any](s *Service, defID uint32, def *datadef.DataDefinition[R], objectID uint32, opts PeriodicOptions, cb func(R)) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestSimObj, requestKind, reqID,
		telemetry.DefinitionID(defID), telemetry.ObjectID(objectID))

	slot := s.dispatcher.Slot(reqID)
	handlerID := slot.Add(func(f Frame) {
		r, err := decodeOne(def, f)
		if err != nil {
			logger.Warn("simobject: periodic decode failed", logger.RequestID(reqID), logger.Err(err))
			return
		}
		cb(r)
	}, false)

	req := dispatch.NewRequest(reqID, func() {
		slot.Remove(handlerID)
		s.dispatcher.Cancel(reqID)
		active.Finish("cancelled")
	})

	var flags uint32
	if opts.OnlyWhenChanged {
		flags = 1
	}
	err := s.conn.Do(reqID, func(host transport.RawHost, handle transport.Handle) error {
		return host.RequestDataOnSimObject(handle, reqID, defID, objectID, opts.Period, flags, opts.OriginCount, 0, opts.LimitCount)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}

// ByTypeOptions configures a bulk by-type request. PerObject and
// OnComplete are each optional; either, both or neither may be set.
type ByTypeOptions[R any] struct {
	RadiusMeters uint32
	ObjectType   transport.SimObjectType
	PerObject    func(objectID uint32, r R)
	OnComplete   func(results map[uint32]R)
}

// byTypeState accumulates one in-flight by-type request's partial
// results across however many frames the response spans.
type byTypeState[R any] struct {
	results map[uint32]R
}

// RequestByType issues a bulk by-type request. It detects the last part
// of a multi-part response by comparing EntryNum+1 to OutOf, invokes
// OnComplete exactly once with every decoded entry, and removes the
// handler, per spec §4.8 and scenario S6.
func RequestByType[R any](s *Service, defID uint32, def *datadef.DataDefinition[R], opts ByTypeOptions[R]) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestSimObj, requestKind, reqID,
		telemetry.DefinitionID(defID))
	state := &byTypeState[R]{results: make(map[uint32]R)}

	slot := s.dispatcher.Slot(reqID)
	var handlerID uint64
	handlerID = slot.Add(func(f Frame) {
		r, err := decodeOne(def, f)
		if err != nil {
			logger.Warn("simobject: by-type decode failed", logger.RequestID(reqID), logger.Err(err))
			return
		}
		state.results[f.ObjectID] = r
		if opts.PerObject != nil {
			opts.PerObject(f.ObjectID, r)
		}
		if f.EntryNum+1 == f.OutOf {
			if opts.OnComplete != nil {
				opts.OnComplete(state.results)
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
		return host.RequestDataByType(handle, reqID, defID, opts.RadiusMeters, opts.ObjectType)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}
