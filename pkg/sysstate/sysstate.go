// Package sysstate implements the system-state query service: a
// one-shot, named request for simulator-global status (a loaded flight,
// the current aircraft title, dialog mode, and so on), each state
// resolving to one of three typed responses.
package sysstate

import (
	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/ids"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// requestKind tags every metric and span this package records, so
// per-kind latency and in-flight counters can be broken out by subsystem.
const requestKind = "sysstate"

// Well-known state names the host documents. A request is not limited to
// these, but typed Query* helpers are only provided for them.
const (
	StateAircraftLoaded = "AircraftLoaded"
	StateDialogMode     = "DialogMode"
	StateFlightLoaded   = "FlightLoaded"
	StateFlightPlan     = "FlightPlan"
	StateSim            = "Sim"
	StateSimLoaded      = "SimLoaded"
)

// Response carries one system-state reply. Exactly one of the typed
// accessors is meaningful, selected by Kind.
type Response struct {
	Kind   transport.DataType
	Int    int32
	Float  float32
	String string
}

// Service issues request_system_state calls and correlates their
// single-frame responses back to the caller's callback, by RequestId.
type Service struct {
	conn       *connection.Connection
	dispatcher *dispatch.MessageDispatcher[uint32, Response]
}

// New returns a system-state service bound to conn. msgType is the
// host's message-type id for system-state response frames; the service
// registers itself on conn's root dispatcher under that type.
func New(conn *connection.Connection, msgType uint32, decode func(transport.Frame) (uint32, Response)) *Service {
	s := &Service{conn: conn, dispatcher: dispatch.NewMessageDispatcher[uint32, Response]()}
	conn.Dispatcher().OnMessageType(msgType, func(frame transport.Frame) {
		reqID, resp := decode(frame)
		s.dispatcher.Dispatch(reqID, resp)
	})
	return s
}

// Query requests name and invokes cb exactly once with the decoded
// response, then removes its handler. An unrecognised name produces no
// response on this channel: the host instead emits an exception frame
// that reaches a separately registered exception handler, per spec.
func (s *Service) Query(name string, cb func(Response)) (*dispatch.Request, error) {
	reqID := ids.NextRequestID()
	active := dispatch.StartRequest(s.conn.Metrics(), telemetry.SpanRequestSysState, requestKind, reqID)

	slot := s.dispatcher.Slot(reqID)
	handlerID := slot.Add(func(r Response) {
		logger.Debug("system state response", logger.RequestID(reqID))
		active.Finish("ok")
		cb(r)
	}, true)

	req := dispatch.NewRequest(reqID, func() {
		slot.Remove(handlerID)
		s.dispatcher.Cancel(reqID)
		active.Finish("cancelled")
	})

	err := s.conn.Do(reqID, func(host transport.RawHost, handle transport.Handle) error {
		return host.RequestSystemState(handle, reqID, name)
	})
	if err != nil {
		active.Finish("error")
		req.Cancel()
		return nil, err
	}
	return req, nil
}

// QueryString is sugar for Query against a state whose response is a
// string (AircraftLoaded, FlightLoaded, FlightPlan, SimLoaded).
func (s *Service) QueryString(name string, cb func(string)) (*dispatch.Request, error) {
	return s.Query(name, func(r Response) { cb(r.String) })
}

// QueryBool is sugar for Query against a state whose response is a
// boolean (DialogMode, Sim), carried on the wire as a 32-bit integer.
func (s *Service) QueryBool(name string, cb func(bool)) (*dispatch.Request, error) {
	return s.Query(name, func(r Response) { cb(r.Int != 0) })
}
