package dispatch

import (
	"context"
	"strconv"
	"time"

	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/metrics"
	"github.com/flightsim-go/simconnect/pkg/simerr"
	"github.com/flightsim-go/simconnect/pkg/telemetry"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// frameHeaderSize is the three u32 words (size, version, id) every frame
// carries ahead of its payload.
const frameHeaderSize = 12

// RootDispatcher is the L3 routing point between a connection's transport
// handle and the L4 request-layer subsystems. It keys on the frame's
// message-type id (the third word of every frame header) and hands the
// whole Frame to whichever subsystem registered for that type; the
// subsystem is responsible for decoding the payload and correlating by
// RequestId using its own MessageDispatcher.
type RootDispatcher struct {
	byType  *MessageDispatcher[uint32, transport.Frame]
	metrics metrics.ClientMetrics
}

// NewRootDispatcher returns an empty RootDispatcher.
func NewRootDispatcher() *RootDispatcher {
	return &RootDispatcher{byType: NewMessageDispatcher[uint32, transport.Frame]()}
}

// SetMetrics installs m to record dispatch-throughput and per-message
// counters. Connection.SetMetrics calls this for the connection's root
// dispatcher; tests and standalone callers may call it directly.
func (d *RootDispatcher) SetMetrics(m metrics.ClientMetrics) {
	d.metrics = m
}

// OnMessageType registers fn to receive every frame whose ID equals
// msgType. Returns an id that UnregisterMessageType can later remove.
func (d *RootDispatcher) OnMessageType(msgType uint32, fn HandlerFunc[transport.Frame]) uint64 {
	return d.byType.Slot(msgType).Add(fn, false)
}

// UnregisterMessageType removes a single registration added by
// OnMessageType.
func (d *RootDispatcher) UnregisterMessageType(msgType uint32, handlerID uint64) {
	if slot, ok := d.byType.Lookup(msgType); ok {
		slot.Remove(handlerID)
	}
}

// Route dispatches one already-received frame to its registered
// subsystem(s). A frame with no registered message-type handler reaches
// no subsystem and is not logged: an unrecognised message-type id is not,
// by itself, a MalformedFrame — that kind is reserved for a frame whose
// declared size exceeds the buffer actually received.
//
// Before routing, Route checks the declared frame.Size against the
// buffer actually received (header + len(frame.Data)). A declared size
// that exceeds what was received means the frame is truncated or the
// header is corrupt; the frame is dropped and dispatch continues rather
// than handing a subsystem a payload shorter than it was promised.
//
// Route reports false only for a frame dropped as malformed, so callers
// counting routed frames (Pump) don't count it. A well-formed frame whose
// message type has no handler still reports true and is counted.
func (d *RootDispatcher) Route(frame transport.Frame) bool {
	received := uint32(frameHeaderSize + len(frame.Data))
	if frame.Size > received {
		logger.Warn("dropping malformed frame: declared size exceeds received buffer",
			"message_type", frame.ID,
			"declared_size", frame.Size,
			"received_size", received,
			logger.Err(simerr.New(simerr.MalformedFrame, "declared frame size exceeds buffer size on receive")),
		)
		return false
	}

	_, span := telemetry.StartDispatchSpan(context.Background())
	span.SetAttributes(telemetry.MessageType(strconv.FormatUint(uint64(frame.ID), 10)))
	defer span.End()

	if d.metrics != nil {
		d.metrics.RecordMessage(strconv.FormatUint(uint64(frame.ID), 10))
	}

	d.byType.Dispatch(frame.ID, frame)
	return true
}

// Pump drains every frame currently queued on handle via host's
// poll-style primitive and routes each one. It returns the number of
// frames routed. The pkg/iodriver drivers do not call it; they pull
// frames through their own drainFrame helper.
func (d *RootDispatcher) Pump(host transport.RawHost, handle transport.Handle) (int, error) {
	n := 0
	for {
		start := time.Now()
		frame, ok, err := host.GetNextDispatch(handle)
		if err != nil {
			if d.metrics != nil {
				d.metrics.RecordDispatch(time.Since(start), false)
			}
			return n, err
		}
		if !ok {
			if d.metrics != nil {
				d.metrics.RecordDispatch(time.Since(start), false)
			}
			return n, nil
		}
		delivered := d.Route(frame)
		if d.metrics != nil {
			d.metrics.RecordDispatch(time.Since(start), delivered)
		}
		if delivered {
			n++
		}
	}
}

// PumpPush drains handle via the host's push-style primitive, routing
// each frame as it is delivered, in one call rather than a polling loop.
// The pkg/iodriver drivers do not call it; they pull frames one at a time
// through their own drainFrame helper.
func (d *RootDispatcher) PumpPush(host transport.RawHost, handle transport.Handle) error {
	start := time.Now()
	delivered := false
	err := host.CallDispatch(handle, func(frame transport.Frame) {
		delivered = true
		logger.Debug("routing frame", "message_type", frame.ID, "size", frame.Size)
		d.Route(frame)
	})
	if d.metrics != nil {
		d.metrics.RecordDispatch(time.Since(start), delivered)
	}
	return err
}
