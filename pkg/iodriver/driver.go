// Package iodriver implements the three suspension points the core
// allows: a polling loop, an OS-event wait loop, and a windowed
// message-queue pump. All three share the same dispatcher and the same
// auto-close behavior; they differ only in how they wait between drains.
package iodriver

import (
	"time"

	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// MessageTypeQuit is the host-defined sentinel for the simulator-quit
// frame. Vendor-specific wire constants are bound abstractly here; a
// concrete build ties this to the host SDK's actual value.
const MessageTypeQuit uint32 = 1

// Driver is satisfied by all three I/O models. HandleFor drains frames as
// they become available until budget has elapsed, even if nothing was
// ever available, and returns early once the connection is closed. Only
// the polling driver drains before its first wait; the OS-event driver
// drains after each wait on its event, and the windowed driver drains
// when the host's user message arrives.
type Driver interface {
	HandleFor(budget time.Duration) error
}

// autoClose checks whether the frame just routed was a QUIT frame under
// an auto-closing configuration, and if so closes conn. Per the core's
// auto-close contract, this runs after Route so user-registered QUIT
// handlers have already fired.
func autoClose(conn *connection.Connection, autoClosing bool, frame transport.Frame) {
	if autoClosing && frame.ID == MessageTypeQuit {
		_ = conn.Close()
	}
}

// drainFrame pulls and routes at most one frame via the host's poll-style
// primitive, recording its outcome on conn's metrics (if any) and running
// autoClose afterward. Shared by all three drivers' drainOnce loops.
// Returns delivered=false (with a nil error) once the queue is empty.
func drainFrame(conn *connection.Connection, autoClosing bool) (delivered bool, err error) {
	start := time.Now()
	host := conn.Host()
	frame, ok, err := host.GetNextDispatch(conn.Handle())
	m := conn.Metrics()
	if err != nil {
		if m != nil {
			m.RecordDispatch(time.Since(start), false)
		}
		return false, err
	}
	if !ok {
		if m != nil {
			m.RecordDispatch(time.Since(start), false)
		}
		return false, nil
	}

	conn.Dispatcher().Route(frame)
	if m != nil {
		m.RecordDispatch(time.Since(start), true)
	}
	autoClose(conn, autoClosing, frame)
	return true, nil
}
