package iodriver

import (
	"time"

	"github.com/flightsim-go/simconnect/pkg/connection"
)

// EventWaiter blocks until the connection's attached OS event is signaled
// or timeout elapses, reporting which happened. The real implementation
// wraps WaitForSingleObject against the event handle OpenWithEvent
// attached; tests substitute ChannelEventWaiter.
type EventWaiter interface {
	Wait(timeout time.Duration) (signaled bool)
}

// ChannelEventWaiter is a portable EventWaiter backed by a channel, used
// by tests and by any non-Windows build that still wants to exercise the
// OS-event driver's scheduling logic without a real Win32 event.
type ChannelEventWaiter struct {
	signal chan struct{}
}

// NewChannelEventWaiter returns a waiter with no signals pending.
func NewChannelEventWaiter() *ChannelEventWaiter {
	return &ChannelEventWaiter{signal: make(chan struct{}, 1)}
}

// Signal wakes one pending or future Wait call.
func (w *ChannelEventWaiter) Signal() {
	select {
	case w.signal <- struct{}{}:
	default:
	}
}

func (w *ChannelEventWaiter) Wait(timeout time.Duration) bool {
	select {
	case <-w.signal:
		return true
	case <-time.After(timeout):
		return false
	}
}

// EventDriver drains the connection's dispatcher whenever its attached OS
// event is signaled, falling back to waiting out the remaining budget if
// it never is.
type EventDriver struct {
	conn        *connection.Connection
	waiter      EventWaiter
	autoClosing bool
}

// NewEventDriver returns a driver that waits on waiter between drains.
func NewEventDriver(conn *connection.Connection, waiter EventWaiter, autoClosing bool) *EventDriver {
	return &EventDriver{conn: conn, waiter: waiter, autoClosing: autoClosing}
}

// HandleFor waits on the event for up to the remaining budget, draining
// the dispatcher each time it is signaled, until budget has elapsed.
func (d *EventDriver) HandleFor(budget time.Duration) error {
	deadline := time.Now().Add(budget)

	for {
		if !d.conn.IsOpen() {
			return nil
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil
		}
		d.waiter.Wait(remaining)
		if err := d.drainOnce(); err != nil {
			return err
		}
	}
}

func (d *EventDriver) drainOnce() error {
	for {
		if !d.conn.IsOpen() {
			return nil
		}
		delivered, err := drainFrame(d.conn, d.autoClosing)
		if err != nil {
			return err
		}
		if !delivered {
			return nil
		}
	}
}
