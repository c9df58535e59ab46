package iodriver

import (
	"time"

	"github.com/flightsim-go/simconnect/pkg/connection"
)

// DefaultDispatchInterval is the polling driver's default tick, per the
// core's configuration defaults.
const DefaultDispatchInterval = 10 * time.Millisecond

// PollingDriver drains the connection's dispatcher on a fixed tick. It is
// the only driver usable when the host gives no async wait-source.
type PollingDriver struct {
	conn        *connection.Connection
	interval    time.Duration
	autoClosing bool
}

// NewPollingDriver returns a driver that ticks every interval (or
// DefaultDispatchInterval if interval is <= 0).
func NewPollingDriver(conn *connection.Connection, interval time.Duration, autoClosing bool) *PollingDriver {
	if interval <= 0 {
		interval = DefaultDispatchInterval
	}
	return &PollingDriver{conn: conn, interval: interval, autoClosing: autoClosing}
}

// HandleFor drains the transport queue immediately, then repeats on every
// tick until budget has elapsed. If the connection is closed (for example
// by auto-closing) mid-budget, HandleFor returns at its next check
// without waiting out the rest of the budget.
func (d *PollingDriver) HandleFor(budget time.Duration) error {
	deadline := time.Now().Add(budget)

	for {
		if !d.conn.IsOpen() {
			return nil
		}
		if err := d.drainOnce(); err != nil {
			return err
		}
		if !time.Now().Before(deadline) {
			return nil
		}
		time.Sleep(d.interval)
	}
}

// drainOnce pulls and routes every frame currently queued, checking for
// an auto-close QUIT frame after each one so later frames in the same
// batch are not routed to a closed connection.
func (d *PollingDriver) drainOnce() error {
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
