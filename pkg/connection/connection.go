// Package connection owns the session handle: open/close lifecycle, the
// last host result, and the root dispatcher that routes frames received
// on this handle. Three constructors differ only in which wait-source the
// host attaches at open time (none, an OS event, or a window message).
package connection

import (
	"sync"

	"github.com/flightsim-go/simconnect/internal/logger"
	"github.com/flightsim-go/simconnect/pkg/dispatch"
	"github.com/flightsim-go/simconnect/pkg/metrics"
	"github.com/flightsim-go/simconnect/pkg/simerr"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// Connection owns one transport.Handle and mirrors the host's last
// result. Every outbound operation on a Connection stores its result here
// before returning success/failure to the caller, so LastResult always
// reflects the most recent primitive call regardless of which method made
// it.
type Connection struct {
	mu   sync.Mutex
	host transport.RawHost
	name string

	handle  transport.Handle
	isOpen  bool
	lastErr error
	sendID  uint32

	dispatcher *dispatch.RootDispatcher
	metrics    metrics.ClientMetrics
}

// newConnection is the shared constructor body; the three Open* functions
// only differ in the OpenOptions they pass in.
func newConnection(host transport.RawHost, name string, opts transport.OpenOptions) (*Connection, error) {
	c := &Connection{
		host:       host,
		name:       name,
		dispatcher: dispatch.NewRootDispatcher(),
	}
	opts.Name = name
	if err := c.openWith(opts); err != nil {
		return nil, err
	}
	return c, nil
}

// Open establishes a simple connection with no async wait-source; the
// caller is expected to poll via the polling I/O driver.
func Open(host transport.RawHost, name string, configIndex uint32) (*Connection, error) {
	return newConnection(host, name, transport.OpenOptions{ConfigIndex: configIndex})
}

// OpenWithEvent establishes a connection that attaches an auto-reset OS
// event the dispatcher's wait loop can block on.
func OpenWithEvent(host transport.RawHost, name string, configIndex uint32, eventHandle uintptr) (*Connection, error) {
	return newConnection(host, name, transport.OpenOptions{ConfigIndex: configIndex, EventHandle: eventHandle})
}

// OpenWindowed establishes a connection that attaches a window handle and
// user-message id, so the host posts one message per frame batch.
func OpenWindowed(host transport.RawHost, name string, configIndex uint32, windowHandle uintptr, userMessage uint32) (*Connection, error) {
	return newConnection(host, name, transport.OpenOptions{ConfigIndex: configIndex, WindowHandle: windowHandle, UserMessage: userMessage})
}

func (c *Connection) openWith(opts transport.OpenOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isOpen {
		return nil
	}

	handle, err := c.host.Open(opts)
	c.lastErr = err
	if err != nil {
		logger.Warn("connection open failed", logger.Connection(c.name), logger.Err(err))
		return err
	}

	c.handle = handle
	c.isOpen = true
	if c.metrics != nil {
		c.metrics.SetConnectionState(true)
	}
	logger.Info("connection opened", logger.Connection(c.name))
	return nil
}

// Close tears down the session. Idempotent: closing an already-closed
// connection is a no-op that returns nil.
func (c *Connection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return nil
	}

	err := c.host.Close(c.handle)
	c.lastErr = err
	c.isOpen = false
	if c.metrics != nil {
		c.metrics.SetConnectionState(false)
	}
	if err != nil {
		logger.Warn("connection close failed", logger.Connection(c.name), logger.Err(err))
		return simerr.Wrap(simerr.TransportFailure, err, "close")
	}
	logger.Info("connection closed", logger.Connection(c.name))
	return nil
}

// IsOpen reports whether the connection currently holds an open handle.
func (c *Connection) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}

// Succeeded reports whether the most recent operation's stored result was
// a success (nil error).
func (c *Connection) Succeeded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr == nil
}

// Failed is the complement of Succeeded.
func (c *Connection) Failed() bool { return !c.Succeeded() }

// LastResult returns the most recently stored result, or nil if the last
// operation succeeded.
func (c *Connection) LastResult() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// FetchSendID returns the id of the last packet this connection sent, for
// correlating an exception frame back to its originating send.
func (c *Connection) FetchSendID() uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendID
}

// Handle returns the underlying transport handle for use by an I/O
// driver's wait/pump loop.
func (c *Connection) Handle() transport.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle
}

// Host returns the RawHost this connection was opened against.
func (c *Connection) Host() transport.RawHost { return c.host }

// Dispatcher returns this connection's root dispatcher.
func (c *Connection) Dispatcher() *dispatch.RootDispatcher { return c.dispatcher }

// SetMetrics installs m to observe this connection's dispatch traffic and
// connection state, and forwards it to the root dispatcher so per-frame
// dispatch metrics are recorded there too. Pass nil to disable
// collection; the result of a disabled metrics.ClientMetrics constructor
// (e.g. prometheus.NewClientMetrics with no registry) can be passed
// straight through without an extra check.
func (c *Connection) SetMetrics(m metrics.ClientMetrics) {
	c.mu.Lock()
	c.metrics = m
	c.mu.Unlock()
	c.dispatcher.SetMetrics(m)
}

// Metrics returns the metrics collector this connection was configured
// with, or nil if none was set.
func (c *Connection) Metrics() metrics.ClientMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.metrics
}

// Name returns the client name this connection opened with.
func (c *Connection) Name() string { return c.name }

// storeResult records err as the connection's last result and, on
// success, the send id produced by a send-style primitive. Called by
// every request-layer operation that sends through this connection.
func (c *Connection) storeResult(sendID uint32, err error) error {
	c.mu.Lock()
	c.lastErr = err
	if err == nil {
		c.sendID = sendID
	}
	c.mu.Unlock()
	return err
}

// Do runs fn (one RawHost send primitive) against this connection's
// handle and records its result, returning whatever error fn produced.
// sendID should be the RequestId or other correlation id the caller
// allocated for this send, so FetchSendID reflects it on success.
func (c *Connection) Do(sendID uint32, fn func(host transport.RawHost, handle transport.Handle) error) error {
	c.mu.Lock()
	host, handle, isOpen := c.host, c.handle, c.isOpen
	c.mu.Unlock()

	if !isOpen {
		return c.storeResult(sendID, simerr.New(simerr.TransportFailure, "connection not open"))
	}
	return c.storeResult(sendID, fn(host, handle))
}
