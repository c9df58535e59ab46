package iodriver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/transport"
	"github.com/flightsim-go/simconnect/pkg/transport/fake"
)

func TestChannelEventWaiterSignalThenWaitReturnsTrue(t *testing.T) {
	w := NewChannelEventWaiter()
	w.Signal()
	assert.True(t, w.Wait(time.Millisecond))
}

func TestChannelEventWaiterTimesOutWithoutSignal(t *testing.T) {
	w := NewChannelEventWaiter()
	assert.False(t, w.Wait(time.Millisecond))
}

func TestEventDriverDrainsOnSignal(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	var routed int
	conn.Dispatcher().OnMessageType(9, func(transport.Frame) { routed++ })
	host.InjectFrame(conn.Handle(), transport.Frame{ID: 9})

	waiter := NewChannelEventWaiter()
	waiter.Signal()

	driver := NewEventDriver(conn, waiter, false)
	require.NoError(t, driver.HandleFor(5*time.Millisecond))

	assert.Equal(t, 1, routed)
}

func TestEventDriverReturnsOnceBudgetElapsesWithoutSignal(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	waiter := NewChannelEventWaiter()
	driver := NewEventDriver(conn, waiter, false)

	start := time.Now()
	require.NoError(t, driver.HandleFor(10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

// TestEventDriverAutoClosesOnQuitFrame exercises property #8 for the
// event-driven wait loop.
func TestEventDriverAutoClosesOnQuitFrame(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	host.InjectFrame(conn.Handle(), transport.Frame{ID: MessageTypeQuit})
	waiter := NewChannelEventWaiter()
	waiter.Signal()

	driver := NewEventDriver(conn, waiter, true)
	require.NoError(t, driver.HandleFor(5*time.Millisecond))

	assert.False(t, conn.IsOpen())
}

func TestEventDriverStopsEarlyOnceConnectionCloses(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	waiter := NewChannelEventWaiter()
	driver := NewEventDriver(conn, waiter, false)

	start := time.Now()
	require.NoError(t, driver.HandleFor(50*time.Millisecond))
	assert.Less(t, time.Since(start), 45*time.Millisecond)
}
