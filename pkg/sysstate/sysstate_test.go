package sysstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/transport"
	"github.com/flightsim-go/simconnect/pkg/transport/fake"
)

const sysStateMsgType = 10

// injectResponse builds the system-state response frame a real decode
// would parse: ID is the host's message-type id (what the root
// dispatcher routes on), Version carries the RequestId a full decode
// would read from the frame's data section.
func injectResponse(host *fake.Host, handle transport.Handle, reqID uint32, data []byte) {
	host.InjectFrame(handle, transport.Frame{ID: sysStateMsgType, Version: reqID, Data: data})
}

// TestQueryStringInvokesCallbackOnce exercises scenario S4's string-typed
// states.
func TestQueryStringInvokesCallbackOnce(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, sysStateMsgType, func(f transport.Frame) (uint32, Response) {
		return f.Version, Response{Kind: transport.DataTypeStringV, String: string(f.Data)}
	})

	var got string
	var calls int
	req, err := svc.QueryString(StateAircraftLoaded, func(s string) { got = s; calls++ })
	require.NoError(t, err)
	require.NotNil(t, req)

	injectResponse(host, conn.Handle(), req.ID(), []byte("Cessna 172.AIRCRAFT.CFG"))
	n, err := conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Cessna 172.AIRCRAFT.CFG", got)

	// A second frame for the same (now-removed) request id falls through
	// silently: completion latching (property #5).
	injectResponse(host, conn.Handle(), req.ID(), []byte("ignored"))
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

// TestQueryBoolDecodesNonZeroAsTrue exercises scenario S4's bool-typed
// states (DialogMode, Sim).
func TestQueryBoolDecodesNonZeroAsTrue(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, sysStateMsgType, func(f transport.Frame) (uint32, Response) {
		return f.Version, Response{Kind: transport.DataTypeInt32, Int: 1}
	})

	var got bool
	req, err := svc.QueryBool(StateSim, func(b bool) { got = b })
	require.NoError(t, err)

	injectResponse(host, conn.Handle(), req.ID(), nil)
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestQueryIssuesRequestSystemStateWithAllocatedRequestID(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, sysStateMsgType, func(f transport.Frame) (uint32, Response) { return f.Version, Response{} })

	req, err := svc.Query(StateFlightLoaded, func(Response) {})
	require.NoError(t, err)

	found := false
	for _, c := range host.Calls {
		if c.Method == "RequestSystemState" {
			assert.Equal(t, req.ID(), c.Args[1])
			assert.Equal(t, StateFlightLoaded, c.Args[2])
			found = true
		}
	}
	assert.True(t, found, "expected a RequestSystemState call to be recorded")
}

// TestCancelStopsFurtherCallbacks exercises property #7.
func TestCancelStopsFurtherCallbacks(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, sysStateMsgType, func(f transport.Frame) (uint32, Response) { return f.Version, Response{} })

	var calls int
	req, err := svc.Query(StateFlightPlan, func(Response) { calls++ })
	require.NoError(t, err)

	req.Cancel()
	injectResponse(host, conn.Handle(), req.ID(), nil)
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 0, calls)
}
