package fake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/pkg/simerr"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

func TestOpenCloseRoundTrip(t *testing.T) {
	h := New()

	handle, err := h.Open(transport.OpenOptions{Name: "TestApp"})
	require.NoError(t, err)
	assert.NotZero(t, handle)

	require.NoError(t, h.Close(handle))
}

func TestOpenRejectsBadConfigIndex(t *testing.T) {
	h := New()
	h.RejectConfigIndex(3)

	_, err := h.Open(transport.OpenOptions{Name: "TestApp", ConfigIndex: 3})
	require.Error(t, err)

	var sce *simerr.SimConnectError
	require.ErrorAs(t, err, &sce)
	assert.Equal(t, simerr.BadConfig, sce.Kind)
	assert.Equal(t, 3, sce.FieldIndex)
}

func TestInjectFrameDeliveredInOrder(t *testing.T) {
	h := New()
	handle, err := h.Open(transport.OpenOptions{Name: "TestApp"})
	require.NoError(t, err)

	h.InjectFrame(handle, transport.Frame{ID: 1})
	h.InjectFrame(handle, transport.Frame{ID: 2})

	f1, ok, err := h.GetNextDispatch(handle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 1, f1.ID)

	f2, ok, err := h.GetNextDispatch(handle)
	require.NoError(t, err)
	require.True(t, ok)
	assert.EqualValues(t, 2, f2.ID)

	_, ok, err = h.GetNextDispatch(handle)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCallDispatchDrainsQueueInOrder(t *testing.T) {
	h := New()
	handle, err := h.Open(transport.OpenOptions{Name: "TestApp"})
	require.NoError(t, err)

	h.InjectFrame(handle, transport.Frame{ID: 1})
	h.InjectFrame(handle, transport.Frame{ID: 2})
	h.InjectFrame(handle, transport.Frame{ID: 3})

	var seen []uint32
	err = h.CallDispatch(handle, func(f transport.Frame) {
		seen = append(seen, f.ID)
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, seen)

	_, ok, _ := h.GetNextDispatch(handle)
	assert.False(t, ok)
}

func TestCallsAreRecorded(t *testing.T) {
	h := New()
	handle, _ := h.Open(transport.OpenOptions{Name: "TestApp"})

	require.NoError(t, h.RequestSystemState(handle, 1, "Sim"))

	require.Len(t, h.Calls, 2)
	assert.Equal(t, "Open", h.Calls[0].Method)
	assert.Equal(t, "RequestSystemState", h.Calls[1].Method)
}
