package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/transport"
	"github.com/flightsim-go/simconnect/pkg/transport/fake"
)

const eventMsgType = 30

func decode(raw transport.Frame) (Received, error) {
	rd := wire.NewReader(raw.Data)
	groupID, err := rd.ReadUint32()
	if err != nil {
		return Received{}, err
	}
	eventID, err := rd.ReadUint32()
	if err != nil {
		return Received{}, err
	}
	data, err := rd.ReadUint32()
	if err != nil {
		return Received{}, err
	}
	return Received{GroupID: groupID, EventID: eventID, Data: data}, nil
}

func inject(host *fake.Host, handle transport.Handle, groupID, eventID, data uint32) {
	b := wire.NewBuilder(0)
	b.PutUint32(groupID)
	b.PutUint32(eventID)
	b.PutUint32(data)
	host.InjectFrame(handle, transport.Frame{ID: eventMsgType, Data: b.Bytes()})
}

// TestNotificationGroupPriorityAndMapping exercises scenario S3: create
// group with with_highest_priority(); add event "Brakes"; expect it
// becomes mapped; clear() leaves the event mapped but removes group
// membership.
func TestNotificationGroupPriorityAndMapping(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	group := svc.CreateNotificationGroup().WithHighestPriority()
	assert.Equal(t, transport.PriorityHighest, group.Priority())
	assert.False(t, group.Created())

	require.NoError(t, group.AddEvent("Brakes"))
	assert.True(t, group.Created())

	rec := svc.Get("Brakes")
	assert.True(t, rec.Mapped, "adding an event to a group must auto-map it")

	var setPriorityCall *fake.Call
	for i, c := range host.Calls {
		if c.Method == "SetNotificationGroupPriority" {
			setPriorityCall = &host.Calls[i]
		}
	}
	require.NotNil(t, setPriorityCall)
	assert.Equal(t, uint32(transport.PriorityHighest), setPriorityCall.Args[2])

	require.NoError(t, group.Clear())

	clearCalls := 0
	for _, c := range host.Calls {
		if c.Method == "ClearNotificationGroup" {
			clearCalls++
		}
	}
	assert.Equal(t, 1, clearCalls)

	rec2 := svc.Get("Brakes")
	assert.True(t, rec2.Mapped, "clear must not unmap the member event")
}

func TestWithPriorityHasNoEffectAfterCreation(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	group := svc.CreateNotificationGroup().WithLowestPriority()
	require.NoError(t, group.AddEvent("Brakes"))

	group.WithHighestPriority()
	assert.Equal(t, transport.PriorityLowest, group.Priority())
}

func TestAddingSecondEventDoesNotReissuePriority(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	group := svc.CreateNotificationGroup().WithStandardPriority()
	require.NoError(t, group.AddEvent("Brakes"))
	require.NoError(t, group.AddMaskableEvent("Gear"))

	n := 0
	for _, c := range host.Calls {
		if c.Method == "SetNotificationGroupPriority" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestMapEventIsIdempotent(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	_, err = svc.MapEvent("Brakes")
	require.NoError(t, err)
	_, err = svc.MapEvent("Brakes")
	require.NoError(t, err)

	n := 0
	for _, c := range host.Calls {
		if c.Method == "MapClientEventToSimEvent" {
			n++
		}
	}
	assert.Equal(t, 1, n)
}

func TestReceiveInvokesAllRegisteredHandlers(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	rec := svc.Get("Brakes")

	var firstCalls, secondCalls int
	svc.On(rec.ID, func(Received) { firstCalls++ })
	svc.On(rec.ID, func(Received) { secondCalls++ })

	inject(host, conn.Handle(), 1, rec.ID, 0)
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)

	assert.Equal(t, 1, firstCalls)
	assert.Equal(t, 1, secondCalls)
}

func TestOffRemovesOnlyThatHandler(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	rec := svc.Get("Brakes")

	var firstCalls, secondCalls int
	h1 := svc.On(rec.ID, func(Received) { firstCalls++ })
	svc.On(rec.ID, func(Received) { secondCalls++ })
	svc.Off(rec.ID, h1)

	inject(host, conn.Handle(), 1, rec.ID, 0)
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)

	assert.Equal(t, 0, firstCalls)
	assert.Equal(t, 1, secondCalls)
}

func TestSendEventWithPrioritySetsGroupIDIsPriorityFlag(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, eventMsgType, decode)
	rec := svc.Get("Brakes")

	require.NoError(t, svc.SendEventWithPriority(rec.ID, transport.PriorityStandard, transport.ClientEventData{}))

	found := false
	for _, c := range host.Calls {
		if c.Method == "TransmitClientEvent" {
			assert.Equal(t, uint32(transport.PriorityStandard), c.Args[3])
			assert.Equal(t, transport.EventFlagGroupIDIsPriority, c.Args[4])
			found = true
		}
	}
	assert.True(t, found)
}
