package simobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/connection"
	"github.com/flightsim-go/simconnect/pkg/datadef"
	"github.com/flightsim-go/simconnect/pkg/transport"
	"github.com/flightsim-go/simconnect/pkg/transport/fake"
)

const simObjectMsgType = 20

type aircraftState struct {
	Altitude float64
	objID    uint32
}

func (a *aircraftState) SetSimObjectID(id uint32) { a.objID = id }

func newAircraftDef() (*aircraftState, *datadef.DataDefinition[aircraftState]) {
	var sample aircraftState
	dd := datadef.New(&sample, false)
	dd.AddFloat64(&sample.Altitude, "PLANE ALTITUDE", "feet", 0)
	return &sample, dd
}

// decodeByType parses the by-type envelope: a 12-byte header of
// objectID/entryNum/outOf ahead of the marshalled record.
func decodeByType(raw transport.Frame) (Frame, error) {
	rd := wire.NewReader(raw.Data)
	objID, err := rd.ReadUint32()
	if err != nil {
		return Frame{}, err
	}
	entryNum, err := rd.ReadUint32()
	if err != nil {
		return Frame{}, err
	}
	outOf, err := rd.ReadUint32()
	if err != nil {
		return Frame{}, err
	}
	return Frame{RequestID: raw.Version, ObjectID: objID, EntryNum: entryNum, OutOf: outOf, Data: raw.Data[12:]}, nil
}

func decodeSingle(raw transport.Frame) (Frame, error) {
	return Frame{RequestID: raw.Version, ObjectID: 1, EntryNum: 0, OutOf: 1, Data: raw.Data}, nil
}

func TestRequestOnceInvokesCallbackOnceAndRemovesHandler(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, simObjectMsgType, decodeSingle)
	sample, dd := newAircraftDef()
	sample.Altitude = 3500

	var calls int
	req, err := RequestOnce(svc, 1, dd, ObjectIDCurrent, func(r aircraftState) {
		calls++
		assert.Equal(t, 3500.0, r.Altitude)
		assert.EqualValues(t, 1, r.objID)
	})
	require.NoError(t, err)

	b := wire.NewBuilder(0)
	dd.Marshal(b, sample)
	host.InjectFrame(conn.Handle(), transport.Frame{ID: simObjectMsgType, Version: req.ID(), Data: b.Bytes()})
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	// Completion latching (property #5): a second frame for the same
	// request id must not invoke the callback again.
	host.InjectFrame(conn.Handle(), transport.Frame{ID: simObjectMsgType, Version: req.ID(), Data: b.Bytes()})
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestRequestPeriodicInvokesCallbackEveryFrameUntilCancelled(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, simObjectMsgType, decodeSingle)
	sample, dd := newAircraftDef()

	var calls int
	req, err := RequestPeriodic(svc, 1, dd, ObjectIDCurrent, PeriodicOptions{Period: transport.PeriodSimFrame}, func(aircraftState) { calls++ })
	require.NoError(t, err)

	b := wire.NewBuilder(0)
	dd.Marshal(b, sample)
	for i := 0; i < 3; i++ {
		host.InjectFrame(conn.Handle(), transport.Frame{ID: simObjectMsgType, Version: req.ID(), Data: b.Bytes()})
	}
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	req.Cancel()
	host.InjectFrame(conn.Handle(), transport.Frame{ID: simObjectMsgType, Version: req.ID(), Data: b.Bytes()})
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 3, calls, "no further callbacks after cancel (property #7)")
}

// TestRequestByTypeCompletionAfterAllEntries exercises scenario S6: 5
// frames, entry_numbers (0..4), out_of=5, one record each, expecting 5
// per-object callbacks followed by exactly one completion callback.
func TestRequestByTypeCompletionAfterAllEntries(t *testing.T) {
	host := fake.New()
	conn, err := connection.Open(host, "TestApp", 0)
	require.NoError(t, err)

	svc := New(conn, simObjectMsgType, decodeByType)
	sample, dd := newAircraftDef()

	var perObjectCalls int
	var completions int
	var lastResultCount int

	req, err := RequestByType(svc, 1, dd, ByTypeOptions[aircraftState]{
		RadiusMeters: 10000,
		ObjectType:   transport.SimObjectTypeAircraft,
		PerObject:    func(objID uint32, r aircraftState) { perObjectCalls++ },
		OnComplete: func(results map[uint32]aircraftState) {
			completions++
			lastResultCount = len(results)
		},
	})
	require.NoError(t, err)

	b := wire.NewBuilder(0)
	dd.Marshal(b, sample)
	record := b.Bytes()

	send := func(objID, entryNum, outOf uint32) {
		env := wire.NewBuilder(0)
		env.PutUint32(objID)
		env.PutUint32(entryNum)
		env.PutUint32(outOf)
		env.PutRaw(record)
		host.InjectFrame(conn.Handle(), transport.Frame{ID: simObjectMsgType, Version: req.ID(), Data: env.Bytes()})
	}

	// 5 entries total, delivered as 5 routed frames (one record per
	// frame is this transport's envelope contract).
	send(1, 0, 5)
	send(2, 1, 5)
	send(3, 2, 5)
	send(4, 3, 5)
	send(5, 4, 5)

	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)

	assert.Equal(t, 5, perObjectCalls)
	assert.Equal(t, 1, completions)
	assert.Equal(t, 5, lastResultCount)

	// The handler must have removed itself: a further frame for this
	// request id is silently dropped.
	send(6, 0, 1)
	_, err = conn.Dispatcher().Pump(host, conn.Handle())
	require.NoError(t, err)
	assert.Equal(t, 1, completions)
}
