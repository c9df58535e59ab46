package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderReaderScalarRoundTrip(t *testing.T) {
	b := NewBuilder(0)
	b.PutInt32(1234)
	b.PutInt64(0x123456789ABCDEF0)
	b.PutFloat32(3.14)
	b.PutFloat64(2.718281828459)
	b.PutStringN("ABC", String8)

	require.Equal(t, SizeInt32+SizeInt64+SizeFloat32+SizeFloat64+String8, b.Len())

	r := NewReader(b.Bytes())

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	assert.EqualValues(t, 1234, i32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	assert.EqualValues(t, 0x123456789ABCDEF0, i64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	assert.InDelta(t, 3.14, f32, 0.0001)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	assert.InDelta(t, 2.718281828459, f64, 1e-12)

	str, err := r.ReadStringN(String8)
	require.NoError(t, err)
	assert.Equal(t, "ABC", str)

	assert.Equal(t, 0, r.Remaining())
}

// TestNonMappableVariableStringLength mirrors the literal scenario of a
// record whose layout cannot be memcopied: a variable-length title
// followed by two fixed-width strings and two LatLonAlt composites.
func TestNonMappableVariableStringLength(t *testing.T) {
	b := NewBuilder(0)
	b.PutStringV("Cessna 404 Titan")
	b.PutStringN("PH-BLA", String32)
	b.PutStringN("PH-BLA", String64)
	b.PutLatLonAlt(LatLonAlt{Latitude: 52.383917, Longitude: 5.277781, Altitude: 10000})
	b.PutLatLonAlt(LatLonAlt{Latitude: 52.37278, Longitude: 4.89361, Altitude: 7.0})

	assert.Equal(t, 161, b.Len())

	r := NewReader(b.Bytes())

	title, err := r.ReadStringV()
	require.NoError(t, err)
	assert.Equal(t, "Cessna 404 Titan", title)

	tail, err := r.ReadStringN(String32)
	require.NoError(t, err)
	assert.Equal(t, "PH-BLA", tail)

	atc, err := r.ReadStringN(String64)
	require.NoError(t, err)
	assert.Equal(t, "PH-BLA", atc)

	latlonalt, err := r.ReadLatLonAlt()
	require.NoError(t, err)
	assert.Equal(t, 52.383917, latlonalt.Latitude)
	assert.Equal(t, 10000.0, latlonalt.Altitude)

	pos, err := r.ReadLatLonAlt()
	require.NoError(t, err)
	assert.Equal(t, 4.89361, pos.Longitude)

	assert.Equal(t, 0, r.Remaining())
}

func TestStringNExactFitHasNoTerminator(t *testing.T) {
	b := NewBuilder(0)
	s := "12345678" // exactly String8 bytes
	b.PutStringN(s, String8)

	r := NewReader(b.Bytes())
	got, err := r.ReadStringN(String8)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestStringNTruncatesOverlong(t *testing.T) {
	b := NewBuilder(0)
	b.PutStringN("this string is far too long for string8", String8)

	r := NewReader(b.Bytes())
	got, err := r.ReadStringN(String8)
	require.NoError(t, err)
	assert.Len(t, got, String8)
}

func TestReaderShortBufferReturnsError(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	_, err := r.ReadInt32()
	require.Error(t, err)
}

func TestReaderUnterminatedStringVReturnsError(t *testing.T) {
	r := NewReader([]byte{'a', 'b', 'c'})
	_, err := r.ReadStringV()
	require.Error(t, err)
}

func TestCompositeRoundTrips(t *testing.T) {
	b := NewBuilder(0)
	xyz := XYZ{X: 1, Y: 2, Z: 3}
	pbh := PBH{Pitch: 1.5, Bank: -2.5, Heading: 90}
	pos := InitPosition{Latitude: 1, Longitude: 2, Altitude: 3, Pitch: 4, Bank: 5, Heading: 6, OnGround: 1, Airspeed: 0}
	marker := MarkerState{Name: "VOR1", Altitude: 120.5}
	wp := Waypoint{Latitude: 10, Longitude: 20, Altitude: 30, Flags: WaypointFlagOnGround, SpeedKnots: 100, ThrottlePercent: 80}

	b.PutXYZ(xyz)
	b.PutPBH(pbh)
	b.PutInitPosition(pos)
	b.PutMarkerState(marker)
	b.PutWaypoint(wp)

	r := NewReader(b.Bytes())

	gotXYZ, err := r.ReadXYZ()
	require.NoError(t, err)
	assert.Equal(t, xyz, gotXYZ)

	gotPBH, err := r.ReadPBH()
	require.NoError(t, err)
	assert.Equal(t, pbh, gotPBH)

	gotPos, err := r.ReadInitPosition()
	require.NoError(t, err)
	assert.Equal(t, pos, gotPos)

	gotMarker, err := r.ReadMarkerState()
	require.NoError(t, err)
	assert.Equal(t, marker, gotMarker)

	gotWP, err := r.ReadWaypoint()
	require.NoError(t, err)
	assert.Equal(t, wp, gotWP)

	assert.Equal(t, 0, r.Remaining())
}

func TestPutRawAndReadRaw(t *testing.T) {
	b := NewBuilder(0)
	b.PutRaw([]byte{1, 2, 3, 4})

	r := NewReader(b.Bytes())
	got, err := r.ReadRaw(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, got)
}
