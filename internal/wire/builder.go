package wire

import "math"

// Builder is an append-only buffer for constructing a packed data block.
// All Put* methods write native little-endian values with no inter-field
// padding; callers control alignment by field ordering, matching the way
// DataDefinition registers fields in declaration order.
type Builder struct {
	buf []byte
}

// NewBuilder returns an empty Builder with capacity pre-reserved.
func NewBuilder(sizeHint int) *Builder {
	if sizeHint < 0 {
		sizeHint = 0
	}
	return &Builder{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated data block.
func (b *Builder) Bytes() []byte { return b.buf }

// Len reports the current size of the accumulated block.
func (b *Builder) Len() int { return len(b.buf) }

func (b *Builder) PutInt8(v int8) { b.buf = append(b.buf, byte(v)) }

func (b *Builder) PutUint8(v uint8) { b.buf = append(b.buf, v) }

func (b *Builder) PutInt32(v int32) { b.PutUint32(uint32(v)) }

func (b *Builder) PutUint32(v uint32) {
	b.buf = append(b.buf, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func (b *Builder) PutInt64(v int64) { b.PutUint64(uint64(v)) }

func (b *Builder) PutUint64(v uint64) {
	b.buf = append(b.buf,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}

func (b *Builder) PutFloat32(v float32) { b.PutUint32(math.Float32bits(v)) }

func (b *Builder) PutFloat64(v float64) { b.PutUint64(math.Float64bits(v)) }

func (b *Builder) PutBool32(v bool) {
	if v {
		b.PutUint32(1)
	} else {
		b.PutUint32(0)
	}
}

// PutStringN writes exactly n bytes: s followed by zero padding when s is
// shorter than n, or the first n bytes of s with no terminator when s is n
// bytes or longer (the host's "fits exactly" convention).
func (b *Builder) PutStringN(s string, n int) {
	raw := make([]byte, n)
	if len(s) >= n {
		copy(raw, s[:n])
	} else {
		copy(raw, s)
	}
	b.buf = append(b.buf, raw...)
}

// PutStringV writes s followed by a single NUL terminator and nothing
// else: size is strlen(s)+1 and is not known to the caller beforehand.
func (b *Builder) PutStringV(s string) {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
}

func (b *Builder) PutLatLonAlt(v LatLonAlt) {
	b.PutFloat64(v.Latitude)
	b.PutFloat64(v.Longitude)
	b.PutFloat64(v.Altitude)
}

func (b *Builder) PutXYZ(v XYZ) {
	b.PutFloat64(v.X)
	b.PutFloat64(v.Y)
	b.PutFloat64(v.Z)
}

func (b *Builder) PutPBH(v PBH) {
	b.PutFloat32(v.Pitch)
	b.PutFloat32(v.Bank)
	b.PutFloat32(v.Heading)
}

func (b *Builder) PutInitPosition(v InitPosition) {
	b.PutFloat64(v.Latitude)
	b.PutFloat64(v.Longitude)
	b.PutFloat64(v.Altitude)
	b.PutFloat64(v.Pitch)
	b.PutFloat64(v.Bank)
	b.PutFloat64(v.Heading)
	b.PutUint32(v.OnGround)
	b.PutUint32(v.Airspeed)
}

func (b *Builder) PutMarkerState(v MarkerState) {
	b.PutStringN(v.Name, String64)
	b.PutFloat32(v.Altitude)
}

func (b *Builder) PutWaypoint(v Waypoint) {
	b.PutFloat64(v.Latitude)
	b.PutFloat64(v.Longitude)
	b.PutFloat64(v.Altitude)
	b.PutUint32(v.Flags)
	b.PutFloat64(v.SpeedKnots)
	b.PutFloat64(v.ThrottlePercent)
}

// PutRaw appends pre-encoded bytes verbatim, used by the mapping fast path
// where a record's memory image is copied directly onto the wire.
func (b *Builder) PutRaw(p []byte) { b.buf = append(b.buf, p...) }
