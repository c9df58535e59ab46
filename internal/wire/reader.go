package wire

import (
	"bytes"
	"fmt"
	"math"
)

// Reader is a position-tracking view over a packed data block. Every Read*
// method advances the cursor by exactly the field's wire size and returns
// an error if the block is exhausted first, rather than panicking on a
// malformed or short frame.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Remaining reports how many bytes are left unread.
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

// Pos reports the current cursor offset.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) need(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("wire: need %d bytes, have %d at offset %d", n, r.Remaining(), r.pos)
	}
	p := r.buf[r.pos : r.pos+n]
	r.pos += n
	return p, nil
}

func (r *Reader) ReadInt8() (int8, error) {
	p, err := r.need(1)
	if err != nil {
		return 0, err
	}
	return int8(p[0]), nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	p, err := r.need(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	p, err := r.need(4)
	if err != nil {
		return 0, err
	}
	return uint32(p[0]) | uint32(p[1])<<8 | uint32(p[2])<<16 | uint32(p[3])<<24, nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	p, err := r.need(8)
	if err != nil {
		return 0, err
	}
	return uint64(p[0]) | uint64(p[1])<<8 | uint64(p[2])<<16 | uint64(p[3])<<24 |
		uint64(p[4])<<32 | uint64(p[5])<<40 | uint64(p[6])<<48 | uint64(p[7])<<56, nil
}

func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

func (r *Reader) ReadBool32() (bool, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// ReadStringN reads exactly n bytes and returns the string up to the first
// NUL, or all n bytes if none is found (the "fits exactly" case).
func (r *Reader) ReadStringN(n int) (string, error) {
	p, err := r.need(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(p, 0); i >= 0 {
		return string(p[:i]), nil
	}
	return string(p), nil
}

// ReadStringV reads bytes up to and including the next NUL, returning the
// string without the terminator. Size is not known ahead of time.
func (r *Reader) ReadStringV() (string, error) {
	i := bytes.IndexByte(r.buf[r.pos:], 0)
	if i < 0 {
		return "", fmt.Errorf("wire: unterminated variable-length string at offset %d", r.pos)
	}
	s := string(r.buf[r.pos : r.pos+i])
	r.pos += i + 1
	return s, nil
}

func (r *Reader) ReadLatLonAlt() (LatLonAlt, error) {
	var v LatLonAlt
	var err error
	if v.Latitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Longitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Altitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	return v, nil
}

func (r *Reader) ReadXYZ() (XYZ, error) {
	var v XYZ
	var err error
	if v.X, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Y, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Z, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	return v, nil
}

func (r *Reader) ReadPBH() (PBH, error) {
	var v PBH
	var err error
	if v.Pitch, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	if v.Bank, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	if v.Heading, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	return v, nil
}

func (r *Reader) ReadInitPosition() (InitPosition, error) {
	var v InitPosition
	var err error
	if v.Latitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Longitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Altitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Pitch, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Bank, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Heading, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.OnGround, err = r.ReadUint32(); err != nil {
		return v, err
	}
	if v.Airspeed, err = r.ReadUint32(); err != nil {
		return v, err
	}
	return v, nil
}

func (r *Reader) ReadMarkerState() (MarkerState, error) {
	var v MarkerState
	var err error
	if v.Name, err = r.ReadStringN(String64); err != nil {
		return v, err
	}
	if v.Altitude, err = r.ReadFloat32(); err != nil {
		return v, err
	}
	return v, nil
}

func (r *Reader) ReadWaypoint() (Waypoint, error) {
	var v Waypoint
	var err error
	if v.Latitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Longitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Altitude, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.Flags, err = r.ReadUint32(); err != nil {
		return v, err
	}
	if v.SpeedKnots, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	if v.ThrottlePercent, err = r.ReadFloat64(); err != nil {
		return v, err
	}
	return v, nil
}

// ReadRaw reads n raw bytes verbatim, used by the mapping fast path.
func (r *Reader) ReadRaw(n int) ([]byte, error) {
	return r.need(n)
}
