package datadef

import (
	"unsafe"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

func stringDataType(n int) transport.DataType {
	switch n {
	case wire.String8:
		return transport.DataTypeString8
	case wire.String32:
		return transport.DataTypeString32
	case wire.String64:
		return transport.DataTypeString64
	case wire.String128:
		return transport.DataTypeString128
	case wire.String256:
		return transport.DataTypeString256
	case wire.String260:
		return transport.DataTypeString260
	default:
		return transport.DataTypeStringV
	}
}

// addFixedStringOffset is shared by AddString8..AddString260: ptr points
// at a fixed [n]byte array field whose bytes already are the wire image
// (NUL-padded by the caller, typically by zero-initializing the sample
// record), so marshal/unmarshal copy the array verbatim.
func addFixedStringOffset[R any](d *DataDefinition[R], ptr unsafe.Pointer, n int, name, units string) {
	off := d.offsetOf(ptr)
	d.addField(&field[R]{
		name: name, units: units, dataType: stringDataType(n),
		hasOffset: true, size: n,
		marshal: func(b *wire.Builder, r *R) int {
			raw := unsafe.Slice((*byte)(unsafe.Add(unsafe.Pointer(r), off)), n)
			b.PutRaw(raw)
			return n
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			raw, err := rd.ReadRaw(n)
			if err != nil {
				return err
			}
			dst := unsafe.Slice((*byte)(unsafe.Add(unsafe.Pointer(r), off)), n)
			copy(dst, raw)
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddString8(ptr *[8]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String8, name, units)
}

func (d *DataDefinition[R]) AddString32(ptr *[32]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String32, name, units)
}

func (d *DataDefinition[R]) AddString64(ptr *[64]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String64, name, units)
}

func (d *DataDefinition[R]) AddString128(ptr *[128]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String128, name, units)
}

func (d *DataDefinition[R]) AddString256(ptr *[256]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String256, name, units)
}

func (d *DataDefinition[R]) AddString260(ptr *[260]byte, name, units string) {
	addFixedStringOffset(d, unsafe.Pointer(ptr), wire.String260, name, units)
}

// addFixedStringFunc is shared by the *Func fixed-width string binders:
// a getter/setter pair of plain Go strings, always disabling mapping.
func addFixedStringFunc[R any](d *DataDefinition[R], n int, get func(*R) string, set func(*R, string), name, units string) {
	d.addField(&field[R]{
		name: name, units: units, dataType: stringDataType(n),
		hasOffset: false, size: n,
		marshal: func(b *wire.Builder, r *R) int { b.PutStringN(get(r), n); return n },
		unmarshal: func(rd *wire.Reader, r *R) error {
			s, err := rd.ReadStringN(n)
			if err != nil {
				return err
			}
			set(r, s)
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddString8Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String8, get, set, name, units)
}

func (d *DataDefinition[R]) AddString32Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String32, get, set, name, units)
}

func (d *DataDefinition[R]) AddString64Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String64, get, set, name, units)
}

func (d *DataDefinition[R]) AddString128Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String128, get, set, name, units)
}

func (d *DataDefinition[R]) AddString256Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String256, get, set, name, units)
}

func (d *DataDefinition[R]) AddString260Func(get func(*R) string, set func(*R, string), name, units string) {
	addFixedStringFunc(d, wire.String260, get, set, name, units)
}

// AddStringV binds a variable-length, NUL-terminated string field. This
// always disables mapping: the record's own string type never has a
// fixed wire width to copy verbatim.
func (d *DataDefinition[R]) AddStringV(get func(*R) string, set func(*R, string), name, units string) {
	d.hasStringVField = true
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeStringV,
		hasOffset: false, size: -1,
		marshal: func(b *wire.Builder, r *R) int {
			s := get(r)
			b.PutStringV(s)
			return len(s) + 1
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			s, err := rd.ReadStringV()
			if err != nil {
				return err
			}
			set(r, s)
			return nil
		},
	})
}
