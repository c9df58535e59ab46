package datadef

import (
	"unsafe"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// AddInt32 binds an int32 field by offset: ptr must point into the
// sample record this definition was constructed with.
func (d *DataDefinition[R]) AddInt32(ptr *int32, name, units string, epsilon float32) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInt32, epsilon: epsilon,
		hasOffset: true, size: wire.SizeInt32,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutInt32(*(*int32)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeInt32
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadInt32()
			if err != nil {
				return err
			}
			*(*int32)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

// AddInt32Func binds an int32 field through a getter/setter pair instead
// of an offset, disabling the mapping fast path for this definition.
func (d *DataDefinition[R]) AddInt32Func(get func(*R) int32, set func(*R, int32), name, units string, epsilon float32) {
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInt32, epsilon: epsilon,
		hasOffset: false, size: wire.SizeInt32,
		marshal: func(b *wire.Builder, r *R) int { b.PutInt32(get(r)); return wire.SizeInt32 },
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadInt32()
			if err != nil {
				return err
			}
			set(r, v)
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddInt64(ptr *int64, name, units string, epsilon float32) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInt64, epsilon: epsilon,
		hasOffset: true, size: wire.SizeInt64,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutInt64(*(*int64)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeInt64
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadInt64()
			if err != nil {
				return err
			}
			*(*int64)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddInt64Func(get func(*R) int64, set func(*R, int64), name, units string, epsilon float32) {
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInt64, epsilon: epsilon,
		hasOffset: false, size: wire.SizeInt64,
		marshal: func(b *wire.Builder, r *R) int { b.PutInt64(get(r)); return wire.SizeInt64 },
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadInt64()
			if err != nil {
				return err
			}
			set(r, v)
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddFloat32(ptr *float32, name, units string, epsilon float32) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeFloat32, epsilon: epsilon,
		hasOffset: true, size: wire.SizeFloat32,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutFloat32(*(*float32)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeFloat32
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadFloat32()
			if err != nil {
				return err
			}
			*(*float32)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddFloat32Func(get func(*R) float32, set func(*R, float32), name, units string, epsilon float32) {
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeFloat32, epsilon: epsilon,
		hasOffset: false, size: wire.SizeFloat32,
		marshal: func(b *wire.Builder, r *R) int { b.PutFloat32(get(r)); return wire.SizeFloat32 },
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadFloat32()
			if err != nil {
				return err
			}
			set(r, v)
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddFloat64(ptr *float64, name, units string, epsilon float32) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeFloat64, epsilon: epsilon,
		hasOffset: true, size: wire.SizeFloat64,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutFloat64(*(*float64)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeFloat64
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadFloat64()
			if err != nil {
				return err
			}
			*(*float64)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddFloat64Func(get func(*R) float64, set func(*R, float64), name, units string, epsilon float32) {
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeFloat64, epsilon: epsilon,
		hasOffset: false, size: wire.SizeFloat64,
		marshal: func(b *wire.Builder, r *R) int { b.PutFloat64(get(r)); return wire.SizeFloat64 },
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadFloat64()
			if err != nil {
				return err
			}
			set(r, v)
			return nil
		},
	})
}

// AddBool32 binds a bool field stored on the wire as a 32-bit word, the
// Protocol's convention for every boolean-valued variable. Go's bool
// occupies one byte, not four, so the field is offset-bound but marked
// nonMappable: a direct memory copy of *R to the wire would read three
// bytes of adjacent struct memory (or padding) as part of the value
// instead of the zero-fill PutBool32/ReadBool32 apply.
func (d *DataDefinition[R]) AddBool32(ptr *bool, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInt32,
		hasOffset: true, size: wire.SizeBool32, nonMappable: true,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutBool32(*(*bool)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeBool32
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadBool32()
			if err != nil {
				return err
			}
			*(*bool)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}
