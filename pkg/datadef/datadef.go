// Package datadef implements the declarative mapping between an
// application record type and the Protocol's field list: a
// DataDefinition[R] knows how to marshal R onto a wire buffer, unmarshal
// it back, and register itself against a host's add_to_data_definition
// primitive.
//
// Two binding styles coexist on the same definition. Offset bindings
// (AddInt32, AddString64, AddLatLonAlt, ...) take a pointer into a sample
// record and read/write that field directly through an unsafe offset;
// every field bound this way, with no variable-length string among them,
// qualifies the definition for the mapping fast path. Accessor bindings
// (AddInt32Func, ...) take a getter/setter pair instead and always
// disable mapping, since the record's memory layout no longer has to
// match the wire layout.
package datadef

import (
	"fmt"
	"unsafe"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// SimObjectIdHolder is implemented by a record type that wants the
// by-type bulk SimObject service to write the recovered object id back
// into itself, rather than relying on a separate map keyed by id.
type SimObjectIdHolder interface {
	SetSimObjectID(id uint32)
}

// field is one entry of a DataDefinition's field list. Its marshal and
// unmarshal closures are built once, at Add time, so Marshal/Unmarshal
// never need a type switch over the field's DataType.
type field[R any] struct {
	name     string
	units    string
	dataType transport.DataType
	epsilon  float32
	datumID  uint32

	hasOffset bool
	size      int

	// nonMappable marks a field that is offset-bound but whose Go memory
	// representation does not match its wire encoding byte-for-byte (a
	// composite containing a Go string, whose header is a pointer+length
	// rather than the wire's NUL-padded fixed buffer). Such a field can
	// still be read/written through its offset, but must not let the
	// definition report UseMapping() == true.
	nonMappable bool

	marshal   func(b *wire.Builder, r *R) int
	unmarshal func(rd *wire.Reader, r *R) error
}

// FieldInfo is the read-only projection of a field exposed to callers
// that need to register a definition against a host (RegisterWith) or
// introspect it (Describe).
type FieldInfo struct {
	Name     string
	Units    string
	DataType transport.DataType
	Epsilon  float32
	DatumID  uint32
}

// DataDefinition binds record type R to an ordered list of Protocol
// fields.
type DataDefinition[R any] struct {
	sample *R

	useTagged bool
	nextDatum uint32

	fields     []*field[R]
	datumIndex map[uint32]*field[R]

	hasAccessorField bool
	hasStringVField  bool
	useMapping       bool
}

// New returns an empty DataDefinition for R. sample must be a pointer to
// a record the caller keeps alive for the lifetime of every Add* call
// made with an offset binding: its address is the base every field
// offset is computed relative to. useTagged selects whether datum ids
// are auto-assigned sequentially (tagged delivery) or left as the host's
// "unused" sentinel (untagged delivery), resolving the ambiguity between
// the two calling conventions at construction time rather than guessing
// per field.
func New[R any](sample *R, useTagged bool) *DataDefinition[R] {
	return &DataDefinition[R]{sample: sample, useTagged: useTagged, useMapping: true}
}

func (d *DataDefinition[R]) nextDatumID() uint32 {
	if !d.useTagged {
		return transport.UnusedDatumID
	}
	id := d.nextDatum
	d.nextDatum++
	return id
}

func (d *DataDefinition[R]) offsetOf(ptr unsafe.Pointer) uintptr {
	return uintptr(ptr) - uintptr(unsafe.Pointer(d.sample))
}

func (d *DataDefinition[R]) addField(f *field[R]) {
	f.datumID = d.nextDatumID()
	d.fields = append(d.fields, f)
	d.byDatumID()[f.datumID] = f
	if !f.hasOffset {
		d.hasAccessorField = true
	}
	d.recomputeUseMapping()
}

// byDatumID lazily builds the datum-id lookup used by UnmarshalTagged. It
// is rebuilt implicitly as fields are added since field pointers are
// stable once appended.
func (d *DataDefinition[R]) byDatumID() map[uint32]*field[R] {
	if d.datumIndex == nil {
		d.datumIndex = make(map[uint32]*field[R])
	}
	return d.datumIndex
}

func (d *DataDefinition[R]) recomputeUseMapping() {
	if d.hasAccessorField || d.hasStringVField {
		d.useMapping = false
		return
	}
	var total uintptr
	for _, f := range d.fields {
		if !f.hasOffset || f.nonMappable {
			d.useMapping = false
			return
		}
		total += uintptr(f.size)
	}
	var zero R
	d.useMapping = total == unsafe.Sizeof(zero)
}

// UseMapping reports whether every field uses direct offset binding, no
// field is variable-length, and the accumulated field size equals
// sizeof(R): the precondition under which the host's documented
// direct-copy fast path applies.
func (d *DataDefinition[R]) UseMapping() bool { return d.useMapping }

// Size returns the wire size of one record. Fixed-size definitions
// return a constant independent of r; a definition holding a
// variable-length string field requires r so that field's runtime
// length can be added in.
func (d *DataDefinition[R]) Size(r *R) int {
	total := 0
	for _, f := range d.fields {
		if f.size >= 0 {
			total += f.size
		} else {
			total += f.marshal(discardBuilder(), r)
		}
	}
	return total
}

// Marshal writes one record's fields, in registration order, onto b.
func (d *DataDefinition[R]) Marshal(b *wire.Builder, r *R) {
	for _, f := range d.fields {
		f.marshal(b, r)
	}
}

// Unmarshal reads one record's fields, in registration order, from rd.
// This is the untagged decode path: the simulator is assumed to have
// delivered fields in the same order the definition registered them.
func (d *DataDefinition[R]) Unmarshal(rd *wire.Reader, r *R) error {
	for _, f := range d.fields {
		if err := f.unmarshal(rd, r); err != nil {
			return fmt.Errorf("datadef: field %q: %w", f.name, err)
		}
	}
	return nil
}

// UnmarshalTagged reads fieldCount (datum-id, value) pairs from rd,
// dispatching each to the field registered under that datum id. This is
// the tagged decode path, used when the simulator delivers a sparse or
// reordered update.
func (d *DataDefinition[R]) UnmarshalTagged(rd *wire.Reader, r *R, fieldCount int) error {
	for i := 0; i < fieldCount; i++ {
		datumID, err := rd.ReadUint32()
		if err != nil {
			return fmt.Errorf("datadef: tagged entry %d: %w", i, err)
		}
		f, ok := d.byDatumID()[datumID]
		if !ok {
			return fmt.Errorf("datadef: unknown datum id %d", datumID)
		}
		if err := f.unmarshal(rd, r); err != nil {
			return fmt.Errorf("datadef: datum id %d: %w", datumID, err)
		}
	}
	return nil
}

// Describe returns the field list's host-facing metadata, in
// registration order, for RegisterWith or introspection.
func (d *DataDefinition[R]) Describe() []FieldInfo {
	out := make([]FieldInfo, len(d.fields))
	for i, f := range d.fields {
		out[i] = FieldInfo{Name: f.name, Units: f.units, DataType: f.dataType, Epsilon: f.epsilon, DatumID: f.datumID}
	}
	return out
}

// RegisterWith issues one add_to_data_definition call per field, in
// registration order.
func (d *DataDefinition[R]) RegisterWith(host transport.RawHost, handle transport.Handle, defID uint32) error {
	for _, f := range d.fields {
		if err := host.AddToDataDefinition(handle, defID, f.name, f.units, f.dataType, f.epsilon, f.datumID); err != nil {
			return fmt.Errorf("datadef: register field %q: %w", f.name, err)
		}
	}
	return nil
}

// discardBuilder returns a fresh zero-capacity Builder used only to
// measure a variable-length field's marshalled size without retaining
// the bytes.
func discardBuilder() *wire.Builder { return wire.NewBuilder(0) }
