package datadef

import (
	"unsafe"

	"github.com/flightsim-go/simconnect/internal/wire"
	"github.com/flightsim-go/simconnect/pkg/transport"
)

// AddLatLonAlt binds a LatLonAlt composite by offset, as a single
// 24-byte field. Prefer this over AddLatLonAltScalars whenever the
// record already has a LatLonAlt-typed member, per the composite-first
// resolution of the position-binding ambiguity.
func (d *DataDefinition[R]) AddLatLonAlt(ptr *wire.LatLonAlt, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeLatLonAlt,
		hasOffset: true, size: wire.SizeLatLonAlt,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutLatLonAlt(*(*wire.LatLonAlt)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeLatLonAlt
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadLatLonAlt()
			if err != nil {
				return err
			}
			*(*wire.LatLonAlt)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

// AddLatLonAltScalars binds a position held as three separate float64
// members instead of one LatLonAlt-typed field. Each component becomes
// its own field entry with its own conventional Protocol name, matching
// the host's three-separate-variables calling convention.
func (d *DataDefinition[R]) AddLatLonAltScalars(latPtr, lonPtr, altPtr *float64, latName, lonName, altName string) {
	d.AddFloat64(latPtr, latName, "degrees", 0)
	d.AddFloat64(lonPtr, lonName, "degrees", 0)
	d.AddFloat64(altPtr, altName, "feet", 0)
}

func (d *DataDefinition[R]) AddXYZ(ptr *wire.XYZ, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeXYZ,
		hasOffset: true, size: wire.SizeXYZ,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutXYZ(*(*wire.XYZ)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeXYZ
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadXYZ()
			if err != nil {
				return err
			}
			*(*wire.XYZ)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

// AddPBH binds a pitch/bank/heading triple stored on the wire as three
// float32s, matching the host SDK's own PBH struct layout — unlike
// LatLonAlt/XYZ, which are float64.
func (d *DataDefinition[R]) AddPBH(ptr *wire.PBH, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypePBH,
		hasOffset: true, size: wire.SizePBH,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutPBH(*(*wire.PBH)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizePBH
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadPBH()
			if err != nil {
				return err
			}
			*(*wire.PBH)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddInitPosition(ptr *wire.InitPosition, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeInitPosition,
		hasOffset: true, size: wire.SizeInitPosition,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutInitPosition(*(*wire.InitPosition)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeInitPosition
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadInitPosition()
			if err != nil {
				return err
			}
			*(*wire.InitPosition)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddWaypoint(ptr *wire.Waypoint, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeWaypoint,
		hasOffset: true, size: wire.SizeWaypoint,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutWaypoint(*(*wire.Waypoint)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeWaypoint
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadWaypoint()
			if err != nil {
				return err
			}
			*(*wire.Waypoint)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}

func (d *DataDefinition[R]) AddMarker(ptr *wire.MarkerState, name, units string) {
	off := d.offsetOf(unsafe.Pointer(ptr))
	d.addField(&field[R]{
		name: name, units: units, dataType: transport.DataTypeMarkerState,
		hasOffset: true, size: wire.SizeMarkerState, nonMappable: true,
		marshal: func(b *wire.Builder, r *R) int {
			b.PutMarkerState(*(*wire.MarkerState)(unsafe.Add(unsafe.Pointer(r), off)))
			return wire.SizeMarkerState
		},
		unmarshal: func(rd *wire.Reader, r *R) error {
			v, err := rd.ReadMarkerState()
			if err != nil {
				return err
			}
			*(*wire.MarkerState)(unsafe.Add(unsafe.Pointer(r), off)) = v
			return nil
		},
	})
}
