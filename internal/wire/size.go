package wire

// Fixed wire sizes, in bytes, for types whose size does not depend on
// runtime content. Variable-length strings have no entry here: their size
// is only known during marshalling.
const (
	SizeInt8    = 1
	SizeInt32   = 4
	SizeInt64   = 8
	SizeFloat32 = 4
	SizeFloat64 = 8
	SizeBool32  = 4

	SizeLatLonAlt   = 3 * SizeFloat64
	SizeXYZ         = 3 * SizeFloat64
	SizePBH         = 3 * SizeFloat32
	SizeInitPosition = 6*SizeFloat64 + 2*SizeInt32
	SizeMarkerState = String64 + SizeFloat32
	SizeWaypoint    = 3*SizeFloat64 + SizeInt32 + 2*SizeFloat64
)
