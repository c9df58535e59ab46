// Package wire implements the host's packed binary data-block layout: the
// byte encoding used for data-definition records, event payloads, and
// facility-data blocks exchanged with the simulator.
//
// Unlike an XDR-style wire format, this layout is native little-endian with
// no 4-byte length prefixes and no padding between variable-length fields.
// The host is Windows x86/x64 only, so there is no attempt at being
// endianness-agnostic: a big-endian host has never existed for this
// protocol and pretending otherwise would only hide bugs.
package wire

// Fixed-width string capacities the host supports. A fixed-width string
// field always occupies exactly N bytes on the wire: the payload plus a
// NUL terminator unless the payload fills the full N bytes, the remainder
// zero-padded.
const (
	String8   = 8
	String32  = 32
	String64  = 64
	String128 = 128
	String256 = 256
	String260 = 260
)
