// Package endian provides byte order utilities for the snapshot codecs.
//
// The snapshot wire format is little-endian everywhere, but the codec
// functions take an EndianEngine parameter rather than hard-coding
// binary.LittleEndian: it keeps the decode helpers symmetric with their
// encode counterparts and lets the hot paths detect when the host byte
// order matches the wire order and take a bulk-copy shortcut (see the
// allocation array decode in the snapshot package).
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into one interface. binary.LittleEndian and binary.BigEndian both satisfy
// it, so codecs can read fixed fields and append encoded output through the
// same value.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Native returns the host's byte order, probed through a fixed 16-bit value.
func Native() binary.ByteOrder {
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

// IsNativeLittleEndian reports whether the host stores integers
// little-endian, i.e. whether wire-order bytes can be reinterpreted
// in place.
func IsNativeLittleEndian() bool {
	return Native() == binary.LittleEndian
}

// MatchesNative reports whether engine matches the host byte order.
func MatchesNative(engine EndianEngine) bool {
	return engine == Native()
}

// GetLittleEndianEngine returns the little-endian engine. This is the wire
// order of the snapshot format; every production caller uses it.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine. Only tests use it, to
// prove the codecs honor the engine they are given.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
