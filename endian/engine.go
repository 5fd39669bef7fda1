// Package endian provides the byte order helpers used by the region file format.
//
// Every multi-byte integer in a region file is big-endian: payload lengths,
// timestamps, and the 24-bit sector offsets packed into location entries.
// This package combines binary.ByteOrder and binary.AppendByteOrder into
// EndianEngine and adds the 24-bit accessors the standard library lacks.
//
// # Basic Usage
//
//	engine := endian.GetBigEndianEngine()
//	length := engine.Uint32(buf[0:4])
//	offset := endian.Uint24(entry[0:3])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
package endian

import "encoding/binary"

// MaxUint24 is the largest value representable in a 24-bit field.
const MaxUint24 = 1<<24 - 1

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine used by region files.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Uint24 decodes a big-endian 24-bit unsigned integer from b[0:3].
func Uint24(b []byte) uint32 {
	_ = b[2] // bounds check hint to compiler

	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// PutUint24 encodes the low 24 bits of v into b[0:3], big-endian.
// Higher bits are discarded.
func PutUint24(b []byte, v uint32) {
	_ = b[2] // bounds check hint to compiler
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// AppendUint24 appends the big-endian encoding of the low 24 bits of v to b.
func AppendUint24(b []byte, v uint32) []byte {
	return append(b, byte(v>>16), byte(v>>8), byte(v))
}
