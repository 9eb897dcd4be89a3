// Package endian provides the byte order utility used across the column
// codec.
//
// CCF is little-endian only (spec §6): every multi-byte field in the file
// prefix, the header directory, and the column payload is written with the
// same engine. This package extends Go's standard encoding/binary package
// by combining ByteOrder and AppendByteOrder into a single interface.
//
// # Basic Usage
//
//	engine := endian.Engine()
//	engine.PutUint32(buf, value)
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for convenient byte order operations.
//
// binary.LittleEndian satisfies this interface directly.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Engine returns the little-endian engine used by every CCF file.
func Engine() EndianEngine {
	return binary.LittleEndian
}
