// Package endian supplies the byte-order engine the table codec encodes
// fixed-width fields with.
package endian

import "encoding/binary"

// EndianEngine is the combined read/append byte-order surface the encoder
// and decoder share: binary.ByteOrder for parsing fixed-width fields and
// binary.AppendByteOrder for building output buffers. binary.LittleEndian
// and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine, the default byte
// order of table files.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine, used when a file header
// declares big-endian in its flag word.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
