// Package section defines the fixed-size on-disk sections of a table file:
// the 32-byte header with its packed flag word, and the 16-byte per-column
// index entries.
//
// A table file is laid out as:
//
//	header (32 bytes) | index (16 bytes × columns) | column names (varstring) | data section
//
// The header records the magic number, byte order, data compression, column
// and row counts, the data section's offset and uncompressed size, and an
// xxHash64 checksum of the data section as stored (after compression). The
// index maps each column to its payload range inside the uncompressed data
// section; column display names follow the index as length-prefixed strings.
package section
