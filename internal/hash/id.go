package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
//
// Table files use it to derive the fixed-size column identifier stored in
// each index entry from the column's display name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of the given bytes.
//
// Used as the integrity checksum of a table file's data section.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
