package section

import "sidracap/endian"

// ColumnIndexEntry locates one column's payload inside the uncompressed
// data section. Entries are fixed 16 bytes so the index can be scanned
// without parsing.
//
// Byte layout:
//
//	[0:8]   NameHash (xxHash64 of the column display name)
//	[8:12]  Offset into the uncompressed data section
//	[12:16] Size of the column payload in bytes
type ColumnIndexEntry struct {
	// NameHash is the xxHash64 of the column's display name. It lets
	// readers verify that names payload and index agree.
	NameHash uint64
	// Offset is the byte offset of the column payload inside the
	// uncompressed data section.
	Offset uint32
	// Size is the byte length of the column payload.
	Size uint32
}

// AppendTo serializes the entry and appends it to buf.
func (e ColumnIndexEntry) AppendTo(buf []byte, engine endian.EndianEngine) []byte {
	buf = engine.AppendUint64(buf, e.NameHash)
	buf = engine.AppendUint32(buf, e.Offset)
	buf = engine.AppendUint32(buf, e.Size)

	return buf
}

// ParseColumnIndexEntry parses one index entry from a 16-byte slice.
func ParseColumnIndexEntry(data []byte, engine endian.EndianEngine) ColumnIndexEntry {
	return ColumnIndexEntry{
		NameHash: engine.Uint64(data[0:8]),
		Offset:   engine.Uint32(data[8:12]),
		Size:     engine.Uint32(data[12:16]),
	}
}
