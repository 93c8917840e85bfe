package section

import (
	"sidracap/endian"
	"sidracap/errs"
)

// TableHeader is the fixed-size header section of a table file.
// It is 32 bytes and describes the file's layout and integrity data.
//
// Byte layout:
//
//	[0:2]   Flag.Options (always little-endian)
//	[2]     reserved, must be zero
//	[3]     Flag.DataCompression
//	[4:8]   ColumnCount
//	[8:12]  RowCount
//	[12:16] DataOffset
//	[16:20] DataSize (uncompressed)
//	[20:28] Checksum (xxHash64 of the data section as stored)
//	[28:32] reserved, must be zero
type TableHeader struct {
	// Flag is the packed field for format options and the magic number.
	Flag TableFlag

	// ColumnCount is the number of columns, max 65535.
	ColumnCount uint32
	// RowCount is the number of rows.
	RowCount uint32
	// DataOffset is the byte offset to the start of the data section.
	DataOffset uint32
	// DataSize is the uncompressed size of the data section in bytes.
	DataSize uint32
	// Checksum is the xxHash64 of the data section bytes as stored in the
	// file (i.e. after compression). Verified on decode.
	Checksum uint64

	Reserved [4]byte
}

// NewTableHeader creates a TableHeader for the given column and row counts.
// DataOffset, DataSize and Checksum are filled in by the encoder once the
// variable-length sections are assembled.
func NewTableHeader(columnCount, rowCount int) (*TableHeader, error) {
	if columnCount < 0 || columnCount > MaxColumnCount {
		return nil, errs.ErrInvalidColumnCount
	}

	return &TableHeader{
		Flag:        NewTableFlag(),
		ColumnCount: uint32(columnCount), //nolint:gosec
		RowCount:    uint32(rowCount),    //nolint:gosec
	}, nil
}

// IndexOffset returns the byte offset of the column index section.
func (h *TableHeader) IndexOffset() int {
	return IndexOffsetOffset
}

// NamesOffset returns the byte offset of the column names payload.
func (h *TableHeader) NamesOffset() int {
	return IndexOffsetOffset + int(h.ColumnCount)*ColumnIndexEntrySize
}

// Parse parses the header from a byte slice.
// It returns an error if the data is not exactly 32 bytes or the flags are invalid.
func (h *TableHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	// The Options field itself is always little-endian so the endianness
	// bit can be read before an engine is chosen.
	h.Flag.Options = uint16(data[0]) | (uint16(data[1]) << 8)
	h.Flag.DataCompression = data[3]

	engine := h.GetEndianEngine()

	h.ColumnCount = engine.Uint32(data[4:8])
	h.RowCount = engine.Uint32(data[8:12])
	h.DataOffset = engine.Uint32(data[12:16])
	h.DataSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])
	copy(h.Reserved[:], data[28:32])

	if !h.IsValidFlags() || data[2] != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}

// Bytes serializes the TableHeader into a byte slice.
func (h *TableHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := h.GetEndianEngine()

	b[0] = byte(h.Flag.Options)
	b[1] = byte(h.Flag.Options >> 8)
	b[3] = h.Flag.DataCompression
	engine.PutUint32(b[4:8], h.ColumnCount)
	engine.PutUint32(b[8:12], h.RowCount)
	engine.PutUint32(b[12:16], h.DataOffset)
	engine.PutUint32(b[16:20], h.DataSize)
	engine.PutUint64(b[20:28], h.Checksum)
	copy(b[28:32], h.Reserved[:])

	return b
}

// GetEndianEngine returns the appropriate endian engine based on the header flags.
func (h *TableHeader) GetEndianEngine() endian.EndianEngine {
	if h.Flag.IsBigEndian() {
		return endian.GetBigEndianEngine()
	}

	return endian.GetLittleEndianEngine()
}

// IsValidFlags checks if the header flags are valid for a table file.
func (h *TableHeader) IsValidFlags() bool {
	return h.Flag.Validate() == nil
}
