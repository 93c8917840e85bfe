package section

const (
	// Bit masks for the packed Options word
	EndiannessMask   = 0x0001 // Mask for endianness bit (bit 0)
	ReservedBitsMask = 0x000E // Mask for reserved bits (bits 1-3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicTableV1Opt is the version 1 magic number for the table file format.
	MagicTableV1Opt = 0xDC10

	// HeaderSize is the fixed header size in bytes.
	HeaderSize = 32
	// ColumnIndexEntrySize is the fixed index entry size per column in bytes.
	ColumnIndexEntrySize = 16
	// IndexOffsetOffset is the byte offset where the index section starts.
	IndexOffsetOffset = HeaderSize
	// MaxColumnCount is the maximum number of columns a table file can hold.
	MaxColumnCount = 65535
)
