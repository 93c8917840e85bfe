package format

type (
	// CompressionType identifies the codec applied to a table's data section.
	CompressionType uint8

	// Kind identifies the scalar type stored in a table cell.
	// The set mirrors the scalar types JSON can carry, so decoded API
	// responses round-trip through a table file without coercion.
	Kind uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	KindNull   Kind = 0x0 // KindNull represents a missing value.
	KindString Kind = 0x1 // KindString represents a UTF-8 string value.
	KindNumber Kind = 0x2 // KindNumber represents a float64 value.
	KindBool   Kind = 0x3 // KindBool represents a boolean value.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a configuration string to a CompressionType.
// The empty string selects Zstd, the default for table files.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "", "zstd":
		return CompressionZstd, true
	case "none":
		return CompressionNone, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindString:
		return "String"
	case KindNumber:
		return "Number"
	case KindBool:
		return "Bool"
	default:
		return "Unknown"
	}
}
