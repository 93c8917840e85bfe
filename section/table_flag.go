package section

import (
	"sidracap/errs"
	"sidracap/format"
)

// TableFlag is the packed flag field at the start of the table header.
type TableFlag struct {
	// Options is a packed field for various options.
	// Bit 0 is the endianness flag, 0 means little-endian, 1 means big-endian.
	// Bits 1-3 are reserved for future use, must be set to 0.
	// Bits 4-15 are the magic number identifying the file format:
	//   - 0xDC10: table file format v1
	Options uint16

	// DataCompression indicates the compression used for the data section.
	// Valid values: CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4
	DataCompression uint8
}

// NewTableFlag creates a new TableFlag with default settings
// (little-endian, Zstd data compression).
func NewTableFlag() TableFlag {
	flag := TableFlag{
		Options:         MagicTableV1Opt,
		DataCompression: uint8(format.CompressionZstd),
	}
	flag.WithLittleEndian()

	return flag
}

// IsValidMagicNumber checks if the magic number in the Options field is valid.
func (f TableFlag) IsValidMagicNumber() bool {
	return f.GetMagicNumber() == MagicTableV1Opt
}

// GetMagicNumber returns the magic number from the Options field.
func (f TableFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// IsLittleEndian returns whether the file data is little-endian.
func (f TableFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// IsBigEndian returns whether the file data is big-endian.
func (f TableFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &= ^uint16(EndiannessMask)
}

// WithBigEndian sets big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// SetDataCompression sets the data compression type.
func (f *TableFlag) SetDataCompression(compression format.CompressionType) {
	f.DataCompression = uint8(compression)
}

// GetDataCompression returns the data compression type.
func (f TableFlag) GetDataCompression() format.CompressionType {
	return format.CompressionType(f.DataCompression)
}

var validDataCompressions = map[uint8]struct{}{
	uint8(format.CompressionNone): {},
	uint8(format.CompressionZstd): {},
	uint8(format.CompressionS2):   {},
	uint8(format.CompressionLZ4):  {},
}

// Validate checks if the flag contains valid values.
func (f TableFlag) Validate() error {
	if f.GetMagicNumber() != MagicTableV1Opt {
		return errs.ErrInvalidHeaderFlags
	}

	if (f.Options & ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if _, ok := validDataCompressions[f.DataCompression]; !ok {
		return errs.ErrInvalidHeaderFlags
	}

	return nil
}
