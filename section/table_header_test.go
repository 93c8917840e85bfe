package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"sidracap/errs"
	"sidracap/format"
)

func TestNewTableHeader(t *testing.T) {
	h, err := NewTableHeader(3, 120)
	require.NoError(t, err)
	require.Equal(t, uint32(3), h.ColumnCount)
	require.Equal(t, uint32(120), h.RowCount)
	require.True(t, h.Flag.IsValidMagicNumber())
	require.True(t, h.Flag.IsLittleEndian())
	require.Equal(t, format.CompressionZstd, h.Flag.GetDataCompression())
	require.Equal(t, HeaderSize, h.IndexOffset())
	require.Equal(t, HeaderSize+3*ColumnIndexEntrySize, h.NamesOffset())
}

func TestNewTableHeaderInvalidCount(t *testing.T) {
	_, err := NewTableHeader(-1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidColumnCount)

	_, err = NewTableHeader(MaxColumnCount+1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidColumnCount)
}

func TestTableHeaderRoundTrip(t *testing.T) {
	h, err := NewTableHeader(5, 42)
	require.NoError(t, err)
	h.DataOffset = 200
	h.DataSize = 1234
	h.Checksum = 0xDEADBEEFCAFEF00D
	h.Flag.SetDataCompression(format.CompressionLZ4)

	b := h.Bytes()
	require.Len(t, b, HeaderSize)

	var parsed TableHeader
	require.NoError(t, parsed.Parse(b))
	require.Equal(t, *h, parsed)
}

func TestTableHeaderRoundTripBigEndian(t *testing.T) {
	h, err := NewTableHeader(2, 7)
	require.NoError(t, err)
	h.Flag.WithBigEndian()
	h.DataOffset = 96
	h.DataSize = 17
	h.Checksum = 1

	var parsed TableHeader
	require.NoError(t, parsed.Parse(h.Bytes()))
	require.True(t, parsed.Flag.IsBigEndian())
	require.Equal(t, *h, parsed)
}

func TestTableHeaderParseErrors(t *testing.T) {
	var h TableHeader
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize-1)), errs.ErrInvalidHeaderSize)

	// Wrong magic number.
	b := make([]byte, HeaderSize)
	b[0] = 0x10
	b[1] = 0xAA
	b[3] = uint8(format.CompressionNone)
	require.ErrorIs(t, h.Parse(b), errs.ErrInvalidHeaderFlags)

	// Good magic, bad compression byte.
	good, err := NewTableHeader(1, 1)
	require.NoError(t, err)
	bad := good.Bytes()
	bad[3] = 0xEE
	require.ErrorIs(t, h.Parse(bad), errs.ErrInvalidHeaderFlags)

	// Reserved flag bits must be zero.
	bad = good.Bytes()
	bad[0] |= 0x04
	require.ErrorIs(t, h.Parse(bad), errs.ErrInvalidHeaderFlags)
}

func TestTableFlagValidate(t *testing.T) {
	f := NewTableFlag()
	require.NoError(t, f.Validate())

	f.SetDataCompression(format.CompressionS2)
	require.NoError(t, f.Validate())
	require.Equal(t, format.CompressionS2, f.GetDataCompression())

	f.DataCompression = 0x7F
	require.ErrorIs(t, f.Validate(), errs.ErrInvalidHeaderFlags)
}
