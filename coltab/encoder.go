package coltab

import (
	"fmt"
	"math"

	"sidracap/compress"
	"sidracap/format"
	"sidracap/internal/hash"
	"sidracap/internal/options"
	"sidracap/internal/pool"
	"sidracap/section"
)

// EncoderConfig holds the table encoder configuration resolved from options.
type EncoderConfig struct {
	flag section.TableFlag
}

// EncoderOption is a functional option for configuring Encode.
type EncoderOption = options.Option[*EncoderConfig]

// WithCompression configures the data section compression.
// Valid values are format.CompressionNone, CompressionZstd, CompressionS2
// and CompressionLZ4. Default is CompressionZstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		switch comp {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			cfg.flag.SetDataCompression(comp)
			return nil
		default:
			return fmt.Errorf("invalid data compression: %v", comp)
		}
	})
}

// WithLittleEndian configures little-endian byte order (the default).
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.flag.WithLittleEndian()
	})
}

// WithBigEndian configures big-endian byte order.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.flag.WithBigEndian()
	})
}

// Encode serializes the table into the binary table-file layout:
// header, column index, column names, compressed data section.
//
// Column names, column order and every cell value round-trip exactly
// through Decode. Encoding an empty table is valid and produces a
// header-only file.
func Encode(t *Table, opts ...EncoderOption) ([]byte, error) {
	header, err := section.NewTableHeader(t.NumCols(), t.NumRows())
	if err != nil {
		return nil, err
	}

	cfg := &EncoderConfig{flag: header.Flag}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	header.Flag = cfg.flag

	engine := header.GetEndianEngine()

	codec, err := compress.GetCodec(header.Flag.GetDataCompression())
	if err != nil {
		return nil, err
	}

	// Column names payload.
	var names []byte
	for _, name := range t.Columns() {
		names = appendVarString(names, name)
	}

	// Data section: one payload per column, assembled uncompressed first.
	data := pool.GetTableBuffer()
	defer pool.PutTableBuffer(data)

	entries := make([]section.ColumnIndexEntry, 0, t.NumCols())
	rows := t.NumRows()
	for col, name := range t.Columns() {
		start := data.Len()

		// Presence bitmap: one bit per row, set when the cell is non-null.
		bitmap := make([]byte, (rows+7)/8)
		for row := 0; row < rows; row++ {
			if !t.Cell(row, col).IsNull() {
				bitmap[row/8] |= 1 << (row % 8)
			}
		}
		data.MustWrite(bitmap)

		for row := 0; row < rows; row++ {
			cell := t.Cell(row, col)
			if cell.IsNull() {
				continue
			}
			data.B = append(data.B, byte(cell.Kind))
			switch cell.Kind {
			case format.KindString:
				data.B = appendVarString(data.B, cell.Str)
			case format.KindNumber:
				data.B = engine.AppendUint64(data.B, math.Float64bits(cell.Num))
			case format.KindBool:
				if cell.Bool {
					data.B = append(data.B, 1)
				} else {
					data.B = append(data.B, 0)
				}
			}
		}

		entries = append(entries, section.ColumnIndexEntry{
			NameHash: hash.ID(name),
			Offset:   uint32(start),            //nolint:gosec
			Size:     uint32(data.Len() - start), //nolint:gosec
		})
	}

	compressed, err := codec.Compress(data.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress data section: %w", err)
	}

	header.DataOffset = uint32(header.NamesOffset() + len(names)) //nolint:gosec
	header.DataSize = uint32(data.Len())                          //nolint:gosec
	header.Checksum = hash.Sum(compressed)

	out := make([]byte, 0, int(header.DataOffset)+len(compressed))
	out = append(out, header.Bytes()...)
	for _, entry := range entries {
		out = entry.AppendTo(out, engine)
	}
	out = append(out, names...)
	out = append(out, compressed...)

	return out, nil
}
