package coltab

import (
	"fmt"
	"math"

	"sidracap/compress"
	"sidracap/endian"
	"sidracap/errs"
	"sidracap/format"
	"sidracap/internal/hash"
	"sidracap/section"
)

// Decode parses a binary table file produced by Encode.
//
// It validates the magic number, header flags, the data section checksum,
// the uncompressed size, and the per-column name hashes before returning
// the reconstructed table.
func Decode(data []byte) (*Table, error) {
	if len(data) < section.HeaderSize {
		return nil, errs.ErrInvalidHeaderSize
	}

	var header section.TableHeader
	if err := header.Parse(data[:section.HeaderSize]); err != nil {
		return nil, err
	}

	engine := header.GetEndianEngine()
	cols := int(header.ColumnCount)
	rows := int(header.RowCount)

	namesOffset := header.NamesOffset()
	if int(header.DataOffset) < namesOffset || int(header.DataOffset) > len(data) {
		return nil, errs.ErrTruncatedTable
	}

	// Column index.
	entries := make([]section.ColumnIndexEntry, cols)
	for i := 0; i < cols; i++ {
		start := section.IndexOffsetOffset + i*section.ColumnIndexEntrySize
		entries[i] = section.ParseColumnIndexEntry(data[start:start+section.ColumnIndexEntrySize], engine)
	}

	// Column names.
	names := make([]string, cols)
	rest := data[namesOffset:header.DataOffset]
	for i := 0; i < cols; i++ {
		name, n, err := readVarString(rest)
		if err != nil {
			return nil, fmt.Errorf("column %d name: %w", i, err)
		}
		if hash.ID(name) != entries[i].NameHash {
			return nil, fmt.Errorf("column %q name hash: %w", name, errs.ErrChecksumMismatch)
		}
		names[i] = name
		rest = rest[n:]
	}

	// Data section: verify checksum over the stored bytes, then decompress.
	stored := data[header.DataOffset:]
	if hash.Sum(stored) != header.Checksum {
		return nil, errs.ErrChecksumMismatch
	}

	codec, err := compress.GetCodec(header.Flag.GetDataCompression())
	if err != nil {
		return nil, err
	}
	payload, err := codec.Decompress(stored)
	if err != nil {
		return nil, fmt.Errorf("decompress data section: %w", err)
	}
	if len(payload) != int(header.DataSize) {
		return nil, errs.ErrTruncatedTable
	}

	table := New(names...)
	if rows == 0 {
		return table, nil
	}

	// Decode column payloads into cells, then assemble rows.
	columns := make([][]Cell, cols)
	for i, entry := range entries {
		end := int(entry.Offset) + int(entry.Size)
		if end > len(payload) {
			return nil, errs.ErrTruncatedTable
		}
		cells, err := decodeColumn(payload[entry.Offset:end], rows, engine)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", names[i], err)
		}
		columns[i] = cells
	}

	for row := 0; row < rows; row++ {
		cells := make([]Cell, cols)
		for col := 0; col < cols; col++ {
			cells[col] = columns[col][row]
		}
		if err := table.AppendRow(cells...); err != nil {
			return nil, err
		}
	}

	return table, nil
}

// decodeColumn parses one column payload: presence bitmap then the present
// cells in row order.
func decodeColumn(payload []byte, rows int, engine endian.EndianEngine) ([]Cell, error) {
	bitmapLen := (rows + 7) / 8
	if len(payload) < bitmapLen {
		return nil, errs.ErrTruncatedTable
	}
	bitmap := payload[:bitmapLen]
	payload = payload[bitmapLen:]

	cells := make([]Cell, rows)
	for row := 0; row < rows; row++ {
		if bitmap[row/8]&(1<<(row%8)) == 0 {
			cells[row] = NullCell()
			continue
		}

		if len(payload) < 1 {
			return nil, errs.ErrTruncatedTable
		}
		kind := format.Kind(payload[0])
		payload = payload[1:]

		switch kind {
		case format.KindString:
			s, n, err := readVarString(payload)
			if err != nil {
				return nil, err
			}
			cells[row] = StringCell(s)
			payload = payload[n:]
		case format.KindNumber:
			if len(payload) < 8 {
				return nil, errs.ErrTruncatedTable
			}
			cells[row] = NumberCell(math.Float64frombits(engine.Uint64(payload[:8])))
			payload = payload[8:]
		case format.KindBool:
			if len(payload) < 1 {
				return nil, errs.ErrTruncatedTable
			}
			cells[row] = BoolCell(payload[0] != 0)
			payload = payload[1:]
		default:
			return nil, fmt.Errorf("unknown cell kind 0x%02x: %w", uint8(kind), errs.ErrTruncatedTable)
		}
	}

	return cells, nil
}
