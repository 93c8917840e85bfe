package coltab

import (
	"encoding/binary"

	"sidracap/errs"
)

// Variable-length strings (column names and string cells) are stored with a
// uvarint length prefix followed by the UTF-8 bytes. A single-byte prefix
// would cap values at 255 bytes, which SIDRA note texts routinely exceed.

// appendVarString appends the uvarint-prefixed string to buf.
func appendVarString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))

	return append(buf, s...)
}

// readVarString reads one uvarint-prefixed string from data and returns the
// string and the number of bytes consumed.
func readVarString(data []byte) (string, int, error) {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return "", 0, errs.ErrTruncatedTable
	}
	end := n + int(length) //nolint:gosec
	if end < n || end > len(data) {
		return "", 0, errs.ErrTruncatedTable
	}

	return string(data[n:end]), end, nil
}
