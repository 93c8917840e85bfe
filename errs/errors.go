// Package errs defines the sentinel errors shared across sidracap packages.
package errs

import "errors"

var (
	// ErrTransport indicates a network-level fetch failure: connection,
	// DNS, or a non-2xx HTTP status.
	ErrTransport = errors.New("transport failure")

	// ErrDecode indicates a response body that is not valid JSON.
	ErrDecode = errors.New("response is not valid JSON")

	// ErrInvalidHeaderSize indicates a table file header that is not the
	// expected fixed size.
	ErrInvalidHeaderSize = errors.New("invalid header size")

	// ErrInvalidHeaderFlags indicates a corrupt or unrecognized header
	// flag word (bad magic number, reserved bits set, unknown codec).
	ErrInvalidHeaderFlags = errors.New("invalid header flags")

	// ErrInvalidColumnCount indicates a column count outside the limits of
	// the table format.
	ErrInvalidColumnCount = errors.New("invalid column count")

	// ErrChecksumMismatch indicates a data section whose checksum does not
	// match the header, i.e. a corrupted or truncated file.
	ErrChecksumMismatch = errors.New("data section checksum mismatch")

	// ErrTruncatedTable indicates a table payload shorter than its header
	// and index claim.
	ErrTruncatedTable = errors.New("truncated table payload")
)
