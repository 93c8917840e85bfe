package coltab

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile encodes the table and writes it to path atomically: the bytes
// go to a temp file in the same directory, which is then renamed over the
// destination. A crash mid-write never leaves a partial file at path.
func WriteFile(t *Table, path string, opts ...EncoderOption) error {
	data, err := Encode(t, opts...)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("close %s: %w", tmpName, err)
	}

	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)

		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)

		return fmt.Errorf("rename into place: %w", err)
	}

	return nil
}

// ReadFile reads and decodes a table file written by WriteFile.
func ReadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}
