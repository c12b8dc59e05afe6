package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrTooLarge is returned when input exceeds the allowed size.
var ErrTooLarge = errors.New("input exceeds size limit")

// HasExtension reports whether name ends with ext, ignoring case.
func HasExtension(name, ext string) bool {
	return strings.EqualFold(filepath.Ext(name), ext)
}

// ReadAllLimited reads r to the end but never buffers more than maxSize+1
// bytes. Larger input fails with ErrTooLarge. A maxSize of zero or less
// disables the check.
func ReadAllLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize > 0 {
		r = io.LimitReader(r, maxSize+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

// ReadFileLimited reads a whole file with ReadAllLimited.
func ReadFileLimited(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := ReadAllLimited(f, maxSize)
	if errors.Is(err, ErrTooLarge) {
		return nil, fmt.Errorf("file %s is larger than %d bytes: %w", filepath.Base(path), maxSize, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}
