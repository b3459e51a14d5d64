package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrIO matches every *IOError via errors.Is.
	ErrIO = errors.New("i/o error")

	// ErrNoAssociatedPath indicates a bare save on a scratch buffer.
	ErrNoAssociatedPath = errors.New("no file name")

	// ErrRangeInvalid indicates a line range outside the line store.
	ErrRangeInvalid = errors.New("invalid line range")
)

// IOError describes a failed open, read or write of a buffer's file.
type IOError struct {
	Op   string // "open", "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
