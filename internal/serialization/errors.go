package serialization

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrChecksumMismatch   = errors.New("checksum mismatch: file may be corrupted")
	ErrOffsetOverlap      = errors.New("matrix offsets overlap")
	ErrOutOfBounds        = errors.New("matrix extends beyond data section")
	ErrTooManyMatrices    = errors.New("too many matrices in file")
	ErrInvalidName        = errors.New("invalid matrix name")
	ErrHeaderTooLarge     = errors.New("header exceeds maximum size")
	ErrInvalidMagic       = errors.New("invalid magic bytes")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrNotFound           = errors.New("matrix not found")
	ErrClosed             = errors.New("file is closed")
	ErrCompressed         = errors.New("data section is compressed")
)

// ValidationError provides detailed information about validation failures.
type ValidationError struct {
	Type    string // kind of failure, e.g. "offset_overlap", "out_of_bounds"
	Matrix  string // primary matrix involved
	Matrix2 string // second matrix, for overlaps and duplicates
	Details string
	Err     error // sentinel matched by errors.Is
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Matrix2 != "" {
		return fmt.Sprintf("%s: matrices %q and %q: %s", e.Type, e.Matrix, e.Matrix2, e.Details)
	}
	if e.Matrix != "" {
		return fmt.Sprintf("%s: matrix %q: %s", e.Type, e.Matrix, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Details)
}

// Unwrap returns the sentinel behind the failure.
func (e *ValidationError) Unwrap() error { return e.Err }
