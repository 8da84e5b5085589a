package serialization

import (
	"fmt"
	"sort"
	"strings"

	"github.com/born-ml/cvmat/internal/mat"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024 // 100MB
	MaxMatrixCount   = 100_000
	MaxMatrixNameLen = 4096
)

// ValidationLevel controls the strictness of validation.
type ValidationLevel int

const (
	// ValidationStrict runs every check, including offset overlap (default).
	ValidationStrict ValidationLevel = iota
	// ValidationNormal checks names, types and sizes only.
	ValidationNormal
	// ValidationNone skips validation. Use only with trusted input.
	ValidationNone
)

// ValidateMatrixOffsets checks for negative, overlapping and out-of-bounds
// data ranges.
func ValidateMatrixOffsets(matrices []MatrixMeta, dataSize int64) error {
	if len(matrices) > MaxMatrixCount {
		return &ValidationError{
			Type:    "too_many_matrices",
			Details: fmt.Sprintf("got %d, max %d", len(matrices), MaxMatrixCount),
			Err:     ErrTooManyMatrices,
		}
	}

	sorted := make([]MatrixMeta, len(matrices))
	copy(sorted, matrices)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})

	for i, m := range sorted {
		if m.Offset < 0 || m.Size < 0 {
			return &ValidationError{
				Type:    "negative_offset",
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset=%d, size=%d", m.Offset, m.Size),
				Err:     ErrOutOfBounds,
			}
		}
		if m.Offset+m.Size > dataSize {
			return &ValidationError{
				Type:    "out_of_bounds",
				Matrix:  m.Name,
				Details: fmt.Sprintf("offset %d + size %d > data_size %d", m.Offset, m.Size, dataSize),
				Err:     ErrOutOfBounds,
			}
		}
		if i < len(sorted)-1 {
			next := sorted[i+1]
			if m.Offset+m.Size > next.Offset {
				return &ValidationError{
					Type:    "offset_overlap",
					Matrix:  m.Name,
					Matrix2: next.Name,
					Details: fmt.Sprintf("regions [%d-%d] and [%d-%d] overlap",
						m.Offset, m.Offset+m.Size, next.Offset, next.Offset+next.Size),
					Err: ErrOffsetOverlap,
				}
			}
		}
	}
	return nil
}

// ValidateMatrixName rejects empty names, path-like names and NUL bytes.
func ValidateMatrixName(name string) error {
	invalid := func(details string) error {
		return &ValidationError{Type: "invalid_name", Matrix: name, Details: details, Err: ErrInvalidName}
	}
	switch {
	case name == "":
		return invalid("empty name")
	case len(name) > MaxMatrixNameLen:
		return invalid(fmt.Sprintf("length %d > max %d", len(name), MaxMatrixNameLen))
	case strings.Contains(name, ".."):
		return invalid("contains '..'")
	case strings.ContainsAny(name, `/\`):
		return invalid("contains path separator (/ or \\)")
	case strings.Contains(name, "\x00"):
		return invalid("contains null byte")
	}
	return nil
}

// ValidateMatrixMeta checks that the type parses and the size matches the shape.
func ValidateMatrixMeta(m MatrixMeta) error {
	t, err := mat.ParseType(m.Type)
	if err != nil {
		return &ValidationError{Type: "invalid_type", Matrix: m.Name, Details: err.Error(), Err: err}
	}
	if m.Rows < 0 || m.Cols < 0 {
		return &ValidationError{
			Type:    "invalid_shape",
			Matrix:  m.Name,
			Details: fmt.Sprintf("%dx%d", m.Rows, m.Cols),
			Err:     mat.ErrBadShape,
		}
	}
	if want := int64(m.Rows) * int64(m.Cols) * int64(t.ElemSize()); m.Size != want {
		return &ValidationError{
			Type:    "size_mismatch",
			Matrix:  m.Name,
			Details: fmt.Sprintf("size %d, %dx%d %s needs %d", m.Size, m.Rows, m.Cols, m.Type, want),
			Err:     ErrOutOfBounds,
		}
	}
	return nil
}

// ValidateHeader validates a parsed header against the uncompressed data size.
func ValidateHeader(h *Header, dataSize int64, level ValidationLevel) error {
	if level == ValidationNone {
		return nil
	}
	if len(h.Matrices) > MaxMatrixCount {
		return &ValidationError{
			Type:    "too_many_matrices",
			Details: fmt.Sprintf("got %d, max %d", len(h.Matrices), MaxMatrixCount),
			Err:     ErrTooManyMatrices,
		}
	}

	seen := make(map[string]bool, len(h.Matrices))
	for _, m := range h.Matrices {
		if err := ValidateMatrixName(m.Name); err != nil {
			return err
		}
		if seen[m.Name] {
			return &ValidationError{Type: "duplicate_name", Matrix: m.Name, Details: "name used twice", Err: ErrInvalidName}
		}
		seen[m.Name] = true
		if err := ValidateMatrixMeta(m); err != nil {
			return err
		}
	}

	if level == ValidationStrict {
		return ValidateMatrixOffsets(h.Matrices, dataSize)
	}
	return nil
}
