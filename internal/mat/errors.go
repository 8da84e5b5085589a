package mat

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every public operation wraps one of these with the
// operation name, so callers match with errors.Is.
var (
	// ErrShapeMismatch is returned when operand shapes disagree (channel
	// sources with different rows/cols, ragged literals, masks of another size).
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidArgumentType is returned when an argument has the wrong kind:
	// a nil channel source, an index array of the wrong length, a value with
	// the wrong channel count.
	ErrInvalidArgumentType = errors.New("invalid argument type")

	// ErrIndexOutOfBounds is returned by element accessors.
	ErrIndexOutOfBounds = errors.New("Index out of bounds")

	// ErrRegionOutOfBounds is returned when a region rectangle leaves the parent.
	ErrRegionOutOfBounds = errors.New("region out of bounds")

	// ErrUnsupportedOnRegionView is returned by raw-data export on a region view.
	ErrUnsupportedOnRegionView = errors.New("Cannot call GetData when Region of Interest is defined " +
		"(i.e. after getRegion) use matrix.copyTo to copy ROI to a new matrix")

	// ErrInsufficientArguments is returned when a vector is built from the wrong number of components.
	ErrInsufficientArguments = errors.New("expected arguments (u, v), (w), x, y, (z)")

	// ErrBadShape is returned for negative dimensions.
	ErrBadShape = errors.New("invalid shape")

	// ErrUnsupportedType is returned for unknown element types or a depth an
	// operation cannot handle.
	ErrUnsupportedType = errors.New("unsupported element type")

	// ErrInvalidArgument is returned for out-of-domain scalar arguments (codes, counts, strides).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrBufferTooSmall is returned when a raw buffer cannot hold the requested shape.
	ErrBufferTooSmall = errors.New("buffer too small")
)

// matErrorf tags err with the Mat operation that detected it.
func matErrorf(op string, err error, format string, args ...any) error {
	if format == "" {
		return fmt.Errorf("Mat.%s: %w", op, err)
	}
	return fmt.Errorf("Mat.%s: %s: %w", op, fmt.Sprintf(format, args...), err)
}
