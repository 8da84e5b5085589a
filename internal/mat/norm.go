package mat

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// NormType selects a norm. The codes match OpenCV's.
type NormType int

// Norm types.
const (
	NormInf    NormType = 1
	NormL1     NormType = 2
	NormL2     NormType = 4
	NormMinMax NormType = 32
)

// gonumL maps a norm type to the L argument of gonum's floats.Norm.
func (n NormType) gonumL() (float64, bool) {
	switch n {
	case NormInf:
		return math.Inf(1), true
	case NormL1:
		return 1, true
	case NormL2:
		return 2, true
	default:
		return 0, false
	}
}

// String returns the OpenCV-style name.
func (n NormType) String() string {
	switch n {
	case NormInf:
		return "NORM_INF"
	case NormL1:
		return "NORM_L1"
	case NormL2:
		return "NORM_L2"
	case NormMinMax:
		return "NORM_MINMAX"
	default:
		return "NORM_UNKNOWN"
	}
}

// Norm returns the norm of all channel values of m. NormL2 is sqrt(sum v^2).
func (m *Mat) Norm(normType NormType) (float64, error) {
	l, ok := normType.gonumL()
	if !ok {
		return 0, matErrorf("Norm", ErrInvalidArgument, "norm type %d", int(normType))
	}
	vals := m.values()
	if len(vals) == 0 {
		return 0, nil
	}
	return floats.Norm(vals, l), nil
}

// NormTo returns the norm of m - other. Both must have the same shape and type.
func (m *Mat) NormTo(other *Mat, normType NormType) (float64, error) {
	if other == nil {
		return 0, matErrorf("NormTo", ErrInvalidArgumentType, "nil matrix")
	}
	if m.rows != other.rows || m.cols != other.cols || m.typ != other.typ {
		return 0, matErrorf("NormTo", ErrShapeMismatch, "%dx%d %s vs %dx%d %s",
			m.rows, m.cols, m.typ, other.rows, other.cols, other.typ)
	}
	l, ok := normType.gonumL()
	if !ok {
		return 0, matErrorf("NormTo", ErrInvalidArgument, "norm type %d", int(normType))
	}
	a, b := m.values(), other.values()
	if len(a) == 0 {
		return 0, nil
	}
	return floats.Distance(a, b, l), nil
}

// NormalizeOptions configures Normalize.
type NormalizeOptions struct {
	NormType NormType // NormMinMax, NormInf, NormL1 or NormL2
	Alpha    float64  // norm value, or one end of the MinMax range
	Beta     float64  // other end of the MinMax range; unused by the norm types
	Depth    *Depth   // output depth; nil or DepthAuto keeps m's depth
}

// DefaultNormalizeOptions maps values onto [0, 1] keeping the depth.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		NormType: NormMinMax,
		Alpha:    0,
		Beta:     1,
	}
}

// WithDepth returns a copy of o that converts the result to d.
func (o NormalizeOptions) WithDepth(d Depth) NormalizeOptions {
	o.Depth = &d
	return o
}

// Normalize rescales m. NormMinMax maps [min, max] of the values onto
// [min(Alpha,Beta), max(Alpha,Beta)]; the norm types scale so the norm of
// the result equals Alpha.
//
// Constant input under NormMinMax yields min(Alpha, Beta) everywhere, and a
// zero-norm input under the norm types yields zeros.
func (m *Mat) Normalize(opts NormalizeOptions) (*Mat, error) {
	d := m.Depth()
	if opts.Depth != nil && *opts.Depth != DepthAuto {
		d = *opts.Depth
	}
	if !d.Valid() {
		return nil, matErrorf("Normalize", ErrUnsupportedType, "depth %d", int(d))
	}

	vals := m.values()
	var scale, shift float64

	switch opts.NormType {
	case NormMinMax:
		lo, hi := math.Min(opts.Alpha, opts.Beta), math.Max(opts.Alpha, opts.Beta)
		if len(vals) > 0 {
			vmin, vmax := floats.Min(vals), floats.Max(vals)
			if vmax > vmin {
				scale = (hi - lo) / (vmax - vmin)
				shift = lo - vmin*scale
			} else {
				shift = lo
			}
		}
	case NormInf, NormL1, NormL2:
		n, _ := m.Norm(opts.NormType)
		if n > 0 && !math.IsInf(n, 0) {
			scale = opts.Alpha / n
		}
	default:
		return nil, matErrorf("Normalize", ErrInvalidArgument, "norm type %d", int(opts.NormType))
	}

	if opts.NormType == NormMinMax {
		lo, hi := math.Min(opts.Alpha, opts.Beta), math.Max(opts.Alpha, opts.Beta)
		for i, v := range vals {
			vals[i] = math.Min(math.Max(v*scale+shift, lo), hi)
		}
	} else {
		floats.Scale(scale, vals)
	}

	dst := newOwned(m.rows, m.cols, MakeType(d, m.Channels()))
	dst.setValues(vals)
	return dst, nil
}
