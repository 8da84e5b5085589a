package mat

import (
	"fmt"
	"math"
	"strings"
)

// Mat is a dense two-dimensional matrix of typed, possibly multi-channel
// elements.
//
// A Mat either owns its storage (continuous, step == cols*ElemSize) or is a
// region view that aliases part of a parent's storage with the parent's step.
// The zero value is an empty 0x0 CV8UC1 matrix.
type Mat struct {
	buf    *buffer // shared reference-counted storage
	rows   int     // number of rows
	cols   int     // number of columns
	typ    Type    // element type
	step   int     // bytes between the starts of consecutive rows
	offset int     // byte offset of element (0,0) in buf
	region bool    // view into a parent's storage
}

// New creates a zero-filled rows x cols matrix of type t.
func New(rows, cols int, t Type) (*Mat, error) {
	if rows < 0 || cols < 0 {
		return nil, matErrorf("New", ErrBadShape, "%dx%d", rows, cols)
	}
	if !t.Valid() {
		return nil, matErrorf("New", ErrUnsupportedType, "%s", t)
	}
	if err := checkSize("New", rows, cols, t); err != nil {
		return nil, err
	}
	return newOwned(rows, cols, t), nil
}

// checkSize rejects shapes whose byte size does not fit in an int.
func checkSize(op string, rows, cols int, t Type) error {
	es := t.ElemSize()
	if rows < 0 || cols < 0 || (cols > 0 && (cols > math.MaxInt/es || rows > math.MaxInt/(cols*es))) {
		return matErrorf(op, ErrBadShape, "%dx%d %s overflows", rows, cols, t)
	}
	return nil
}

// newOwned allocates an owned matrix; callers have validated the arguments.
func newOwned(rows, cols int, t Type) *Mat {
	step := cols * t.ElemSize()
	return &Mat{
		buf:  newBuffer(rows * step),
		rows: rows,
		cols: cols,
		typ:  t,
		step: step,
	}
}

// Rows returns the number of rows.
func (m *Mat) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Mat) Cols() int { return m.cols }

// Dims returns the dimensionality; matrices are always two-dimensional.
func (m *Mat) Dims() int { return 2 }

// Type returns the element type.
func (m *Mat) Type() Type { return m.typ }

// Depth returns the per-channel depth.
func (m *Mat) Depth() Depth { return m.typ.Depth() }

// Channels returns the number of channels per element.
func (m *Mat) Channels() int { return m.typ.Channels() }

// ElemSize returns the byte size of one element.
func (m *Mat) ElemSize() int { return m.typ.ElemSize() }

// Step returns the number of bytes between the starts of consecutive rows.
func (m *Mat) Step() int { return m.step }

// Total returns rows*cols.
func (m *Mat) Total() int { return m.rows * m.cols }

// Empty reports whether the matrix has no elements.
func (m *Mat) Empty() bool { return m.rows == 0 || m.cols == 0 }

// IsRegion reports whether m is a view into another matrix's storage.
func (m *Mat) IsRegion() bool { return m.region }

// IsContinuous reports whether rows are stored back to back without padding.
func (m *Mat) IsContinuous() bool {
	return m.rows <= 1 || m.step == m.cols*m.ElemSize()
}

// Release drops this matrix's reference to its storage and leaves m empty.
// Storage still referenced by region views or clones stays alive.
func (m *Mat) Release() {
	if m.buf != nil {
		m.buf.release()
	}
	*m = Mat{typ: m.typ}
}

// rowBytes returns the bytes of row r (cols*ElemSize long).
func (m *Mat) rowBytes(r int) []byte {
	start := m.offset + r*m.step
	return m.buf.data[start : start+m.cols*m.ElemSize()]
}

// pixel decodes element (r, c) into dst, which must hold Channels() values.
func (m *Mat) pixel(r, c int, dst []float64) {
	d := m.Depth()
	ds := d.Size()
	p := m.rowBytes(r)[c*m.ElemSize():]
	for k := range dst {
		dst[k] = loadValue(d, p[k*ds:])
	}
}

// setPixel encodes src into element (r, c) with saturation.
func (m *Mat) setPixel(r, c int, src []float64) {
	d := m.Depth()
	ds := d.Size()
	p := m.rowBytes(r)[c*m.ElemSize():]
	for k, v := range src {
		storeValue(d, p[k*ds:], v)
	}
}

// values returns every channel value in row-major order.
func (m *Mat) values() []float64 {
	cn := m.Channels()
	out := make([]float64, m.Total()*cn)
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			m.pixel(r, c, out[(r*m.cols+c)*cn:(r*m.cols+c+1)*cn])
		}
	}
	return out
}

// setValues writes row-major channel values produced by values.
func (m *Mat) setValues(vals []float64) {
	cn := m.Channels()
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			m.setPixel(r, c, vals[(r*m.cols+c)*cn:(r*m.cols+c+1)*cn])
		}
	}
}

// String renders the matrix row by row for debugging.
func (m *Mat) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mat(%dx%d %s)\n", m.rows, m.cols, m.typ)
	px := make([]float64, m.Channels())
	for r := 0; r < m.rows; r++ {
		b.WriteString("[")
		for c := 0; c < m.cols; c++ {
			m.pixel(r, c, px)
			if len(px) == 1 {
				fmt.Fprintf(&b, "%g", px[0])
			} else {
				fmt.Fprintf(&b, "%v", px)
			}
			if c+1 < m.cols {
				b.WriteString(", ")
			}
		}
		b.WriteString("]\n")
	}
	return b.String()
}
