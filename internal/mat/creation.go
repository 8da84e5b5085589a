package mat

import "math"

// NewWithValue creates a rows x cols matrix with every element set to v.
// A Scalar is broadcast to all channels; vectors must match the channel count.
func NewWithValue(rows, cols int, t Type, v Value) (*Mat, error) {
	m, err := New(rows, cols, t)
	if err != nil {
		return nil, err
	}
	px, err := fillChannels(v, t.Channels())
	if err != nil {
		return nil, matErrorf("NewWithValue", err, "")
	}
	m.fill(px)
	return m, nil
}

// fill sets every element to px.
func (m *Mat) fill(px []float64) {
	if m.Empty() {
		return
	}
	es := m.ElemSize()
	first := m.rowBytes(0)
	m.setPixel(0, 0, px)
	for c := 1; c < m.cols; c++ {
		copy(first[c*es:(c+1)*es], first[:es])
	}
	for r := 1; r < m.rows; r++ {
		copy(m.rowBytes(r), first)
	}
}

// NewFromBytes creates a rows x cols matrix by copying data row by row.
//
// lineSize is the distance between row starts in data, counted in elements;
// 0 means cols. Padded buffers (lineSize > cols) are accepted, the padding is
// skipped.
func NewFromBytes(rows, cols int, t Type, data []byte, lineSize int) (*Mat, error) {
	m, err := New(rows, cols, t)
	if err != nil {
		return nil, err
	}
	if lineSize == 0 {
		lineSize = cols
	}
	if lineSize < cols {
		return nil, matErrorf("NewFromBytes", ErrInvalidArgument, "lineSize %d < cols %d", lineSize, cols)
	}
	if m.Empty() {
		return m, nil
	}

	es := t.ElemSize()
	srcStep := lineSize * es
	need := (rows-1)*srcStep + cols*es
	if len(data) < need {
		return nil, matErrorf("NewFromBytes", ErrBufferTooSmall, "need %d bytes, got %d", need, len(data))
	}
	for r := 0; r < rows; r++ {
		copy(m.rowBytes(r), data[r*srcStep:r*srcStep+cols*es])
	}
	return m, nil
}

// FromRows creates a single-channel matrix from a row-major literal.
// All rows must have the same length. TypeAuto infers the depth.
func FromRows(data [][]float64, t Type) (*Mat, error) {
	pixels := make([][][]float64, len(data))
	for r, row := range data {
		pixels[r] = make([][]float64, len(row))
		for c, v := range row {
			pixels[r][c] = []float64{v}
		}
	}
	return FromPixels(pixels, t)
}

// FromPixels creates a matrix from a [row][col][channel] literal. The
// channel count is the innermost length and must be the same everywhere.
// TypeAuto infers the depth from the values.
func FromPixels(data [][][]float64, t Type) (*Mat, error) {
	rows := len(data)
	cols, cn := 0, 1
	if rows > 0 {
		cols = len(data[0])
		if cols > 0 {
			cn = len(data[0][0])
		}
	}
	for r, row := range data {
		if len(row) != cols {
			return nil, matErrorf("FromPixels", ErrShapeMismatch, "row %d has %d cols, expected %d", r, len(row), cols)
		}
		for c, px := range row {
			if len(px) != cn {
				return nil, matErrorf("FromPixels", ErrShapeMismatch, "element (%d,%d) has %d channels, expected %d", r, c, len(px), cn)
			}
		}
	}

	if t == TypeAuto {
		t = MakeType(inferDepth(data), cn)
	}
	if !t.Valid() {
		return nil, matErrorf("FromPixels", ErrUnsupportedType, "%s", t)
	}
	if t.Channels() != cn {
		return nil, matErrorf("FromPixels", ErrShapeMismatch, "data has %d channels, type %s has %d", cn, t, t.Channels())
	}

	m := newOwned(rows, cols, t)
	for r, row := range data {
		for c, px := range row {
			m.setPixel(r, c, px)
		}
	}
	return m, nil
}

// inferDepth picks the narrowest of CV8U, CV32S and CV64F that holds every value exactly.
func inferDepth(data [][][]float64) Depth {
	d := CV8U
	for _, row := range data {
		for _, px := range row {
			for _, v := range px {
				switch {
				case v != math.Trunc(v) || math.IsInf(v, 0) || math.IsNaN(v):
					return CV64F
				case v < math.MinInt32 || v > math.MaxInt32:
					return CV64F
				case v < 0 || v > math.MaxUint8:
					d = CV32S
				}
			}
		}
	}
	return d
}
