package mat

func (m *Mat) inBounds(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols
}

// At returns element (row, col). The concrete Value is Scalar for one
// channel, Vec2/Vec3/Vec4/Vec6 for 2/3/4/6 channels and Elem otherwise.
func (m *Mat) At(row, col int) (Value, error) {
	if !m.inBounds(row, col) {
		return nil, matErrorf("At", ErrIndexOutOfBounds, "(%d,%d) in %dx%d", row, col, m.rows, m.cols)
	}
	px := make([]float64, m.Channels())
	m.pixel(row, col, px)
	return valueOf(px), nil
}

// AtIndex is At with the indices given as a slice of length Dims().
func (m *Mat) AtIndex(idx []int) (Value, error) {
	if len(idx) != m.Dims() {
		return nil, matErrorf("AtIndex", ErrInvalidArgumentType, "expected array length to be equal to the dims")
	}
	return m.At(idx[0], idx[1])
}

// Set writes v into element (row, col), rounding and saturating to the depth.
func (m *Mat) Set(row, col int, v Value) error {
	if !m.inBounds(row, col) {
		return matErrorf("Set", ErrIndexOutOfBounds, "(%d,%d) in %dx%d", row, col, m.rows, m.cols)
	}
	if v == nil {
		return matErrorf("Set", ErrInvalidArgumentType, "nil value")
	}
	ch := v.Channels()
	if len(ch) != m.Channels() {
		return matErrorf("Set", ErrInvalidArgumentType, "value has %d channels, matrix has %d", len(ch), m.Channels())
	}
	m.setPixel(row, col, ch)
	return nil
}

// GetData returns a packed row-major copy of the elements,
// Rows()*Cols()*ElemSize() bytes, little-endian per channel value.
// Region views must be copied first.
func (m *Mat) GetData() ([]byte, error) {
	if m.region {
		return nil, matErrorf("GetData", ErrUnsupportedOnRegionView, "")
	}
	return m.packed(), nil
}

// packed copies the elements into a fresh continuous buffer.
func (m *Mat) packed() []byte {
	rb := m.cols * m.ElemSize()
	out := make([]byte, m.rows*rb)
	if m.Empty() {
		return out
	}
	if m.IsContinuous() {
		copy(out, m.buf.data[m.offset:m.offset+len(out)])
		return out
	}
	forRows(m.rows, func(start, end int) {
		for r := start; r < end; r++ {
			copy(out[r*rb:(r+1)*rb], m.rowBytes(r))
		}
	})
	return out
}

// GetDataAsArray returns the elements of a single-channel matrix as [row][col].
func (m *Mat) GetDataAsArray() ([][]float64, error) {
	if m.Channels() != 1 {
		return nil, matErrorf("GetDataAsArray", ErrInvalidArgumentType, "matrix has %d channels, expected 1", m.Channels())
	}
	out := make([][]float64, m.rows)
	for r := range out {
		row := make([]float64, m.cols)
		for c := range row {
			m.pixel(r, c, row[c:c+1])
		}
		out[r] = row
	}
	return out, nil
}

// GetDataAsPixels returns the elements as [row][col][channel].
func (m *Mat) GetDataAsPixels() [][][]float64 {
	cn := m.Channels()
	out := make([][][]float64, m.rows)
	for r := range out {
		row := make([][]float64, m.cols)
		for c := range row {
			row[c] = make([]float64, cn)
			m.pixel(r, c, row[c])
		}
		out[r] = row
	}
	return out
}
