package mat

// PushBack appends the rows of other to m. Both must have the same cols and
// type, except that an empty m takes other's cols and type. m is reallocated,
// so region views cut from m before the call keep seeing the old rows.
func (m *Mat) PushBack(other *Mat) error {
	if other == nil {
		return matErrorf("PushBack", ErrInvalidArgumentType, "nil matrix")
	}
	if m.Empty() {
		c, err := other.Copy(nil)
		if err != nil {
			return err
		}
		m.Release()
		*m = *c
		return nil
	}
	if other.cols != m.cols {
		return matErrorf("PushBack", ErrShapeMismatch, "cols %d vs %d", other.cols, m.cols)
	}
	if other.typ != m.typ {
		return matErrorf("PushBack", ErrUnsupportedType, "%s vs %s", other.typ, m.typ)
	}

	grown := newOwned(m.rows+other.rows, m.cols, m.typ)
	for r := 0; r < m.rows; r++ {
		copy(grown.rowBytes(r), m.rowBytes(r))
	}
	for r := 0; r < other.rows; r++ {
		copy(grown.rowBytes(m.rows+r), other.rowBytes(r))
	}
	m.buf.release()
	*m = *grown
	return nil
}

// PopBack removes the last n rows of m. The storage is kept.
func (m *Mat) PopBack(n int) error {
	if n < 0 {
		return matErrorf("PopBack", ErrInvalidArgument, "n = %d", n)
	}
	if n > m.rows {
		return matErrorf("PopBack", ErrIndexOutOfBounds, "cannot pop %d of %d rows", n, m.rows)
	}
	m.rows -= n
	return nil
}
