package mat

// Copy returns an owned, continuous copy of m. With a mask, elements where
// the mask is zero are left zero in the result.
func (m *Mat) Copy(mask *Mat) (*Mat, error) {
	dst := newOwned(m.rows, m.cols, m.typ)
	if err := m.copyInto(dst, mask, "Copy"); err != nil {
		return nil, err
	}
	return dst, nil
}

// CopyTo copies m into dst. If dst already has m's shape and type the copy
// is written in place, so copying into a region view updates its parent.
// Otherwise dst is reallocated as a zeroed owned matrix first.
func (m *Mat) CopyTo(dst *Mat, mask *Mat) error {
	if dst == nil {
		return matErrorf("CopyTo", ErrInvalidArgumentType, "nil destination")
	}
	if dst == m {
		return nil
	}
	if err := m.checkMask(mask, "CopyTo"); err != nil {
		return err
	}
	if dst.rows != m.rows || dst.cols != m.cols || dst.typ != m.typ || (dst.buf == nil && !m.Empty()) {
		if dst.buf != nil {
			dst.buf.release()
		}
		*dst = *newOwned(m.rows, m.cols, m.typ)
	}
	return m.copyInto(dst, mask, "CopyTo")
}

func (m *Mat) checkMask(mask *Mat, op string) error {
	if mask == nil {
		return nil
	}
	if mask.Channels() != 1 {
		return matErrorf(op, ErrInvalidArgumentType, "mask must have 1 channel, has %d", mask.Channels())
	}
	if mask.rows != m.rows || mask.cols != m.cols {
		return matErrorf(op, ErrShapeMismatch, "mask %dx%d, matrix %dx%d", mask.rows, mask.cols, m.rows, m.cols)
	}
	return nil
}

// copyInto copies m into dst, which has m's shape and type.
func (m *Mat) copyInto(dst *Mat, mask *Mat, op string) error {
	if err := m.checkMask(mask, op); err != nil {
		return err
	}
	if m.Empty() {
		return nil
	}
	es := m.ElemSize()
	forRows(m.rows, func(start, end int) {
		mv := make([]float64, 1)
		for r := start; r < end; r++ {
			in, out := m.rowBytes(r), dst.rowBytes(r)
			if mask == nil {
				copy(out, in)
				continue
			}
			for c := 0; c < m.cols; c++ {
				mask.pixel(r, c, mv)
				if mv[0] != 0 {
					copy(out[c*es:(c+1)*es], in[c*es:(c+1)*es])
				}
			}
		}
	})
	return nil
}
