package mat

// BorderType selects how CopyMakeBorder extrapolates pixels outside the
// source. The codes match OpenCV's.
type BorderType int

// Border types. Examples show the padding around "abcdefgh".
const (
	BorderConstant   BorderType = 0 // iiiiii|abcdefgh|iiiiiii
	BorderReplicate  BorderType = 1 // aaaaaa|abcdefgh|hhhhhhh
	BorderReflect    BorderType = 2 // fedcba|abcdefgh|hgfedcb
	BorderWrap       BorderType = 3 // cdefgh|abcdefgh|abcdefg
	BorderReflect101 BorderType = 4 // gfedcb|abcdefgh|gfedcba
)

// borderInterpolate maps a coordinate outside [0, n) back into it.
func borderInterpolate(p, n int, bt BorderType) int {
	if p >= 0 && p < n {
		return p
	}
	switch bt {
	case BorderReplicate:
		if p < 0 {
			return 0
		}
		return n - 1
	case BorderReflect, BorderReflect101:
		if n == 1 {
			return 0
		}
		delta := 0
		if bt == BorderReflect101 {
			delta = 1
		}
		for p < 0 || p >= n {
			if p < 0 {
				p = -p - 1 + delta
			} else {
				p = n - 1 - (p - n) - delta
			}
		}
		return p
	case BorderWrap:
		p %= n
		if p < 0 {
			p += n
		}
		return p
	default:
		return -1
	}
}

// CopyMakeBorder returns m surrounded by a border of the given widths.
// For BorderConstant, value fills the border: nil means zeros, a Scalar is
// broadcast, a vector must match the channel count.
func (m *Mat) CopyMakeBorder(top, bottom, left, right int, bt BorderType, value Value) (*Mat, error) {
	if top < 0 || bottom < 0 || left < 0 || right < 0 {
		return nil, matErrorf("CopyMakeBorder", ErrInvalidArgument, "negative border (%d,%d,%d,%d)", top, bottom, left, right)
	}
	if bt < BorderConstant || bt > BorderReflect101 {
		return nil, matErrorf("CopyMakeBorder", ErrInvalidArgument, "border type %d", int(bt))
	}
	if bt != BorderConstant && m.Empty() && top+bottom+left+right > 0 {
		return nil, matErrorf("CopyMakeBorder", ErrInvalidArgument, "cannot extrapolate from an empty matrix")
	}

	rows, cols := m.rows+top+bottom, m.cols+left+right
	if err := checkSize("CopyMakeBorder", rows, cols, m.typ); err != nil {
		return nil, err
	}
	dst := newOwned(rows, cols, m.typ)
	if dst.Empty() {
		return dst, nil
	}
	es := m.ElemSize()

	if bt == BorderConstant {
		px, err := fillChannels(value, m.Channels())
		if err != nil {
			return nil, matErrorf("CopyMakeBorder", err, "")
		}
		dst.fill(px)
		forRows(m.rows, func(start, end int) {
			for r := start; r < end; r++ {
				copy(dst.rowBytes(r + top)[left*es:], m.rowBytes(r))
			}
		})
		return dst, nil
	}

	// Source column for each destination column.
	colMap := make([]int, dst.cols)
	for c := range colMap {
		colMap[c] = borderInterpolate(c-left, m.cols, bt)
	}
	forRows(dst.rows, func(start, end int) {
		for r := start; r < end; r++ {
			in := m.rowBytes(borderInterpolate(r-top, m.rows, bt))
			out := dst.rowBytes(r)
			copy(out[left*es:], in)
			for c, sc := range colMap {
				if c >= left && c < left+m.cols {
					continue
				}
				copy(out[c*es:(c+1)*es], in[sc*es:(sc+1)*es])
			}
		}
	})
	return dst, nil
}

// PadToSquare returns m centred in a max(rows, cols) square filled with fill.
// When the difference is odd the leading side (top or left) gets the smaller half.
func (m *Mat) PadToSquare(fill Value) (*Mat, error) {
	side := max(m.rows, m.cols)
	dr, dc := side-m.rows, side-m.cols
	top, left := dr/2, dc/2
	return m.CopyMakeBorder(top, dr-top, left, dc-left, BorderConstant, fill)
}
