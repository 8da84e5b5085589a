package mat

// RotateFlag selects a rotation for Rotate. The codes match OpenCV's.
type RotateFlag int

// Rotations.
const (
	Rotate90Clockwise        RotateFlag = 0
	Rotate180                RotateFlag = 1
	Rotate90CounterClockwise RotateFlag = 2
)

// Flip returns m mirrored: code 0 flips vertically (around the x axis),
// code > 0 horizontally, code < 0 both.
func (m *Mat) Flip(code int) *Mat {
	dst := newOwned(m.rows, m.cols, m.typ)
	if m.Empty() {
		return dst
	}
	es := m.ElemSize()
	forRows(m.rows, func(start, end int) {
		for r := start; r < end; r++ {
			sr := r
			if code <= 0 {
				sr = m.rows - 1 - r
			}
			in, out := m.rowBytes(sr), dst.rowBytes(r)
			if code == 0 {
				copy(out, in)
				continue
			}
			for c := 0; c < m.cols; c++ {
				sc := m.cols - 1 - c
				copy(out[c*es:(c+1)*es], in[sc*es:(sc+1)*es])
			}
		}
	})
	return dst
}

// Rotate returns m rotated by a multiple of 90 degrees. The 90 degree
// rotations swap rows and cols.
func (m *Mat) Rotate(flag RotateFlag) (*Mat, error) {
	switch flag {
	case Rotate180:
		return m.Flip(-1), nil
	case Rotate90Clockwise, Rotate90CounterClockwise:
	default:
		return nil, matErrorf("Rotate", ErrInvalidArgument, "rotate flag %d", int(flag))
	}

	dst := newOwned(m.cols, m.rows, m.typ)
	if m.Empty() {
		return dst, nil
	}
	es := m.ElemSize()
	// dst(r, c) takes m(rows-1-c, r) clockwise and m(c, cols-1-r) counter-clockwise.
	forRows(dst.rows, func(start, end int) {
		for r := start; r < end; r++ {
			out := dst.rowBytes(r)
			for c := 0; c < dst.cols; c++ {
				var sr, sc int
				if flag == Rotate90Clockwise {
					sr, sc = m.rows-1-c, r
				} else {
					sr, sc = c, m.cols-1-r
				}
				copy(out[c*es:(c+1)*es], m.rowBytes(sr)[sc*es:(sc+1)*es])
			}
		}
	})
	return dst, nil
}
