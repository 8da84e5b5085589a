package mat

// ConvertTo returns m converted to the depth of t with v' = alpha*v + beta.
// The channel count of m is kept; TypeAuto keeps m's depth. Integer targets
// round half to even and saturate, NaN becomes 0.
func (m *Mat) ConvertTo(t Type, alpha, beta float64) (*Mat, error) {
	d := m.Depth()
	if t != TypeAuto {
		if !t.Valid() {
			return nil, matErrorf("ConvertTo", ErrUnsupportedType, "%s", t)
		}
		d = t.Depth()
	}
	return m.convertDepth(d, alpha, beta), nil
}

// convertDepth is ConvertTo for a known-valid depth.
func (m *Mat) convertDepth(d Depth, alpha, beta float64) *Mat {
	dst := newOwned(m.rows, m.cols, MakeType(d, m.Channels()))
	if m.Empty() {
		return dst
	}
	if d == m.Depth() && alpha == 1 && beta == 0 {
		_ = m.copyInto(dst, nil, "ConvertTo")
		return dst
	}

	sd := m.Depth()
	ss, ds := sd.Size(), d.Size()
	n := m.cols * m.Channels()
	forRows(m.rows, func(start, end int) {
		for r := start; r < end; r++ {
			in, out := m.rowBytes(r), dst.rowBytes(r)
			for i := 0; i < n; i++ {
				v := loadValue(sd, in[i*ss:])
				storeValue(d, out[i*ds:], alpha*v+beta)
			}
		}
	})
	return dst
}
