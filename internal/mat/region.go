package mat

import (
	"fmt"
	"image"
)

// Region returns a view of the rectangle r (Min inclusive, Max exclusive,
// X = column, Y = row). The view shares m's storage: writes through either
// are visible in both. Regions of regions are allowed.
func (m *Mat) Region(r image.Rectangle) (*Mat, error) {
	if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > m.cols || r.Max.Y > m.rows || r.Dx() < 0 || r.Dy() < 0 {
		return nil, fmt.Errorf("Mat.Region - %v outside %dx%d: %w", r, m.rows, m.cols, ErrRegionOutOfBounds)
	}
	if m.buf == nil {
		return &Mat{typ: m.typ, region: true}, nil
	}

	m.buf.retain()
	step := m.step
	if step == 0 {
		step = m.cols * m.ElemSize()
	}
	return &Mat{
		buf:    m.buf,
		rows:   r.Dy(),
		cols:   r.Dx(),
		typ:    m.typ,
		step:   step,
		offset: m.offset + r.Min.Y*step + r.Min.X*m.ElemSize(),
		region: true,
	}, nil
}
