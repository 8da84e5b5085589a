package mat

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DCT flags.
const (
	DCTInverse = 1
	DCTRows    = 4
)

// DCT returns the orthonormal DCT-II of a single-channel floating-point
// matrix. Without DCTRows the transform is two-dimensional (rows, then
// columns). DCTInverse computes the inverse instead.
func (m *Mat) DCT(flags int) (*Mat, error) {
	if m.Channels() != 1 || !m.Depth().IsFloat() {
		return nil, matErrorf("DCT", ErrUnsupportedType, "%s, expected CV_32FC1 or CV_64FC1", m.typ)
	}
	inverse := flags&DCTInverse != 0
	dst := newOwned(m.rows, m.cols, m.typ)
	if m.Empty() {
		return dst, nil
	}

	vals := m.values()
	forRows(m.rows, func(start, end int) {
		plan := newDCTPlan(m.cols)
		for r := start; r < end; r++ {
			row := vals[r*m.cols : (r+1)*m.cols]
			plan.apply(row, row, inverse)
		}
	})

	if flags&DCTRows == 0 && m.rows > 1 {
		forColumns(m.cols, func(start, end int) {
			plan := newDCTPlan(m.rows)
			col := make([]float64, m.rows)
			for c := start; c < end; c++ {
				for r := range col {
					col[r] = vals[r*m.cols+c]
				}
				plan.apply(col, col, inverse)
				for r, v := range col {
					vals[r*m.cols+c] = v
				}
			}
		})
	}

	dst.setValues(vals)
	return dst, nil
}

// IDCT is DCT with DCTInverse set.
func (m *Mat) IDCT(flags int) (*Mat, error) {
	return m.DCT(flags | DCTInverse)
}

// dctPlan wraps a quarter-wave FFT of one length with the factors that make
// it orthonormal. A plan owns scratch space and is not safe for concurrent use.
//
// CosSequence computes 4 * sum_i x[i] * cos(pi*(2i+1)*k / 2n), an unnormalized
// DCT-II, and CosCoefficients computes x[0] + 2 * sum_{k>0} x[k] *
// cos(pi*(2i+1)*k / 2n), an unnormalized DCT-III.
type dctPlan struct {
	n      int
	fft    *fourier.QuarterWaveFFT
	c0, ck float64 // orthonormal weights of coefficient 0 and the rest
}

func newDCTPlan(n int) *dctPlan {
	p := &dctPlan{n: n}
	if n < 2 {
		// The orthonormal DCT of length 1 is the identity.
		return p
	}
	p.fft = fourier.NewQuarterWaveFFT(n)
	p.c0, p.ck = math.Sqrt(1/float64(n)), math.Sqrt(2/float64(n))
	return p
}

// apply writes the forward (DCT-II) or inverse (DCT-III) transform of src
// to dst. dst and src may be the same slice.
func (p *dctPlan) apply(dst, src []float64, inverse bool) {
	if p.fft == nil {
		copy(dst, src)
		return
	}
	if inverse {
		dst[0] = src[0] * p.c0
		for k := 1; k < p.n; k++ {
			dst[k] = src[k] * p.ck / 2
		}
		p.fft.CosCoefficients(dst, dst)
		return
	}
	p.fft.CosSequence(dst, src)
	dst[0] *= p.c0 / 4
	for k := 1; k < p.n; k++ {
		dst[k] *= p.ck / 4
	}
}
