package mat

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DFT flags. The codes match OpenCV's.
const (
	DFTInverse       = 1
	DFTScale         = 2
	DFTRows          = 4
	DFTComplexOutput = 16
	DFTRealOutput    = 32
)

// DFT computes the discrete Fourier transform of a floating-point matrix
// with one (real) or two (complex: re, im) channels.
//
// Real input produces the CCS-packed spectrum in a matrix of the input's
// shape and type, or the full complex spectrum with DFTComplexOutput. An
// inverse transform of a one-channel (CCS-packed) matrix yields a real
// matrix; of a two-channel matrix a complex one, or its real part with
// DFTRealOutput. DFTScale divides by the number of transformed elements.
//
// nonZeroRows > 0 limits the work: forward transforms treat input rows from
// nonZeroRows on as zero, inverse transforms only fill the first nonZeroRows
// output rows.
func (m *Mat) DFT(flags, nonZeroRows int) (*Mat, error) {
	cn := m.Channels()
	if (cn != 1 && cn != 2) || !m.Depth().IsFloat() {
		return nil, matErrorf("DFT", ErrUnsupportedType, "%s, expected a 1 or 2 channel float type", m.typ)
	}
	if nonZeroRows < 0 {
		return nil, matErrorf("DFT", ErrInvalidArgument, "nonZeroRows = %d", nonZeroRows)
	}
	if nonZeroRows == 0 || nonZeroRows > m.rows {
		nonZeroRows = m.rows
	}
	inverse := flags&DFTInverse != 0
	rowsOnly := flags&DFTRows != 0 || m.rows == 1

	if m.Empty() {
		return newOwned(m.rows, m.cols, m.typ), nil
	}

	// Rows that are transformed together as one grid: the whole matrix, or
	// one row at a time.
	gridRows := m.rows
	if rowsOnly {
		gridRows = 1
	}

	data := m.complexData()
	if !inverse {
		for i := nonZeroRows * m.cols; i < len(data); i++ {
			data[i] = 0
		}
	}

	if inverse && cn == 1 {
		for g := 0; g < m.rows; g += gridRows {
			unpackCCS(data[g*m.cols:(g+gridRows)*m.cols], gridRows, m.cols)
		}
	}

	fft2(data, m.rows, m.cols, rowsOnly, inverse)

	if flags&DFTScale != 0 {
		n := complex(float64(gridRows*m.cols), 0)
		for i := range data {
			data[i] /= n
		}
	}
	if inverse {
		for i := nonZeroRows * m.cols; i < len(data); i++ {
			data[i] = 0
		}
	}

	d := m.Depth()
	switch {
	case !inverse && cn == 1 && flags&DFTComplexOutput == 0:
		out := make([]float64, len(data))
		for g := 0; g < m.rows; g += gridRows {
			packCCS(out[g*m.cols:(g+gridRows)*m.cols], data[g*m.cols:(g+gridRows)*m.cols], gridRows, m.cols)
		}
		dst := newOwned(m.rows, m.cols, MakeType(d, 1))
		dst.setValues(out)
		return dst, nil
	case inverse && (cn == 1 || flags&DFTRealOutput != 0):
		out := make([]float64, len(data))
		for i, v := range data {
			out[i] = real(v)
		}
		dst := newOwned(m.rows, m.cols, MakeType(d, 1))
		dst.setValues(out)
		return dst, nil
	default:
		out := make([]float64, 2*len(data))
		for i, v := range data {
			out[2*i], out[2*i+1] = real(v), imag(v)
		}
		dst := newOwned(m.rows, m.cols, MakeType(d, 2))
		dst.setValues(out)
		return dst, nil
	}
}

// IDFT is DFT with DFTInverse set.
func (m *Mat) IDFT(flags, nonZeroRows int) (*Mat, error) {
	return m.DFT(flags|DFTInverse, nonZeroRows)
}

// complexData reads m as row-major complex values. One-channel matrices are
// real; CCS-packed spectra are read as-is and unpacked by the caller.
func (m *Mat) complexData() []complex128 {
	vals := m.values()
	out := make([]complex128, m.Total())
	if m.Channels() == 1 {
		for i, v := range vals {
			out[i] = complex(v, 0)
		}
		return out
	}
	for i := range out {
		out[i] = complex(vals[2*i], vals[2*i+1])
	}
	return out
}

// fft2 transforms data (rows x cols, row-major) in place: every row, then,
// unless rowsOnly, every column. The inverse is unnormalized.
func fft2(data []complex128, rows, cols int, rowsOnly, inverse bool) {
	forRows(rows, func(start, end int) {
		fft := fourier.NewCmplxFFT(cols)
		for r := start; r < end; r++ {
			transform(fft, data[r*cols:(r+1)*cols], inverse)
		}
	})
	if rowsOnly || rows == 1 {
		return
	}
	forColumns(cols, func(start, end int) {
		fft := fourier.NewCmplxFFT(rows)
		col := make([]complex128, rows)
		for c := start; c < end; c++ {
			for r := range col {
				col[r] = data[r*cols+c]
			}
			transform(fft, col, inverse)
			for r, v := range col {
				data[r*cols+c] = v
			}
		}
	})
}

// transform replaces seq by its DFT. The inverse uses
// conj(FFT(conj(x))), which is the unnormalized inverse DFT.
func transform(fft *fourier.CmplxFFT, seq []complex128, inverse bool) {
	if inverse {
		for i, v := range seq {
			seq[i] = cmplx.Conj(v)
		}
	}
	fft.Coefficients(seq, seq)
	if inverse {
		for i, v := range seq {
			seq[i] = cmplx.Conj(v)
		}
	}
}

// packCCS writes the spectrum f of a real rows x cols signal in the
// complex-conjugate-symmetrical layout: for each frequency column k with
// 0 < k < (cols+1)/2 the pair (2k-1, 2k) holds Re and Im of F[u][k]; columns
// 0 and, for even cols, cols-1 hold the Hermitian columns F[.][0] and
// F[.][cols/2], themselves packed along the rows.
func packCCS(dst []float64, f []complex128, rows, cols int) {
	for u := 0; u < rows; u++ {
		for k := 1; 2*k < cols; k++ {
			v := f[u*cols+k]
			dst[u*cols+2*k-1] = real(v)
			dst[u*cols+2*k] = imag(v)
		}
	}
	packColumn(dst, f, rows, cols, 0, 0)
	if cols%2 == 0 && cols > 1 {
		packColumn(dst, f, rows, cols, cols/2, cols-1)
	}
}

// packColumn stores the Hermitian column F[.][k] into dst column c.
func packColumn(dst []float64, f []complex128, rows, cols, k, c int) {
	dst[c] = real(f[k])
	for j := 1; 2*j < rows; j++ {
		v := f[j*cols+k]
		dst[(2*j-1)*cols+c] = real(v)
		dst[2*j*cols+c] = imag(v)
	}
	if rows%2 == 0 && rows > 1 {
		dst[(rows-1)*cols+c] = real(f[(rows/2)*cols+k])
	}
}

// unpackCCS expands a CCS-packed real spectrum, stored in the real parts of
// data, into the full complex spectrum in place.
func unpackCCS(data []complex128, rows, cols int) {
	p := make([]float64, len(data))
	for i, v := range data {
		p[i] = real(v)
	}
	at := func(u, k int) complex128 { return data[u*cols+k] }
	set := func(u, k int, v complex128) { data[u*cols+k] = v }

	for i := range data {
		data[i] = 0
	}
	for u := 0; u < rows; u++ {
		for k := 1; 2*k < cols; k++ {
			set(u, k, complex(p[u*cols+2*k-1], p[u*cols+2*k]))
		}
	}
	unpackColumn(data, p, rows, cols, 0, 0)
	if cols%2 == 0 && cols > 1 {
		unpackColumn(data, p, rows, cols, cols/2, cols-1)
	}

	// Remaining columns from Hermitian symmetry F[u][k] = conj(F[-u][-k]).
	for u := 0; u < rows; u++ {
		for k := cols/2 + 1; k < cols; k++ {
			set(u, k, cmplx.Conj(at((rows-u)%rows, cols-k)))
		}
	}
}

// unpackColumn restores the Hermitian column F[.][k] from packed column c.
func unpackColumn(data []complex128, p []float64, rows, cols, k, c int) {
	data[k] = complex(p[c], 0)
	for j := 1; 2*j < rows; j++ {
		v := complex(p[(2*j-1)*cols+c], p[2*j*cols+c])
		data[j*cols+k] = v
		data[(rows-j)*cols+k] = cmplx.Conj(v)
	}
	if rows%2 == 0 && rows > 1 {
		data[(rows/2)*cols+k] = complex(p[(rows-1)*cols+c], 0)
	}
}
