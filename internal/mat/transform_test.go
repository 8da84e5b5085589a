package mat

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomMat(t *testing.T, rows, cols int, typ Type, seed uint64) *Mat {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, 0))
	pixels := make([][][]float64, rows)
	for r := range pixels {
		pixels[r] = make([][]float64, cols)
		for c := range pixels[r] {
			px := make([]float64, typ.Channels())
			for k := range px {
				px[k] = rng.Float64()*20 - 10
			}
			pixels[r][c] = px
		}
	}
	m, err := FromPixels(pixels, typ)
	require.NoError(t, err)
	return m
}

func assertMatInDelta(t *testing.T, want, got *Mat, delta float64) {
	t.Helper()
	require.Equal(t, want.Rows(), got.Rows())
	require.Equal(t, want.Cols(), got.Cols())
	require.Equal(t, want.Channels(), got.Channels())
	w, g := want.values(), got.values()
	for i := range w {
		require.InDelta(t, w[i], g[i], delta, "value %d", i)
	}
}

func TestDCT_Constant(t *testing.T) {
	m, _ := NewWithValue(1, 4, CV64FC1, Scalar(1))
	out, err := m.DCT(0)
	require.NoError(t, err)
	arr := mustArray(t, out)
	assert.InDelta(t, 2, arr[0][0], 1e-12)
	for _, v := range arr[0][1:] {
		assert.InDelta(t, 0, v, 1e-12)
	}
}

func TestDCT_RoundTrip(t *testing.T) {
	for _, shape := range [][2]int{{1, 8}, {4, 6}, {5, 3}} {
		m := randomMat(t, shape[0], shape[1], CV64FC1, 1)
		for _, flags := range []int{0, DCTRows} {
			fwd, err := m.DCT(flags)
			require.NoError(t, err)
			back, err := fwd.IDCT(flags)
			require.NoError(t, err)
			assertMatInDelta(t, m, back, 1e-9)
		}
	}
}

func TestDCT_PreservesEnergy(t *testing.T) {
	m := randomMat(t, 4, 4, CV64FC1, 2)
	fwd, err := m.DCT(0)
	require.NoError(t, err)

	a, _ := m.Norm(NormL2)
	b, _ := fwd.Norm(NormL2)
	assert.InDelta(t, a, b, 1e-9)
}

// naiveDCT is the textbook orthonormal DCT-II of one row.
func naiveDCT(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for k := range out {
		c := math.Sqrt(2 / float64(n))
		if k == 0 {
			c = math.Sqrt(1 / float64(n))
		}
		var s float64
		for i, v := range x {
			s += v * math.Cos(math.Pi*float64((2*i+1)*k)/float64(2*n))
		}
		out[k] = c * s
	}
	return out
}

func TestDCT_MatchesDirectSum(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 15, 16} {
		m := randomMat(t, 1, n, CV64FC1, uint64(n))
		out, err := m.DCT(DCTRows)
		require.NoError(t, err)

		want := naiveDCT(m.values())
		got := out.values()
		for k := range want {
			assert.InDelta(t, want[k], got[k], 1e-9, "n=%d k=%d", n, k)
		}
	}
}

func TestDCT_LongRow(t *testing.T) {
	const n = 4096
	m, _ := NewWithValue(1, n, CV64FC1, Scalar(1))

	out, err := m.DCT(0)
	require.NoError(t, err)
	arr := mustArray(t, out)
	assert.InDelta(t, math.Sqrt(n), arr[0][0], 1e-9)
	for k := 1; k < n; k += 511 {
		assert.InDelta(t, 0, arr[0][k], 1e-9)
	}

	src := randomMat(t, 1, n, CV64FC1, 9)
	fwd, err := src.DCT(0)
	require.NoError(t, err)
	back, err := fwd.IDCT(0)
	require.NoError(t, err)
	assertMatInDelta(t, src, back, 1e-9)
}

func TestDCT_UnsupportedType(t *testing.T) {
	m, _ := New(2, 2, CV8UC1)
	_, err := m.DCT(0)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	c, _ := New(2, 2, CV32FC2)
	_, err = c.DCT(0)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestDFT_CCSRow(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2, 3, 4}}, CV64FC1)

	out, err := m.DFT(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CV64FC1, out.Type())
	arr := mustArray(t, out)
	want := []float64{10, -2, 2, -2}
	for i := range want {
		assert.InDelta(t, want[i], arr[0][i], 1e-12)
	}

	full, err := m.DFT(DFTComplexOutput, 0)
	require.NoError(t, err)
	assert.Equal(t, CV64FC2, full.Type())
	wantFull := [][]float64{{10, 0}, {-2, 2}, {-2, 0}, {-2, -2}}
	px := full.GetDataAsPixels()[0]
	for i := range wantFull {
		assert.InDelta(t, wantFull[i][0], px[i][0], 1e-12)
		assert.InDelta(t, wantFull[i][1], px[i][1], 1e-12)
	}
}

func TestDFT_CCSLayout2D(t *testing.T) {
	m := randomMat(t, 4, 4, CV64FC1, 3)

	packed, err := m.DFT(0, 0)
	require.NoError(t, err)
	full, err := m.DFT(DFTComplexOutput, 0)
	require.NoError(t, err)

	p := mustArray(t, packed)
	f := full.GetDataAsPixels()
	re := func(u, k int) float64 { return f[u][k][0] }
	im := func(u, k int) float64 { return f[u][k][1] }

	const d = 1e-9
	// Column 0: F[.][0] packed along the rows.
	assert.InDelta(t, re(0, 0), p[0][0], d)
	assert.InDelta(t, re(1, 0), p[1][0], d)
	assert.InDelta(t, im(1, 0), p[2][0], d)
	assert.InDelta(t, re(2, 0), p[3][0], d)
	// Column 3: F[.][2] packed along the rows.
	assert.InDelta(t, re(0, 2), p[0][3], d)
	assert.InDelta(t, re(1, 2), p[1][3], d)
	assert.InDelta(t, im(1, 2), p[2][3], d)
	assert.InDelta(t, re(2, 2), p[3][3], d)
	// Columns 1, 2: Re and Im of F[u][1] for every row.
	for u := 0; u < 4; u++ {
		assert.InDelta(t, re(u, 1), p[u][1], d)
		assert.InDelta(t, im(u, 1), p[u][2], d)
	}
}

func TestDFT_DC(t *testing.T) {
	m := randomMat(t, 3, 5, CV64FC1, 4)
	var sum float64
	for _, v := range m.values() {
		sum += v
	}
	out, err := m.DFT(0, 0)
	require.NoError(t, err)
	v, _ := out.At(0, 0)
	assert.InDelta(t, sum, float64(v.(Scalar)), 1e-9)
}

func TestDFT_RoundTrip(t *testing.T) {
	shapes := [][2]int{{1, 8}, {1, 7}, {4, 4}, {3, 5}, {6, 3}, {5, 1}}
	for _, shape := range shapes {
		for _, flags := range []int{0, DFTRows} {
			m := randomMat(t, shape[0], shape[1], CV64FC1, 5)

			packed, err := m.DFT(flags, 0)
			require.NoError(t, err)
			back, err := packed.IDFT(flags|DFTScale, 0)
			require.NoError(t, err)
			assert.Equal(t, CV64FC1, back.Type())
			assertMatInDelta(t, m, back, 1e-9)

			full, err := m.DFT(flags|DFTComplexOutput, 0)
			require.NoError(t, err)
			back, err = full.IDFT(flags|DFTScale|DFTRealOutput, 0)
			require.NoError(t, err)
			assertMatInDelta(t, m, back, 1e-9)
		}
	}
}

func TestDFT_ComplexRoundTrip(t *testing.T) {
	m := randomMat(t, 4, 6, CV64FC2, 6)
	fwd, err := m.DFT(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CV64FC2, fwd.Type())

	back, err := fwd.IDFT(DFTScale, 0)
	require.NoError(t, err)
	assert.Equal(t, CV64FC2, back.Type())
	assertMatInDelta(t, m, back, 1e-9)
}

func TestDFT_Float32(t *testing.T) {
	m := randomMat(t, 4, 4, CV32FC1, 7)
	fwd, err := m.DFT(0, 0)
	require.NoError(t, err)
	assert.Equal(t, CV32FC1, fwd.Type())
	back, err := fwd.IDFT(DFTScale, 0)
	require.NoError(t, err)
	assertMatInDelta(t, m, back, 1e-4)
}

func TestDFT_NonZeroRows(t *testing.T) {
	m := randomMat(t, 3, 4, CV64FC1, 8)

	out, err := m.DFT(DFTRows, 1)
	require.NoError(t, err)
	arr := mustArray(t, out)
	for _, row := range arr[1:] {
		for _, v := range row {
			assert.Equal(t, 0.0, v)
		}
	}
	// The first row matches the unrestricted transform.
	all, err := m.DFT(DFTRows, 0)
	require.NoError(t, err)
	assert.Equal(t, mustArray(t, all)[0], arr[0])

	inv, err := all.IDFT(DFTRows|DFTScale, 2)
	require.NoError(t, err)
	got := mustArray(t, inv)
	want := mustArray(t, m)
	for c := range want[0] {
		assert.InDelta(t, want[1][c], got[1][c], 1e-9)
		assert.Equal(t, 0.0, got[2][c])
	}

	_, err = m.DFT(0, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDFT_UnsupportedType(t *testing.T) {
	m, _ := New(2, 2, CV8UC1)
	_, err := m.DFT(0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	c, _ := New(2, 2, CV32FC3)
	_, err = c.DFT(0, 0)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestTransforms_Parallel(t *testing.T) {
	prev := ParallelConfig()
	defer SetParallelConfig(prev)

	m := randomMat(t, 70, 9, CV64FC1, 9)
	cfg := prev
	cfg.Enabled = false
	SetParallelConfig(cfg)
	seq, err := m.DFT(0, 0)
	require.NoError(t, err)
	seqDCT, err := m.DCT(0)
	require.NoError(t, err)

	cfg.Enabled, cfg.NumWorkers, cfg.MinChunkSize = true, 4, 1
	SetParallelConfig(cfg)
	par, err := m.DFT(0, 0)
	require.NoError(t, err)
	parDCT, err := m.DCT(0)
	require.NoError(t, err)

	assertMatInDelta(t, seq, par, 1e-9)
	assertMatInDelta(t, seqDCT, parDCT, 1e-9)
	assert.False(t, math.IsNaN(par.values()[0]))
}

func TestForColumns_CoversRange(t *testing.T) {
	prev := ParallelConfig()
	defer SetParallelConfig(prev)

	for _, enabled := range []bool{false, true} {
		cfg := prev
		cfg.Enabled, cfg.NumWorkers, cfg.MinChunkSize = enabled, 4, 1
		SetParallelConfig(cfg)

		hits := make([]int, 37)
		forColumns(len(hits), func(start, end int) {
			for i := start; i < end; i++ {
				hits[i]++
			}
		})
		for i, h := range hits {
			assert.Equal(t, 1, h, "column %d enabled=%t", i, enabled)
		}
	}
}
