package serialization

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/cvmat/internal/mat"
)

func TestValidateMatrixOffsets(t *testing.T) {
	tests := []struct {
		name     string
		matrices []MatrixMeta
		dataSize int64
		want     error
		kind     string
	}{
		{
			name: "valid non-overlapping",
			matrices: []MatrixMeta{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 100, Size: 50},
			},
			dataSize: 150,
		},
		{
			name: "unsorted input",
			matrices: []MatrixMeta{
				{Name: "b", Offset: 100, Size: 50},
				{Name: "a", Offset: 0, Size: 100},
			},
			dataSize: 150,
		},
		{
			name: "overlap",
			matrices: []MatrixMeta{
				{Name: "a", Offset: 0, Size: 100},
				{Name: "b", Offset: 50, Size: 100},
			},
			dataSize: 150,
			want:     ErrOffsetOverlap,
			kind:     "offset_overlap",
		},
		{
			name:     "out of bounds",
			matrices: []MatrixMeta{{Name: "a", Offset: 100, Size: 100}},
			dataSize: 150,
			want:     ErrOutOfBounds,
			kind:     "out_of_bounds",
		},
		{
			name:     "negative offset",
			matrices: []MatrixMeta{{Name: "a", Offset: -1, Size: 1}},
			dataSize: 150,
			want:     ErrOutOfBounds,
			kind:     "negative_offset",
		},
		{
			name:     "zero size",
			matrices: []MatrixMeta{{Name: "a", Offset: 150, Size: 0}},
			dataSize: 150,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMatrixOffsets(tt.matrices, tt.dataSize)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.kind, ve.Type)
		})
	}
}

func TestValidateMatrixOffsets_TooMany(t *testing.T) {
	matrices := make([]MatrixMeta, MaxMatrixCount+1)
	assert.ErrorIs(t, ValidateMatrixOffsets(matrices, 0), ErrTooManyMatrices)
}

func TestValidateMatrixName(t *testing.T) {
	for _, name := range []string{"frame", "layer.0.weight", "a-b_c"} {
		assert.NoError(t, ValidateMatrixName(name), name)
	}
	for _, name := range []string{"", "../etc", "a/b", `a\b`, "a\x00b", strings.Repeat("x", MaxMatrixNameLen+1)} {
		assert.ErrorIs(t, ValidateMatrixName(name), ErrInvalidName, "%q", name)
	}
}

func TestValidateMatrixMeta(t *testing.T) {
	assert.NoError(t, ValidateMatrixMeta(MatrixMeta{Name: "a", Type: "CV_32FC3", Rows: 2, Cols: 5, Size: 120}))
	assert.NoError(t, ValidateMatrixMeta(MatrixMeta{Name: "a", Type: "CV_8U", Rows: 0, Cols: 5, Size: 0}))

	err := ValidateMatrixMeta(MatrixMeta{Name: "a", Type: "CV_32FC3", Rows: 2, Cols: 5, Size: 119})
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorContains(t, err, "size_mismatch")

	err = ValidateMatrixMeta(MatrixMeta{Name: "a", Type: "CV_12U", Rows: 1, Cols: 1, Size: 1})
	assert.ErrorIs(t, err, mat.ErrUnsupportedType)

	err = ValidateMatrixMeta(MatrixMeta{Name: "a", Type: "CV_8U", Rows: -1, Cols: 1, Size: 0})
	assert.ErrorIs(t, err, mat.ErrBadShape)
}

func TestValidateHeader(t *testing.T) {
	h := &Header{Matrices: []MatrixMeta{
		{Name: "a", Type: "CV_8UC1", Rows: 2, Cols: 2, Offset: 0, Size: 4},
		{Name: "a", Type: "CV_8UC1", Rows: 2, Cols: 2, Offset: 4, Size: 4},
	}}
	err := ValidateHeader(h, 8, ValidationStrict)
	assert.ErrorIs(t, err, ErrInvalidName)
	assert.ErrorContains(t, err, "duplicate_name")
	assert.NoError(t, ValidateHeader(h, 8, ValidationNone))

	h.Matrices[1].Name = "b"
	h.Matrices[1].Offset = 2
	assert.ErrorIs(t, ValidateHeader(h, 8, ValidationStrict), ErrOffsetOverlap)
	assert.NoError(t, ValidateHeader(h, 8, ValidationNormal))
}

func TestValidationError_Message(t *testing.T) {
	e := &ValidationError{Type: "offset_overlap", Matrix: "a", Matrix2: "b", Details: "x", Err: ErrOffsetOverlap}
	assert.Equal(t, `offset_overlap: matrices "a" and "b": x`, e.Error())

	e = &ValidationError{Type: "too_many_matrices", Details: "y"}
	assert.Equal(t, "too_many_matrices: y", e.Error())
}

func TestValidateChecksum(t *testing.T) {
	data := []byte("test data")
	sum := ComputeChecksum(data)
	assert.NoError(t, ValidateChecksum(data, sum))

	err := ValidateChecksum([]byte("test datA"), sum)
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	empty := ComputeChecksum(nil)
	assert.Equal(t, byte(0xe3), empty[0])
	assert.Equal(t, byte(0x55), empty[ChecksumSize-1])
}

func TestCompressZstd_RoundTrip(t *testing.T) {
	data := []byte(strings.Repeat("cvmat", 1000))
	packed, err := compressZstd(data)
	require.NoError(t, err)
	assert.Less(t, len(packed), len(data))

	out, err := decompressZstd(packed, int64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, data, out)

	_, err = decompressZstd(packed, int64(len(data))+1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = decompressZstd(packed, -1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = decompressZstd([]byte("not zstd"), 10)
	assert.Error(t, err)
}

func TestDecompressZstd_StopsAtDeclaredSize(t *testing.T) {
	packed, err := compressZstd(make([]byte, 64<<20))
	require.NoError(t, err)
	require.Less(t, len(packed), 1<<20)

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err = decompressZstd(packed, 16)
	runtime.ReadMemStats(&after)

	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(48<<20))

	_, err = decompressZstd(nil, 16)
	assert.ErrorIs(t, err, ErrOutOfBounds)
}
