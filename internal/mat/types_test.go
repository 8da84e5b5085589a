package mat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCodes(t *testing.T) {
	tests := []struct {
		typ  Type
		code int
		name string
	}{
		{CV8UC1, 0, "CV_8UC1"},
		{CV8SC1, 1, "CV_8SC1"},
		{CV16UC1, 2, "CV_16UC1"},
		{CV16SC1, 3, "CV_16SC1"},
		{CV32SC1, 4, "CV_32SC1"},
		{CV32FC1, 5, "CV_32FC1"},
		{CV64FC1, 6, "CV_64FC1"},
		{CV8UC3, 16, "CV_8UC3"},
		{CV32FC2, 13, "CV_32FC2"},
		{CV64FC4, 30, "CV_64FC4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, int(tt.typ))
			assert.Equal(t, tt.name, tt.typ.String())
		})
	}
}

func TestMakeType_RoundTrip(t *testing.T) {
	for d := CV8U; d <= CV64F; d++ {
		for _, cn := range []int{1, 2, 3, 4, 5, 6, 64, MaxChannels} {
			typ := MakeType(d, cn)
			require.True(t, typ.Valid(), "%s x %d", d, cn)
			assert.Equal(t, d, typ.Depth())
			assert.Equal(t, cn, typ.Channels())
			assert.Equal(t, d.Size()*cn, typ.ElemSize())

			parsed, err := ParseType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
		}
	}
}

func TestType_Invalid(t *testing.T) {
	assert.False(t, TypeAuto.Valid())
	assert.False(t, MakeType(CV8U, MaxChannels+1).Valid())
	assert.False(t, Type(7).Valid())
	assert.Equal(t, "auto", TypeAuto.String())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("CV_16S")
	require.NoError(t, err)
	assert.Equal(t, CV16SC1, typ)

	for _, bad := range []string{"", "CV_8", "CV_8UC0", "CV_8UC513", "8UC1", "CV_32FC"} {
		_, err := ParseType(bad)
		assert.True(t, errors.Is(err, ErrUnsupportedType), "input %q", bad)
	}
}

func TestDepthTable(t *testing.T) {
	sizes := map[Depth]int{CV8U: 1, CV8S: 1, CV16U: 2, CV16S: 2, CV32S: 4, CV32F: 4, CV64F: 8}
	for d, size := range sizes {
		assert.Equal(t, size, d.Size(), d.String())
	}
	assert.True(t, CV32F.IsFloat())
	assert.False(t, CV32S.IsFloat())

	lo, hi := CV8S.Range()
	assert.Equal(t, -128.0, lo)
	assert.Equal(t, 127.0, hi)
	assert.Equal(t, "unknown", Depth(9).String())
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		d    Depth
		in   float64
		want float64
	}{
		{CV8U, 300, 255},
		{CV8U, -5, 0},
		{CV8U, 2.5, 2},
		{CV8U, 3.5, 4},
		{CV8S, -200, -128},
		{CV16U, 70000, 65535},
		{CV16S, -40000, -32768},
		{CV32S, 1e12, 2147483647},
		{CV32F, 1.25, 1.25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, saturate(tt.d, tt.in), "%s %v", tt.d, tt.in)
	}
}

func TestStoreLoad(t *testing.T) {
	p := make([]byte, 8)
	for d := CV8U; d <= CV64F; d++ {
		storeValue(d, p, 100)
		assert.Equal(t, 100.0, loadValue(d, p), d.String())
	}

	storeValue(CV16S, p, -2)
	assert.Equal(t, []byte{0xfe, 0xff}, p[:2])
}
