package mat

import "math"

// Depth is the numeric kind of a single channel value.
// The numeric codes match the ones used by OpenCV.
type Depth int

// Supported depths.
const (
	CV8U Depth = iota
	CV8S
	CV16U
	CV16S
	CV32S
	CV32F
	CV64F
)

// DepthAuto asks an operation to keep the source depth.
const DepthAuto Depth = -1

type depthInfo struct {
	size    int
	min     float64
	max     float64
	isFloat bool
	name    string
}

// depthTable is filled once at package load and never written again.
var depthTable = [...]depthInfo{
	CV8U:  {size: 1, min: 0, max: math.MaxUint8, name: "CV_8U"},
	CV8S:  {size: 1, min: math.MinInt8, max: math.MaxInt8, name: "CV_8S"},
	CV16U: {size: 2, min: 0, max: math.MaxUint16, name: "CV_16U"},
	CV16S: {size: 2, min: math.MinInt16, max: math.MaxInt16, name: "CV_16S"},
	CV32S: {size: 4, min: math.MinInt32, max: math.MaxInt32, name: "CV_32S"},
	CV32F: {size: 4, min: -math.MaxFloat32, max: math.MaxFloat32, isFloat: true, name: "CV_32F"},
	CV64F: {size: 8, min: -math.MaxFloat64, max: math.MaxFloat64, isFloat: true, name: "CV_64F"},
}

// Valid reports whether d is one of the supported depths.
func (d Depth) Valid() bool {
	return d >= CV8U && d <= CV64F
}

func (d Depth) info() depthInfo {
	if !d.Valid() {
		panic("mat: unknown depth")
	}
	return depthTable[d]
}

// Size returns the byte size of one channel value.
func (d Depth) Size() int { return d.info().size }

// IsFloat reports whether d is a floating-point depth.
func (d Depth) IsFloat() bool { return d.info().isFloat }

// Range returns the smallest and largest representable value.
func (d Depth) Range() (lo, hi float64) {
	inf := d.info()
	return inf.min, inf.max
}

// String returns the OpenCV-style depth name, e.g. "CV_8U".
func (d Depth) String() string {
	if !d.Valid() {
		return "unknown"
	}
	return depthTable[d].name
}
