// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mat

import (
	"github.com/born-ml/cvmat/internal/mat"
	"github.com/born-ml/cvmat/internal/parallel"
)

// Type aliases for public API

// Mat is a dense 2D matrix of typed, multi-channel elements.
//
// A Mat either owns its storage or is a region view into a parent's
// storage (see Mat.Region). The zero value is an empty 0x0 CV8UC1 matrix.
//
// Example:
//
//	m, _ := mat.New(480, 640, mat.CV8UC3)
//	roi, _ := m.Region(image.Rect(10, 10, 110, 60))
//	_ = roi.Set(0, 0, mat.NewVec3(255, 0, 0)) // visible through m as well
type Mat = mat.Mat

// Depth is the numeric kind of one channel value.
type Depth = mat.Depth

// Depth constants (OpenCV codes 0..6).
const (
	CV8U  Depth = mat.CV8U
	CV8S  Depth = mat.CV8S
	CV16U Depth = mat.CV16U
	CV16S Depth = mat.CV16S
	CV32S Depth = mat.CV32S
	CV32F Depth = mat.CV32F
	CV64F Depth = mat.CV64F

	// DepthAuto keeps the source depth.
	DepthAuto Depth = mat.DepthAuto
)

// Type is a depth plus a channel count, encoded like OpenCV's CV_MAKETYPE.
type Type = mat.Type

// MaxChannels is the largest channel count a Type can carry.
const MaxChannels = mat.MaxChannels

// Element types.
const (
	CV8UC1  Type = mat.CV8UC1
	CV8UC2  Type = mat.CV8UC2
	CV8UC3  Type = mat.CV8UC3
	CV8UC4  Type = mat.CV8UC4
	CV8SC1  Type = mat.CV8SC1
	CV8SC2  Type = mat.CV8SC2
	CV8SC3  Type = mat.CV8SC3
	CV8SC4  Type = mat.CV8SC4
	CV16UC1 Type = mat.CV16UC1
	CV16UC2 Type = mat.CV16UC2
	CV16UC3 Type = mat.CV16UC3
	CV16UC4 Type = mat.CV16UC4
	CV16SC1 Type = mat.CV16SC1
	CV16SC2 Type = mat.CV16SC2
	CV16SC3 Type = mat.CV16SC3
	CV16SC4 Type = mat.CV16SC4
	CV32SC1 Type = mat.CV32SC1
	CV32SC2 Type = mat.CV32SC2
	CV32SC3 Type = mat.CV32SC3
	CV32SC4 Type = mat.CV32SC4
	CV32FC1 Type = mat.CV32FC1
	CV32FC2 Type = mat.CV32FC2
	CV32FC3 Type = mat.CV32FC3
	CV32FC4 Type = mat.CV32FC4
	CV64FC1 Type = mat.CV64FC1
	CV64FC2 Type = mat.CV64FC2
	CV64FC3 Type = mat.CV64FC3
	CV64FC4 Type = mat.CV64FC4

	// TypeAuto infers the type from literal data, or keeps the source type.
	TypeAuto Type = mat.TypeAuto
)

// Value is one matrix element.
type Value = mat.Value

// Scalar is a single-channel element value.
type Scalar = mat.Scalar

// Vec2 is a two-component vector {X, Y}.
type Vec2 = mat.Vec2

// Vec3 is a three-component vector {X, Y, Z}.
type Vec3 = mat.Vec3

// Vec4 is a four-component vector {W, X, Y, Z}.
type Vec4 = mat.Vec4

// Vec6 is a six-component vector {U, V, W, X, Y, Z}.
type Vec6 = mat.Vec6

// Elem is an element with an arbitrary channel count.
type Elem = mat.Elem

// NormType selects a norm.
type NormType = mat.NormType

// Norm types (OpenCV codes).
const (
	NormInf    NormType = mat.NormInf
	NormL1     NormType = mat.NormL1
	NormL2     NormType = mat.NormL2
	NormMinMax NormType = mat.NormMinMax
)

// NormalizeOptions configures Mat.Normalize. A nil Depth keeps the source
// depth; use WithDepth to convert the result.
type NormalizeOptions = mat.NormalizeOptions

// BorderType selects the extrapolation used by Mat.CopyMakeBorder.
type BorderType = mat.BorderType

// Border types.
const (
	BorderConstant   BorderType = mat.BorderConstant
	BorderReplicate  BorderType = mat.BorderReplicate
	BorderReflect    BorderType = mat.BorderReflect
	BorderWrap       BorderType = mat.BorderWrap
	BorderReflect101 BorderType = mat.BorderReflect101
)

// RotateFlag selects a rotation for Mat.Rotate.
type RotateFlag = mat.RotateFlag

// Rotations.
const (
	Rotate90Clockwise        RotateFlag = mat.Rotate90Clockwise
	Rotate180                RotateFlag = mat.Rotate180
	Rotate90CounterClockwise RotateFlag = mat.Rotate90CounterClockwise
)

// Transform flags for Mat.DCT and Mat.DFT.
const (
	DCTInverse = mat.DCTInverse
	DCTRows    = mat.DCTRows

	DFTInverse       = mat.DFTInverse
	DFTScale         = mat.DFTScale
	DFTRows          = mat.DFTRows
	DFTComplexOutput = mat.DFTComplexOutput
	DFTRealOutput    = mat.DFTRealOutput
)

// ParallelConfig controls how row loops are split across goroutines.
type ParallelConfig = parallel.Config

// Errors returned by matrix operations. Match them with errors.Is.
var (
	ErrShapeMismatch           = mat.ErrShapeMismatch
	ErrInvalidArgumentType     = mat.ErrInvalidArgumentType
	ErrIndexOutOfBounds        = mat.ErrIndexOutOfBounds
	ErrRegionOutOfBounds       = mat.ErrRegionOutOfBounds
	ErrUnsupportedOnRegionView = mat.ErrUnsupportedOnRegionView
	ErrInsufficientArguments   = mat.ErrInsufficientArguments
	ErrBadShape                = mat.ErrBadShape
	ErrUnsupportedType         = mat.ErrUnsupportedType
	ErrInvalidArgument         = mat.ErrInvalidArgument
	ErrBufferTooSmall          = mat.ErrBufferTooSmall
)

// New creates a zero-filled rows x cols matrix of type t.
func New(rows, cols int, t Type) (*Mat, error) {
	return mat.New(rows, cols, t)
}

// NewWithValue creates a rows x cols matrix with every element set to v.
// A Scalar is broadcast to all channels.
func NewWithValue(rows, cols int, t Type, v Value) (*Mat, error) {
	return mat.NewWithValue(rows, cols, t, v)
}

// NewFromBytes copies a raw row-major buffer into a new matrix.
// lineSize is the row stride of data in elements; 0 means cols.
func NewFromBytes(rows, cols int, t Type, data []byte, lineSize int) (*Mat, error) {
	return mat.NewFromBytes(rows, cols, t, data, lineSize)
}

// FromRows creates a single-channel matrix from a row-major literal.
func FromRows(data [][]float64, t Type) (*Mat, error) {
	return mat.FromRows(data, t)
}

// FromPixels creates a matrix from [row][col][channel] data.
func FromPixels(data [][][]float64, t Type) (*Mat, error) {
	return mat.FromPixels(data, t)
}

// Merge stacks the channels of srcs into one matrix.
func Merge(srcs ...*Mat) (*Mat, error) {
	return mat.Merge(srcs...)
}

// MakeType builds the Type for depth d with the given channel count.
func MakeType(d Depth, channels int) Type {
	return mat.MakeType(d, channels)
}

// ParseType parses a type name such as "CV_32FC2".
func ParseType(s string) (Type, error) {
	return mat.ParseType(s)
}

// NewVec2 returns Vec2{x, y}.
func NewVec2(x, y float64) Vec2 { return mat.NewVec2(x, y) }

// NewVec3 returns Vec3{x, y, z}.
func NewVec3(x, y, z float64) Vec3 { return mat.NewVec3(x, y, z) }

// NewVec4 returns Vec4{w, x, y, z}.
func NewVec4(w, x, y, z float64) Vec4 { return mat.NewVec4(w, x, y, z) }

// NewVec6 returns Vec6{u, v, w, x, y, z}.
func NewVec6(u, v, w, x, y, z float64) Vec6 { return mat.NewVec6(u, v, w, x, y, z) }

// VecOf builds a vector from 2, 3, 4 or 6 components.
func VecOf(vals ...float64) (Value, error) {
	return mat.VecOf(vals...)
}

// DefaultNormalizeOptions maps values onto [0, 1] keeping the depth.
func DefaultNormalizeOptions() NormalizeOptions {
	return mat.DefaultNormalizeOptions()
}

// SetParallelConfig replaces the configuration used by row loops.
func SetParallelConfig(cfg ParallelConfig) {
	mat.SetParallelConfig(cfg)
}

// CurrentParallelConfig returns the configuration used by row loops.
func CurrentParallelConfig() ParallelConfig {
	return mat.ParallelConfig()
}

// DefaultParallelConfig returns the process default, honouring CVMAT_NUM_THREADS.
func DefaultParallelConfig() ParallelConfig {
	return parallel.DefaultConfig()
}
