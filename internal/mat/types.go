package mat

import (
	"fmt"
	"regexp"
	"strconv"
)

// Type is an element type: a depth plus a channel count, encoded the way
// OpenCV encodes CV_MAKETYPE (depth in the low 3 bits, channels-1 above).
// The zero value is CV8UC1.
type Type int

// MaxChannels is the largest channel count a Type can carry.
const MaxChannels = 512

const (
	depthBits = 3
	depthMask = 1<<depthBits - 1
)

// TypeAuto asks a constructor to infer the type from the data, or an
// operation to keep the source type.
const TypeAuto Type = -1

// Direct element types.
const (
	CV8UC1  = Type(CV8U)
	CV8UC2  = Type(CV8U) + 1<<depthBits
	CV8UC3  = Type(CV8U) + 2<<depthBits
	CV8UC4  = Type(CV8U) + 3<<depthBits
	CV8SC1  = Type(CV8S)
	CV8SC2  = Type(CV8S) + 1<<depthBits
	CV8SC3  = Type(CV8S) + 2<<depthBits
	CV8SC4  = Type(CV8S) + 3<<depthBits
	CV16UC1 = Type(CV16U)
	CV16UC2 = Type(CV16U) + 1<<depthBits
	CV16UC3 = Type(CV16U) + 2<<depthBits
	CV16UC4 = Type(CV16U) + 3<<depthBits
	CV16SC1 = Type(CV16S)
	CV16SC2 = Type(CV16S) + 1<<depthBits
	CV16SC3 = Type(CV16S) + 2<<depthBits
	CV16SC4 = Type(CV16S) + 3<<depthBits
	CV32SC1 = Type(CV32S)
	CV32SC2 = Type(CV32S) + 1<<depthBits
	CV32SC3 = Type(CV32S) + 2<<depthBits
	CV32SC4 = Type(CV32S) + 3<<depthBits
	CV32FC1 = Type(CV32F)
	CV32FC2 = Type(CV32F) + 1<<depthBits
	CV32FC3 = Type(CV32F) + 2<<depthBits
	CV32FC4 = Type(CV32F) + 3<<depthBits
	CV64FC1 = Type(CV64F)
	CV64FC2 = Type(CV64F) + 1<<depthBits
	CV64FC3 = Type(CV64F) + 2<<depthBits
	CV64FC4 = Type(CV64F) + 3<<depthBits
)

// MakeType builds the Type for depth d with the given channel count.
func MakeType(d Depth, channels int) Type {
	return Type(int(d) + (channels-1)<<depthBits)
}

// Depth returns the per-channel depth.
func (t Type) Depth() Depth { return Depth(int(t) & depthMask) }

// Channels returns the channel count.
func (t Type) Channels() int { return int(t)>>depthBits + 1 }

// ElemSize returns the byte size of one element (all channels).
func (t Type) ElemSize() int { return t.Depth().Size() * t.Channels() }

// Valid reports whether t names a supported depth and channel count.
func (t Type) Valid() bool {
	if t < 0 {
		return false
	}
	cn := t.Channels()
	return t.Depth().Valid() && cn >= 1 && cn <= MaxChannels
}

// String returns the OpenCV-style type name, e.g. "CV_8UC3".
func (t Type) String() string {
	if t == TypeAuto {
		return "auto"
	}
	if !t.Valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return fmt.Sprintf("%sC%d", t.Depth(), t.Channels())
}

var typeNameRegex = regexp.MustCompile(`^CV_(8U|8S|16U|16S|32S|32F|64F)(?:C(\d+))?$`)

// ParseType parses a name produced by Type.String, e.g. "CV_32FC2".
// A missing channel suffix means one channel.
func ParseType(s string) (Type, error) {
	m := typeNameRegex.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid type name %q: %w", s, ErrUnsupportedType)
	}

	var d Depth
	for i := CV8U; i <= CV64F; i++ {
		if depthTable[i].name == "CV_"+m[1] {
			d = i
			break
		}
	}

	cn := 1
	if m[2] != "" {
		n, err := strconv.Atoi(m[2])
		if err != nil || n < 1 || n > MaxChannels {
			return 0, fmt.Errorf("invalid channel count in %q: %w", s, ErrUnsupportedType)
		}
		cn = n
	}

	return MakeType(d, cn), nil
}
