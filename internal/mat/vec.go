package mat

import "fmt"

// Value is one matrix element: a scalar, a fixed-size vector or an
// arbitrary per-channel tuple. Channels returns the components in channel order.
type Value interface {
	Channels() []float64
}

// Scalar is a single-channel element value.
type Scalar float64

// Channels implements Value.
func (s Scalar) Channels() []float64 { return []float64{float64(s)} }

// Vec2 is a two-component vector.
type Vec2 struct{ X, Y float64 }

// NewVec2 returns Vec2{x, y}.
func NewVec2(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Channels implements Value.
func (v Vec2) Channels() []float64 { return []float64{v.X, v.Y} }

// Vec3 is a three-component vector.
type Vec3 struct{ X, Y, Z float64 }

// NewVec3 returns Vec3{x, y, z}.
func NewVec3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Channels implements Value.
func (v Vec3) Channels() []float64 { return []float64{v.X, v.Y, v.Z} }

// Vec4 is a four-component vector. W is the first channel.
type Vec4 struct{ W, X, Y, Z float64 }

// NewVec4 returns Vec4{w, x, y, z}.
func NewVec4(w, x, y, z float64) Vec4 { return Vec4{W: w, X: x, Y: y, Z: z} }

// Channels implements Value.
func (v Vec4) Channels() []float64 { return []float64{v.W, v.X, v.Y, v.Z} }

// Vec6 is a six-component vector. U is the first channel.
type Vec6 struct{ U, V, W, X, Y, Z float64 }

// NewVec6 returns Vec6{u, v, w, x, y, z}.
func NewVec6(u, v, w, x, y, z float64) Vec6 {
	return Vec6{U: u, V: v, W: w, X: x, Y: y, Z: z}
}

// Channels implements Value.
func (v Vec6) Channels() []float64 { return []float64{v.U, v.V, v.W, v.X, v.Y, v.Z} }

// Elem is an element with any number of channels, used where no fixed
// vector type fits (5 channels, more than 6, merged matrices).
type Elem []float64

// Channels implements Value.
func (e Elem) Channels() []float64 { return append([]float64(nil), e...) }

// VecOf builds the vector type matching len(vals): Vec2, Vec3, Vec4 or Vec6.
// Any other count fails with ErrInsufficientArguments.
func VecOf(vals ...float64) (Value, error) {
	switch len(vals) {
	case 2:
		return NewVec2(vals[0], vals[1]), nil
	case 3:
		return NewVec3(vals[0], vals[1], vals[2]), nil
	case 4:
		return NewVec4(vals[0], vals[1], vals[2], vals[3]), nil
	case 6:
		return NewVec6(vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]), nil
	default:
		return nil, fmt.Errorf("Vec::New - %w", ErrInsufficientArguments)
	}
}

// valueOf wraps per-channel values in the most specific Value.
func valueOf(ch []float64) Value {
	switch len(ch) {
	case 1:
		return Scalar(ch[0])
	case 2:
		return NewVec2(ch[0], ch[1])
	case 3:
		return NewVec3(ch[0], ch[1], ch[2])
	case 4:
		return NewVec4(ch[0], ch[1], ch[2], ch[3])
	case 6:
		return NewVec6(ch[0], ch[1], ch[2], ch[3], ch[4], ch[5])
	default:
		return Elem(append([]float64(nil), ch...))
	}
}

// fillChannels expands v to cn channel values. A nil value means zeros and a
// Scalar is broadcast to every channel; anything else must have exactly cn channels.
func fillChannels(v Value, cn int) ([]float64, error) {
	out := make([]float64, cn)
	if v == nil {
		return out, nil
	}
	if s, ok := v.(Scalar); ok {
		for i := range out {
			out[i] = float64(s)
		}
		return out, nil
	}
	ch := v.Channels()
	if len(ch) != cn {
		return nil, fmt.Errorf("value has %d channels, matrix has %d: %w", len(ch), cn, ErrInvalidArgumentType)
	}
	copy(out, ch)
	return out, nil
}
