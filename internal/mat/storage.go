package mat

import (
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"
)

// buffer is a reference-counted byte store shared by a matrix and the
// region views cut from it.
type buffer struct {
	data []byte
	refs atomic.Int32
	mu   sync.Mutex // guards deallocation
}

// newBuffer allocates a zeroed buffer with one reference.
func newBuffer(size int) *buffer {
	b := &buffer{data: make([]byte, size)}
	b.refs.Store(1)
	return b
}

// retain adds a reference for a new view sharing the bytes.
func (b *buffer) retain() {
	b.refs.Add(1)
}

// release drops a reference and frees the bytes when none are left.
func (b *buffer) release() {
	if b.refs.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.data = nil
	}
}

// loadValue decodes one channel value of depth d from p.
// Values are stored little-endian.
func loadValue(d Depth, p []byte) float64 {
	switch d {
	case CV8U:
		return float64(p[0])
	case CV8S:
		return float64(int8(p[0]))
	case CV16U:
		return float64(binary.LittleEndian.Uint16(p))
	case CV16S:
		return float64(int16(binary.LittleEndian.Uint16(p)))
	case CV32S:
		return float64(int32(binary.LittleEndian.Uint32(p)))
	case CV32F:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(p)))
	case CV64F:
		return math.Float64frombits(binary.LittleEndian.Uint64(p))
	default:
		panic("mat: unknown depth")
	}
}

// storeValue encodes v into p as depth d, saturating integer depths.
func storeValue(d Depth, p []byte, v float64) {
	v = saturate(d, v)
	switch d {
	case CV8U:
		p[0] = uint8(v)
	case CV8S:
		p[0] = byte(int8(v))
	case CV16U:
		binary.LittleEndian.PutUint16(p, uint16(v))
	case CV16S:
		binary.LittleEndian.PutUint16(p, uint16(int16(v)))
	case CV32S:
		binary.LittleEndian.PutUint32(p, uint32(int32(v)))
	case CV32F:
		binary.LittleEndian.PutUint32(p, math.Float32bits(float32(v)))
	case CV64F:
		binary.LittleEndian.PutUint64(p, math.Float64bits(v))
	default:
		panic("mat: unknown depth")
	}
}

// saturate rounds half-to-even and clamps v into the integer range of d.
// Float depths pass through unchanged; NaN becomes 0 for integer depths.
func saturate(d Depth, v float64) float64 {
	inf := d.info()
	if inf.isFloat {
		return v
	}
	if math.IsNaN(v) {
		return 0
	}
	v = math.RoundToEven(v)
	if v < inf.min {
		return inf.min
	}
	if v > inf.max {
		return inf.max
	}
	return v
}
