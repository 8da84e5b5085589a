package mat

import (
	"fmt"

	"github.com/born-ml/cvmat/internal/parallel"
)

// Merge interleaves the channels of srcs into one matrix. All sources must
// share rows, cols and depth; the result carries the sum of their channels.
func Merge(srcs ...*Mat) (*Mat, error) {
	if len(srcs) == 0 {
		return nil, matErrorf("Merge", ErrInsufficientArguments, "no channel sources")
	}
	for i, s := range srcs {
		if s == nil {
			return nil, fmt.Errorf("Mat.Merge: expected channel %d to be an instance of Mat: %w", i, ErrInvalidArgumentType)
		}
	}

	first := srcs[0]
	total := 0
	for i, s := range srcs {
		if s.rows != first.rows {
			return nil, matErrorf("Merge", ErrShapeMismatch, "rows mismatch (channel %d: %d vs %d)", i, s.rows, first.rows)
		}
		if s.cols != first.cols {
			return nil, matErrorf("Merge", ErrShapeMismatch, "cols mismatch (channel %d: %d vs %d)", i, s.cols, first.cols)
		}
		if s.Depth() != first.Depth() {
			return nil, matErrorf("Merge", ErrUnsupportedType, "depth mismatch (channel %d: %s vs %s)", i, s.Depth(), first.Depth())
		}
		total += s.Channels()
	}
	if total > MaxChannels {
		return nil, matErrorf("Merge", ErrUnsupportedType, "%d channels exceed %d", total, MaxChannels)
	}

	dst := newOwned(first.rows, first.cols, MakeType(first.Depth(), total))
	if dst.Empty() {
		return dst, nil
	}

	// Byte offset of each source inside a destination element.
	offsets := make([]int, len(srcs))
	acc := 0
	for i, s := range srcs {
		offsets[i] = acc
		acc += s.ElemSize()
	}

	des := dst.ElemSize()
	parallel.ForBatch(dst.rows, len(srcs), func(r, i int) {
		s := srcs[i]
		ses := s.ElemSize()
		in := s.rowBytes(r)
		out := dst.rowBytes(r)
		for c := 0; c < dst.cols; c++ {
			copy(out[c*des+offsets[i]:c*des+offsets[i]+ses], in[c*ses:(c+1)*ses])
		}
	}, ParallelConfig())
	return dst, nil
}

// Split returns one single-channel matrix per channel of m.
func (m *Mat) Split() []*Mat {
	cn := m.Channels()
	ds := m.Depth().Size()
	es := m.ElemSize()
	t := MakeType(m.Depth(), 1)

	out := make([]*Mat, cn)
	for k := range out {
		out[k] = newOwned(m.rows, m.cols, t)
	}
	if m.Empty() {
		return out
	}
	parallel.ForBatch(m.rows, cn, func(r, k int) {
		in := m.rowBytes(r)
		dst := out[k].rowBytes(r)
		for c := 0; c < m.cols; c++ {
			copy(dst[c*ds:(c+1)*ds], in[c*es+k*ds:c*es+(k+1)*ds])
		}
	}, ParallelConfig())
	return out
}
