// Package mat implements a dense two-dimensional matrix of typed,
// multi-channel elements.
//
// Element types follow OpenCV's encoding: a Depth (CV8U ... CV64F) plus a
// channel count packed into a Type. Storage is a reference-counted byte
// buffer holding little-endian channel values; region views share it with
// the matrix they were cut from.
//
// Operations:
//   - Construction: New, NewWithValue, NewFromBytes, FromRows, FromPixels, Merge
//   - Views and access: Region, At, AtIndex, Set, GetData, GetDataAsync
//   - Copy and conversion: Copy, CopyTo, ConvertTo, Split
//   - Reductions: Norm, NormTo, Normalize
//   - Geometry and spectra: Flip, Rotate, DCT, DFT, CopyMakeBorder, PadToSquare
//   - Row stacking: PushBack, PopBack
//
// Large element loops split rows across goroutines using the configuration
// set with SetParallelConfig.
package mat
