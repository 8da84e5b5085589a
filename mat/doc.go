// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package mat provides a dense, typed, multi-channel 2D matrix.
//
// # Overview
//
// A Mat stores rows x cols elements of one Type. A Type combines a depth
// (CV8U, CV8S, CV16U, CV16S, CV32S, CV32F, CV64F) with 1 to 512 channels,
// using the same numeric codes as OpenCV. This package provides:
//   - Construction from dimensions, fill values, raw buffers and literals
//   - Region views that share storage with their parent
//   - Element access with saturating writes
//   - Copy, convert, norm and normalize
//   - Flip, rotate, border padding, DCT and DFT
//   - Persistence in the .cvm container format
//
// # Basic Usage
//
//	import "github.com/born-ml/cvmat/mat"
//
//	func main() {
//	    m, _ := mat.FromRows([][]float64{{1, 2}, {3, 4}}, mat.CV32FC1)
//
//	    v, _ := m.At(1, 0)          // mat.Scalar(3)
//	    n, _ := m.Norm(mat.NormL2)  // sqrt(30)
//
//	    u8, _ := m.ConvertTo(mat.CV8UC1, 100, 0) // saturates to 255
//	    _ = mat.Save("m.cvm", u8)
//	}
//
// # Region Views
//
// Mat.Region returns a view aliasing the parent's storage. Writes through
// the view are visible in the parent and vice versa. GetData refuses to
// export a view; call Copy first.
//
// # Element Values
//
// At returns a Scalar for one channel, Vec2/Vec3/Vec4/Vec6 for 2/3/4/6
// channels and Elem otherwise. Set accepts any Value whose channel count
// matches the matrix.
//
// # Concurrency
//
// Large row loops are split across goroutines according to the
// ParallelConfig (see SetParallelConfig and the CVMAT_NUM_THREADS
// environment variable). GetDataAsync runs the export on a shared worker
// pool. A Mat is not safe for concurrent mutation.
package mat
