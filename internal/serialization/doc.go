// Package serialization stores matrices in the .cvm container format.
//
// A .cvm file holds any number of named matrices:
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    magic "CVMT", version, flags, JSON size, data size, SHA-256
//	  [Header: JSON, one entry per matrix (name, type, rows, cols, offset, size)]
//	  [Padding to a 64-byte boundary]
//	  [Data section: packed matrix bytes, optionally zstd-compressed]
//
// Matrix bytes are stored in the same packed little-endian layout that
// Mat.GetData returns, so loading goes straight through mat.NewFromBytes.
//
// The format supports:
//   - Every element type, 1 to 512 channels
//   - Free-form string metadata
//   - SHA-256 integrity checking of the data section
//   - Optional zstd compression
//   - Memory-mapped access to uncompressed files (MmapReader)
//
// Matrices can also be exported to SafeTensors with WriteSafeTensors.
//
// Example usage:
//
//	err := serialization.WriteFile("frames.cvm", []serialization.NamedMat{
//	    {Name: "frame0", Mat: m},
//	}, serialization.WriterOptions{Compress: true})
//
//	mats, header, err := serialization.ReadFile("frames.cvm")
package serialization
