package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/born-ml/cvmat/internal/mat"
)

// SafeTensorHeader describes one matrix in a SafeTensors header.
type SafeTensorHeader struct {
	DType       string   `json:"dtype"`
	Shape       []int64  `json:"shape"`
	DataOffsets [2]int64 `json:"data_offsets"`
}

// WriteSafeTensorsFile exports mats to a SafeTensors file at path.
func WriteSafeTensorsFile(path string, mats []NamedMat, metadata map[string]string) error {
	//nolint:gosec // G304: path is chosen by the caller
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := WriteSafeTensors(file, mats, metadata); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteSafeTensors writes mats in SafeTensors layout:
//
//	[8 bytes: header_size (uint64 LE)]
//	[header_size bytes: JSON header]
//	[tensor data: raw bytes]
//
// Each matrix becomes a tensor of shape [rows, cols, channels]. Tensors are
// written in alphabetical order by name.
func WriteSafeTensors(dst io.Writer, mats []NamedMat, metadata map[string]string) error {
	byName := make(map[string]*mat.Mat, len(mats))
	names := make([]string, 0, len(mats))
	for _, nm := range mats {
		if nm.Mat == nil {
			return fmt.Errorf("matrix %q is nil", nm.Name)
		}
		if err := ValidateMatrixName(nm.Name); err != nil {
			return err
		}
		if _, dup := byName[nm.Name]; dup {
			return &ValidationError{Type: "duplicate_name", Matrix: nm.Name, Details: "name used twice", Err: ErrInvalidName}
		}
		byName[nm.Name] = nm.Mat
		names = append(names, nm.Name)
	}
	sort.Strings(names)

	sorted := make([]NamedMat, len(names))
	for i, name := range names {
		sorted[i] = NamedMat{Name: name, Mat: byName[name]}
	}
	blobs, err := packAll(sorted)
	if err != nil {
		return err
	}

	header := make(map[string]any, len(names)+1)
	if len(metadata) > 0 {
		header["__metadata__"] = metadata
	}
	var offset int64
	for i, nm := range sorted {
		size := int64(len(blobs[i]))
		header[nm.Name] = SafeTensorHeader{
			DType:       depthToSafeTensors(nm.Mat.Type().Depth()),
			Shape:       []int64{int64(nm.Mat.Rows()), int64(nm.Mat.Cols()), int64(nm.Mat.Channels())},
			DataOffsets: [2]int64{offset, offset + size},
		}
		offset += size
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}
	if err := binary.Write(dst, binary.LittleEndian, uint64(len(headerJSON))); err != nil {
		return fmt.Errorf("failed to write header size: %w", err)
	}
	if _, err := dst.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, nm := range sorted {
		if _, err := dst.Write(blobs[i]); err != nil {
			return fmt.Errorf("failed to write matrix %s: %w", nm.Name, err)
		}
	}
	return nil
}

// depthToSafeTensors maps a matrix depth to its SafeTensors dtype string.
func depthToSafeTensors(d mat.Depth) string {
	switch d {
	case mat.CV8U:
		return "U8"
	case mat.CV8S:
		return "I8"
	case mat.CV16U:
		return "U16"
	case mat.CV16S:
		return "I16"
	case mat.CV32S:
		return "I32"
	case mat.CV32F:
		return "F32"
	default:
		return "F64"
	}
}
