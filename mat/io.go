// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mat

import (
	"fmt"

	"github.com/born-ml/cvmat/internal/serialization"
)

// NamedMat pairs a matrix with the name it is stored under in a .cvm file.
type NamedMat = serialization.NamedMat

// FileHeader is the JSON header of a .cvm file.
type FileHeader = serialization.Header

// SaveOptions configures SaveAll.
type SaveOptions = serialization.WriterOptions

// DefaultName is the name Save stores a single matrix under.
const DefaultName = "mat"

// Save writes m to a .cvm file at path under DefaultName.
//
// Example:
//
//	m, _ := mat.New(3, 3, mat.CV64FC1)
//	if err := mat.Save("identity.cvm", m); err != nil {
//	    log.Fatal(err)
//	}
func Save(path string, m *Mat) error {
	return SaveAll(path, []NamedMat{{Name: DefaultName, Mat: m}}, SaveOptions{})
}

// SaveAll writes several named matrices to a .cvm file at path.
func SaveAll(path string, mats []NamedMat, opts SaveOptions) error {
	return serialization.WriteFile(path, mats, opts)
}

// Load reads the matrix stored under DefaultName, or the only matrix in the
// file if it holds exactly one.
func Load(path string) (*Mat, error) {
	mats, _, err := serialization.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(mats) == 1 {
		return mats[0].Mat, nil
	}
	for _, nm := range mats {
		if nm.Name == DefaultName {
			return nm.Mat, nil
		}
	}
	return nil, fmt.Errorf("%s: %w: %q", path, serialization.ErrNotFound, DefaultName)
}

// LoadAll reads every matrix of a .cvm file in stored order.
func LoadAll(path string) ([]NamedMat, FileHeader, error) {
	return serialization.ReadFile(path)
}

// ExportSafeTensors writes mats to a SafeTensors file. Each matrix becomes a
// [rows, cols, channels] tensor.
func ExportSafeTensors(path string, mats []NamedMat, metadata map[string]string) error {
	return serialization.WriteSafeTensorsFile(path, mats, metadata)
}
