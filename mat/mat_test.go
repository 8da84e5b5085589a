// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package mat_test

import (
	"image"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/cvmat/mat"
)

// TestTypeCodes verifies the public constants keep OpenCV's numeric codes.
func TestTypeCodes(t *testing.T) {
	assert.Equal(t, 0, int(mat.CV8UC1))
	assert.Equal(t, 16, int(mat.CV8UC3))
	assert.Equal(t, 13, int(mat.CV32FC2))
	assert.Equal(t, 30, int(mat.CV64FC4))
	assert.Equal(t, mat.CV16SC3, mat.MakeType(mat.CV16S, 3))

	typ, err := mat.ParseType("CV_32SC4")
	require.NoError(t, err)
	assert.Equal(t, mat.CV32SC4, typ)
}

// TestFacadeWorkflow exercises construction, views, access and conversion
// through the public package.
func TestFacadeWorkflow(t *testing.T) {
	m, err := mat.NewWithValue(4, 4, mat.CV8UC3, mat.NewVec3(10, 20, 30))
	require.NoError(t, err)

	roi, err := m.Region(image.Rect(1, 1, 3, 3))
	require.NoError(t, err)
	require.NoError(t, roi.Set(0, 0, mat.NewVec3(1, 2, 3)))

	v, err := m.At(1, 1)
	require.NoError(t, err)
	assert.Equal(t, mat.Vec3{X: 1, Y: 2, Z: 3}, v)

	_, err = roi.GetData()
	assert.ErrorIs(t, err, mat.ErrUnsupportedOnRegionView)

	_, err = m.At(4, 0)
	assert.ErrorIs(t, err, mat.ErrIndexOutOfBounds)

	f, err := m.ConvertTo(mat.MakeType(mat.CV32F, 3), 0.5, 0)
	require.NoError(t, err)
	v, err = f.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, mat.Vec3{X: 5, Y: 10, Z: 15}, v)
}

func TestFacadeVecOf(t *testing.T) {
	v, err := mat.VecOf(1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, mat.NewVec4(1, 2, 3, 4), v)

	_, err = mat.VecOf(1)
	assert.ErrorIs(t, err, mat.ErrInsufficientArguments)
}

func TestFacadeMerge(t *testing.T) {
	a, err := mat.FromRows([][]float64{{1, 2}}, mat.CV8UC1)
	require.NoError(t, err)
	b, err := mat.FromRows([][]float64{{3, 4}}, mat.CV8UC1)
	require.NoError(t, err)

	m, err := mat.Merge(a, b)
	require.NoError(t, err)
	assert.Equal(t, mat.CV8UC2, m.Type())

	_, err = mat.Merge(a, nil)
	assert.ErrorIs(t, err, mat.ErrInvalidArgumentType)
}

func TestFacadeParallelConfig(t *testing.T) {
	prev := mat.CurrentParallelConfig()
	defer mat.SetParallelConfig(prev)

	cfg := mat.DefaultParallelConfig()
	cfg.Enabled = false
	mat.SetParallelConfig(cfg)
	assert.False(t, mat.CurrentParallelConfig().Enabled)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.cvm")
	m, err := mat.FromRows([][]float64{{1.5, -2}, {3, 4.25}}, mat.CV64FC1)
	require.NoError(t, err)
	require.NoError(t, mat.Save(path, m))

	got, err := mat.Load(path)
	require.NoError(t, err)
	want, err := m.GetDataAsArray()
	require.NoError(t, err)
	have, err := got.GetDataAsArray()
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestSaveAllLoadAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many.cvm")
	a, err := mat.New(2, 3, mat.CV16UC1)
	require.NoError(t, err)
	b, err := mat.New(1, 1, mat.CV32FC4)
	require.NoError(t, err)

	mats := []mat.NamedMat{{Name: "a", Mat: a}, {Name: "b", Mat: b}}
	require.NoError(t, mat.SaveAll(path, mats, mat.SaveOptions{Compress: true}))

	got, header, err := mat.LoadAll(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, mat.CV32FC4, got[1].Mat.Type())
	assert.Equal(t, "CV_16UC1", header.Matrices[0].Type)

	_, err = mat.Load(path)
	assert.Error(t, err)
}

func TestExportSafeTensors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.safetensors")
	m, err := mat.New(2, 2, mat.CV8UC1)
	require.NoError(t, err)
	assert.NoError(t, mat.ExportSafeTensors(path, []mat.NamedMat{{Name: "m", Mat: m}}, nil))
}
