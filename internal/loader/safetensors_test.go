// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package loader_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/loader"
	"github.com/flintml/flint/internal/tensor"
)

func writeTestFile(t *testing.T) string {
	t.Helper()

	weights, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	require.NoError(t, err)
	for i := range weights.AsFloat32() {
		weights.AsFloat32()[i] = float32(i) * 0.5
	}

	labels, err := tensor.NewRaw(tensor.Shape{4}, tensor.Int64)
	require.NoError(t, err)
	labels.AsInt64()[2] = 9

	path := filepath.Join(t.TempDir(), "weights.safetensors")
	require.NoError(t, loader.Write(path, map[string]*tensor.RawTensor{
		"model.weight": weights,
		"labels":       labels,
	}, map[string]string{"producer": "flint"}))
	return path
}

func TestReader_RoundTrip(t *testing.T) {
	path := writeTestFile(t)

	r, err := loader.Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"labels", "model.weight"}, r.TensorNames())
	assert.Equal(t, "flint", r.Metadata()["producer"])

	w, err := r.Load("model.weight")
	require.NoError(t, err)
	assert.True(t, w.Shape().Equal(tensor.Shape{2, 3}))
	assert.Equal(t, tensor.Float32, w.DType())
	assert.Equal(t, float32(2.5), w.AsFloat32()[5])

	l, err := r.Load("labels")
	require.NoError(t, err)
	assert.Equal(t, int64(9), l.AsInt64()[2])
}

func TestReader_MissingTensor(t *testing.T) {
	path := writeTestFile(t)
	r, err := loader.Open(path)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Load("no.such.tensor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReader_Info(t *testing.T) {
	path := writeTestFile(t)
	r, err := loader.Open(path)
	require.NoError(t, err)
	defer r.Close()

	info, ok := r.Info("model.weight")
	require.True(t, ok)
	assert.Equal(t, loader.SafeTensorsF32, info.DType)
	assert.Equal(t, []int{2, 3}, info.Shape)

	_, ok = r.Info("absent")
	assert.False(t, ok)
}

func TestOpen_TruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.safetensors")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := loader.Open(path)
	require.Error(t, err)
}

func TestOpen_OversizedHeaderRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.safetensors")
	// Header size claims ~1 EB.
	require.NoError(t, os.WriteFile(path, []byte{0, 0, 0, 0, 0, 0, 0, 0x10}, 0o644))

	_, err := loader.Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid header size")
}

func TestWrite_Empty(t *testing.T) {
	err := loader.Write(filepath.Join(t.TempDir(), "x"), nil, nil)
	require.Error(t, err)
}
