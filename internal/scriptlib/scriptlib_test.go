// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package scriptlib_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/backend/cpu"
	"github.com/flintml/flint/internal/dataset"
	"github.com/flintml/flint/internal/scriptlib"
	"github.com/flintml/flint/internal/tensor"
)

func testModules() map[string]map[string]reflect.Value {
	return scriptlib.Modules(scriptlib.Options{
		Backend:  cpu.New(),
		Encoding: "cl100k_base",
		Workers:  2,
	})
}

func TestModules_ExpectedNames(t *testing.T) {
	mods := testModules()
	for _, name := range []string{"tensor", "dataset", "optim", "loader"} {
		assert.Contains(t, mods, name)
	}
	assert.Contains(t, mods["dataset"], "DefaultEncoder")
	assert.Contains(t, mods["dataset"], "NewImageBuffer")
	assert.Contains(t, mods["tensor"], "Zeros")
	assert.Contains(t, mods["optim"], "NewSGD")
	assert.Contains(t, mods["loader"], "Open")
}

func TestModules_ZerosBoundToBackend(t *testing.T) {
	mods := testModules()
	zeros, ok := mods["tensor"]["Zeros"].Interface().(func(tensor.Shape) *tensor.Tensor[float32])
	require.True(t, ok, "Zeros has unexpected type")
	z := zeros(tensor.Shape{2, 3})
	assert.Len(t, tensor.Data(z), 6)
}

func TestModules_ImageBufferUsesConfiguredWorkers(t *testing.T) {
	mods := testModules()
	newBuf, ok := mods["dataset"]["NewImageBuffer"].Interface().(func(int, int) *dataset.ImageBuffer)
	require.True(t, ok, "NewImageBuffer has unexpected type")
	buf := newBuf(4, 4)
	assert.Equal(t, 0, buf.Len())
}
