// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/flintml/flint/internal/backend/cpu"
	"github.com/flintml/flint/internal/tensor"
)

func TestShape_NumElements(t *testing.T) {
	tests := []struct {
		shape tensor.Shape
		want  int
	}{
		{tensor.Shape{2, 3}, 6},
		{tensor.Shape{4}, 4},
		{tensor.Shape{2, 3, 4}, 24},
		{tensor.Shape{}, 1}, // scalar
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShape_ComputeStrides(t *testing.T) {
	got := tensor.Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("strides = %v, want %v", got, want)
		}
	}
}

func TestShape_Validate(t *testing.T) {
	if err := (tensor.Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (tensor.Shape{2, 0}).Validate(); err == nil {
		t.Error("zero dimension accepted")
	}
	if err := (tensor.Shape{-1}).Validate(); err == nil {
		t.Error("negative dimension accepted")
	}
}

func TestZeros(t *testing.T) {
	backend := cpu.New()
	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
	if !x.Shape().Equal(tensor.Shape{2, 3}) {
		t.Fatalf("shape = %v", x.Shape())
	}
	for i, v := range tensor.Data(x) {
		if v != 0 {
			t.Fatalf("element %d = %f, want 0", i, v)
		}
	}
}

func TestFull(t *testing.T) {
	backend := cpu.New()
	x := tensor.Full[int64](tensor.Shape{3}, 7, backend)
	for _, v := range tensor.Data(x) {
		if v != 7 {
			t.Fatalf("got %d, want 7", v)
		}
	}
}

func TestFromSlice(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3}, backend)
	if err != nil {
		t.Fatal(err)
	}
	if got := x.At(1, 2); got != 6 {
		t.Errorf("At(1,2) = %f, want 6", got)
	}
	if got := x.At(0, 1); got != 2 {
		t.Errorf("At(0,1) = %f, want 2", got)
	}
}

func TestFromSlice_LengthMismatch(t *testing.T) {
	backend := cpu.New()
	_, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{2, 3}, backend)
	if err == nil {
		t.Fatal("length mismatch accepted")
	}
}

func TestArange(t *testing.T) {
	backend := cpu.New()
	x, err := tensor.Arange[int32](0, 10, 2, backend)
	if err != nil {
		t.Fatal(err)
	}
	want := []int32{0, 2, 4, 6, 8}
	got := tensor.Data(x)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestRaw_WithShape(t *testing.T) {
	raw, err := tensor.NewRaw(tensor.Shape{2, 3}, tensor.Float32)
	if err != nil {
		t.Fatal(err)
	}
	view, err := raw.WithShape(tensor.Shape{3, 2})
	if err != nil {
		t.Fatal(err)
	}
	// A view shares the buffer.
	raw.AsFloat32()[0] = 42
	if view.AsFloat32()[0] != 42 {
		t.Error("reshaped view does not share the buffer")
	}
	if _, err := raw.WithShape(tensor.Shape{7}); err == nil {
		t.Error("element-count-changing reshape accepted")
	}
}

func TestFromRaw_DTypeMismatch(t *testing.T) {
	backend := cpu.New()
	raw, _ := tensor.NewRaw(tensor.Shape{2}, tensor.Int32)
	if _, err := tensor.FromRaw[float32](raw, backend); err == nil {
		t.Fatal("dtype mismatch accepted")
	}
}
