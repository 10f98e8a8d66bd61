// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu implements the reference CPU compute runtime for Flint
// tensors. Kernels are plain Go with worker fanout for large buffers.
package cpu

import (
	"fmt"

	"github.com/flintml/flint/internal/parallel"
	"github.com/flintml/flint/internal/tensor"
)

// Backend is the CPU runtime.
type Backend struct {
	par parallel.Config
}

// New returns a CPU backend with default parallelism.
func New() *Backend {
	return &Backend{par: parallel.DefaultConfig()}
}

// NewWithWorkers returns a CPU backend whose kernels fan out across at most
// workers goroutines. Values below one fall back to the default; a single
// worker runs every kernel sequentially.
func NewWithWorkers(workers int) *Backend {
	cfg := parallel.DefaultConfig()
	if workers >= 1 {
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
	}
	return &Backend{par: cfg}
}

// Device returns "cpu".
func (b *Backend) Device() string { return "cpu" }

// Add returns a + b element-wise.
func (b *Backend) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("add", x, y,
		func(a, c float32) float32 { return a + c },
		func(a, c float64) float64 { return a + c },
		func(a, c int32) int32 { return a + c },
		func(a, c int64) int64 { return a + c },
		func(a, c uint8) uint8 { return a + c },
	)
}

// Sub returns a - b element-wise.
func (b *Backend) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("sub", x, y,
		func(a, c float32) float32 { return a - c },
		func(a, c float64) float64 { return a - c },
		func(a, c int32) int32 { return a - c },
		func(a, c int64) int64 { return a - c },
		func(a, c uint8) uint8 { return a - c },
	)
}

// Mul returns a * b element-wise.
func (b *Backend) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("mul", x, y,
		func(a, c float32) float32 { return a * c },
		func(a, c float64) float64 { return a * c },
		func(a, c int32) int32 { return a * c },
		func(a, c int64) int64 { return a * c },
		func(a, c uint8) uint8 { return a * c },
	)
}

// Div returns a / b element-wise.
func (b *Backend) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	return b.binary("div", x, y,
		func(a, c float32) float32 { return a / c },
		func(a, c float64) float64 { return a / c },
		func(a, c int32) int32 { return a / c },
		func(a, c int64) int64 { return a / c },
		func(a, c uint8) uint8 { return a / c },
	)
}

// AddScalar returns x + s element-wise.
func (b *Backend) AddScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return b.scalar(x, s, func(a, c float64) float64 { return a + c })
}

// MulScalar returns x * s element-wise.
func (b *Backend) MulScalar(x *tensor.RawTensor, s float64) *tensor.RawTensor {
	return b.scalar(x, s, func(a, c float64) float64 { return a * c })
}

// MatMul multiplies two 2-D tensors: [M, K] @ [K, N] -> [M, N].
func (b *Backend) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	xs, ys := x.Shape(), y.Shape()
	if len(xs) != 2 || len(ys) != 2 {
		panic(fmt.Sprintf("matmul needs 2-D operands, got %v and %v", xs, ys))
	}
	if xs[1] != ys[0] {
		panic(fmt.Sprintf("matmul shape mismatch: %v @ %v", xs, ys))
	}
	if x.DType() != y.DType() {
		panic(fmt.Sprintf("matmul dtype mismatch: %s vs %s", x.DType(), y.DType()))
	}
	m, k, n := xs[0], xs[1], ys[1]
	out := mustRaw(tensor.Shape{m, n}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		a, c, dst := x.AsFloat32(), y.AsFloat32(), out.AsFloat32()
		parallel.ForRows(m, n, func(i, j int) {
			var sum float32
			for l := 0; l < k; l++ {
				sum += a[i*k+l] * c[l*n+j]
			}
			dst[i*n+j] = sum
		}, b.par)
	case tensor.Float64:
		a, c, dst := x.AsFloat64(), y.AsFloat64(), out.AsFloat64()
		parallel.ForRows(m, n, func(i, j int) {
			var sum float64
			for l := 0; l < k; l++ {
				sum += a[i*k+l] * c[l*n+j]
			}
			dst[i*n+j] = sum
		}, b.par)
	default:
		panic(fmt.Sprintf("matmul unsupported for dtype %s", x.DType()))
	}
	return out
}

// Sum reduces to a scalar-shaped tensor.
func (b *Backend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := mustRaw(tensor.Shape{1}, x.DType())
	switch x.DType() {
	case tensor.Float32:
		var sum float32
		for _, v := range x.AsFloat32() {
			sum += v
		}
		out.AsFloat32()[0] = sum
	case tensor.Float64:
		var sum float64
		for _, v := range x.AsFloat64() {
			sum += v
		}
		out.AsFloat64()[0] = sum
	case tensor.Int32:
		var sum int32
		for _, v := range x.AsInt32() {
			sum += v
		}
		out.AsInt32()[0] = sum
	case tensor.Int64:
		var sum int64
		for _, v := range x.AsInt64() {
			sum += v
		}
		out.AsInt64()[0] = sum
	case tensor.Uint8:
		var sum uint8
		for _, v := range x.AsUint8() {
			sum += v
		}
		out.AsUint8()[0] = sum
	}
	return out
}

// Mean reduces to the scalar-shaped mean. Floating-point only.
func (b *Backend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	n := float64(x.NumElements())
	sum := b.Sum(x)
	switch x.DType() {
	case tensor.Float32:
		sum.AsFloat32()[0] = float32(float64(sum.AsFloat32()[0]) / n)
	case tensor.Float64:
		sum.AsFloat64()[0] /= n
	default:
		panic(fmt.Sprintf("mean unsupported for dtype %s", x.DType()))
	}
	return sum
}

// Reshape returns a view with the same elements under a new shape.
func (b *Backend) Reshape(x *tensor.RawTensor, shape tensor.Shape) *tensor.RawTensor {
	out, err := x.WithShape(shape)
	if err != nil {
		panic(err)
	}
	return out
}

// Transpose swaps the axes of a 2-D tensor.
func (b *Backend) Transpose(x *tensor.RawTensor) *tensor.RawTensor {
	xs := x.Shape()
	if len(xs) != 2 {
		panic(fmt.Sprintf("transpose needs a 2-D tensor, got %v", xs))
	}
	rows, cols := xs[0], xs[1]
	out := mustRaw(tensor.Shape{cols, rows}, x.DType())
	esize := x.DType().Size()
	src, dst := x.Bytes(), out.Bytes()
	parallel.ForRows(rows, cols, func(r, c int) {
		copy(dst[(c*rows+r)*esize:(c*rows+r+1)*esize], src[(r*cols+c)*esize:(r*cols+c+1)*esize])
	}, b.par)
	return out
}

func mustRaw(shape tensor.Shape, dtype tensor.DataType) *tensor.RawTensor {
	raw, err := tensor.NewRaw(shape, dtype)
	if err != nil {
		panic(err)
	}
	return raw
}
