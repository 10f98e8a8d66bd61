// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

// Backend is the compute runtime tensors are bound to. Kernel scheduling and
// device management live behind this interface; the environment only routes
// operations through it.
//
// Operations panic on shape or dtype mismatch, mirroring how interactive
// numeric front ends report misuse immediately at the call site.
type Backend interface {
	// Device names the runtime, e.g. "cpu".
	Device() string

	// Element-wise binary operations. Operands must share shape and dtype.
	Add(a, b *RawTensor) *RawTensor
	Sub(a, b *RawTensor) *RawTensor
	Mul(a, b *RawTensor) *RawTensor
	Div(a, b *RawTensor) *RawTensor

	// Scalar operations.
	AddScalar(x *RawTensor, scalar float64) *RawTensor
	MulScalar(x *RawTensor, scalar float64) *RawTensor

	// MatMul multiplies two 2-D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *RawTensor) *RawTensor

	// Reductions. Sum returns a scalar-shaped tensor; Mean likewise.
	Sum(x *RawTensor) *RawTensor
	Mean(x *RawTensor) *RawTensor

	// Shape operations.
	Reshape(x *RawTensor, shape Shape) *RawTensor
	Transpose(x *RawTensor) *RawTensor // 2-D only
}
