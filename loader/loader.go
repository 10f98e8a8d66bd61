// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader is the public API for reading and writing SafeTensors
// files.
//
// Example:
//
//	r, err := loader.Open("weights.safetensors")
//	defer r.Close()
//	raw, err := r.Load("layer1.weight")
package loader

import (
	"github.com/flintml/flint/internal/loader"
	"github.com/flintml/flint/internal/tensor"
)

// Reader reads tensors from a SafeTensors file.
type Reader = loader.Reader

// TensorInfo describes one tensor entry in a file header.
type TensorInfo = loader.TensorInfo

// Open opens a SafeTensors file and parses its header.
func Open(path string) (*Reader, error) {
	return loader.Open(path)
}

// Write writes tensors to path in SafeTensors format with optional
// metadata.
func Write(path string, tensors map[string]*tensor.RawTensor, metadata map[string]string) error {
	return loader.Write(path, tensors, metadata)
}
