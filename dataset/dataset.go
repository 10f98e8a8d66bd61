// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset is the public API for Flint data loading: image buffers,
// batched iteration with prefetch, and text tokenization.
package dataset

import (
	"github.com/flintml/flint/internal/dataset"
	"github.com/flintml/flint/internal/tensor"
)

// Source yields indexed samples for batched iteration.
type Source = dataset.Source

// Batch is one group of stacked sample tensors.
type Batch = dataset.Batch

// Loader iterates a Source in batches with background prefetch.
type Loader = dataset.Loader

// ImageBuffer accumulates decoded images into NHWC tensors.
type ImageBuffer = dataset.ImageBuffer

// TextEncoder tokenizes text with a tiktoken vocabulary.
type TextEncoder = dataset.TextEncoder

// NewImageBuffer creates a buffer for images of fixed height and width.
func NewImageBuffer(height, width int) *ImageBuffer {
	return dataset.NewImageBuffer(height, width)
}

// NewImageBufferWorkers is NewImageBuffer with an explicit cap on pixel-copy
// parallelism.
func NewImageBufferWorkers(height, width, workers int) *ImageBuffer {
	return dataset.NewImageBufferWorkers(height, width, workers)
}

// NewLoader creates a batched loader over src.
func NewLoader(src Source, batchSize, prefetch int) (*Loader, error) {
	return dataset.NewLoader(src, batchSize, prefetch)
}

// NewTextEncoder creates an encoder for the named tiktoken vocabulary,
// e.g. "cl100k_base".
func NewTextEncoder(encoding string) (*TextEncoder, error) {
	return dataset.NewTextEncoder(encoding)
}

// Stack concatenates same-shaped tensors along a new leading axis.
func Stack(tensors []*tensor.RawTensor) (*tensor.RawTensor, error) {
	return dataset.Stack(tensors)
}
