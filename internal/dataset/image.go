// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"fmt"
	"image"

	"github.com/flintml/flint/internal/parallel"
	"github.com/flintml/flint/internal/tensor"
)

// ImageBuffer accumulates decoded images of one size into a batched NHWC
// uint8 tensor. All images appended to a buffer must share dimensions.
type ImageBuffer struct {
	width    int
	height   int
	channels int
	pixels   []uint8
	count    int
	par      parallel.Config
}

// NewImageBuffer creates a buffer for height*width RGB images.
func NewImageBuffer(height, width int) *ImageBuffer {
	return &ImageBuffer{
		width:    width,
		height:   height,
		channels: 3,
		par:      parallel.DefaultConfig(),
	}
}

// NewImageBufferWorkers is NewImageBuffer with an explicit cap on the
// goroutines used to copy and scale pixels. Values below one fall back to
// the default.
func NewImageBufferWorkers(height, width, workers int) *ImageBuffer {
	b := NewImageBuffer(height, width)
	if workers >= 1 {
		b.par.NumWorkers = workers
		b.par.Enabled = workers > 1
	}
	return b
}

// Len returns the number of buffered images.
func (b *ImageBuffer) Len() int { return b.count }

// Append copies one decoded image into the buffer as 8-bit RGB rows.
func (b *ImageBuffer) Append(img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx() != b.width || bounds.Dy() != b.height {
		return fmt.Errorf("image is %dx%d, buffer expects %dx%d",
			bounds.Dx(), bounds.Dy(), b.width, b.height)
	}

	base := len(b.pixels)
	b.pixels = append(b.pixels, make([]uint8, b.height*b.width*b.channels)...)
	dst := b.pixels[base:]

	parallel.ForRows(b.height, b.width, func(y, x int) {
		r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
		o := (y*b.width + x) * b.channels
		dst[o] = uint8(r >> 8)
		dst[o+1] = uint8(g >> 8)
		dst[o+2] = uint8(bl >> 8)
	}, b.par)

	b.count++
	return nil
}

// Tensor snapshots the buffer as an [N, H, W, C] uint8 tensor.
func (b *ImageBuffer) Tensor() (*tensor.RawTensor, error) {
	if b.count == 0 {
		return nil, fmt.Errorf("image buffer is empty")
	}
	raw, err := tensor.NewRaw(tensor.Shape{b.count, b.height, b.width, b.channels}, tensor.Uint8)
	if err != nil {
		return nil, err
	}
	copy(raw.AsUint8(), b.pixels)
	return raw, nil
}

// Float32Tensor snapshots the buffer as an [N, H, W, C] float32 tensor with
// pixel values scaled into [0, 1].
func (b *ImageBuffer) Float32Tensor() (*tensor.RawTensor, error) {
	if b.count == 0 {
		return nil, fmt.Errorf("image buffer is empty")
	}
	raw, err := tensor.NewRaw(tensor.Shape{b.count, b.height, b.width, b.channels}, tensor.Float32)
	if err != nil {
		return nil, err
	}
	dst := raw.AsFloat32()
	parallel.For(len(b.pixels), func(i int) {
		dst[i] = float32(b.pixels[i]) / 255.0
	}, b.par)
	return raw, nil
}

// Reset empties the buffer, keeping its capacity.
func (b *ImageBuffer) Reset() {
	b.pixels = b.pixels[:0]
	b.count = 0
}
