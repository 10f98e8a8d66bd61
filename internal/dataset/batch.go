// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package dataset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/flintml/flint/internal/tensor"
)

// Source yields samples by index. Implementations must be safe for
// sequential access from a single producer goroutine.
type Source interface {
	Len() int
	Sample(i int) (*tensor.RawTensor, error)
}

// Batch is one group of consecutive samples.
type Batch struct {
	Index   int // 0-based batch ordinal
	Tensors []*tensor.RawTensor
}

// Loader streams batches from a source, producing ahead of the consumer up
// to the prefetch depth.
type Loader struct {
	src       Source
	batchSize int
	prefetch  int
}

// NewLoader builds a loader. batchSize must be positive; prefetch below 1 is
// clamped to 1.
func NewLoader(src Source, batchSize, prefetch int) (*Loader, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	if prefetch < 1 {
		prefetch = 1
	}
	return &Loader{src: src, batchSize: batchSize, prefetch: prefetch}, nil
}

// NumBatches returns the number of batches one pass yields. The final batch
// may be short.
func (l *Loader) NumBatches() int {
	return (l.src.Len() + l.batchSize - 1) / l.batchSize
}

// Each streams every batch through fn in order. The producer prefetches
// batches concurrently with fn; the first error from either side cancels the
// other and is returned.
func (l *Loader) Each(ctx context.Context, fn func(Batch) error) error {
	g, ctx := errgroup.WithContext(ctx)
	batches := make(chan Batch, l.prefetch)

	g.Go(func() error {
		defer close(batches)
		n := l.src.Len()
		for start, idx := 0, 0; start < n; start, idx = start+l.batchSize, idx+1 {
			end := min(start+l.batchSize, n)
			tensors := make([]*tensor.RawTensor, 0, end-start)
			for i := start; i < end; i++ {
				t, err := l.src.Sample(i)
				if err != nil {
					return fmt.Errorf("sample %d: %w", i, err)
				}
				tensors = append(tensors, t)
			}
			select {
			case batches <- Batch{Index: idx, Tensors: tensors}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	g.Go(func() error {
		for b := range batches {
			if err := fn(b); err != nil {
				return err
			}
		}
		return nil
	})

	return g.Wait()
}

// Stack combines same-shaped sample tensors into one tensor with a leading
// batch dimension.
func Stack(tensors []*tensor.RawTensor) (*tensor.RawTensor, error) {
	if len(tensors) == 0 {
		return nil, fmt.Errorf("nothing to stack")
	}
	first := tensors[0]
	for i, t := range tensors[1:] {
		if !t.Shape().Equal(first.Shape()) {
			return nil, fmt.Errorf("sample %d has shape %v, want %v", i+1, t.Shape(), first.Shape())
		}
		if t.DType() != first.DType() {
			return nil, fmt.Errorf("sample %d has dtype %s, want %s", i+1, t.DType(), first.DType())
		}
	}
	shape := append(tensor.Shape{len(tensors)}, first.Shape()...)
	out, err := tensor.NewRaw(shape, first.DType())
	if err != nil {
		return nil, err
	}
	stride := len(first.Bytes())
	for i, t := range tensors {
		copy(out.Bytes()[i*stride:(i+1)*stride], t.Bytes())
	}
	return out, nil
}
