// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package scriptlib exposes Flint's domain library to interpreted scripts.
// Each module becomes importable after a //flint:use directive; generic
// tensor helpers are bound as float32/int64 instantiations closed over the
// session backend, since scripts work with concrete element types.
package scriptlib

import (
	"reflect"

	"github.com/flintml/flint/internal/dataset"
	"github.com/flintml/flint/internal/loader"
	"github.com/flintml/flint/internal/optim"
	"github.com/flintml/flint/internal/tensor"
)

// Options configures the library bound into one session.
type Options struct {
	// Backend executes tensor kernels for every creation helper.
	Backend tensor.Backend
	// Encoding names the tokenizer DefaultEncoder loads, e.g. "cl100k_base".
	Encoding string
	// Workers caps data-loading parallelism; values below one use the default.
	Workers int
}

// Modules returns the symbol tables for every bindable module, keyed by the
// name scripts pass to //flint:use.
func Modules(opts Options) map[string]map[string]reflect.Value {
	return map[string]map[string]reflect.Value{
		"tensor":  tensorSymbols(opts.Backend),
		"dataset": datasetSymbols(opts),
		"optim":   optimSymbols(),
		"loader":  loaderSymbols(),
	}
}

func tensorSymbols(backend tensor.Backend) map[string]reflect.Value {
	return map[string]reflect.Value{
		// Types.
		"Shape":     reflect.ValueOf((*tensor.Shape)(nil)),
		"DataType":  reflect.ValueOf((*tensor.DataType)(nil)),
		"RawTensor": reflect.ValueOf((*tensor.RawTensor)(nil)),
		"Tensor":    reflect.ValueOf((*tensor.Tensor[float32])(nil)),
		"IntTensor": reflect.ValueOf((*tensor.Tensor[int64])(nil)),

		// Creation, bound to the session backend.
		"Zeros": reflect.ValueOf(func(shape tensor.Shape) *tensor.Tensor[float32] {
			return tensor.Zeros[float32](shape, backend)
		}),
		"Ones": reflect.ValueOf(func(shape tensor.Shape) *tensor.Tensor[float32] {
			return tensor.Ones[float32](shape, backend)
		}),
		"Full": reflect.ValueOf(func(shape tensor.Shape, value float32) *tensor.Tensor[float32] {
			return tensor.Full(shape, value, backend)
		}),
		"FromSlice": reflect.ValueOf(func(values []float32, shape tensor.Shape) (*tensor.Tensor[float32], error) {
			return tensor.FromSlice(values, shape, backend)
		}),
		"FromInts": reflect.ValueOf(func(values []int64, shape tensor.Shape) (*tensor.Tensor[int64], error) {
			return tensor.FromSlice(values, shape, backend)
		}),
		"Arange": reflect.ValueOf(func(start, stop, step float32) (*tensor.Tensor[float32], error) {
			return tensor.Arange(start, stop, step, backend)
		}),
		"Data": reflect.ValueOf(tensor.Data[float32]),
	}
}

func datasetSymbols(opts Options) map[string]reflect.Value {
	return map[string]reflect.Value{
		"ImageBuffer": reflect.ValueOf((*dataset.ImageBuffer)(nil)),
		"TextEncoder": reflect.ValueOf((*dataset.TextEncoder)(nil)),
		"NewImageBuffer": reflect.ValueOf(func(height, width int) *dataset.ImageBuffer {
			return dataset.NewImageBufferWorkers(height, width, opts.Workers)
		}),
		"NewTextEncoder": reflect.ValueOf(dataset.NewTextEncoder),
		// DefaultEncoder loads the session's configured tokenizer.
		"DefaultEncoder": reflect.ValueOf(func() (*dataset.TextEncoder, error) {
			return dataset.NewTextEncoder(opts.Encoding)
		}),
		"Stack": reflect.ValueOf(dataset.Stack),
	}
}

func optimSymbols() map[string]reflect.Value {
	return map[string]reflect.Value{
		"Optimizer": reflect.ValueOf((*optim.Optimizer)(nil)),
		"Config":    reflect.ValueOf((*optim.Config)(nil)),
		"New":       reflect.ValueOf(optim.New),
		"NewSGD":    reflect.ValueOf(optim.NewSGD),
		"NewFunc":   reflect.ValueOf(optim.NewFunc),
		"Names":     reflect.ValueOf(optim.Names),
	}
}

func loaderSymbols() map[string]reflect.Value {
	return map[string]reflect.Value{
		"Reader": reflect.ValueOf((*loader.Reader)(nil)),
		"Open":   reflect.ValueOf(loader.Open),
		"Write":  reflect.ValueOf(loader.Write),
	}
}
