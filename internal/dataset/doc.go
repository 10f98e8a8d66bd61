// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package dataset provides tensor-based data loading for Flint scripts:
// buffering decoded images into batched tensors, prefetching batches from a
// sample source, and encoding text into token tensors.
//
// Image decoding is out of scope; callers hand the buffer already decoded
// image.Image values (use the stdlib image/png, image/jpeg decoders).
package dataset
