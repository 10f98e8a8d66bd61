// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu is the public API for the CPU compute backend.
//
// Example:
//
//	backend := cpu.New()
//	x := tensor.Zeros[float32](tensor.Shape{2, 3}, backend)
package cpu

import (
	"github.com/flintml/flint/internal/backend/cpu"
)

// Backend is the pure-Go CPU runtime.
type Backend = cpu.Backend

// New returns a CPU backend with default parallelism.
func New() *Backend {
	return cpu.New()
}

// NewWithWorkers returns a CPU backend capped at the given worker count.
// Values below one fall back to the default.
func NewWithWorkers(workers int) *Backend {
	return cpu.NewWithWorkers(workers)
}
