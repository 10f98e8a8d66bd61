// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim defines the optimizer surface Flint scripts train with.
// Parameters and gradients travel as named tensor maps; concrete update
// rules plug in through the registry or the Func adapter.
package optim

import (
	"fmt"
	"sort"
	"sync"

	"github.com/flintml/flint/internal/tensor"
)

// Optimizer applies gradient updates to named parameters in place.
type Optimizer interface {
	// Step updates each parameter using the gradient registered under the
	// same name. Parameters without a gradient are left untouched.
	Step(params, grads map[string]*tensor.RawTensor) error

	// LR returns the current learning rate, for monitoring and scheduling.
	LR() float64

	// Name identifies the update rule, e.g. "sgd".
	Name() string
}

// Config is the base configuration shared by optimizers.
type Config struct {
	LR float64
}

// StepFunc adapts a bare update function to the Optimizer interface, letting
// scripts supply their own rule without a named registration.
type StepFunc func(params, grads map[string]*tensor.RawTensor, lr float64) error

type funcOptimizer struct {
	name string
	lr   float64
	step StepFunc
}

// NewFunc wraps an update function as an Optimizer.
func NewFunc(name string, cfg Config, step StepFunc) Optimizer {
	return &funcOptimizer{name: name, lr: cfg.LR, step: step}
}

func (o *funcOptimizer) Step(params, grads map[string]*tensor.RawTensor) error {
	return o.step(params, grads, o.lr)
}

func (o *funcOptimizer) LR() float64 { return o.lr }
func (o *funcOptimizer) Name() string { return o.name }

// Factory builds an optimizer from a config.
type Factory func(cfg Config) (Optimizer, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes a named optimizer available to New. Registering the same
// name twice panics.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("optim: Register called twice for %q", name))
	}
	registry[name] = factory
}

// New builds a registered optimizer by name.
func New(name string, cfg Config) (Optimizer, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("optim: unknown optimizer %q (registered: %v)", name, Names())
	}
	return factory(cfg)
}

// Names returns the registered optimizer names, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
