// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim is the public API for Flint optimizers.
//
// Example:
//
//	opt, err := optim.New("sgd", optim.Config{LR: 0.01})
//	err = opt.Step(params, grads)
package optim

import (
	"github.com/flintml/flint/internal/optim"
)

// Optimizer applies gradient updates to named parameters in place.
type Optimizer = optim.Optimizer

// Config is the base configuration shared by optimizers.
type Config = optim.Config

// StepFunc is a bare update function usable as an Optimizer via NewFunc.
type StepFunc = optim.StepFunc

// Factory builds an optimizer from a config.
type Factory = optim.Factory

// SGD is the reference stochastic gradient descent optimizer.
type SGD = optim.SGD

// NewSGD creates an SGD optimizer.
func NewSGD(cfg Config) *SGD {
	return optim.NewSGD(cfg)
}

// New builds a registered optimizer by name.
func New(name string, cfg Config) (Optimizer, error) {
	return optim.New(name, cfg)
}

// NewFunc wraps an update function as an Optimizer.
func NewFunc(name string, cfg Config, step StepFunc) Optimizer {
	return optim.NewFunc(name, cfg, step)
}

// Register makes a named optimizer available to New.
func Register(name string, factory Factory) {
	optim.Register(name, factory)
}

// Names returns the registered optimizer names, sorted.
func Names() []string {
	return optim.Names()
}
