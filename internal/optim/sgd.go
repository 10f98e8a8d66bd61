// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package optim

import (
	"fmt"

	"github.com/flintml/flint/internal/tensor"
)

// SGD is the reference update rule: p -= lr * g. It exists so sessions have
// a working optimizer out of the box; richer rules register themselves the
// same way.
type SGD struct {
	lr float64
}

// NewSGD creates an SGD optimizer.
func NewSGD(cfg Config) *SGD {
	return &SGD{lr: cfg.LR}
}

// Step applies p -= lr * g for every parameter with a matching gradient.
func (o *SGD) Step(params, grads map[string]*tensor.RawTensor) error {
	for name, p := range params {
		g, ok := grads[name]
		if !ok {
			continue
		}
		if !p.Shape().Equal(g.Shape()) {
			return fmt.Errorf("sgd: parameter %q has shape %v, gradient %v", name, p.Shape(), g.Shape())
		}
		if p.DType() != g.DType() {
			return fmt.Errorf("sgd: parameter %q has dtype %s, gradient %s", name, p.DType(), g.DType())
		}
		switch p.DType() {
		case tensor.Float32:
			pd, gd := p.AsFloat32(), g.AsFloat32()
			for i := range pd {
				pd[i] -= float32(o.lr) * gd[i]
			}
		case tensor.Float64:
			pd, gd := p.AsFloat64(), g.AsFloat64()
			for i := range pd {
				pd[i] -= o.lr * gd[i]
			}
		default:
			return fmt.Errorf("sgd: parameter %q has non-floating dtype %s", name, p.DType())
		}
	}
	return nil
}

// LR returns the learning rate.
func (o *SGD) LR() float64 { return o.lr }

// Name returns "sgd".
func (o *SGD) Name() string { return "sgd" }

func init() {
	Register("sgd", func(cfg Config) (Optimizer, error) {
		if cfg.LR <= 0 {
			return nil, fmt.Errorf("sgd: learning rate must be positive, got %g", cfg.LR)
		}
		return NewSGD(cfg), nil
	})
}
