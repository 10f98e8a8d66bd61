// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package goeval implements interp.Compiler and interp.Evaluator on top of
// the yaegi Go interpreter. One Engine backs one interpreter session: every
// block and cell evaluates in the same yaegi instance, so bindings exported
// by earlier blocks are in scope for later ones. Because that scope is
// shared, Compile enforces block-level visibility itself: a reference to a
// session binding outside the block's visible import set is rejected before
// yaegi ever sees it.
package goeval

import (
	"fmt"
	"reflect"
	"strings"
	"sync/atomic"

	yaegi "github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
	"go.uber.org/zap"

	"github.com/flintml/flint/internal/interp"
)

// Exports maps import paths to the symbols a bound module contributes,
// following the yaegi convention ("path/pkgname" -> name -> value).
type Exports = yaegi.Exports

// Options configures an Engine.
type Options struct {
	// Modules are domain libraries scripts may bind with //flint:use.
	// Keyed by module name; each value is registered with the interpreter
	// under the import path "flint/<name>".
	Modules map[string]map[string]reflect.Value
	Logger  *zap.Logger
}

// Engine is a yaegi-backed compiler/evaluator pair sharing one interpreter.
type Engine struct {
	interp  *yaegi.Interpreter
	out     *lineWriter
	log     *zap.Logger
	modules map[string]bool // bound module name -> already imported

	// defined holds every binding name the session has ever created. The
	// visibility check in Compile flags references to these when they sit
	// outside a block's visible import set.
	defined map[string]bool

	exitRequested atomic.Bool

	// stray is the done channel of an interrupted evaluation whose
	// goroutine may still be running. The next Compile or Eval drains it
	// before touching the interpreter again.
	stray chan error
}

// New builds an Engine with the Go stdlib and the given domain modules
// available to scripts.
func New(opts Options) (*Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	out := newLineWriter()
	i := yaegi.New(yaegi.Options{Stdout: out, Stderr: out})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("loading stdlib symbols: %w", err)
	}

	e := &Engine{
		interp:  i,
		out:     out,
		log:     log,
		modules: make(map[string]bool),
		defined: make(map[string]bool),
	}

	exports := make(Exports)
	for name, symbols := range opts.Modules {
		exports["flint/"+name+"/"+name] = symbols
		e.modules[name] = false
	}
	// Host controls available to every script.
	exports["flint/host/host"] = map[string]reflect.Value{
		"Exit": reflect.ValueOf(e.requestExit),
	}
	if err := i.Use(exports); err != nil {
		return nil, fmt.Errorf("binding domain modules: %w", err)
	}
	if _, err := i.Eval(`import "flint/host"`); err != nil {
		return nil, fmt.Errorf("importing host module: %w", err)
	}
	return e, nil
}

// BindModule makes a //flint:use module referenceable by its bare name in
// subsequent blocks. Binding is idempotent.
func (e *Engine) BindModule(name string) (interp.ImportSet, error) {
	imported, ok := e.modules[name]
	if !ok {
		return nil, fmt.Errorf("module %q is not bound to this session", name)
	}
	if !imported {
		if _, err := e.interp.Eval(fmt.Sprintf("import %q", "flint/"+name)); err != nil {
			return nil, fmt.Errorf("importing module %q: %w", name, err)
		}
		e.modules[name] = true
		e.defined[name] = true
	}
	return interp.NewImportSet(interp.Binding{Kind: interp.PackageBinding, Name: name}), nil
}

// requestExit is exposed to scripts as host.Exit. It marks the session for
// shutdown and unwinds the current evaluation. The flag is atomic because an
// interrupted evaluation's goroutine can still call it while the session has
// moved on.
func (e *Engine) requestExit() {
	e.exitRequested.Store(true)
	panic(exitPanic{})
}

type exitPanic struct{}

// takeExit reports and clears a pending exit request.
func (e *Engine) takeExit() bool {
	return e.exitRequested.Swap(false)
}

// stripComments reports whether code holds anything besides comments and
// blank lines.
func blankSource(code string) bool {
	for _, line := range strings.Split(code, "\n") {
		t := strings.TrimSpace(line)
		if t != "" && !strings.HasPrefix(t, "//") {
			return false
		}
	}
	return true
}
