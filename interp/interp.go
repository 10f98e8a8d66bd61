// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package interp is the public API for Flint's incremental script
// interpreter: block-structured script loading, interactive cell
// evaluation, and import propagation between them.
//
// Example:
//
//	session, err := interp.Open(interp.SessionOptions{ScriptRoot: "."})
//	meta, out, err := session.LoadScript(ctx, "train", source, sink)
//	res, err := session.EvalCell(ctx, `x := 40 + 2`, sink, "cell")
package interp

import (
	"go.uber.org/zap"

	"github.com/flintml/flint/internal/backend/cpu"
	"github.com/flintml/flint/internal/interp"
	"github.com/flintml/flint/internal/interp/goeval"
	"github.com/flintml/flint/internal/interp/hooks"
	"github.com/flintml/flint/internal/interp/split"
	"github.com/flintml/flint/internal/scriptlib"
)

// Session is one interpreter instance.
type Session = interp.Session

// Config wires a Session's collaborating services; use it directly to
// substitute custom splitters, compilers, or hook resolvers.
type Config = interp.Config

// ScriptMetadata is the ordered per-block metadata for a loaded script.
type ScriptMetadata = interp.ScriptMetadata

// CompiledBlock is one block's compilation metadata.
type CompiledBlock = interp.CompiledBlock

// CellResult is the outcome of evaluating one interactive cell.
type CellResult = interp.CellResult

// VersionTag identifies one compiled block's content and environment.
type VersionTag = interp.VersionTag

// ImportSet is a set of named bindings visible to compiling code.
type ImportSet = interp.ImportSet

// Binding is one visible name.
type Binding = interp.Binding

// PrintSink receives output lines produced during evaluation.
type PrintSink = interp.PrintSink

// PrintSinkFunc adapts a function to the PrintSink interface.
type PrintSinkFunc = interp.PrintSinkFunc

// DiscardSink drops all output.
var DiscardSink = interp.DiscardSink

// Sentinel errors surfaced by script and cell evaluation.
var (
	ErrExitRequested = interp.ErrExitRequested
	ErrInterrupted   = interp.ErrInterrupted
)

// LoadError reports a failed script load along with the metadata of the
// blocks that completed before the failure.
type LoadError = interp.LoadError

// CompileError reports a block that failed to compile.
type CompileError = interp.CompileError

// NewSession builds a session from explicitly wired services.
func NewSession(cfg Config) *Session {
	return interp.NewSession(cfg)
}

// SessionOptions configures Open.
type SessionOptions struct {
	// ScriptRoot is the directory //flint:load paths resolve against.
	// Empty means the working directory.
	ScriptRoot string
	Logger     *zap.Logger
	// Workers caps CPU parallelism for tensor kernels and data loading.
	// Values below one use the default.
	Workers int
	// Encoding names the default tokenizer vocabulary; empty means
	// "cl100k_base".
	Encoding string
}

// Open assembles a ready-to-use session: a yaegi-backed engine with the
// Flint domain library bound, the standard block splitter, and a directive
// resolver rooted at ScriptRoot.
func Open(opts SessionOptions) (*Session, error) {
	root := opts.ScriptRoot
	if root == "" {
		root = "."
	}
	encoding := opts.Encoding
	if encoding == "" {
		encoding = "cl100k_base"
	}
	engine, err := goeval.New(goeval.Options{
		Modules: scriptlib.Modules(scriptlib.Options{
			Backend:  cpu.NewWithWorkers(opts.Workers),
			Encoding: encoding,
			Workers:  opts.Workers,
		}),
		Logger: opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	resolver := hooks.NewResolver(root, engine, opts.Logger)
	session := interp.NewSession(interp.Config{
		Splitter:  split.New(),
		Compiler:  engine,
		Evaluator: engine,
		Hooks:     resolver,
		Logger:    opts.Logger,
	})
	resolver.Bind(session)
	return session, nil
}
