// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import "context"

// PrintSink receives output lines produced during evaluation, in order.
type PrintSink interface {
	Print(line string)
}

// PrintSinkFunc adapts a function to the PrintSink interface.
type PrintSinkFunc func(line string)

// Print calls f(line).
func (f PrintSinkFunc) Print(line string) { f(line) }

// DiscardSink drops all output.
var DiscardSink PrintSink = PrintSinkFunc(func(string) {})

// ImportSink receives the bindings surfaced by a nested script load. The
// processor passes a capturing sink down through each load call instead of
// parking it in interpreter-wide state, so re-entrant loads nest without any
// save/restore bookkeeping.
type ImportSink func(ImportSet)

// ProcessedSource is one block's source after splitting, ready to compile
// under its synthetic wrapper name.
type ProcessedSource struct {
	Wrapper string
	Code    string
	Leading string
}

// Artifact is the compiled, executable form of one block or cell.
type Artifact interface {
	// Tag identifies the compiled content; equal inputs yield equal tags.
	Tag() VersionTag
	// Wrapper returns the synthetic name the artifact was compiled under.
	Wrapper() string
}

// Splitter partitions raw script text into blocks, assigning each its
// 1-based index and extracting import-hook directives.
type Splitter interface {
	Split(name, source string) ([]Block, error)
}

// Compiler type-checks processed source against the visible import set and
// emits an executable artifact. It returns ErrSkipBlock for blocks with no
// compilable content.
type Compiler interface {
	Compile(ctx context.Context, src ProcessedSource, visible ImportSet) (Artifact, error)
}

// EvalResult is the outcome of running one artifact.
type EvalResult struct {
	Outputs []string  // produced output lines, in order
	Imports ImportSet // net new bindings exported by the evaluated code
}

// Evaluator loads and runs a compiled artifact, reporting its output and
// the bindings it produced.
type Evaluator interface {
	Eval(ctx context.Context, art Artifact, sink PrintSink) (EvalResult, error)
}

// HookResolver interprets one import directive. Bindings the hook makes
// visible directly are returned; bindings propagated by a nested script load
// arrive through the imports sink.
type HookResolver interface {
	Resolve(ctx context.Context, hook Hook, sink PrintSink, imports ImportSink) (ImportSet, error)
}
