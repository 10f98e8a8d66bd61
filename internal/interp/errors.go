// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"errors"
	"fmt"
)

// ErrExitRequested is returned when evaluated code asks the host to stop.
// The processor propagates it verbatim: no wrapping, no partial metadata.
var ErrExitRequested = errors.New("interp: exit requested")

// ErrInterrupted is returned when a cell evaluation is cut short by the
// host's interrupt signal.
var ErrInterrupted = errors.New("interp: evaluation interrupted")

// ErrSkipBlock is returned by a Compiler for blocks with no compilable
// content. The processor advances to the next block; the skipped block
// contributes neither imports nor metadata.
var ErrSkipBlock = errors.New("interp: skip block")

// CompileError reports a failed block compilation with its source location.
type CompileError struct {
	Script  string
	Block   int    // 1-based block index
	Wrapper string // synthetic wrapper name
	Pos     string // position within the block source, may be empty
	Err     error
}

func (e *CompileError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: block %d (%s): %s: %v", e.Script, e.Block, e.Wrapper, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s: block %d (%s): %v", e.Script, e.Block, e.Wrapper, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// HookError reports an unresolvable load directive.
type HookError struct {
	Script string
	Block  int
	Hook   Hook
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s: block %d: %s %q (line %d): %v",
		e.Script, e.Block, e.Hook.Directive, e.Hook.Target, e.Hook.Line, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// LoadError aborts a script load at the failing block. Metadata for the
// blocks that completed before the failure remains available to the caller;
// no artifacts exist for the failing block or any later one.
type LoadError struct {
	Script    string
	Block     int // 1-based index of the failing block
	Completed []CompiledBlock
	Err       error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading %s failed at block %d: %v", e.Script, e.Block, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
