// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// CellResult is the outcome of evaluating one freestanding cell.
type CellResult struct {
	Outputs []string
	Imports ImportSet
	Tag     VersionTag
}

// EvalCell compiles a single interactive statement against the session's
// current bindings and runs it. Only one cell evaluates at a time.
//
// An interrupt from the host (context cancellation during evaluation)
// surfaces as ErrInterrupted rather than the raw cancellation. On success
// the cell's exports join the session's interactive state.
func (s *Session) EvalCell(ctx context.Context, source string, sink PrintSink, wrapper string) (*CellResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sink == nil {
		sink = DiscardSink
	}

	art, err := s.compiler.Compile(ctx, ProcessedSource{Wrapper: wrapper, Code: source}, s.imports)
	if errors.Is(err, ErrSkipBlock) {
		return &CellResult{Imports: NewImportSet()}, nil
	}
	if err != nil {
		if isInterrupt(err) {
			return nil, ErrInterrupted
		}
		return nil, err
	}

	res, err := s.eval.Eval(ctx, art, sink)
	if err != nil {
		if errors.Is(err, ErrExitRequested) {
			return nil, err
		}
		if isInterrupt(err) {
			s.log.Warn("cell interrupted",
				zap.String("session", s.id.String()),
				zap.String("wrapper", wrapper),
			)
			return nil, ErrInterrupted
		}
		return nil, err
	}

	s.imports = s.imports.Union(res.Imports)
	return &CellResult{
		Outputs: res.Outputs,
		Imports: res.Imports,
		Tag:     art.Tag(),
	}, nil
}

// isInterrupt reports whether err stems from the host's interrupt signal.
func isInterrupt(err error) bool {
	return errors.Is(err, ErrInterrupted) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}
