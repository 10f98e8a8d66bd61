// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package goeval

import (
	"context"
	"fmt"

	yaegi "github.com/traefik/yaegi/interp"

	"github.com/flintml/flint/internal/interp"
)

// program is the compiled artifact for one block or cell.
type program struct {
	tag     interp.VersionTag
	wrapper string
	prog    *yaegi.Program
	exports interp.ImportSet
}

func (p *program) Tag() interp.VersionTag { return p.tag }
func (p *program) Wrapper() string        { return p.wrapper }

// Compile type-checks the processed source in the session interpreter and
// derives the bindings the block will export. Blocks with no compilable
// content return ErrSkipBlock. The version tag hashes the wrapper name, the
// source, and the visible import set, so unchanged input keeps its tag.
func (e *Engine) Compile(ctx context.Context, src interp.ProcessedSource, visible interp.ImportSet) (interp.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if blankSource(src.Code) {
		return nil, interp.ErrSkipBlock
	}
	if err := e.awaitStray(ctx); err != nil {
		return nil, err
	}

	exports, err := scanExports(src.Wrapper, src.Code)
	if err != nil {
		return nil, &interp.CompileError{
			Wrapper: src.Wrapper,
			Pos:     positionOf(err),
			Err:     fmt.Errorf("parsing block: %w", err),
		}
	}

	// The interpreter scope is shared across the whole session, so block
	// isolation is enforced here: a reference to a session binding outside
	// the visible set fails the same way a truly undefined name would.
	if name, leaked := e.undefinedRef(src.Wrapper, src.Code, visible); leaked {
		return nil, &interp.CompileError{
			Wrapper: src.Wrapper,
			Err:     fmt.Errorf("undefined: %s", name),
		}
	}

	prog, err := e.interp.Compile(src.Code)
	if err != nil {
		return nil, &interp.CompileError{
			Wrapper: src.Wrapper,
			Pos:     positionOf(err),
			Err:     err,
		}
	}

	return &program{
		tag:     interp.TagFor(src.Wrapper, src.Code, visible),
		wrapper: src.Wrapper,
		prog:    prog,
		exports: exports,
	}, nil
}
