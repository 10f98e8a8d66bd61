// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// loadState carries the block walk. current holds every binding visible
// inside the script so far; last holds only the most recent block's
// contribution, which alone is exported to the caller at the end.
type loadState struct {
	current ImportSet
	last    ImportSet
	meta    []CompiledBlock
	outputs []string
}

// processBlocks walks a script's blocks strictly in source order. Each block
// compiles against state.current plus its hook imports, evaluates, and folds
// its exports together with any nested-script imports into state.current.
// After the final block the caller's imports sink (if any) receives only the
// last block's contribution.
//
// The first compile, eval, or hook failure aborts the walk; the returned
// LoadError carries the metadata of every block completed before it.
// ErrExitRequested passes through verbatim.
func (s *Session) processBlocks(ctx context.Context, name string, blocks []Block, sink PrintSink, imports ImportSink) (*ScriptMetadata, []string, error) {
	st := loadState{current: NewImportSet(), last: NewImportSet()}

	for _, blk := range blocks {
		// Hooks live in comment lines, so a block can be empty of code yet
		// still carry directives; only a block with neither is skipped here.
		// Blank content after hook resolution is the compiler's ErrSkipBlock.
		if blk.Empty() && len(blk.Hooks) == 0 {
			continue
		}

		hookImports := NewImportSet()
		nested := NewImportSet()
		capture := func(is ImportSet) { nested = nested.Union(is) }

		failed := func(err error) (*ScriptMetadata, []string, error) {
			return nil, nil, &LoadError{Script: name, Block: blk.Index, Completed: st.meta, Err: err}
		}

		for _, h := range blk.Hooks {
			hi, err := s.hooks.Resolve(ctx, h, sink, capture)
			if err != nil {
				if errors.Is(err, ErrExitRequested) {
					return nil, nil, err
				}
				return failed(&HookError{Script: name, Block: blk.Index, Hook: h, Err: err})
			}
			hookImports = hookImports.Union(hi)
		}

		wrapper := WrapperName(name, blk.Index)
		visible := st.current.Union(hookImports).Union(nested)

		art, err := s.compiler.Compile(ctx, ProcessedSource{
			Wrapper: wrapper,
			Code:    blk.Source,
			Leading: blk.Leading,
		}, visible)
		if errors.Is(err, ErrSkipBlock) {
			// A directive-only block evaluates nothing, but its resolved
			// hooks still contribute: their bindings stay visible to later
			// blocks and count as this block's exports.
			if contributed := hookImports.Union(nested); contributed.Len() > 0 {
				st.last = contributed
				st.current = st.current.Union(contributed)
			}
			continue
		}
		if err != nil {
			if errors.Is(err, ErrExitRequested) {
				return nil, nil, err
			}
			var ce *CompileError
			if errors.As(err, &ce) {
				if ce.Script == "" {
					ce.Script = name
				}
				if ce.Block == 0 {
					ce.Block = blk.Index
				}
			} else {
				err = &CompileError{Script: name, Block: blk.Index, Wrapper: wrapper, Err: err}
			}
			return failed(err)
		}

		res, err := s.eval.Eval(ctx, art, sink)
		if err != nil {
			if errors.Is(err, ErrExitRequested) {
				return nil, nil, err
			}
			return failed(err)
		}

		contributed := res.Imports.Union(hookImports).Union(nested)
		st.last = contributed
		st.current = st.current.Union(contributed)
		st.meta = append(st.meta, CompiledBlock{
			Tag:     art.Tag(),
			Wrapper: wrapper,
			Leading: blk.Leading,
			Hooks:   blk.Hooks,
			Imports: res.Imports,
		})
		st.outputs = append(st.outputs, res.Outputs...)

		s.log.Debug("block evaluated",
			zap.String("script", name),
			zap.Int("block", blk.Index),
			zap.String("wrapper", wrapper),
			zap.String("tag", string(art.Tag())),
			zap.Int("exports", res.Imports.Len()),
		)
	}

	if imports != nil {
		imports(st.last)
	}
	return &ScriptMetadata{Name: name, Blocks: st.meta}, st.outputs, nil
}
