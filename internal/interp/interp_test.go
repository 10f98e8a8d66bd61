// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/interp"
)

// The fakes below speak a tiny command language, one command per line:
//
//	def <name>   export a value binding
//	need <name>  compile error unless <name> is visible
//	print <msg>  emit an output line
//	fail         compile error
//	evalfail     evaluation error
//	exit         host exit request during evaluation
//
// Hooks are carried on the Block directly; the fake resolver serves nested
// scripts from an in-memory map.

type fakeArtifact struct {
	tag     interp.VersionTag
	wrapper string
	lines   []string
}

func (a *fakeArtifact) Tag() interp.VersionTag { return a.tag }
func (a *fakeArtifact) Wrapper() string        { return a.wrapper }

type fakeCompiler struct{}

func (fakeCompiler) Compile(ctx context.Context, src interp.ProcessedSource, visible interp.ImportSet) (interp.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(src.Code, "\n") {
		t := strings.TrimSpace(line)
		if t == "" {
			continue
		}
		lines = append(lines, t)
	}
	if len(lines) == 0 {
		return nil, interp.ErrSkipBlock
	}
	for _, cmd := range lines {
		switch {
		case cmd == "fail":
			return nil, &interp.CompileError{Wrapper: src.Wrapper, Err: errors.New("bad command")}
		case strings.HasPrefix(cmd, "need "):
			name := strings.TrimPrefix(cmd, "need ")
			if !visible.ContainsName(name) {
				return nil, &interp.CompileError{
					Wrapper: src.Wrapper,
					Err:     fmt.Errorf("undefined: %s", name),
				}
			}
		}
	}
	return &fakeArtifact{
		tag:     interp.TagFor(src.Wrapper, src.Code, visible),
		wrapper: src.Wrapper,
		lines:   lines,
	}, nil
}

type fakeEvaluator struct{}

func (fakeEvaluator) Eval(_ context.Context, art interp.Artifact, sink interp.PrintSink) (interp.EvalResult, error) {
	fa := art.(*fakeArtifact)
	res := interp.EvalResult{Imports: interp.NewImportSet()}
	for _, cmd := range fa.lines {
		switch {
		case cmd == "evalfail":
			return interp.EvalResult{}, errors.New("evaluation blew up")
		case cmd == "exit":
			return interp.EvalResult{}, interp.ErrExitRequested
		case strings.HasPrefix(cmd, "def "):
			name := strings.TrimPrefix(cmd, "def ")
			res.Imports[interp.Binding{Kind: interp.ValueBinding, Name: name}] = struct{}{}
		case strings.HasPrefix(cmd, "print "):
			line := strings.TrimPrefix(cmd, "print ")
			res.Outputs = append(res.Outputs, line)
			sink.Print(line)
		}
	}
	return res, nil
}

// lineSplitter cuts scripts at "---" lines and lifts "load <name>" lines
// into hooks.
type lineSplitter struct{}

func (lineSplitter) Split(_, source string) ([]interp.Block, error) {
	var blocks []interp.Block
	for _, part := range strings.Split(source, "---") {
		blk := interp.Block{Index: len(blocks) + 1}
		var kept []string
		for _, line := range strings.Split(part, "\n") {
			t := strings.TrimSpace(line)
			if strings.HasPrefix(t, "load ") {
				blk.Hooks = append(blk.Hooks, interp.Hook{
					Directive: "load",
					Target:    strings.TrimPrefix(t, "load "),
				})
				continue
			}
			kept = append(kept, line)
		}
		blk.Source = strings.Join(kept, "\n")
		blocks = append(blocks, blk)
	}
	return blocks, nil
}

// mapResolver serves nested scripts from memory through the session.
type mapResolver struct {
	scripts map[string]string
	loader  interface {
		LoadNested(ctx context.Context, name, source string, sink interp.PrintSink, imports interp.ImportSink) error
	}
}

func (r *mapResolver) Resolve(ctx context.Context, hook interp.Hook, sink interp.PrintSink, imports interp.ImportSink) (interp.ImportSet, error) {
	src, ok := r.scripts[hook.Target]
	if !ok {
		return nil, fmt.Errorf("no such script %q", hook.Target)
	}
	if err := r.loader.LoadNested(ctx, hook.Target, src, sink, imports); err != nil {
		return nil, err
	}
	return interp.NewImportSet(), nil
}

func newTestSession(scripts map[string]string) *interp.Session {
	resolver := &mapResolver{scripts: scripts}
	s := interp.NewSession(interp.Config{
		Splitter:  lineSplitter{},
		Compiler:  fakeCompiler{},
		Evaluator: fakeEvaluator{},
		Hooks:     resolver,
	})
	resolver.loader = s
	return s
}

func values(names ...string) interp.ImportSet {
	s := interp.NewImportSet()
	for _, n := range names {
		s[interp.Binding{Kind: interp.ValueBinding, Name: n}] = struct{}{}
	}
	return s
}

func TestLoadScript_MetadataOrderAndLength(t *testing.T) {
	s := newTestSession(nil)
	meta, out, err := s.LoadScript(context.Background(),
		"demo", "def a\nprint one\n---\ndef b\nprint two\n---\nprint three", nil)
	require.NoError(t, err)
	require.Len(t, meta.Blocks, 3)
	assert.Equal(t, []string{"demo", "demo2", "demo3"},
		[]string{meta.Blocks[0].Wrapper, meta.Blocks[1].Wrapper, meta.Blocks[2].Wrapper})
	assert.Equal(t, []string{"one", "two", "three"}, out)
}

func TestLoadScript_OnlyLastBlockPropagates(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(),
		"demo", "def a\n---\ndef b\n---\ndef c", nil)
	require.NoError(t, err)

	// Interactive state sees only the last block's exports, never the union.
	assert.True(t, s.Imports().Equal(values("c")), "got %v", s.Imports())
}

func TestLoadScript_BackwardReferenceSucceeds(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(), "demo", "def x\n---\nneed x", nil)
	require.NoError(t, err)
}

func TestLoadScript_ForwardReferenceFails(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(), "demo", "need y\n---\ndef y", nil)
	require.Error(t, err)

	var ce *interp.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Contains(t, ce.Error(), "undefined: y")
}

func TestLoadScript_FailureKeepsEarlierMetadata(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(),
		"demo", "def a\n---\ndef b\n---\nfail\n---\ndef d", nil)
	require.Error(t, err)

	var le *interp.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Block)
	require.Len(t, le.Completed, 2)
	assert.Equal(t, "demo", le.Completed[0].Wrapper)
	assert.Equal(t, "demo2", le.Completed[1].Wrapper)

	// Nothing from the failing script reached the interactive state.
	assert.Equal(t, 0, s.Imports().Len())
}

func TestLoadScript_EvalFailureAborts(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(),
		"demo", "def a\n---\nevalfail\n---\ndef c", nil)
	var le *interp.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 2, le.Block)
	require.Len(t, le.Completed, 1)
}

func TestLoadScript_ExitRequestPassesThroughVerbatim(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(), "demo", "def a\n---\nexit", nil)
	require.ErrorIs(t, err, interp.ErrExitRequested)

	// Verbatim: not wrapped in a LoadError.
	var le *interp.LoadError
	assert.False(t, errors.As(err, &le))
}

func TestLoadScript_SkippedBlockContributesNothing(t *testing.T) {
	s := newTestSession(nil)
	meta, _, err := s.LoadScript(context.Background(),
		"demo", "def a\n---\n\n---\ndef c", nil)
	require.NoError(t, err)
	require.Len(t, meta.Blocks, 2)
	// Wrapper names follow block position, not metadata count, so the
	// skipped middle block does not shift later names.
	assert.Equal(t, "demo", meta.Blocks[0].Wrapper)
	assert.Equal(t, "demo3", meta.Blocks[1].Wrapper)
}

func TestLoadScript_DeterministicTagsAcrossRuns(t *testing.T) {
	const src = "def a\nprint one\n---\nneed a\ndef b"

	run := func() *interp.ScriptMetadata {
		s := newTestSession(nil)
		meta, _, err := s.LoadScript(context.Background(), "demo", src, nil)
		require.NoError(t, err)
		return meta
	}

	first, second := run(), run()
	require.Len(t, second.Blocks, len(first.Blocks))
	for i := range first.Blocks {
		assert.Equal(t, first.Blocks[i].Wrapper, second.Blocks[i].Wrapper)
		assert.Equal(t, first.Blocks[i].Tag, second.Blocks[i].Tag)
	}
}

func TestLoadScript_TagChangesWithEnvironment(t *testing.T) {
	// The same source compiled under a different visible import set must
	// produce a different version tag.
	a := interp.TagFor("demo", "need x", values("x"))
	b := interp.TagFor("demo", "need x", values("x", "y"))
	assert.NotEqual(t, a, b)
}

func TestLoadScript_NestedImportsVisibleToHostBlock(t *testing.T) {
	scripts := map[string]string{
		"lib": "def helper\n---\ndef util",
	}
	s := newTestSession(scripts)

	// Block 2 loads lib and uses the binding its *last* block exported.
	_, _, err := s.LoadScript(context.Background(),
		"main", "def a\n---\nload lib\nneed util\ndef b", nil)
	require.NoError(t, err)
}

func TestLoadScript_NestedNonFinalImportNotPropagated(t *testing.T) {
	scripts := map[string]string{
		"lib": "def helper\n---\ndef util",
	}
	s := newTestSession(scripts)

	// "helper" came from lib's first block; only lib's last block exports
	// travel upward.
	_, _, err := s.LoadScript(context.Background(),
		"main", "load lib\nneed helper", nil)
	var ce *interp.CompileError
	require.ErrorAs(t, err, &ce)
}

func TestLoadScript_NestedImportsDoNotLeakAcrossSiblings(t *testing.T) {
	scripts := map[string]string{
		"lib": "def util",
	}
	s := newTestSession(scripts)

	_, _, err := s.LoadScript(context.Background(), "first", "load lib\nneed util\ndef a", nil)
	require.NoError(t, err)

	// An independent sibling script does not see lib's exports.
	_, _, err = s.LoadScript(context.Background(), "second", "need util", nil)
	var ce *interp.CompileError
	require.ErrorAs(t, err, &ce)
}

func TestLoadScript_DirectiveOnlyBlockResolvesHooks(t *testing.T) {
	scripts := map[string]string{
		"lib": "def util",
	}
	s := newTestSession(scripts)

	// Block 2 holds nothing but a load directive. Its hook must still run,
	// and the loaded bindings must be visible to block 3.
	_, _, err := s.LoadScript(context.Background(),
		"main", "def a\n---\nload lib\n---\nneed util", nil)
	require.NoError(t, err)
}

func TestLoadScript_DirectiveOnlyFinalBlockPropagates(t *testing.T) {
	scripts := map[string]string{
		"lib": "def util",
	}
	s := newTestSession(scripts)

	_, _, err := s.LoadScript(context.Background(), "main", "def a\n---\nload lib", nil)
	require.NoError(t, err)

	// The final block evaluated nothing, but its hook's bindings are its
	// contribution and travel to the session.
	assert.True(t, s.Imports().Equal(values("util")), "got %v", s.Imports())
}

func TestLoadScript_CompilerErrorCarriesScriptAndBlock(t *testing.T) {
	s := newTestSession(nil)

	// The fake compiler fills in Wrapper only, like a real compiler that
	// does not know where its block sits; the processor backfills the rest.
	_, _, err := s.LoadScript(context.Background(), "demo", "def a\n---\nfail", nil)
	var ce *interp.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "demo", ce.Script)
	assert.Equal(t, 2, ce.Block)
	assert.Equal(t, "demo2", ce.Wrapper)
}

func TestLoadScript_HookFailureAborts(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(),
		"demo", "def a\n---\nload missing\ndef b", nil)
	var he *interp.HookError
	require.ErrorAs(t, err, &he)

	var le *interp.LoadError
	require.ErrorAs(t, err, &le)
	require.Len(t, le.Completed, 1)
}

func TestEvalCell_ExportsJoinSessionState(t *testing.T) {
	s := newTestSession(nil)

	res, err := s.EvalCell(context.Background(), "def x\nprint hi", nil, "cell1")
	require.NoError(t, err)
	assert.Equal(t, []string{"hi"}, res.Outputs)
	assert.True(t, res.Imports.Equal(values("x")))
	assert.NotEmpty(t, res.Tag)

	// The next cell sees x.
	_, err = s.EvalCell(context.Background(), "need x", nil, "cell2")
	require.NoError(t, err)
}

func TestEvalCell_InterruptSurfacesStructured(t *testing.T) {
	s := newTestSession(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.EvalCell(ctx, "def x", nil, "cell1")
	require.ErrorIs(t, err, interp.ErrInterrupted)
}

func TestEvalCell_ScriptExportsVisible(t *testing.T) {
	s := newTestSession(nil)
	_, _, err := s.LoadScript(context.Background(), "demo", "def a\n---\ndef z", nil)
	require.NoError(t, err)

	// Cells see what the script propagated (its last block only).
	_, err = s.EvalCell(context.Background(), "need z", nil, "cell1")
	require.NoError(t, err)

	_, err = s.EvalCell(context.Background(), "need a", nil, "cell2")
	require.Error(t, err)
}

func TestImportSet_UnionOrderInsensitiveFingerprint(t *testing.T) {
	a := values("x", "y").Union(values("z"))
	b := values("z").Union(values("y", "x"))
	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
}

func TestWrapperName_Suffixing(t *testing.T) {
	assert.Equal(t, "script", interp.WrapperName("script", 1))
	assert.Equal(t, "script2", interp.WrapperName("script", 2))
	assert.Equal(t, "script11", interp.WrapperName("script", 11))
}
