// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/interp"
)

func openSession(t *testing.T) *interp.Session {
	t.Helper()
	s, err := interp.Open(interp.SessionOptions{ScriptRoot: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestOpen_LoadAndEvalCell(t *testing.T) {
	s := openSession(t)
	ctx := context.Background()

	meta, out, err := s.LoadScript(ctx, "demo",
		"x := 40\n// ---\nimport \"fmt\"\ny := x + 2\nfmt.Println(y)", nil)
	require.NoError(t, err)
	require.Len(t, meta.Blocks, 2)
	assert.Equal(t, []string{"42"}, out)

	res, err := s.EvalCell(ctx, "fmt.Println(y * 2)", nil, "cell")
	require.NoError(t, err)
	assert.Equal(t, []string{"84"}, res.Outputs)
}

func TestOpen_SiblingScriptsIsolated(t *testing.T) {
	s := openSession(t)
	ctx := context.Background()

	_, _, err := s.LoadScript(ctx, "first", "hidden := 1\n// ---\nlast := 2", nil)
	require.NoError(t, err)

	// Only the final block of "first" propagated, and scripts start from a
	// clean scope either way: "second" must not see a sibling's binding.
	_, _, err = s.LoadScript(ctx, "second", "_ = hidden", nil)
	require.Error(t, err)
	var ce *interp.CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "second", ce.Script)
	assert.Equal(t, 1, ce.Block)
	assert.Contains(t, ce.Err.Error(), "undefined: hidden")
}

func TestOpen_ForwardReferenceFails(t *testing.T) {
	s := openSession(t)

	_, _, err := s.LoadScript(context.Background(), "fwd", "_ = later\n// ---\nlater := 1", nil)
	require.Error(t, err)
	var le *interp.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 1, le.Block)
}

func TestOpen_CellSeesOnlyPropagatedBindings(t *testing.T) {
	s := openSession(t)
	ctx := context.Background()

	_, _, err := s.LoadScript(ctx, "script", "hidden := 1\n// ---\nlast := 2", nil)
	require.NoError(t, err)

	_, err = s.EvalCell(ctx, "_ = last", nil, "cell1")
	require.NoError(t, err)

	_, err = s.EvalCell(ctx, "_ = hidden", nil, "cell2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined: hidden")
}
