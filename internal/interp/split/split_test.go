// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package split_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flintml/flint/internal/interp/split"
)

func TestSplit_SingleBlock(t *testing.T) {
	blocks, err := split.New().Split("demo", "x := 1\nfmt.Println(x)")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, 1, blocks[0].Index)
	assert.Equal(t, "x := 1\nfmt.Println(x)", blocks[0].Source)
	assert.Empty(t, blocks[0].Hooks)
}

func TestSplit_DelimiterSeparatesBlocks(t *testing.T) {
	src := "x := 1\n// ---\ny := 2\n// ---\nz := x + y"
	blocks, err := split.New().Split("demo", src)
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	for i, blk := range blocks {
		assert.Equal(t, i+1, blk.Index)
	}
	assert.Equal(t, "y := 2", blocks[1].Source)
}

func TestSplit_LeadingWhitespacePreserved(t *testing.T) {
	src := "x := 1\n// ---\n\n\n\ty := 2"
	blocks, err := split.New().Split("demo", src)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, "\n\n\t", blocks[1].Leading)
	assert.Equal(t, "y := 2", blocks[1].Source)
}

func TestSplit_Directives(t *testing.T) {
	src := "//flint:load \"lib/helpers.flint\"\n//flint:use \"tensor\"\nx := 1"
	blocks, err := split.New().Split("demo", src)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.Len(t, blocks[0].Hooks, 2)

	assert.Equal(t, "load", blocks[0].Hooks[0].Directive)
	assert.Equal(t, "lib/helpers.flint", blocks[0].Hooks[0].Target)
	assert.Equal(t, 1, blocks[0].Hooks[0].Line)

	assert.Equal(t, "use", blocks[0].Hooks[1].Directive)
	assert.Equal(t, "tensor", blocks[0].Hooks[1].Target)
	assert.Equal(t, 2, blocks[0].Hooks[1].Line)
}

func TestSplit_DirectiveLineNumbersSpanBlocks(t *testing.T) {
	src := "x := 1\n// ---\ny := 2\n//flint:use \"dataset\"\n"
	blocks, err := split.New().Split("demo", src)
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.Len(t, blocks[1].Hooks, 1)
	assert.Equal(t, 4, blocks[1].Hooks[0].Line)
}

func TestSplit_MalformedDirective(t *testing.T) {
	_, err := split.New().Split("demo", "//flint:load helpers.flint\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quoted string")
}

func TestSplit_UnknownDirective(t *testing.T) {
	_, err := split.New().Split("demo", "//flint:frobnicate \"x\"\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown directive")
}

func TestSplit_EmptySegmentKeepsIndexesStable(t *testing.T) {
	src := "x := 1\n// ---\n\n// ---\nz := 3"
	blocks, err := split.New().Split("demo", src)
	require.NoError(t, err)
	// The blank middle segment still occupies index 2, so later blocks keep
	// their positions (and wrapper names) across runs.
	require.Len(t, blocks, 3)
	assert.True(t, blocks[1].Empty())
	assert.Equal(t, 3, blocks[2].Index)
}
