// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"strconv"
	"strings"
)

// Hook is an import directive found in a block's source, requesting that
// another script or module be loaded and its exports merged in before the
// block compiles.
type Hook struct {
	Directive string // "load" or "use"
	Target    string // unquoted directive argument
	Line      int    // 1-based line within the script
}

// Block is one top-level compilation unit of a multi-block script.
type Block struct {
	Index   int    // 1-based position within the script, stable across runs
	Leading string // leading whitespace, preserved for source fidelity
	Source  string
	Hooks   []Hook
}

// Empty reports whether the block holds no compilable content.
func (b Block) Empty() bool {
	for _, line := range strings.Split(b.Source, "\n") {
		t := strings.TrimSpace(line)
		if t != "" && !strings.HasPrefix(t, "//") {
			return false
		}
	}
	return true
}

// VersionTag is an opaque identifier for one compiled block. Tags are derived
// from the processed source and its compilation environment, so an unchanged
// block in an unchanged environment keeps its tag across runs.
type VersionTag string

// TagFor computes the version tag for a block: a content hash over the
// synthetic wrapper name, the processed source, and the fingerprint of the
// visible import set.
func TagFor(wrapper, source string, visible ImportSet) VersionTag {
	h := sha256.New()
	io.WriteString(h, wrapper)
	h.Write([]byte{0})
	io.WriteString(h, source)
	h.Write([]byte{0})
	io.WriteString(h, visible.Fingerprint())
	return VersionTag(hex.EncodeToString(h.Sum(nil))[:16])
}

// WrapperName returns the synthetic name for the block at the given 1-based
// index within a script. The first block keeps the base name; later blocks
// get a numeric suffix (name, name2, name3, ...) so generated identifiers
// stay unique and stable per block position.
func WrapperName(base string, index int) string {
	if index <= 1 {
		return base
	}
	return base + strconv.Itoa(index)
}

// CompiledBlock is the metadata produced by compiling one block: its version
// tag, synthetic wrapper name, preserved leading whitespace, resolved hook
// info, and the net new bindings the block exports.
type CompiledBlock struct {
	Tag     VersionTag
	Wrapper string
	Leading string
	Hooks   []Hook
	Imports ImportSet
}

// ScriptMetadata is the ordered per-block metadata for an entire script.
type ScriptMetadata struct {
	Name   string
	Blocks []CompiledBlock
}
