// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package split partitions raw Flint script text into blocks.
//
// Blocks are separated by delimiter lines of the form "// ---". Import
// hooks are Go-style directive comments:
//
//	//flint:load "relative/path.flint"
//	//flint:use "tensor"
//
// Directive lines stay inside their block's source (they are ordinary
// comments to the compiler) but are surfaced as Hook metadata.
package split

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/flintml/flint/internal/interp"
)

const directivePrefix = "//flint:"

// Splitter implements interp.Splitter.
type Splitter struct{}

// New returns a Splitter.
func New() *Splitter { return &Splitter{} }

// Split partitions source into blocks at "// ---" delimiter lines, assigning
// 1-based indexes by position. Leading whitespace of every block is kept
// aside so generated positions line up with the original source.
func (s *Splitter) Split(name, source string) ([]interp.Block, error) {
	lines := strings.Split(source, "\n")

	var blocks []interp.Block
	var cur []string
	curStart := 1 // 1-based line of the current block's first line

	flush := func() error {
		if len(cur) == 0 {
			cur = nil
			return nil
		}
		blk, err := buildBlock(name, cur, curStart, len(blocks)+1)
		if err != nil {
			return err
		}
		blocks = append(blocks, blk)
		cur = nil
		return nil
	}

	for i, line := range lines {
		if isDelimiter(line) {
			if err := flush(); err != nil {
				return nil, err
			}
			curStart = i + 2 // next line starts the next block
			continue
		}
		cur = append(cur, line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return blocks, nil
}

func isDelimiter(line string) bool {
	return strings.TrimSpace(line) == "// ---"
}

func buildBlock(script string, lines []string, start, index int) (interp.Block, error) {
	text := strings.Join(lines, "\n")
	leading := text[:len(text)-len(strings.TrimLeft(text, " \t\n\r"))]

	var hooks []interp.Hook
	for i, line := range lines {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, directivePrefix) {
			continue
		}
		hook, err := parseDirective(t, start+i)
		if err != nil {
			return interp.Block{}, fmt.Errorf("%s:%d: %w", script, start+i, err)
		}
		hooks = append(hooks, hook)
	}

	return interp.Block{
		Index:   index,
		Leading: leading,
		Source:  strings.TrimLeft(text, " \t\n\r"),
		Hooks:   hooks,
	}, nil
}

// parseDirective parses one "//flint:<verb> <quoted-arg>" line.
func parseDirective(line string, lineNo int) (interp.Hook, error) {
	rest := strings.TrimPrefix(line, directivePrefix)
	verb, arg, ok := strings.Cut(rest, " ")
	if !ok {
		return interp.Hook{}, fmt.Errorf("malformed directive %q: missing argument", line)
	}
	switch verb {
	case "load", "use":
	default:
		return interp.Hook{}, fmt.Errorf("unknown directive %q", verb)
	}
	target, err := strconv.Unquote(strings.TrimSpace(arg))
	if err != nil {
		return interp.Hook{}, fmt.Errorf("directive %s: argument must be a quoted string: %w", verb, err)
	}
	if target == "" {
		return interp.Hook{}, fmt.Errorf("directive %s: empty target", verb)
	}
	return interp.Hook{Directive: verb, Target: target, Line: lineNo}, nil
}
