// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package hooks resolves Flint import directives.
//
// "//flint:load" reads another script from disk and processes it through the
// owning session; the nested script's propagated bindings flow back through
// the imports sink the processor passed down. "//flint:use" binds a domain
// module into the session by name.
package hooks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/flintml/flint/internal/interp"
)

// NestedLoader processes a script from within an in-progress load. The
// session lock is already held by the outer load.
type NestedLoader interface {
	LoadNested(ctx context.Context, name, source string, sink interp.PrintSink, imports interp.ImportSink) error
}

// ModuleBinder makes a named domain module referenceable by scripts.
type ModuleBinder interface {
	BindModule(name string) (interp.ImportSet, error)
}

// Resolver implements interp.HookResolver against the local filesystem.
type Resolver struct {
	binder ModuleBinder
	loader NestedLoader
	log    *zap.Logger

	// dirs is the stack of directories relative load targets resolve
	// against; the top is the directory of the script currently loading.
	dirs []string
	// loading guards against load cycles, keyed by absolute path.
	loading map[string]bool
}

// NewResolver builds a resolver rooted at the given directory.
func NewResolver(root string, binder ModuleBinder, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		binder:  binder,
		log:     log,
		dirs:    []string{root},
		loading: make(map[string]bool),
	}
}

// Bind attaches the session the resolver loads nested scripts through.
// Resolver and session reference each other, so binding happens after both
// are constructed.
func (r *Resolver) Bind(loader NestedLoader) { r.loader = loader }

// Resolve interprets one directive.
func (r *Resolver) Resolve(ctx context.Context, hook interp.Hook, sink interp.PrintSink, imports interp.ImportSink) (interp.ImportSet, error) {
	switch hook.Directive {
	case "use":
		if r.binder == nil {
			return nil, fmt.Errorf("no module binder configured")
		}
		return r.binder.BindModule(hook.Target)
	case "load":
		return r.load(ctx, hook.Target, sink, imports)
	default:
		return nil, fmt.Errorf("unknown directive %q", hook.Directive)
	}
}

func (r *Resolver) load(ctx context.Context, target string, sink interp.PrintSink, imports interp.ImportSink) (interp.ImportSet, error) {
	if r.loader == nil {
		return nil, fmt.Errorf("no nested loader bound")
	}

	p := target
	if !filepath.IsAbs(p) {
		p = filepath.Join(r.dirs[len(r.dirs)-1], p)
	}
	p = filepath.Clean(p)

	if r.loading[p] {
		return nil, fmt.Errorf("load cycle through %s", p)
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}

	r.loading[p] = true
	r.dirs = append(r.dirs, filepath.Dir(p))
	defer func() {
		r.dirs = r.dirs[:len(r.dirs)-1]
		delete(r.loading, p)
	}()

	r.log.Debug("loading nested script", zap.String("path", p))
	if err := r.loader.LoadNested(ctx, ScriptName(p), string(data), sink, imports); err != nil {
		return nil, err
	}
	// The nested script's propagated bindings arrived through the sink;
	// the hook itself contributes nothing directly.
	return interp.NewImportSet(), nil
}

// ScriptName derives the synthetic base name from a script path: the file
// stem with every non-identifier rune replaced by an underscore.
func ScriptName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var b strings.Builder
	for i, r := range stem {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case unicode.IsDigit(r) && i > 0:
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "script"
	}
	return b.String()
}
