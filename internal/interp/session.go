// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package interp

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config wires a Session's collaborating services.
type Config struct {
	Splitter  Splitter
	Compiler  Compiler
	Evaluator Evaluator
	Hooks     HookResolver // optional; defaults to rejecting every directive
	Logger    *zap.Logger  // optional; defaults to zap.NewNop()
}

// Session is one interpreter instance. A single script load or cell
// evaluation proceeds at a time; nested script loads triggered by hooks run
// inside the load that started them and share its lock.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	log      *zap.Logger
	splitter Splitter
	compiler Compiler
	eval     Evaluator
	hooks    HookResolver

	// imports is the interactive state: bindings visible to the next cell,
	// grown by cell exports and by top-level script loads.
	imports ImportSet
}

// NewSession builds a session from the given services.
func NewSession(cfg Config) *Session {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	hooks := cfg.Hooks
	if hooks == nil {
		hooks = rejectAllHooks{}
	}
	return &Session{
		id:       uuid.New(),
		log:      log,
		splitter: cfg.Splitter,
		compiler: cfg.Compiler,
		eval:     cfg.Evaluator,
		hooks:    hooks,
		imports:  NewImportSet(),
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id.String() }

// Imports returns a snapshot of the bindings currently visible to cells.
func (s *Session) Imports() ImportSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.imports.Union(nil)
}

// LoadScript splits the source into blocks and processes them in order.
// The last block's exports become visible to subsequent cells. Returns the
// per-block metadata and output lines, both in source order.
func (s *Session) LoadScript(ctx context.Context, name, source string, sink PrintSink) (*ScriptMetadata, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sink == nil {
		sink = DiscardSink
	}
	propagated := NewImportSet()
	meta, out, err := s.loadLocked(ctx, name, source, sink, func(is ImportSet) {
		propagated = propagated.Union(is)
	})
	if err != nil {
		return meta, out, err
	}
	s.imports = s.imports.Union(propagated)
	s.log.Info("script loaded",
		zap.String("session", s.id.String()),
		zap.String("script", name),
		zap.Int("blocks", len(meta.Blocks)),
		zap.Int("propagated", propagated.Len()),
	)
	return meta, out, nil
}

// LoadNested processes a script from inside a hook resolution. The caller
// already holds the session lock; propagated bindings flow through the given
// imports sink so re-entrant loads nest without shared mutable state.
func (s *Session) LoadNested(ctx context.Context, name, source string, sink PrintSink, imports ImportSink) error {
	_, _, err := s.loadLocked(ctx, name, source, sink, imports)
	return err
}

func (s *Session) loadLocked(ctx context.Context, name, source string, sink PrintSink, imports ImportSink) (*ScriptMetadata, []string, error) {
	blocks, err := s.splitter.Split(name, source)
	if err != nil {
		return nil, nil, fmt.Errorf("splitting %s: %w", name, err)
	}
	return s.processBlocks(ctx, name, blocks, sink, imports)
}

// rejectAllHooks is the default resolver for sessions without one.
type rejectAllHooks struct{}

func (rejectAllHooks) Resolve(_ context.Context, hook Hook, _ PrintSink, _ ImportSink) (ImportSet, error) {
	return nil, fmt.Errorf("no hook resolver configured for directive %q", hook.Directive)
}
