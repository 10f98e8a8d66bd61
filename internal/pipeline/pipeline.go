// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package pipeline runs ordered sequences of Flint scripts described by a
// YAML manifest. Stages share one interpreter session, so bindings a stage
// propagates are visible to every stage after it.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/flintml/flint/internal/interp"
)

// Stage names one script in a pipeline.
type Stage struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"` // path, relative to the manifest's directory
}

// Manifest is a parsed pipeline description.
type Manifest struct {
	Name   string  `yaml:"name"`
	Stages []Stage `yaml:"stages"`
}

// Parse decodes and validates a manifest.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("manifest has no name")
	}
	if len(m.Stages) == 0 {
		return nil, fmt.Errorf("manifest %q has no stages", m.Name)
	}
	seen := make(map[string]bool, len(m.Stages))
	for i, st := range m.Stages {
		if st.Name == "" {
			return nil, fmt.Errorf("manifest %q: stage %d has no name", m.Name, i+1)
		}
		if st.Script == "" {
			return nil, fmt.Errorf("manifest %q: stage %q has no script", m.Name, st.Name)
		}
		if seen[st.Name] {
			return nil, fmt.Errorf("manifest %q: duplicate stage name %q", m.Name, st.Name)
		}
		seen[st.Name] = true
	}
	return &m, nil
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(data)
}

// ScriptLoader is the session surface the runner drives.
type ScriptLoader interface {
	LoadScript(ctx context.Context, name, source string, sink interp.PrintSink) (*interp.ScriptMetadata, []string, error)
}

// StageResult records one completed stage.
type StageResult struct {
	Stage   string
	Meta    *interp.ScriptMetadata
	Outputs []string
}

// Runner executes manifests against a session.
type Runner struct {
	loader ScriptLoader
	root   string // directory stage script paths are resolved against
	log    *zap.Logger
}

// NewRunner creates a runner resolving stage scripts against root.
func NewRunner(loader ScriptLoader, root string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{loader: loader, root: root, log: log}
}

// Run executes the manifest's stages in order, stopping at the first
// failure. Results for the stages that completed are returned either way.
func (r *Runner) Run(ctx context.Context, m *Manifest, sink interp.PrintSink) ([]StageResult, error) {
	results := make([]StageResult, 0, len(m.Stages))
	for _, st := range m.Stages {
		path := st.Script
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.root, path)
		}
		source, err := os.ReadFile(path)
		if err != nil {
			return results, fmt.Errorf("pipeline %q, stage %q: %w", m.Name, st.Name, err)
		}

		r.log.Info("running stage",
			zap.String("pipeline", m.Name),
			zap.String("stage", st.Name),
			zap.String("script", path),
		)
		meta, out, err := r.loader.LoadScript(ctx, st.Name, string(source), sink)
		if err != nil {
			return results, fmt.Errorf("pipeline %q, stage %q: %w", m.Name, st.Name, err)
		}
		results = append(results, StageResult{Stage: st.Name, Meta: meta, Outputs: out})
	}
	return results, nil
}
