// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"github.com/flintml/flint/interp"
)

// newSession assembles one interpreter session with load paths resolved
// against scriptRoot.
func newSession(a *app, scriptRoot string) (*interp.Session, error) {
	return interp.Open(interp.SessionOptions{
		ScriptRoot: scriptRoot,
		Logger:     a.log,
		Workers:    a.cfg.Workers,
		Encoding:   a.cfg.Encoding,
	})
}
