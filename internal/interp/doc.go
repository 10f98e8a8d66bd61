// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package interp implements Flint's incremental script interpreter.
//
// A script is split into sequential blocks. Each block is compiled against
// the union of the bindings exported by every earlier block (plus bindings
// surfaced by nested script loads), evaluated, and folded into the running
// import set. After the final block, only that block's exports are reported
// to the caller, never the accumulated union.
//
// The package owns the control and data flow only. The actual services are
// pluggable:
//   - Splitter: partitions raw script text into blocks
//   - Compiler: type-checks processed source against an import context
//   - Evaluator: runs compiled artifacts and reports produced bindings
//   - HookResolver: interprets load directives found in source text
//
// The yaegi-backed implementations live in the goeval and split subpackages.
//
// Example:
//
//	engine, _ := goeval.New(goeval.Options{})
//	session := interp.NewSession(interp.Config{
//	    Splitter:  split.New(),
//	    Compiler:  engine,
//	    Evaluator: engine,
//	})
//	meta, out, err := session.LoadScript(ctx, "train", source, sink)
package interp
