// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package goeval

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/flintml/flint/internal/interp"
)

// Eval runs a compiled artifact in the session interpreter. Printed output
// streams to the sink line by line and is also returned in order. A context
// cancellation during execution surfaces as ErrInterrupted; the interpreter
// goroutine is left to run to completion with its output detached, since
// yaegi offers no preemption point.
func (e *Engine) Eval(ctx context.Context, art interp.Artifact, sink interp.PrintSink) (interp.EvalResult, error) {
	p, ok := art.(*program)
	if !ok {
		return interp.EvalResult{}, fmt.Errorf("goeval: artifact %T was not compiled by this engine", art)
	}
	if err := e.awaitStray(ctx); err != nil {
		return interp.EvalResult{}, err
	}

	e.out.attach(sink)

	done := make(chan error, 1)
	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				if _, isExit := r.(exitPanic); !isExit {
					err = fmt.Errorf("panic: %v", r)
				}
			}
			done <- err
		}()
		_, err = e.interp.Execute(p.prog)
	}()

	select {
	case <-ctx.Done():
		e.out.detach()
		e.stray = done
		e.log.Warn("evaluation interrupted", zap.String("wrapper", p.wrapper))
		return interp.EvalResult{}, interp.ErrInterrupted
	case err := <-done:
		lines := e.out.detach()
		if e.takeExit() {
			return interp.EvalResult{}, interp.ErrExitRequested
		}
		if err != nil {
			return interp.EvalResult{}, fmt.Errorf("evaluating %s: %w", p.wrapper, err)
		}
		for b := range p.exports {
			e.defined[b.Name] = true
		}
		return interp.EvalResult{Outputs: lines, Imports: p.exports}, nil
	}
}

// awaitStray waits for the goroutine of a previously interrupted evaluation
// to finish before the interpreter is touched again. Its output stays
// detached while it runs, and an exit it requested after the interrupt is
// discarded rather than carried into the next evaluation.
func (e *Engine) awaitStray(ctx context.Context) error {
	if e.stray == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return interp.ErrInterrupted
	case <-e.stray:
		e.stray = nil
		if e.takeExit() {
			e.log.Warn("discarding exit request from interrupted evaluation")
		}
	}
	return nil
}

// lineWriter splits interpreter output into lines, forwarding each to the
// attached sink and recording it for the evaluation result.
type lineWriter struct {
	mu    sync.Mutex
	sink  interp.PrintSink
	buf   strings.Builder
	lines []string
}

func newLineWriter() *lineWriter { return &lineWriter{} }

func (w *lineWriter) attach(sink interp.PrintSink) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sink = sink
	w.buf.Reset()
	w.lines = nil
}

// detach flushes any partial line, stops forwarding, and returns the lines
// collected since attach.
func (w *lineWriter) detach() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
	lines := w.lines
	w.sink = nil
	w.lines = nil
	return lines
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.sink == nil {
		// Output from an interrupted evaluation's straggler goroutine.
		return len(p), nil
	}
	for _, b := range p {
		if b == '\n' {
			w.emit(w.buf.String())
			w.buf.Reset()
			continue
		}
		w.buf.WriteByte(b)
	}
	return len(p), nil
}

func (w *lineWriter) emit(line string) {
	w.lines = append(w.lines, line)
	if w.sink != nil {
		w.sink.Print(line)
	}
}
