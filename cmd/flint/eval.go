// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flintml/flint/interp"
)

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <code>",
		Short: "Evaluate a single cell of Go code",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := newSession(a, a.cfg.ScriptRoot)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := session.EvalCell(ctx, strings.Join(args, " "), stdoutSink, "cell")
			switch {
			case errors.Is(err, interp.ErrExitRequested):
				return nil
			case errors.Is(err, interp.ErrInterrupted):
				return fmt.Errorf("interrupted")
			case err != nil:
				return err
			}

			a.log.Debug("cell evaluated",
				zap.String("tag", string(res.Tag)),
				zap.Int("exports", res.Imports.Len()),
			)
			return nil
		},
	}
}
