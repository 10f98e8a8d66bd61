// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flintml/flint/internal/interp/hooks"
	"github.com/flintml/flint/interp"
)

func newRunCmd(a *app) *cobra.Command {
	var showBlocks bool

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Run a Flint script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			source, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			session, err := newSession(a, filepath.Dir(path))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			meta, _, err := session.LoadScript(ctx, hooks.ScriptName(path), string(source), stdoutSink)
			switch {
			case errors.Is(err, interp.ErrExitRequested):
				a.log.Info("script requested exit", zap.String("script", path))
			case errors.Is(err, interp.ErrInterrupted):
				return fmt.Errorf("interrupted while running %s", path)
			case err != nil:
				return err
			}

			if showBlocks && meta != nil {
				for _, blk := range meta.Blocks {
					fmt.Fprintf(cmd.OutOrStdout(), "block %s tag=%s imports=%d\n",
						blk.Wrapper, blk.Tag, blk.Imports.Len())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBlocks, "blocks", false, "print per-block compilation metadata")
	return cmd
}
