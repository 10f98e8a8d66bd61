// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flintml/flint/internal/pipeline"
)

func newPipelineCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pipeline <manifest.yaml>",
		Short: "Run the script stages of a pipeline manifest in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			manifestPath := args[0]
			m, err := pipeline.LoadManifest(manifestPath)
			if err != nil {
				return err
			}

			root := filepath.Dir(manifestPath)
			session, err := newSession(a, root)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			runner := pipeline.NewRunner(session, root, a.log)
			results, err := runner.Run(ctx, m, stdoutSink)
			if err != nil {
				return fmt.Errorf("after %d completed stages: %w", len(results), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pipeline %q: %d stages completed\n", m.Name, len(results))
			return nil
		},
	}
}
