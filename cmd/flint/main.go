// Copyright 2025 The Flint Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Command flint is the Flint interactive computing CLI: it runs scripts,
// evaluates one-off cells, and executes pipeline manifests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/flintml/flint/internal/config"
	"github.com/flintml/flint/internal/logging"
	"github.com/flintml/flint/interp"
)

const version = "v0.1.0-dev"

// app holds the state commands share once the root's PersistentPreRunE ran.
type app struct {
	cfg *config.Config
	log *zap.Logger

	flagLogLevel string
	flagLogFile  string
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "flint",
		Short:         "Flint interactive numerical computing",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if a.flagLogLevel != "" {
				cfg.LogLevel = a.flagLogLevel
			}
			if a.flagLogFile != "" {
				cfg.LogFile = a.flagLogFile
			}
			log, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "override the configured log level")
	root.PersistentFlags().StringVar(&a.flagLogFile, "log-file", "", "override the configured log file")

	root.AddCommand(newRunCmd(a), newEvalCmd(a), newPipelineCmd(a), &cobra.Command{
		Use:   "version",
		Short: "Print the Flint version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "flint %s\n", version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "flint:", err)
		os.Exit(1)
	}
}

// stdoutSink streams script output lines to stdout as they arrive.
var stdoutSink = interp.PrintSinkFunc(func(line string) {
	fmt.Println(line)
})
