// SPDX-License-Identifier: MIT

// Package cli implements the skydata command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/skydata/internal/config"
	"github.com/katalvlaran/skydata/internal/logger"
)

// app carries the state shared by subcommands once the root has run.
type app struct {
	configDir string
	cfg       *config.Config
	log       *zap.Logger
}

// NewRootCmd builds the command tree. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "skydata",
		Short: "Astronomical data-model toolkit",
		Long: `skydata classifies data components, interpolates two-column tables,
resamples them into FITS images and coadds source catalogs by sky position.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig(a.configDir)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			l, err := logger.New(&cfg.Log)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			a.cfg, a.log = cfg, l

			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", ".", "directory holding skydata.yaml and .env")

	root.AddCommand(
		newClassifyCmd(a),
		newInterpolateCmd(a),
		newResampleCmd(a),
		newMatchCmd(a),
	)

	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		// Console debug config gives readable ISO8601 timestamps for a CLI.
		l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
