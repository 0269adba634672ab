// Package commands implements the supportctl CLI. Every command drives the
// same core and durable store as the API server.
package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"customer-support-agent/config"
	"customer-support-agent/internal/app"
	"customer-support-agent/pkg/log"
)

var verbose bool

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supportctl",
		Short: "Operate the customer support agent from the terminal",
		Long: `supportctl sends messages through the support router, resolves
pending refund approvals, inspects conversations, ingests policy
documents and evaluates routing accuracy.

Configuration is read from config.yaml exactly like the API server.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log to stderr")

	cmd.AddCommand(
		NewAskCmd(),
		NewApproveCmd(),
		NewDenyCmd(),
		NewHistoryCmd(),
		NewIngestCmd(),
		NewEvalCmd(),
	)
	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// openApp loads config and wires the core. The caller must Close it.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger := log.NewNop()
	if verbose {
		logger = log.Init(log.ZapConfig{
			Level:        cfg.Logger.Level,
			Mode:         cfg.Logger.Mode,
			Encoding:     cfg.Logger.Encoding,
			ColorEnabled: cfg.Logger.ColorEnabled,
		})
	}

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("initializing: %w", err)
	}
	return a, nil
}
