// Package cmd holds the resep command line.
package cmd

import (
	"fmt"
	"os"

	"resep/internal/config"
	"resep/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// NewRootCmd builds the resep command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "resep",
		Short:         "Recipe and catalog API server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCreateSuperuserCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, err
	}
	if cfg.InsecureSecret() {
		logger.Warn("JWT_SECRET is the development default; set it before deploying")
	}
	return cfg, logger, nil
}
