// Package cli is the portfolio command line.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Boredoom17/portfolio/internal/config"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Boredoom's portfolio site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (YAML)")

	load := func() (config.Config, error) {
		return config.Load(configPath)
	}

	root.AddCommand(newServeCmd(load), newExportCmd(load), &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "portfolio version %s (build: %s)\n", Version, BuildTime)
		},
	})
	return root
}
