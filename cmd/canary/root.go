package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/canary/observe/exporters"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:           "canary",
		Short:         "canary reports the health of a service's dependencies",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// stdout carries the report.
			exporters.Output = os.Stderr
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./canary.yaml or ./config/canary.yaml)")

	rootCmd.AddCommand(newCollectCmd(&cfgFile))
	rootCmd.AddCommand(newValidateCmd(&cfgFile))

	return rootCmd
}
