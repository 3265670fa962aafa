package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/canary/config"
)

func newValidateCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without running any probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "service %s: %d probes\n", cfg.Service.Name, len(cfg.Probes))
			for _, p := range cfg.Probes {
				fmt.Fprintf(out, "  %-24s %s\n", p.Name, p.Type)
			}
			return nil
		},
	}
}
