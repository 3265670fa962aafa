package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/canary/canary"
	"github.com/jonwraymond/canary/config"
	"github.com/jonwraymond/canary/health"
)

type collectOptions struct {
	interval time.Duration
	secret   string
	output   string
	failOn   string
}

func newCollectCmd(cfgFile *string) *cobra.Command {
	var opts collectOptions

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run every probe and print the canary report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			return runCollect(ctx, cfg, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "collect repeatedly at this interval until interrupted; the last report decides the exit status")
	cmd.Flags().StringVar(&opts.secret, "secret", os.Getenv("CANARY_PROVIDED_SECRET"), "shared secret presented to the canary")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "yaml", "output format: yaml|json")
	cmd.Flags().StringVar(&opts.failOn, "fail-on", "", "exit non-zero when the overall status is at least this severe (unknown|degraded|critical)")

	return cmd
}

func runCollect(ctx context.Context, cfg *config.Config, opts collectOptions, out io.Writer) error {
	var threshold health.Status
	if opts.failOn != "" {
		s, err := health.ParseStatus(opts.failOn)
		if err != nil {
			return fmt.Errorf("--fail-on: %w", err)
		}
		threshold = s
	}

	encode, err := newEncoder(opts.output, out)
	if err != nil {
		return err
	}

	rt, err := build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = rt.Close(shutdownCtx)
	}()

	report := rt.canary.Report(ctx, opts.secret)
	if err := encode(report); err != nil {
		return err
	}

	if opts.interval > 0 {
		ticker := time.NewTicker(opts.interval)
		defer ticker.Stop()
	loop:
		for {
			select {
			case <-ctx.Done():
				break loop
			case <-ticker.C:
				report = rt.canary.Report(ctx, opts.secret)
				if err := encode(report); err != nil {
					return err
				}
			}
		}
	}

	// With --interval the last report printed decides the exit status.
	switch {
	case report.Result != canary.OutcomeOK:
		return fmt.Errorf("canary report %s", report.Result)
	case opts.failOn != "" && report.Overall() >= threshold:
		return fmt.Errorf("overall status %s", report.Overall())
	}
	return nil
}

func newEncoder(format string, out io.Writer) (func(canary.Report) error, error) {
	switch format {
	case "yaml", "":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return func(r canary.Report) error {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			return nil
		}, nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return func(r canary.Report) error {
			if err := enc.Encode(r); err != nil {
				return fmt.Errorf("encode report: %w", err)
			}
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
