package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"matchbook/internal/simulator"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func loadCmd() *cobra.Command {
	var (
		gatewayURL string
		rps        int
		duration   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Generate random order flow against a running gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			tel := simulator.NewTelemetry()
			gen := simulator.NewLoadGenerator(simulator.LoadGeneratorConfig{
				GatewayURL:        gatewayURL,
				RequestsPerSecond: rps,
			}, tel, logger)

			err := gen.Run(ctx)
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&gatewayURL, "gateway", "http://localhost:8080", "Base URL of the order gateway")
	fs.IntVar(&rps, "rps", 50, "Target order submissions per second")
	fs.DurationVar(&duration, "duration", 30*time.Second, "How long to run; 0 runs until interrupted")

	return cmd
}
