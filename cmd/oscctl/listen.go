package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"

	"github.com/spf13/cobra"

	"github.com/chabad360/osc-codec/internal/observability"
	"github.com/chabad360/osc-codec/internal/output"
	"github.com/chabad360/osc-codec/internal/transport"
	"github.com/chabad360/osc-codec/osc"
)

func newListenCmd(a *app) *cobra.Command {
	var (
		listen string
		count  int
	)
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Receive packets over UDP and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen != "" {
				a.cfg.Listen = listen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			if a.cfg.MetricsAddr != "" {
				go func() {
					if err := observability.ServeMetrics(ctx, a.cfg.MetricsAddr); err != nil {
						a.logger.Error().Err(err).Str("addr", a.cfg.MetricsAddr).Msg("metrics server stopped")
					}
				}()
			}

			var (
				mu       sync.Mutex
				received int
			)
			out := cmd.OutOrStdout()
			d := a.cfg.Decoder()
			d.Logger = &a.logger
			server := &transport.Server{
				Addr:        a.cfg.Listen,
				Decoder:     d,
				ReadTimeout: a.cfg.ReadTimeout,
				Workers:     a.cfg.Workers,
				Logger:      &a.logger,
				Handler: func(p osc.Packet, addr net.Addr) {
					v := output.View(p)
					v.Source = addr.String()
					text, err := a.formatter.Format(v)
					if err != nil {
						a.logger.Error().Err(err).Stringer("from", addr).Msg("cannot render packet")
						return
					}

					mu.Lock()
					defer mu.Unlock()
					if count > 0 && received >= count {
						return
					}
					fmt.Fprint(out, text)
					received++
					if count > 0 && received >= count {
						cancel()
					}
				},
			}

			a.logger.Info().Str("addr", a.cfg.Listen).Msg("listening for OSC packets")
			return server.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "UDP host:port to listen on (overrides config)")
	cmd.Flags().IntVar(&count, "count", 0, "exit after printing this many packets")
	return cmd
}
