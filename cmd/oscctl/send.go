package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chabad360/osc-codec/internal/transport"
	"github.com/chabad360/osc-codec/osc"
)

func newSendCmd(a *app) *cobra.Command {
	var (
		flags  packetFlags
		target string
	)
	cmd := &cobra.Command{
		Use:   "send <address> [args...]",
		Short: "Send a message to the configured target over UDP",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if target != "" {
				a.cfg.Target = target
			}
			p, err := buildPacket(args[0], args[1:], flags.bundle, flags.timetag)
			if err != nil {
				return err
			}

			client, err := transport.Dial(a.cfg.Target)
			if err != nil {
				return fmt.Errorf("dial %s: %w", a.cfg.Target, err)
			}
			defer client.Close()

			if err := client.Send(p); err != nil {
				return fmt.Errorf("send to %s: %w", a.cfg.Target, err)
			}
			a.logger.Info().
				Str("target", a.cfg.Target).
				Int("bytes", len(osc.EncodePacket(p))).
				Msg("packet sent")
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&target, "target", "", "destination host:port (overrides config)")
	return cmd
}
