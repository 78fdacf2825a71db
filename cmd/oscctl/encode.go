package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chabad360/osc-codec/osc"
)

type packetFlags struct {
	bundle  bool
	timetag string
}

func (f *packetFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.bundle, "bundle", false, "wrap the message in a bundle")
	cmd.Flags().StringVar(&f.timetag, "timetag", "immediate", "bundle time tag: immediate, now, +<duration>, RFC 3339 or a raw 64-bit value")
}

func newEncodeCmd(a *app) *cobra.Command {
	var flags packetFlags
	cmd := &cobra.Command{
		Use:   "encode <address> [args...]",
		Short: "Encode a message and print it as hex",
		Long: `Encode a message and print its wire bytes as hex.

Arguments take an optional type prefix: i:42, f:0.5, s:text, b:<hex>.
Bare values are read as int32, then float32, then string.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := buildPacket(args[0], args[1:], flags.bundle, flags.timetag)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(osc.EncodePacket(p)))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
