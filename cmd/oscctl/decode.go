package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chabad360/osc-codec/internal/output"
)

func newDecodeCmd(a *app) *cobra.Command {
	var hexInput bool
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode one packet from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			if hexInput {
				data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
				if err != nil {
					return fmt.Errorf("decode hex input: %w", err)
				}
			}

			d := a.cfg.Decoder()
			d.Logger = &a.logger
			p, err := d.ParsePacket(data)
			if err != nil {
				return fmt.Errorf("decode packet: %w", err)
			}
			out, err := a.formatter.Format(output.View(p))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&hexInput, "hex", false, "input is hex text instead of raw bytes")
	return cmd
}
