package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chabad360/osc-codec/internal/config"
	"github.com/chabad360/osc-codec/internal/observability"
	"github.com/chabad360/osc-codec/internal/output"
)

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfgFile      string
	logLevel     string
	outputFormat string

	cfg       config.Config
	logger    zerolog.Logger
	formatter output.Formatter
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "oscctl",
		Short:         "Encode, decode, send and receive OSC 1.0 packets",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output", "o", "", "output format: text, json, yaml (default \"text\")")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newSendCmd(a),
		newListenCmd(a),
	)
	return root
}

func (a *app) setup() error {
	a.cfg = config.Default()
	if a.cfgFile != "" {
		cfg, err := config.Load(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		a.cfg = cfg
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if a.outputFormat != "" {
		a.cfg.Output = a.outputFormat
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	a.logger = observability.InitLogger("oscctl", a.cfg.LogLevel)
	a.formatter = output.NewFormatter(a.cfg.Output)
	return nil
}
