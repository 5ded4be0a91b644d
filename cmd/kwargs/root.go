package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/kwargs/internal/config"
	"github.com/aretw0/kwargs/internal/logging"
	"github.com/aretw0/kwargs/pkg/convert"
	"github.com/aretw0/kwargs/pkg/value"
	"github.com/spf13/cobra"
)

// app carries what PersistentPreRunE resolved from the config file and flags.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	encoding value.Encoding
}

func (a *app) convertOpts() []convert.Option {
	return []convert.Option{convert.WithMaxDepth(a.cfg.MaxDepth)}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "kwargs",
		Short: "kwargs moves dynamic dicts across a typed boundary and back",
		Long: `kwargs converts loosely typed dicts into a closed set of typed values and back.
It generates the canonical sample dict, echoes dicts through the converters,
compares them structurally and serves the same operations over HTTP and MCP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	// Persistent flags (available to all commands)
	flags := rootCmd.PersistentFlags()
	flags.String("config", config.DefaultFile, "Path to the configuration file (YAML or JSON)")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("format", "json", "Output format: json or yaml")
	flags.Int("max-depth", 0, "Maximum container nesting (overrides config)")

	rootCmd.AddCommand(
		newGenerateCmd(a),
		newEchoCmd(a),
		newDiffCmd(a),
		newShowCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newConfigDirCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth, _ = flags.GetInt("max-depth")
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, _ := flags.GetString("format")
	enc, err := value.ParseEncoding(format)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.encoding = enc
	a.logger = logging.New(level)
	slog.SetDefault(a.logger)
	a.logger.Debug("configuration loaded", "path", path, "max_depth", cfg.MaxDepth)
	return nil
}

// Execute builds the command tree and runs it.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
