package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ichiban/backtrack/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath  string
	Verbose     bool
	Interactive bool
	Timeout     time.Duration
	Unknown     string

	config config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command of bt.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "bt",
		Short:        "bt - a backtracking logic kernel",
		Long:         "Runs member/2 and append/3 queries and prints their solutions one by one.",
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Load(opts.ConfigPath)
			if err != nil {
				return err
			}
			if f := cmd.Flags().Lookup("timeout"); f != nil && f.Changed {
				c.Timeout = opts.Timeout
			}
			if f := cmd.Flags().Lookup("unknown"); f != nil && f.Changed {
				c.Unknown = opts.Unknown
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			opts.config = c

			level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
			if opts.Verbose {
				level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			opts.logger = zap.New(zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(cmd.ErrOrStderr()),
				level,
			))
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "trace every call, exit, fail, and redo")
	cmd.PersistentFlags().BoolVarP(&opts.Interactive, "interactive", "i", false, "ask before looking for the next solution")
	cmd.PersistentFlags().DurationVar(&opts.Timeout, "timeout", 0, "abort a query after this duration (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.Unknown, "unknown", "", "unknown procedure policy: error, fail, or warning (overrides config)")

	cmd.AddCommand(NewDemoCommand(opts))
	cmd.AddCommand(NewMemberCommand(opts))
	cmd.AddCommand(NewAppendCommand(opts))

	return cmd
}
