// Package main is the entry point for the SkyClock CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "skyclock",
		Short:   "SkyClock: sky-themed alarms, timer and stopwatch for the terminal",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			return runTUI(ctx, cfg)
		},
	}
	root.PersistentFlags().String("config", "", "path to skyclock.toml (default: search from the working directory)")
	root.SilenceUsage = true

	root.AddCommand(
		alarmCmd(),
		watchCmd(),
		timerCmd(),
		themeCmd(),
		historyCmd(),
		initCmd(),
	)

	return root
}

// signalContext returns a context that is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
