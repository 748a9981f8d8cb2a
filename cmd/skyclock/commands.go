package main

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.SkyClock/internal/alarm"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/config"
	"github.com/LISSConsulting/LISSTech.SkyClock/internal/store"
)

func alarmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alarm",
		Short: "Show and edit alarm presets",
	}

	cmd.AddCommand(alarmListCmd(), alarmSetCmd(), alarmRulesCmd())
	return cmd
}

func alarmListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List alarm presets with their next trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := openScheduler(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatPresets(s.Presets(), time.Now()))
			return nil
		},
	}
}

func alarmSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <daily|weekday|weekend> <HH:MM>",
		Short: "Set the time of an alarm preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := alarm.ParseClass(args[0])
			if err != nil {
				return err
			}
			tod, err := alarm.ParseTimeOfDay(args[1])
			if err != nil {
				return err
			}
			on, _ := cmd.Flags().GetBool("on")
			off, _ := cmd.Flags().GetBool("off")
			if on && off {
				return fmt.Errorf("--on and --off are mutually exclusive")
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := openScheduler(cfg)
			if err != nil {
				return err
			}
			enabled := s.Preset(class).Enabled
			switch {
			case on:
				enabled = true
			case off:
				enabled = false
			}
			if err := s.SetPreset(class, tod, enabled); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", s.Preset(class))
			return nil
		},
	}
	cmd.Flags().Bool("on", false, "enable the preset")
	cmd.Flags().Bool("off", false, "disable the preset")
	return cmd
}

func alarmRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the trigger rules generated from the enabled presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := openScheduler(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatRules(s.Rules(), time.Now()))
			return nil
		},
	}
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the alarm scheduler headless, reloading presets on change",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if backend, _ := cmd.Flags().GetString("backend"); backend != "" {
				cfg.Alarm.Backend = backend
				if err := cfg.Validate(); err != nil {
					return err
				}
			}
			registerQuitHandler()
			ctx, cancel := signalContext()
			defer cancel()
			return runWatch(ctx, cfg, clockwork.NewRealClock(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("backend", "", "alarm trigger backend: poll or calendar (default: config)")
	return cmd
}

func timerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer <duration>",
		Short: "Run a countdown in the terminal (e.g. 90, 1:30, 5m)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := parseTimerDuration(args[0])
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := signalContext()
			defer cancel()
			return runTimerCommand(ctx, cfg, seconds, cmd.OutOrStdout())
		},
	}
}

func themeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Print the sky theme for now or a given time of day",
		RunE: func(cmd *cobra.Command, args []string) error {
			at := time.Now()
			if s, _ := cmd.Flags().GetString("at"); s != "" {
				tod, err := alarm.ParseTimeOfDay(s)
				if err != nil {
					return err
				}
				at = time.Date(at.Year(), at.Month(), at.Day(), tod.Hour, tod.Minute, 0, 0, at.Location())
			}
			fmt.Fprint(cmd.OutOrStdout(), formatTheme(at, 48))
			return nil
		},
	}
	cmd.Flags().String("at", "", "time of day as HH:MM (default: now)")
	return cmd
}

func historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent alarm, timer and stopwatch events",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("lines")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			entries, err := store.Recent(cfg.History.Dir, n, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatHistory(entries, cfg.TUI.AccentColor))
			return nil
		},
	}
	cmd.Flags().IntP("lines", "n", 20, "number of entries to show (0 = all)")
	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold skyclock.toml, alarm presets and the history directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			if dir == "" {
				dir = config.DefaultDir()
			}
			created, err := config.Scaffold(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(created) == 0 {
				fmt.Fprintln(out, "All files already exist: nothing to create.")
				return nil
			}
			for _, path := range created {
				fmt.Fprintf(out, "Created %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().String("dir", "", "target directory (default: user config directory)")
	return cmd
}

// loadConfig loads and validates the configuration named by --config.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
