package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ngmaloney/divebot/internal/config"
	"github.com/ngmaloney/divebot/internal/observability"
)

// app carries what every subcommand needs after configuration is loaded
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	var cfgFile string
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "divebot",
		Short: "Tide, water temperature and weather reports for dive sites",
		Long: `DiveBot resolves a "City, State" dive site to the nearest NOAA station,
reports today's tides and water temperature, and coordinates guided-dive
requests for a community chat channel.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := config.New(cfgFile)
			if err != nil {
				return err
			}
			if err := bindFlags(v, cmd); err != nil {
				return err
			}
			cfg, err := config.Load(v)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			a.cfg = cfg
			a.logger = observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.divebot.yaml)")
	rootCmd.PersistentFlags().String("stations-dir", "", "directory holding the station snapshots")
	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "log format (text or json)")

	rootCmd.AddCommand(
		newReportCmd(a),
		newWeatherCmd(a),
		newRefreshCmd(a),
		newServeCmd(a),
		newTUICmd(a),
		newGuideCmd(a),
	)
	return rootCmd
}

// bindFlags lets explicitly set flags override file and env settings
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"stations-dir": "stations.dir",
		"log-level":    "log.level",
		"log-format":   "log.format",
		"addr":         "http.addr",
		"webhook-url":  "relay.webhook_url",
	}
	for flag, key := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", flag, err)
		}
	}
	return nil
}

func printErr(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
