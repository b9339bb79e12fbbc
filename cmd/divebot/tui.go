package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ngmaloney/divebot/internal/observability"
	"github.com/ngmaloney/divebot/internal/ui"
)

func newTUICmd(a *app) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Interactive terminal UI for tide reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logging to the terminal would corrupt the UI
			logger := observability.DiscardLogger()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				logger = observability.NewLoggerTo(f, a.cfg.LogLevel, a.cfg.LogFormat)
			}

			a.logger = logger
			store, err := a.loadStore(nil)
			if err != nil {
				return err
			}

			return runTUI(a.diveService(store, logger, nil), logger)
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs to this file")
	return cmd
}

func runTUI(reporter ui.Reporter, logger *slog.Logger) error {
	p := tea.NewProgram(ui.NewModel(reporter), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "error", err)
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}
