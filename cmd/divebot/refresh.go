package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/divebot/internal/stations"
)

func newRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Download fresh NOAA station snapshots",
		Long: `Downloads the physocean (primary) and tidepredictions (general) station
lists from the NOAA metadata API into the stations directory, then loads them
to verify they parse.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refresher := stations.NewRefresher(a.cfg.MDAPIURL, a.logger)
			if err := refresher.Refresh(cmd.Context(), a.cfg.StationsDir); err != nil {
				return err
			}

			catalog, err := stations.LoadDir(a.cfg.StationsDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d primary and %d general stations into %s\n",
				len(catalog.Primary()), len(catalog.General()), a.cfg.StationsDir)
			return nil
		},
	}
}
