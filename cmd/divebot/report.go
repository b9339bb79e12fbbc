package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/divebot/internal/dive"
	"github.com/ngmaloney/divebot/internal/relay"
)

func newReportCmd(a *app) *cobra.Command {
	var withWeather, post bool

	cmd := &cobra.Command{
		Use:   "report LOCATION",
		Short: "Print the tide report for a dive site",
		Example: `  divebot report "Gloucester, MA"
  divebot report Key Largo FL --weather`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := strings.Join(args, " ")
			store, err := a.loadStore(nil)
			if err != nil {
				return err
			}
			svc := a.diveService(store, a.logger, nil)
			ctx := cmd.Context()

			var messages []string
			if withWeather {
				// A missing forecast never blocks the tide report
				if text, err := svc.Weather(ctx, location); err != nil {
					printErr("%s", dive.UserMessage(err, location))
				} else {
					messages = append(messages, text)
				}
			}

			res, err := svc.Report(ctx, location)
			if err != nil {
				printErr("%s", dive.UserMessage(err, location))
				return err
			}
			messages = append(messages, res.Text)
			a.logger.Debug("report station", "station", res.Station.ID, "distance_km", res.DistanceKm)

			out := relay.Relay(relay.NewWriterRelay(cmd.OutOrStdout()))
			if post {
				if a.cfg.WebhookURL == "" {
					return fmt.Errorf("--post needs relay.webhook_url")
				}
				out = relay.NewWebhookRelay(a.cfg.WebhookURL)
			}
			for _, msg := range messages {
				if err := out.Send(ctx, msg); err != nil {
					return fmt.Errorf("sending report: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withWeather, "weather", false, "include the NWS forecast")
	cmd.Flags().BoolVar(&post, "post", false, "post to the configured chat webhook instead of stdout")
	cmd.Flags().String("webhook-url", "", "chat webhook URL (overrides relay.webhook_url)")
	return cmd
}

func newWeatherCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather LOCATION",
		Short: "Print the current NWS forecast for a dive site",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			location := strings.Join(args, " ")
			store, err := a.loadStore(nil)
			if err != nil {
				return err
			}

			text, err := a.diveService(store, a.logger, nil).Weather(cmd.Context(), location)
			if err != nil {
				printErr("%s", dive.UserMessage(err, location))
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
