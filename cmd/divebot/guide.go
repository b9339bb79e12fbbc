package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ngmaloney/divebot/internal/database"
	"github.com/ngmaloney/divebot/internal/guides"
	"github.com/ngmaloney/divebot/internal/relay"
)

func newGuideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guide",
		Short: "Request guided dives and volunteer as a guide",
	}
	cmd.PersistentFlags().String("webhook-url", "", "chat webhook URL (overrides relay.webhook_url)")

	cmd.AddCommand(
		newGuideCreateCmd(a),
		newGuideToggleCmd(a),
		newGuideListCmd(a),
	)
	return cmd
}

// withGuides opens the database and runs fn with a guide service. Without a
// webhook, announcements go to the command output.
func withGuides(a *app, cmd *cobra.Command, fn func(*guides.Service) error) error {
	db, err := database.Open(a.cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	svc := guides.NewService(
		guides.NewRepository(db),
		relay.New(a.cfg.WebhookURL, cmd.OutOrStdout()),
		nil,
		a.logger,
		nil,
	)
	return fn(svc)
}

func newGuideCreateCmd(a *app) *cobra.Command {
	var requester, date, diveTime string

	cmd := &cobra.Command{
		Use:     "create LOCATION",
		Short:   "Request a guided dive at a location",
		Example: `  divebot guide create "Cathedral Rocks, MA" --requester alice --date Saturday --time 9am`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGuides(a, cmd, func(svc *guides.Service) error {
				req, _, err := svc.Create(cmd.Context(), requester, strings.Join(args, " "), date, diveTime)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "request id: %s\n", req.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&requester, "requester", os.Getenv("USER"), "who is requesting the dive")
	cmd.Flags().StringVar(&date, "date", "", "dive date")
	cmd.Flags().StringVar(&diveTime, "time", "", "dive time")
	return cmd
}

func newGuideToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle REQUEST_ID GUIDE",
		Short: "Volunteer as a guide for a request, or withdraw",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGuides(a, cmd, func(svc *guides.Service) error {
				res, err := svc.Toggle(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				action := "removed from"
				if res.Added {
					action = "added to"
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s request %s; guides: %s\n",
					args[1], action, res.Request.ID, strings.Join(res.Request.Guides, ", "))
				return nil
			})
		},
	}
}

func newGuideListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List guided-dive requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGuides(a, cmd, func(svc *guides.Service) error {
				requests, err := svc.List(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				for _, req := range requests {
					guidesText := "none yet"
					if len(req.Guides) > 0 {
						guidesText = strings.Join(req.Guides, ", ")
					}
					fmt.Fprintf(out, "%s  %s\n    guides: %s\n", req.ID, guides.Announcement(req), guidesText)
				}
				return nil
			})
		},
	}
}
