package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/mizodict/internal/app"
	"github.com/at-ishikawa/mizodict/internal/connectivity"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the remote translation service once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(a *app.App) error {
				timeout := a.Config.Translation.ProbeTimeout
				if timeout <= 0 {
					timeout = connectivity.DefaultTimeout
				}
				ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
				defer cancel()

				status, err := a.Client.Status(ctx)
				printStatus(cmd.OutOrStdout(), a.Config.Translation.BaseURL, status, err)
				return nil
			})
		},
	}
}
