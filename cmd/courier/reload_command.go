package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/ipc"
)

func newReloadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Reload the daemon configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Reload()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reloaded %s (%d webhook(s))\n", resp.ConfigPath, resp.WebhookCount)
				return nil
			})
		},
	}
}
