package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"courier/internal/ipc"
)

func newWebhooksCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "webhooks",
		Short: "List configured webhooks (credentials redacted)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Webhooks()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, resp)
				}

				stdout := cmd.OutOrStdout()
				fmt.Fprintf(stdout, "Webhook notifications enabled: %s\n", yesNo(resp.NotificationsEnabled))
				if len(resp.Webhooks) == 0 {
					fmt.Fprintln(stdout, "No webhooks configured")
					return nil
				}

				rows := make([][]string, 0, len(resp.Webhooks))
				for _, hook := range resp.Webhooks {
					rows = append(rows, []string{
						providerLabel(hook.Provider),
						yesNo(hook.Enabled),
						redactURL(hook.URL),
						credentialSummary(hook.HasUserKey, hook.HasAPIToken, hook.HasChatID),
					})
				}
				fmt.Fprintln(stdout, renderTable(
					[]string{"Provider", "Enabled", "URL", "Credentials"},
					rows,
				))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of a table")
	return cmd
}

func providerLabel(provider string) string {
	return cases.Title(language.English).String(strings.ToLower(provider))
}

func credentialSummary(userKey, apiToken, chatID bool) string {
	var parts []string
	if userKey {
		parts = append(parts, "user key")
	}
	if apiToken {
		parts = append(parts, "api token")
	}
	if chatID {
		parts = append(parts, "chat id")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
