package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"courier/internal/api"
	"courier/internal/ipc"
	"courier/internal/logging"
	"courier/internal/notify"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	var meta api.RequestMetadata
	var exitCode int64
	var direct bool

	cmd := &cobra.Command{
		Use:   "send TITLE MESSAGE",
		Short: "Send a notification to every enabled webhook",
		Long: `Send a notification through the running daemon, or dispatch it directly
from this process with --direct when no daemon is available.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.NotifyRequest{Title: args[0], Message: args[1]}
			if cmd.Flags().Changed("exit-code") {
				meta.ExitCode = &exitCode
			}
			if meta != (api.RequestMetadata{}) {
				req.Metadata = &meta
			}
			if err := req.Validate(); err != nil {
				return err
			}

			if direct {
				return sendDirect(ctx, cmd, req)
			}
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Notify(req); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Notification dispatched")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&direct, "direct", false, "Dispatch from this process instead of the daemon")
	cmd.Flags().StringVar(&meta.TaskID, "task-id", "", "Task UUID to attach")
	cmd.Flags().StringVar(&meta.TaskTitle, "task-title", "", "Task title to attach")
	cmd.Flags().StringVar(&meta.ProjectID, "project-id", "", "Project UUID to attach")
	cmd.Flags().StringVar(&meta.ProjectName, "project-name", "", "Project name to attach")
	cmd.Flags().StringVar(&meta.WorkspaceID, "workspace-id", "", "Workspace UUID to attach")
	cmd.Flags().StringVar(&meta.ExecutionID, "execution-id", "", "Execution UUID to attach")
	cmd.Flags().Int64Var(&exitCode, "exit-code", 0, "Process exit code to attach")
	return cmd
}

func sendDirect(ctx *commandContext, cmd *cobra.Command, req api.NotifyRequest) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	meta, err := req.NotifyMetadata()
	if err != nil {
		return err
	}

	settings := cfg.Notifications
	if !settings.WebhookNotificationsEnabled {
		fmt.Fprintln(cmd.OutOrStdout(), "Webhook notifications are disabled; nothing sent")
		return nil
	}
	enabled := 0
	for _, hook := range settings.Webhooks {
		if hook.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No enabled webhooks configured; nothing sent")
		return nil
	}

	store := notify.StaticSettings(settings)
	dispatcher := notify.NewDispatcher(store, cfg.HTTP, logging.NewNop(), nil)
	dispatcher.Send(cmd.Context(), req.Title, req.Message, meta)
	fmt.Fprintf(cmd.OutOrStdout(), "Notification dispatched to %d webhook(s)\n", enabled)
	return nil
}
