package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"courier/internal/ipc"
)

const (
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				status, err := client.Status()
				if err != nil {
					return err
				}
				if asJSON {
					return writeJSON(cmd, status)
				}

				stdout := cmd.OutOrStdout()
				colorize := shouldColorize(stdout)

				fmt.Fprintln(stdout, statusLine("Daemon running", yesNo(status.Running), status.Running, colorize))
				fmt.Fprintf(stdout, "PID:                %d\n", status.PID)
				fmt.Fprintf(stdout, "Config:             %s\n", status.ConfigPath)
				fmt.Fprintf(stdout, "Lock file:          %s\n", status.LockFilePath)
				fmt.Fprintln(stdout, statusLine("Notifications", yesNo(status.NotificationsEnabled), status.NotificationsEnabled, colorize))
				fmt.Fprintf(stdout, "Webhooks:           %d (%d enabled)\n", status.WebhookCount, status.EnabledWebhookCount)
				fmt.Fprintf(stdout, "Dispatches:         %s\n", strconv.FormatUint(status.DispatchesTotal, 10))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit JSON instead of text")
	return cmd
}

func statusLine(label, value string, ok, colorize bool) string {
	if colorize {
		color := ansiYellow
		if ok {
			color = ansiGreen
		}
		value = color + value + ansiReset
	}
	return fmt.Sprintf("%-19s %s", label+":", value)
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
