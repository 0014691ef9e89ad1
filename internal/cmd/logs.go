package cmd

import (
	"fmt"
	"time"

	"github.com/Iron-Ham/evolution/internal/config"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/spf13/cobra"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View shell logs",
	Long: `View and filter the shell's debug log, including rotated backups.

Examples:
  # Show the last 50 entries
  evolution logs

  # Warnings and errors from the last hour
  evolution logs --level warn --since 1h

  # Everything the view-state machine logged
  evolution logs --component viewstate -n 0`,
	RunE: runLogs,
}

var (
	logsTail      int
	logsLevel     string
	logsSince     string
	logsSessionID string
	logsComponent string
	logsGrep      string
	logsJSON      bool
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show logs since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Filter by sensor session ID")
	logsCmd.Flags().StringVar(&logsComponent, "component", "", "Filter by component (shell, catalog, attach, viewstate, tui)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries whose message contains this text")
	logsCmd.Flags().BoolVar(&logsJSON, "json", false, "Output as JSON")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	dir := cfg.State.ResolveDir()

	filter := logging.LogFilter{
		Level:           logsLevel,
		SessionID:       logsSessionID,
		Component:       logsComponent,
		MessageContains: logsGrep,
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid --since duration: %w", err)
		}
		filter.Since = time.Now().Add(-d)
	}

	entries, err := logging.ReadLogs(dir)
	if err != nil {
		return err
	}
	entries = logging.FilterLogs(entries, filter)
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if logsJSON {
		return logging.WriteJSON(cmd.OutOrStdout(), entries)
	}
	return logging.WriteText(cmd.OutOrStdout(), entries)
}
