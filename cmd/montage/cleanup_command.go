package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"montage/internal/logging"
	"montage/internal/staging"
)

func newCleanupCommand(ctx *commandContext) *cobra.Command {
	var olderThanDays int

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove stale staging sessions and old job records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(true)
			if err != nil {
				return err
			}

			days := olderThanDays
			if days <= 0 {
				days = cfg.Export.StaleAfterDays
			}
			maxAge := time.Duration(days) * 24 * time.Hour
			out := cmd.OutOrStdout()

			result := staging.CleanStale(cfg.Paths.StagingDir, maxAge, logger)
			if len(result.Errors) > 0 {
				fmt.Fprintf(out, "Removed %d staging session(s), %d error(s)\n", len(result.Removed), len(result.Errors))
				for _, e := range result.Errors {
					fmt.Fprintf(out, "  Error: %s: %v\n", e.Path, e.Error)
				}
			} else {
				fmt.Fprintf(out, "Removed %d staging session(s)\n", len(result.Removed))
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()
			pruned, err := store.Prune(cmd.Context(), time.Now().Add(-maxAge))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pruned %d finished job record(s)\n", pruned)

			sessions, err := staging.ListSessions(cfg.Paths.StagingDir)
			if err != nil {
				return fmt.Errorf("list staging sessions: %w", err)
			}
			if len(sessions) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\nRemaining sessions:")
			rows := make([][]string, 0, len(sessions))
			for _, session := range sessions {
				state := "idle"
				if session.Locked {
					state = "active"
				}
				rows = append(rows, []string{
					truncateString(session.ID, 12),
					state,
					formatDuration(time.Since(session.ModTime).Truncate(time.Minute)),
					logging.FormatBytes(session.Size),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Session", "State", "Age", "Size"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&olderThanDays, "older-than", 0, "Age threshold in days (defaults to stale_after_days)")

	return cmd
}
