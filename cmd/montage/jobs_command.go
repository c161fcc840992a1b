package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"montage/internal/jobstore"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "List recorded export jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			jobs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No export jobs recorded")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				rows = append(rows, []string{
					truncateString(job.ID, 12),
					truncateString(job.Project, 24),
					string(job.Status),
					job.Phase,
					fmt.Sprintf("%.0f%%", job.Progress),
					fmt.Sprintf("%d", len(job.Warnings)),
					formatDuration(time.Since(job.CreatedAt).Truncate(time.Minute)),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Job", "Project", "Status", "Phase", "Progress", "Warnings", "Age"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of jobs to show (0 = all)")
	cmd.AddCommand(newJobsShowCommand(ctx))

	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <job-id>",
		Short: "Show one export job in detail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			job, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printJob(cmd, job)
			return nil
		},
	}
}

func printJob(cmd *cobra.Command, job *jobstore.Job) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Job:      %s\n", job.ID)
	fmt.Fprintf(out, "Project:  %s\n", job.Project)
	fmt.Fprintf(out, "Output:   %s\n", job.OutputPath)
	fmt.Fprintf(out, "Status:   %s (phase %s, %.0f%%)\n", job.Status, job.Phase, job.Progress)
	if job.TotalFrames > 0 {
		fmt.Fprintf(out, "Frames:   %d/%d\n", job.CurrentFrame, job.TotalFrames)
	}
	fmt.Fprintf(out, "Created:  %s\n", job.CreatedAt.Local().Format(time.RFC1123))
	fmt.Fprintf(out, "Updated:  %s\n", job.UpdatedAt.Local().Format(time.RFC1123))
	if job.ErrorMessage != "" {
		fmt.Fprintf(out, "Error:    %s\n", job.ErrorMessage)
	}
	if len(job.Warnings) > 0 {
		fmt.Fprintln(out, "Warnings:")
		for _, warning := range job.Warnings {
			fmt.Fprintf(out, "  - %s\n", warning)
		}
	}
}
