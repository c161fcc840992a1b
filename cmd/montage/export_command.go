package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"montage/internal/export"
	"montage/internal/preflight"
	"montage/internal/textutil"
	"montage/internal/timeline"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var settings export.Settings
	var quiet bool
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "export <project.json>",
		Short: "Render a timeline project into a container file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger(quiet || isTerminal())
			if err != nil {
				return err
			}

			tl, err := timeline.Load(args[0])
			if err != nil {
				return err
			}
			if settings.ProjectName == "" {
				if tl.Name != "" {
					settings.ProjectName = tl.Name
				} else {
					settings.ProjectName = textutil.DeriveTitle(args[0])
				}
			}

			if !skipPreflight {
				if failed := preflight.Failed(preflight.RunAll(cfg)); len(failed) > 0 {
					for _, result := range failed {
						fmt.Fprintf(cmd.ErrOrStderr(), "preflight: %s: %s\n", result.Name, result.Detail)
					}
					return fmt.Errorf("%d preflight check(s) failed", len(failed))
				}
			}

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			onProgress := newProgressPrinter(cmd, quiet)
			orchestrator := export.New(cfg, store, logger)
			output, err := orchestrator.Run(runCtx, tl, settings, onProgress)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&settings.OutputPath, "output", "o", "", "Output file path (overrides the derived name)")
	cmd.Flags().StringVar(&settings.ProjectName, "name", "", "Project name used for the output file")
	cmd.Flags().StringVar(&settings.Format, "format", "", "Container format (mp4, webm, mov, mkv, avi)")
	cmd.Flags().StringVar(&settings.Encoder, "encoder", "", "Video encoder (libx264, libvpx-vp9, libvpx, mpeg4)")
	cmd.Flags().IntVar(&settings.Quality, "quality", 0, "Quality (CRF scale, lower is better)")
	cmd.Flags().Float64Var(&settings.FPS, "fps", 0, "Output frame rate")
	cmd.Flags().IntVar(&settings.Width, "width", 0, "Render width in pixels (defaults to the project canvas)")
	cmd.Flags().IntVar(&settings.Height, "height", 0, "Render height in pixels")
	cmd.Flags().StringVar(&settings.ResumeJobID, "resume", "", "Resume an interrupted export by job ID")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks")

	return cmd
}

// newProgressPrinter renders a live bar on a terminal and plain phase lines
// otherwise.
func newProgressPrinter(cmd *cobra.Command, quiet bool) func(export.Progress) {
	if quiet {
		return func(export.Progress) {}
	}
	if !isTerminal() {
		var lastPhase export.Phase
		return func(p export.Progress) {
			if p.Phase == lastPhase && p.Phase != export.PhaseError {
				return
			}
			lastPhase = p.Phase
			if p.Err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "phase %s: %v\n", p.Phase, p.Err)
				return
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "phase %s (%.0f%%)\n", p.Phase, p.Percent)
		}
	}

	bar := progressbar.NewOptions(100,
		progressbar.OptionSetDescription("preparing"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionThrottle(100*time.Millisecond),
	)
	return func(p export.Progress) {
		description := string(p.Phase)
		if p.Phase == export.PhaseRendering && p.TotalFrames > 0 {
			description = fmt.Sprintf("rendering %d/%d", p.CurrentFrame, p.TotalFrames)
			if p.ETA > 0 {
				description += fmt.Sprintf(" (eta %s)", p.ETA.Truncate(time.Second))
			}
		}
		bar.Describe(description)
		_ = bar.Set(int(p.Percent))
		if p.Phase == export.PhaseComplete || p.Phase == export.PhaseError {
			_ = bar.Finish()
			fmt.Fprintln(cmd.ErrOrStderr())
		}
	}
}

func isTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatDuration(d time.Duration) string {
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return fmt.Sprintf("%dd", int(d.Hours()/24))
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}
