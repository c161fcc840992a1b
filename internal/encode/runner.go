package encode

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"montage/internal/audio"
	"montage/internal/logging"
	"montage/internal/services"
)

// Job describes one mux: a staged frame sequence plus the audio schedule.
type Job struct {
	FramePattern string // e.g. staging/frames/frame_%06d.png
	FrameCount   int
	Clips        []audio.ClipSchedule
	Duration     float64
	OutputPath   string
}

// Runner invokes ffmpeg to encode a job.
type Runner struct {
	settings Settings
	logger   *slog.Logger
}

// NewRunner builds a runner with normalized, validated settings.
func NewRunner(settings Settings, logger *slog.Logger) (*Runner, error) {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{settings: settings, logger: logger}, nil
}

// Run encodes the job, reporting encoded frame counts through onProgress.
// A non-zero ffmpeg exit is fatal and the partial output must not be used.
func (r *Runner) Run(ctx context.Context, job Job, onProgress func(frame, total int)) error {
	args := r.buildArgs(job)
	r.logger.Debug("starting encoder",
		logging.String("binary", r.settings.Binary),
		logging.String("output", job.OutputPath),
		logging.Int("frames", job.FrameCount))

	cmd := exec.CommandContext(ctx, r.settings.Binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return services.Wrap(services.ErrEncode, "encoding", "pipe", "", err)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return services.Wrap(services.ErrEncode, "encoding", "start", "", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		if frame, ok := parseProgressFrame(scanner.Text()); ok && onProgress != nil {
			if frame > job.FrameCount {
				frame = job.FrameCount
			}
			onProgress(frame, job.FrameCount)
		}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		detail := strings.TrimSpace(stderr.String())
		if len(detail) > 500 {
			detail = detail[len(detail)-500:]
		}
		return services.Wrap(services.ErrEncode, "encoding", "mux", detail, err)
	}
	if onProgress != nil {
		onProgress(job.FrameCount, job.FrameCount)
	}
	return nil
}

// buildArgs assembles the full ffmpeg invocation: frame sequence input,
// one input per audio clip, the mixer-equivalent filter graph, and the
// container/encoder pair.
func (r *Runner) buildArgs(job Job) []string {
	s := r.settings
	args := []string{
		"-y", "-v", "error",
		"-nostats", "-progress", "pipe:1",
		"-framerate", strconv.FormatFloat(s.FPS, 'f', -1, 64),
		"-i", job.FramePattern,
	}
	for _, clip := range job.Clips {
		args = append(args, "-i", clip.Source)
	}

	graph, pad := buildFilterGraph(job.Clips, s.SampleRate, s.Channels)
	if graph != "" {
		args = append(args,
			"-filter_complex", graph,
			"-map", "0:v",
			"-map", pad,
			"-c:a", s.audioCodec(),
			"-ar", strconv.Itoa(s.SampleRate),
			"-ac", strconv.Itoa(s.Channels),
		)
	} else {
		args = append(args, "-map", "0:v", "-an")
	}

	args = append(args, "-c:v", s.Encoder)
	args = append(args, s.qualityArgs()...)
	args = append(args, "-pix_fmt", "yuv420p")
	args = append(args, "-t", fmt.Sprintf("%.6f", job.Duration))
	args = append(args, job.OutputPath)
	return args
}

// parseProgressFrame reads one line of ffmpeg's -progress key=value stream.
func parseProgressFrame(line string) (int, bool) {
	value, found := strings.CutPrefix(strings.TrimSpace(line), "frame=")
	if !found {
		return 0, false
	}
	frame, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || frame < 0 {
		return 0, false
	}
	return frame, true
}
