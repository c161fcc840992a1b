package audio

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"montage/internal/logging"
	"montage/internal/timeline"
)

// Decoder produces a clip's source audio at its native sample rate.
type Decoder interface {
	DecodeAudio(ctx context.Context, source string) (*Buffer, error)
}

// ClipSchedule is the timing the mixer applied to one clip. The encoder's
// filter graph consumes the same values so the in-process mix and the muxed
// output never drift apart.
type ClipSchedule struct {
	Source   string
	Start    float64
	Offset   float64
	Duration float64
	Gain     float64
}

// Warning records a clip that was skipped during mixing.
type Warning struct {
	Source string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("audio clip %s skipped: %v", w.Source, w.Err)
}

// Mixer sums every audio-bearing clip into one buffer.
type Mixer struct {
	decoder  Decoder
	rate     int
	channels int
	logger   *slog.Logger
}

// NewMixer builds a mixer producing interleaved output at the given rate and
// channel count.
func NewMixer(decoder Decoder, sampleRate, channels int, logger *slog.Logger) *Mixer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if channels <= 0 {
		channels = 2
	}
	return &Mixer{decoder: decoder, rate: sampleRate, channels: channels, logger: logger}
}

// Clips collects every audio-bearing item from the timeline: explicit audio
// clips plus un-muted video clips, honoring track mute flags.
func Clips(tl *timeline.Timeline) []*timeline.Item {
	var out []*timeline.Item
	for _, tr := range tl.Tracks {
		if tr.Muted {
			continue
		}
		for _, it := range tr.Items {
			if it.HasAudio() && it.Source != "" {
				out = append(out, it)
			}
		}
	}
	return out
}

// Result carries the mixed buffer plus the per-clip schedule and warnings.
type Result struct {
	Buffer   *Buffer
	Schedule []ClipSchedule
	Warnings []Warning
}

// Mix renders the complete mix for the timeline. The output always spans
// exactly [0, totalDuration): clips reaching past the end are truncated and
// gaps are silence. Decode failures are recorded and skipped.
func (m *Mixer) Mix(ctx context.Context, items []*timeline.Item, totalDuration float64) (*Result, error) {
	totalFrames := int(math.Round(totalDuration * float64(m.rate)))
	out := NewBuffer(m.rate, m.channels, totalFrames)
	res := &Result{Buffer: out}

	for _, it := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		sched, err := m.mixClip(ctx, it, out)
		if err != nil {
			m.logger.Warn("audio clip skipped",
				logging.String("source", it.Source),
				logging.Error(err))
			res.Warnings = append(res.Warnings, Warning{Source: it.Source, Err: err})
			continue
		}
		res.Schedule = append(res.Schedule, sched)
	}
	return res, nil
}

func (m *Mixer) mixClip(ctx context.Context, it *timeline.Item, out *Buffer) (ClipSchedule, error) {
	src, err := m.decoder.DecodeAudio(ctx, it.Source)
	if err != nil {
		return ClipSchedule{}, err
	}
	src = src.Resample(m.rate).ToChannels(m.channels)

	// Effective duration never reads past the source's end.
	available := src.Duration() - it.Offset
	if available <= 0 {
		return ClipSchedule{}, fmt.Errorf("offset %.3fs beyond source end (%.3fs)", it.Offset, src.Duration())
	}
	duration := it.Duration
	if duration > available {
		duration = available
	}

	gain := it.Volume / 100
	startFrame := int(math.Round(it.Start * float64(m.rate)))
	offsetFrame := int(math.Round(it.Offset * float64(m.rate)))
	clipFrames := int(math.Round(duration * float64(m.rate)))

	totalFrames := out.Frames()
	srcFrames := src.Frames()
	for f := 0; f < clipFrames; f++ {
		dst := startFrame + f
		if dst < 0 {
			continue
		}
		if dst >= totalFrames {
			break
		}
		srcIdx := offsetFrame + f
		if srcIdx >= srcFrames {
			break
		}
		for c := 0; c < m.channels; c++ {
			out.Data[dst*m.channels+c] += src.Data[srcIdx*m.channels+c] * gain
		}
	}

	return ClipSchedule{
		Source:   it.Source,
		Start:    it.Start,
		Offset:   it.Offset,
		Duration: duration,
		Gain:     gain,
	}, nil
}
