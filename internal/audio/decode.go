package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"montage/internal/media/ffprobe"
	"montage/internal/services"
)

// FFmpegDecoder decodes a source's first audio stream to an in-memory Buffer
// by piping signed 16-bit little-endian PCM out of ffmpeg.
type FFmpegDecoder struct {
	Binary      string
	ProbeBinary string
}

// NewFFmpegDecoder builds a decoder around the given ffmpeg and ffprobe
// binaries. Empty values fall back to the binaries on PATH.
func NewFFmpegDecoder(binary, probeBinary string) *FFmpegDecoder {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(probeBinary) == "" {
		probeBinary = "ffprobe"
	}
	return &FFmpegDecoder{Binary: binary, ProbeBinary: probeBinary}
}

// DecodeAudio returns the complete first audio stream of source at its native
// sample rate and channel count.
func (d *FFmpegDecoder) DecodeAudio(ctx context.Context, source string) (*Buffer, error) {
	result, err := ffprobe.Inspect(ctx, d.ProbeBinary, source)
	if err != nil {
		return nil, services.Wrap(services.ErrMediaLoad, "audio", "probe", source, err)
	}
	stream, ok := result.FirstAudioStream()
	if !ok {
		return nil, services.Wrap(services.ErrMediaLoad, "audio", "probe", fmt.Sprintf("%s has no audio stream", source), nil)
	}
	rate := stream.SampleRateHz()
	if rate <= 0 {
		rate = 44100
	}
	channels := stream.Channels
	if channels <= 0 {
		channels = 2
	}

	cmd := exec.CommandContext(ctx, d.Binary,
		"-v", "error",
		"-i", source,
		"-map", "0:a:0",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", strconv.Itoa(channels),
		"-",
	)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = source
		}
		return nil, services.Wrap(services.ErrMediaLoad, "audio", "decode", detail, err)
	}
	return DecodePCM16(stdout.Bytes(), rate, channels), nil
}
