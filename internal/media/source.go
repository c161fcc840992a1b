package media

import (
	"strings"

	"montage/internal/media/ffprobe"
)

// Kind classifies a probed source.
type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

// Info holds the probed metadata the renderer needs from one source.
type Info struct {
	Path      string
	Kind      Kind
	Duration  float64
	Width     int
	Height    int
	FrameRate float64
	HasAudio  bool
}

var imageFormats = []string{"image2", "png_pipe", "jpeg_pipe", "webp_pipe", "bmp_pipe", "tiff_pipe"}

func classify(result ffprobe.Result) Kind {
	if result.VideoStreamCount() == 0 {
		return KindAudio
	}
	format := strings.ToLower(result.Format.FormatName)
	for _, name := range imageFormats {
		if strings.Contains(format, name) {
			return KindImage
		}
	}
	return KindVideo
}

func infoFromProbe(path string, result ffprobe.Result) *Info {
	info := &Info{
		Path:     path,
		Kind:     classify(result),
		Duration: result.DurationSeconds(),
		HasAudio: result.AudioStreamCount() > 0,
	}
	if stream, ok := result.FirstVideoStream(); ok {
		info.Width = stream.Width
		info.Height = stream.Height
		info.FrameRate = stream.FrameRate()
	}
	return info
}
