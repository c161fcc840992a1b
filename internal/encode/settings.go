package encode

import (
	"fmt"
	"strings"

	"montage/internal/services"
)

// Settings configures one encode run.
type Settings struct {
	Binary     string
	Format     string
	Encoder    string
	Quality    int
	FPS        float64
	SampleRate int
	Channels   int
}

// containerEncoders lists the video encoders each container accepts, default
// first.
var containerEncoders = map[string][]string{
	"mp4":  {"libx264", "mpeg4"},
	"mov":  {"libx264", "mpeg4"},
	"mkv":  {"libx264", "libvpx-vp9", "mpeg4"},
	"webm": {"libvpx-vp9", "libvpx"},
	"avi":  {"mpeg4", "libx264"},
}

// audioEncoders maps each container onto its audio codec.
var audioEncoders = map[string]string{
	"mp4":  "aac",
	"mov":  "aac",
	"mkv":  "aac",
	"avi":  "aac",
	"webm": "libopus",
}

// Normalize fills defaults and lowers enum fields.
func (s *Settings) Normalize() {
	if strings.TrimSpace(s.Binary) == "" {
		s.Binary = "ffmpeg"
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if s.Format == "" {
		s.Format = "mp4"
	}
	s.Encoder = strings.TrimSpace(s.Encoder)
	if s.Encoder == "" {
		if encoders, ok := containerEncoders[s.Format]; ok {
			s.Encoder = encoders[0]
		}
	}
	if s.Quality <= 0 {
		s.Quality = 23
	}
	if s.FPS <= 0 {
		s.FPS = 30
	}
	if s.SampleRate <= 0 {
		s.SampleRate = 44100
	}
	if s.Channels <= 0 {
		s.Channels = 2
	}
}

// Validate rejects container/encoder pairs ffmpeg cannot mux.
func (s *Settings) Validate() error {
	encoders, ok := containerEncoders[s.Format]
	if !ok {
		return services.Wrap(services.ErrValidation, "encoding", "settings",
			fmt.Sprintf("unsupported container %q", s.Format), nil)
	}
	for _, enc := range encoders {
		if enc == s.Encoder {
			return nil
		}
	}
	return services.Wrap(services.ErrValidation, "encoding", "settings",
		fmt.Sprintf("encoder %q cannot mux into %q (accepted: %s)",
			s.Encoder, s.Format, strings.Join(encoders, ", ")), nil)
}

func (s *Settings) audioCodec() string {
	if codec, ok := audioEncoders[s.Format]; ok {
		return codec
	}
	return "aac"
}

// qualityArgs returns the encoder-appropriate rate control flags.
func (s *Settings) qualityArgs() []string {
	switch s.Encoder {
	case "libx264":
		return []string{"-crf", fmt.Sprintf("%d", s.Quality), "-preset", "medium"}
	case "libvpx", "libvpx-vp9":
		return []string{"-crf", fmt.Sprintf("%d", s.Quality), "-b:v", "0"}
	case "mpeg4":
		// mpeg4 has no CRF; fold the 0-51 scale onto its 1-31 qscale.
		q := 1 + s.Quality*30/51
		if q > 31 {
			q = 31
		}
		return []string{"-q:v", fmt.Sprintf("%d", q)}
	default:
		return []string{"-crf", fmt.Sprintf("%d", s.Quality)}
	}
}
