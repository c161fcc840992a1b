package export

import (
	"path/filepath"
	"strings"

	"montage/internal/config"
	"montage/internal/textutil"
)

// Settings selects the output target for one export. Zero fields fall back to
// the configured defaults.
type Settings struct {
	ProjectName string
	Format      string
	Encoder     string
	Quality     int
	FPS         float64
	Width       int
	Height      int
	Label       string // display label for the resolution, advisory
	UseGPU      bool   // advisory, the software pipeline ignores it
	OutputPath  string // overrides the derived output file location
	ResumeJobID string // continue a previously interrupted export
}

func (s *Settings) applyDefaults(cfg *config.Config) {
	if strings.TrimSpace(s.Format) == "" {
		s.Format = cfg.Export.Format
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if strings.TrimSpace(s.Encoder) == "" {
		s.Encoder = cfg.Export.Encoder
	}
	if s.Quality <= 0 {
		s.Quality = cfg.Export.Quality
	}
	if s.FPS <= 0 {
		s.FPS = cfg.Export.FPS
	}
}

// outputPath derives the container file location from the project name.
func (s *Settings) outputPath(cfg *config.Config, fallbackName string) string {
	if s.OutputPath != "" {
		return s.OutputPath
	}
	name := s.ProjectName
	if strings.TrimSpace(name) == "" {
		name = fallbackName
	}
	return filepath.Join(cfg.Paths.OutputDir, textutil.SanitizeToken(name)+"."+s.Format)
}
