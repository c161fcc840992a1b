package config

import "strings"

func (c *Config) normalize() error {
	if err := c.Paths.normalize(); err != nil {
		return err
	}
	c.FFmpeg.normalize()
	c.Export.normalize()
	c.Logging.normalize()
	return nil
}

func (p *Paths) normalize() error {
	for _, field := range []*string{&p.StagingDir, &p.OutputDir, &p.LogDir, &p.FontPath} {
		trimmed := strings.TrimSpace(*field)
		if trimmed == "" {
			*field = ""
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return err
		}
		*field = expanded
	}
	return nil
}

func (f *FFmpeg) normalize() {
	f.Binary = strings.TrimSpace(f.Binary)
	f.ProbeBinary = strings.TrimSpace(f.ProbeBinary)
	if f.Binary == "" {
		f.Binary = "ffmpeg"
	}
	if f.ProbeBinary == "" {
		f.ProbeBinary = "ffprobe"
	}
	if f.SeekTimeoutSeconds <= 0 {
		f.SeekTimeoutSeconds = 10
	}
}

func (e *Export) normalize() {
	e.Format = strings.ToLower(strings.TrimSpace(e.Format))
	e.Encoder = strings.TrimSpace(e.Encoder)
	if e.Format == "" {
		e.Format = "mp4"
	}
	if e.Encoder == "" {
		e.Encoder = "libx264"
	}
	if e.SampleRate <= 0 {
		e.SampleRate = 44100
	}
	if e.Channels <= 0 {
		e.Channels = 2
	}
	if e.FPS <= 0 {
		e.FPS = 30
	}
	if e.Quality <= 0 {
		e.Quality = 23
	}
	if e.MinFreeGiB < 0 {
		e.MinFreeGiB = 0
	}
	if e.StaleAfterDays <= 0 {
		e.StaleAfterDays = 3
	}
}

func (l *Logging) normalize() {
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Format == "" {
		l.Format = "console"
	}
	if l.Level == "" {
		l.Level = "info"
	}
}
