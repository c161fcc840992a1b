package config

import (
	"fmt"
	"strings"
)

var validFormats = map[string]bool{
	"mp4":  true,
	"webm": true,
	"mov":  true,
	"mkv":  true,
	"avi":  true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks required values and enumerations. Normalization must run
// first so the checks see expanded paths and lowered enum strings.
func (c *Config) Validate() error {
	var problems []string

	if c.Paths.StagingDir == "" {
		problems = append(problems, "paths.staging_dir is required")
	}
	if c.Paths.OutputDir == "" {
		problems = append(problems, "paths.output_dir is required")
	}
	if !validFormats[c.Export.Format] {
		problems = append(problems, fmt.Sprintf("export.format %q is not supported", c.Export.Format))
	}
	if c.Export.FPS > 240 {
		problems = append(problems, fmt.Sprintf("export.fps %.1f exceeds 240", c.Export.FPS))
	}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, fmt.Sprintf("logging.level %q is not a known level", c.Logging.Level))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
