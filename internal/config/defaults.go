package config

const (
	defaultStagingDir = "~/.local/share/montage/staging"
	defaultOutputDir  = "~/Videos/montage"
	defaultLogDir     = "~/.local/share/montage/logs"
)

// Default returns the repository defaults. Paths are in their unexpanded
// form; Load normalizes them.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			OutputDir:  defaultOutputDir,
			LogDir:     defaultLogDir,
		},
		FFmpeg: FFmpeg{
			Binary:             "ffmpeg",
			ProbeBinary:        "ffprobe",
			SeekTimeoutSeconds: 10,
		},
		Export: Export{
			SampleRate:     44100,
			Channels:       2,
			FPS:            30,
			Format:         "mp4",
			Encoder:        "libx264",
			Quality:        23,
			MinFreeGiB:     2,
			StaleAfterDays: 3,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
