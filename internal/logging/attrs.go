package logging

import (
	"log/slog"
	"time"
)

// Standard attribute keys shared across the pipeline.
const (
	FieldComponent       = "component"
	FieldExportID        = "export_id"
	FieldPhase           = "phase"
	FieldFrame           = "frame"
	FieldTotalFrames     = "total_frames"
	FieldBatch           = "batch"
	FieldSource          = "source"
	FieldTrack           = "track"
	FieldItem            = "item"
	FieldProgressPercent = "progress_percent"
	FieldProgressETA     = "progress_eta"
)

type Attr = slog.Attr

func Any(key string, value any) Attr { return slog.Any(key, value) }

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Float64(key string, value float64) Attr { return slog.Float64(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Int64(key string, value int64) Attr { return slog.Int64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(noopHandler{})
}

// NewComponentLogger tags a logger with a standardized component attribute.
// A nil base falls back to the no-op logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}
