// Package logging assembles the structured slog loggers used across montage.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes typed attribute helpers so pipeline code tags log
// lines with export IDs, phases, and frame counters in one consistent shape.
// A no-op logger is provided for tests and wiring code that cannot fail.
package logging
