// Package services defines shared utilities consumed by the export pipeline
// and its external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp export IDs and phase names for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     so callers can tell user mistakes from tool and environment errors.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform across phases.
package services
