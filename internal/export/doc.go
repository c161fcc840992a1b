// Package export drives the full render pipeline for one timeline: preload,
// batched frame rendering with cache eviction, the global audio mix, the
// external encoder invocation, and staged artifact cleanup.
//
// An Orchestrator instance serves exactly one Run call at a time; nothing is
// shared between exports, so concurrent exports use separate orchestrators.
// Progress moves through the phases preparing, rendering, encoding,
// finalizing, and finally complete or error, with percent values that never
// decrease within a phase.
package export
