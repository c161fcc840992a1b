// Package timeline defines the immutable project model consumed by the render
// pipeline: tracks, clips, their transforms and styling, and the attached
// animation and transition specifications.
//
// A Timeline is a snapshot. Loading normalizes it (items sorted by start,
// values clamped into range) and validation enforces the structural rules the
// resolver and mixer rely on: clips on one track may overlap only across a
// declared transition window, and an audio clip never reads past the end of
// its source. Nothing in this package performs I/O beyond Load.
package timeline
