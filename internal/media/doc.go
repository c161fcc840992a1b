// Package media loads timeline sources and serves decoded frames to the
// renderer.
//
// Key types:
//   - Info: probed source metadata (kind, duration, dimensions, frame rate)
//   - Cache: preloads sources and serves frames with per-batch eviction
//
// Video frames are extracted one at a time through ffmpeg. A seek that
// exceeds the configured timeout falls back to the last frame successfully
// decoded from the same source so a slow or damaged section degrades to a
// held frame instead of failing the export. Still images are decoded once at
// preload, downscaled when they exceed what the canvas can show, and survive
// batch eviction.
package media
