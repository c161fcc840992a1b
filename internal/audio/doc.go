// Package audio builds the time-aligned multi-channel mix for an export.
//
// Every audio-bearing clip is decoded, resampled to the target rate when its
// native rate differs, trimmed to its [offset, offset+duration) window,
// scaled by its volume, and summed into one interleaved buffer spanning the
// whole timeline. The sum is additive with no limiter: overlapping loud clips
// can clip, which is an accepted trade-off rather than something silently
// corrected. A clip that fails to decode is skipped with a recorded warning;
// one bad asset never aborts the mix.
//
// The mixer also exposes the per-clip schedule (start, offset, duration,
// gain) so the encoder's filter graph can reproduce exactly the same timing.
package audio
