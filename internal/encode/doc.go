// Package encode muxes staged frames and the timeline's audio clips into the
// final container through ffmpeg.
//
// The audio side reuses the mixer's per-clip schedule: each clip becomes an
// atrim/volume/adelay chain feeding one amix node with normalization off, so
// the encoder reproduces the exact trim/delay/sum timing of the in-process
// mix and the two can never drift apart.
//
// Progress comes from ffmpeg's machine-readable -progress stream, parsed
// line by line and forwarded as frame counts.
package encode
