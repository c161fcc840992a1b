package audio

import (
	"encoding/binary"
	"math"
)

// Buffer holds interleaved samples in [-1, 1].
type Buffer struct {
	SampleRate int
	Channels   int
	Data       []float64
}

// NewBuffer allocates a silent buffer of the given frame count.
func NewBuffer(sampleRate, channels, frames int) *Buffer {
	return &Buffer{
		SampleRate: sampleRate,
		Channels:   channels,
		Data:       make([]float64, frames*channels),
	}
}

// Frames returns the per-channel sample count.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(b.Frames()) / float64(b.SampleRate)
}

// Resample converts the buffer to the target rate with linear interpolation.
// The result's frame count is the source count scaled by the rate ratio,
// rounded to the nearest frame, so a round trip preserves duration within one
// sample and never changes the channel count.
func (b *Buffer) Resample(rate int) *Buffer {
	if rate <= 0 || rate == b.SampleRate {
		return &Buffer{SampleRate: b.SampleRate, Channels: b.Channels, Data: append([]float64(nil), b.Data...)}
	}
	if b.Frames() == 0 {
		return &Buffer{SampleRate: rate, Channels: b.Channels}
	}
	srcFrames := b.Frames()
	ratio := float64(rate) / float64(b.SampleRate)
	dstFrames := int(math.Round(float64(srcFrames) * ratio))
	if dstFrames < 1 {
		dstFrames = 1
	}
	out := NewBuffer(rate, b.Channels, dstFrames)
	step := float64(srcFrames) / float64(dstFrames)
	for i := 0; i < dstFrames; i++ {
		pos := float64(i) * step
		i0 := int(pos)
		if i0 >= srcFrames-1 {
			i0 = srcFrames - 1
		}
		i1 := i0 + 1
		if i1 >= srcFrames {
			i1 = srcFrames - 1
		}
		frac := pos - float64(i0)
		for c := 0; c < b.Channels; c++ {
			s0 := b.Data[i0*b.Channels+c]
			s1 := b.Data[i1*b.Channels+c]
			out.Data[i*b.Channels+c] = s0 + (s1-s0)*frac
		}
	}
	return out
}

// ToChannels up- or down-mixes the buffer to the target channel count.
// Mono fans out; anything wider than the target averages down.
func (b *Buffer) ToChannels(channels int) *Buffer {
	if channels <= 0 || channels == b.Channels {
		return b
	}
	frames := b.Frames()
	out := NewBuffer(b.SampleRate, channels, frames)
	for i := 0; i < frames; i++ {
		if b.Channels == 1 {
			for c := 0; c < channels; c++ {
				out.Data[i*channels+c] = b.Data[i]
			}
			continue
		}
		if channels == 1 {
			sum := 0.0
			for c := 0; c < b.Channels; c++ {
				sum += b.Data[i*b.Channels+c]
			}
			out.Data[i] = sum / float64(b.Channels)
			continue
		}
		for c := 0; c < channels; c++ {
			out.Data[i*channels+c] = b.Data[i*b.Channels+c%b.Channels]
		}
	}
	return out
}

// DecodePCM16 builds a buffer from little-endian signed 16-bit PCM, the
// format ffmpeg emits for s16le.
func DecodePCM16(raw []byte, sampleRate, channels int) *Buffer {
	samples := len(raw) / 2
	out := &Buffer{SampleRate: sampleRate, Channels: channels, Data: make([]float64, samples)}
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[i*2:]))
		out.Data[i] = float64(v) / 32768
	}
	return out
}

// EncodePCM16 serializes the buffer to little-endian signed 16-bit PCM,
// clamping out-of-range samples at the integer boundary.
func (b *Buffer) EncodePCM16() []byte {
	out := make([]byte, len(b.Data)*2)
	for i, s := range b.Data {
		if s > 1 {
			s = 1
		}
		if s < -1 {
			s = -1
		}
		v := int16(math.Round(s * 32767))
		binary.LittleEndian.PutUint16(out[i*2:], uint16(v))
	}
	return out
}
