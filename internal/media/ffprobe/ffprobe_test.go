package ffprobe

import (
	"math"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", Width: 1920, Height: 1080, AvgFrameRate: "30000/1001"},
			{CodecType: "audio", SampleRate: "48000", Channels: 2},
			{CodecType: "audio", SampleRate: "44100", Channels: 1},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}

	video, ok := result.FirstVideoStream()
	if !ok || video.Width != 1920 {
		t.Fatalf("unexpected first video stream: %+v ok=%v", video, ok)
	}
	if fps := video.FrameRate(); math.Abs(fps-29.97) > 0.01 {
		t.Fatalf("unexpected frame rate: %v", fps)
	}

	audio, ok := result.FirstAudioStream()
	if !ok || audio.SampleRateHz() != 48000 {
		t.Fatalf("unexpected first audio stream: %+v ok=%v", audio, ok)
	}
}

func TestStreamHelpersHandleInvalidNumbers(t *testing.T) {
	stream := Stream{SampleRate: "nope", AvgFrameRate: "0/0"}
	if stream.SampleRateHz() != 0 {
		t.Fatalf("expected sample rate 0, got %d", stream.SampleRateHz())
	}
	if stream.FrameRate() != 0 {
		t.Fatalf("expected frame rate 0, got %v", stream.FrameRate())
	}

	result := Result{Format: Format{Duration: "bad", Size: "-1"}}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
}
