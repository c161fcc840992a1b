package encode

import (
	"errors"
	"strings"
	"testing"

	"montage/internal/audio"
	"montage/internal/services"
)

func TestNormalizePicksContainerDefaultEncoder(t *testing.T) {
	cases := []struct {
		format string
		want   string
	}{
		{"mp4", "libx264"},
		{"webm", "libvpx-vp9"},
		{"avi", "mpeg4"},
		{"", "libx264"}, // empty format defaults to mp4
	}
	for _, tc := range cases {
		s := Settings{Format: tc.format}
		s.Normalize()
		if s.Encoder != tc.want {
			t.Fatalf("format %q default encoder = %q, want %q", tc.format, s.Encoder, tc.want)
		}
	}
}

func TestValidateRejectsMismatchedEncoder(t *testing.T) {
	s := Settings{Format: "webm", Encoder: "libx264"}
	s.Normalize()
	err := s.Validate()
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	ok := Settings{Format: "webm", Encoder: "libvpx"}
	ok.Normalize()
	if err := ok.Validate(); err != nil {
		t.Fatalf("vp8 in webm should validate, got %v", err)
	}
}

func TestBuildFilterGraphMatchesSchedule(t *testing.T) {
	clips := []audio.ClipSchedule{
		{Source: "voice.wav", Start: 2, Offset: 1, Duration: 3, Gain: 1},
		{Source: "music.mp3", Start: 0, Offset: 0, Duration: 10, Gain: 0.5},
	}
	graph, pad := buildFilterGraph(clips, 44100, 2)
	if pad != "[aout]" {
		t.Fatalf("pad = %q", pad)
	}
	for _, fragment := range []string{
		"[1:a]atrim=start=1.000000:end=4.000000",
		"volume=1.000000",
		"adelay=2000:all=1[a0]",
		"[2:a]atrim=start=0.000000:end=10.000000",
		"volume=0.500000",
		"adelay=0:all=1[a1]",
		"[a0][a1]amix=inputs=2:duration=longest:normalize=0[aout]",
		"aformat=channel_layouts=stereo",
	} {
		if !strings.Contains(graph, fragment) {
			t.Fatalf("graph missing %q:\n%s", fragment, graph)
		}
	}
}

func TestBuildFilterGraphEmpty(t *testing.T) {
	graph, pad := buildFilterGraph(nil, 44100, 2)
	if graph != "" || pad != "" {
		t.Fatalf("expected empty graph, got %q %q", graph, pad)
	}
}

func TestBuildArgsVideoOnly(t *testing.T) {
	r, err := NewRunner(Settings{Format: "mp4", FPS: 30}, nil)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	args := r.buildArgs(Job{
		FramePattern: "/tmp/frames/frame_%06d.png",
		FrameCount:   90,
		Duration:     3,
		OutputPath:   "/tmp/out.mp4",
	})
	joined := strings.Join(args, " ")
	for _, fragment := range []string{
		"-framerate 30",
		"-i /tmp/frames/frame_%06d.png",
		"-map 0:v -an",
		"-c:v libx264",
		"-crf 23",
		"-pix_fmt yuv420p",
		"-t 3.000000",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("args missing %q:\n%s", fragment, joined)
		}
	}
	if args[len(args)-1] != "/tmp/out.mp4" {
		t.Fatalf("output must be the final argument, got %q", args[len(args)-1])
	}
}

func TestBuildArgsWithAudioClips(t *testing.T) {
	r, err := NewRunner(Settings{Format: "webm", SampleRate: 48000, Channels: 2}, nil)
	if err != nil {
		t.Fatalf("NewRunner() error = %v", err)
	}
	args := r.buildArgs(Job{
		FramePattern: "f_%06d.png",
		FrameCount:   60,
		Duration:     2,
		OutputPath:   "out.webm",
		Clips: []audio.ClipSchedule{
			{Source: "a.wav", Duration: 2, Gain: 1},
		},
	})
	joined := strings.Join(args, " ")
	for _, fragment := range []string{
		"-i a.wav",
		"-filter_complex",
		"-map 0:v -map [aout]",
		"-c:a libopus",
		"-ar 48000",
		"-c:v libvpx-vp9",
		"-b:v 0",
	} {
		if !strings.Contains(joined, fragment) {
			t.Fatalf("args missing %q:\n%s", fragment, joined)
		}
	}
}

func TestParseProgressFrame(t *testing.T) {
	cases := []struct {
		line  string
		frame int
		ok    bool
	}{
		{"frame=42", 42, true},
		{"frame= 42 ", 42, true},
		{"fps=29.9", 0, false},
		{"frame=abc", 0, false},
		{"frame=-1", 0, false},
		{"progress=end", 0, false},
	}
	for _, tc := range cases {
		frame, ok := parseProgressFrame(tc.line)
		if frame != tc.frame || ok != tc.ok {
			t.Fatalf("parseProgressFrame(%q) = %d,%v want %d,%v", tc.line, frame, ok, tc.frame, tc.ok)
		}
	}
}

func TestMpeg4QualityMapsToQscale(t *testing.T) {
	s := Settings{Format: "avi", Encoder: "mpeg4", Quality: 51}
	s.Normalize()
	args := strings.Join(s.qualityArgs(), " ")
	if !strings.Contains(args, "-q:v 31") {
		t.Fatalf("expected qscale cap at 31, got %q", args)
	}
}
