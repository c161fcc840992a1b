package audio

import (
	"context"
	"errors"
	"math"
	"testing"

	"montage/internal/timeline"
)

type stubDecoder struct {
	buffers map[string]*Buffer
	err     error
}

func (d *stubDecoder) DecodeAudio(_ context.Context, source string) (*Buffer, error) {
	if d.err != nil {
		return nil, d.err
	}
	buf, ok := d.buffers[source]
	if !ok {
		return nil, errors.New("unknown source")
	}
	return buf, nil
}

func constantBuffer(rate, channels, frames int, level float64) *Buffer {
	buf := NewBuffer(rate, channels, frames)
	for i := range buf.Data {
		buf.Data[i] = level
	}
	return buf
}

func TestMixPlacesClipWithOffset(t *testing.T) {
	// 6s source at 48kHz; clip plays [2,5) from source offset 1s.
	dec := &stubDecoder{buffers: map[string]*Buffer{
		"voice.wav": constantBuffer(48000, 2, 6*48000, 0.5),
	}}
	m := NewMixer(dec, 44100, 2, nil)

	it := &timeline.Item{
		Type:     timeline.ItemAudio,
		Source:   "voice.wav",
		Start:    2,
		Duration: 3,
		Offset:   1,
		Volume:   100,
	}
	res, err := m.Mix(context.Background(), []*timeline.Item{it}, 8)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	out := res.Buffer
	if out.Frames() != 8*44100 {
		t.Fatalf("frames = %d, want %d", out.Frames(), 8*44100)
	}

	sampleAt := func(sec float64) float64 {
		frame := int(sec * 44100)
		return out.Data[frame*2]
	}
	for _, sec := range []float64{0, 1, 1.9} {
		if v := sampleAt(sec); v != 0 {
			t.Fatalf("expected silence at %.1fs, got %v", sec, v)
		}
	}
	for _, sec := range []float64{2.1, 3.5, 4.9} {
		if v := sampleAt(sec); math.Abs(v-0.5) > 0.01 {
			t.Fatalf("expected clip level at %.1fs, got %v", sec, v)
		}
	}
	for _, sec := range []float64{5.1, 7.9} {
		if v := sampleAt(sec); v != 0 {
			t.Fatalf("expected silence after clip at %.1fs, got %v", sec, v)
		}
	}

	if len(res.Schedule) != 1 {
		t.Fatalf("schedule entries = %d, want 1", len(res.Schedule))
	}
	sched := res.Schedule[0]
	if sched.Start != 2 || sched.Offset != 1 || sched.Duration != 3 || sched.Gain != 1 {
		t.Fatalf("unexpected schedule: %+v", sched)
	}
}

func TestMixSumsOverlappingClipsWithGain(t *testing.T) {
	dec := &stubDecoder{buffers: map[string]*Buffer{
		"a.wav": constantBuffer(44100, 2, 2*44100, 0.4),
		"b.wav": constantBuffer(44100, 2, 2*44100, 0.4),
	}}
	m := NewMixer(dec, 44100, 2, nil)

	items := []*timeline.Item{
		{Type: timeline.ItemAudio, Source: "a.wav", Start: 0, Duration: 2, Volume: 100},
		{Type: timeline.ItemAudio, Source: "b.wav", Start: 1, Duration: 1, Volume: 50},
	}
	res, err := m.Mix(context.Background(), items, 2)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}

	solo := res.Buffer.Data[int(0.5*44100)*2]
	if math.Abs(solo-0.4) > 0.01 {
		t.Fatalf("solo region = %v, want 0.4", solo)
	}
	both := res.Buffer.Data[int(1.5*44100)*2]
	if math.Abs(both-0.6) > 0.01 {
		t.Fatalf("overlap region = %v, want 0.6 (no limiter)", both)
	}
}

func TestMixTruncatesClipAtSourceEnd(t *testing.T) {
	// Source is 1s but the clip asks for 3s past a 0.5s offset.
	dec := &stubDecoder{buffers: map[string]*Buffer{
		"short.wav": constantBuffer(44100, 2, 44100, 0.5),
	}}
	m := NewMixer(dec, 44100, 2, nil)

	it := &timeline.Item{Type: timeline.ItemAudio, Source: "short.wav", Start: 0, Duration: 3, Offset: 0.5, Volume: 100}
	res, err := m.Mix(context.Background(), []*timeline.Item{it}, 3)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	if len(res.Schedule) != 1 {
		t.Fatalf("schedule entries = %d, want 1", len(res.Schedule))
	}
	if got := res.Schedule[0].Duration; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("truncated duration = %v, want 0.5", got)
	}
	if v := res.Buffer.Data[int(0.75*44100)*2]; v != 0 {
		t.Fatalf("expected silence past source end, got %v", v)
	}
}

func TestMixSkipsFailedClipsWithWarning(t *testing.T) {
	dec := &stubDecoder{err: errors.New("decode blew up")}
	m := NewMixer(dec, 44100, 2, nil)

	it := &timeline.Item{Type: timeline.ItemAudio, Source: "broken.wav", Start: 0, Duration: 1, Volume: 100}
	res, err := m.Mix(context.Background(), []*timeline.Item{it}, 2)
	if err != nil {
		t.Fatalf("Mix() error = %v, want nil (failures are warnings)", err)
	}
	if len(res.Warnings) != 1 {
		t.Fatalf("warnings = %d, want 1", len(res.Warnings))
	}
	if res.Warnings[0].Source != "broken.wav" {
		t.Fatalf("warning source = %q", res.Warnings[0].Source)
	}
	for _, s := range res.Buffer.Data {
		if s != 0 {
			t.Fatal("expected silent output when the only clip fails")
		}
	}
}

func TestMixResamplesAndRemixesSources(t *testing.T) {
	dec := &stubDecoder{buffers: map[string]*Buffer{
		"mono22k.wav": constantBuffer(22050, 1, 22050, 0.3),
	}}
	m := NewMixer(dec, 44100, 2, nil)

	it := &timeline.Item{Type: timeline.ItemAudio, Source: "mono22k.wav", Start: 0, Duration: 1, Volume: 100}
	res, err := m.Mix(context.Background(), []*timeline.Item{it}, 1)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	mid := int(0.5*44100) * 2
	if math.Abs(res.Buffer.Data[mid]-0.3) > 0.01 || math.Abs(res.Buffer.Data[mid+1]-0.3) > 0.01 {
		t.Fatalf("expected mono source fanned to both channels at level 0.3, got %v/%v",
			res.Buffer.Data[mid], res.Buffer.Data[mid+1])
	}
}

func TestClipsHonorsMuteFlags(t *testing.T) {
	tl := &timeline.Timeline{
		Tracks: []*timeline.Track{
			{
				Type: timeline.TrackVideo,
				Items: []*timeline.Item{
					{Type: timeline.ItemVideo, Source: "a.mp4", Volume: 100},
					{Type: timeline.ItemVideo, Source: "b.mp4", Muted: true},
					{Type: timeline.ItemImage, Source: "c.png"},
				},
			},
			{
				Type:  timeline.TrackAudio,
				Muted: true,
				Items: []*timeline.Item{
					{Type: timeline.ItemAudio, Source: "d.wav", Volume: 100},
				},
			},
		},
	}
	clips := Clips(tl)
	if len(clips) != 1 || clips[0].Source != "a.mp4" {
		t.Fatalf("unexpected clips: %+v", clips)
	}
}
