package timeline

import (
	"testing"

	"montage/internal/transition"
)

func TestParseNormalizesAndSorts(t *testing.T) {
	raw := []byte(`{
		"duration": 10,
		"canvas": {"width": 1280, "height": 720},
		"tracks": [{
			"id": "v1",
			"type": "video",
			"items": [
				{"id": "b", "type": "image", "src": "b.png", "start": 5, "duration": 5},
				{"id": "a", "type": "image", "src": "a.png", "start": 0, "duration": 5}
			]
		}]
	}`)
	tl, err := Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	items := tl.Tracks[0].Items
	if items[0].ID != "a" || items[1].ID != "b" {
		t.Fatalf("items not sorted by start: %s, %s", items[0].ID, items[1].ID)
	}
	if items[0].Transform.Opacity != 1 {
		t.Fatalf("opacity default = %v, want 1", items[0].Transform.Opacity)
	}
	if items[0].Transform.Width != 100 || items[0].Transform.Height != 100 {
		t.Fatalf("size defaults = %vx%v, want 100x100", items[0].Transform.Width, items[0].Transform.Height)
	}
	if items[0].Volume != 100 {
		t.Fatalf("volume default = %v, want 100", items[0].Volume)
	}
}

func TestValidateRejectsBareOverlap(t *testing.T) {
	tl := &Timeline{
		Duration: 10,
		Canvas:   Dimension{Width: 100, Height: 100},
		Tracks: []*Track{{
			ID:   "v1",
			Type: TrackVideo,
			Items: []*Item{
				{ID: "a", Type: ItemColor, Start: 0, Duration: 6},
				{ID: "b", Type: ItemColor, Start: 5, Duration: 5},
			},
		}},
	}
	tl.Normalize()
	if err := tl.Validate(); err == nil {
		t.Fatal("expected overlap error")
	}
}

func TestValidateAllowsOverlapInsideTransitionWindow(t *testing.T) {
	tl := &Timeline{
		Duration: 10,
		Canvas:   Dimension{Width: 100, Height: 100},
		Tracks: []*Track{{
			ID:   "v1",
			Type: TrackVideo,
			Items: []*Item{
				{ID: "a", Type: ItemColor, Start: 0, Duration: 6},
				{ID: "b", Type: ItemColor, Start: 5, Duration: 5,
					Transition: &transition.Spec{Type: transition.TypeFade, Duration: 1, Timing: transition.TimingPostfix}},
			},
		}},
	}
	tl.Normalize()
	if err := tl.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSourceTimeHonorsOffsetAndSpeed(t *testing.T) {
	it := &Item{Start: 2, Duration: 4, Offset: 1, Speed: 2}
	if got := it.SourceTime(3); got != 3 {
		t.Fatalf("source time = %v, want 3", got)
	}
	it.Speed = 0
	if got := it.SourceTime(3); got != 2 {
		t.Fatalf("source time at default speed = %v, want 2", got)
	}
}

func TestSourcesDeduplicates(t *testing.T) {
	tl := &Timeline{Tracks: []*Track{
		{Items: []*Item{{Source: "a.mp4"}, {Source: "b.mp3"}}},
		{Items: []*Item{{Source: "a.mp4"}, {Source: ""}}},
	}}
	got := tl.Sources()
	if len(got) != 2 || got[0] != "a.mp4" || got[1] != "b.mp3" {
		t.Fatalf("sources = %v", got)
	}
}

func TestHasAudio(t *testing.T) {
	cases := []struct {
		item Item
		want bool
	}{
		{Item{Type: ItemAudio}, true},
		{Item{Type: ItemVideo}, true},
		{Item{Type: ItemVideo, Muted: true}, false},
		{Item{Type: ItemImage}, false},
		{Item{Type: ItemText}, false},
	}
	for _, tc := range cases {
		if got := tc.item.HasAudio(); got != tc.want {
			t.Errorf("%s muted=%v: HasAudio = %v, want %v", tc.item.Type, tc.item.Muted, got, tc.want)
		}
	}
}
