package timeline

import (
	"sort"

	"montage/internal/anim"
	"montage/internal/transition"
)

// TrackType classifies a track.
type TrackType string

const (
	TrackVideo   TrackType = "video"
	TrackAudio   TrackType = "audio"
	TrackOverlay TrackType = "overlay"
)

// ItemType classifies a placed clip.
type ItemType string

const (
	ItemVideo ItemType = "video"
	ItemImage ItemType = "image"
	ItemText  ItemType = "text"
	ItemColor ItemType = "color"
	ItemAudio ItemType = "audio"
)

// FitMode controls how a background item fills the canvas.
type FitMode string

const (
	FitCover   FitMode = "cover"
	FitContain FitMode = "contain"
	FitFill    FitMode = "fill"
)

// Transform positions a clip on the canvas, all values canvas-relative
// percentages except rotation (degrees) and opacity (0-1).
type Transform struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation,omitempty"`
	FlipH    bool    `json:"flipH,omitempty"`
	FlipV    bool    `json:"flipV,omitempty"`
	Opacity  float64 `json:"opacity"`
}

// ColorAdjust holds per-clip color corrections. Zero values mean untouched;
// normalization maps them onto filter multipliers.
type ColorAdjust struct {
	Brightness float64 `json:"brightness,omitempty"` // -100..100
	Contrast   float64 `json:"contrast,omitempty"`   // -100..100
	Saturation float64 `json:"saturation,omitempty"` // -100..100
	Hue        float64 `json:"hue,omitempty"`        // degrees
	Sepia      float64 `json:"sepia,omitempty"`      // 0..100
	Blur       float64 `json:"blur,omitempty"`       // px
}

// Crop pans and zooms within the source sample. Zoom 1 with zero pan samples
// the whole source.
type Crop struct {
	X    float64 `json:"x,omitempty"` // pan, percent of source
	Y    float64 `json:"y,omitempty"`
	Zoom float64 `json:"zoom,omitempty"`
}

// Border is a stroke drawn after the clip fill.
type Border struct {
	Width float64 `json:"width,omitempty"` // px
	Color string  `json:"color,omitempty"` // #rrggbb
}

// TextStyle describes a text clip's face and effect.
type TextStyle struct {
	Content     string  `json:"content"`
	FontPath    string  `json:"fontPath,omitempty"`
	FontSize    float64 `json:"fontSize,omitempty"` // percent of canvas height
	Color       string  `json:"color,omitempty"`
	Effect      string  `json:"effect,omitempty"` // shadow|outline|neon|glitch|echo|hollow|background
	AccentColor string  `json:"accentColor,omitempty"`
}

// Item is one placed clip on a track.
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Source   string   `json:"src,omitempty"`
	Start    float64  `json:"start"`
	Duration float64  `json:"duration"`
	Offset   float64  `json:"offset,omitempty"` // position inside source media
	Speed    float64  `json:"speed,omitempty"`
	Volume   float64  `json:"volume,omitempty"` // 0-100
	Muted    bool     `json:"muted,omitempty"`
	Layer    int      `json:"layer,omitempty"`

	Background bool    `json:"background,omitempty"`
	Fit        FitMode `json:"fit,omitempty"`

	Transform Transform   `json:"transform"`
	Adjust    ColorAdjust `json:"adjust,omitempty"`
	Filter    string      `json:"filter,omitempty"` // preset filter id
	Crop      *Crop       `json:"crop,omitempty"`
	Border    *Border     `json:"border,omitempty"`
	Color     string      `json:"color,omitempty"` // color clips
	Text      *TextStyle  `json:"text,omitempty"`

	Animation  *anim.Spec       `json:"animation,omitempty"`
	Transition *transition.Spec `json:"transition,omitempty"`
}

// End returns the exclusive end time of the clip on the timeline.
func (it *Item) End() float64 { return it.Start + it.Duration }

// EffectiveSpeed defaults to 1 when the project file omits speed.
func (it *Item) EffectiveSpeed() float64 {
	if it.Speed <= 0 {
		return 1
	}
	return it.Speed
}

// SourceTime maps a timeline instant into the clip's source media.
func (it *Item) SourceTime(t float64) float64 {
	return it.Offset + (t-it.Start)*it.EffectiveSpeed()
}

// HasAudio reports whether the clip contributes to the audio mix.
func (it *Item) HasAudio() bool {
	if it.Muted {
		return false
	}
	return it.Type == ItemAudio || it.Type == ItemVideo
}

// Track is an ordered set of items sharing a type.
type Track struct {
	ID     string    `json:"id"`
	Type   TrackType `json:"type"`
	Muted  bool      `json:"muted,omitempty"`
	Hidden bool      `json:"hidden,omitempty"`
	Items  []*Item   `json:"items"`
}

// Visual reports whether the track participates in frame rendering and
// transition resolution.
func (tr *Track) Visual() bool {
	return tr.Type == TrackVideo || tr.Type == TrackOverlay
}

// SortItems orders items by start time. Input order is not trusted.
func (tr *Track) SortItems() {
	sort.SliceStable(tr.Items, func(i, j int) bool {
		return tr.Items[i].Start < tr.Items[j].Start
	})
}

// Dimension is the canvas size in pixels.
type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// PixelCount returns the total pixels per frame.
func (d Dimension) PixelCount() int { return d.Width * d.Height }

// Timeline is the immutable project snapshot the pipeline consumes.
type Timeline struct {
	Name     string    `json:"name,omitempty"`
	Duration float64   `json:"duration"`
	Canvas   Dimension `json:"canvas"`
	Tracks   []*Track  `json:"tracks"`
	FontPath string    `json:"fontPath,omitempty"`
}

// Sources returns every distinct media path referenced by the timeline, in
// first-seen order.
func (tl *Timeline) Sources() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tr := range tl.Tracks {
		for _, it := range tr.Items {
			if it.Source == "" {
				continue
			}
			if _, ok := seen[it.Source]; ok {
				continue
			}
			seen[it.Source] = struct{}{}
			out = append(out, it.Source)
		}
	}
	return out
}
