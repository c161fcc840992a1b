package timeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// Load reads a project file, normalizes it, and validates the result.
func Load(path string) (*Timeline, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a project document from JSON.
func Parse(raw []byte) (*Timeline, error) {
	var tl Timeline
	if err := json.Unmarshal(raw, &tl); err != nil {
		return nil, fmt.Errorf("decode project: %w", err)
	}
	tl.Normalize()
	if err := tl.Validate(); err != nil {
		return nil, err
	}
	return &tl, nil
}

// Normalize applies defaults and brings every value into its documented
// range. Item order within a track is not trusted and is sorted here.
func (tl *Timeline) Normalize() {
	for _, tr := range tl.Tracks {
		tr.SortItems()
		for _, it := range tr.Items {
			normalizeItem(it)
		}
	}
}

func normalizeItem(it *Item) {
	if it.Transform.Opacity <= 0 || it.Transform.Opacity > 1 {
		it.Transform.Opacity = 1
	}
	if it.Transform.Width <= 0 {
		it.Transform.Width = 100
	}
	if it.Transform.Height <= 0 {
		it.Transform.Height = 100
	}
	if it.Volume <= 0 && !it.Muted {
		// Project files omit volume for full-level clips.
		it.Volume = 100
	}
	if it.Volume > 100 {
		it.Volume = 100
	}
	if it.Crop != nil && it.Crop.Zoom < 1 {
		it.Crop.Zoom = 1
	}
	if it.Offset < 0 {
		it.Offset = 0
	}
	if it.Background && it.Fit == "" {
		it.Fit = FitCover
	}
}
