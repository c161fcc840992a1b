package timeline

import (
	"errors"
	"fmt"
)

// Validate enforces the structural rules the resolver and mixer rely on.
// Source-dependent rules (an audio clip never reading past its source's end)
// are enforced where the source is actually decoded; validation here is pure.
func (tl *Timeline) Validate() error {
	if tl.Duration <= 0 {
		return errors.New("timeline: duration must be positive")
	}
	if tl.Canvas.Width <= 0 || tl.Canvas.Height <= 0 {
		return fmt.Errorf("timeline: invalid canvas %dx%d", tl.Canvas.Width, tl.Canvas.Height)
	}
	for _, tr := range tl.Tracks {
		if err := validateTrack(tr); err != nil {
			return err
		}
	}
	return nil
}

func validateTrack(tr *Track) error {
	switch tr.Type {
	case TrackVideo, TrackAudio, TrackOverlay:
	default:
		return fmt.Errorf("track %s: unknown type %q", tr.ID, tr.Type)
	}
	for i, it := range tr.Items {
		if it.Duration <= 0 {
			return fmt.Errorf("track %s item %s: duration must be positive", tr.ID, it.ID)
		}
		if it.Start < 0 {
			return fmt.Errorf("track %s item %s: negative start", tr.ID, it.ID)
		}
		if i == 0 {
			continue
		}
		prev := tr.Items[i-1]
		if it.Start >= prev.End() {
			continue
		}
		// Overlap is legal only when fully inside the incoming clip's
		// declared transition window.
		if !tr.Visual() {
			return overlapErr(tr, prev, it)
		}
		if !it.Transition.Active() {
			return overlapErr(tr, prev, it)
		}
		windowEnd := it.Start + it.Transition.WindowOffset() + it.Transition.Duration
		if prev.End() > windowEnd {
			return overlapErr(tr, prev, it)
		}
	}
	return nil
}

func overlapErr(tr *Track, a, b *Item) error {
	return fmt.Errorf("track %s: items %s and %s overlap outside a transition window", tr.ID, a.ID, b.ID)
}
