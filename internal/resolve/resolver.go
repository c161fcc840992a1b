// Package resolve decides, per track and per timestamp, which clips are
// visible and whether a transition window is open between two of them.
//
// The declarative timing-window model here is authoritative for rendering;
// editors may use looser adjacency heuristics for display affordances, but
// only this resolution determines output pixels.
package resolve

import (
	"montage/internal/timeline"
	"montage/internal/transition"
)

// RenderItem is the per-frame rendering instruction for one clip. It lives
// for a single frame: the resolver creates it, the compositor consumes it.
type RenderItem struct {
	Item       *timeline.Item
	Role       transition.Role
	Transition *transition.Spec
	Progress   float64
}

// Track resolves one track at time t into zero, one, or two render items.
func Track(tr *timeline.Track, t float64) []RenderItem {
	if tr.Hidden || len(tr.Items) == 0 {
		return nil
	}
	if !tr.Visual() {
		if it := itemAt(tr, t); it != nil {
			return []RenderItem{{Item: it, Role: transition.RoleMain}}
		}
		return nil
	}

	mainIdx := indexAt(tr, t)

	// Incoming check: the clip under the cursor owns an open window.
	if mainIdx >= 0 {
		main := tr.Items[mainIdx]
		if spec := main.Transition; spec.Active() {
			rel := t - main.Start
			winStart := spec.WindowOffset()
			if rel >= winStart && rel <= winStart+spec.Duration {
				progress := clamp01((rel - winStart) / spec.Duration)
				var out []RenderItem
				if mainIdx > 0 {
					out = append(out, RenderItem{
						Item:       tr.Items[mainIdx-1],
						Role:       transition.RoleOutgoing,
						Transition: spec,
						Progress:   progress,
					})
				}
				return append(out, RenderItem{
					Item:       main,
					Role:       transition.RoleMain,
					Transition: spec,
					Progress:   progress,
				})
			}
		}
	}

	// Outgoing check: the next clip's window reaches back across t.
	nextIdx := indexAfter(tr, t)
	if nextIdx >= 0 {
		next := tr.Items[nextIdx]
		spec := next.Transition
		if spec.Active() && spec.EffectiveTiming() != transition.TimingPostfix {
			lead := spec.LeadIn()
			if t >= next.Start-lead && t < next.Start {
				progress := clamp01((t - (next.Start + spec.WindowOffset())) / spec.Duration)
				var out []RenderItem
				if nextIdx > 0 {
					out = append(out, RenderItem{
						Item:       tr.Items[nextIdx-1],
						Role:       transition.RoleOutgoing,
						Transition: spec,
						Progress:   progress,
					})
				}
				return append(out, RenderItem{
					Item:       next,
					Role:       transition.RoleMain,
					Transition: spec,
					Progress:   progress,
				})
			}
		}
	}

	if mainIdx >= 0 {
		return []RenderItem{{Item: tr.Items[mainIdx], Role: transition.RoleMain}}
	}
	return nil
}

// Frame resolves every track at time t, in track order.
func Frame(tl *timeline.Timeline, t float64) []RenderItem {
	var out []RenderItem
	for _, tr := range tl.Tracks {
		if !tr.Visual() {
			continue
		}
		out = append(out, Track(tr, t)...)
	}
	return out
}

// indexAt returns the index of the item whose [start, end) interval holds t,
// or -1. Later items win when a declared transition overlaps two clips.
func indexAt(tr *timeline.Track, t float64) int {
	found := -1
	for i, it := range tr.Items {
		if t >= it.Start && t < it.End() {
			found = i
		}
		if it.Start > t {
			break
		}
	}
	return found
}

func itemAt(tr *timeline.Track, t float64) *timeline.Item {
	if i := indexAt(tr, t); i >= 0 {
		return tr.Items[i]
	}
	return nil
}

// indexAfter returns the index of the first item starting strictly after t,
// or -1.
func indexAfter(tr *timeline.Track, t float64) int {
	for i, it := range tr.Items {
		if it.Start > t {
			return i
		}
	}
	return -1
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
