package anim

import "montage/internal/style"

// Timing selects which edge(s) of the clip the animation plays on.
type Timing string

const (
	TimingEnter Timing = "enter"
	TimingExit  Timing = "exit"
	TimingBoth  Timing = "both"
)

// Spec is an animation as declared on a clip.
type Spec struct {
	Preset   Preset  `json:"type"`
	Duration float64 `json:"duration"`
	Timing   Timing  `json:"timing,omitempty"`
}

// Active reports whether the spec names a playable animation.
func (s *Spec) Active() bool {
	return s != nil && s.Preset != "" && s.Preset != PresetNone && s.Duration > 0
}

// EffectiveTiming defaults to enter when the project file omits timing.
func (s *Spec) EffectiveTiming() Timing {
	if s == nil {
		return TimingEnter
	}
	switch s.Timing {
	case TimingExit, TimingBoth:
		return s.Timing
	default:
		return TimingEnter
	}
}

// ease is the fixed cubic in-out curve applied to windowed progress.
func ease(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	inv := -2*t + 2
	return 1 - inv*inv*inv/2
}

// Style returns the animation delta for a clip at the given timeline time.
// clipStart and clipDuration describe the clip's placement; outside any
// active window the delta is identity.
func Style(spec *Spec, clipStart, clipDuration, now float64) style.Delta {
	if !spec.Active() || clipDuration <= 0 {
		return style.Identity()
	}
	window := spec.Duration
	if window > clipDuration {
		window = clipDuration
	}
	local := now - clipStart
	timing := spec.EffectiveTiming()

	// progress runs 0 (off-stage) to 1 (at rest) regardless of edge; exit
	// windows run it backwards so the clip leaves through the same pose it
	// entered by.
	progress := -1.0
	if (timing == TimingEnter || timing == TimingBoth) && local >= 0 && local < window {
		progress = local / window
	} else if (timing == TimingExit || timing == TimingBoth) && local > clipDuration-window && local <= clipDuration {
		progress = (clipDuration - local) / window
	}
	if progress < 0 {
		return style.Identity()
	}
	if progress >= 1 {
		return style.Identity()
	}
	fn, ok := presets[spec.Preset]
	if !ok {
		fn = presetFade
	}
	return fn(ease(progress))
}
