package anim

import (
	"math"
	"testing"
)

func TestStyleOutsideWindowIsIdentity(t *testing.T) {
	spec := &Spec{Preset: PresetZoomIn, Duration: 1, Timing: TimingEnter}
	d := Style(spec, 0, 10, 5)
	if d.Opacity != 1 || d.Scale != 1 || d.TranslateX != 0 {
		t.Fatalf("mid-clip delta not identity: %+v", d)
	}
}

func TestEnterWindowProgress(t *testing.T) {
	spec := &Spec{Preset: PresetFade, Duration: 2, Timing: TimingEnter}
	if got := Style(spec, 10, 10, 10).Opacity; got != 0 {
		t.Fatalf("opacity at window start = %v, want 0", got)
	}
	if got := Style(spec, 10, 10, 11).Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("opacity at window middle = %v, want 0.5", got)
	}
	if got := Style(spec, 10, 10, 12).Opacity; got != 1 {
		t.Fatalf("opacity at window end = %v, want 1", got)
	}
}

func TestExitWindowRunsBackwards(t *testing.T) {
	spec := &Spec{Preset: PresetFade, Duration: 2, Timing: TimingExit}
	if got := Style(spec, 0, 10, 5).Opacity; got != 1 {
		t.Fatalf("opacity before exit window = %v, want 1", got)
	}
	if got := Style(spec, 0, 10, 9).Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("opacity mid exit = %v, want 0.5", got)
	}
	if got := Style(spec, 0, 10, 10).Opacity; got != 0 {
		t.Fatalf("opacity at clip end = %v, want 0", got)
	}
}

func TestTimingBothCoversBothEdges(t *testing.T) {
	spec := &Spec{Preset: PresetFade, Duration: 1, Timing: TimingBoth}
	if got := Style(spec, 0, 10, 0.0).Opacity; got != 0 {
		t.Fatalf("enter edge opacity = %v, want 0", got)
	}
	if got := Style(spec, 0, 10, 10.0).Opacity; got != 0 {
		t.Fatalf("exit edge opacity = %v, want 0", got)
	}
	if got := Style(spec, 0, 10, 5.0).Opacity; got != 1 {
		t.Fatalf("middle opacity = %v, want 1", got)
	}
}

func TestWindowClampedToClipDuration(t *testing.T) {
	// A 10s animation on a 2s clip plays across the whole clip.
	spec := &Spec{Preset: PresetFade, Duration: 10, Timing: TimingEnter}
	if got := Style(spec, 0, 2, 1).Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("opacity at clip middle = %v, want 0.5", got)
	}
}

func TestUnknownPresetFallsBackToFade(t *testing.T) {
	spec := &Spec{Preset: Preset("quantum-leap"), Duration: 2, Timing: TimingEnter}
	if got := Style(spec, 0, 10, 1).Opacity; math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("fallback opacity = %v, want 0.5", got)
	}
}

func TestEveryPresetRestsAtCompletion(t *testing.T) {
	// Just inside the window end the delta must be arbitrarily close to
	// identity; the engine returns exact identity from progress 1 onward.
	const p = 1 - 1e-9
	for preset, fn := range presets {
		d := fn(ease(p))
		if math.Abs(d.Opacity-1) > 1e-6 {
			t.Errorf("%s: opacity near completion = %v", preset, d.Opacity)
		}
		if math.Abs(d.Scale-1) > 1e-6 || math.Abs(d.ScaleX-1) > 1e-6 || math.Abs(d.ScaleY-1) > 1e-6 {
			t.Errorf("%s: scale near completion = %v/%v/%v", preset, d.Scale, d.ScaleX, d.ScaleY)
		}
		if math.Abs(d.TranslateX) > 1e-5 || math.Abs(d.TranslateY) > 1e-5 {
			t.Errorf("%s: translate near completion = (%v,%v)", preset, d.TranslateX, d.TranslateY)
		}
		if math.Abs(d.Rotate) > 1e-5 || math.Abs(d.SkewX) > 1e-5 || math.Abs(d.SkewY) > 1e-5 {
			t.Errorf("%s: rotation/skew near completion", preset)
		}
		if d.Blur > 1e-5 || math.Abs(d.Brightness-1) > 1e-6 || d.Sepia > 1e-6 {
			t.Errorf("%s: filters near completion", preset)
		}
	}
}

func TestScaleFromNothingUsesEpsilonFloor(t *testing.T) {
	for _, preset := range []Preset{PresetZoomInBig, PresetPop, PresetBounce, PresetNewspaper, PresetFlipX, PresetFlipY} {
		d := presets[preset](0)
		if d.Scale < minScale || d.ScaleX < minScale || d.ScaleY < minScale {
			t.Errorf("%s: off-stage scale below epsilon: %v/%v/%v", preset, d.Scale, d.ScaleX, d.ScaleY)
		}
		if d.Scale == 0 || d.ScaleX == 0 || d.ScaleY == 0 {
			t.Errorf("%s: zero scale at off-stage pose", preset)
		}
	}
}

func TestEaseCurveShape(t *testing.T) {
	if got := ease(0); got != 0 {
		t.Fatalf("ease(0) = %v", got)
	}
	if got := ease(1); got != 1 {
		t.Fatalf("ease(1) = %v", got)
	}
	if got := ease(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("ease(0.5) = %v", got)
	}
	if got := ease(0.25); math.Abs(got-4*0.25*0.25*0.25) > 1e-12 {
		t.Fatalf("ease(0.25) = %v", got)
	}
}

func TestCatalogSize(t *testing.T) {
	if got := len(Presets()); got < 70 {
		t.Fatalf("catalog has %d presets, want at least 70", got)
	}
}

func TestStyleDeterministic(t *testing.T) {
	spec := &Spec{Preset: PresetBounceUp, Duration: 1.5, Timing: TimingBoth}
	a := Style(spec, 3, 8, 3.7)
	b := Style(spec, 3, 8, 3.7)
	if a != b {
		t.Fatalf("same inputs produced different deltas: %+v vs %+v", a, b)
	}
}
