package anim

import (
	"math"

	"montage/internal/style"
)

// Preset names one animation from the catalog.
type Preset string

// minScale floors scale-from-nothing presets so a clip never collapses to a
// zero-size draw.
const minScale = 0.01

const (
	PresetNone Preset = "none"

	PresetFade         Preset = "fade"
	PresetFadeUp       Preset = "fade-up"
	PresetFadeDown     Preset = "fade-down"
	PresetFadeLeft     Preset = "fade-left"
	PresetFadeRight    Preset = "fade-right"
	PresetFadeUpBig    Preset = "fade-up-big"
	PresetFadeDownBig  Preset = "fade-down-big"
	PresetFadeLeftBig  Preset = "fade-left-big"
	PresetFadeRightBig Preset = "fade-right-big"

	PresetSlideUp    Preset = "slide-up"
	PresetSlideDown  Preset = "slide-down"
	PresetSlideLeft  Preset = "slide-left"
	PresetSlideRight Preset = "slide-right"

	PresetDriftUp    Preset = "drift-up"
	PresetDriftDown  Preset = "drift-down"
	PresetDriftLeft  Preset = "drift-left"
	PresetDriftRight Preset = "drift-right"

	PresetZoomIn     Preset = "zoom-in"
	PresetZoomOut    Preset = "zoom-out"
	PresetZoomInBig  Preset = "zoom-in-big"
	PresetZoomOutBig Preset = "zoom-out-big"
	PresetZoomInUp   Preset = "zoom-in-up"
	PresetZoomInDown Preset = "zoom-in-down"

	PresetPop      Preset = "pop"
	PresetPopSwirl Preset = "pop-swirl"

	PresetBounce      Preset = "bounce"
	PresetBounceUp    Preset = "bounce-up"
	PresetBounceDown  Preset = "bounce-down"
	PresetBounceLeft  Preset = "bounce-left"
	PresetBounceRight Preset = "bounce-right"

	PresetBack      Preset = "back"
	PresetBackUp    Preset = "back-up"
	PresetBackDown  Preset = "back-down"
	PresetBackLeft  Preset = "back-left"
	PresetBackRight Preset = "back-right"

	PresetElastic      Preset = "elastic"
	PresetElasticUp    Preset = "elastic-up"
	PresetElasticDown  Preset = "elastic-down"
	PresetElasticLeft  Preset = "elastic-left"
	PresetElasticRight Preset = "elastic-right"

	PresetRotateCW  Preset = "rotate-cw"
	PresetRotateCCW Preset = "rotate-ccw"
	PresetNewspaper Preset = "newspaper"
	PresetSpiralIn  Preset = "spiral-in"
	PresetTiltLeft  Preset = "tilt-left"
	PresetTiltRight Preset = "tilt-right"

	PresetFlipX Preset = "flip-x"
	PresetFlipY Preset = "flip-y"
	PresetSkewX Preset = "skew-x"
	PresetSkewY Preset = "skew-y"

	PresetBlurIn     Preset = "blur-in"
	PresetFocusIn    Preset = "focus-in"
	PresetBrighten   Preset = "brighten"
	PresetDarken     Preset = "darken"
	PresetDesaturate Preset = "desaturate"
	PresetSepiaFade  Preset = "sepia-fade"
	PresetHueSwing   Preset = "hue-swing"

	PresetDrop     Preset = "drop"
	PresetRise     Preset = "rise"
	PresetFloat    Preset = "float"
	PresetSink     Preset = "sink"
	PresetSwingIn  Preset = "swing-in"
	PresetPendulum Preset = "pendulum"

	PresetShakeX Preset = "shake-x"
	PresetShakeY Preset = "shake-y"
	PresetWobble Preset = "wobble"

	PresetStretchH Preset = "stretch-h"
	PresetStretchV Preset = "stretch-v"
	PresetSquashH  Preset = "squash-h"
	PresetSquashV  Preset = "squash-v"

	PresetFlicker Preset = "flicker"
	PresetPulse   Preset = "pulse"
)

type presetFunc func(p float64) style.Delta

var presets = map[Preset]presetFunc{
	PresetFade:         presetFade,
	PresetFadeUp:       fadeFrom(0, 25),
	PresetFadeDown:     fadeFrom(0, -25),
	PresetFadeLeft:     fadeFrom(25, 0),
	PresetFadeRight:    fadeFrom(-25, 0),
	PresetFadeUpBig:    fadeFrom(0, 60),
	PresetFadeDownBig:  fadeFrom(0, -60),
	PresetFadeLeftBig:  fadeFrom(60, 0),
	PresetFadeRightBig: fadeFrom(-60, 0),

	PresetSlideUp:    slideFrom(0, 120),
	PresetSlideDown:  slideFrom(0, -120),
	PresetSlideLeft:  slideFrom(120, 0),
	PresetSlideRight: slideFrom(-120, 0),

	PresetDriftUp:    fadeFrom(0, 12),
	PresetDriftDown:  fadeFrom(0, -12),
	PresetDriftLeft:  fadeFrom(12, 0),
	PresetDriftRight: fadeFrom(-12, 0),

	PresetZoomIn:     zoomFrom(0.3),
	PresetZoomOut:    zoomFrom(1.7),
	PresetZoomInBig:  zoomFrom(minScale),
	PresetZoomOutBig: zoomFrom(3),
	PresetZoomInUp:   zoomTranslate(0.5, 0, 40),
	PresetZoomInDown: zoomTranslate(0.5, 0, -40),

	PresetPop:      pop,
	PresetPopSwirl: popSwirl,

	PresetBounce:      bounce,
	PresetBounceUp:    bounceFrom(0, 100),
	PresetBounceDown:  bounceFrom(0, -100),
	PresetBounceLeft:  bounceFrom(100, 0),
	PresetBounceRight: bounceFrom(-100, 0),

	PresetBack:      backScale,
	PresetBackUp:    backFrom(0, 60),
	PresetBackDown:  backFrom(0, -60),
	PresetBackLeft:  backFrom(60, 0),
	PresetBackRight: backFrom(-60, 0),

	PresetElastic:      elasticScale,
	PresetElasticUp:    elasticFrom(0, 80),
	PresetElasticDown:  elasticFrom(0, -80),
	PresetElasticLeft:  elasticFrom(80, 0),
	PresetElasticRight: elasticFrom(-80, 0),

	PresetRotateCW:  rotateFrom(-180),
	PresetRotateCCW: rotateFrom(180),
	PresetNewspaper: newspaper,
	PresetSpiralIn:  spiralIn,
	PresetTiltLeft:  tiltFrom(-15),
	PresetTiltRight: tiltFrom(15),

	PresetFlipX: flipX,
	PresetFlipY: flipY,
	PresetSkewX: skewX,
	PresetSkewY: skewY,

	PresetBlurIn:     blurIn,
	PresetFocusIn:    focusIn,
	PresetBrighten:   brighten,
	PresetDarken:     darken,
	PresetDesaturate: desaturate,
	PresetSepiaFade:  sepiaFade,
	PresetHueSwing:   hueSwing,

	PresetDrop:     drop,
	PresetRise:     rise,
	PresetFloat:    fadeFrom(0, 20),
	PresetSink:     fadeFrom(0, -20),
	PresetSwingIn:  swingIn,
	PresetPendulum: pendulum,

	PresetShakeX: shakeX,
	PresetShakeY: shakeY,
	PresetWobble: wobble,

	PresetStretchH: stretch(2.5, 0.5),
	PresetStretchV: stretch(0.5, 2.5),
	PresetSquashH:  stretch(1.4, 0.2),
	PresetSquashV:  stretch(0.2, 1.4),

	PresetFlicker: flicker,
	PresetPulse:   pulse,
}

// Presets returns every catalog preset, for listings and tests.
func Presets() []Preset {
	out := make([]Preset, 0, len(presets))
	for p := range presets {
		out = append(out, p)
	}
	return out
}

// Known reports whether the preset has a dedicated entry in the catalog.
func Known(p Preset) bool {
	_, ok := presets[p]
	return ok || p == PresetNone
}

func lerp(from, to, p float64) float64 { return from + (to-from)*p }

func presetFade(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	return d
}

func fadeFrom(dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.TranslateX = dx * (1 - p)
		d.TranslateY = dy * (1 - p)
		return d
	}
}

func slideFrom(dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.TranslateX = dx * (1 - p)
		d.TranslateY = dy * (1 - p)
		return d
	}
}

func zoomFrom(scale float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.Scale = math.Max(minScale, lerp(scale, 1, p))
		return d
	}
}

func zoomTranslate(scale, dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.Scale = math.Max(minScale, lerp(scale, 1, p))
		d.TranslateX = dx * (1 - p)
		d.TranslateY = dy * (1 - p)
		return d
	}
}

// pop snaps up past rest size then settles.
func pop(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	if p < 0.7 {
		d.Scale = math.Max(minScale, lerp(minScale, 1.12, p/0.7))
	} else {
		d.Scale = lerp(1.12, 1, (p-0.7)/0.3)
	}
	return d
}

func popSwirl(p float64) style.Delta {
	d := pop(p)
	d.Rotate = -25 * (1 - p)
	return d
}

func bounce(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	if p < 0.6 {
		d.Scale = math.Max(minScale, lerp(minScale, 1.15, p/0.6))
	} else {
		d.Scale = lerp(1.15, 1, (p-0.6)/0.4)
	}
	return d
}

// bounceFrom overshoots 8% past the rest position before settling.
func bounceFrom(dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = math.Min(1, p*1.8)
		var f float64
		if p < 0.65 {
			f = lerp(1, -0.08, p/0.65)
		} else {
			f = lerp(-0.08, 0, (p-0.65)/0.35)
		}
		d.TranslateX = dx * f
		d.TranslateY = dy * f
		return d
	}
}

// easeOutBack is the standard overshoot curve: 0 at p=0, 1 at p=1, peaking
// slightly above 1 on the way in.
func easeOutBack(p float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	q := p - 1
	return 1 + c3*q*q*q + c1*q*q
}

func backScale(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Scale = math.Max(minScale, easeOutBack(p))
	return d
}

func backFrom(dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		f := 1 - easeOutBack(p)
		d.TranslateX = dx * f
		d.TranslateY = dy * f
		return d
	}
}

// damp is a decaying oscillation: 1 at p=0, exactly 0 at p=1.
func damp(p float64) float64 {
	return (1 - p) * math.Cos(4*math.Pi*(1-p))
}

func elasticScale(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	d.Scale = math.Max(minScale, 1-damp(p))
	return d
}

func elasticFrom(dx, dy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = math.Min(1, p*2)
		f := damp(p)
		d.TranslateX = dx * f
		d.TranslateY = dy * f
		return d
	}
}

func rotateFrom(deg float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.Rotate = deg * (1 - p)
		d.Scale = math.Max(minScale, lerp(0.5, 1, p))
		return d
	}
}

func newspaper(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	d.Rotate = -720 * (1 - p)
	d.Scale = math.Max(minScale, p)
	return d
}

func spiralIn(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Rotate = -360 * (1 - p)
	d.TranslateX = 60 * (1 - p)
	d.Scale = math.Max(minScale, lerp(0.3, 1, p))
	return d
}

func tiltFrom(deg float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.Rotate = deg * (1 - p)
		return d
	}
}

func flipX(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.ScaleX = math.Max(minScale, p)
	return d
}

func flipY(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.ScaleY = math.Max(minScale, p)
	return d
}

func skewX(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.SkewX = 30 * (1 - p)
	d.TranslateX = 20 * (1 - p)
	return d
}

func skewY(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.SkewY = 30 * (1 - p)
	d.TranslateY = 20 * (1 - p)
	return d
}

func blurIn(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Blur = 20 * (1 - p)
	return d
}

func focusIn(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*1.5)
	d.Blur = 40 * (1 - p)
	d.Brightness = lerp(1.4, 1, p)
	return d
}

func brighten(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Brightness = lerp(3, 1, p)
	return d
}

func darken(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Brightness = p
	return d
}

func desaturate(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Saturate = p
	return d
}

func sepiaFade(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Sepia = 1 - p
	return d
}

func hueSwing(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.HueRotate = 120 * (1 - p)
	return d
}

// drop falls in from above and lands with a small rebound.
func drop(p float64) style.Delta {
	d := style.Identity()
	if p < 0.7 {
		d.TranslateY = lerp(-120, 10, p/0.7)
	} else {
		d.TranslateY = lerp(10, 0, (p-0.7)/0.3)
	}
	return d
}

func rise(p float64) style.Delta {
	d := style.Identity()
	if p < 0.7 {
		d.TranslateY = lerp(120, -6, p/0.7)
	} else {
		d.TranslateY = lerp(-6, 0, (p-0.7)/0.3)
	}
	return d
}

func swingIn(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = p
	d.Rotate = -90 * (1 - easeOutBack(p))
	d.TranslateY = -10 * (1 - p)
	return d
}

func pendulum(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	d.Rotate = 45 * damp(p)
	return d
}

func shakeX(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*3)
	d.TranslateX = 12 * (1 - p) * math.Sin(6*math.Pi*p)
	return d
}

func shakeY(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*3)
	d.TranslateY = 12 * (1 - p) * math.Sin(6*math.Pi*p)
	return d
}

func wobble(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	d.Rotate = 8 * (1 - p) * math.Sin(3*math.Pi*p)
	d.TranslateX = 10 * (1 - p) * math.Sin(2*math.Pi*p)
	return d
}

func stretch(sx, sy float64) presetFunc {
	return func(p float64) style.Delta {
		d := style.Identity()
		d.Opacity = p
		d.ScaleX = math.Max(minScale, lerp(sx, 1, p))
		d.ScaleY = math.Max(minScale, lerp(sy, 1, p))
		return d
	}
}

// flickerLevels dims every other step on the way in; the final step is full
// brightness so the ramp meets identity.
var flickerLevels = [8]float64{0.2, 1, 0.35, 1, 0.55, 1, 0.8, 1}

func flicker(p float64) style.Delta {
	d := style.Identity()
	step := int(p * 8)
	if step > 7 {
		step = 7
	}
	// Blend the stepped level toward full opacity as the window closes.
	d.Opacity = lerp(p*flickerLevels[step], 1, p*p)
	return d
}

func pulse(p float64) style.Delta {
	d := style.Identity()
	d.Opacity = math.Min(1, p*2)
	d.Scale = 1 + 0.12*(1-p)*math.Sin(3*math.Pi*p)
	return d
}
