package transition

import (
	"math"

	"montage/internal/style"
)

// minScale floors collapsing scale factors so a clip never degenerates to a
// zero-size draw.
const minScale = 0.001

type variantFunc func(spec Spec, p float64, role Role) style.Delta

// catalog is the exhaustive dispatch table. Types missing from it fall back
// to crossFade.
var catalog = map[Type]variantFunc{
	TypeFade:             fade,
	TypeDissolve:         dissolve,
	TypeFilmDissolve:     filmDissolve,
	TypeAdditiveDissolve: additiveDissolve,
	TypeBlurDissolve:     blurDissolve,
	TypeSepiaWash:        sepiaWash,
	TypeLumaFade:         lumaFade,
	TypeFadeToBlack:      fadeToBlack,
	TypeFadeToWhite:      fadeToWhite,
	TypeSlideLeft:        slide,
	TypeSlideRight:       slide,
	TypeSlideUp:          slide,
	TypeSlideDown:        slide,
	TypePushLeft:         push,
	TypePushRight:        push,
	TypePushUp:           push,
	TypePushDown:         push,
	TypeWipeLeft:         wipe,
	TypeWipeRight:        wipe,
	TypeWipeUp:           wipe,
	TypeWipeDown:         wipe,
	TypeBarnDoorsH:       barnDoorsH,
	TypeBarnDoorsV:       barnDoorsV,
	TypeIrisCircleIn:     irisCircleIn,
	TypeIrisCircleOut:    irisCircleOut,
	TypeIrisBoxIn:        irisBoxIn,
	TypeIrisBoxOut:       irisBoxOut,
	TypeIrisDiamond:      irisDiamond,
	TypeZoomIn:           zoomIn,
	TypeZoomOut:          zoomOut,
	TypeCrossZoom:        crossZoom,
	TypeSpinCW:           spin,
	TypeSpinCCW:          spin,
	TypeSwirl:            swirl,
	TypeWhipLeft:         whip,
	TypeWhipRight:        whip,
	TypeFlash:            flash,
	TypeStrobe:           strobe,
	TypeGlitch:           glitch,
	TypeDigitalGlitch:    digitalGlitch,
	TypeFlipHorizontal:   flipHorizontal,
	TypeFlipVertical:     flipVertical,
	TypeSqueezeH:         squeezeH,
	TypeSqueezeV:         squeezeV,
	TypeHeatRipple:       heatRipple,
}

// Style returns the style delta for one side of an active transition at the
// given progress. Progress is clamped to [0,1] before dispatch.
func Style(spec Spec, progress float64, role Role) style.Delta {
	p := clamp01(progress)
	if spec.Type == "" || spec.Type == TypeNone {
		return style.Identity()
	}
	fn, ok := catalog[spec.Type]
	if !ok {
		return crossFade(spec, p, role)
	}
	return fn(spec, p, role)
}

// Known reports whether the type has a dedicated variant in the catalog.
func Known(t Type) bool {
	_, ok := catalog[t]
	return ok || t == TypeNone
}

// Types returns every catalog type, for listings and exhaustiveness tests.
func Types() []Type {
	out := make([]Type, 0, len(catalog))
	for t := range catalog {
		out = append(out, t)
	}
	return out
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

// sCurve is the shared cross-fade easing (smoothstep).
func sCurve(p float64) float64 { return p * p * (3 - 2*p) }

func easeOutCubic(p float64) float64 {
	inv := 1 - p
	return 1 - inv*inv*inv
}

func easeInCubic(p float64) float64 { return p * p * p }

// bell peaks mid-transition and is zero at both ends.
func bell(p float64) float64 { return math.Sin(math.Pi * p) }

// signs maps a motion direction to unit translate multipliers.
func signs(d Direction) (dx, dy float64) {
	switch d {
	case DirectionRight:
		return 1, 0
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	default:
		return -1, 0
	}
}

// directionOf prefers the direction encoded in the type name, falling back to
// the spec's direction field.
func directionOf(spec Spec) Direction {
	switch spec.Type {
	case TypeSlideRight, TypePushRight, TypeWipeRight, TypeWhipRight:
		return DirectionRight
	case TypeSlideUp, TypePushUp, TypeWipeUp:
		return DirectionUp
	case TypeSlideDown, TypePushDown, TypeWipeDown:
		return DirectionDown
	case TypeSlideLeft, TypePushLeft, TypeWipeLeft, TypeWhipLeft:
		return DirectionLeft
	}
	return ParseDirection(string(spec.Direction))
}

// crossFade is the universal fallback: exact complementary opacity.
func crossFade(_ Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.Opacity = 1 - p
	} else {
		d.Opacity = p
	}
	return d
}

func fade(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.Opacity = 1 - sCurve(p)
	} else {
		d.Opacity = sCurve(p)
	}
	return d
}

func dissolve(spec Spec, p float64, role Role) style.Delta {
	// Quintic S-curve: flatter shoulders than fade, same exact complement.
	s := p * p * p * (p*(p*6-15) + 10)
	d := style.Identity()
	if role == RoleOutgoing {
		d.Opacity = 1 - s
	} else {
		d.Opacity = s
	}
	return d
}

func filmDissolve(spec Spec, p float64, role Role) style.Delta {
	d := fade(spec, p, role)
	// Exposure dip through the middle, like a print dissolve.
	d.Brightness = 1 - 0.15*bell(p)
	d.Saturate = 1 - 0.1*bell(p)
	return d
}

func additiveDissolve(spec Spec, p float64, role Role) style.Delta {
	d := fade(spec, p, role)
	d.Brightness = 1 + 0.35*bell(p)
	if role == RoleMain {
		d.Blend = style.BlendScreen
	}
	return d
}

func blurDissolve(spec Spec, p float64, role Role) style.Delta {
	d := fade(spec, p, role)
	d.Blur = 14 * bell(p)
	return d
}

func sepiaWash(spec Spec, p float64, role Role) style.Delta {
	d := fade(spec, p, role)
	d.Sepia = 0.8 * bell(p)
	return d
}

func lumaFade(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		// Blow out the highlights before dropping away.
		d.Contrast = 1 + 1.5*easeInCubic(p)
		d.Brightness = 1 + 1.2*easeInCubic(p)
		d.Opacity = 1 - sCurve(p)
	} else {
		d.Brightness = 0.3 + 0.7*easeOutCubic(p)
		d.Opacity = sCurve(p)
	}
	return d
}

func fadeToBlack(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		if p < 0.5 {
			d.Opacity = 1 - sCurve(p*2)
		} else {
			d.Opacity = 0
		}
		return d
	}
	if p < 0.5 {
		d.Opacity = 0
	} else {
		d.Opacity = sCurve(p*2 - 1)
	}
	return d
}

func fadeToWhite(spec Spec, p float64, role Role) style.Delta {
	d := fadeToBlack(spec, p, role)
	d.Brightness = 1 + 2.5*bell(p)
	return d
}

func slide(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role != RoleOutgoing {
		// Incoming sits still underneath the departing clip.
		return d
	}
	dx, dy := signs(directionOf(spec))
	e := easeInCubic(p)
	d.TranslateX = dx * 100 * e
	d.TranslateY = dy * 100 * e
	return d
}

func push(spec Spec, p float64, role Role) style.Delta {
	// Both clips share one curve so they move as a single strip.
	d := style.Identity()
	dx, dy := signs(directionOf(spec))
	e := sCurve(p)
	if role == RoleOutgoing {
		d.TranslateX = dx * 100 * e
		d.TranslateY = dy * 100 * e
		return d
	}
	d.TranslateX = -dx * 100 * (1 - e)
	d.TranslateY = -dy * 100 * (1 - e)
	return d
}
