package transition

import (
	"math"

	"montage/internal/style"
)

func zoomIn(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		e := easeInCubic(p)
		d.Scale = 1 + 0.5*e
		d.Opacity = 1 - sCurve(p)
		return d
	}
	e := easeOutCubic(p)
	d.Scale = math.Max(minScale, 0.6+0.4*e)
	d.Opacity = sCurve(p)
	return d
}

func zoomOut(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		e := easeInCubic(p)
		d.Scale = math.Max(minScale, 1-0.4*e)
		d.Opacity = 1 - sCurve(p)
		return d
	}
	e := easeOutCubic(p)
	d.Scale = 1.5 - 0.5*e
	d.Opacity = sCurve(p)
	return d
}

func crossZoom(spec Spec, p float64, role Role) style.Delta {
	// Hard cut at the midpoint hidden inside a motion-blur spike.
	d := style.Identity()
	d.Blur = 22 * bell(p)
	if role == RoleOutgoing {
		if p >= 0.5 {
			d.Opacity = 0
			return d
		}
		d.Scale = 1 + 1.2*easeInCubic(p*2)
		return d
	}
	if p < 0.5 {
		d.Opacity = 0
		return d
	}
	d.Scale = 1 + 1.2*(1-easeOutCubic(p*2-1))
	return d
}

func spin(spec Spec, p float64, role Role) style.Delta {
	sign := 1.0
	if spec.Type == TypeSpinCCW {
		sign = -1
	}
	d := style.Identity()
	if role == RoleOutgoing {
		e := easeInCubic(p)
		d.Rotate = sign * 120 * e
		d.Scale = math.Max(minScale, 1-0.6*e)
		d.Opacity = 1 - sCurve(p)
		return d
	}
	e := easeOutCubic(p)
	d.Rotate = -sign * 120 * (1 - e)
	d.Scale = math.Max(minScale, 0.4+0.6*e)
	d.Opacity = sCurve(p)
	return d
}

func swirl(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	d.Blur = 8 * bell(p)
	if role == RoleOutgoing {
		e := easeInCubic(p)
		d.Rotate = 360 * e
		d.Scale = math.Max(minScale, 1-e)
		d.Opacity = 1 - sCurve(p)
		return d
	}
	e := easeOutCubic(p)
	d.Rotate = -360 * (1 - e)
	d.Scale = math.Max(minScale, e)
	d.Opacity = sCurve(p)
	return d
}

func whip(spec Spec, p float64, role Role) style.Delta {
	// Whip pan: both clips fly through in one direction, cut at the midpoint.
	d := style.Identity()
	dx, _ := signs(directionOf(spec))
	d.Blur = 30 * bell(p)
	if role == RoleOutgoing {
		if p >= 0.5 {
			d.Opacity = 0
			return d
		}
		d.TranslateX = dx * 120 * easeInCubic(p*2)
		return d
	}
	if p < 0.5 {
		d.Opacity = 0
		return d
	}
	d.TranslateX = -dx * 120 * (1 - easeOutCubic(p*2-1))
	return d
}

func flash(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	spike := bell(p)
	d.Brightness = 1 + 4*spike
	d.Blur = 6 * spike
	if role == RoleOutgoing {
		if p >= 0.5 {
			d.Opacity = 0
		}
		return d
	}
	if p < 0.5 {
		d.Opacity = 0
	}
	return d
}

func strobe(spec Spec, p float64, role Role) style.Delta {
	// Six alternating hard frames, landing on the incoming clip.
	d := style.Identity()
	step := int(p * 6)
	if step > 5 {
		step = 5
	}
	showMain := step%2 == 1 || p >= 1
	if role == RoleOutgoing {
		if showMain {
			d.Opacity = 0
		}
		return d
	}
	if !showMain {
		d.Opacity = 0
	}
	d.Brightness = 1 + 0.5*bell(p)
	return d
}

// glitchOffsets is a fixed jitter table indexed by progress step, keeping the
// glitch deterministic across renders of the same frame.
var glitchOffsets = [10]struct{ x, y float64 }{
	{2.4, -1.1}, {-3.2, 0.8}, {1.1, 2.6}, {-0.9, -2.2}, {3.6, 1.4},
	{-2.1, 2.9}, {0.7, -3.3}, {-3.8, -0.6}, {2.9, 2.1}, {-1.4, 1.7},
}

func glitch(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	step := int(p * 10)
	if step > 9 {
		step = 9
	}
	off := glitchOffsets[step]
	active := (role == RoleOutgoing) == (p < 0.5)
	if !active {
		d.Opacity = 0
		return d
	}
	d.TranslateX = off.x
	d.TranslateY = off.y
	d.SkewX = off.x * 1.5
	d.HueRotate = float64(step) * 36
	d.Contrast = 1 + 0.4*bell(p)
	return d
}

func digitalGlitch(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	step := int(p * 10)
	if step > 9 {
		step = 9
	}
	off := glitchOffsets[9-step]
	active := (role == RoleOutgoing) == (p < 0.5)
	if !active {
		d.Opacity = 0
		return d
	}
	// Horizontal slice jumping between steps.
	sliceTop := float64(step%4) * 20
	d.Clip = &style.Clip{Kind: style.ClipInset, Top: sliceTop * 0.2, Bottom: (60 - sliceTop) * 0.2}
	d.TranslateX = off.x * 2
	d.HueRotate = -float64(step) * 24
	d.Saturate = 1 + bell(p)
	return d
}

func flipHorizontal(spec Spec, p float64, role Role) style.Delta {
	// The pair reads as one card flipping about its vertical axis.
	d := style.Identity()
	c := math.Cos(math.Pi * p)
	if role == RoleOutgoing {
		if c <= 0 {
			d.Opacity = 0
			return d
		}
		d.ScaleX = math.Max(minScale, c)
		return d
	}
	if c > 0 {
		d.Opacity = 0
		return d
	}
	d.ScaleX = math.Max(minScale, -c)
	return d
}

func flipVertical(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	c := math.Cos(math.Pi * p)
	if role == RoleOutgoing {
		if c <= 0 {
			d.Opacity = 0
			return d
		}
		d.ScaleY = math.Max(minScale, c)
		return d
	}
	if c > 0 {
		d.Opacity = 0
		return d
	}
	d.ScaleY = math.Max(minScale, -c)
	return d
}

func squeezeH(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.ScaleX = math.Max(minScale, 1-easeInCubic(p))
		d.Opacity = 1 - easeInCubic(p)
		return d
	}
	d.ScaleX = math.Max(minScale, easeOutCubic(p))
	return d
}

func squeezeV(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.ScaleY = math.Max(minScale, 1-easeInCubic(p))
		d.Opacity = 1 - easeInCubic(p)
		return d
	}
	d.ScaleY = math.Max(minScale, easeOutCubic(p))
	return d
}

func heatRipple(spec Spec, p float64, role Role) style.Delta {
	d := fade(spec, p, role)
	d.SkewX = 4 * math.Sin(3*math.Pi*p)
	d.Blur = 6 * bell(p)
	d.HueRotate = 10 * bell(p)
	d.Brightness = 1 + 0.2*bell(p)
	return d
}
