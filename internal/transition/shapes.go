package transition

import "montage/internal/style"

// originOf returns the iris center, defaulting to the clip's middle.
func originOf(spec Spec) (cx, cy float64) {
	cx, cy = 50, 50
	if spec.OriginX > 0 {
		cx = spec.OriginX
	}
	if spec.OriginY > 0 {
		cy = spec.OriginY
	}
	return cx, cy
}

func wipe(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.Brightness = 1 - 0.2*easeInCubic(p)
		return d
	}
	reveal := easeOutCubic(p) * 100
	clip := &style.Clip{Kind: style.ClipInset}
	switch directionOf(spec) {
	case DirectionRight:
		clip.Right = 100 - reveal
	case DirectionUp:
		clip.Top = 100 - reveal
	case DirectionDown:
		clip.Bottom = 100 - reveal
	default:
		clip.Left = 100 - reveal
	}
	d.Clip = clip
	d.Brightness = 1 + 0.1*(1-p)
	return d
}

func barnDoorsH(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.Brightness = 1 - 0.15*easeInCubic(p)
		return d
	}
	half := (1 - easeOutCubic(p)) * 50
	d.Clip = &style.Clip{Kind: style.ClipInset, Left: half, Right: half}
	d.Brightness = 1 + 0.1*(1-p)
	return d
}

func barnDoorsV(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		d.Brightness = 1 - 0.15*easeInCubic(p)
		return d
	}
	half := (1 - easeOutCubic(p)) * 50
	d.Clip = &style.Clip{Kind: style.ClipInset, Top: half, Bottom: half}
	d.Brightness = 1 + 0.1*(1-p)
	return d
}

func irisCircleIn(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		return d
	}
	cx, cy := originOf(spec)
	// 110% overshoot so the final circle fully covers the corners.
	d.Clip = &style.Clip{Kind: style.ClipCircle, Radius: easeOutCubic(p) * 110, CX: cx, CY: cy}
	d.Brightness = 1 + 0.15*(1-p)
	return d
}

func irisCircleOut(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role != RoleOutgoing {
		d.Brightness = 1 + 0.15*(1-easeOutCubic(p))
		return d
	}
	cx, cy := originOf(spec)
	d.Clip = &style.Clip{Kind: style.ClipCircle, Radius: (1 - easeInCubic(p)) * 110, CX: cx, CY: cy}
	return d
}

func irisBoxIn(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		return d
	}
	half := (1 - easeOutCubic(p)) * 50
	d.Clip = &style.Clip{Kind: style.ClipInset, Top: half, Right: half, Bottom: half, Left: half}
	d.Brightness = 1 + 0.15*(1-p)
	return d
}

func irisBoxOut(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role != RoleOutgoing {
		d.Brightness = 1 + 0.15*(1-easeOutCubic(p))
		return d
	}
	half := easeInCubic(p) * 50
	d.Clip = &style.Clip{Kind: style.ClipInset, Top: half, Right: half, Bottom: half, Left: half}
	return d
}

func irisDiamond(spec Spec, p float64, role Role) style.Delta {
	d := style.Identity()
	if role == RoleOutgoing {
		return d
	}
	cx, cy := originOf(spec)
	// Reach 150% so the diamond's edges clear the clip corners by the end.
	r := easeOutCubic(p) * 150
	d.Clip = &style.Clip{Kind: style.ClipPolygon, Points: []style.Point{
		{X: cx, Y: cy - r},
		{X: cx + r, Y: cy},
		{X: cx, Y: cy + r},
		{X: cx - r, Y: cy},
	}}
	d.Brightness = 1 + 0.15*(1-p)
	return d
}
