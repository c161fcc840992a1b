package transition

import "strings"

// Type names one transition variant from the catalog.
type Type string

// Catalog of transition variants. Unknown values are legal input and render
// as a plain opacity cross-fade.
const (
	TypeNone             Type = "none"
	TypeFade             Type = "fade"
	TypeDissolve         Type = "dissolve"
	TypeFilmDissolve     Type = "film-dissolve"
	TypeAdditiveDissolve Type = "additive-dissolve"
	TypeBlurDissolve     Type = "blur-dissolve"
	TypeSepiaWash        Type = "sepia-wash"
	TypeLumaFade         Type = "luma-fade"
	TypeFadeToBlack      Type = "fade-to-black"
	TypeFadeToWhite      Type = "fade-to-white"
	TypeSlideLeft        Type = "slide-left"
	TypeSlideRight       Type = "slide-right"
	TypeSlideUp          Type = "slide-up"
	TypeSlideDown        Type = "slide-down"
	TypePushLeft         Type = "push-left"
	TypePushRight        Type = "push-right"
	TypePushUp           Type = "push-up"
	TypePushDown         Type = "push-down"
	TypeWipeLeft         Type = "wipe-left"
	TypeWipeRight        Type = "wipe-right"
	TypeWipeUp           Type = "wipe-up"
	TypeWipeDown         Type = "wipe-down"
	TypeBarnDoorsH       Type = "barn-doors-horizontal"
	TypeBarnDoorsV       Type = "barn-doors-vertical"
	TypeIrisCircleIn     Type = "iris-circle-in"
	TypeIrisCircleOut    Type = "iris-circle-out"
	TypeIrisBoxIn        Type = "iris-box-in"
	TypeIrisBoxOut       Type = "iris-box-out"
	TypeIrisDiamond      Type = "iris-diamond"
	TypeZoomIn           Type = "zoom-in"
	TypeZoomOut          Type = "zoom-out"
	TypeCrossZoom        Type = "cross-zoom"
	TypeSpinCW           Type = "spin-clockwise"
	TypeSpinCCW          Type = "spin-counterclockwise"
	TypeSwirl            Type = "swirl"
	TypeWhipLeft         Type = "whip-left"
	TypeWhipRight        Type = "whip-right"
	TypeFlash            Type = "flash"
	TypeStrobe           Type = "strobe"
	TypeGlitch           Type = "glitch"
	TypeDigitalGlitch    Type = "digital-glitch"
	TypeFlipHorizontal   Type = "flip-horizontal"
	TypeFlipVertical     Type = "flip-vertical"
	TypeSqueezeH         Type = "squeeze-horizontal"
	TypeSqueezeV         Type = "squeeze-vertical"
	TypeHeatRipple       Type = "heat-ripple"
)

// Timing places the transition window relative to the owning clip's start.
type Timing string

const (
	// TimingPostfix opens the window at the clip's start.
	TimingPostfix Timing = "postfix"
	// TimingOverlap centers the window on the clip's start.
	TimingOverlap Timing = "overlap"
	// TimingPrefix closes the window at the clip's start.
	TimingPrefix Timing = "prefix"
)

// Direction steers translate-based families.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
)

// Role identifies which side of an active transition a style computation
// targets.
type Role string

const (
	// RoleMain is the incoming clip.
	RoleMain Role = "main"
	// RoleOutgoing is the clip being replaced.
	RoleOutgoing Role = "outgoing"
)

// Spec is a transition as declared on a clip. Attached to an item it means
// "this item's incoming transition".
type Spec struct {
	Type      Type      `json:"type"`
	Duration  float64   `json:"duration"`
	Direction Direction `json:"direction,omitempty"`
	Timing    Timing    `json:"timing,omitempty"`
	// OriginX/OriginY position iris-family shapes, percent of the clip rect.
	OriginX float64 `json:"originX,omitempty"`
	OriginY float64 `json:"originY,omitempty"`
}

// Active reports whether the spec names a real transition with a usable
// window.
func (s *Spec) Active() bool {
	return s != nil && s.Type != "" && s.Type != TypeNone && s.Duration > 0
}

// EffectiveTiming defaults to postfix when the project file omits timing.
func (s *Spec) EffectiveTiming() Timing {
	if s == nil {
		return TimingPostfix
	}
	switch s.Timing {
	case TimingPrefix, TimingOverlap, TimingPostfix:
		return s.Timing
	default:
		return TimingPostfix
	}
}

// WindowOffset returns the window start relative to the owning clip's start.
func (s *Spec) WindowOffset() float64 {
	switch s.EffectiveTiming() {
	case TimingPrefix:
		return -s.Duration
	case TimingOverlap:
		return -s.Duration / 2
	default:
		return 0
	}
}

// LeadIn returns how much of the window falls before the owning clip's start.
func (s *Spec) LeadIn() float64 {
	return -s.WindowOffset()
}

// ParseDirection normalizes a raw direction string, defaulting to left.
func ParseDirection(raw string) Direction {
	switch Direction(strings.ToLower(strings.TrimSpace(raw))) {
	case DirectionRight:
		return DirectionRight
	case DirectionUp:
		return DirectionUp
	case DirectionDown:
		return DirectionDown
	default:
		return DirectionLeft
	}
}
