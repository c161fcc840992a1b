package style

// BlendMode selects how a clip's pixels combine with what is already drawn.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendScreen
	BlendMultiply
	BlendOverlay
)

// ClipKind identifies the shape family of a clip region.
type ClipKind int

const (
	ClipNone ClipKind = iota
	ClipInset
	ClipCircle
	ClipPolygon
)

// Point is a 2D coordinate in percent space.
type Point struct {
	X float64
	Y float64
}

// Clip describes a clip region in percentages of the clip rectangle.
// For ClipInset the four edge fields are percentages trimmed from each side.
// For ClipCircle, Radius is a percentage of the half-diagonal and CX/CY locate
// the center. For ClipPolygon, Points holds the vertices in draw order.
type Clip struct {
	Kind   ClipKind
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
	Radius float64
	CX     float64
	CY     float64
	Points []Point
}

// Delta is one engine's contribution to a clip's rendered style.
type Delta struct {
	Opacity    float64 // multiplier, 1 = unchanged
	Scale      float64 // uniform scale multiplier
	ScaleX     float64 // horizontal scale multiplier
	ScaleY     float64 // vertical scale multiplier
	Rotate     float64 // degrees, additive
	TranslateX float64 // percent of canvas width, additive
	TranslateY float64 // percent of canvas height, additive
	SkewX      float64 // degrees, additive
	SkewY      float64 // degrees, additive
	Blur       float64 // pixels, additive
	Brightness float64 // filter multiplier, 1 = identity
	Contrast   float64 // filter multiplier, 1 = identity
	Saturate   float64 // filter multiplier, 1 = identity
	Sepia      float64 // filter amount, 0 = identity
	HueRotate  float64 // degrees, additive
	Clip       *Clip
	Blend      BlendMode
}

// Identity returns a Delta that leaves the clip untouched.
func Identity() Delta {
	return Delta{
		Opacity:    1,
		Scale:      1,
		ScaleX:     1,
		ScaleY:     1,
		Brightness: 1,
		Contrast:   1,
		Saturate:   1,
	}
}

// Combine folds another delta into d. Multiplicative channels multiply,
// additive channels add. A clip shape or non-normal blend mode in other wins
// over d's; two shaped deltas never meet in practice because animations do not
// emit clip shapes.
func (d Delta) Combine(other Delta) Delta {
	out := d
	out.Opacity *= other.Opacity
	out.Scale *= other.Scale
	out.ScaleX *= other.ScaleX
	out.ScaleY *= other.ScaleY
	out.Rotate += other.Rotate
	out.TranslateX += other.TranslateX
	out.TranslateY += other.TranslateY
	out.SkewX += other.SkewX
	out.SkewY += other.SkewY
	out.Blur += other.Blur
	out.Brightness *= other.Brightness
	out.Contrast *= other.Contrast
	out.Saturate *= other.Saturate
	out.Sepia = clampUnit(out.Sepia + other.Sepia)
	out.HueRotate += other.HueRotate
	if other.Clip != nil {
		out.Clip = other.Clip
	}
	if other.Blend != BlendNormal {
		out.Blend = other.Blend
	}
	return out
}

// HasFilters reports whether the delta carries any filter rider the
// compositor must apply per pixel.
func (d Delta) HasFilters() bool {
	return d.Blur > 0 || d.Brightness != 1 || d.Contrast != 1 || d.Saturate != 1 || d.Sepia > 0 || d.HueRotate != 0
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
