package compose

import (
	"image"
	"image/color"

	"montage/internal/style"
)

// Op identifies what a draw command paints.
type Op int

const (
	OpFill Op = iota
	OpImage
	OpText
)

// Geometry places a command's box on the canvas. The box is W by H pixels,
// centered at (CX+TranslateX, CY+TranslateY), with scale, skew, rotation,
// and flips applied about the center in that order.
type Geometry struct {
	CX, CY                 float64
	W, H                   float64
	TranslateX, TranslateY float64
	ScaleX, ScaleY         float64
	SkewX, SkewY           float64 // degrees
	Rotate                 float64 // degrees
	FlipH, FlipV           bool
}

// FilterOp is one stage of the per-pixel filter chain. Stages apply in list
// order because blur and contrast do not commute.
type FilterOp struct {
	Brightness float64 // multiplier, 1 = identity
	Contrast   float64
	Saturate   float64
	Sepia      float64 // 0 = identity
	HueRotate  float64 // degrees
	Blur       float64 // pixels
}

func identityFilter() FilterOp {
	return FilterOp{Brightness: 1, Contrast: 1, Saturate: 1}
}

func (f FilterOp) identity() bool {
	return f.Brightness == 1 && f.Contrast == 1 && f.Saturate == 1 &&
		f.Sepia == 0 && f.HueRotate == 0 && f.Blur == 0
}

// ClipShape is a clip region resolved to the command's local pixel space,
// where (0,0) is the box's top-left corner.
type ClipShape struct {
	Kind   style.ClipKind
	X, Y   float64 // inset rect
	W, H   float64
	CX, CY float64 // circle center
	R      float64
	Points []style.Point // polygon, local px
}

// Stroke is an outline pass drawn after the fill.
type Stroke struct {
	Width float64
	Color color.Color
}

// TextPass is one fill of the string with an offset and color. Effects like
// neon and echo emit several passes back to front.
type TextPass struct {
	DX, DY  float64
	Color   color.Color
	Opacity float64
}

// TextSpec carries everything the backend needs to set the face and run the
// passes.
type TextSpec struct {
	Content  string
	FontPath string
	Size     float64 // px
	Chip     *color.RGBA
	Passes   []TextPass
}

// Command is one immutable draw instruction. A frame is an ordered list of
// commands; the backend executes them without knowing anything about clips,
// tracks, or transitions.
type Command struct {
	Op       Op
	Geometry Geometry
	Opacity  float64
	Blend    style.BlendMode
	Filters  []FilterOp
	Clip     *ClipShape

	Image   image.Image      // OpImage
	SrcRect *image.Rectangle // optional source sub-rectangle
	Fill    color.Color      // OpFill
	Stroke  *Stroke
	Text    *TextSpec // OpText
}

// Backend rasterizes a command list onto a canvas.
type Backend interface {
	Render(width, height int, cmds []Command) (image.Image, error)
}
