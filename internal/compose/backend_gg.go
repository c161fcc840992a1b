package compose

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"montage/internal/style"
)

// GGBackend rasterizes command lists with the gg software renderer. Drawing
// is clipped to the canvas by gg's clip stack, so content never bleeds past
// the frame edges.
type GGBackend struct{}

// NewGGBackend returns the software raster backend.
func NewGGBackend() *GGBackend {
	return &GGBackend{}
}

// Render executes the commands in order over an opaque black canvas.
func (b *GGBackend) Render(width, height int, cmds []Command) (image.Image, error) {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.RGBA{A: 1})
	for _, cmd := range cmds {
		b.execute(dc, cmd)
	}
	return dc.Image(), nil
}

func (b *GGBackend) execute(dc *gg.Context, cmd Command) {
	g := cmd.Geometry

	dc.Push()
	defer dc.Pop()

	// Command opacity and blend mode composite through an isolated layer so
	// overlapping passes inside one command never double-blend.
	dc.PushLayer(toGGBlend(cmd.Blend), cmd.Opacity)
	defer dc.PopLayer()

	// Transform order: translate to center, scale, skew, rotate, flip.
	dc.Translate(g.CX+g.TranslateX, g.CY+g.TranslateY)
	if g.ScaleX != 1 || g.ScaleY != 1 {
		dc.Scale(g.ScaleX, g.ScaleY)
	}
	if g.SkewX != 0 || g.SkewY != 0 {
		dc.Shear(math.Tan(rad(g.SkewX)), math.Tan(rad(g.SkewY)))
	}
	if g.Rotate != 0 {
		dc.Rotate(rad(g.Rotate))
	}
	if g.FlipH || g.FlipV {
		fx, fy := 1.0, 1.0
		if g.FlipH {
			fx = -1
		}
		if g.FlipV {
			fy = -1
		}
		dc.Scale(fx, fy)
	}
	// Local space: origin at the box's top-left corner.
	dc.Translate(-g.W/2, -g.H/2)

	if cmd.Clip != nil {
		b.applyClip(dc, cmd.Clip)
	}

	switch cmd.Op {
	case OpFill:
		dc.SetColor(cmd.Fill)
		dc.DrawRectangle(0, 0, g.W, g.H)
		dc.Fill()
	case OpImage:
		b.drawImage(dc, cmd)
	case OpText:
		b.drawText(dc, cmd)
	}

	if cmd.Stroke != nil && cmd.Stroke.Width > 0 {
		dc.SetColor(cmd.Stroke.Color)
		dc.SetLineWidth(cmd.Stroke.Width)
		dc.DrawRectangle(0, 0, g.W, g.H)
		dc.Stroke()
	}
}

// drawImage fills the box path with a brush that samples the source through
// the inverse transform. Filling a path keeps rotation, skew, and clip shapes
// exact where a rect blit could not follow them.
func (b *GGBackend) drawImage(dc *gg.Context, cmd Command) {
	img := applyFilters(cmd.Image, cmd.Filters)
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = toRGBA(img)
	}
	src := rgba.Bounds()
	if cmd.SrcRect != nil {
		src = *cmd.SrcRect
	}
	if src.Dx() <= 0 || src.Dy() <= 0 {
		return
	}

	g := cmd.Geometry
	inv := dc.GetTransform().Invert()
	scaleX := float64(src.Dx()) / g.W
	scaleY := float64(src.Dy()) / g.H

	brush := gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		local := inv.TransformPoint(gg.Pt(x, y))
		u := float64(src.Min.X) + local.X*scaleX
		v := float64(src.Min.Y) + local.Y*scaleY
		return sampleBilinear(rgba, u, v, src)
	})
	dc.SetFillBrush(brush)
	dc.DrawRectangle(0, 0, g.W, g.H)
	dc.Fill()
}

func (b *GGBackend) drawText(dc *gg.Context, cmd Command) {
	spec := cmd.Text
	if spec == nil || spec.Content == "" || spec.FontPath == "" {
		return
	}
	if err := dc.LoadFontFace(spec.FontPath, spec.Size); err != nil {
		return
	}
	g := cmd.Geometry
	cx, cy := g.W/2, g.H/2

	if spec.Chip != nil {
		w, h := dc.MeasureString(spec.Content)
		pad := spec.Size * 0.3
		dc.SetColor(*spec.Chip)
		dc.DrawRoundedRectangle(cx-w/2-pad, cy-h/2-pad, w+2*pad, h+2*pad, pad/2)
		dc.Fill()
	}
	for _, pass := range spec.Passes {
		dc.SetColor(withAlpha(pass.Color, pass.Opacity))
		dc.DrawStringAnchored(spec.Content, cx+pass.DX, cy+pass.DY, 0.5, 0.5)
	}
}

func (b *GGBackend) applyClip(dc *gg.Context, clip *ClipShape) {
	switch clip.Kind {
	case style.ClipInset:
		dc.DrawRectangle(clip.X, clip.Y, clip.W, clip.H)
		dc.Clip()
	case style.ClipCircle:
		dc.DrawCircle(clip.CX, clip.CY, clip.R)
		dc.Clip()
	case style.ClipPolygon:
		if len(clip.Points) < 3 {
			return
		}
		dc.MoveTo(clip.Points[0].X, clip.Points[0].Y)
		for _, p := range clip.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		dc.Clip()
	}
}

// sampleBilinear reads the source at a fractional position, clamping at the
// sample rectangle's edges.
func sampleBilinear(img *image.RGBA, u, v float64, src image.Rectangle) gg.RGBA {
	u -= 0.5
	v -= 0.5
	x0 := int(math.Floor(u))
	y0 := int(math.Floor(v))
	fx := u - float64(x0)
	fy := v - float64(y0)

	c00 := pixelAt(img, x0, y0, src)
	c10 := pixelAt(img, x0+1, y0, src)
	c01 := pixelAt(img, x0, y0+1, src)
	c11 := pixelAt(img, x0+1, y0+1, src)

	lerp := func(a, b, t float64) float64 { return a + (b-a)*t }
	return gg.RGBA{
		R: lerp(lerp(c00.R, c10.R, fx), lerp(c01.R, c11.R, fx), fy),
		G: lerp(lerp(c00.G, c10.G, fx), lerp(c01.G, c11.G, fx), fy),
		B: lerp(lerp(c00.B, c10.B, fx), lerp(c01.B, c11.B, fx), fy),
		A: lerp(lerp(c00.A, c10.A, fx), lerp(c01.A, c11.A, fx), fy),
	}
}

func pixelAt(img *image.RGBA, x, y int, src image.Rectangle) gg.RGBA {
	x = clampInt(x, src.Min.X, src.Max.X-1)
	y = clampInt(y, src.Min.Y, src.Max.Y-1)
	i := img.PixOffset(x, y)
	return gg.RGBA{
		R: float64(img.Pix[i]) / 255,
		G: float64(img.Pix[i+1]) / 255,
		B: float64(img.Pix[i+2]) / 255,
		A: float64(img.Pix[i+3]) / 255,
	}
}

func toGGBlend(mode style.BlendMode) gg.BlendMode {
	switch mode {
	case style.BlendScreen:
		return gg.BlendScreen
	case style.BlendMultiply:
		return gg.BlendMultiply
	case style.BlendOverlay:
		return gg.BlendOverlay
	default:
		return gg.BlendNormal
	}
}

func withAlpha(c color.Color, opacity float64) color.Color {
	if opacity >= 1 {
		return c
	}
	r, g, bl, a := c.RGBA()
	return color.NRGBA64{
		R: uint16(r),
		G: uint16(g),
		B: uint16(bl),
		A: uint16(float64(a) * opacity),
	}
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
