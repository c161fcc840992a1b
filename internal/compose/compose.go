package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"
	"sort"

	"montage/internal/anim"
	"montage/internal/logging"
	"montage/internal/media"
	"montage/internal/resolve"
	"montage/internal/style"
	"montage/internal/timeline"
	"montage/internal/transition"
)

// FrameSource serves decoded media samples to the renderer.
type FrameSource interface {
	FrameAt(ctx context.Context, source string, at float64) (image.Image, error)
	Info(source string) (*media.Info, bool)
}

// Warning records a clip that could not be drawn on one frame.
type Warning struct {
	ItemID string
	Source string
	Err    error
}

func (w Warning) String() string {
	return fmt.Sprintf("clip %s (%s) not drawn: %v", w.ItemID, w.Source, w.Err)
}

// Renderer converts a resolved frame into a draw command list and executes it
// on a backend. One renderer serves one export; it holds no mutable state
// beyond its collaborators, so rendering the same timestamp twice produces
// identical commands.
type Renderer struct {
	frames  FrameSource
	backend Backend
	logger  *slog.Logger
}

// NewRenderer wires a renderer to its media source and raster backend.
func NewRenderer(frames FrameSource, backend Backend, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = logging.NewNop()
	}
	if backend == nil {
		backend = NewGGBackend()
	}
	return &Renderer{frames: frames, backend: backend, logger: logger}
}

// RenderFrame draws the timeline at time t. Per-clip media failures become
// warnings and the frame renders without the affected clip.
func (r *Renderer) RenderFrame(ctx context.Context, tl *timeline.Timeline, t float64) (image.Image, []Warning, error) {
	cmds, warnings := r.Commands(ctx, tl, t)
	for _, w := range warnings {
		r.logger.Warn("clip skipped on frame",
			logging.String(logging.FieldItem, w.ItemID),
			logging.String(logging.FieldSource, w.Source),
			logging.Error(w.Err))
	}
	img, err := r.backend.Render(tl.Canvas.Width, tl.Canvas.Height, cmds)
	if err != nil {
		return nil, warnings, err
	}
	return img, warnings, nil
}

// Commands builds the ordered draw list for one timestamp: background items
// first, then ascending layer, regardless of track order.
func (r *Renderer) Commands(ctx context.Context, tl *timeline.Timeline, t float64) ([]Command, []Warning) {
	items := resolve.Frame(tl, t)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Item, items[j].Item
		if a.Background != b.Background {
			return a.Background
		}
		return a.Layer < b.Layer
	})

	var cmds []Command
	var warnings []Warning
	for _, ri := range items {
		cmd, err := r.build(ctx, tl, ri, t)
		if err != nil {
			warnings = append(warnings, Warning{ItemID: ri.Item.ID, Source: ri.Item.Source, Err: err})
			continue
		}
		if cmd != nil {
			cmds = append(cmds, *cmd)
		}
	}
	return cmds, warnings
}

func (r *Renderer) build(ctx context.Context, tl *timeline.Timeline, ri resolve.RenderItem, t float64) (*Command, error) {
	it := ri.Item
	canvasW := float64(tl.Canvas.Width)
	canvasH := float64(tl.Canvas.Height)

	delta := style.Identity()
	if ri.Transition.Active() {
		delta = transition.Style(*ri.Transition, ri.Progress, ri.Role)
	}
	animDelta := anim.Style(it.Animation, it.Start, it.Duration, t)

	opacity := it.Transform.Opacity * delta.Opacity * animDelta.Opacity
	if opacity <= 0 {
		return nil, nil
	}
	if opacity > 1 {
		opacity = 1
	}

	combined := delta.Combine(animDelta)
	geo := r.geometry(it, combined, canvasW, canvasH)

	cmd := &Command{
		Geometry: geo,
		Opacity:  opacity,
		Blend:    combined.Blend,
		Filters:  filterChain(it, delta, animDelta),
	}
	if combined.Clip != nil {
		cmd.Clip = resolveClip(combined.Clip, geo.W, geo.H)
	}
	if it.Border != nil && it.Border.Width > 0 && !it.Background {
		cmd.Stroke = &Stroke{
			Width: it.Border.Width,
			Color: parseHexColor(it.Border.Color, color.RGBA{R: 255, G: 255, B: 255, A: 255}),
		}
	}

	switch it.Type {
	case timeline.ItemColor:
		cmd.Op = OpFill
		cmd.Fill = parseHexColor(it.Color, color.RGBA{A: 255})
	case timeline.ItemText:
		if it.Text == nil {
			return nil, nil
		}
		cmd.Op = OpText
		sizePx := it.Text.FontSize / 100 * canvasH
		if sizePx <= 0 {
			sizePx = canvasH * 0.08
		}
		cmd.Text = textSpec(it.Text, tl.FontPath, sizePx)
	case timeline.ItemVideo, timeline.ItemImage:
		img, err := r.frames.FrameAt(ctx, it.Source, it.SourceTime(t))
		if err != nil {
			return nil, err
		}
		cmd.Op = OpImage
		cmd.Image = img
		cmd.SrcRect = cropRect(it, img)
		if it.Background {
			r.fitBackground(cmd, it, canvasW, canvasH)
		}
	default:
		return nil, nil
	}
	return cmd, nil
}

// geometry resolves the item's percent-space box and folds in the combined
// delta. Translation converts percent of canvas to pixels; everything else
// passes through to the backend's transform stack.
func (r *Renderer) geometry(it *timeline.Item, d style.Delta, canvasW, canvasH float64) Geometry {
	var w, h, cx, cy float64
	if it.Background {
		w, h = canvasW, canvasH
		cx, cy = canvasW/2, canvasH/2
	} else {
		w = it.Transform.Width / 100 * canvasW
		h = it.Transform.Height / 100 * canvasH
		cx = it.Transform.X/100*canvasW + w/2
		cy = it.Transform.Y/100*canvasH + h/2
	}
	return Geometry{
		CX: cx, CY: cy, W: w, H: h,
		TranslateX: d.TranslateX / 100 * canvasW,
		TranslateY: d.TranslateY / 100 * canvasH,
		ScaleX:     d.Scale * d.ScaleX,
		ScaleY:     d.Scale * d.ScaleY,
		SkewX:      d.SkewX,
		SkewY:      d.SkewY,
		Rotate:     it.Transform.Rotation + d.Rotate,
		FlipH:      it.Transform.FlipH,
		FlipV:      it.Transform.FlipV,
	}
}

// filterChain builds the stage list in its fixed order: the clip's own color
// adjustments, its named preset, then the transition and animation riders.
func filterChain(it *timeline.Item, transitionDelta, animDelta style.Delta) []FilterOp {
	var chain []FilterOp
	if op := adjustFilter(it.Adjust); !op.identity() {
		chain = append(chain, op)
	}
	if it.Filter != "" {
		if op, ok := presetFilter(it.Filter); ok && !op.identity() {
			chain = append(chain, op)
		}
	}
	if transitionDelta.HasFilters() {
		chain = append(chain, deltaFilter(transitionDelta))
	}
	if animDelta.HasFilters() {
		chain = append(chain, deltaFilter(animDelta))
	}
	return chain
}

func adjustFilter(a timeline.ColorAdjust) FilterOp {
	op := identityFilter()
	op.Brightness = 1 + a.Brightness/100
	op.Contrast = 1 + a.Contrast/100
	op.Saturate = 1 + a.Saturation/100
	op.Sepia = a.Sepia / 100
	op.HueRotate = a.Hue
	op.Blur = a.Blur
	return op
}

func deltaFilter(d style.Delta) FilterOp {
	return FilterOp{
		Brightness: d.Brightness,
		Contrast:   d.Contrast,
		Saturate:   d.Saturate,
		Sepia:      d.Sepia,
		HueRotate:  d.HueRotate,
		Blur:       d.Blur,
	}
}

// cropRect maps the clip's pan/zoom crop onto a source sub-rectangle sized
// source/zoom, offset by the pan percentages.
func cropRect(it *timeline.Item, img image.Image) *image.Rectangle {
	if it.Crop == nil || it.Crop.Zoom <= 1 && it.Crop.X == 0 && it.Crop.Y == 0 {
		return nil
	}
	zoom := it.Crop.Zoom
	if zoom < 1 {
		zoom = 1
	}
	bounds := img.Bounds()
	sw, sh := float64(bounds.Dx()), float64(bounds.Dy())
	w := sw / zoom
	h := sh / zoom
	x := (sw - w) * clamp01(it.Crop.X/100)
	y := (sh - h) * clamp01(it.Crop.Y/100)
	rect := image.Rect(
		bounds.Min.X+int(x),
		bounds.Min.Y+int(y),
		bounds.Min.X+int(x+w),
		bounds.Min.Y+int(y+h),
	)
	return &rect
}

// fitBackground adjusts the command so the source fills the canvas according
// to the item's fit mode, working from whatever source rectangle the crop
// left behind.
func (r *Renderer) fitBackground(cmd *Command, it *timeline.Item, canvasW, canvasH float64) {
	src := cmd.Image.Bounds()
	if cmd.SrcRect != nil {
		src = *cmd.SrcRect
	}
	sw, sh := float64(src.Dx()), float64(src.Dy())
	if sw <= 0 || sh <= 0 {
		return
	}
	canvasAspect := canvasW / canvasH
	srcAspect := sw / sh

	switch it.Fit {
	case timeline.FitContain:
		// Letterbox: shrink the destination box to the source aspect.
		w, h := canvasW, canvasH
		if srcAspect > canvasAspect {
			h = canvasW / srcAspect
		} else {
			w = canvasH * srcAspect
		}
		cmd.Geometry.W = w
		cmd.Geometry.H = h
	case timeline.FitFill:
		// Stretch: destination stays the full canvas.
	default:
		// Cover: trim the source rectangle to the canvas aspect, centered.
		w, h := sw, sh
		if srcAspect > canvasAspect {
			w = sh * canvasAspect
		} else {
			h = sw / canvasAspect
		}
		rect := image.Rect(
			src.Min.X+int((sw-w)/2),
			src.Min.Y+int((sh-h)/2),
			src.Min.X+int((sw-w)/2+w),
			src.Min.Y+int((sh-h)/2+h),
		)
		cmd.SrcRect = &rect
	}
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

// resolveClip converts a percent-space clip shape into the box's local pixel
// space, origin at the box's top-left corner.
func resolveClip(c *style.Clip, w, h float64) *ClipShape {
	out := &ClipShape{Kind: c.Kind}
	switch c.Kind {
	case style.ClipInset:
		out.X = c.Left / 100 * w
		out.Y = c.Top / 100 * h
		out.W = w - (c.Left+c.Right)/100*w
		out.H = h - (c.Top+c.Bottom)/100*h
		if out.W < 0 {
			out.W = 0
		}
		if out.H < 0 {
			out.H = 0
		}
	case style.ClipCircle:
		out.CX = c.CX / 100 * w
		out.CY = c.CY / 100 * h
		// Radius percent is measured against the half-diagonal so 100%
		// always covers the box's corners.
		halfDiag := math.Hypot(w, h) / 2
		out.R = c.Radius / 100 * halfDiag
	case style.ClipPolygon:
		out.Points = make([]style.Point, len(c.Points))
		for i, p := range c.Points {
			out.Points[i] = style.Point{X: p.X / 100 * w, Y: p.Y / 100 * h}
		}
	default:
		return nil
	}
	return out
}
