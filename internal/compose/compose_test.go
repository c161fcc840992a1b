package compose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"montage/internal/anim"
	"montage/internal/media"
	"montage/internal/style"
	"montage/internal/timeline"
	"montage/internal/transition"
)

type stubFrames struct {
	images map[string]image.Image
	fail   map[string]bool
}

func (s *stubFrames) FrameAt(_ context.Context, source string, _ float64) (image.Image, error) {
	if s.fail[source] {
		return nil, errors.New("decode failed")
	}
	img, ok := s.images[source]
	if !ok {
		return nil, errors.New("unknown source")
	}
	return img, nil
}

func (s *stubFrames) Info(source string) (*media.Info, bool) {
	img, ok := s.images[source]
	if !ok {
		return nil, false
	}
	b := img.Bounds()
	return &media.Info{Path: source, Kind: media.KindVideo, Width: b.Dx(), Height: b.Dy()}, true
}

func solid(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func testTimeline(items ...*timeline.Item) *timeline.Timeline {
	return &timeline.Timeline{
		Duration: 10,
		Canvas:   timeline.Dimension{Width: 1000, Height: 500},
		Tracks: []*timeline.Track{
			{Type: timeline.TrackVideo, Items: items},
		},
	}
}

func fullItem(id string) *timeline.Item {
	return &timeline.Item{
		ID:       id,
		Type:     timeline.ItemColor,
		Color:    "#ff0000",
		Start:    0,
		Duration: 10,
		Transform: timeline.Transform{
			X: 10, Y: 20, Width: 50, Height: 40, Opacity: 1,
		},
	}
}

func newTestRenderer(frames FrameSource) *Renderer {
	return NewRenderer(frames, NewGGBackend(), nil)
}

func TestCommandsGeometryFromPercentSpace(t *testing.T) {
	r := newTestRenderer(&stubFrames{})
	cmds, warnings := r.Commands(context.Background(), testTimeline(fullItem("a")), 1)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	g := cmds[0].Geometry
	if g.W != 500 || g.H != 200 {
		t.Fatalf("box = %vx%v, want 500x200", g.W, g.H)
	}
	// x=10% of 1000 plus half the box.
	if g.CX != 100+250 || g.CY != 100+100 {
		t.Fatalf("center = (%v,%v), want (350,200)", g.CX, g.CY)
	}
	if cmds[0].Op != OpFill {
		t.Fatalf("op = %v, want fill", cmds[0].Op)
	}
}

func TestCommandsOrderBackgroundFirstThenLayer(t *testing.T) {
	bg := fullItem("bg")
	bg.Background = true
	bg.Layer = 9
	low := fullItem("low")
	low.Layer = 1
	high := fullItem("high")
	high.Layer = 5

	tl := &timeline.Timeline{
		Duration: 10,
		Canvas:   timeline.Dimension{Width: 100, Height: 100},
		Tracks: []*timeline.Track{
			{Type: timeline.TrackVideo, Items: []*timeline.Item{high}},
			{Type: timeline.TrackOverlay, Items: []*timeline.Item{bg}},
			{Type: timeline.TrackVideo, Items: []*timeline.Item{low}},
		},
	}
	r := newTestRenderer(&stubFrames{})
	cmds, _ := r.Commands(context.Background(), tl, 1)
	if len(cmds) != 3 {
		t.Fatalf("commands = %d, want 3", len(cmds))
	}
	// Background paints first despite its high layer, then layers ascend.
	if cmds[0].Geometry.W != 100 {
		t.Fatal("expected background full-canvas command first")
	}
	if cmds[1].Geometry.CX == cmds[0].Geometry.CX && cmds[1].Geometry.W == 100 {
		t.Fatal("expected non-background command second")
	}
}

func TestCommandsOpacityMultiplies(t *testing.T) {
	it := fullItem("a")
	it.Transform.Opacity = 0.8
	it.Transition = &transition.Spec{Type: transition.TypeFade, Duration: 2, Timing: transition.TimingPostfix}
	it.Animation = &anim.Spec{Preset: anim.PresetFade, Duration: 4, Timing: anim.TimingEnter}

	r := newTestRenderer(&stubFrames{})
	// t=1: transition progress 0.5 (opacity 0.5 for main fades in), animation
	// progress eases 1/4 of the enter window.
	cmds, _ := r.Commands(context.Background(), testTimeline(it), 1)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1", len(cmds))
	}
	trans := transition.Style(*it.Transition, 0.5, transition.RoleMain)
	animD := anim.Style(it.Animation, 0, 10, 1)
	want := 0.8 * trans.Opacity * animD.Opacity
	if math.Abs(cmds[0].Opacity-want) > 1e-9 {
		t.Fatalf("opacity = %v, want %v", cmds[0].Opacity, want)
	}
}

func TestCommandsSkipFullyTransparent(t *testing.T) {
	it := fullItem("a")
	it.Transform.Opacity = 0
	r := newTestRenderer(&stubFrames{})
	cmds, warnings := r.Commands(context.Background(), testTimeline(it), 1)
	if len(cmds) != 0 || len(warnings) != 0 {
		t.Fatalf("expected nothing for invisible clip, got %d commands %d warnings", len(cmds), len(warnings))
	}
}

func TestCommandsMediaFailureBecomesWarning(t *testing.T) {
	ok := fullItem("ok")
	bad := &timeline.Item{
		ID: "bad", Type: timeline.ItemVideo, Source: "broken.mp4",
		Start: 0, Duration: 10,
		Transform: timeline.Transform{Width: 100, Height: 100, Opacity: 1},
	}
	tl := &timeline.Timeline{
		Duration: 10,
		Canvas:   timeline.Dimension{Width: 100, Height: 100},
		Tracks: []*timeline.Track{
			{Type: timeline.TrackVideo, Items: []*timeline.Item{bad}},
			{Type: timeline.TrackOverlay, Items: []*timeline.Item{ok}},
		},
	}
	r := newTestRenderer(&stubFrames{fail: map[string]bool{"broken.mp4": true}})
	cmds, warnings := r.Commands(context.Background(), tl, 1)
	if len(cmds) != 1 {
		t.Fatalf("commands = %d, want 1 (bad clip skipped)", len(cmds))
	}
	if len(warnings) != 1 || warnings[0].ItemID != "bad" {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestBackgroundFitModes(t *testing.T) {
	// 200x200 square source on a 1000x500 canvas.
	frames := &stubFrames{images: map[string]image.Image{
		"sq.png": solid(200, 200, color.White),
	}}
	r := newTestRenderer(frames)

	item := func(fit timeline.FitMode) *timeline.Item {
		return &timeline.Item{
			ID: "bg", Type: timeline.ItemImage, Source: "sq.png",
			Start: 0, Duration: 10, Background: true, Fit: fit,
			Transform: timeline.Transform{Opacity: 1},
		}
	}

	t.Run("cover trims source to canvas aspect", func(t *testing.T) {
		cmds, _ := r.Commands(context.Background(), testTimeline(item(timeline.FitCover)), 1)
		if len(cmds) != 1 {
			t.Fatalf("commands = %d", len(cmds))
		}
		c := cmds[0]
		if c.Geometry.W != 1000 || c.Geometry.H != 500 {
			t.Fatalf("cover dst = %vx%v, want full canvas", c.Geometry.W, c.Geometry.H)
		}
		if c.SrcRect == nil {
			t.Fatal("cover should crop the source")
		}
		if c.SrcRect.Dx() != 200 || c.SrcRect.Dy() != 100 {
			t.Fatalf("cover src = %dx%d, want 200x100", c.SrcRect.Dx(), c.SrcRect.Dy())
		}
		if c.SrcRect.Min.Y != 50 {
			t.Fatalf("cover src not centered: min.Y = %d", c.SrcRect.Min.Y)
		}
	})

	t.Run("contain letterboxes the destination", func(t *testing.T) {
		cmds, _ := r.Commands(context.Background(), testTimeline(item(timeline.FitContain)), 1)
		c := cmds[0]
		if c.Geometry.W != 500 || c.Geometry.H != 500 {
			t.Fatalf("contain dst = %vx%v, want 500x500", c.Geometry.W, c.Geometry.H)
		}
		if c.Geometry.CX != 500 || c.Geometry.CY != 250 {
			t.Fatalf("contain not centered: (%v,%v)", c.Geometry.CX, c.Geometry.CY)
		}
	})

	t.Run("fill stretches", func(t *testing.T) {
		cmds, _ := r.Commands(context.Background(), testTimeline(item(timeline.FitFill)), 1)
		c := cmds[0]
		if c.Geometry.W != 1000 || c.Geometry.H != 500 {
			t.Fatalf("fill dst = %vx%v, want full canvas", c.Geometry.W, c.Geometry.H)
		}
		if c.SrcRect != nil {
			t.Fatal("fill should not crop the source")
		}
	})
}

func TestCropRectPanZoom(t *testing.T) {
	img := solid(400, 200, color.White)
	it := &timeline.Item{
		Crop: &timeline.Crop{X: 100, Y: 0, Zoom: 2},
	}
	rect := cropRect(it, img)
	if rect == nil {
		t.Fatal("expected crop rect")
	}
	// Zoom 2 halves the sampled area; pan 100% pushes it fully right.
	if rect.Dx() != 200 || rect.Dy() != 100 {
		t.Fatalf("crop size = %dx%d, want 200x100", rect.Dx(), rect.Dy())
	}
	if rect.Min.X != 200 || rect.Min.Y != 0 {
		t.Fatalf("crop origin = (%d,%d), want (200,0)", rect.Min.X, rect.Min.Y)
	}
}

func TestCropRectNoop(t *testing.T) {
	img := solid(100, 100, color.White)
	if rect := cropRect(&timeline.Item{}, img); rect != nil {
		t.Fatal("no crop should yield nil rect")
	}
	if rect := cropRect(&timeline.Item{Crop: &timeline.Crop{Zoom: 1}}, img); rect != nil {
		t.Fatal("zoom 1 without pan should yield nil rect")
	}
}

func TestFilterChainOrder(t *testing.T) {
	it := &timeline.Item{
		Adjust: timeline.ColorAdjust{Brightness: 50},
		Filter: "noir",
	}
	trans := style.Identity()
	trans.Blur = 4
	animD := style.Identity()
	animD.Brightness = 2

	chain := filterChain(it, trans, animD)
	if len(chain) != 4 {
		t.Fatalf("chain stages = %d, want 4", len(chain))
	}
	if chain[0].Brightness != 1.5 {
		t.Fatalf("stage 0 should be the clip adjustment, got %+v", chain[0])
	}
	if chain[1].Saturate != 0 {
		t.Fatalf("stage 1 should be the noir preset, got %+v", chain[1])
	}
	if chain[2].Blur != 4 {
		t.Fatalf("stage 2 should be the transition rider, got %+v", chain[2])
	}
	if chain[3].Brightness != 2 {
		t.Fatalf("stage 3 should be the animation rider, got %+v", chain[3])
	}
}

func TestResolveClipShapes(t *testing.T) {
	inset := resolveClip(&style.Clip{Kind: style.ClipInset, Top: 10, Right: 20, Bottom: 10, Left: 20}, 200, 100)
	if inset.X != 40 || inset.Y != 10 || inset.W != 120 || inset.H != 80 {
		t.Fatalf("inset = %+v", inset)
	}

	circle := resolveClip(&style.Clip{Kind: style.ClipCircle, CX: 50, CY: 50, Radius: 100}, 300, 400)
	if circle.CX != 150 || circle.CY != 200 {
		t.Fatalf("circle center = (%v,%v)", circle.CX, circle.CY)
	}
	if math.Abs(circle.R-250) > 1e-9 {
		t.Fatalf("circle radius = %v, want half-diagonal 250", circle.R)
	}

	poly := resolveClip(&style.Clip{Kind: style.ClipPolygon, Points: []style.Point{
		{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 50, Y: 100},
	}}, 200, 100)
	if len(poly.Points) != 3 || poly.Points[2].X != 100 || poly.Points[2].Y != 100 {
		t.Fatalf("polygon = %+v", poly.Points)
	}

	if resolveClip(&style.Clip{Kind: style.ClipNone}, 10, 10) != nil {
		t.Fatal("clip none should resolve to nil")
	}
}

func TestRenderFrameDeterministic(t *testing.T) {
	frames := &stubFrames{images: map[string]image.Image{
		"a.png": solid(64, 64, color.RGBA{R: 200, G: 30, B: 30, A: 255}),
	}}
	it := &timeline.Item{
		ID: "a", Type: timeline.ItemImage, Source: "a.png",
		Start: 0, Duration: 10,
		Transform: timeline.Transform{X: 10, Y: 10, Width: 50, Height: 50, Opacity: 0.9, Rotation: 30},
		Adjust:    timeline.ColorAdjust{Contrast: 20},
	}
	tl := &timeline.Timeline{
		Duration: 10,
		Canvas:   timeline.Dimension{Width: 160, Height: 90},
		Tracks:   []*timeline.Track{{Type: timeline.TrackVideo, Items: []*timeline.Item{it}}},
	}
	r := newTestRenderer(frames)

	first, _, err := r.RenderFrame(context.Background(), tl, 3.25)
	if err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	second, _, err := r.RenderFrame(context.Background(), tl, 3.25)
	if err != nil {
		t.Fatalf("second RenderFrame() error = %v", err)
	}

	a, b := toRGBA(first), toRGBA(second)
	if len(a.Pix) != len(b.Pix) {
		t.Fatal("frame sizes differ")
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("pixel data differs at byte %d", i)
		}
	}
}

func TestRenderFrameDrawsInsideCanvasOnly(t *testing.T) {
	// A clip translated far off-canvas must not error and must leave the
	// canvas untouched black.
	it := fullItem("off")
	it.Transform.X = 500
	tl := testTimeline(it)
	tl.Canvas = timeline.Dimension{Width: 40, Height: 40}

	r := newTestRenderer(&stubFrames{})
	img, _, err := r.RenderFrame(context.Background(), tl, 1)
	if err != nil {
		t.Fatalf("RenderFrame() error = %v", err)
	}
	rgba := toRGBA(img)
	for i := 0; i < len(rgba.Pix); i += 4 {
		if rgba.Pix[i] != 0 || rgba.Pix[i+1] != 0 || rgba.Pix[i+2] != 0 {
			t.Fatalf("expected black canvas, found color at byte %d", i)
		}
	}
}
