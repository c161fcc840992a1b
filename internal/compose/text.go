package compose

import (
	"image/color"

	"montage/internal/timeline"
)

var (
	textDefaultColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	textShadowColor  = color.RGBA{A: 255}
	textGlitchRed    = color.RGBA{R: 255, G: 0, B: 60, A: 255}
	textGlitchCyan   = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	textChipColor    = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	textOutlineColor = color.RGBA{A: 255}
)

// ringOffsets are the eight compass directions used to fake a text stroke by
// refilling the string around the center. The raster API fills glyphs only,
// so outlines are built from repeated offset fills.
var ringOffsets = [8][2]float64{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-0.7, -0.7}, {0.7, -0.7}, {-0.7, 0.7}, {0.7, 0.7},
}

// textSpec expands a text clip's effect into ordered fill passes, back to
// front. sizePx is the resolved font size on this canvas.
func textSpec(ts *timeline.TextStyle, fallbackFont string, sizePx float64) *TextSpec {
	main := parseHexColor(ts.Color, textDefaultColor)
	accent := parseHexColor(ts.AccentColor, textOutlineColor)

	spec := &TextSpec{
		Content:  ts.Content,
		FontPath: ts.FontPath,
		Size:     sizePx,
	}
	if spec.FontPath == "" {
		spec.FontPath = fallbackFont
	}

	mainPass := TextPass{Color: main, Opacity: 1}

	switch ts.Effect {
	case "shadow":
		d := sizePx * 0.06
		spec.Passes = append(spec.Passes,
			TextPass{DX: d, DY: d, Color: textShadowColor, Opacity: 0.6},
			mainPass)
	case "outline":
		spec.Passes = append(spec.Passes, ring(sizePx*0.05, accent, 1)...)
		spec.Passes = append(spec.Passes, mainPass)
	case "neon":
		glow := parseHexColor(ts.AccentColor, main)
		spec.Passes = append(spec.Passes, ring(sizePx*0.16, glow, 0.12)...)
		spec.Passes = append(spec.Passes, ring(sizePx*0.09, glow, 0.25)...)
		spec.Passes = append(spec.Passes, ring(sizePx*0.04, glow, 0.5)...)
		spec.Passes = append(spec.Passes, mainPass)
	case "glitch":
		d := sizePx * 0.05
		spec.Passes = append(spec.Passes,
			TextPass{DX: -d, Color: textGlitchRed, Opacity: 0.85},
			TextPass{DX: d, Color: textGlitchCyan, Opacity: 0.85},
			mainPass)
	case "echo":
		d := sizePx * 0.08
		for i := 3; i >= 1; i-- {
			spec.Passes = append(spec.Passes, TextPass{
				DX:      d * float64(i),
				DY:      d * float64(i) * 0.4,
				Color:   main,
				Opacity: 0.5 / float64(i+1),
			})
		}
		spec.Passes = append(spec.Passes, mainPass)
	case "hollow":
		// Stroke only: the ring without a center fill.
		spec.Passes = append(spec.Passes, ring(sizePx*0.04, main, 1)...)
	case "background":
		chip := parseHexColor(ts.AccentColor, textChipColor)
		spec.Chip = &chip
		spec.Passes = append(spec.Passes, mainPass)
	default:
		spec.Passes = append(spec.Passes, mainPass)
	}
	return spec
}

func ring(radius float64, c color.RGBA, opacity float64) []TextPass {
	out := make([]TextPass, 0, len(ringOffsets))
	for _, off := range ringOffsets {
		out = append(out, TextPass{
			DX:      off[0] * radius,
			DY:      off[1] * radius,
			Color:   c,
			Opacity: opacity,
		})
	}
	return out
}
