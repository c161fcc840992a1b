package compose

import (
	"image"
	"image/draw"
	"math"
)

// applyFilters runs the filter chain over a copy of src, stage by stage.
// The input image is never mutated.
func applyFilters(src image.Image, ops []FilterOp) image.Image {
	active := false
	for _, op := range ops {
		if !op.identity() {
			active = true
			break
		}
	}
	if !active {
		return src
	}

	rgba := toRGBA(src)
	for _, op := range ops {
		if op.identity() {
			continue
		}
		applyColorOp(rgba, op)
		if op.Blur > 0 {
			rgba = boxBlur(rgba, op.Blur)
		}
	}
	return rgba
}

func toRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), src, bounds.Min, draw.Src)
	return out
}

func applyColorOp(img *image.RGBA, op FilterOp) {
	colorPass := op.Brightness != 1 || op.Contrast != 1 || op.Saturate != 1 ||
		op.Sepia != 0 || op.HueRotate != 0
	if !colorPass {
		return
	}
	hueCos := math.Cos(op.HueRotate * math.Pi / 180)
	hueSin := math.Sin(op.HueRotate * math.Pi / 180)

	pix := img.Pix
	for i := 0; i < len(pix); i += 4 {
		r := float64(pix[i]) / 255
		g := float64(pix[i+1]) / 255
		b := float64(pix[i+2]) / 255

		if op.Brightness != 1 {
			r *= op.Brightness
			g *= op.Brightness
			b *= op.Brightness
		}
		if op.Contrast != 1 {
			r = (r-0.5)*op.Contrast + 0.5
			g = (g-0.5)*op.Contrast + 0.5
			b = (b-0.5)*op.Contrast + 0.5
		}
		if op.Saturate != 1 {
			luma := 0.2126*r + 0.7152*g + 0.0722*b
			r = luma + (r-luma)*op.Saturate
			g = luma + (g-luma)*op.Saturate
			b = luma + (b-luma)*op.Saturate
		}
		if op.HueRotate != 0 {
			r, g, b = rotateHue(r, g, b, hueCos, hueSin)
		}
		if op.Sepia != 0 {
			sr := 0.393*r + 0.769*g + 0.189*b
			sg := 0.349*r + 0.686*g + 0.168*b
			sb := 0.272*r + 0.534*g + 0.131*b
			r = r + (sr-r)*op.Sepia
			g = g + (sg-g)*op.Sepia
			b = b + (sb-b)*op.Sepia
		}

		pix[i] = clampByte(r)
		pix[i+1] = clampByte(g)
		pix[i+2] = clampByte(b)
	}
}

// rotateHue applies the standard hue rotation matrix around the luma axis.
func rotateHue(r, g, b, cos, sin float64) (float64, float64, float64) {
	nr := (0.213+cos*0.787-sin*0.213)*r + (0.715-cos*0.715-sin*0.715)*g + (0.072-cos*0.072+sin*0.928)*b
	ng := (0.213-cos*0.213+sin*0.143)*r + (0.715+cos*0.285+sin*0.140)*g + (0.072-cos*0.072-sin*0.283)*b
	nb := (0.213-cos*0.213-sin*0.787)*r + (0.715-cos*0.715+sin*0.715)*g + (0.072+cos*0.928+sin*0.072)*b
	return nr, ng, nb
}

// boxBlur approximates a gaussian with three box passes, the usual cheap
// software blur. Radius follows the CSS convention of blur(px) ≈ sigma.
func boxBlur(img *image.RGBA, radius float64) *image.RGBA {
	r := int(radius + 0.5)
	if r < 1 {
		return img
	}
	out := img
	for pass := 0; pass < 3; pass++ {
		out = boxBlurPass(out, r, true)
		out = boxBlurPass(out, r, false)
	}
	return out
}

func boxBlurPass(img *image.RGBA, radius int, horizontal bool) *image.RGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewRGBA(bounds)
	window := float64(2*radius + 1)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sr, sg, sb, sa float64
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx = clampInt(x+k, 0, w-1)
				} else {
					sy = clampInt(y+k, 0, h-1)
				}
				i := img.PixOffset(sx, sy)
				sr += float64(img.Pix[i])
				sg += float64(img.Pix[i+1])
				sb += float64(img.Pix[i+2])
				sa += float64(img.Pix[i+3])
			}
			i := out.PixOffset(x, y)
			out.Pix[i] = uint8(sr/window + 0.5)
			out.Pix[i+1] = uint8(sg/window + 0.5)
			out.Pix[i+2] = uint8(sb/window + 0.5)
			out.Pix[i+3] = uint8(sa/window + 0.5)
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
