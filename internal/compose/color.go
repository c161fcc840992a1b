package compose

import (
	"image/color"
	"strings"
)

// parseHexColor decodes #rgb and #rrggbb strings. Anything unparseable
// returns the fallback so a malformed project still renders.
func parseHexColor(raw string, fallback color.RGBA) color.RGBA {
	s := strings.TrimSpace(strings.TrimPrefix(raw, "#"))
	switch len(s) {
	case 3:
		r, okR := hexNibble(s[0])
		g, okG := hexNibble(s[1])
		b, okB := hexNibble(s[2])
		if okR && okG && okB {
			return color.RGBA{R: r * 17, G: g * 17, B: b * 17, A: 255}
		}
	case 6:
		r, okR := hexByte(s[0], s[1])
		g, okG := hexByte(s[2], s[3])
		b, okB := hexByte(s[4], s[5])
		if okR && okG && okB {
			return color.RGBA{R: r, G: g, B: b, A: 255}
		}
	}
	return fallback
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func hexByte(hi, lo byte) (uint8, bool) {
	h, okH := hexNibble(hi)
	l, okL := hexNibble(lo)
	return h<<4 | l, okH && okL
}
