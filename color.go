package physics2d

import (
	"fmt"
	"math"
)

// Color is an RGB triple with components in [0, 1]. The core stores it for
// renderers and never reads it.
type Color struct {
	R, G, B float64
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// HSV converts a hue in degrees [0, 360) with saturation and value in [0, 1]
// to RGB.
func HSV(h, s, v float64) Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g = c, x
	case h < 120:
		r, g = x, c
	case h < 180:
		g, b = c, x
	case h < 240:
		g, b = x, c
	case h < 300:
		r, b = x, c
	default:
		r, b = c, x
	}
	return Color{r + m, g + m, b + m}
}

// ParseHexColor parses "#rrggbb".
func ParseHexColor(s string) (Color, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("invalid colour %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255}, nil
}

// RGB8 returns the colour as 8-bit channels.
func (c Color) RGB8() (r, g, b uint8) {
	to8 := func(f float64) uint8 {
		return uint8(math.Round(Clamp(f, 0, 1) * 255))
	}
	return to8(c.R), to8(c.G), to8(c.B)
}

// Hex formats the colour as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
