// Package color implements the palette color value type, conversions between
// RGB, HSL, HSV, CMYK and XYZ, and the channel-level blend primitives.
//
// Colors are stored as 24-bit RGB; every other space is a view computed on
// demand. Channel ratios are quantized back to octets with round-half-to-even.
package color

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

// quantize converts a unit channel ratio to an octet using round-half-to-even.
func quantize(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.RoundToEven(v * 255))
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

// wrapHue normalizes a hue in degrees to the range [0, 360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// FromRatios constructs a Color from unit RGB channel ratios, clamping each.
func FromRatios(r, g, b float64) Color {
	return Color{quantize(r), quantize(g), quantize(b)}
}

// FromHSL constructs a Color from hue in degrees and unit saturation/lightness.
func FromHSL(h, s, l float64) Color {
	c := colorful.Hsl(wrapHue(h), clamp01(s), clamp01(l))
	return FromRatios(c.R, c.G, c.B)
}

// FromHSV constructs a Color from hue in degrees and unit saturation/value.
func FromHSV(h, s, v float64) Color {
	c := colorful.Hsv(wrapHue(h), clamp01(s), clamp01(v))
	return FromRatios(c.R, c.G, c.B)
}

// FromXYZ constructs a Color from CIE XYZ components.
func FromXYZ(x, y, z float64) Color {
	c := colorful.Xyz(clamp01(x), clamp01(y), clamp01(z)).Clamped()
	return FromRatios(c.R, c.G, c.B)
}

// FromCMYK constructs a Color from unit CMYK components.
func FromCMYK(c, m, y, k float64) Color {
	c, m, y, k = clamp01(c), clamp01(m), clamp01(y), clamp01(k)
	return FromRatios((1-c)*(1-k), (1-m)*(1-k), (1-y)*(1-k))
}

// Ratios returns the unit RGB channel ratios.
func (c Color) Ratios() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.Ratios()
	return colorful.Color{R: r, G: g, B: b}
}

// HSL returns the hue in degrees and unit saturation/lightness components.
func (c Color) HSL() (h, s, l float64) {
	return c.colorful().Hsl()
}

// HSV returns the hue in degrees and unit saturation/value components.
func (c Color) HSV() (h, s, v float64) {
	return c.colorful().Hsv()
}

// XYZ returns the CIE XYZ components.
func (c Color) XYZ() (x, y, z float64) {
	return c.colorful().Xyz()
}

// CMYK returns the unit CMYK components.
func (c Color) CMYK() (cy, m, y, k float64) {
	r, g, b := c.Ratios()
	k = 1 - math.Max(r, math.Max(g, b))
	if k >= 1 {
		return 0, 0, 0, 1
	}
	cy = (1 - r - k) / (1 - k)
	m = (1 - g - k) / (1 - k)
	y = (1 - b - k) / (1 - k)
	return cy, m, y, k
}

// Hex returns the canonical "#RRGGBB" form.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Hex3 returns the short "#RGB" form, truncating each channel to its high nibble.
func (c Color) Hex3() string {
	return fmt.Sprintf("#%X%X%X", c.R>>4, c.G>>4, c.B>>4)
}

// String implements fmt.Stringer using the canonical hex form.
func (c Color) String() string {
	return c.Hex()
}
