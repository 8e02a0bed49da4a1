package styles

import (
	"github.com/lucasb-eyer/go-colorful"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// Fade blends hex toward white by amount in [0, 1]. Invalid colors are
// returned unchanged.
func Fade(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendRgb(white, clamp01(amount)).Clamped().Hex()
}

// Darken moves hex toward black in Lab space by amount in [0, 1].
func Darken(hex string, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	l, a, b := c.Lab()
	return colorful.Lab(l*(1-clamp01(amount)), a, b).Clamped().Hex()
}

// TextOn returns dark when bg is light and light otherwise.
func TextOn(bg, dark, light string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return dark
	}
	if l, _, _ := c.Lab(); l < 0.55 {
		return light
	}
	return dark
}

func clamp01(f float64) float64 {
	return max(0, min(1, f))
}
