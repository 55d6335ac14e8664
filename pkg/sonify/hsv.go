package sonify

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ExtractHSV converts a decoded color into normalized HSV channels:
// h in [0,360), s and v in [0,1].
func ExtractHSV(c color.Color) (h, s, v float64) {
	r, g, b, _ := c.RGBA()
	cf := colorful.Color{
		R: float64(r>>8) / 255.0,
		G: float64(g>>8) / 255.0,
		B: float64(b>>8) / 255.0,
	}
	return cf.Hsv()
}

// ClampHSV normalizes an arbitrary HSV triple: hue wrapped into [0,360),
// saturation and value clamped into [0,1].
func ClampHSV(h, s, v float64) (float64, float64, float64) {
	return wrapHue(h), clampUnit(s), clampUnit(v)
}

// LoudnessFromSaturation maps saturation to a linear amplitude. The
// mapping is the identity on [0,1]; zero saturation is a silent note that
// still occupies its time slot.
func LoudnessFromSaturation(s float64) float64 {
	return clampUnit(s)
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
