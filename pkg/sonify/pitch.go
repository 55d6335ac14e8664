package sonify

import "math"

// Frequency band constants. These are part of the stable contract: tests
// pin exact folded frequencies against them.
const (
	// Visible-light band mapped from the hue wheel.
	VisibleLowHz  = 4.0e14
	VisibleHighHz = 7.9e14

	// Audible band the raw frequency is folded into.
	AudibleLowHz  = 20.0
	AudibleHighHz = 20000.0
)

// PitchFromHue maps a hue angle to an audible frequency. Hue outside
// [0,360) is wrapped first.
func PitchFromHue(h float64) float64 {
	return FoldToAudible(RawFrequency(h))
}

// RawFrequency maps hue to its position in the visible-light band.
// Hue 0 (red) sits at the low-frequency red end and rising hue moves
// toward the violet end, so frequency strictly increases with hue even
// though the wavelength ordering of the hue wheel runs the other way.
func RawFrequency(h float64) float64 {
	h = wrapHue(h)
	return VisibleLowHz + (h/360.0)*(VisibleHighHz-VisibleLowHz)
}

// FoldToAudible halves a frequency octave by octave until it falls at or
// below AudibleHighHz, clamping at AudibleLowHz. The halving count is
// taken directly from log2 instead of looping; scaling by a power of two
// is exact in float64, so the result is bit-for-bit identical to
// iterative halving.
func FoldToAudible(raw float64) float64 {
	if raw > AudibleHighHz {
		halvings := int(math.Floor(math.Log2(raw / AudibleHighHz)))
		if halvings < 0 {
			halvings = 0
		}
		raw = math.Ldexp(raw, -halvings)
		// Log2 rounding can under-count by one octave.
		for raw > AudibleHighHz {
			raw /= 2
		}
	}
	if raw < AudibleLowHz {
		raw = AudibleLowHz
	}
	return raw
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}
