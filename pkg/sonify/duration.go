package sonify

// Duration codes bucket a pixel's value channel into note lengths.
// Code 0 is a rest; the top code is a whole note.
const (
	NumDurationCodes = 8
	DurationCodeRest = 0
	DurationCodeMax  = NumDurationCodes - 1
)

// beatTable is the fixed code-to-beats contract: equal half-beat steps
// from an eighth-note rest up to a full 4/4 bar. Changing it is a
// breaking change for anything that asserts output timing.
var beatTable = [NumDurationCodes]float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5, 4.0}

// DurationCodeFromValue buckets value into one of the duration codes.
// [0,1] is split into NumDurationCodes equal-width intervals; both
// endpoints are included, with v=1 landing in the top code.
func DurationCodeFromValue(v float64) int {
	v = clampUnit(v)
	code := int(v * NumDurationCodes)
	if code > DurationCodeMax {
		code = DurationCodeMax
	}
	return code
}

// BeatsForCode returns the number of beats a duration code spans.
// Out-of-range codes are clamped into the table.
func BeatsForCode(code int) float64 {
	if code < 0 {
		code = 0
	}
	if code > DurationCodeMax {
		code = DurationCodeMax
	}
	return beatTable[code]
}
