// Package synth renders timed notes into 16-bit sample buffers
package synth

import (
	"fmt"
	"math"

	"github.com/pixel2wav/pixel2wav/pkg/sonify"
)

// Rendering constants
const (
	// Headroom keeps segments away from full scale so fades and rounding
	// never clip when segments are concatenated.
	Headroom = 0.85

	// FadeMillis is the linear attack/release length applied at segment
	// edges to prevent clicks between consecutive notes.
	FadeMillis = 8
)

// bellPartial is one component of the bell timbre
type bellPartial struct {
	ratio float64 // frequency multiple of the fundamental
	amp   float64 // relative level before normalization
	decay float64 // decay constant as a fraction of the note length
}

// bellPartials approximate a struck bell: an inharmonic stack whose upper
// components die away faster than the fundamental.
var bellPartials = [...]bellPartial{
	{ratio: 1.0, amp: 1.0, decay: 1.2},
	{ratio: 2.7, amp: 0.55, decay: 0.8},
	{ratio: 5.8, amp: 0.25, decay: 0.5},
	{ratio: 9.2, amp: 0.12, decay: 0.35},
}

// Engine implements sonify.Renderer with a small additive synthesizer
type Engine struct{}

// NewEngine creates the default rendering engine
func NewEngine() *Engine {
	return &Engine{}
}

// RenderNote renders one timed note at the given sample rate. The segment
// holds round(duration * sampleRate) samples; rests and silent notes
// render as zeros of the same length.
func (e *Engine) RenderNote(note sonify.TimedNote, sampleRate int) ([]int16, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d",
			sonify.ErrInvalidArgument, sampleRate)
	}

	n := int(math.Round(note.Duration * float64(sampleRate)))
	if n <= 0 {
		return []int16{}, nil
	}
	segment := make([]int16, n)

	if note.DurationCode == sonify.DurationCodeRest || note.Amplitude <= 0 {
		return segment, nil
	}

	buf := make([]float64, n)
	switch note.Voice {
	case sonify.VoiceTriangle:
		renderTriangle(buf, note.Frequency, sampleRate)
	case sonify.VoiceBell:
		renderBell(buf, note.Frequency, note.Duration, sampleRate)
	default:
		// Sine, plus any strategy kind the selector left unresolved.
		renderSine(buf, note.Frequency, sampleRate)
	}

	scale := clampUnit(note.Amplitude) * Headroom
	for i := range buf {
		buf[i] *= scale
	}
	applyFade(buf, sampleRate)

	for i, x := range buf {
		segment[i] = quantizeSample(x)
	}
	return segment, nil
}

// renderSine fills buf with sin(2*pi*f*t)
func renderSine(buf []float64, freq float64, sampleRate int) {
	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range buf {
		buf[i] = math.Sin(omega * float64(i))
	}
}

// renderTriangle sums the odd harmonics of a triangle wave with
// alternating-sign 1/k^2 weights, keeping only components below Nyquist
// so folded pitches near the top of the band do not alias. When not even
// the fundamental fits, the note falls back to a plain sine.
func renderTriangle(buf []float64, freq float64, sampleRate int) {
	type harmonic struct {
		k, w float64
	}
	nyquist := float64(sampleRate) / 2
	var terms []harmonic
	norm := 0.0
	sign := 1.0
	for k := 1.0; k*freq < nyquist; k += 2 {
		w := sign * (8 / (math.Pi * math.Pi)) / (k * k)
		terms = append(terms, harmonic{k: k, w: w})
		norm += math.Abs(w)
		sign = -sign
	}
	if len(terms) == 0 {
		renderSine(buf, freq, sampleRate)
		return
	}

	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range buf {
		t := omega * float64(i)
		sum := 0.0
		for _, h := range terms {
			sum += h.w * math.Sin(h.k*t)
		}
		buf[i] = sum / norm
	}
}

// renderBell layers the decaying partials over the note. Partials at or
// above Nyquist are dropped and the remainder renormalized; if none
// survive, the note falls back to a plain sine.
func renderBell(buf []float64, freq, duration float64, sampleRate int) {
	nyquist := float64(sampleRate) / 2
	active := make([]bellPartial, 0, len(bellPartials))
	norm := 0.0
	for _, p := range bellPartials {
		if freq*p.ratio >= nyquist {
			continue
		}
		active = append(active, p)
		norm += p.amp
	}
	if len(active) == 0 {
		renderSine(buf, freq, sampleRate)
		return
	}

	omega := 2 * math.Pi * freq / float64(sampleRate)
	for i := range buf {
		t := float64(i) / float64(sampleRate)
		phase := omega * float64(i)
		sum := 0.0
		for _, p := range active {
			env := math.Exp(-t / (p.decay * duration))
			sum += p.amp * math.Sin(phase*p.ratio) * env
		}
		buf[i] = sum / norm
	}
}

// applyFade shapes the segment edges with linear ramps so consecutive
// segments join without clicks. The ramp spans FadeMillis, shortened to
// half the segment when the note is too short for the full fade.
func applyFade(buf []float64, sampleRate int) {
	fade := sampleRate * FadeMillis / 1000
	if fade > len(buf)/2 {
		fade = len(buf) / 2
	}
	if fade < 1 {
		return
	}
	for i := 0; i < fade; i++ {
		gain := float64(i) / float64(fade)
		buf[i] *= gain
		buf[len(buf)-1-i] *= gain
	}
}

// quantizeSample clamps to [-1,1] and scales into the signed 16-bit range
func quantizeSample(x float64) int16 {
	if x > 1 {
		x = 1
	}
	if x < -1 {
		x = -1
	}
	return int16(math.Round(x * 32767))
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
