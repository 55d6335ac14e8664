// Package sonify converts image pixels into sequenced musical notes
package sonify

import "errors"

// Error kinds reported by the pipeline. All are fatal configuration or
// I/O problems; callers match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrImageDecode     = errors.New("image decode failed")
	ErrOutputWrite     = errors.New("output write failed")
)

// Pixel is one decoded grid cell with normalized HSV channels
type Pixel struct {
	X, Y int
	H    float64 // hue in [0,360)
	S    float64 // saturation in [0,1]
	V    float64 // value in [0,1]
}

// VoiceKind selects the waveform used to render a note
type VoiceKind int

const (
	VoiceSine VoiceKind = iota
	VoiceTriangle
	VoiceBell
	VoiceCycle // rotates through the concrete kinds per note
	VoiceHue   // derived from the pixel's hue
)

// NoteSpec is the musical reading of a single pixel
type NoteSpec struct {
	Frequency    float64   // Hz, inside the audible band
	Amplitude    float64   // linear, in [0,1]
	DurationCode int       // 0..NumDurationCodes-1, 0 is a rest
	Voice        VoiceKind // concrete kind, already resolved
}

// TimedNote is a NoteSpec placed on the track timeline
type TimedNote struct {
	NoteSpec
	Start    float64 // seconds from track start
	Duration float64 // seconds
}

// Renderer turns a timed note into a segment of 16-bit samples
type Renderer interface {
	RenderNote(note TimedNote, sampleRate int) ([]int16, error)
}

// Sonifier drives the pixel-to-track pipeline
type Sonifier struct {
	renderer Renderer
	opts     Options
}

// New creates a Sonifier using the given renderer and options
func New(renderer Renderer, opts Options) *Sonifier {
	return &Sonifier{renderer: renderer, opts: opts}
}

// Renderer returns the current renderer
func (s *Sonifier) Renderer() Renderer {
	return s.renderer
}

// SetRenderer swaps the renderer used for synthesis
func (s *Sonifier) SetRenderer(renderer Renderer) {
	s.renderer = renderer
}
