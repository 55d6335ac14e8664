package sonify

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/pixel2wav/pixel2wav/pkg/wavio"
)

// Options configure a sonification run
type Options struct {
	BPM        int       // tempo in beats per minute
	SampleRate int       // output sample rate in Hz
	Voice      VoiceKind // voice strategy applied per note
	Stride     int       // process every Nth pixel, row-major
}

// DefaultOptions returns the documented CLI defaults
func DefaultOptions() Options {
	return Options{
		BPM:        120,
		SampleRate: 44100,
		Voice:      VoiceHue,
		Stride:     1,
	}
}

// Validate rejects option values the pipeline cannot run with
func (o Options) Validate() error {
	if o.BPM <= 0 {
		return fmt.Errorf("%w: bpm must be positive, got %d", ErrInvalidArgument, o.BPM)
	}
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidArgument, o.SampleRate)
	}
	if o.Stride < 1 {
		return fmt.Errorf("%w: stride must be at least 1, got %d", ErrInvalidArgument, o.Stride)
	}
	if o.Voice < VoiceSine || o.Voice > VoiceHue {
		return fmt.Errorf("%w: unknown voice strategy %d", ErrInvalidArgument, int(o.Voice))
	}
	return nil
}

// Options returns the sonifier's configuration
func (s *Sonifier) Options() Options {
	return s.opts
}

// Compose maps the sampled pixels to note specs and lays them onto the
// timeline. The stride picks every Nth pixel of the row-major grid; the
// cycle voice index counts emitted notes, not grid positions.
func (s *Sonifier) Compose(pixels []Pixel) ([]TimedNote, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	specs := make([]NoteSpec, 0, (len(pixels)+s.opts.Stride-1)/s.opts.Stride)
	for i := 0; i < len(pixels); i += s.opts.Stride {
		h, sat, v := ClampHSV(pixels[i].H, pixels[i].S, pixels[i].V)
		specs = append(specs, NoteSpec{
			Frequency:    PitchFromHue(h),
			Amplitude:    LoudnessFromSaturation(sat),
			DurationCode: DurationCodeFromValue(v),
			Voice:        ResolveVoice(s.opts.Voice, h, len(specs)),
		})
	}
	return Sequence(s.opts.BPM, specs)
}

// ComposeDemo sequences the built-in demo score at the configured tempo
func (s *Sonifier) ComposeDemo() ([]TimedNote, error) {
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}
	return Sequence(s.opts.BPM, DemoScore())
}

// Render synthesizes every note and concatenates the segments in note
// order. Pure concatenation: no resampling, mixing, or overlap.
func (s *Sonifier) Render(notes []TimedNote) ([]int16, error) {
	if s.renderer == nil {
		return nil, errors.New("no renderer configured")
	}
	if err := s.opts.Validate(); err != nil {
		return nil, err
	}

	track := make([]int16, 0, trackCapacity(notes, s.opts.SampleRate))
	for _, note := range notes {
		segment, err := s.renderer.RenderNote(note, s.opts.SampleRate)
		if err != nil {
			return nil, err
		}
		track = append(track, segment...)
	}
	return track, nil
}

// SonifyPixels runs compose and render in one step
func (s *Sonifier) SonifyPixels(pixels []Pixel) ([]int16, error) {
	notes, err := s.Compose(pixels)
	if err != nil {
		return nil, err
	}
	return s.Render(notes)
}

// SonifyReader decodes image data from r and renders it to samples
func (s *Sonifier) SonifyReader(r io.Reader) ([]int16, error) {
	pixels, err := DecodePixels(r)
	if err != nil {
		return nil, err
	}
	return s.SonifyPixels(pixels)
}

// SonifyFile reads an image file and writes the rendered track to a
// 16-bit mono WAV file at the configured sample rate. The image is fully
// decoded and rendered before the output file is created, so a decode
// failure leaves no partial output behind.
func (s *Sonifier) SonifyFile(imagePath, outPath string) error {
	pixels, err := LoadPixels(imagePath)
	if err != nil {
		return err
	}
	samples, err := s.SonifyPixels(pixels)
	if err != nil {
		return err
	}
	if err := wavio.WriteFile(outPath, samples, s.opts.SampleRate); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

// DemoFile renders the built-in demo score to a WAV file
func (s *Sonifier) DemoFile(outPath string) error {
	notes, err := s.ComposeDemo()
	if err != nil {
		return err
	}
	samples, err := s.Render(notes)
	if err != nil {
		return err
	}
	if err := wavio.WriteFile(outPath, samples, s.opts.SampleRate); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	return nil
}

func trackCapacity(notes []TimedNote, sampleRate int) int {
	total := 0
	for _, n := range notes {
		total += int(math.Round(n.Duration * float64(sampleRate)))
	}
	return total
}
