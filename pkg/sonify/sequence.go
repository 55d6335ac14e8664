package sonify

import "fmt"

// SecondsPerBeat converts a tempo to seconds per beat
func SecondsPerBeat(bpm int) float64 {
	return 60.0 / float64(bpm)
}

// Sequence lays note specs onto a contiguous timeline at the given tempo.
// Each note's duration is its code's beat count at the tempo; start times
// accumulate with no gaps or overlaps. BPM must be positive and is
// rejected before any notes are produced.
func Sequence(bpm int, specs []NoteSpec) ([]TimedNote, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm must be positive, got %d", ErrInvalidArgument, bpm)
	}

	spb := SecondsPerBeat(bpm)
	notes := make([]TimedNote, 0, len(specs))
	start := 0.0
	for _, spec := range specs {
		dur := BeatsForCode(spec.DurationCode) * spb
		notes = append(notes, TimedNote{
			NoteSpec: spec,
			Start:    start,
			Duration: dur,
		})
		start += dur
	}
	return notes, nil
}

// TotalDuration sums the track length in seconds
func TotalDuration(notes []TimedNote) float64 {
	total := 0.0
	for _, n := range notes {
		total += n.Duration
	}
	return total
}
