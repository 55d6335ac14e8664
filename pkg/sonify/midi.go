package sonify

import (
	"bytes"
	"fmt"
	"math"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// MIDI export resolution in ticks per quarter note. Every beat-table
// entry is a multiple of half a beat, so note lengths land on exact
// tick counts.
const ticksPerQuarter = 480

// ExportMIDI renders the sequenced notes as a single-track standard MIDI
// file at the given tempo. Rests and silent notes advance the clock
// without emitting events. Pitches are snapped to the nearest MIDI key,
// so the export is an approximation of the folded frequencies, not a
// substitute for the rendered audio.
func ExportMIDI(notes []TimedNote, bpm int) ([]byte, error) {
	if bpm <= 0 {
		return nil, fmt.Errorf("%w: bpm must be positive, got %d", ErrInvalidArgument, bpm)
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var track smf.Track

	// Tempo meta event (FF 51 03, microseconds per beat).
	microsecondsPerBeat := uint32(60000000.0 / float64(bpm))
	track.Add(0, smf.Message([]byte{
		0xFF, 0x51, 0x03,
		byte(microsecondsPerBeat >> 16),
		byte(microsecondsPerBeat >> 8),
		byte(microsecondsPerBeat),
	}))

	// 4/4 time signature.
	track.Add(0, smf.Message([]byte{0xFF, 0x58, 0x04, 0x04, 0x02, 0x18, 0x08}))

	channel := uint8(0)
	var pendingDelta uint32

	for _, note := range notes {
		durTicks := uint32(BeatsForCode(note.DurationCode) * ticksPerQuarter)

		if note.DurationCode == DurationCodeRest || note.Amplitude <= 0 {
			pendingDelta += durTicks
			continue
		}

		key := midiKey(note.Frequency)
		velocity := midiVelocity(note.Amplitude)

		track.Add(pendingDelta, midi.NoteOn(channel, key, velocity))
		track.Add(durTicks, midi.NoteOff(channel, key))
		pendingDelta = 0
	}

	track.Close(pendingDelta)

	if err := s.Add(track); err != nil {
		return nil, fmt.Errorf("failed to add track: %w", err)
	}

	var buf bytes.Buffer
	if _, err := s.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write MIDI: %w", err)
	}
	return buf.Bytes(), nil
}

// midiKey snaps a frequency to the nearest equal-tempered MIDI key,
// clamped to the 0..127 range.
func midiKey(freq float64) uint8 {
	key := int(math.Round(69 + 12*math.Log2(freq/440.0)))
	if key < 0 {
		key = 0
	}
	if key > 127 {
		key = 127
	}
	return uint8(key)
}

// midiVelocity scales a linear amplitude to a note-on velocity. Velocity
// zero would read as a note-off, so audible notes floor at 1.
func midiVelocity(amp float64) uint8 {
	v := int(math.Round(amp * 127))
	if v < 1 {
		v = 1
	}
	if v > 127 {
		v = 127
	}
	return uint8(v)
}
