package sonify

import (
	"fmt"
	"strings"
)

// concreteVoices are the kinds a note can actually be rendered with, in
// the order the cycle strategy walks them.
var concreteVoices = [...]VoiceKind{VoiceSine, VoiceTriangle, VoiceBell}

// VoiceNames lists the accepted voice-strategy names in CLI order.
func VoiceNames() []string {
	return []string{"sine", "triangle", "bell", "cycle", "hue"}
}

var voiceDescriptions = map[string]string{
	"sine":     "pure tone",
	"triangle": "band-limited triangle wave",
	"bell":     "decaying inharmonic partials",
	"cycle":    "rotates sine, triangle, bell per note",
	"hue":      "picks the voice from the pixel's hue",
}

// DescribeVoice returns a one-line summary of a voice-strategy name
func DescribeVoice(name string) string {
	return voiceDescriptions[name]
}

// String returns the CLI name of the voice kind
func (k VoiceKind) String() string {
	switch k {
	case VoiceSine:
		return "sine"
	case VoiceTriangle:
		return "triangle"
	case VoiceBell:
		return "bell"
	case VoiceCycle:
		return "cycle"
	case VoiceHue:
		return "hue"
	default:
		return "unknown"
	}
}

// ParseVoice resolves a voice-strategy name to its VoiceKind
func ParseVoice(name string) (VoiceKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine":
		return VoiceSine, nil
	case "triangle", "tri":
		return VoiceTriangle, nil
	case "bell":
		return VoiceBell, nil
	case "cycle":
		return VoiceCycle, nil
	case "hue":
		return VoiceHue, nil
	default:
		return VoiceSine, fmt.Errorf("%w: unknown voice strategy %q (want one of %s)",
			ErrInvalidArgument, name, strings.Join(VoiceNames(), "|"))
	}
}

// ResolveVoice picks the concrete kind for one note. The fixed strategies
// return themselves. Cycle rotates through the concrete kinds keyed by the
// emitted-note index, so a rerun over the same pixels repeats exactly.
// Hue splits the wheel into three equal arcs; it depends on nothing but
// the hue itself.
func ResolveVoice(strategy VoiceKind, hue float64, index int) VoiceKind {
	switch strategy {
	case VoiceCycle:
		if index < 0 {
			index = 0
		}
		return concreteVoices[index%len(concreteVoices)]
	case VoiceHue:
		h := wrapHue(hue)
		switch {
		case h < 120:
			return VoiceSine
		case h < 240:
			return VoiceTriangle
		default:
			return VoiceBell
		}
	default:
		return strategy
	}
}
