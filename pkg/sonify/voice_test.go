package sonify

import (
	"errors"
	"testing"
)

func TestParseVoice(t *testing.T) {
	tests := []struct {
		name string
		want VoiceKind
	}{
		{"sine", VoiceSine},
		{"SINE", VoiceSine},
		{"triangle", VoiceTriangle},
		{"tri", VoiceTriangle},
		{"bell", VoiceBell},
		{"cycle", VoiceCycle},
		{"hue", VoiceHue},
		{" hue ", VoiceHue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVoice(tt.name)
			if err != nil {
				t.Fatalf("ParseVoice(%q) returned error: %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("ParseVoice(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseVoiceUnknown(t *testing.T) {
	_, err := ParseVoice("square")
	if err == nil {
		t.Fatal("ParseVoice(\"square\") should return an error")
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseVoice error = %v, want ErrInvalidArgument", err)
	}
}

func TestVoiceKindString(t *testing.T) {
	tests := []struct {
		kind VoiceKind
		want string
	}{
		{VoiceSine, "sine"},
		{VoiceTriangle, "triangle"},
		{VoiceBell, "bell"},
		{VoiceCycle, "cycle"},
		{VoiceHue, "hue"},
		{VoiceKind(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("VoiceKind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestVoiceNames(t *testing.T) {
	names := VoiceNames()
	want := []string{"sine", "triangle", "bell", "cycle", "hue"}

	if len(names) != len(want) {
		t.Fatalf("VoiceNames() returned %d names, want %d", len(names), len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("VoiceNames()[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestDescribeVoice(t *testing.T) {
	for _, name := range VoiceNames() {
		if DescribeVoice(name) == "" {
			t.Errorf("DescribeVoice(%q) is empty", name)
		}
	}
	if got := DescribeVoice("square"); got != "" {
		t.Errorf("DescribeVoice(\"square\") = %q, want empty", got)
	}
}

func TestResolveVoiceFixed(t *testing.T) {
	for _, kind := range []VoiceKind{VoiceSine, VoiceTriangle, VoiceBell} {
		for _, hue := range []float64{0, 150, 300} {
			if got := ResolveVoice(kind, hue, 5); got != kind {
				t.Errorf("ResolveVoice(%v, %v, 5) = %v, want %v", kind, hue, got, kind)
			}
		}
	}
}

func TestResolveVoiceCycle(t *testing.T) {
	want := []VoiceKind{
		VoiceSine, VoiceTriangle, VoiceBell,
		VoiceSine, VoiceTriangle, VoiceBell,
		VoiceSine,
	}

	for i, kind := range want {
		if got := ResolveVoice(VoiceCycle, 42, i); got != kind {
			t.Errorf("ResolveVoice(cycle, 42, %d) = %v, want %v", i, got, kind)
		}
	}

	if got := ResolveVoice(VoiceCycle, 42, -3); got != VoiceSine {
		t.Errorf("ResolveVoice(cycle, 42, -3) = %v, want %v", got, VoiceSine)
	}
}

func TestResolveVoiceHue(t *testing.T) {
	tests := []struct {
		hue  float64
		want VoiceKind
	}{
		{0, VoiceSine},
		{119.9, VoiceSine},
		{120, VoiceTriangle},
		{239.9, VoiceTriangle},
		{240, VoiceBell},
		{359.9, VoiceBell},
		{360, VoiceSine},
		{-60, VoiceBell},
	}

	for _, tt := range tests {
		if got := ResolveVoice(VoiceHue, tt.hue, 0); got != tt.want {
			t.Errorf("ResolveVoice(hue, %v, 0) = %v, want %v", tt.hue, got, tt.want)
		}
	}
}

func TestResolveVoiceAlwaysConcrete(t *testing.T) {
	for _, strategy := range []VoiceKind{VoiceSine, VoiceTriangle, VoiceBell, VoiceCycle, VoiceHue} {
		for i := 0; i < 7; i++ {
			hue := float64(i) * 51.43
			got := ResolveVoice(strategy, hue, i)
			if got != VoiceSine && got != VoiceTriangle && got != VoiceBell {
				t.Fatalf("ResolveVoice(%v, %v, %d) = %v, not a concrete kind", strategy, hue, i, got)
			}
		}
	}
}
