package sonify_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/pixel2wav/pixel2wav/pkg/sonify"
	"github.com/pixel2wav/pixel2wav/pkg/sonify/synth"
)

func redPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() returned error: %v", err)
	}
	return buf.Bytes()
}

func TestPureRedImageTrack(t *testing.T) {
	data := redPNG(t, 2, 2)
	son := sonify.New(synth.NewEngine(), sonify.DefaultOptions())

	pixels, err := sonify.DecodePixels(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("DecodePixels() returned error: %v", err)
	}
	notes, err := son.Compose(pixels)
	if err != nil {
		t.Fatalf("Compose() returned error: %v", err)
	}
	if len(notes) != 4 {
		t.Fatalf("Compose() produced %d notes, want 4", len(notes))
	}

	// Pure red means one pinned pitch, whole notes, the sine arc.
	for i, n := range notes {
		if n.Frequency != 11641.532182693481 {
			t.Errorf("notes[%d].Frequency = %v, want 11641.532182693481", i, n.Frequency)
		}
		if n.DurationCode != sonify.DurationCodeMax {
			t.Errorf("notes[%d].DurationCode = %d, want %d", i, n.DurationCode, sonify.DurationCodeMax)
		}
		if n.Voice != sonify.VoiceSine {
			t.Errorf("notes[%d].Voice = %v, want sine", i, n.Voice)
		}
	}

	samples, err := son.Render(notes)
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	// 4 whole notes of 2 seconds each at 44100 Hz.
	if len(samples) != 352800 {
		t.Errorf("track has %d samples, want 352800", len(samples))
	}
}

func TestBlackPixelKeepsItsTimeSlot(t *testing.T) {
	son := sonify.New(synth.NewEngine(), sonify.DefaultOptions())

	samples, err := son.SonifyPixels([]sonify.Pixel{{H: 123, S: 0.8, V: 0}})
	if err != nil {
		t.Fatalf("SonifyPixels() returned error: %v", err)
	}

	// An eighth-note rest at 120 BPM.
	if len(samples) != 11025 {
		t.Fatalf("rest track has %d samples, want 11025", len(samples))
	}
	for i, s := range samples {
		if s != 0 {
			t.Fatalf("rest track sample %d = %d, want 0", i, s)
		}
	}
}

func TestDemoTrackDeterministic(t *testing.T) {
	son := sonify.New(synth.NewEngine(), sonify.DefaultOptions())

	render := func() []int16 {
		notes, err := son.ComposeDemo()
		if err != nil {
			t.Fatalf("ComposeDemo() returned error: %v", err)
		}
		samples, err := son.Render(notes)
		if err != nil {
			t.Fatalf("Render() returned error: %v", err)
		}
		return samples
	}

	first := render()
	second := render()

	// 54 beats at 120 BPM is 27 seconds of audio.
	if len(first) != 1190700 {
		t.Errorf("demo track has %d samples, want 1190700", len(first))
	}
	if len(first) != len(second) {
		t.Fatalf("demo runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("demo runs differ at sample %d: %d vs %d", i, first[i], second[i])
		}
	}
}

func TestSonifyFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "red.png")
	outPath := filepath.Join(dir, "red.wav")

	if err := os.WriteFile(imagePath, redPNG(t, 1, 1), 0644); err != nil {
		t.Fatalf("writing test image: %v", err)
	}

	son := sonify.New(synth.NewEngine(), sonify.DefaultOptions())
	if err := son.SonifyFile(imagePath, outPath); err != nil {
		t.Fatalf("SonifyFile() returned error: %v", err)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer func() { _ = f.Close() }()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("output is not a valid WAV file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		t.Fatalf("FullPCMBuffer() returned error: %v", err)
	}
	if buf.Format.NumChannels != 1 {
		t.Errorf("channels = %d, want 1", buf.Format.NumChannels)
	}
	if buf.Format.SampleRate != 44100 {
		t.Errorf("sample rate = %d, want 44100", buf.Format.SampleRate)
	}
	if len(buf.Data) != 88200 {
		t.Errorf("output has %d samples, want 88200", len(buf.Data))
	}
}

func TestSonifyFileDecodeFailureLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	imagePath := filepath.Join(dir, "broken.png")
	outPath := filepath.Join(dir, "broken.wav")

	if err := os.WriteFile(imagePath, []byte("definitely not a png"), 0644); err != nil {
		t.Fatalf("writing test input: %v", err)
	}

	son := sonify.New(synth.NewEngine(), sonify.DefaultOptions())
	err := son.SonifyFile(imagePath, outPath)
	if err == nil {
		t.Fatal("SonifyFile() should fail on an undecodable image")
	}
	if !errors.Is(err, sonify.ErrImageDecode) {
		t.Errorf("SonifyFile() error = %v, want ErrImageDecode", err)
	}

	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("decode failure left a partial output file behind")
	}
}
