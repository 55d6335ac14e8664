package wavio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteFileRoundTrip(t *testing.T) {
	samples := []int16{0, 1, -1, 32767, -32767, 12345, -12345, 0}
	path := filepath.Join(t.TempDir(), "out.wav")

	if err := WriteFile(path, samples, 44100); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written file: %v", err)
	}
	defer func() { _ = f.Close() }()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		t.Fatal("written file is not a valid WAV")
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
	if d.BitDepth != 16 {
		t.Errorf("bit depth = %d, want 16", d.BitDepth)
	}
	if len(buf.Data) != len(samples) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(samples))
	}
	for i, s := range samples {
		if buf.Data[i] != int(s) {
			t.Errorf("sample %d = %d, want %d", i, buf.Data[i], s)
		}
	}
}

func TestWriteFileEmptyTrack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")

	if err := WriteFile(path, nil, 44100); err != nil {
		t.Fatalf("WriteFile() returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading written file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("RIFF")) {
		t.Error("empty track did not produce a RIFF file")
	}
}

func TestEncodeRejectsBadSampleRate(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "*.wav")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	defer func() { _ = f.Close() }()

	for _, sr := range []int{0, -22050} {
		if err := Encode(f, []int16{1, 2, 3}, sr); err == nil {
			t.Errorf("Encode() with sample rate %d should return an error", sr)
		}
	}
}

func TestWriteFileBadPath(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "out.wav"), []int16{0}, 44100)
	if err == nil {
		t.Fatal("WriteFile() into a missing directory should return an error")
	}
}
