// Package playback plays rendered tracks through the default audio device
package playback

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Play streams the samples to the default output device and blocks until
// playback finishes.
func Play(samples []int16, sampleRate int) error {
	if sampleRate <= 0 {
		return errors.New("sample rate must be positive")
	}
	if len(samples) == 0 {
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(bytes.NewReader(pcmBytes(samples)))
	player.Play()
	for player.IsPlaying() {
		time.Sleep(10 * time.Millisecond)
	}
	return player.Close()
}

// pcmBytes packs samples as little-endian 16-bit PCM
func pcmBytes(samples []int16) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
