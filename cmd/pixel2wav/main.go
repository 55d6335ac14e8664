// Package main is the entry point for the pixel2wav CLI
package main

import (
	"fmt"
	"os"

	"github.com/pixel2wav/pixel2wav/pkg/api"
	"github.com/pixel2wav/pixel2wav/pkg/playback"
	"github.com/pixel2wav/pixel2wav/pkg/sonify"
	"github.com/pixel2wav/pixel2wav/pkg/sonify/synth"
	"github.com/pixel2wav/pixel2wav/pkg/tui"
	"github.com/pixel2wav/pixel2wav/pkg/wavio"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	imagePath  string
	outputFile string
	bpm        int
	sampleRate int
	voiceName  string
	stride     int
	demoMode   bool
	midiFile   string
	playTrack  bool
	serverPort int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixel2wav",
	Short: "Turn images into audible WAV tracks",
	Long: `pixel2wav reads an image and plays it: each pixel's hue picks a pitch,
saturation sets the loudness, and value sets the note length. The notes
are sequenced at a tempo, synthesized, and written as a mono 16-bit WAV.

Examples:
  pixel2wav --image sunset.png
  pixel2wav -i sunset.png -o sunset.wav --bpm 90 --voice-strategy cycle
  pixel2wav -i sunset.png --stride 50 --midi sunset.mid
  pixel2wav --demo --play
  pixel2wav tui
  pixel2wav serve --port 8080`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	RunE:    runSonify,
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive terminal UI",
	RunE:  runTUI,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	RunE:  runServe,
}

var voicesCmd = &cobra.Command{
	Use:   "voices",
	Short: "List the available voice strategies",
	RunE:  runVoices,
}

func init() {
	rootCmd.Flags().StringVarP(&imagePath, "image", "i", "", "Input image path (required unless --demo)")
	rootCmd.Flags().StringVarP(&outputFile, "out", "o", "output.wav", "Output WAV file path")
	rootCmd.Flags().IntVar(&bpm, "bpm", 120, "Tempo in beats per minute")
	rootCmd.Flags().IntVar(&sampleRate, "sr", 44100, "Output sample rate in Hz")
	rootCmd.Flags().StringVar(&voiceName, "voice-strategy", "hue", "Voice strategy (sine|triangle|bell|cycle|hue)")
	rootCmd.Flags().IntVar(&stride, "stride", 1, "Process every Nth pixel in row-major order")
	rootCmd.Flags().BoolVar(&demoMode, "demo", false, "Render the built-in demo score instead of an image")
	rootCmd.Flags().StringVar(&midiFile, "midi", "", "Also export the note sequence as a MIDI file")
	rootCmd.Flags().BoolVar(&playTrack, "play", false, "Play the rendered track after writing it")

	serveCmd.Flags().IntVarP(&serverPort, "port", "p", 8080, "Server port")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(voicesCmd)
}

func buildSonifier() (*sonify.Sonifier, error) {
	voice, err := sonify.ParseVoice(voiceName)
	if err != nil {
		return nil, err
	}
	opts := sonify.Options{
		BPM:        bpm,
		SampleRate: sampleRate,
		Voice:      voice,
		Stride:     stride,
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return sonify.New(synth.NewEngine(), opts), nil
}

func runSonify(cmd *cobra.Command, args []string) error {
	if !demoMode && imagePath == "" {
		return fmt.Errorf("%w: --image is required unless --demo is set", sonify.ErrInvalidArgument)
	}

	son, err := buildSonifier()
	if err != nil {
		return err
	}

	var notes []sonify.TimedNote
	if demoMode {
		notes, err = son.ComposeDemo()
	} else {
		var pixels []sonify.Pixel
		pixels, err = sonify.LoadPixels(imagePath)
		if err != nil {
			return err
		}
		fmt.Printf("Sonifying %s (%d pixels, stride %d)\n", imagePath, len(pixels), stride)
		notes, err = son.Compose(pixels)
	}
	if err != nil {
		return err
	}

	samples, err := son.Render(notes)
	if err != nil {
		return err
	}

	if err := wavio.WriteFile(outputFile, samples, sampleRate); err != nil {
		return fmt.Errorf("%w: %v", sonify.ErrOutputWrite, err)
	}
	fmt.Printf("Wrote %s (%d notes, %.1fs at %d BPM)\n",
		outputFile, len(notes), sonify.TotalDuration(notes), bpm)

	if midiFile != "" {
		data, err := sonify.ExportMIDI(notes, bpm)
		if err != nil {
			return err
		}
		if err := os.WriteFile(midiFile, data, 0644); err != nil {
			return fmt.Errorf("%w: %v", sonify.ErrOutputWrite, err)
		}
		fmt.Printf("Wrote %s\n", midiFile)
	}

	if playTrack {
		fmt.Println("Playing...")
		if err := playback.Play(samples, sampleRate); err != nil {
			return err
		}
	}

	return nil
}

func runVoices(cmd *cobra.Command, args []string) error {
	fmt.Println("Voice strategies:")
	for _, name := range sonify.VoiceNames() {
		fmt.Printf("  %-9s %s\n", name, sonify.DescribeVoice(name))
	}
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	return tui.Run()
}

func runServe(cmd *cobra.Command, args []string) error {
	fmt.Printf("Starting API server on port %d...\n", serverPort)
	return api.StartServer(serverPort)
}
