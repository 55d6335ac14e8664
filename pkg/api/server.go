// Package api provides the REST API server for pixel2wav
package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pixel2wav/pixel2wav/pkg/sonify"
	"github.com/pixel2wav/pixel2wav/pkg/sonify/synth"
	"github.com/pixel2wav/pixel2wav/pkg/wavio"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Pixel2WAV API
// @version 1.0
// @description API for sonifying images into WAV and MIDI tracks
// @host localhost:8080
// @BasePath /api/v1

// StartServer starts the API server on the specified port
func StartServer(port int) error {
	r := gin.Default()

	// CORS middleware
	r.Use(corsMiddleware())

	// Health check
	r.GET("/health", healthCheck)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.POST("/sonify", handleSonifyWAV)
		v1.POST("/sonify/midi", handleSonifyMIDI)
		v1.GET("/voices", listVoices)
		v1.GET("/mapping", describeMapping)
	}

	// Swagger docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r.Run(fmt.Sprintf(":%d", port))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// healthCheck godoc
// @Summary Health check endpoint
// @Description Returns the health status of the API
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "pixel2wav",
	})
}

// listVoices godoc
// @Summary List voice strategies
// @Description Returns the voice strategies accepted by the sonify endpoints
// @Tags info
// @Produce json
// @Success 200 {object} map[string][]map[string]string
// @Router /api/v1/voices [get]
func listVoices(c *gin.Context) {
	names := sonify.VoiceNames()
	voices := make([]map[string]string, 0, len(names))
	for _, name := range names {
		voices = append(voices, map[string]string{
			"id":          name,
			"description": sonify.DescribeVoice(name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"voices": voices})
}

// describeMapping godoc
// @Summary Describe the pixel-to-note mapping
// @Description Returns the fixed constants behind the hue/saturation/value mapping
// @Tags info
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/mapping [get]
func describeMapping(c *gin.Context) {
	beats := make([]float64, sonify.NumDurationCodes)
	for code := range beats {
		beats[code] = sonify.BeatsForCode(code)
	}

	defaults := sonify.DefaultOptions()
	c.JSON(http.StatusOK, gin.H{
		"visible_band_hz": []float64{sonify.VisibleLowHz, sonify.VisibleHighHz},
		"audible_band_hz": []float64{sonify.AudibleLowHz, sonify.AudibleHighHz},
		"beats_per_code":  beats,
		"defaults": gin.H{
			"bpm":    defaults.BPM,
			"sr":     defaults.SampleRate,
			"voice":  defaults.Voice.String(),
			"stride": defaults.Stride,
		},
	})
}

// handleSonifyWAV godoc
// @Summary Sonify an image to WAV
// @Description Upload an image and receive a mono 16-bit WAV track
// @Tags sonify
// @Accept multipart/form-data
// @Produce audio/wav
// @Param file formData file true "Image to sonify"
// @Param bpm query int false "Tempo in beats per minute (default: 120)"
// @Param sr query int false "Sample rate in Hz (default: 44100)"
// @Param voice query string false "Voice strategy (default: hue)"
// @Param stride query int false "Process every Nth pixel (default: 1)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/sonify [post]
func handleSonifyWAV(c *gin.Context) {
	// Get uploaded image
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	opts, err := parseOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	son := sonify.New(synth.NewEngine(), opts)
	samples, err := son.SonifyReader(file)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := wavBytes(samples, opts.SampleRate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName(header.Filename, ".wav")))
	c.Data(http.StatusOK, "audio/wav", result)
}

// handleSonifyMIDI godoc
// @Summary Sonify an image to MIDI
// @Description Upload an image and receive the note sequence as a standard MIDI file
// @Tags sonify
// @Accept multipart/form-data
// @Produce audio/midi
// @Param file formData file true "Image to sonify"
// @Param bpm query int false "Tempo in beats per minute (default: 120)"
// @Param voice query string false "Voice strategy (default: hue)"
// @Param stride query int false "Process every Nth pixel (default: 1)"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]string
// @Router /api/v1/sonify/midi [post]
func handleSonifyMIDI(c *gin.Context) {
	// Get uploaded image
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer func() { _ = file.Close() }()

	opts, err := parseOptions(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pixels, err := sonify.DecodePixels(file)
	if err != nil {
		abortWithError(c, err)
		return
	}

	son := sonify.New(synth.NewEngine(), opts)
	notes, err := son.Compose(pixels)
	if err != nil {
		abortWithError(c, err)
		return
	}

	result, err := sonify.ExportMIDI(notes, opts.BPM)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", outputName(header.Filename, ".mid")))
	c.Data(http.StatusOK, "audio/midi", result)
}

// parseOptions reads sonify options from the query string, falling back to
// the same defaults the CLI uses.
func parseOptions(c *gin.Context) (sonify.Options, error) {
	opts := sonify.DefaultOptions()

	var err error
	if opts.BPM, err = strconv.Atoi(c.DefaultQuery("bpm", "120")); err != nil {
		return opts, fmt.Errorf("%w: bpm must be an integer", sonify.ErrInvalidArgument)
	}
	if opts.SampleRate, err = strconv.Atoi(c.DefaultQuery("sr", "44100")); err != nil {
		return opts, fmt.Errorf("%w: sr must be an integer", sonify.ErrInvalidArgument)
	}
	if opts.Stride, err = strconv.Atoi(c.DefaultQuery("stride", "1")); err != nil {
		return opts, fmt.Errorf("%w: stride must be an integer", sonify.ErrInvalidArgument)
	}
	if opts.Voice, err = sonify.ParseVoice(c.DefaultQuery("voice", "hue")); err != nil {
		return opts, err
	}

	return opts, opts.Validate()
}

// abortWithError maps pipeline errors onto HTTP status codes
func abortWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, sonify.ErrInvalidArgument) || errors.Is(err, sonify.ErrImageDecode) {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// wavBytes renders the samples into an in-memory WAV. The encoder needs a
// seekable target to patch the RIFF header, so it goes through a temp file.
func wavBytes(samples []int16, sampleRate int) ([]byte, error) {
	tmp, err := os.CreateTemp("", "pixel2wav-*.wav")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := wavio.Encode(tmp, samples, sampleRate); err != nil {
		_ = tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(tmp.Name())
}

// outputName derives the download filename from the uploaded one
func outputName(uploaded, ext string) string {
	base := strings.TrimSuffix(filepath.Base(uploaded), filepath.Ext(uploaded))
	if base == "" || base == "." {
		base = "track"
	}
	return base + ext
}
