package sonify

import (
	"fmt"
	"image"
	"io"
	"os"

	// Decoders registered for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// LoadPixels reads an image file and returns its pixels in row-major
// order. A missing or unreadable file reports ErrImageDecode.
func LoadPixels(path string) ([]Pixel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	defer func() { _ = f.Close() }()
	return DecodePixels(f)
}

// DecodePixels decodes image data and walks it row-major, converting
// every pixel to normalized HSV.
func DecodePixels(r io.Reader) ([]Pixel, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return GridPixels(img), nil
}

// GridPixels flattens a decoded image into row-major HSV pixels
func GridPixels(img image.Image) []Pixel {
	bounds := img.Bounds()
	pixels := make([]Pixel, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			h, s, v := ExtractHSV(img.At(x, y))
			pixels = append(pixels, Pixel{X: x - bounds.Min.X, Y: y - bounds.Min.Y, H: h, S: s, V: v})
		}
	}
	return pixels
}
