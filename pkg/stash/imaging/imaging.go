// Package imaging normalizes uploaded item photos: it sniffs the real
// format, bounds the pixel dimensions, and re-encodes everything as JPEG
// so the upload directory holds exactly one format.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// MaxDimension is the maximum width or height for stored images.
const MaxDimension = 1024

// JPEGQuality is the compression quality for JPEG output.
const JPEGQuality = 85

// MaxUploadBytes caps the accepted input size.
const MaxUploadBytes = 5 << 20

// AllowedMIME lists the accepted input MIME types.
var AllowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcessResult contains the processed image data.
type ProcessResult struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Process reads image data, validates the format by sniffing bytes (the
// client's content type is not trusted), downscales anything larger than
// MaxDimension, and re-encodes as JPEG. The reported dimensions are those
// of the stored image.
func Process(r io.Reader) (*ProcessResult, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}
	if len(data) > MaxUploadBytes {
		return nil, fmt.Errorf("image exceeds %d byte limit", MaxUploadBytes)
	}

	detected := http.DetectContentType(data)
	if !AllowedMIME[detected] {
		return nil, fmt.Errorf("unsupported image format: %s (only JPEG, PNG and WebP accepted)", detected)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = downscale(img, MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	bounds := img.Bounds()
	return &ProcessResult{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// downscale resizes the image so neither dimension exceeds maxDim,
// preserving aspect ratio with Catmull-Rom interpolation. Returns the
// original image if already within bounds.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}

	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
