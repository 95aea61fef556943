package thumbnail

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ytget/video-library/internal/model"
)

// Raster defaults
const (
	DefaultWidth   = 160
	DefaultHeight  = 90
	DefaultQuality = 70 // JPEG quality 1-100
)

// Raster draws a frame into a fixed size canvas and encodes it as JPEG
type Raster struct {
	Width   int
	Height  int
	Quality int
}

// DefaultRaster returns the 160x90, quality 70 raster
func DefaultRaster() Raster {
	return Raster{Width: DefaultWidth, Height: DefaultHeight, Quality: DefaultQuality}
}

// Render scales img to exactly Width x Height, stretching like a canvas draw.
// A nil frame renders as an opaque black raster.
func (r Raster) Render(img image.Image) *image.NRGBA {
	if img == nil {
		return imaging.New(r.Width, r.Height, color.Black)
	}
	return imaging.Resize(img, r.Width, r.Height, imaging.Linear)
}

// Encode renders img and encodes it as JPEG
func (r Raster) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, r.Render(img), imaging.JPEG, imaging.JPEGQuality(r.Quality)); err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

// Capture encodes img as the frame taken at position/timestamp
func (r Raster) Capture(img image.Image, position, timestamp float64) (model.Frame, error) {
	data, err := r.Encode(img)
	if err != nil {
		return model.Frame{}, err
	}
	return model.Frame{
		Position:  position,
		Timestamp: timestamp,
		Image:     data,
		MIMEType:  model.MIMETypeJPEG,
	}, nil
}

func (r Raster) validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("invalid raster size %dx%d", r.Width, r.Height)
	}
	if r.Quality < 1 || r.Quality > 100 {
		return fmt.Errorf("invalid JPEG quality %d", r.Quality)
	}
	return nil
}
