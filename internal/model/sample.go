package model

import (
	"encoding/base64"
	"errors"
	"fmt"
)

// MIMETypeJPEG is the encoding used for captured frames
const MIMETypeJPEG = "image/jpeg"

var ErrInvalidSampleSpec = errors.New("invalid sample spec")

// SampleSpec is an ordered list of relative positions in (0,1)
type SampleSpec []float64

// DefaultSampleSpec captures at 10%, 30%, 50%, 70% and 90% of the duration
func DefaultSampleSpec() SampleSpec {
	return SampleSpec{0.1, 0.3, 0.5, 0.7, 0.9}
}

// Validate checks that the positions are non-empty, strictly increasing and inside (0,1)
func (s SampleSpec) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidSampleSpec)
	}
	for i, r := range s {
		if r <= 0 || r >= 1 {
			return fmt.Errorf("%w: ratio %v at %d outside (0,1)", ErrInvalidSampleSpec, r, i)
		}
		if i > 0 && r <= s[i-1] {
			return fmt.Errorf("%w: ratio %v at %d not increasing", ErrInvalidSampleSpec, r, i)
		}
	}
	return nil
}

// Timestamps converts the ratios into absolute seconds for a given duration
func (s SampleSpec) Timestamps(duration float64) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = duration * r
	}
	return out
}

// Frame is one encoded still captured at Position of the media duration
type Frame struct {
	Position  float64 // ratio from SampleSpec
	Timestamp float64 // seconds
	Image     []byte
	MIMEType  string
}

// DataURL renders the frame as a data: URL usable directly in <img src>
func (f Frame) DataURL() string {
	return "data:" + f.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(f.Image)
}

// ThumbnailSet is the ordered result of one sampler run
type ThumbnailSet struct {
	URL    string
	Frames []Frame
}

// Len returns the number of captured frames
func (ts ThumbnailSet) Len() int {
	return len(ts.Frames)
}

// DataURLs returns the frames as data: URLs in capture order
func (ts ThumbnailSet) DataURLs() []string {
	out := make([]string, len(ts.Frames))
	for i, f := range ts.Frames {
		out[i] = f.DataURL()
	}
	return out
}
