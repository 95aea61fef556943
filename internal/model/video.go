package model

import (
	"fmt"
	"strings"
	"time"
)

const bytesPerMB = 1024 * 1024

// VideoFile is one item of the catalog listing
type VideoFile struct {
	Name         string    `json:"name"`
	Key          string    `json:"-"`
	URL          string    `json:"url"`
	Size         int64     `json:"-"`
	LastModified time.Time `json:"-"`
}

// SizeLabel renders the size as "158.0 MB", or "" when unknown
func (v VideoFile) SizeLabel() string {
	if v.Size <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f MB", float64(v.Size)/bytesPerMB)
}

// DateLabel renders the modification date as YYYY-MM-DD, or "" when unknown
func (v VideoFile) DateLabel() string {
	if v.LastModified.IsZero() {
		return ""
	}
	return v.LastModified.UTC().Format("2006-01-02")
}

// Matches reports whether the name contains term, ignoring case
func (v VideoFile) Matches(term string) bool {
	return strings.Contains(strings.ToLower(v.Name), strings.ToLower(term))
}

// FilterVideos returns the items whose names match term, preserving order
func FilterVideos(videos []VideoFile, term string) []VideoFile {
	out := make([]VideoFile, 0, len(videos))
	for _, v := range videos {
		if v.Matches(term) {
			out = append(out, v)
		}
	}
	return out
}
