package model

import (
	"strings"
	"time"
)

// DownloadTask represents a single download of one catalog item
type DownloadTask struct {
	ID         string
	URL        string
	FileName   string // suggested save name (item display name)
	Status     TaskStatus
	Progress   Progress
	LastError  string    // last error message if any
	OutputPath string    // path of the saved file
	StartedAt  time.Time // when download started
	FinishedAt time.Time // when download finished
}

// GetDisplayTitle returns file name, or the URL without its query string
func (dt *DownloadTask) GetDisplayTitle() string {
	if dt.FileName != "" {
		return dt.FileName
	}

	// Signed URLs carry long credentials in the query; keep only the path
	if idx := strings.Index(dt.URL, "?"); idx > 0 {
		return dt.URL[:idx]
	}
	return dt.URL
}

// Snapshot returns a copy safe to hand to another goroutine
func (dt *DownloadTask) Snapshot() *DownloadTask {
	c := *dt
	return &c
}
