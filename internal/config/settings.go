package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/video-library/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyMaxParallel      = "max_parallel_downloads"
	KeyLanguage         = "app_language"
	KeyBucket           = "s3_bucket"
	KeyRegion           = "s3_region"
	KeyThumbnailTimeout = "thumbnail_timeout_seconds"
	KeyAutoRevealSaved  = "auto_reveal_on_save"
)

// Default values
const (
	DefaultMaxParallel      = 2
	DefaultLanguage         = "system"
	DefaultRegion           = "us-east-1"
	DefaultThumbnailTimeout = 10
	DefaultAutoRevealSaved  = false
)

// Bounds for clamped values
const (
	MinParallel         = 1
	MaxParallel         = 10
	MinThumbnailTimeout = 1
	MaxThumbnailTimeout = 120
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the maximum number of parallel downloads
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the maximum number of parallel downloads
func (s *Settings) SetMaxParallelDownloads(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, clamp(count, MinParallel, MaxParallel))
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetBucket returns the S3 bucket holding the library, "" if not configured
func (s *Settings) GetBucket() string {
	return s.app.Preferences().String(KeyBucket)
}

// SetBucket sets the S3 bucket
func (s *Settings) SetBucket(bucket string) {
	s.app.Preferences().SetString(KeyBucket, bucket)
}

// GetRegion returns the S3 region
func (s *Settings) GetRegion() string {
	return s.app.Preferences().StringWithFallback(KeyRegion, DefaultRegion)
}

// SetRegion sets the S3 region; empty resets to the default
func (s *Settings) SetRegion(region string) {
	if region == "" {
		region = DefaultRegion
	}
	s.app.Preferences().SetString(KeyRegion, region)
}

// GetThumbnailTimeout returns how many seconds a card waits for thumbnails
func (s *Settings) GetThumbnailTimeout() int {
	value := s.app.Preferences().Int(KeyThumbnailTimeout)
	if value <= 0 {
		return DefaultThumbnailTimeout
	}
	return value
}

// SetThumbnailTimeout sets the thumbnail timeout in seconds
func (s *Settings) SetThumbnailTimeout(seconds int) {
	s.app.Preferences().SetInt(KeyThumbnailTimeout, clamp(seconds, MinThumbnailTimeout, MaxThumbnailTimeout))
}

// GetAutoRevealOnSave returns whether to reveal saved files in the file manager
func (s *Settings) GetAutoRevealOnSave() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealSaved, DefaultAutoRevealSaved)
}

// SetAutoRevealOnSave sets whether to reveal saved files
func (s *Settings) SetAutoRevealOnSave(reveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealSaved, reveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ja":     "日本語",
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
