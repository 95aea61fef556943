package model

import (
	"testing"
	"time"
)

func TestVideoFile_SizeLabel(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, ""},
		{1024 * 1024, "1.0 MB"},
		{158 * 1024 * 1024, "158.0 MB"},
		{1572864, "1.5 MB"},
	}

	for _, test := range tests {
		v := VideoFile{Size: test.size}
		if got := v.SizeLabel(); got != test.expected {
			t.Errorf("SizeLabel() with size=%d = %q, expected %q", test.size, got, test.expected)
		}
	}
}

func TestVideoFile_DateLabel(t *testing.T) {
	v := VideoFile{LastModified: time.Date(2024, 1, 15, 23, 10, 0, 0, time.UTC)}
	if got := v.DateLabel(); got != "2024-01-15" {
		t.Errorf("Expected 2024-01-15, got %s", got)
	}
	if got := (VideoFile{}).DateLabel(); got != "" {
		t.Errorf("Expected empty label for zero time, got %s", got)
	}
}

func TestFilterVideos(t *testing.T) {
	videos := []VideoFile{
		{Name: "Holiday_2024.mp4"},
		{Name: "birthday.mov"},
		{Name: "HOLIDAY-extra.mp4"},
	}

	got := FilterVideos(videos, "holiday")
	if len(got) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(got))
	}
	if got[0].Name != "Holiday_2024.mp4" || got[1].Name != "HOLIDAY-extra.mp4" {
		t.Errorf("Unexpected filter order: %v", got)
	}

	if all := FilterVideos(videos, ""); len(all) != len(videos) {
		t.Errorf("Empty term should match all, got %d", len(all))
	}
}
