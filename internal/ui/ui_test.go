package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ytget/video-library/internal/model"
)

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{10 * 1024 * 1024, "10.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, test := range tests {
		if result := formatFileSize(test.input); result != test.expected {
			t.Errorf("formatFileSize(%d) = %s, expected %s", test.input, result, test.expected)
		}
	}
}

func TestFormatProgress(t *testing.T) {
	l := NewLocalization()

	known := model.Progress{Percent: 42, ElapsedSec: 5, ETASec: 7, Active: true}
	if result := formatProgress(known, l); result != "42% · 00:05 · ETA 00:07" {
		t.Errorf("Unexpected known progress text: %q", result)
	}

	unknown := model.Progress{Percent: model.Unknown, ElapsedSec: 3, ETASec: model.Unknown, Received: 1024, Active: true}
	if result := formatProgress(unknown, l); result != "1.0 KB (size unknown) · 00:03 · ETA —" {
		t.Errorf("Unexpected unknown progress text: %q", result)
	}
}

func TestVideoMeta(t *testing.T) {
	full := model.VideoFile{
		Name:         "a.mp4",
		Size:         158 * 1024 * 1024,
		LastModified: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
	}
	if result := videoMeta(full); result != "158.0 MB · 2024-03-05" {
		t.Errorf("Unexpected meta: %q", result)
	}

	if result := videoMeta(model.VideoFile{Name: "b.mp4"}); result != "" {
		t.Errorf("Expected empty meta for unknown size and date, got %q", result)
	}
}

func TestFrameCycler(t *testing.T) {
	var fc frameCycler
	fc.SetCount(3)

	if fc.Next() {
		t.Error("Expected no advance while not hovered")
	}

	fc.hovered = true
	for i, expected := range []int{1, 2, 0} {
		if !fc.Next() {
			t.Fatalf("Expected advance at step %d", i)
		}
		if fc.current != expected {
			t.Errorf("Step %d: expected frame %d, got %d", i, expected, fc.current)
		}
	}

	fc.Next()
	fc.Leave()
	if fc.hovered || fc.current != 0 {
		t.Errorf("Expected Leave to rewind, got %+v", fc)
	}

	fc.hovered = true
	fc.SetCount(1)
	if fc.Next() {
		t.Error("Expected no cycling with a single frame")
	}
}

func TestFrameDots(t *testing.T) {
	tests := []struct {
		count, current int
		expected       string
	}{
		{0, 0, ""},
		{1, 0, ""},
		{5, 0, "●○○○○"},
		{5, 2, "○○●○○"},
		{3, 2, "○○●"},
	}

	for _, test := range tests {
		if result := frameDots(test.count, test.current); result != test.expected {
			t.Errorf("frameDots(%d, %d) = %q, expected %q", test.count, test.current, result, test.expected)
		}
	}
}

func TestLocalization(t *testing.T) {
	l := NewLocalization()

	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected default language 'en', got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("ja")
	if l.GetText(KeyDownload) != "ダウンロード" {
		t.Errorf("Expected Japanese text, got %s", l.GetText(KeyDownload))
	}
	if fmt.Sprintf(l.GetText(KeyVideoCount), 3) != "3 件の動画" {
		t.Errorf("Unexpected count text: %s", fmt.Sprintf(l.GetText(KeyVideoCount), 3))
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ja" {
		t.Errorf("Expected unknown language to be ignored, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("Expected 'system' to map to 'en', got %s", l.GetCurrentLanguage())
	}

	if l.GetText("missing_key") != "missing_key" {
		t.Errorf("Expected key fallback, got %s", l.GetText("missing_key"))
	}
}

func TestLocalization_AllKeysTranslated(t *testing.T) {
	l := NewLocalization()
	for key := range l.texts["en"] {
		if _, ok := l.texts["ja"][key]; !ok {
			t.Errorf("Missing Japanese text for %s", key)
		}
	}
}

func TestListErrorText(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("list: %w", context.DeadlineExceeded), "timeout"},
		{errors.New("list objects: access denied"), "list objects"},
		{errors.New("plain"), "plain"},
	}

	for _, test := range tests {
		if result := listErrorText(test.err); result != test.expected {
			t.Errorf("listErrorText(%v) = %q, expected %q", test.err, result, test.expected)
		}
	}
}
