package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestBuildProbeArgs(t *testing.T) {
	args := BuildProbeArgs("https://example.com/clip.mp4")
	expected := []string{"-v", "error", "-show_entries", "format=duration", "-of", "csv=p=0", "https://example.com/clip.mp4"}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d", len(expected), len(args))
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestBuildFrameArgs(t *testing.T) {
	args := BuildFrameArgs("/in.mp4", 12.5)
	expected := []string{
		"-v", "error",
		"-ss", "12.500",
		"-i", "/in.mp4",
		"-frames:v", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"pipe:1",
	}

	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d", len(expected), len(args))
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"596.474000\n", 596.474, false},
		{"  10 ", 10, false},
		{"", 0, true},
		{"N/A", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}

	for _, test := range tests {
		got, err := ParseDuration(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseDuration(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if !test.wantErr && got != test.expected {
			t.Errorf("ParseDuration(%q) = %v, expected %v", test.input, got, test.expected)
		}
	}
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestPlayer_SeekAndFrame(t *testing.T) {
	frame := pngBytes(t)
	var calls []string
	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		calls = append(calls, name+" "+strings.Join(args, " "))
		if name == FFprobeCommand {
			return []byte("42.0\n"), nil
		}
		return frame, nil
	}

	p := NewPlayerWithRunner("https://example.com/clip.mp4", run)

	if _, err := p.Frame(); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Expected ErrNoFrame before first seek, got %v", err)
	}

	duration, err := p.LoadMetadata(context.Background())
	if err != nil {
		t.Fatalf("LoadMetadata failed: %v", err)
	}
	if duration != 42 {
		t.Errorf("Expected duration 42, got %v", duration)
	}

	if err := p.Seek(context.Background(), 4.2); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}
	img, err := p.Frame()
	if err != nil {
		t.Fatalf("Frame failed: %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Expected 4px wide frame, got %d", img.Bounds().Dx())
	}

	if len(calls) != 2 || !strings.Contains(calls[1], "-ss 4.200") {
		t.Errorf("Unexpected command sequence: %v", calls)
	}

	p.Close()
	if _, err := p.Frame(); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed after Close, got %v", err)
	}
	if err := p.Seek(context.Background(), 1); !errors.Is(err, ErrClosed) {
		t.Errorf("Expected ErrClosed seek after Close, got %v", err)
	}
}

func TestPlayer_SeekErrors(t *testing.T) {
	empty := NewPlayerWithRunner("u", func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, nil
	})
	if err := empty.Seek(context.Background(), 1); !errors.Is(err, ErrNoFrame) {
		t.Errorf("Expected ErrNoFrame for empty output, got %v", err)
	}

	garbage := NewPlayerWithRunner("u", func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("not a png"), nil
	})
	if err := garbage.Seek(context.Background(), 1); err == nil {
		t.Error("Expected decode error for garbage output")
	}

	failing := NewPlayerWithRunner("u", func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	})
	if _, err := failing.LoadMetadata(context.Background()); err == nil {
		t.Error("Expected probe error to propagate")
	}
}

func TestExecRunner_DeadlineKill(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ExecRunner(ctx, "sleep", "5")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
}

func TestExecRunner_Failure(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}

	_, err := ExecRunner(context.Background(), "false")
	if err == nil {
		t.Fatal("Expected error from failing command")
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		t.Errorf("Expected a plain failure, got %v", err)
	}
}
