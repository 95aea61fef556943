package thumbnail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"sync"
	"testing"
	"time"

	"github.com/ytget/video-library/internal/model"
)

// fakePlayer records the order of operations and serves solid frames
type fakePlayer struct {
	mu          sync.Mutex
	duration    float64
	metadataErr error
	killOnDone  bool // LoadMetadata waits for ctx, then fails like a killed process
	seekGate    chan struct{} // when set, each seek waits for a token
	events      []string
	current     float64
	seeked      bool
	closed      bool
}

func (p *fakePlayer) LoadMetadata(ctx context.Context) (float64, error) {
	p.record("load")
	if p.killOnDone {
		<-ctx.Done()
		return 0, errors.New("signal: killed")
	}
	if p.metadataErr != nil {
		return 0, p.metadataErr
	}
	return p.duration, nil
}

func (p *fakePlayer) Seek(ctx context.Context, seconds float64) error {
	if p.seekGate != nil {
		select {
		case <-p.seekGate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	p.current = seconds
	p.seeked = true
	p.mu.Unlock()
	p.record(fmt.Sprintf("seek %.1f", seconds))
	return nil
}

func (p *fakePlayer) Frame() (image.Image, error) {
	p.mu.Lock()
	seeked := p.seeked
	p.seeked = false
	p.mu.Unlock()
	if !seeked {
		return nil, errors.New("frame requested without completed seek")
	}
	p.record("frame")
	img := image.NewRGBA(image.Rect(0, 0, 320, 180))
	for y := 0; y < 180; y++ {
		for x := 0; x < 320; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 90, A: 255})
		}
	}
	return img, nil
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

func (p *fakePlayer) record(ev string) {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
}

func (p *fakePlayer) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func TestNew_RejectsInvalidSpec(t *testing.T) {
	open := func(string) Player { return &fakePlayer{duration: 10} }

	if _, err := New(open, WithSpec(model.SampleSpec{0.5, 0.2})); !errors.Is(err, model.ErrInvalidSampleSpec) {
		t.Errorf("Expected ErrInvalidSampleSpec, got %v", err)
	}
	if _, err := New(open, WithRaster(Raster{Width: 0, Height: 90, Quality: 70})); err == nil {
		t.Error("Expected error for zero width raster")
	}
	if _, err := New(nil); err == nil {
		t.Error("Expected error for nil opener")
	}
}

func TestSample_SequentialCaptures(t *testing.T) {
	player := &fakePlayer{duration: 100}
	var steps []int
	s, err := New(func(string) Player { return player }, WithStepFunc(func(url string, captured int) {
		steps = append(steps, captured)
	}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	set, err := s.Sample(context.Background(), "https://example.com/clip.mp4")
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}

	if set.Len() != len(model.DefaultSampleSpec()) {
		t.Fatalf("Expected %d frames, got %d", len(model.DefaultSampleSpec()), set.Len())
	}

	expected := []string{
		"load",
		"seek 10.0", "frame",
		"seek 30.0", "frame",
		"seek 50.0", "frame",
		"seek 70.0", "frame",
		"seek 90.0", "frame",
	}
	events := player.Events()
	if len(events) != len(expected) {
		t.Fatalf("Expected %d events, got %v", len(expected), events)
	}
	for i := range expected {
		if events[i] != expected[i] {
			t.Errorf("Event %d: expected %q, got %q", i, expected[i], events[i])
		}
	}

	for i := 1; i < len(steps); i++ {
		if steps[i] < steps[i-1] {
			t.Errorf("Frame count decreased: %v", steps)
		}
	}
	if len(steps) != 5 || steps[4] != 5 {
		t.Errorf("Unexpected step sequence: %v", steps)
	}

	for i, f := range set.Frames {
		if f.Position != model.DefaultSampleSpec()[i] {
			t.Errorf("Frame %d: expected position %v, got %v", i, model.DefaultSampleSpec()[i], f.Position)
		}
		if f.MIMEType != "image/jpeg" {
			t.Errorf("Frame %d: unexpected MIME type %s", i, f.MIMEType)
		}
		img, err := jpeg.Decode(bytes.NewReader(f.Image))
		if err != nil {
			t.Fatalf("Frame %d: not a JPEG: %v", i, err)
		}
		if img.Bounds().Dx() != 160 || img.Bounds().Dy() != 90 {
			t.Errorf("Frame %d: expected 160x90, got %v", i, img.Bounds())
		}
	}

	if !player.closed {
		t.Error("Expected player to be closed after the run")
	}
}

func TestGenerate_CallbackOnce(t *testing.T) {
	s, err := New(func(string) Player { return &fakePlayer{duration: 60} })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var mu sync.Mutex
	var calls []model.ThumbnailSet
	s.Generate("https://example.com/a.mp4", func(set model.ThumbnailSet) {
		mu.Lock()
		calls = append(calls, set)
		mu.Unlock()
	})
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 {
		t.Fatalf("Expected exactly one callback, got %d", len(calls))
	}
	if calls[0].Len() != 5 || calls[0].URL != "https://example.com/a.mp4" {
		t.Errorf("Unexpected set: url=%s frames=%d", calls[0].URL, calls[0].Len())
	}
}

func TestGenerate_MetadataFailureNeverCallsBack(t *testing.T) {
	s, err := New(func(string) Player {
		return &fakePlayer{metadataErr: errors.New("unsupported format")}
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	called := false
	s.Generate("https://example.com/broken.avi", func(model.ThumbnailSet) { called = true })
	s.Wait()

	if called {
		t.Error("Callback must not fire when metadata never loads")
	}
}

func TestGenerate_SupersededRunNeverDelivers(t *testing.T) {
	stale := &fakePlayer{duration: 100, seekGate: make(chan struct{})}
	fresh := &fakePlayer{duration: 50}

	s, err := New(func(url string) Player {
		if url == "https://example.com/old.mp4" {
			return stale
		}
		return fresh
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var mu sync.Mutex
	var delivered []string
	onDone := func(set model.ThumbnailSet) {
		mu.Lock()
		delivered = append(delivered, set.URL)
		mu.Unlock()
	}

	s.Generate("https://example.com/old.mp4", onDone)

	// wait until the stale run is parked in its first seek
	deadline := time.Now().Add(2 * time.Second)
	for len(stale.Events()) == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	s.Generate("https://example.com/new.mp4", onDone)
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 || delivered[0] != "https://example.com/new.mp4" {
		t.Fatalf("Expected only the new run to deliver, got %v", delivered)
	}
	for _, ev := range stale.Events() {
		if ev == "frame" {
			t.Error("Superseded run must not capture frames")
		}
	}
}

func TestDeliver_StaleGeneration(t *testing.T) {
	s, err := New(func(string) Player { return &fakePlayer{duration: 1} })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	s.mu.Lock()
	s.gen = 3
	s.mu.Unlock()

	called := 0
	onDone := func(model.ThumbnailSet) { called++ }

	if s.deliver(2, model.ThumbnailSet{URL: "old"}, onDone) {
		t.Error("Stale generation must not deliver")
	}
	if !s.deliver(3, model.ThumbnailSet{URL: "current"}, onDone) {
		t.Error("Current generation must deliver")
	}
	if called != 1 {
		t.Errorf("Expected 1 callback, got %d", called)
	}
}

func TestStop_PreventsDelivery(t *testing.T) {
	player := &fakePlayer{duration: 100, seekGate: make(chan struct{})}
	s, err := New(func(string) Player { return player })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	called := false
	s.Generate("https://example.com/a.mp4", func(model.ThumbnailSet) { called = true })
	s.Stop()
	s.Wait()

	if called {
		t.Error("Callback must not fire after Stop")
	}
}

func TestSample_ContextTimeout(t *testing.T) {
	player := &fakePlayer{duration: 100, seekGate: make(chan struct{})}
	s, err := New(func(string) Player { return player })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	set, err := s.Sample(ctx, "https://example.com/slow.mp4")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Expected no partial frames, got %d", set.Len())
	}
}

func TestSample_CustomSpec(t *testing.T) {
	player := &fakePlayer{duration: 20}
	s, err := New(func(string) Player { return player }, WithSpec(model.SampleSpec{0.25, 0.75}))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	set, err := s.Sample(context.Background(), "u")
	if err != nil {
		t.Fatalf("Sample failed: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("Expected 2 frames, got %d", set.Len())
	}
	if set.Frames[0].Timestamp != 5 || set.Frames[1].Timestamp != 15 {
		t.Errorf("Unexpected timestamps %v, %v", set.Frames[0].Timestamp, set.Frames[1].Timestamp)
	}
}

func TestSample_KilledPlayerReportsDeadline(t *testing.T) {
	player := &fakePlayer{duration: 100, killOnDone: true}
	s, err := New(func(string) Player { return player })
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	set, err := s.Sample(ctx, "https://h/a.mp4")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected DeadlineExceeded, got %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("Expected no frames, got %d", set.Len())
	}
}
