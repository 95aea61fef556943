package thumbnail

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"github.com/ytget/video-library/internal/model"
	"github.com/ytget/video-library/internal/platform"
)

// Player is a seekable media element owned by a single run
type Player interface {
	// LoadMetadata blocks until the duration (seconds) is known
	LoadMetadata(ctx context.Context) (float64, error)
	// Seek blocks until the seek has completed and a frame is visible
	Seek(ctx context.Context, seconds float64) error
	// Frame returns the currently visible frame
	Frame() (image.Image, error)
	Close() error
}

// Opener creates a fresh player for url
type Opener func(url string) Player

// StepFunc observes the number of frames captured so far in a run
type StepFunc func(url string, captured int)

// Option configures a Sampler
type Option func(*Sampler)

// WithSpec overrides the default sample positions
func WithSpec(spec model.SampleSpec) Option {
	return func(s *Sampler) { s.spec = append(model.SampleSpec(nil), spec...) }
}

// WithRaster overrides the default 160x90 JPEG raster
func WithRaster(r Raster) Option {
	return func(s *Sampler) { s.raster = r }
}

// WithStepFunc installs an observer called after every captured frame
func WithStepFunc(fn StepFunc) Option {
	return func(s *Sampler) { s.onStep = fn }
}

// Sampler turns media URLs into ordered thumbnail sets.
// Sample can be used concurrently; Generate/Stop manage one current run.
type Sampler struct {
	open   Opener
	spec   model.SampleSpec
	raster Raster
	onStep StepFunc

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a sampler using open to obtain a player per run
func New(open Opener, opts ...Option) (*Sampler, error) {
	if open == nil {
		return nil, errors.New("thumbnail: nil opener")
	}
	s := &Sampler{
		open:   open,
		spec:   model.DefaultSampleSpec(),
		raster: DefaultRaster(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.spec.Validate(); err != nil {
		return nil, err
	}
	if err := s.raster.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Spec returns a copy of the sample positions
func (s *Sampler) Spec() model.SampleSpec {
	return append(model.SampleSpec(nil), s.spec...)
}

// Sample runs one capture sequence synchronously.
// It returns the complete set, or an error and no frames.
func (s *Sampler) Sample(ctx context.Context, url string) (model.ThumbnailSet, error) {
	player := s.open(url)
	if player == nil {
		return model.ThumbnailSet{}, fmt.Errorf("no player for %s", platform.RedactURL(url))
	}
	defer player.Close()

	r := &run{
		url:    url,
		player: player,
		spec:   s.spec,
		raster: s.raster,
		frames: make([]model.Frame, 0, len(s.spec)),
	}

	for r.state != stateDone {
		if err := ctx.Err(); err != nil {
			return model.ThumbnailSet{}, err
		}
		captured := len(r.frames)
		if err := r.step(ctx); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
				return model.ThumbnailSet{}, fmt.Errorf("%w: %v", ctxErr, err)
			}
			return model.ThumbnailSet{}, err
		}
		if len(r.frames) > captured && s.onStep != nil {
			s.onStep(url, len(r.frames))
		}
	}

	return model.ThumbnailSet{URL: url, Frames: r.frames}, nil
}

// Generate starts a run for url in the background and cancels any run in
// flight. onDone is invoked exactly once with the full set if, and only if,
// this run is still the current one when it completes. A run whose
// metadata or frames cannot be loaded never calls onDone; callers apply
// their own timeout. onDone runs with the sampler locked and must not call
// Generate or Stop synchronously.
func (s *Sampler) Generate(url string, onDone func(model.ThumbnailSet)) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()

		set, err := s.Sample(ctx, url)
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				log.Printf("Thumbnail run for %s abandoned: %v", platform.RedactURL(url), err)
			}
			return
		}
		s.deliver(gen, set, onDone)
	}()
}

// Stop cancels the run in flight and prevents it from delivering
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Wait blocks until every background run has returned
func (s *Sampler) Wait() {
	s.wg.Wait()
}

// deliver hands set to onDone when gen is still current
func (s *Sampler) deliver(gen uint64, set model.ThumbnailSet, onDone func(model.ThumbnailSet)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		log.Printf("Dropping stale thumbnails for %s", platform.RedactURL(set.URL))
		return false
	}
	s.cancel = nil
	if onDone != nil {
		onDone(set)
	}
	return true
}

type runState int

const (
	stateLoading runState = iota
	stateSeeking
	stateCapturing
	stateDone
)

// run is the seek-then-capture state machine of a single sample pass.
// The index advances only after the frame of the previous seek is captured.
type run struct {
	url      string
	player   Player
	spec     model.SampleSpec
	raster   Raster
	state    runState
	duration float64
	index    int
	frames   []model.Frame
}

func (r *run) step(ctx context.Context) error {
	switch r.state {
	case stateLoading:
		duration, err := r.player.LoadMetadata(ctx)
		if err != nil {
			return fmt.Errorf("failed to load metadata: %w", err)
		}
		if duration <= 0 {
			return fmt.Errorf("invalid duration %v", duration)
		}
		r.duration = duration
		r.state = stateSeeking

	case stateSeeking:
		if err := r.player.Seek(ctx, r.timestamp()); err != nil {
			return fmt.Errorf("seek %d failed: %w", r.index, err)
		}
		r.state = stateCapturing

	case stateCapturing:
		img, err := r.player.Frame()
		if err != nil {
			return fmt.Errorf("capture %d failed: %w", r.index, err)
		}
		frame, err := r.raster.Capture(img, r.spec[r.index], r.timestamp())
		if err != nil {
			return err
		}
		r.frames = append(r.frames, frame)
		r.index++
		if r.index >= len(r.spec) {
			r.state = stateDone
		} else {
			r.state = stateSeeking
		}
	}
	return nil
}

func (r *run) timestamp() float64 {
	return r.duration * r.spec[r.index]
}
