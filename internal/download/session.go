package download

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/video-library/internal/model"
)

// DefaultTickInterval is how often a running session re-emits its progress
const DefaultTickInterval = 500 * time.Millisecond

// Session tracks one transfer: start time, received bytes, percent and ETA.
// Updates are serialized, so the callback never runs concurrently with itself.
// The callback runs without the state lock held and may call Progress.
type Session struct {
	ID string

	now      func() time.Time
	onUpdate func(model.Progress)

	emitMu   sync.Mutex // orders callbacks; taken before mu
	mu       sync.Mutex
	start    time.Time
	total    int64
	received int64
	percent  int
	eta      int
	closed   bool

	ticker *time.Ticker
	done   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

func newSession(now func() time.Time, tick time.Duration, onUpdate func(model.Progress)) *Session {
	s := &Session{
		ID:       generateSessionID(),
		now:      now,
		onUpdate: onUpdate,
		start:    now(),
		percent:  model.Unknown,
		eta:      model.Unknown,
		ticker:   time.NewTicker(tick),
		done:     make(chan struct{}),
	}

	s.wg.Add(1)
	go s.tickLoop()
	return s
}

// withSession runs fn inside a session that is always closed afterwards
func withSession(now func() time.Time, tick time.Duration, onUpdate func(model.Progress), fn func(*Session) error) error {
	s := newSession(now, tick, onUpdate)
	defer s.Close()
	return fn(s)
}

func (s *Session) tickLoop() {
	defer s.wg.Done()
	for {
		select {
		case <-s.ticker.C:
			s.emitMu.Lock()
			s.mu.Lock()
			closed := s.closed
			p := s.snapshotLocked()
			s.mu.Unlock()
			if !closed {
				s.emit(p)
			}
			s.emitMu.Unlock()
		case <-s.done:
			return
		}
	}
}

// SetTotal records the declared size; non-positive means unknown
func (s *Session) SetTotal(total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if total < 0 {
		total = 0
	}
	s.total = total
}

// Add accounts for one received chunk and emits an update
func (s *Session) Add(n int) {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.received += int64(n)
	percent := Percent(s.received, s.total)
	if percent != s.percent {
		s.percent = percent
		s.eta = EstimateRemaining(s.now().Sub(s.start), percent)
	}
	p := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(p)
}

// Progress returns the current snapshot
func (s *Session) Progress() model.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() model.Progress {
	if s.closed {
		return model.IdleProgress()
	}
	return model.Progress{
		Percent:    s.percent,
		ElapsedSec: int(s.now().Sub(s.start).Seconds()),
		ETASec:     s.eta,
		Received:   s.received,
		Total:      s.total,
		Active:     true,
	}
}

func (s *Session) emit(p model.Progress) {
	if s.onUpdate != nil {
		s.onUpdate(p)
	}
}

// Close stops the ticker, resets the counters and emits one idle snapshot.
// Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
		s.wg.Wait()

		s.emitMu.Lock()
		defer s.emitMu.Unlock()

		s.mu.Lock()
		s.closed = true
		s.received = 0
		s.total = 0
		s.percent = model.Unknown
		s.eta = model.Unknown
		p := s.snapshotLocked()
		s.mu.Unlock()

		s.emit(p)
	})
}

// generateSessionID generates a unique session ID
func generateSessionID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "session-" + uuid.NewString()
	}
	return "session-" + id.String()
}
