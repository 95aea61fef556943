package download

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ytget/video-library/internal/model"
	"github.com/ytget/video-library/internal/platform"
)

// DefaultChunkSize is the read buffer used for one body chunk
const DefaultChunkSize = 32 * 1024

// ErrDownloadFailed is wrapped by every error returned from Download
var ErrDownloadFailed = errors.New("download failed")

// Option configures a Downloader
type Option func(*Downloader)

// WithClock replaces time.Now for elapsed and ETA computation
func WithClock(now func() time.Time) Option {
	return func(d *Downloader) { d.now = now }
}

// WithTickInterval overrides DefaultTickInterval
func WithTickInterval(tick time.Duration) Option {
	return func(d *Downloader) {
		if tick > 0 {
			d.tick = tick
		}
	}
}

// WithChunkSize overrides DefaultChunkSize
func WithChunkSize(size int) Option {
	return func(d *Downloader) {
		if size > 0 {
			d.chunkSize = size
		}
	}
}

// Downloader fetches one URL at a time into memory, then saves it.
// Each Download call owns its own session and accumulator.
type Downloader struct {
	client    *http.Client
	saver     Saver
	now       func() time.Time
	tick      time.Duration
	chunkSize int
}

// New creates a downloader; a nil client means http.DefaultClient
func New(client *http.Client, saver Saver, opts ...Option) *Downloader {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Downloader{
		client:    client,
		saver:     saver,
		now:       time.Now,
		tick:      DefaultTickInterval,
		chunkSize: DefaultChunkSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download streams url, reporting progress to onUpdate, and saves the
// payload as fileName. It returns the saved path.
func (d *Downloader) Download(ctx context.Context, url, fileName string, onUpdate func(model.Progress)) (string, error) {
	var path string
	err := withSession(d.now, d.tick, onUpdate, func(s *Session) error {
		var err error
		path, err = d.run(ctx, s, url, fileName)
		return err
	})
	if err != nil {
		log.Printf("Download of %s failed: %v", platform.RedactURL(url), err)
		return "", fmt.Errorf("%w: %w", ErrDownloadFailed, err)
	}
	return path, nil
}

func (d *Downloader) run(ctx context.Context, s *Session, url, fileName string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %s", resp.Status)
	}

	// Content-Length 0 is treated the same as an absent header
	if resp.ContentLength > 0 {
		s.SetTotal(resp.ContentLength)
	}

	chunks, err := d.readChunks(ctx, resp.Body, s)
	if err != nil {
		return "", err
	}

	payload := bytes.Join(chunks, nil)
	return d.saver.Save(ctx, fileName, payload)
}

// readChunks collects every non-empty read as its own chunk
func (d *Downloader) readChunks(ctx context.Context, body io.Reader, s *Session) ([][]byte, error) {
	var chunks [][]byte
	buf := make([]byte, d.chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		n, err := body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			chunks = append(chunks, chunk)
			s.Add(n)
		}
		if err == io.EOF {
			return chunks, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read failed: %w", err)
		}
	}
}
