package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/ytget/video-library/internal/platform"
)

// FFmpeg constants for probing and frame extraction
const (
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	FFmpegLogLevel      = "error"
	FrameCount          = "1"
	FrameMuxer          = "image2pipe"
	FrameCodec          = "png"
	StdoutTarget        = "pipe:1"
)

var (
	ErrNoDuration = errors.New("media duration unavailable")
	ErrNoFrame    = errors.New("no frame decoded")
	ErrClosed     = errors.New("player closed")
)

// Runner executes an external command and returns its stdout
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands through os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		// A killed process reports its signal, not the deadline
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s interrupted: %w", name, ctxErr)
		}
		return nil, fmt.Errorf("%s failed: %w (%s)", name, err, strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// Player is an ffmpeg backed media element bound to one URL
type Player struct {
	url    string
	run    Runner
	mu     sync.Mutex
	frame  image.Image
	closed bool
}

// NewPlayer creates a player for url using the system ffmpeg tools
func NewPlayer(url string) *Player {
	return NewPlayerWithRunner(url, ExecRunner)
}

// NewPlayerWithRunner creates a player with a custom command runner
func NewPlayerWithRunner(url string, run Runner) *Player {
	return &Player{url: url, run: run}
}

// Available reports whether ffmpeg and ffprobe are on PATH
func Available() bool {
	if _, err := exec.LookPath(FFmpegCommand); err != nil {
		return false
	}
	_, err := exec.LookPath(FFprobeCommand)
	return err == nil
}

// LoadMetadata probes the duration of the media in seconds
func (p *Player) LoadMetadata(ctx context.Context) (float64, error) {
	if p.isClosed() {
		return 0, ErrClosed
	}
	out, err := p.run(ctx, FFprobeCommand, BuildProbeArgs(p.url)...)
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}
	return ParseDuration(string(out))
}

// Seek decodes the frame at seconds; it returns once the frame is available
func (p *Player) Seek(ctx context.Context, seconds float64) error {
	if p.isClosed() {
		return ErrClosed
	}
	out, err := p.run(ctx, FFmpegCommand, BuildFrameArgs(p.url, seconds)...)
	if err != nil {
		return fmt.Errorf("failed to seek to %.3fs: %w", seconds, err)
	}
	if len(out) == 0 {
		return fmt.Errorf("%w at %.3fs", ErrNoFrame, seconds)
	}

	img, err := png.Decode(bytes.NewReader(out))
	if err != nil {
		return fmt.Errorf("failed to decode frame at %.3fs: %w", seconds, err)
	}

	p.mu.Lock()
	p.frame = img
	p.mu.Unlock()
	return nil
}

// Frame returns the frame decoded by the last completed seek
func (p *Player) Frame() (image.Image, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}
	if p.frame == nil {
		return nil, ErrNoFrame
	}
	return p.frame, nil
}

// Close releases the current frame
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		log.Printf("Closing media player for %s", platform.RedactURL(p.url))
	}
	p.closed = true
	p.frame = nil
	return nil
}

func (p *Player) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// BuildProbeArgs builds the ffprobe arguments reading the container duration
func BuildProbeArgs(url string) []string {
	return []string{
		"-v", FFprobeLogLevel, // Errors only
		"-show_entries", FFprobeShowEntries, // Duration only
		"-of", FFprobeOutputFormat, // Bare value
		url,
	}
}

// BuildFrameArgs builds the ffmpeg arguments extracting one PNG frame at seconds
func BuildFrameArgs(url string, seconds float64) []string {
	return []string{
		"-v", FFmpegLogLevel,
		"-ss", strconv.FormatFloat(seconds, 'f', 3, 64), // Input seek, before -i
		"-i", url,
		"-frames:v", FrameCount,
		"-f", FrameMuxer,
		"-vcodec", FrameCodec,
		StdoutTarget,
	}
}

// ParseDuration parses ffprobe output into seconds
func ParseDuration(output string) (float64, error) {
	durationStr := strings.TrimSpace(output)
	if durationStr == "" || durationStr == "N/A" {
		return 0, ErrNoDuration
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", durationStr, err)
	}
	if duration <= 0 {
		return 0, fmt.Errorf("%w: %v", ErrNoDuration, duration)
	}
	return duration, nil
}
