package api

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/ytget/video-library/internal/catalog"
	"github.com/ytget/video-library/internal/model"
)

// DefaultThumbnailTimeout bounds one sampling request
const DefaultThumbnailTimeout = 10 * time.Second

// VideoLister resolves a folder name to its media files
type VideoLister interface {
	ListVideos(ctx context.Context, folder string) ([]model.VideoFile, error)
}

// ThumbnailSampler captures a thumbnail set for a media URL
type ThumbnailSampler interface {
	Sample(ctx context.Context, url string) (model.ThumbnailSet, error)
}

// VideoResponse is one entry of the listing
type VideoResponse struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Size         string `json:"size,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// ThumbnailsResponse carries frames as data URLs in sample order
type ThumbnailsResponse struct {
	URL        string   `json:"url"`
	Thumbnails []string `json:"thumbnails"`
}

// Option configures a Server
type Option func(*Server)

// WithThumbnailTimeout overrides DefaultThumbnailTimeout
func WithThumbnailTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.thumbnailTimeout = d
		}
	}
}

// WithoutRequestLog disables the access log middleware
func WithoutRequestLog() Option {
	return func(s *Server) { s.requestLog = false }
}

// Server wires the handlers into a fiber app
type Server struct {
	app              *fiber.App
	lister           VideoLister
	sampler          ThumbnailSampler
	thumbnailTimeout time.Duration
	requestLog       bool
}

// NewServer creates the HTTP API
func NewServer(lister VideoLister, sampler ThumbnailSampler, opts ...Option) *Server {
	s := &Server{
		lister:           lister,
		sampler:          sampler,
		thumbnailTimeout: DefaultThumbnailTimeout,
		requestLog:       true,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})
	if s.requestLog {
		s.app.Use(logger.New())
	}
	s.app.Use(cors.New())

	api := s.app.Group("/api")
	api.Get("/list-files", s.listFiles)
	api.Get("/thumbnails", s.thumbnails)

	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return s
}

// App returns the underlying fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until shutdown
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) listFiles(c *fiber.Ctx) error {
	folder := c.Query("pwd")
	if folder == "" {
		return HandleError(c, ErrInvalidFolder(nil))
	}

	videos, err := s.lister.ListVideos(c.UserContext(), folder)
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidFolder) {
			return HandleError(c, ErrInvalidFolder(err))
		}
		return HandleError(c, ErrListFailed(err))
	}

	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, VideoResponse{
			Name:         v.Name,
			URL:          v.URL,
			Size:         v.SizeLabel(),
			LastModified: v.DateLabel(),
		})
	}
	return c.JSON(out)
}

func (s *Server) thumbnails(c *fiber.Ctx) error {
	raw := c.Query("url")
	if err := validateMediaURL(raw); err != nil {
		return HandleError(c, ErrInvalidURL(err))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.thumbnailTimeout)
	defer cancel()

	set, err := s.sampler.Sample(ctx, raw)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return HandleError(c, ErrTimeout(err))
		}
		return HandleError(c, ErrSampleFailed(err))
	}

	return c.JSON(ThumbnailsResponse{URL: raw, Thumbnails: set.DataURLs()})
}

// validateMediaURL accepts absolute http(s) URLs only
func validateMediaURL(raw string) error {
	if raw == "" {
		return errors.New("url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("url must be absolute http or https")
	}
	return nil
}
