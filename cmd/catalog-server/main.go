// Command catalog-server exposes the video catalog and thumbnail
// sampling over HTTP.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ytget/video-library/internal/api"
	"github.com/ytget/video-library/internal/catalog"
	"github.com/ytget/video-library/internal/config"
	"github.com/ytget/video-library/internal/media"
	"github.com/ytget/video-library/internal/thumbnail"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const shutdownTimeout = 5 * time.Second

func main() {
	log.Printf("Catalog server v%s starting...", version)

	cfg, err := config.LoadServerConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if !media.Available() {
		log.Printf("ffmpeg/ffprobe not found in PATH, thumbnail requests will fail")
	}

	ctx := context.Background()
	lister, err := catalog.NewS3Lister(ctx, cfg.Bucket, cfg.Region, catalog.WithPresignExpiry(cfg.PresignExpiry))
	if err != nil {
		log.Fatalf("Failed to create S3 lister: %v", err)
	}

	sampler, err := thumbnail.New(func(url string) thumbnail.Player {
		return media.NewPlayer(url)
	})
	if err != nil {
		log.Fatalf("Failed to create sampler: %v", err)
	}

	server := api.NewServer(lister, sampler, api.WithThumbnailTimeout(cfg.ThumbnailTimeout))

	go func() {
		log.Printf("Server starting on %s (bucket %s)", cfg.Addr(), cfg.Bucket)
		if err := server.Listen(cfg.Addr()); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Print("Shutting down server...")

	ctxShut, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctxShut); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")
}
