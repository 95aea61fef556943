package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/video-library/internal/catalog"
	"github.com/ytget/video-library/internal/config"
	"github.com/ytget/video-library/internal/download"
	"github.com/ytget/video-library/internal/media"
	"github.com/ytget/video-library/internal/platform"
	"github.com/ytget/video-library/internal/thumbnail"
	"github.com/ytget/video-library/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.video-library"
	AppName = "Video Library"
)

func main() {
	fmt.Printf("Video Library v%s starting...\n", version)

	if !media.Available() {
		log.Printf("ffmpeg/ffprobe not found in PATH, previews will show placeholders")
	}

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewLibraryTheme())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	settings := config.NewSettings(myApp)
	downloadsDir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(downloadsDir); err != nil {
		fmt.Printf("failed to ensure downloads dir: %v\n", err)
	}

	manager := download.NewManager(http.DefaultClient, downloadsDir, settings.GetMaxParallelDownloads())

	newLister := func(ctx context.Context, bucket, region string) (ui.VideoLister, error) {
		lister, err := catalog.NewS3Lister(ctx, bucket, region)
		if err != nil {
			return nil, err
		}
		return lister, nil
	}
	open := func(url string) thumbnail.Player {
		return media.NewPlayer(url)
	}

	ui.NewRootUI(myWindow, myApp, manager, newLister, open)

	myWindow.ShowAndRun()
}
