package ui

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-library/internal/model"
	"github.com/ytget/video-library/internal/thumbnail"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// ViewMode selects how cards are laid out
type ViewMode int

const (
	ViewGrid ViewMode = iota
	ViewList
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// formatProgress renders "percent · elapsed · ETA", spelling out the unknown
// size case instead of a percent
func formatProgress(p model.Progress, l *Localization) string {
	var first string
	if p.HasPercent() {
		first = p.GetPercentString()
	} else {
		first = formatFileSize(p.Received) + " (" + l.GetText(KeySizeUnknown) + ")"
	}
	return strings.Join([]string{
		first,
		p.GetElapsedString(),
		l.GetText(KeyETA) + " " + p.GetETAString(),
	}, MiddleDotSeparator)
}

// videoMeta joins the optional size and date labels
func videoMeta(v model.VideoFile) string {
	var parts []string
	if s := v.SizeLabel(); s != "" {
		parts = append(parts, s)
	}
	if d := v.DateLabel(); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// VideoCard shows one catalog item with hover previews and a download control
type VideoCard struct {
	widget.BaseWidget

	video        model.VideoFile
	localization *Localization
	mode         ViewMode

	sampler *thumbnail.Sampler

	mu       sync.Mutex
	taskID   string
	timer    *time.Timer
	gotShots bool

	thumbs        *ThumbnailView
	nameLabel     *widget.Label
	metaLabel     *widget.Label
	downloadBtn   *widget.Button
	progressBar   *widget.ProgressBar
	unknownBar    *widget.ProgressBarInfinite
	progressLabel *widget.Label
	content       *fyne.Container

	onDownload func(video model.VideoFile)
	onStop     func(taskID string)
}

// NewVideoCard creates a card; open supplies the media player for previews
func NewVideoCard(video model.VideoFile, open thumbnail.Opener, localization *Localization, mode ViewMode) *VideoCard {
	vc := &VideoCard{
		video:        video,
		localization: localization,
		mode:         mode,
	}
	vc.ExtendBaseWidget(vc)

	if open != nil {
		sampler, err := thumbnail.New(open)
		if err != nil {
			log.Printf("Failed to create sampler for %s: %v", video.Name, err)
		} else {
			vc.sampler = sampler
		}
	}

	vc.createUI()
	return vc
}

// SetCallbacks sets the action callbacks
func (vc *VideoCard) SetCallbacks(onDownload func(model.VideoFile), onStop func(taskID string)) {
	vc.onDownload = onDownload
	vc.onStop = onStop
}

// Video returns the item shown by the card
func (vc *VideoCard) Video() model.VideoFile {
	return vc.video
}

// TaskID returns the download task bound to the card, if any
func (vc *VideoCard) TaskID() string {
	vc.mu.Lock()
	defer vc.mu.Unlock()
	return vc.taskID
}

// BindTask associates a download task with the card
func (vc *VideoCard) BindTask(taskID string) {
	vc.mu.Lock()
	vc.taskID = taskID
	vc.mu.Unlock()
}

func (vc *VideoCard) createUI() {
	vc.thumbs = NewThumbnailView(vc.localization, fyne.NewSize(ThumbnailWidth, ThumbnailHeight))

	vc.nameLabel = widget.NewLabel(vc.video.Name)
	vc.nameLabel.Truncation = fyne.TextTruncateEllipsis
	vc.nameLabel.TextStyle = fyne.TextStyle{Bold: true}

	vc.metaLabel = widget.NewLabel(videoMeta(vc.video))
	vc.metaLabel.Importance = widget.LowImportance

	vc.downloadBtn = widget.NewButton(IconDownload+" "+vc.localization.GetText(KeyDownload), vc.onButton)
	vc.downloadBtn.Importance = widget.HighImportance

	vc.progressBar = widget.NewProgressBar()
	vc.progressBar.Hide()
	vc.unknownBar = widget.NewProgressBarInfinite()
	vc.unknownBar.Stop()
	vc.unknownBar.Hide()
	vc.progressLabel = widget.NewLabel("")
	vc.progressLabel.Importance = widget.LowImportance
	vc.progressLabel.Hide()

	vc.content = container.NewStack()
	vc.layout()
}

func (vc *VideoCard) layout() {
	progress := container.NewVBox(vc.progressBar, vc.unknownBar, vc.progressLabel)

	var body fyne.CanvasObject
	if vc.mode == ViewList {
		info := container.NewVBox(vc.nameLabel, vc.metaLabel, progress)
		body = container.NewBorder(nil, nil, vc.thumbs, vc.downloadBtn, info)
	} else {
		body = container.NewVBox(vc.thumbs, vc.nameLabel, vc.metaLabel, progress, vc.downloadBtn)
	}
	vc.content.Objects = []fyne.CanvasObject{body}
	vc.content.Refresh()
}

// SetMode switches between grid and list layout
func (vc *VideoCard) SetMode(mode ViewMode) {
	if vc.mode == mode {
		return
	}
	vc.mode = mode
	vc.layout()
}

// CreateRenderer implements fyne.Widget
func (vc *VideoCard) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(vc.content)
}

// StartPreviews samples thumbnails, falling back to the placeholder when
// nothing arrives within timeout
func (vc *VideoCard) StartPreviews(timeout time.Duration) {
	vc.thumbs.Clear()
	if vc.sampler == nil {
		vc.thumbs.ShowPlaceholder()
		return
	}

	vc.mu.Lock()
	vc.gotShots = false
	if vc.timer != nil {
		vc.timer.Stop()
	}
	vc.timer = time.AfterFunc(timeout, vc.onPreviewTimeout)
	vc.mu.Unlock()

	vc.sampler.Generate(vc.video.URL, func(set model.ThumbnailSet) {
		vc.mu.Lock()
		vc.gotShots = true
		if vc.timer != nil {
			vc.timer.Stop()
		}
		vc.mu.Unlock()

		fyne.Do(func() { vc.thumbs.SetFrames(set) })
	})
}

func (vc *VideoCard) onPreviewTimeout() {
	vc.mu.Lock()
	got := vc.gotShots
	vc.mu.Unlock()
	if got {
		return
	}

	log.Printf("No thumbnails for %s before timeout", vc.video.Name)
	vc.sampler.Stop()
	fyne.Do(vc.thumbs.ShowPlaceholder)
}

// Release cancels background work owned by the card
func (vc *VideoCard) Release() {
	vc.mu.Lock()
	if vc.timer != nil {
		vc.timer.Stop()
	}
	vc.mu.Unlock()

	if vc.sampler != nil {
		vc.sampler.Stop()
	}
	vc.thumbs.stopCycling()
}

func (vc *VideoCard) onButton() {
	if id := vc.TaskID(); id != "" {
		if vc.onStop != nil {
			vc.onStop(id)
		}
		return
	}
	if vc.onDownload != nil {
		vc.onDownload(vc.video)
	}
}

// UpdateTask renders the state of the bound download task
func (vc *VideoCard) UpdateTask(task *model.DownloadTask) {
	p := task.Progress
	l := vc.localization

	switch task.Status {
	case model.TaskStatusPending:
		vc.showBars(false, false)
		vc.setLabel(l.GetText(KeyStatusPending))
		vc.setButton(true)

	case model.TaskStatusStarting, model.TaskStatusDownloading:
		vc.showBars(p.HasPercent(), !p.HasPercent())
		if p.HasPercent() {
			vc.progressBar.SetValue(float64(p.Percent) / 100)
		}
		if p.Active {
			vc.setLabel(formatProgress(p, l))
		} else {
			vc.setLabel(l.GetText(KeyLoading))
		}
		vc.setButton(true)

	case model.TaskStatusSaving, model.TaskStatusStopping:
		vc.showBars(false, true)
		vc.setLabel(l.GetText(KeyStatusSaving))
		vc.setButton(true)

	case model.TaskStatusCompleted:
		vc.showBars(false, false)
		vc.setLabel(l.GetText(KeyDownloadCompleted) + MiddleDotSeparator + filepath.Base(task.OutputPath))
		vc.finishTask()

	case model.TaskStatusError:
		vc.showBars(false, false)
		vc.setLabel(l.GetText(KeyDownloadFailed))
		vc.finishTask()

	case model.TaskStatusStopped:
		vc.showBars(false, false)
		vc.setLabel(l.GetText(KeyStatusStopped))
		vc.finishTask()
	}
}

func (vc *VideoCard) finishTask() {
	vc.BindTask("")
	vc.setButton(false)
}

func (vc *VideoCard) showBars(known, unknown bool) {
	if known {
		vc.progressBar.Show()
	} else {
		vc.progressBar.Hide()
	}
	if unknown {
		vc.unknownBar.Show()
		vc.unknownBar.Start()
	} else {
		vc.unknownBar.Stop()
		vc.unknownBar.Hide()
	}
}

func (vc *VideoCard) setLabel(text string) {
	vc.progressLabel.SetText(text)
	vc.progressLabel.Show()
}

func (vc *VideoCard) setButton(running bool) {
	if running {
		vc.downloadBtn.SetText(IconStop + " " + vc.localization.GetText(KeyStop))
		vc.downloadBtn.Importance = widget.MediumImportance
	} else {
		vc.downloadBtn.SetText(IconDownload + " " + vc.localization.GetText(KeyDownload))
		vc.downloadBtn.Importance = widget.HighImportance
	}
	vc.downloadBtn.Refresh()
}
