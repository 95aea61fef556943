package ui

import (
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-library/internal/model"
)

// frameCycler tracks which preview frame is visible
type frameCycler struct {
	count   int
	current int
	hovered bool
}

// Next advances to the following frame while hovered with more than one frame
func (fc *frameCycler) Next() bool {
	if !fc.hovered || fc.count < 2 {
		return false
	}
	fc.current = (fc.current + 1) % fc.count
	return true
}

// Leave stops cycling and rewinds to the first frame
func (fc *frameCycler) Leave() {
	fc.hovered = false
	fc.current = 0
}

// SetCount replaces the number of frames and rewinds
func (fc *frameCycler) SetCount(n int) {
	fc.count = n
	fc.current = 0
}

// ThumbnailView shows a placeholder until frames arrive, then the first frame;
// hovering cycles through the frames.
type ThumbnailView struct {
	widget.BaseWidget

	localization *Localization
	size         fyne.Size

	mu       sync.Mutex
	cycler   frameCycler
	images   []fyne.Resource
	ticker   *time.Ticker
	stopTick chan struct{}

	image       *canvas.Image
	placeholder *widget.Label
	spinner     *widget.ProgressBarInfinite
	dots        *widget.Label
}

var _ desktop.Hoverable = (*ThumbnailView)(nil)

// NewThumbnailView creates an empty view of the given size
func NewThumbnailView(localization *Localization, size fyne.Size) *ThumbnailView {
	tv := &ThumbnailView{localization: localization, size: size}
	tv.ExtendBaseWidget(tv)

	tv.image = canvas.NewImageFromResource(nil)
	tv.image.FillMode = canvas.ImageFillContain
	tv.image.SetMinSize(size)
	tv.image.Hide()

	tv.placeholder = widget.NewLabel(IconVideo)
	tv.placeholder.Alignment = fyne.TextAlignCenter
	tv.spinner = widget.NewProgressBarInfinite()
	tv.dots = widget.NewLabel("")
	tv.dots.Alignment = fyne.TextAlignCenter
	tv.dots.Hide()
	return tv
}

// CreateRenderer implements fyne.Widget
func (tv *ThumbnailView) CreateRenderer() fyne.WidgetRenderer {
	content := container.NewStack(
		tv.image,
		container.NewCenter(tv.placeholder),
		container.NewBorder(nil, container.NewVBox(tv.spinner, tv.dots), nil, nil),
	)
	return widget.NewSimpleRenderer(content)
}

// MinSize keeps the 16:9 preview box
func (tv *ThumbnailView) MinSize() fyne.Size {
	return tv.size
}

// SetLoading shows or hides the activity indicator
func (tv *ThumbnailView) SetLoading(loading bool) {
	if loading {
		tv.spinner.Show()
		tv.spinner.Start()
		return
	}
	tv.spinner.Stop()
	tv.spinner.Hide()
}

// ShowPlaceholder gives up on previews for this item
func (tv *ThumbnailView) ShowPlaceholder() {
	tv.SetLoading(false)
	tv.placeholder.SetText(IconVideo + " " + tv.localization.GetText(KeyNoPreview))
}

// SetFrames displays a thumbnail set, replacing any previous frames
func (tv *ThumbnailView) SetFrames(set model.ThumbnailSet) {
	images := make([]fyne.Resource, 0, set.Len())
	for i, f := range set.Frames {
		images = append(images, fyne.NewStaticResource(fmt.Sprintf("frame-%d.jpg", i), f.Image))
	}

	tv.mu.Lock()
	tv.images = images
	tv.cycler.SetCount(len(images))
	tv.mu.Unlock()

	tv.SetLoading(false)
	if len(images) == 0 {
		tv.ShowPlaceholder()
		return
	}
	tv.placeholder.Hide()
	tv.image.Show()
	tv.showCurrent()
}

// Clear drops frames and returns to the loading placeholder
func (tv *ThumbnailView) Clear() {
	tv.stopCycling()
	tv.mu.Lock()
	tv.images = nil
	tv.cycler.SetCount(0)
	tv.mu.Unlock()

	tv.image.Resource = nil
	tv.image.Hide()
	tv.dots.Hide()
	tv.placeholder.SetText(IconVideo)
	tv.placeholder.Show()
	tv.SetLoading(true)
}

// MouseIn starts cycling frames
func (tv *ThumbnailView) MouseIn(*desktop.MouseEvent) {
	tv.mu.Lock()
	tv.cycler.hovered = true
	multiple := tv.cycler.count > 1
	if multiple && tv.ticker == nil {
		tv.ticker = time.NewTicker(HoverCycleInterval)
		tv.stopTick = make(chan struct{})
		go tv.cycle(tv.ticker, tv.stopTick)
	}
	tv.mu.Unlock()

	if multiple {
		tv.showCurrent()
	}
}

// MouseMoved implements desktop.Hoverable
func (tv *ThumbnailView) MouseMoved(*desktop.MouseEvent) {}

// MouseOut stops cycling and shows the first frame again
func (tv *ThumbnailView) MouseOut() {
	tv.stopCycling()
	tv.showCurrent()
}

func (tv *ThumbnailView) stopCycling() {
	tv.mu.Lock()
	defer tv.mu.Unlock()
	tv.cycler.Leave()
	if tv.ticker != nil {
		tv.ticker.Stop()
		close(tv.stopTick)
		tv.ticker = nil
	}
}

func (tv *ThumbnailView) cycle(ticker *time.Ticker, stop chan struct{}) {
	for {
		select {
		case <-ticker.C:
			tv.mu.Lock()
			moved := tv.cycler.Next()
			tv.mu.Unlock()
			if moved {
				fyne.Do(tv.showCurrent)
			}
		case <-stop:
			return
		}
	}
}

func (tv *ThumbnailView) showCurrent() {
	tv.mu.Lock()
	if len(tv.images) == 0 {
		tv.mu.Unlock()
		return
	}
	res := tv.images[tv.cycler.current]
	dots := frameDots(tv.cycler.count, tv.cycler.current)
	hovered := tv.cycler.hovered
	tv.mu.Unlock()

	tv.image.Resource = res
	tv.image.Refresh()
	if hovered && dots != "" {
		tv.dots.SetText(dots)
		tv.dots.Show()
	} else {
		tv.dots.Hide()
	}
}

// frameDots renders the position indicator, e.g. "○●○○○"
func frameDots(count, current int) string {
	if count < 2 {
		return ""
	}
	out := make([]rune, count)
	for i := range out {
		out[i] = '○'
		if i == current {
			out[i] = '●'
		}
	}
	return string(out)
}
