package ui

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/video-library/internal/config"
	"github.com/ytget/video-library/internal/download"
	"github.com/ytget/video-library/internal/model"
	"github.com/ytget/video-library/internal/platform"
	"github.com/ytget/video-library/internal/thumbnail"
)

// VideoLister resolves a folder name to its media files
type VideoLister interface {
	ListVideos(ctx context.Context, folder string) ([]model.VideoFile, error)
}

// ListerFactory builds a lister for the configured bucket
type ListerFactory func(ctx context.Context, bucket, region string) (VideoLister, error)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization
	downloads    download.TaskManager
	newLister    ListerFactory
	open         thumbnail.Opener

	titleLabel    *widget.Label
	subtitleLabel *widget.Label
	passwordEntry *widget.Entry
	searchEntry   *widget.Entry
	gridBtn       *widget.Button
	listBtn       *widget.Button
	settingsBtn   *widget.Button
	statusLabel   *widget.Label
	loading       *widget.ProgressBarInfinite
	scroll        *container.Scroll

	mu          sync.Mutex
	folder      string
	videos      []model.VideoFile
	cards       []*VideoCard
	taskCards   map[string]*VideoCard
	mode        ViewMode
	loadGen     uint64
	loadCancel  context.CancelFunc
	folderTimer *time.Timer
	searchTimer *time.Timer
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, downloads download.TaskManager, newLister ListerFactory, open thumbnail.Opener) *RootUI {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		settings:     settings,
		localization: localization,
		downloads:    downloads,
		newLister:    newLister,
		open:         open,
		taskCards:    make(map[string]*VideoCard),
	}

	window.SetTitle(localization.GetText(KeyAppTitle))

	ui.downloads.SetUpdateCallback(ui.onTaskUpdate)

	ui.setupUI()
	window.SetOnClosed(ui.releaseCards)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.titleLabel = widget.NewLabel("")
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.subtitleLabel = widget.NewLabel("")
	ui.subtitleLabel.Importance = widget.LowImportance

	ui.passwordEntry = widget.NewPasswordEntry()
	ui.passwordEntry.OnChanged = ui.onPasswordChanged
	ui.passwordEntry.OnSubmitted = func(text string) { ui.loadFolder(text) }

	ui.searchEntry = widget.NewEntry()
	ui.searchEntry.OnChanged = ui.onSearchChanged
	ui.searchEntry.Disable()

	ui.gridBtn = widget.NewButton(IconGrid, func() { ui.setMode(ViewGrid) })
	ui.listBtn = widget.NewButton(IconList, func() { ui.setMode(ViewList) })
	ui.gridBtn.Disable()
	ui.listBtn.Disable()

	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	ui.statusLabel = widget.NewLabel("")
	ui.loading = widget.NewProgressBarInfinite()
	ui.loading.Stop()
	ui.loading.Hide()

	controls := container.NewBorder(nil, nil,
		container.NewHBox(ui.settingsBtn),
		container.NewHBox(ui.gridBtn, ui.listBtn),
		container.NewGridWithColumns(2, ui.passwordEntry, ui.searchEntry),
	)
	header := container.NewVBox(ui.titleLabel, ui.subtitleLabel, controls, ui.loading, ui.statusLabel)

	ui.scroll = container.NewVScroll(container.NewVBox())

	ui.window.SetContent(container.NewBorder(header, nil, nil, nil, ui.scroll))
	ui.refreshUITexts()
	ui.render()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
	ui.render()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	l := ui.localization
	ui.window.SetTitle(l.GetText(KeyAppTitle))
	ui.titleLabel.SetText(l.GetText(KeyAppTitle))
	ui.subtitleLabel.SetText(l.GetText(KeySubtitle))
	ui.passwordEntry.SetPlaceHolder(l.GetText(KeyEnterPassword))
	ui.searchEntry.SetPlaceHolder(l.GetText(KeySearch))
	ui.gridBtn.SetText(IconGrid + " " + l.GetText(KeyGrid))
	ui.listBtn.SetText(IconList + " " + l.GetText(KeyList))
}

func (ui *RootUI) onPasswordChanged(text string) {
	ui.mu.Lock()
	if ui.folderTimer != nil {
		ui.folderTimer.Stop()
	}
	ui.folderTimer = time.AfterFunc(FolderDebounce, func() {
		fyne.Do(func() { ui.loadFolder(text) })
	})
	ui.mu.Unlock()
}

func (ui *RootUI) onSearchChanged(string) {
	ui.mu.Lock()
	if ui.searchTimer != nil {
		ui.searchTimer.Stop()
	}
	ui.searchTimer = time.AfterFunc(SearchDebounce, func() {
		fyne.Do(ui.render)
	})
	ui.mu.Unlock()
}

// loadFolder lists folder in the background; a newer call supersedes an older one
func (ui *RootUI) loadFolder(folder string) {
	ui.mu.Lock()
	if folder == ui.folder && len(ui.cards) > 0 {
		ui.mu.Unlock()
		return
	}
	ui.folder = folder
	ui.loadGen++
	gen := ui.loadGen
	if ui.loadCancel != nil {
		ui.loadCancel()
		ui.loadCancel = nil
	}
	ui.mu.Unlock()

	ui.setVideos(nil)

	if folder == "" {
		ui.setControlsEnabled(false)
		ui.render()
		return
	}
	ui.setControlsEnabled(true)

	bucket := ui.settings.GetBucket()
	if bucket == "" {
		ui.showStatus(ui.localization.GetText(KeyErrorPrefix) + ui.localization.GetText(KeyBucketNotSet))
		return
	}
	region := ui.settings.GetRegion()

	ctx, cancel := context.WithTimeout(context.Background(), FolderLoadTimeout)
	ui.mu.Lock()
	ui.loadCancel = cancel
	ui.mu.Unlock()

	ui.setLoading(true)
	go func() {
		defer cancel()

		var videos []model.VideoFile
		lister, err := ui.newLister(ctx, bucket, region)
		if err == nil {
			videos, err = lister.ListVideos(ctx, folder)
		}

		fyne.Do(func() {
			ui.mu.Lock()
			current := gen == ui.loadGen
			ui.mu.Unlock()
			if !current {
				return
			}

			ui.setLoading(false)
			if err != nil {
				log.Printf("Failed to list folder: %v", err)
				ui.showStatus(ui.localization.GetText(KeyErrorPrefix) + listErrorText(err))
				return
			}
			log.Printf("Loaded %d videos", len(videos))
			ui.setVideos(videos)
			ui.render()
		})
	}()
}

// listErrorText keeps listing failures short for the status line
func listErrorText(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	msg := err.Error()
	if i := strings.Index(msg, ":"); i > 0 {
		return msg[:i]
	}
	return msg
}

// setVideos replaces the cards; old cards stop their samplers
func (ui *RootUI) setVideos(videos []model.VideoFile) {
	ui.releaseCards()

	timeout := time.Duration(ui.settings.GetThumbnailTimeout()) * time.Second

	ui.mu.Lock()
	ui.videos = videos
	ui.cards = make([]*VideoCard, 0, len(videos))
	mode := ui.mode
	ui.mu.Unlock()

	for _, v := range videos {
		card := NewVideoCard(v, ui.open, ui.localization, mode)
		card.SetCallbacks(ui.onDownload, ui.onStop)
		card.StartPreviews(timeout)

		ui.mu.Lock()
		ui.cards = append(ui.cards, card)
		ui.mu.Unlock()
	}
}

func (ui *RootUI) releaseCards() {
	ui.mu.Lock()
	cards := ui.cards
	ui.cards = nil
	for id, card := range ui.taskCards {
		for _, old := range cards {
			if card == old {
				delete(ui.taskCards, id)
			}
		}
	}
	ui.mu.Unlock()

	for _, card := range cards {
		card.Release()
	}
}

// render lays out the cards matching the search term
func (ui *RootUI) render() {
	ui.mu.Lock()
	folder := ui.folder
	term := ui.searchEntry.Text
	mode := ui.mode
	var visible []fyne.CanvasObject
	for _, card := range ui.cards {
		if card.Video().Matches(term) {
			visible = append(visible, card)
		}
	}
	ui.mu.Unlock()

	l := ui.localization
	switch {
	case folder == "":
		ui.showStatus(l.GetText(KeyPasswordPrompt))
	case len(visible) == 0:
		ui.showStatus(l.GetText(KeyNoVideos) + MiddleDotSeparator + l.GetText(KeyNoVideosHint))
	default:
		ui.showStatus(fmt.Sprintf(l.GetText(KeyVideoCount), len(visible)))
	}

	var content *fyne.Container
	if mode == ViewList {
		content = container.NewVBox(visible...)
	} else {
		content = container.NewGridWrap(fyne.NewSize(GridCardWidth, GridCardHeight), visible...)
	}
	ui.scroll.Content = content
	ui.scroll.Refresh()
}

func (ui *RootUI) setMode(mode ViewMode) {
	ui.mu.Lock()
	ui.mode = mode
	cards := append([]*VideoCard(nil), ui.cards...)
	ui.mu.Unlock()

	for _, card := range cards {
		card.SetMode(mode)
	}
	ui.render()
}

func (ui *RootUI) setControlsEnabled(enabled bool) {
	for _, w := range []fyne.Disableable{ui.searchEntry, ui.gridBtn, ui.listBtn} {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

func (ui *RootUI) setLoading(loading bool) {
	if loading {
		ui.showStatus(ui.localization.GetText(KeyLoading))
		ui.loading.Show()
		ui.loading.Start()
		return
	}
	ui.loading.Stop()
	ui.loading.Hide()
}

func (ui *RootUI) showStatus(text string) {
	ui.statusLabel.SetText(text)
}

// onDownload queues a download for the card's item
func (ui *RootUI) onDownload(video model.VideoFile) {
	task, err := ui.downloads.AddTask(video.URL, video.Name)
	if err != nil {
		if errors.Is(err, download.ErrTaskExists) {
			dialog.ShowInformation(ui.localization.GetText(KeyDownload), ui.localization.GetText(KeyAlreadyInQueue), ui.window)
			return
		}
		dialog.ShowError(err, ui.window)
		return
	}

	log.Printf("Task added: ID=%s, Name=%s", task.ID, video.Name)

	ui.mu.Lock()
	var card *VideoCard
	for _, c := range ui.cards {
		if c.Video().URL == video.URL {
			card = c
			break
		}
	}
	if card != nil {
		ui.taskCards[task.ID] = card
	}
	ui.mu.Unlock()

	if card != nil {
		card.BindTask(task.ID)
		card.UpdateTask(task)
	}
}

func (ui *RootUI) onStop(taskID string) {
	if err := ui.downloads.StopTask(taskID); err != nil {
		log.Printf("Error stopping task %s: %v", taskID, err)
	}
}

// onTaskUpdate is called by the download manager from any goroutine
func (ui *RootUI) onTaskUpdate(task *model.DownloadTask) {
	fyne.Do(func() {
		ui.mu.Lock()
		card, ok := ui.taskCards[task.ID]
		if ok && task.Status.IsFinished() {
			delete(ui.taskCards, task.ID)
		}
		ui.mu.Unlock()

		if ok {
			card.UpdateTask(task)
		}

		switch task.Status {
		case model.TaskStatusError:
			dialog.ShowError(fmt.Errorf("%s: %s", ui.localization.GetText(KeyDownloadFailed), task.GetDisplayTitle()), ui.window)
		case model.TaskStatusCompleted:
			ui.onTaskCompleted(task)
		}
	})
}

// onTaskCompleted reveals the saved file or offers to open it
func (ui *RootUI) onTaskCompleted(task *model.DownloadTask) {
	if task.OutputPath == "" {
		return
	}
	if ui.settings.GetAutoRevealOnSave() {
		if err := platform.OpenFileInManager(task.OutputPath); err != nil {
			log.Printf("Failed to reveal %s: %v", task.OutputPath, err)
		}
		return
	}

	l := ui.localization
	dialog.ShowConfirm(l.GetText(KeyDownloadCompleted), task.GetDisplayTitle()+"\n"+l.GetText(KeyOpenFile), func(open bool) {
		if !open {
			return
		}
		if err := platform.OpenFileWithDefaultApp(task.OutputPath); err != nil {
			log.Printf("Failed to open %s: %v", task.OutputPath, err)
		}
	}, ui.window)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	bucket, region := ui.settings.GetBucket(), ui.settings.GetRegion()
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.applySettings()
		if ui.settings.GetBucket() != bucket || ui.settings.GetRegion() != region {
			ui.reload()
		}
	})
}

// applySettings pushes persisted settings into running services
func (ui *RootUI) applySettings() {
	dir := ui.settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Printf("Failed to ensure downloads dir: %v", err)
	}
	ui.downloads.SetDownloadDirectory(dir)
	ui.downloads.SetMaxParallelDownloads(ui.settings.GetMaxParallelDownloads())

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *RootUI) reload() {
	ui.mu.Lock()
	folder := ui.folder
	ui.folder = ""
	ui.mu.Unlock()
	ui.loadFolder(folder)
}
