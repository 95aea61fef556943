package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconDownload = "⬇"
	IconStop     = "■"
	IconFolder   = "📁"
	IconGrid     = "▦"
	IconList     = "☰"
	IconVideo    = "🎞"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
)

// Layout sizing
const (
	ThumbnailWidth  float32 = 160
	ThumbnailHeight float32 = 90

	GridCardWidth  float32 = 220
	GridCardHeight float32 = 250

	WindowWidth  float32 = 960
	WindowHeight float32 = 680

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 420
)

// Behavior
const (
	// HoverCycleInterval is how long each thumbnail stays visible while hovered
	HoverCycleInterval = 800 * time.Millisecond
	// FolderLoadTimeout bounds one catalog listing
	FolderLoadTimeout = 30 * time.Second
	// SearchDebounce delays filtering while the user types
	SearchDebounce = 150 * time.Millisecond
	// FolderDebounce delays loading while the password is being typed
	FolderDebounce = 400 * time.Millisecond
)
