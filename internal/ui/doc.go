package ui

// Package ui contains the Fyne-based desktop user interface. It lists a
// password-protected folder of the library as video cards with hover previews
// and wires each card's download button to the download manager. All UI
// strings are localized via Localization.
