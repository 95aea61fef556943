package model

import "fmt"

// Unknown marks a percent or ETA value that cannot be derived yet
const Unknown = -1

// Progress is one observable update of a download session.
// Percent and ETASec are Unknown when the server did not declare a size
// (or before the first non-zero percent for ETASec).
type Progress struct {
	Percent    int   // 0 to 100, Unknown if total is unknown
	ElapsedSec int   // whole seconds since session start
	ETASec     int   // remaining seconds, Unknown until first non-zero percent
	Received   int64 // bytes received so far
	Total      int64 // declared size, 0 if unknown
	Active     bool  // false for the idle snapshot emitted after the session settles
}

// IdleProgress returns the snapshot of a session that is not running
func IdleProgress() Progress {
	return Progress{Percent: Unknown, ETASec: Unknown}
}

// HasPercent reports whether the percent value is meaningful
func (p Progress) HasPercent() bool {
	return p.Percent >= 0
}

// HasETA reports whether an ETA estimate is available
func (p Progress) HasETA() bool {
	return p.ETASec >= 0
}

// GetPercentString returns "42%" or "—" when unknown
func (p Progress) GetPercentString() string {
	if !p.HasPercent() {
		return "—"
	}
	return fmt.Sprintf("%d%%", p.Percent)
}

// GetETAString returns ETA formatted as hh:mm:ss, or "—" if unknown
func (p Progress) GetETAString() string {
	if !p.HasETA() {
		return "—"
	}
	return FormatClock(p.ETASec)
}

// GetElapsedString returns elapsed time formatted as hh:mm:ss or mm:ss
func (p Progress) GetElapsedString() string {
	return FormatClock(p.ElapsedSec)
}

// FormatClock renders seconds as mm:ss, or hh:mm:ss past one hour
func FormatClock(sec int) string {
	if sec < 0 {
		sec = 0
	}
	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
