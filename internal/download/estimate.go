package download

import (
	"math"
	"time"

	"github.com/ytget/video-library/internal/model"
)

// Percent returns round(received/total*100) clamped to [0,100],
// or model.Unknown when the total size is unknown.
func Percent(received, total int64) int {
	if total <= 0 {
		return model.Unknown
	}
	p := int(math.Round(float64(received) / float64(total) * 100))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// EstimateRemaining extrapolates the remaining whole seconds from elapsed time
// and the current percent. Returns model.Unknown while percent is not positive.
func EstimateRemaining(elapsed time.Duration, percent int) int {
	if percent <= 0 {
		return model.Unknown
	}
	spent := elapsed.Seconds()
	estimatedTotal := spent / (float64(percent) / 100)
	remaining := math.Max(0, estimatedTotal-spent)
	return int(math.Round(remaining))
}
