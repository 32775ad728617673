package schedule

import (
	"fmt"
	"time"

	"animeschedule/internal/models"
)

// PendingText is shown when an entry has no usable estimate.
const PendingText = "Jadwal menyusul"

// LiveWindowMinutes is the half-width of the coarse broadcast window.
const LiveWindowMinutes = 30

// Display is the render-ready time information for one entry.
type Display struct {
	TimeText string `json:"timeText"`
	IsLive   bool   `json:"isLive"`
	IsUpdate bool   `json:"isUpdate"`
}

// ResolveDisplay computes the time text and live flag for entry as seen at
// now. It is total over every estimation string.
func ResolveDisplay(entry models.ScheduleEntry, now time.Time) Display {
	return FormatEstimate(ParseEstimation(entry.Estimation), now)
}

func FormatEstimate(est Estimate, now time.Time) Display {
	switch est.Kind {
	case EstimateUpdate:
		return Display{TimeText: UpdateMarker, IsUpdate: true}
	case EstimateParsed:
		if est.Days == 0 {
			return Display{
				TimeText: fmt.Sprintf("%02d:%02d", est.Hours, est.Minutes),
				IsLive:   isLive(est, now),
			}
		}
		return Display{
			TimeText: fmt.Sprintf("H-%d %d:%02d", est.Days, est.Hours, est.Minutes),
		}
	default:
		return Display{TimeText: PendingText}
	}
}

// isLive compares against now's wall clock only; an entry at 23:50 checked
// at 00:05 is not detected.
func isLive(est Estimate, now time.Time) bool {
	if now.Hour() != est.Hours {
		return false
	}
	diff := now.Minute() - est.Minutes
	if diff < 0 {
		diff = -diff
	}
	return diff <= LiveWindowMinutes
}
