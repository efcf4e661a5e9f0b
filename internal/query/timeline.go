package query

import (
	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/timeutil"
)

// TimelinePosition maps an HH:MM time to a 0-100 percent vertical
// offset within the display window [windowStartHour, windowEndHour].
// The time is snapped to the nearest 15-minute mark first, then clamped
// to the window edges. The projection is purely geometric; both manual
// and quick-scheduling entry points rely on the exact snap and clamp
// rules.
func TimelinePosition(timeStr string, windowStartHour, windowEndHour int) float64 {
	minutes, err := timeutil.ParseTimeOfDay(timeStr)
	if err != nil {
		return 0
	}
	snapped := snapToQuarterHour(minutes)

	windowStart := windowStartHour * 60
	windowEnd := windowEndHour * 60
	if windowEnd <= windowStart {
		return 0
	}
	if snapped < windowStart {
		snapped = windowStart
	}
	if snapped > windowEnd {
		snapped = windowEnd
	}
	return float64(snapped-windowStart) / float64(windowEnd-windowStart) * 100
}

// SnapTime snaps an HH:MM time to the nearest 15-minute mark, returning
// it in HH:MM form. Invalid input is returned unchanged.
func SnapTime(timeStr string) string {
	minutes, err := timeutil.ParseTimeOfDay(timeStr)
	if err != nil {
		return timeStr
	}
	snapped := snapToQuarterHour(minutes)
	if snapped >= 24*60 {
		snapped = 24*60 - constants.TimelineSnapMin
	}
	return timeutil.FormatTimeOfDay(snapped)
}

func snapToQuarterHour(minutes int) int {
	snap := constants.TimelineSnapMin
	return ((minutes + snap/2) / snap) * snap
}
