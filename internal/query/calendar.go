package query

import (
	"time"

	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/timeutil"
)

// CalendarCell is one cell of the 6x7 month grid. Padding cells outside
// the month have a zero Day and no density.
type CalendarCell struct {
	Day     time.Time
	Percent float64 // completion fraction for the day, 0-1
}

// MonthDensity returns the 42-cell Monday-first completion grid for the
// month containing the date, honoring the identity filter. It drives
// the calendar heat shading.
func MonthDensity(s models.Snapshot, date time.Time, identityFilter string) []CalendarCell {
	cells := timeutil.MonthCells(date)
	out := make([]CalendarCell, len(cells))
	for i, day := range cells {
		out[i].Day = day
		if day.IsZero() {
			continue
		}
		out[i].Percent = DayCompletionPercent(s, day, identityFilter)
	}
	return out
}
