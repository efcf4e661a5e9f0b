package cli

import (
	"fmt"
	"time"

	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

type TodayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *TodayCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)

	filter := snapshot.Prefs.IdentityFilter
	habits := query.ActiveHabits(snapshot.Habits, date, filter)
	percent := query.DayCompletionPercent(snapshot, date, filter)

	fmt.Printf("%s: %d active habits, %.0f%% complete\n", day, len(habits), percent*100)
	for _, h := range habits {
		status := query.StatusOn(snapshot, h.ID, day)
		weekly := query.WeeklyProgress(snapshot.Completed, h.ID, date)
		line := fmt.Sprintf("%s %s (week %d/%d)", statusGlyph(status), h.Name, weekly, h.WeeklyGoal)
		if note := query.NoteOn(snapshot, h.ID, day); note != "" {
			line += fmt.Sprintf("  (%s)", note)
		}
		fmt.Println(line)
	}
	return nil
}

type StreakCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *StreakCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}

	today := timeutil.DayKey(time.Now())
	streak := query.Streak(snapshot.Completed, habit.ID, today)
	fmt.Printf("%s: %d day streak\n", habit.Name, streak)
	return nil
}

type WeekCmd struct {
	Date string `help:"Any date inside the week (default: today)." default:""`
}

func (c *WeekCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)
	weekStart := timeutil.WeekStart(date)

	fmt.Printf("Week of %s:\n", timeutil.DayKey(weekStart))
	for _, h := range snapshot.Habits {
		progress := query.WeeklyProgress(snapshot.Completed, h.ID, date)
		met := " "
		if progress >= h.WeeklyGoal {
			met = "✓"
		}
		fmt.Printf("%s %-24s %d/%d\n", met, h.Name, progress, h.WeeklyGoal)
	}
	return nil
}

type CalCmd struct {
	Date string `help:"Any date inside the month (default: today)." default:""`
}

func (c *CalCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)

	cells := query.MonthDensity(snapshot, date, snapshot.Prefs.IdentityFilter)
	fmt.Printf("%s\n", date.Format("January 2006"))
	fmt.Println("Mon Tue Wed Thu Fri Sat Sun")
	for week := 0; week < 6; week++ {
		for d := 0; d < 7; d++ {
			cell := cells[week*7+d]
			if cell.Day.IsZero() {
				fmt.Print("    ")
				continue
			}
			fmt.Printf("%2d%s ", cell.Day.Day(), densityGlyph(cell.Percent))
		}
		fmt.Println()
	}
	return nil
}

func densityGlyph(percent float64) string {
	switch {
	case percent >= 1:
		return "●"
	case percent >= 0.5:
		return "◐"
	case percent > 0:
		return "○"
	default:
		return " "
	}
}
