package cli

import (
	"fmt"
	"strings"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

type ScheduleCmd struct {
	Set   ScheduleSetCmd   `cmd:"" help:"Schedule a habit on the day plan."`
	Clear ScheduleClearCmd `cmd:"" help:"Remove a habit's schedule."`
	Day   ScheduleDayCmd   `cmd:"" help:"Show the day-plan timeline."`
}

type ScheduleSetCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Time     string `arg:"" help:"Time of day (HH:MM); snapped to 15 minutes."`
	Duration int    `help:"Duration in minutes." default:"30"`
	Repeat   string `help:"Recurrence: once, daily, or custom." default:"daily"`
	Days     string `help:"Weekdays for custom recurrence, comma-separated." default:""`
}

func (c *ScheduleSetCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}

	days, err := ParseDaysMask(c.Days)
	if err != nil {
		return err
	}
	sched := models.HabitSchedule{
		Time:          query.SnapTime(c.Time),
		DurationMin:   c.Duration,
		Recurring:     constants.RecurrenceType(strings.ToLower(c.Repeat)),
		RecurringDays: days,
	}
	if result := ctx.Validator.ValidateSchedule(sched); result.HasConflicts() {
		return FormatConflicts(result)
	}

	if _, err := ctx.Dispatch(snapshot, engine.SetSchedule{HabitID: habit.ID, Schedule: sched}); err != nil {
		return err
	}
	fmt.Printf("Scheduled %s at %s (%s)\n", habit.Name, sched.Time, sched.Recurring)
	return nil
}

type ScheduleClearCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *ScheduleClearCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}

	if _, err := ctx.Dispatch(snapshot, engine.ClearSchedule{HabitID: habit.ID}); err != nil {
		return err
	}
	fmt.Printf("Cleared schedule for %s\n", habit.Name)
	return nil
}

type ScheduleDayCmd struct {
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ScheduleDayCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)

	reminders := query.DueSchedules(snapshot, date)
	if len(reminders) == 0 {
		fmt.Printf("Nothing scheduled on %s.\n", day)
		return nil
	}

	fmt.Printf("Day plan for %s:\n", day)
	for _, r := range reminders {
		pos := query.TimelinePosition(r.Time, constants.TimelineStartHour, constants.TimelineEndHour)
		fmt.Printf("  %s  %-24s %5.1f%%\n", r.Time, r.HabitName, pos)
	}
	return nil
}
