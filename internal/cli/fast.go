package cli

import (
	"fmt"
	"time"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

type FastCmd struct {
	Start  FastStartCmd  `cmd:"" help:"Start a fasting session."`
	Status FastStatusCmd `cmd:"" help:"Show fasting progress."`
	Edit   FastEditCmd   `cmd:"" help:"Edit the start time of an active fast."`
	End    FastEndCmd    `cmd:"" help:"End a fasting session."`
}

func findFastingHabit(ctx *Context, name string) (string, string, error) {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return "", "", err
	}
	habit, err := FindHabitByName(snapshot, name)
	if err != nil {
		return "", "", err
	}
	if !query.IsFastingHabit(habit) {
		return "", "", fmt.Errorf("habit %q is not a fasting habit (name must contain \"fast\")", habit.Name)
	}
	return habit.ID, habit.Name, nil
}

type FastStartCmd struct {
	Name     string `arg:"" help:"Fasting habit name."`
	Duration int    `help:"Fast length in hours." default:"16"`
	Start    string `help:"Start time (HH:MM, default: now)." default:""`
}

func (c *FastStartCmd) Run(ctx *Context) error {
	if result := ctx.Validator.ValidateFastDuration(c.Duration); result.HasConflicts() {
		return FormatConflicts(result)
	}

	habitID, habitName, err := findFastingHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	start := time.Now()
	if c.Start != "" {
		minutes, err := timeutil.ParseTimeOfDay(c.Start)
		if err != nil {
			return fmt.Errorf("invalid start time: %s (expected HH:MM)", c.Start)
		}
		midnight := timeutil.Midnight(start)
		start = midnight.Add(time.Duration(minutes) * time.Minute)
	}

	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	action := engine.StartFast{HabitID: habitID, StartTime: start, DurationHours: c.Duration}
	next, err := ctx.Dispatch(snapshot, action)
	if err != nil {
		return err
	}

	fast := next.Fasts[habitID]
	fmt.Printf("Started %dh fast for %s; ends %s\n",
		c.Duration, habitName, fast.TargetTime.Format("15:04 Mon Jan 2"))
	return nil
}

type FastStatusCmd struct {
	Name string `arg:"" help:"Fasting habit name."`
}

func (c *FastStatusCmd) Run(ctx *Context) error {
	habitID, habitName, err := findFastingHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	fast, ok := snapshot.Fasts[habitID]
	if !ok {
		fmt.Printf("No active fast for %s.\n", habitName)
		return nil
	}

	now := time.Now()
	if query.IsFastComplete(fast, now) {
		fmt.Printf("%s: fast complete! (%dh, ended %s)\n",
			habitName, fast.DurationHours, fast.TargetTime.Format("15:04"))
		return nil
	}

	remaining := query.RemainingTime(fast, now)
	fmt.Printf("%s: %.0f%% done, %s remaining (target %s)\n",
		habitName,
		query.FastProgressPercent(fast, now),
		remaining.Round(time.Minute),
		fast.TargetTime.Format("15:04"))
	return nil
}

type FastEditCmd struct {
	Name  string `arg:"" help:"Fasting habit name."`
	Start string `arg:"" help:"New start time (HH:MM)."`
}

func (c *FastEditCmd) Run(ctx *Context) error {
	habitID, habitName, err := findFastingHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	minutes, err := timeutil.ParseTimeOfDay(c.Start)
	if err != nil {
		return fmt.Errorf("invalid start time: %s (expected HH:MM)", c.Start)
	}
	start := timeutil.Midnight(time.Now()).Add(time.Duration(minutes) * time.Minute)

	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	if _, ok := snapshot.Fasts[habitID]; !ok {
		return fmt.Errorf("no active fast for %s", habitName)
	}

	next, err := ctx.Dispatch(snapshot, engine.UpdateFastStart{HabitID: habitID, StartTime: start})
	if err != nil {
		return err
	}
	fast := next.Fasts[habitID]
	fmt.Printf("Moved fast start to %s; ends %s\n",
		fast.StartTime.Format("15:04"), fast.TargetTime.Format("15:04 Mon Jan 2"))
	return nil
}

type FastEndCmd struct {
	Name string `arg:"" help:"Fasting habit name."`
	Date string `help:"Mark the habit done for this date (default: today)." default:""`
}

func (c *FastEndCmd) Run(ctx *Context) error {
	habitID, habitName, err := findFastingHabit(ctx, c.Name)
	if err != nil {
		return err
	}

	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	fast, ok := snapshot.Fasts[habitID]
	if !ok {
		return fmt.Errorf("no active fast for %s", habitName)
	}

	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	next, err := ctx.Dispatch(snapshot, engine.EndFast{HabitID: habitID})
	if err != nil {
		return err
	}

	// A completed fast counts as a completed habit for the day.
	if query.IsFastComplete(fast, time.Now()) {
		if query.StatusOn(next, habitID, day) == constants.StatusNone {
			if _, err := ctx.Dispatch(next, engine.ToggleHabit{HabitID: habitID, Date: day}); err != nil {
				return err
			}
		}
		fmt.Printf("Ended fast for %s; habit marked done for %s\n", habitName, day)
		return nil
	}
	fmt.Printf("Ended fast for %s early\n", habitName)
	return nil
}
