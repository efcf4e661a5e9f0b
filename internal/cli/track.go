package cli

import (
	"fmt"
	"strings"

	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/query"
)

type ToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *ToggleCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	next, err := ctx.Dispatch(snapshot, engine.ToggleHabit{HabitID: habit.ID, Date: day})
	if err != nil {
		return err
	}
	fmt.Printf("%s on %s: %s\n", habit.Name, day, query.StatusOn(next, habit.ID, day))
	return nil
}

type SkipCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *SkipCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Dispatch(snapshot, engine.SkipHabit{HabitID: habit.ID, Date: day}); err != nil {
		return err
	}
	fmt.Printf("Skipped %s on %s\n", habit.Name, day)
	return nil
}

type FailCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *FailCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Dispatch(snapshot, engine.FailHabit{HabitID: habit.ID, Date: day}); err != nil {
		return err
	}
	fmt.Printf("Failed %s on %s\n", habit.Name, day)
	return nil
}

type StepCmd struct {
	Habit string `arg:"" help:"Routine habit name."`
	Step  string `arg:"" help:"Step name."`
	Date  string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *StepCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Habit)
	if err != nil {
		return err
	}
	if !habit.IsRoutine {
		return fmt.Errorf("habit %q is not a routine", habit.Name)
	}

	stepID := ""
	for _, step := range habit.Steps {
		if strings.EqualFold(step.Name, c.Step) {
			stepID = step.ID
			break
		}
	}
	if stepID == "" {
		return fmt.Errorf("step %q not found in routine %q", c.Step, habit.Name)
	}

	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	next, err := ctx.Dispatch(snapshot, engine.ToggleRoutineStep{HabitID: habit.ID, StepID: stepID, Date: day})
	if err != nil {
		return err
	}

	done := len(query.StepsDoneOn(next, habit.ID, day))
	fmt.Printf("%s: %d/%d steps done on %s (%s)\n",
		habit.Name, done, len(habit.Steps), day, query.StatusOn(next, habit.ID, day))
	return nil
}

type NoteCmd struct {
	Set    NoteSetCmd    `cmd:"" help:"Set a note for a habit and day."`
	Delete NoteDeleteCmd `cmd:"" help:"Delete a note."`
	Show   NoteShowCmd   `cmd:"" help:"Show a note."`
}

type NoteSetCmd struct {
	Name string `arg:"" help:"Habit name."`
	Text string `arg:"" help:"Note text (empty deletes)."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteSetCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Dispatch(snapshot, engine.SetNote{HabitID: habit.ID, Date: day, Note: c.Text}); err != nil {
		return err
	}
	if c.Text == "" {
		fmt.Printf("Cleared note for %s on %s\n", habit.Name, day)
	} else {
		fmt.Printf("Noted %s on %s\n", habit.Name, day)
	}
	return nil
}

type NoteDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	if _, err := ctx.Dispatch(snapshot, engine.DeleteNote{HabitID: habit.ID, Date: day}); err != nil {
		return err
	}
	fmt.Printf("Cleared note for %s on %s\n", habit.Name, day)
	return nil
}

type NoteShowCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *NoteShowCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}
	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}

	note := query.NoteOn(snapshot, habit.ID, day)
	if note == "" {
		fmt.Printf("No note for %s on %s\n", habit.Name, day)
		return nil
	}
	fmt.Println(note)
	return nil
}
