package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/models"
	"github.com/sgreene/habitat/internal/query"
	"github.com/sgreene/habitat/internal/timeutil"
)

type HabitCmd struct {
	Add     HabitAddCmd     `cmd:"" help:"Add a new habit."`
	List    HabitListCmd    `cmd:"" help:"List habits."`
	Edit    HabitEditCmd    `cmd:"" help:"Edit an existing habit."`
	Delete  HabitDeleteCmd  `cmd:"" help:"Delete a habit and all its history."`
	Reorder HabitReorderCmd `cmd:"" help:"Reorder habits by listing their names."`
}

type HabitAddCmd struct {
	Name       string `arg:"" optional:"" help:"Habit name (omit for interactive form)."`
	Goal       int    `help:"Weekly goal (1-7)." default:"7"`
	Identity   string `help:"Identity name or id." default:"general"`
	Days       string `help:"Active weekdays, comma-separated (default: every day)." default:""`
	Steps      string `help:"Routine steps, comma-separated; makes the habit a routine." default:""`
	NoAutoSave bool   `hidden:"" help:"Skip automatic backup."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	if c.Name == "" {
		if err := c.promptForm(); err != nil {
			return err
		}
	}

	if _, err := FindHabitByName(snapshot, c.Name); err == nil {
		return fmt.Errorf("habit with name %q already exists", c.Name)
	}

	identity, err := FindIdentityByName(snapshot, c.Identity)
	if err != nil {
		return err
	}

	days, err := ParseDaysMask(c.Days)
	if err != nil {
		return err
	}

	habit := models.Habit{
		Name:       c.Name,
		WeeklyGoal: c.Goal,
		IdentityID: identity.ID,
		CreatedAt:  time.Now(),
		Days:       days,
	}
	if steps := splitSteps(c.Steps); len(steps) > 0 {
		habit.IsRoutine = true
		for i, name := range steps {
			habit.Steps = append(habit.Steps, models.RoutineStep{Name: name, Order: i})
		}
	}

	if result := ctx.Validator.ValidateHabit(habit, snapshot.Identities); result.HasConflicts() {
		return FormatConflicts(result)
	}

	if !c.NoAutoSave {
		ctx.PerformAutomaticBackup()
	}
	if _, err := ctx.Dispatch(snapshot, engine.AddHabit{Habit: habit}); err != nil {
		return err
	}

	fmt.Printf("Added habit: %s\n", c.Name)
	return nil
}

// promptForm collects habit fields interactively when no name was given.
func (c *HabitAddCmd) promptForm() error {
	goal := fmt.Sprintf("%d", c.Goal)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit name").
				Value(&c.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Weekly goal").
				Options(
					huh.NewOption("Every day (7)", "7"),
					huh.NewOption("6 days", "6"),
					huh.NewOption("5 days", "5"),
					huh.NewOption("4 days", "4"),
					huh.NewOption("3 days", "3"),
					huh.NewOption("2 days", "2"),
					huh.NewOption("1 day", "1"),
				).
				Value(&goal),
			huh.NewInput().
				Title("Routine steps (comma-separated, empty for a simple habit)").
				Value(&c.Steps),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	fmt.Sscanf(goal, "%d", &c.Goal)
	return nil
}

func splitSteps(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

type HabitListCmd struct {
	Identity string `help:"Filter by identity name." default:""`
	Date     string `help:"Show activity for this date (default: today)." default:""`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	filter := constants.AllIdentities
	if c.Identity != "" {
		identity, err := FindIdentityByName(snapshot, c.Identity)
		if err != nil {
			return err
		}
		filter = identity.ID
	}

	day, err := ResolveDate(c.Date)
	if err != nil {
		return err
	}
	date, _ := timeutil.ParseDayKey(day)

	habits := query.ActiveHabits(snapshot.Habits, date, filter)
	if len(habits) == 0 {
		fmt.Println("No active habits.")
		return nil
	}

	for _, h := range habits {
		status := query.StatusOn(snapshot, h.ID, day)
		streak := query.Streak(snapshot.Completed, h.ID, day)
		marker := statusGlyph(status)
		routine := ""
		if h.IsRoutine {
			done := len(query.StepsDoneOn(snapshot, h.ID, day))
			routine = fmt.Sprintf(" [%d/%d steps]", done, len(h.Steps))
		}
		fmt.Printf("%s %s%s (goal %d/wk, streak %d, %s)\n",
			marker, h.Name, routine, h.WeeklyGoal, streak, FormatDaysMask(h.Days))
	}
	return nil
}

func statusGlyph(status constants.DayStatus) string {
	switch status {
	case constants.StatusDone:
		return "✓"
	case constants.StatusSkipped:
		return "~"
	case constants.StatusFailed:
		return "✗"
	default:
		return "·"
	}
}

type HabitEditCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Rename   string `help:"New name." default:""`
	Goal     int    `help:"Weekly goal (1-7)." default:"0"`
	Identity string `help:"Identity name or id." default:""`
	Days     string `help:"Active weekdays, comma-separated; 'all' clears the mask." default:""`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}

	if c.Rename != "" {
		habit.Name = c.Rename
	}
	if c.Goal != 0 {
		habit.WeeklyGoal = c.Goal
	}
	if c.Identity != "" {
		identity, err := FindIdentityByName(snapshot, c.Identity)
		if err != nil {
			return err
		}
		habit.IdentityID = identity.ID
	}
	if c.Days != "" {
		if strings.EqualFold(c.Days, "all") {
			habit.Days = nil
		} else {
			days, err := ParseDaysMask(c.Days)
			if err != nil {
				return err
			}
			habit.Days = days
		}
	}

	if result := ctx.Validator.ValidateHabit(habit, snapshot.Identities); result.HasConflicts() {
		return FormatConflicts(result)
	}

	if _, err := ctx.Dispatch(snapshot, engine.UpdateHabit{Habit: habit}); err != nil {
		return err
	}
	fmt.Printf("Updated habit: %s\n", habit.Name)
	return nil
}

type HabitDeleteCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	habit, err := FindHabitByName(snapshot, c.Name)
	if err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()
	if _, err := ctx.Dispatch(snapshot, engine.DeleteHabit{HabitID: habit.ID}); err != nil {
		return err
	}
	fmt.Printf("Deleted habit: %s (history removed)\n", habit.Name)
	return nil
}

type HabitReorderCmd struct {
	Names []string `arg:"" help:"Habit names in the desired order."`
}

func (c *HabitReorderCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(c.Names))
	for _, name := range c.Names {
		habit, err := FindHabitByName(snapshot, name)
		if err != nil {
			return err
		}
		ids = append(ids, habit.ID)
	}

	if _, err := ctx.Dispatch(snapshot, engine.ReorderHabits{HabitIDs: ids}); err != nil {
		return err
	}
	fmt.Println("Reordered habits.")
	return nil
}
