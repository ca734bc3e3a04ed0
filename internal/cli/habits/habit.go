package habits

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amarling/daybook/internal/cli"
	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

type HabitCmd struct {
	Add HabitAddCmd `cmd:"" help:"Create a habit."`
	Log HabitLogCmd `cmd:"" help:"Record a habit outcome for a day."`
}

type HabitAddCmd struct {
	Title    string `arg:"" help:"Habit title."`
	Days     string `short:"w" help:"Comma-separated weekdays (default: every day)."`
	Time     string `short:"t" help:"Scheduled time HH:MM." default:"09:00"`
	Category string `short:"c" help:"Category / life area."`
}

func (c *HabitAddCmd) Validate() error {
	if c.Time != "" && !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time format (expected HH:MM)")
	}
	if c.Days != "" {
		if _, err := cli.ParseWeekdays(c.Days); err != nil {
			return err
		}
	}
	return nil
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	var days []int
	if c.Days != "" {
		parsed, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		days = parsed
	}

	habit := models.Habit{
		ID:      uuid.NewString(),
		OwnerID: ctx.Owner,
		Title:   c.Title,
		Schedule: models.HabitSchedule{
			Days: days,
			Time: c.Time,
		},
		Active:    true,
		Category:  c.Category,
		CreatedAt: time.Now().UTC(),
	}
	if err := habit.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddHabit(habit); err != nil {
		return err
	}

	fmt.Printf("Added habit %q (%s)\n", habit.Title, habit.ID)
	return nil
}

type HabitLogCmd struct {
	Habit  string `arg:"" help:"Habit id."`
	Status string `arg:"" help:"Outcome (done|skipped|missed)."`
	Date   string `short:"d" help:"Day to log (YYYY-MM-DD, defaults to today)."`
	Note   string `short:"n" help:"Optional note."`
}

func (c *HabitLogCmd) Validate() error {
	if !constants.ValidEntryStatus(constants.EntryStatus(c.Status)) {
		return fmt.Errorf("invalid status %q: must be done, skipped or missed", c.Status)
	}
	if c.Date != "" && !utils.ValidateDateFormat(c.Date) {
		return fmt.Errorf("invalid date format (expected YYYY-MM-DD)")
	}
	return nil
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	day := c.Date
	if day == "" {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		day = today
	}

	habit, err := ctx.Store.GetHabit(c.Habit)
	if err != nil {
		return fmt.Errorf("habit not found: %w", err)
	}
	if habit.OwnerID != ctx.Owner {
		return fmt.Errorf("habit not found")
	}

	entry := models.HabitEntry{
		ID:      uuid.NewString(),
		HabitID: habit.ID,
		OwnerID: ctx.Owner,
		Day:     day,
		Status:  constants.EntryStatus(c.Status),
		Note:    c.Note,
	}
	if err := entry.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.UpsertHabitEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Logged %q as %s on %s\n", habit.Title, entry.Status, day)
	return nil
}
