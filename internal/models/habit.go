package models

import (
	"fmt"
	"time"

	"github.com/amarling/daybook/internal/constants"
)

// HabitSchedule describes which weekdays a habit recurs on and at what time.
type HabitSchedule struct {
	// Days holds weekday numbers 0 (Sunday) through 6 (Saturday). Empty
	// means every day.
	Days []int `json:"days,omitempty"`
	// Time is the HH:MM slot the habit occupies; empty means the default.
	Time string `json:"time,omitempty"`
}

// Habit is a recurring practice with a lifecycle independent of the timeline
// item tables.
type Habit struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Title     string        `json:"title"`
	Schedule  HabitSchedule `json:"schedule"`
	Active    bool          `json:"active"`
	Category  string        `json:"category,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

// HabitEntry records the outcome of one habit on one day. At most one entry
// exists per (habit, day).
type HabitEntry struct {
	ID        string                `json:"id"`
	HabitID   string                `json:"habit_id"`
	OwnerID   string                `json:"owner_id"`
	Day       string                `json:"day"` // YYYY-MM-DD
	Status    constants.EntryStatus `json:"status"`
	Note      string                `json:"note,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

// EffectiveDays returns the habit's scheduled weekdays, defaulting to all
// seven when the schedule leaves them unset.
func (h *Habit) EffectiveDays() []int {
	if len(h.Schedule.Days) == 0 {
		return []int{0, 1, 2, 3, 4, 5, 6}
	}
	return h.Schedule.Days
}

// EffectiveTime returns the habit's HH:MM slot, defaulting when unset.
func (h *Habit) EffectiveTime() string {
	if h.Schedule.Time == "" {
		return constants.DefaultHabitTime
	}
	return h.Schedule.Time
}

// OccursOn reports whether the habit recurs on the given date's weekday.
func (h *Habit) OccursOn(date time.Time) bool {
	wd := int(date.Weekday())
	for _, d := range h.EffectiveDays() {
		if d == wd {
			return true
		}
	}
	return false
}

func (h *Habit) Validate() error {
	if h.OwnerID == "" {
		return fmt.Errorf("habit owner cannot be empty")
	}
	if h.Title == "" {
		return fmt.Errorf("habit title cannot be empty")
	}
	for _, d := range h.Schedule.Days {
		if d < 0 || d > 6 {
			return fmt.Errorf("invalid weekday %d: must be 0-6", d)
		}
	}
	if h.Schedule.Time != "" {
		if _, err := time.Parse(constants.TimeFormat, h.Schedule.Time); err != nil {
			return fmt.Errorf("invalid schedule time (expected HH:MM): %w", err)
		}
	}
	return nil
}

func (e *HabitEntry) Validate() error {
	if e.HabitID == "" {
		return fmt.Errorf("entry habit id cannot be empty")
	}
	if _, err := time.Parse(constants.DateFormat, e.Day); err != nil {
		return fmt.Errorf("invalid entry day (expected YYYY-MM-DD): %w", err)
	}
	if !constants.ValidEntryStatus(e.Status) {
		return fmt.Errorf("invalid entry status: %s", e.Status)
	}
	return nil
}
