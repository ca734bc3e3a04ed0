package timeline

import (
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

// ExpandHabit turns a habit's schedule plus the day's completion entry into
// a synthetic habit_block occurrence, or nil when the habit does not recur
// on the date's weekday. Pure function, no I/O.
//
// The occurrence id is the habit id itself: identity is stable across days
// by design. The end time wraps its hour modulo 24 without advancing the
// date, so a 23:30 habit ends at 00:30 on the same date (end before start).
func ExpandHabit(habit models.Habit, entry *models.HabitEntry, date string) *models.TimelineItem {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil
	}
	if !habit.OccursOn(day) {
		return nil
	}

	start, err := utils.CombineDateAndTime(date, habit.EffectiveTime())
	if err != nil {
		return nil
	}
	end := time.Date(day.Year(), day.Month(), day.Day(),
		(start.Hour()+1)%24, start.Minute(), 0, 0, time.UTC)

	status := ""
	if entry != nil {
		status = string(entry.Status)
	}

	return &models.TimelineItem{
		ID:       habit.ID,
		OwnerID:  habit.OwnerID,
		Kind:     constants.KindHabitBlock,
		StartAt:  &start,
		EndAt:    &end,
		Title:    habit.Title,
		Status:   status,
		LifeArea: habit.Category,
	}
}

// habitOccurrences expands every active habit against the date.
func (e *Engine) habitOccurrences(ownerID, date string) ([]models.TimelineItem, error) {
	habits, err := e.store.ActiveHabits(ownerID)
	if err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return nil, nil
	}

	entries, err := e.store.HabitEntriesForDay(ownerID, date)
	if err != nil {
		return nil, err
	}

	var occurrences []models.TimelineItem
	for _, habit := range habits {
		var entry *models.HabitEntry
		if en, ok := entries[habit.ID]; ok {
			entry = &en
		}
		if occ := ExpandHabit(habit, entry, date); occ != nil {
			occurrences = append(occurrences, *occ)
		}
	}

	return occurrences, nil
}
