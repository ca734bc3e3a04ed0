package timeline

import (
	"testing"
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

func TestExpandHabit(t *testing.T) {
	base := models.Habit{
		ID:      "habit-1",
		OwnerID: owner,
		Title:   "Morning run",
		Active:  true,
	}

	tests := []struct {
		name      string
		days      []int
		time      string
		date      string
		wantNil   bool
		wantStart string // HH:MM
	}{
		{
			name:      "empty days defaults to every weekday",
			date:      "2024-05-03", // Friday
			wantStart: "09:00",
		},
		{
			name:      "weekday in schedule produces occurrence",
			days:      []int{1, 3, 5},
			time:      "07:00",
			date:      "2024-05-03", // Friday = 5
			wantStart: "07:00",
		},
		{
			name:    "weekday not in schedule produces nothing",
			days:    []int{1, 3, 5},
			date:    "2024-05-04", // Saturday = 6
			wantNil: true,
		},
		{
			name:      "sunday is weekday zero",
			days:      []int{0},
			date:      "2024-05-05", // Sunday
			wantStart: "09:00",
		},
		{
			name:      "explicit time is honored",
			days:      []int{5},
			time:      "18:45",
			date:      "2024-05-03",
			wantStart: "18:45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			habit := base
			habit.Schedule = models.HabitSchedule{Days: tt.days, Time: tt.time}

			occ := ExpandHabit(habit, nil, tt.date)
			if tt.wantNil {
				if occ != nil {
					t.Fatalf("ExpandHabit() = %+v, want nil", occ)
				}
				return
			}
			if occ == nil {
				t.Fatal("ExpandHabit() = nil, want occurrence")
			}

			if occ.ID != habit.ID {
				t.Errorf("occurrence id = %s, want habit id %s", occ.ID, habit.ID)
			}
			if occ.Kind != constants.KindHabitBlock {
				t.Errorf("occurrence kind = %s, want %s", occ.Kind, constants.KindHabitBlock)
			}
			if got := occ.StartAt.Format(constants.TimeFormat); got != tt.wantStart {
				t.Errorf("occurrence start = %s, want %s", got, tt.wantStart)
			}
			if got := occ.StartAt.Format(constants.DateFormat); got != tt.date {
				t.Errorf("occurrence start date = %s, want %s", got, tt.date)
			}
			if occ.Status != "" {
				t.Errorf("occurrence status = %q, want empty without entry", occ.Status)
			}
		})
	}
}

func TestExpandHabitCarriesEntryStatus(t *testing.T) {
	habit := models.Habit{ID: "habit-1", OwnerID: owner, Title: "Run", Active: true}
	entry := &models.HabitEntry{
		HabitID: "habit-1",
		OwnerID: owner,
		Day:     "2024-05-03",
		Status:  constants.EntryDone,
	}

	occ := ExpandHabit(habit, entry, "2024-05-03")
	if occ == nil {
		t.Fatal("ExpandHabit() = nil, want occurrence")
	}
	if occ.Status != string(constants.EntryDone) {
		t.Errorf("occurrence status = %q, want %q", occ.Status, constants.EntryDone)
	}
}

// A habit at 23:30 ends at 00:30 stamped on the same date: the end hour
// wraps modulo 24 without advancing the day, so end precedes start.
func TestExpandHabitEndHourWrapsOnSameDate(t *testing.T) {
	habit := models.Habit{
		ID:       "habit-1",
		OwnerID:  owner,
		Title:    "Wind down",
		Active:   true,
		Schedule: models.HabitSchedule{Time: "23:30"},
	}

	occ := ExpandHabit(habit, nil, "2024-05-03")
	if occ == nil {
		t.Fatal("ExpandHabit() = nil, want occurrence")
	}

	wantEnd := time.Date(2024, 5, 3, 0, 30, 0, 0, time.UTC)
	if !occ.EndAt.Equal(wantEnd) {
		t.Errorf("occurrence end = %v, want %v (same date, wrapped hour)", occ.EndAt, wantEnd)
	}
	if !occ.EndAt.Before(*occ.StartAt) {
		t.Error("occurrence end should precede start for a wrapped 23:30 habit")
	}
}

func TestExpandHabitStableIdentityAcrossDays(t *testing.T) {
	habit := models.Habit{ID: "habit-1", OwnerID: owner, Title: "Run", Active: true}

	friday := ExpandHabit(habit, nil, "2024-05-03")
	saturday := ExpandHabit(habit, nil, "2024-05-04")
	if friday == nil || saturday == nil {
		t.Fatal("expected occurrences on both days for an every-day habit")
	}
	if friday.ID != saturday.ID {
		t.Errorf("occurrence ids differ across days: %s vs %s", friday.ID, saturday.ID)
	}
}

// Occurrence count for a date equals the number of active habits whose
// schedule covers the date's weekday.
func TestHabitOccurrenceCount(t *testing.T) {
	store := newFakeStore()
	store.habits = []models.Habit{
		{ID: "h1", OwnerID: owner, Title: "Every day", Active: true},
		{ID: "h2", OwnerID: owner, Title: "Weekdays", Active: true, Schedule: models.HabitSchedule{Days: []int{1, 2, 3, 4, 5}}},
		{ID: "h3", OwnerID: owner, Title: "Sundays", Active: true, Schedule: models.HabitSchedule{Days: []int{0}}},
		{ID: "h4", OwnerID: owner, Title: "Inactive", Active: false},
	}

	view, err := NewEngine(store).DayView(owner, "2024-05-03") // Friday
	if err != nil {
		t.Fatalf("DayView() returned unexpected error: %v", err)
	}

	if len(view.Items) != 2 {
		t.Errorf("occurrence count = %d, want 2 (every-day + weekdays)", len(view.Items))
	}
}
