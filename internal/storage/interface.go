package storage

import (
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

// Provider is the full storage surface. The timeline engine depends only on
// the read slices it declares itself; the CLI uses the write surface too.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Timeline items. CreateItem writes the base row and its detail row as
	// one committed unit.
	CreateItem(models.TimelineItem, models.DetailRecord) error
	GetItem(id string) (models.TimelineItem, error)
	UpdateItem(models.TimelineItem) error
	UpdateDetail(models.DetailRecord) error
	// ItemsForOwnerInWindow returns every item owned by ownerID whose
	// start_at falls in [start, end), plus all of the owner's null-start
	// items regardless of window.
	ItemsForOwnerInWindow(ownerID string, start, end time.Time) ([]models.TimelineItem, error)
	// DetailsByIDs batch-fetches the detail rows of one kind by id set.
	DetailsByIDs(kind constants.ItemKind, ids []string) (map[string]models.DetailRecord, error)

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	UpdateHabit(models.Habit) error
	ActiveHabits(ownerID string) ([]models.Habit, error)
	// UpsertHabitEntry inserts or replaces the single entry for
	// (habit, day).
	UpsertHabitEntry(models.HabitEntry) error
	HabitEntriesForDay(ownerID, day string) (map[string]models.HabitEntry, error)

	// Sharing
	AddParticipant(models.EventParticipant) error
	UpdateRSVP(eventID, userID string, status constants.RSVPStatus) error
	// AcceptedSharedEvents returns events the user did not create but has
	// accepted an invitation to.
	AcceptedSharedEvents(ownerID string) ([]models.TimelineItem, error)

	// Utils
	GetConfigPath() string
}
