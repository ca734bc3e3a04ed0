// Package timeline composes heterogeneous stored items, synthetic habit
// occurrences and shared events into ordered per-day schedules, and derives
// the weekly insights rollup over the same data.
package timeline

import (
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

// ItemStore is the read slice of storage the composer needs for base items
// and their kind-specific detail rows.
type ItemStore interface {
	// ItemsForOwnerInWindow returns every item owned by ownerID whose
	// start_at falls in [start, end), plus all null-start items.
	ItemsForOwnerInWindow(ownerID string, start, end time.Time) ([]models.TimelineItem, error)
	// DetailsByIDs batch-fetches detail rows of one kind by id set.
	DetailsByIDs(kind constants.ItemKind, ids []string) (map[string]models.DetailRecord, error)
}

// HabitStore supplies active habits and their per-day completion entries.
type HabitStore interface {
	ActiveHabits(ownerID string) ([]models.Habit, error)
	HabitEntriesForDay(ownerID, day string) (map[string]models.HabitEntry, error)
}

// ShareStore supplies events the user has accepted but does not own.
type ShareStore interface {
	AcceptedSharedEvents(ownerID string) ([]models.TimelineItem, error)
}

// Store is the full collaborator surface the engine composes over.
type Store interface {
	ItemStore
	HabitStore
	ShareStore
}

// Engine is a stateless composer over a Store. Every call is an independent
// request-scoped computation; the engine holds no caches and no locks. The
// per-kind fetches inside one composition are independent reads, not a
// snapshot, so a concurrent write can yield a view reflecting neither the
// old nor the new state. That read skew is accepted for this workload.
type Engine struct {
	store Store
	now   func() time.Time
}

// NewEngine creates an engine over the given store.
func NewEngine(store Store) *Engine {
	return &Engine{
		store: store,
		now:   time.Now,
	}
}
