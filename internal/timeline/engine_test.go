package timeline

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

// fakeStore is an in-memory Store with the same window semantics as the real
// backends. It records every DetailsByIDs call so tests can assert batching.
type fakeStore struct {
	items   []models.TimelineItem
	details map[string]models.DetailRecord
	habits  []models.Habit
	entries map[string]map[string]models.HabitEntry // day -> habit id -> entry
	shared  []models.TimelineItem

	detailCalls []constants.ItemKind

	itemsErr   error
	detailsErr error
	habitsErr  error
	sharedErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		details: make(map[string]models.DetailRecord),
		entries: make(map[string]map[string]models.HabitEntry),
	}
}

func (f *fakeStore) ItemsForOwnerInWindow(ownerID string, start, end time.Time) ([]models.TimelineItem, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}
	var out []models.TimelineItem
	for _, item := range f.items {
		if item.OwnerID != ownerID {
			continue
		}
		if item.StartAt != nil {
			at := item.StartAt.UTC()
			if at.Before(start) || !at.Before(end) {
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeStore) DetailsByIDs(kind constants.ItemKind, ids []string) (map[string]models.DetailRecord, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	f.detailCalls = append(f.detailCalls, kind)
	out := make(map[string]models.DetailRecord)
	for _, id := range ids {
		if d, ok := f.details[id]; ok && d.Kind == kind {
			out[id] = d
		}
	}
	return out, nil
}

func (f *fakeStore) ActiveHabits(ownerID string) ([]models.Habit, error) {
	if f.habitsErr != nil {
		return nil, f.habitsErr
	}
	var out []models.Habit
	for _, h := range f.habits {
		if h.OwnerID == ownerID && h.Active {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeStore) HabitEntriesForDay(ownerID, day string) (map[string]models.HabitEntry, error) {
	out := make(map[string]models.HabitEntry)
	for habitID, e := range f.entries[day] {
		if e.OwnerID == ownerID {
			out[habitID] = e
		}
	}
	return out, nil
}

func (f *fakeStore) AcceptedSharedEvents(ownerID string) ([]models.TimelineItem, error) {
	if f.sharedErr != nil {
		return nil, f.sharedErr
	}
	var out []models.TimelineItem
	for _, e := range f.shared {
		if e.OwnerID != ownerID {
			out = append(out, e)
		}
	}
	return out, nil
}

var errStore = errors.New("store unavailable")

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func amount(value string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(value), Valid: true}
}

func eventItem(id, owner, title string, start, end string) models.TimelineItem {
	return models.TimelineItem{
		ID:      id,
		OwnerID: owner,
		Kind:    constants.KindEvent,
		StartAt: ts(start),
		EndAt:   ts(end),
		Title:   title,
	}
}

func billItem(id, owner, title string) models.TimelineItem {
	return models.TimelineItem{
		ID:      id,
		OwnerID: owner,
		Kind:    constants.KindBill,
		Title:   title,
	}
}

func billDetail(id, vendor, dueDate, amt string) models.DetailRecord {
	d := models.DetailRecord{
		ItemID:  id,
		Kind:    constants.KindBill,
		Vendor:  vendor,
		DueDate: dueDate,
	}
	if amt != "" {
		d.Amount = amount(amt)
	}
	return d
}

func itemIDs(items []models.TimelineItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	return ids
}
