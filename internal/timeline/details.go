package timeline

import (
	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

// attachDetails joins each item to its kind-specific detail row with one
// batched fetch per kind present; kinds with no ids issue no query at all.
// An item whose detail row is missing keeps its base fields only.
func (e *Engine) attachDetails(items []models.TimelineItem) error {
	byKind := make(map[constants.ItemKind][]string)
	for _, item := range items {
		if item.Kind == constants.KindHabitBlock {
			continue
		}
		byKind[item.Kind] = append(byKind[item.Kind], item.ID)
	}

	fetched := make(map[string]models.DetailRecord)
	for kind, ids := range byKind {
		if len(ids) == 0 {
			continue
		}
		details, err := e.store.DetailsByIDs(kind, ids)
		if err != nil {
			return err
		}
		for id, d := range details {
			fetched[id] = d
		}
	}

	for i := range items {
		if d, ok := fetched[items[i].ID]; ok {
			detail := d
			items[i].Detail = &detail
		}
	}

	return nil
}
