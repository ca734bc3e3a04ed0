package timeline

import (
	"fmt"
	"sort"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

// DayView composes the full ordered schedule for one calendar date. Any
// store error aborts the whole composition; there is no partial result.
func (e *Engine) DayView(ownerID, date string) (models.DayView, error) {
	start, end, err := utils.DayWindow(date)
	if err != nil {
		return models.DayView{}, err
	}

	// Base fetch: timed items inside the window plus every null-start item.
	// Null-start kinds are narrowed below by their own anchor date.
	items, err := e.store.ItemsForOwnerInWindow(ownerID, start, end)
	if err != nil {
		return models.DayView{}, fmt.Errorf("failed to fetch items for %s: %w", date, err)
	}

	shared, err := e.sharedEventsInWindow(ownerID, items, start, end)
	if err != nil {
		return models.DayView{}, fmt.Errorf("failed to fetch shared events for %s: %w", date, err)
	}
	items = append(items, shared...)

	if err := e.attachDetails(items); err != nil {
		return models.DayView{}, fmt.Errorf("failed to fetch details for %s: %w", date, err)
	}

	// Anchor-dated kinds (bills, subscriptions, tasks) were fetched as a
	// superset; keep only the ones whose anchor equals the requested date.
	filtered := items[:0]
	for _, item := range items {
		if hasAnchor(item.Kind) && anchorDate(item) != date {
			continue
		}
		filtered = append(filtered, item)
	}

	occurrences, err := e.habitOccurrences(ownerID, date)
	if err != nil {
		return models.DayView{}, fmt.Errorf("failed to expand habits for %s: %w", date, err)
	}
	filtered = append(filtered, occurrences...)

	sortByEffectiveTime(filtered)

	return models.DayView{Date: date, Items: filtered}, nil
}

// hasAnchor reports whether the kind anchors to a date field of its own
// instead of start_at.
func hasAnchor(kind constants.ItemKind) bool {
	switch kind {
	case constants.KindBill, constants.KindSubscription, constants.KindTask:
		return true
	default:
		return false
	}
}

// anchorDate returns the kind-specific date that places the item on a day,
// or "" when the item carries none (including a missing detail row).
func anchorDate(item models.TimelineItem) string {
	if item.Detail == nil {
		return ""
	}
	switch item.Kind {
	case constants.KindBill, constants.KindTask:
		return item.Detail.DueDate
	case constants.KindSubscription:
		return item.Detail.NextBillDate
	default:
		return ""
	}
}

// effectiveTimeKey derives the HH:MM sort key for an item: remind-at time
// for reminders, else start time, else the default slot for anchor-dated
// kinds. Items with no time field at all key on "" and therefore sort ahead
// of every timed item.
func effectiveTimeKey(item models.TimelineItem) string {
	if item.Kind == constants.KindReminder && item.Detail != nil {
		if t := utils.TimeOfDay(item.Detail.RemindAt); t != "" {
			return t
		}
	}
	if item.StartAt != nil {
		return item.StartAt.UTC().Format(constants.TimeFormat)
	}
	if hasAnchor(item.Kind) && anchorDate(item) != "" {
		return constants.DefaultAnchorTime
	}
	return ""
}

func sortByEffectiveTime(items []models.TimelineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		return effectiveTimeKey(items[i]) < effectiveTimeKey(items[j])
	})
}
