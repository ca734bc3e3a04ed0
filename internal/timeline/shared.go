package timeline

import (
	"time"

	"github.com/amarling/daybook/internal/models"
)

// sharedEventsInWindow fetches events the user has accepted but does not
// own, keeps those whose start falls inside the window, and drops any id
// the owned fetch already surfaced. Both fetch paths can return
// boundary-adjacent rows, so dedup by id is required even though a row
// cannot be simultaneously owned and shared-accepted.
func (e *Engine) sharedEventsInWindow(ownerID string, owned []models.TimelineItem, start, end time.Time) ([]models.TimelineItem, error) {
	events, err := e.store.AcceptedSharedEvents(ownerID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(owned))
	for _, item := range owned {
		seen[item.ID] = true
	}

	var merged []models.TimelineItem
	for _, event := range events {
		if event.StartAt == nil {
			continue
		}
		at := event.StartAt.UTC()
		if at.Before(start) || !at.Before(end) {
			continue
		}
		if seen[event.ID] {
			continue
		}
		seen[event.ID] = true
		merged = append(merged, event)
	}

	return merged, nil
}
