package timeline

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

// WeeklyInsights reduces the trailing seven days ending today to scalar
// counters. Only events and bills participate; the window is never
// caller-specified.
func (e *Engine) WeeklyInsights(ownerID string) (models.WeeklyInsights, error) {
	today := e.now().UTC().Format(constants.DateFormat)
	startDate, err := utils.AddDays(today, -(constants.InsightsWindowDays - 1))
	if err != nil {
		return models.WeeklyInsights{}, err
	}

	insights := models.WeeklyInsights{
		Period:     startDate + ".." + today,
		BillsTotal: decimal.Zero,
	}

	for i := 0; i < constants.InsightsWindowDays; i++ {
		date, err := utils.AddDays(startDate, i)
		if err != nil {
			return models.WeeklyInsights{}, err
		}
		active, err := e.addDayToInsights(ownerID, date, &insights)
		if err != nil {
			return models.WeeklyInsights{}, fmt.Errorf("failed to aggregate %s: %w", date, err)
		}
		if active {
			insights.ActiveDays++
		}
	}

	return insights, nil
}

// addDayToInsights folds one day's events and bills into the rollup and
// reports whether the day had any qualifying item.
func (e *Engine) addDayToInsights(ownerID, date string, insights *models.WeeklyInsights) (bool, error) {
	start, end, err := utils.DayWindow(date)
	if err != nil {
		return false, err
	}

	items, err := e.store.ItemsForOwnerInWindow(ownerID, start, end)
	if err != nil {
		return false, err
	}

	var eventIDs, billIDs []string
	for _, item := range items {
		switch item.Kind {
		case constants.KindEvent:
			if item.StartAt != nil {
				eventIDs = append(eventIDs, item.ID)
			}
		case constants.KindBill:
			billIDs = append(billIDs, item.ID)
		}
	}

	active := false

	if len(eventIDs) > 0 {
		details, err := e.store.DetailsByIDs(constants.KindEvent, eventIDs)
		if err != nil {
			return false, err
		}
		for _, id := range eventIDs {
			insights.Events++
			active = true
			if d, ok := details[id]; ok && d.Visibility == models.VisibilityShared {
				insights.SocialEvents++
			}
		}
	}

	if len(billIDs) > 0 {
		details, err := e.store.DetailsByIDs(constants.KindBill, billIDs)
		if err != nil {
			return false, err
		}
		for _, id := range billIDs {
			d, ok := details[id]
			if !ok || d.DueDate != date {
				continue
			}
			active = true
			if d.Amount.Valid {
				insights.BillsTotal = insights.BillsTotal.Add(d.Amount.Decimal)
			}
		}
	}

	return active, nil
}
