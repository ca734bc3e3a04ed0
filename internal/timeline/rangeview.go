package timeline

import (
	"fmt"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

// RangeView composes every date in the inclusive span, one day at a time in
// order. The span is capped at MaxRangeDays regardless of what the caller
// asks for; iteration stops as soon as the date walks past the requested
// end, so partial trailing weeks compose only their real days.
func (e *Engine) RangeView(ownerID, startDate, endDate string) (models.RangeView, error) {
	startDay, err := utils.ParseDate(startDate)
	if err != nil {
		return models.RangeView{}, err
	}
	endDay, err := utils.ParseDate(endDate)
	if err != nil {
		return models.RangeView{}, err
	}
	if endDay.Before(startDay) {
		return models.RangeView{}, fmt.Errorf("range end %s precedes start %s", endDate, startDate)
	}

	view := models.RangeView{
		Start: startDate,
		End:   startDate,
		Days:  make(map[string]models.DayView),
	}

	for i := 0; i < constants.MaxRangeDays; i++ {
		day := startDay.AddDate(0, 0, i)
		if day.After(endDay) {
			break
		}
		date := day.Format(constants.DateFormat)

		dayView, err := e.DayView(ownerID, date)
		if err != nil {
			return models.RangeView{}, err
		}
		view.Days[date] = dayView
		view.End = date
	}

	return view, nil
}
