package cli

import (
	"errors"
	"fmt"
)

var errInvalidDate = errors.New("invalid date format (expected YYYY-MM-DD)")

type InsightsCmd struct{}

func (c *InsightsCmd) Run(ctx *Context) error {
	insights, err := ctx.Engine.WeeklyInsights(ctx.Owner)
	if err != nil {
		return err
	}

	fmt.Printf("Week %s\n", insights.Period)
	fmt.Printf("  Active days:   %d\n", insights.ActiveDays)
	fmt.Printf("  Events:        %d (%d social)\n", insights.Events, insights.SocialEvents)
	fmt.Printf("  Bills due:     %s\n", insights.BillsTotal.StringFixed(2))
	return nil
}
