package cli

import "github.com/amarling/daybook/internal/utils"

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD, defaults to today)."`
}

func (c *DayCmd) Run(ctx *Context) error {
	date := c.Date
	if date == "" {
		today, err := ctx.Today()
		if err != nil {
			return err
		}
		date = today
	}

	view, err := ctx.Engine.DayView(ctx.Owner, date)
	if err != nil {
		return err
	}

	PrintDayView(view)
	return nil
}

type RangeCmd struct {
	Start string `arg:"" help:"First date of the span (YYYY-MM-DD)."`
	End   string `arg:"" help:"Last date of the span (YYYY-MM-DD, inclusive)."`
}

func (c *RangeCmd) Validate() error {
	if !utils.ValidateDateFormat(c.Start) || !utils.ValidateDateFormat(c.End) {
		return errInvalidDate
	}
	return nil
}

func (c *RangeCmd) Run(ctx *Context) error {
	view, err := ctx.Engine.RangeView(ctx.Owner, c.Start, c.End)
	if err != nil {
		return err
	}

	date := view.Start
	for {
		PrintDayView(view.Days[date])
		if date == view.End {
			break
		}
		next, err := utils.AddDays(date, 1)
		if err != nil {
			return err
		}
		date = next
	}

	return nil
}
