package items

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/cli"
	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
	"github.com/amarling/daybook/internal/utils"
)

type ItemAddCmd struct {
	Kind  string `arg:"" help:"Item kind (event|bill|task|appointment|reminder|subscription|goal|travel|journal|work_block)."`
	Title string `arg:"" help:"Item title."`

	Date     string `short:"d" help:"Date (YYYY-MM-DD) for timed kinds."`
	Start    string `short:"s" help:"Start time (HH:MM)."`
	End      string `short:"e" help:"End time (HH:MM)."`
	Summary  string `help:"Free-form summary."`
	LifeArea string `help:"Life area tag."`
	Priority int    `short:"p" help:"Priority (1-5)." default:"0"`

	Vendor   string `help:"Vendor (bill, subscription)."`
	Amount   string `help:"Amount (bill, subscription)."`
	Due      string `help:"Due date YYYY-MM-DD (bill, task)."`
	NextBill string `help:"Next billing date YYYY-MM-DD (subscription)."`
	Location string `help:"Location (event, appointment)."`
	Shared   bool   `help:"Mark an event visible to invited participants."`
	RemindAt string `help:"Reminder instant (YYYY-MM-DDTHH:MM, reminder kind)."`
}

func (c *ItemAddCmd) Validate() error {
	if !constants.ValidKind(constants.ItemKind(c.Kind)) {
		return fmt.Errorf("invalid item kind: %s", c.Kind)
	}
	if c.Start != "" && c.Date == "" {
		return fmt.Errorf("--start requires --date")
	}
	if c.Start != "" && !utils.ValidateTimeFormat(c.Start) {
		return fmt.Errorf("invalid start time (expected HH:MM)")
	}
	if c.End != "" && !utils.ValidateTimeFormat(c.End) {
		return fmt.Errorf("invalid end time (expected HH:MM)")
	}
	if c.Due != "" && !utils.ValidateDateFormat(c.Due) {
		return fmt.Errorf("invalid due date (expected YYYY-MM-DD)")
	}
	if c.NextBill != "" && !utils.ValidateDateFormat(c.NextBill) {
		return fmt.Errorf("invalid next billing date (expected YYYY-MM-DD)")
	}
	if c.Amount != "" {
		if _, err := decimal.NewFromString(c.Amount); err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
	}
	return nil
}

func (c *ItemAddCmd) Run(ctx *cli.Context) error {
	now := time.Now().UTC()
	item := models.TimelineItem{
		ID:        uuid.NewString(),
		OwnerID:   ctx.Owner,
		Kind:      constants.ItemKind(c.Kind),
		Title:     c.Title,
		Summary:   c.Summary,
		LifeArea:  c.LifeArea,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if c.Priority > 0 {
		p := c.Priority
		item.Priority = &p
	}
	if c.Date != "" && c.Start != "" {
		start, err := utils.CombineDateAndTime(c.Date, c.Start)
		if err != nil {
			return err
		}
		item.StartAt = &start
		if c.End != "" {
			end, err := utils.CombineDateAndTime(c.Date, c.End)
			if err != nil {
				return err
			}
			item.EndAt = &end
		}
	}
	if err := item.Validate(); err != nil {
		return err
	}

	detail := models.DetailRecord{
		ItemID:       item.ID,
		Kind:         item.Kind,
		Vendor:       c.Vendor,
		DueDate:      c.Due,
		NextBillDate: c.NextBill,
		Location:     c.Location,
		RemindAt:     c.RemindAt,
	}
	if c.Shared {
		detail.Visibility = models.VisibilityShared
	}
	if c.Amount != "" {
		amt, err := decimal.NewFromString(c.Amount)
		if err != nil {
			return err
		}
		detail.Amount = decimal.NullDecimal{Decimal: amt, Valid: true}
	}

	// Base row and detail row land together or not at all.
	if err := ctx.Store.CreateItem(item, detail); err != nil {
		return err
	}

	fmt.Printf("Added %s %q (%s)\n", item.Kind, item.Title, item.ID)
	return nil
}
