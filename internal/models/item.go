package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
)

// TimelineItem is the canonical schedulable record shared by every entity
// kind. Persisted kinds carry exactly one DetailRecord keyed by the item id;
// habit_block items are synthesized at read time and never stored.
type TimelineItem struct {
	ID       string             `json:"id"`
	OwnerID  string             `json:"owner_id"`
	Kind     constants.ItemKind `json:"kind"`
	StartAt  *time.Time         `json:"start_at,omitempty"`
	EndAt    *time.Time         `json:"end_at,omitempty"`
	Title    string             `json:"title"`
	Summary  string             `json:"summary,omitempty"`
	Status   string             `json:"status,omitempty"`
	Metadata map[string]any     `json:"metadata,omitempty"`
	LifeArea string             `json:"life_area,omitempty"`
	Priority *int               `json:"priority,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Detail is attached during composition; nil when the detail row is
	// missing (a tolerated symptom of the two-step write).
	Detail *DetailRecord `json:"detail,omitempty"`
}

// DetailRecord carries the kind-specific extension fields joined 1:1 to a
// TimelineItem. The struct is sparse: each kind populates its own subset and
// leaves the rest zero-valued. Anything without a dedicated column lands in
// Extra.
type DetailRecord struct {
	ItemID string             `json:"item_id"`
	Kind   constants.ItemKind `json:"kind"`

	// bill / subscription
	Vendor       string              `json:"vendor,omitempty"`
	Amount       decimal.NullDecimal `json:"amount,omitempty"`
	DueDate      string              `json:"due_date,omitempty"`       // YYYY-MM-DD
	NextBillDate string              `json:"next_bill_date,omitempty"` // YYYY-MM-DD
	Recurrence   string              `json:"recurrence,omitempty"`
	Autopay      bool                `json:"autopay,omitempty"`

	// event / appointment
	Location         string `json:"location,omitempty"`
	Visibility       string `json:"visibility,omitempty"`
	RecurrenceRuleID string `json:"recurrence_rule_id,omitempty"`

	// task
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Priority    *int       `json:"priority,omitempty"`

	// reminder
	RemindAt string `json:"remind_at,omitempty"` // RFC3339

	// goal / travel / journal / work_block and anything else
	Extra map[string]any `json:"extra,omitempty"`
}

// VisibilityShared marks an event visible to invited participants.
const VisibilityShared = "shared"

func (i *TimelineItem) Validate() error {
	if i.OwnerID == "" {
		return fmt.Errorf("item owner cannot be empty")
	}
	if i.Title == "" {
		return fmt.Errorf("item title cannot be empty")
	}
	if !constants.ValidKind(i.Kind) {
		return fmt.Errorf("invalid item kind: %s", i.Kind)
	}
	if i.StartAt != nil && i.EndAt != nil && i.EndAt.Before(*i.StartAt) {
		return fmt.Errorf("item end must not precede start")
	}
	return nil
}
