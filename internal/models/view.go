package models

import "github.com/shopspring/decimal"

// DayView is one composed day: every item anchored to the date, ordered by
// effective time. Highlights is a derived summary slot populated by callers.
type DayView struct {
	Date       string         `json:"date"` // YYYY-MM-DD
	Items      []TimelineItem `json:"items"`
	Highlights []string       `json:"highlights,omitempty"`
}

// RangeView maps each date in an inclusive span to its composed day.
type RangeView struct {
	Start string             `json:"start"`
	End   string             `json:"end"`
	Days  map[string]DayView `json:"days"`
}

// WeeklyInsights is the scalar rollup over the trailing seven days.
type WeeklyInsights struct {
	Period       string          `json:"period"` // "start..end", inclusive dates
	ActiveDays   int             `json:"active_days_count"`
	Events       int             `json:"events_count"`
	SocialEvents int             `json:"social_events_count"`
	BillsTotal   decimal.Decimal `json:"bills_total"`
}
