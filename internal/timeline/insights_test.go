package timeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

// pin "today" to 2024-05-03 so the trailing window is 2024-04-27..2024-05-03
func insightsEngine(store *fakeStore) *Engine {
	engine := NewEngine(store)
	engine.now = func() time.Time {
		return time.Date(2024, 5, 3, 14, 0, 0, 0, time.UTC)
	}
	return engine
}

func TestWeeklyInsightsPeriod(t *testing.T) {
	insights, err := insightsEngine(newFakeStore()).WeeklyInsights(owner)
	if err != nil {
		t.Fatalf("WeeklyInsights() returned unexpected error: %v", err)
	}
	if insights.Period != "2024-04-27..2024-05-03" {
		t.Errorf("period = %s, want 2024-04-27..2024-05-03", insights.Period)
	}
	if insights.ActiveDays != 0 || insights.Events != 0 || !insights.BillsTotal.IsZero() {
		t.Errorf("empty store produced non-zero insights: %+v", insights)
	}
}

func TestWeeklyInsightsCounters(t *testing.T) {
	store := newFakeStore()
	store.items = []models.TimelineItem{
		// two events on the same day, one shared
		eventItem("event-1", owner, "Standup", "2024-05-01T10:00:00Z", "2024-05-01T11:00:00Z"),
		eventItem("event-2", owner, "Dinner", "2024-05-01T19:00:00Z", "2024-05-01T21:00:00Z"),
		// an event before the window
		eventItem("event-old", owner, "Ancient", "2024-04-20T10:00:00Z", "2024-04-20T11:00:00Z"),
		// bills: one due inside the window, one outside, one with no amount
		billItem("bill-1", owner, "Rent"),
		billItem("bill-2", owner, "Power"),
		billItem("bill-3", owner, "Water"),
	}
	store.details["event-1"] = models.DetailRecord{ItemID: "event-1", Kind: constants.KindEvent, Visibility: "private"}
	store.details["event-2"] = models.DetailRecord{ItemID: "event-2", Kind: constants.KindEvent, Visibility: models.VisibilityShared}
	store.details["bill-1"] = billDetail("bill-1", "ACME", "2024-04-29", "1200")
	store.details["bill-2"] = billDetail("bill-2", "Utility Co", "2024-05-10", "80")
	store.details["bill-3"] = billDetail("bill-3", "City", "2024-05-02", "")

	insights, err := insightsEngine(store).WeeklyInsights(owner)
	if err != nil {
		t.Fatalf("WeeklyInsights() returned unexpected error: %v", err)
	}

	if insights.Events != 2 {
		t.Errorf("events = %d, want 2 (event-old is outside the window)", insights.Events)
	}
	if insights.SocialEvents != 1 {
		t.Errorf("social events = %d, want 1", insights.SocialEvents)
	}
	if want := decimal.RequireFromString("1200"); !insights.BillsTotal.Equal(want) {
		t.Errorf("bills total = %s, want %s (bill-2 outside window, bill-3 null amount)", insights.BillsTotal, want)
	}
	// 2024-05-01 (events) and 2024-04-29 and 2024-05-02 (bills due) are active
	if insights.ActiveDays != 3 {
		t.Errorf("active days = %d, want 3", insights.ActiveDays)
	}
}

func TestWeeklyInsightsBillsTotalSumsWindow(t *testing.T) {
	store := newFakeStore()
	store.items = []models.TimelineItem{
		billItem("bill-1", owner, "A"),
		billItem("bill-2", owner, "B"),
	}
	store.details["bill-1"] = billDetail("bill-1", "A", "2024-04-27", "10.50")
	store.details["bill-2"] = billDetail("bill-2", "B", "2024-05-03", "0.25")

	insights, err := insightsEngine(store).WeeklyInsights(owner)
	if err != nil {
		t.Fatalf("WeeklyInsights() returned unexpected error: %v", err)
	}

	if want := decimal.RequireFromString("10.75"); !insights.BillsTotal.Equal(want) {
		t.Errorf("bills total = %s, want %s", insights.BillsTotal, want)
	}
}

func TestWeeklyInsightsFetchErrorAborts(t *testing.T) {
	store := newFakeStore()
	store.items = []models.TimelineItem{
		eventItem("event-1", owner, "Standup", "2024-05-01T10:00:00Z", "2024-05-01T11:00:00Z"),
	}
	store.detailsErr = errStore

	_, err := insightsEngine(store).WeeklyInsights(owner)
	if err == nil {
		t.Fatal("WeeklyInsights() succeeded, want error")
	}
}
