package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func utcTime(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", value, err)
	}
	return ts
}

func testItem(t *testing.T, owner string, kind constants.ItemKind, startAt string) models.TimelineItem {
	t.Helper()

	item := models.TimelineItem{
		ID:        uuid.NewString(),
		OwnerID:   owner,
		Kind:      kind,
		Title:     "Test " + string(kind),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if startAt != "" {
		ts := utcTime(t, startAt)
		item.StartAt = &ts
	}
	return item
}

func TestLoadBeforeInit(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Fatal("Load() on uninitialized store should fail")
	}
}

func TestInitThenLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	reopened := NewStore(dbPath)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() after Init() failed: %v", err)
	}
	defer reopened.Close()
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)
	if err := store.runMigrations(); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}
}

func TestCreateAndGetItem(t *testing.T) {
	store := setupTestStore(t)

	item := testItem(t, "user-1", constants.KindBill, "")
	item.Summary = "Rent for May"
	priority := 2
	item.Priority = &priority
	item.Metadata = map[string]any{"source": "manual"}

	detail := models.DetailRecord{
		Vendor:  "Acme Property",
		Amount:  decimal.NullDecimal{Decimal: decimal.RequireFromString("1500.00"), Valid: true},
		DueDate: "2024-05-03",
		Autopay: true,
	}

	if err := store.CreateItem(item, detail); err != nil {
		t.Fatalf("CreateItem() failed: %v", err)
	}

	got, err := store.GetItem(item.ID)
	if err != nil {
		t.Fatalf("GetItem() failed: %v", err)
	}
	if got.Title != item.Title {
		t.Errorf("expected title %q, got %q", item.Title, got.Title)
	}
	if got.Summary != "Rent for May" {
		t.Errorf("expected summary to round-trip, got %q", got.Summary)
	}
	if got.Priority == nil || *got.Priority != 2 {
		t.Errorf("expected priority 2, got %v", got.Priority)
	}
	if got.Metadata["source"] != "manual" {
		t.Errorf("expected metadata to round-trip, got %v", got.Metadata)
	}

	details, err := store.DetailsByIDs(constants.KindBill, []string{item.ID})
	if err != nil {
		t.Fatalf("DetailsByIDs() failed: %v", err)
	}
	d, ok := details[item.ID]
	if !ok {
		t.Fatal("expected detail row for created item")
	}
	if d.Vendor != "Acme Property" {
		t.Errorf("expected vendor to round-trip, got %q", d.Vendor)
	}
	if !d.Amount.Valid || !d.Amount.Decimal.Equal(decimal.RequireFromString("1500.00")) {
		t.Errorf("expected amount 1500.00, got %v", d.Amount)
	}
	if d.DueDate != "2024-05-03" {
		t.Errorf("expected due date to round-trip, got %q", d.DueDate)
	}
	if !d.Autopay {
		t.Error("expected autopay to round-trip")
	}
}

func TestCreateItemRollsBackOnDetailConflict(t *testing.T) {
	store := setupTestStore(t)

	item := testItem(t, "user-1", constants.KindTask, "")

	// Pre-seed a conflicting detail row so the second insert in the
	// transaction fails and the item insert must be rolled back.
	_, err := store.db.Exec(
		`INSERT INTO item_details (item_id, kind) VALUES (?, ?)`,
		item.ID, string(constants.KindTask))
	if err != nil {
		t.Fatalf("failed to seed conflicting detail: %v", err)
	}

	if err := store.CreateItem(item, models.DetailRecord{}); err == nil {
		t.Fatal("CreateItem() should fail on detail conflict")
	}

	if _, err := store.GetItem(item.ID); err == nil {
		t.Error("item row should not survive a failed transaction")
	}
}

func TestItemsForOwnerInWindow(t *testing.T) {
	store := setupTestStore(t)

	inWindow := testItem(t, "user-1", constants.KindEvent, "2024-05-03T10:00:00Z")
	beforeWindow := testItem(t, "user-1", constants.KindEvent, "2024-05-02T23:59:00Z")
	afterWindow := testItem(t, "user-1", constants.KindEvent, "2024-05-04T00:00:00Z")
	timeless := testItem(t, "user-1", constants.KindJournal, "")
	otherOwner := testItem(t, "user-2", constants.KindEvent, "2024-05-03T10:00:00Z")

	for _, item := range []models.TimelineItem{inWindow, beforeWindow, afterWindow, timeless, otherOwner} {
		if err := store.CreateItem(item, models.DetailRecord{}); err != nil {
			t.Fatalf("CreateItem() failed: %v", err)
		}
	}

	start := utcTime(t, "2024-05-03T00:00:00Z")
	end := utcTime(t, "2024-05-04T00:00:00Z")
	items, err := store.ItemsForOwnerInWindow("user-1", start, end)
	if err != nil {
		t.Fatalf("ItemsForOwnerInWindow() failed: %v", err)
	}

	got := make(map[string]bool, len(items))
	for _, item := range items {
		got[item.ID] = true
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if !got[inWindow.ID] {
		t.Error("expected item inside the window")
	}
	if !got[timeless.ID] {
		t.Error("expected null-start item regardless of window")
	}
}

func TestDetailsByIDsFiltersByKind(t *testing.T) {
	store := setupTestStore(t)

	bill := testItem(t, "user-1", constants.KindBill, "")
	task := testItem(t, "user-1", constants.KindTask, "")
	if err := store.CreateItem(bill, models.DetailRecord{DueDate: "2024-05-03"}); err != nil {
		t.Fatalf("CreateItem() failed: %v", err)
	}
	if err := store.CreateItem(task, models.DetailRecord{DueDate: "2024-05-03"}); err != nil {
		t.Fatalf("CreateItem() failed: %v", err)
	}

	details, err := store.DetailsByIDs(constants.KindBill, []string{bill.ID, task.ID})
	if err != nil {
		t.Fatalf("DetailsByIDs() failed: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 detail, got %d", len(details))
	}
	if _, ok := details[bill.ID]; !ok {
		t.Error("expected only the bill detail")
	}

	empty, err := store.DetailsByIDs(constants.KindBill, nil)
	if err != nil {
		t.Fatalf("DetailsByIDs() with no ids failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map for empty id set, got %d entries", len(empty))
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	store := setupTestStore(t)

	missing := testItem(t, "user-1", constants.KindTask, "")
	if err := store.UpdateItem(missing); err == nil {
		t.Error("UpdateItem() should fail for a missing item")
	}
	if err := store.UpdateDetail(models.DetailRecord{ItemID: missing.ID}); err == nil {
		t.Error("UpdateDetail() should fail for a missing detail")
	}
}

func TestHabitRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	habit := models.Habit{
		ID:        uuid.NewString(),
		OwnerID:   "user-1",
		Title:     "Morning run",
		Schedule:  models.HabitSchedule{Days: []int{1, 3, 5}, Time: "07:00"},
		Active:    true,
		Category:  "health",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	got, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() failed: %v", err)
	}
	if got.Title != habit.Title {
		t.Errorf("expected title %q, got %q", habit.Title, got.Title)
	}
	if len(got.Schedule.Days) != 3 || got.Schedule.Days[0] != 1 {
		t.Errorf("expected schedule days to round-trip, got %v", got.Schedule.Days)
	}
	if got.Schedule.Time != "07:00" {
		t.Errorf("expected schedule time to round-trip, got %q", got.Schedule.Time)
	}

	habit.Title = "Evening run"
	habit.Active = false
	if err := store.UpdateHabit(habit); err != nil {
		t.Fatalf("UpdateHabit() failed: %v", err)
	}
	updated, err := store.GetHabit(habit.ID)
	if err != nil {
		t.Fatalf("GetHabit() after update failed: %v", err)
	}
	if updated.Title != "Evening run" || updated.Active {
		t.Errorf("expected update to persist, got %+v", updated)
	}
}

func TestActiveHabitsFiltering(t *testing.T) {
	store := setupTestStore(t)

	active := models.Habit{ID: uuid.NewString(), OwnerID: "user-1", Title: "Read", Active: true, CreatedAt: time.Now().UTC()}
	inactive := models.Habit{ID: uuid.NewString(), OwnerID: "user-1", Title: "Paused", Active: false, CreatedAt: time.Now().UTC()}
	foreign := models.Habit{ID: uuid.NewString(), OwnerID: "user-2", Title: "Other", Active: true, CreatedAt: time.Now().UTC()}

	for _, h := range []models.Habit{active, inactive, foreign} {
		if err := store.AddHabit(h); err != nil {
			t.Fatalf("AddHabit() failed: %v", err)
		}
	}

	habits, err := store.ActiveHabits("user-1")
	if err != nil {
		t.Fatalf("ActiveHabits() failed: %v", err)
	}
	if len(habits) != 1 || habits[0].ID != active.ID {
		t.Errorf("expected only the active owned habit, got %+v", habits)
	}
}

func TestHabitEntryUpsert(t *testing.T) {
	store := setupTestStore(t)

	habit := models.Habit{ID: uuid.NewString(), OwnerID: "user-1", Title: "Stretch", Active: true, CreatedAt: time.Now().UTC()}
	if err := store.AddHabit(habit); err != nil {
		t.Fatalf("AddHabit() failed: %v", err)
	}

	entry := models.HabitEntry{
		ID:      uuid.NewString(),
		HabitID: habit.ID,
		OwnerID: "user-1",
		Day:     "2024-05-03",
		Status:  constants.EntryDone,
	}
	if err := store.UpsertHabitEntry(entry); err != nil {
		t.Fatalf("UpsertHabitEntry() failed: %v", err)
	}

	// Logging the same habit and day again replaces the status instead of
	// inserting a second row.
	entry.ID = uuid.NewString()
	entry.Status = constants.EntrySkipped
	entry.Note = "travel day"
	if err := store.UpsertHabitEntry(entry); err != nil {
		t.Fatalf("UpsertHabitEntry() on conflict failed: %v", err)
	}

	entries, err := store.HabitEntriesForDay("user-1", "2024-05-03")
	if err != nil {
		t.Fatalf("HabitEntriesForDay() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after upsert, got %d", len(entries))
	}
	got := entries[habit.ID]
	if got.Status != constants.EntrySkipped {
		t.Errorf("expected status %q, got %q", constants.EntrySkipped, got.Status)
	}
	if got.Note != "travel day" {
		t.Errorf("expected note to be replaced, got %q", got.Note)
	}
}

func TestAcceptedSharedEvents(t *testing.T) {
	store := setupTestStore(t)

	shared := testItem(t, "user-2", constants.KindEvent, "2024-05-03T18:00:00Z")
	declinedEvent := testItem(t, "user-2", constants.KindEvent, "2024-05-03T19:00:00Z")
	ownEvent := testItem(t, "user-1", constants.KindEvent, "2024-05-03T20:00:00Z")
	for _, item := range []models.TimelineItem{shared, declinedEvent, ownEvent} {
		if err := store.CreateItem(item, models.DetailRecord{Visibility: models.VisibilityShared}); err != nil {
			t.Fatalf("CreateItem() failed: %v", err)
		}
	}

	participants := []models.EventParticipant{
		{ID: uuid.NewString(), EventID: shared.ID, UserID: "user-1", Role: constants.RoleGuest, RSVPStatus: constants.RSVPAccepted, CreatedAt: time.Now().UTC()},
		{ID: uuid.NewString(), EventID: declinedEvent.ID, UserID: "user-1", Role: constants.RoleGuest, RSVPStatus: constants.RSVPDeclined, CreatedAt: time.Now().UTC()},
		{ID: uuid.NewString(), EventID: ownEvent.ID, UserID: "user-1", Role: constants.RoleHost, RSVPStatus: constants.RSVPAccepted, CreatedAt: time.Now().UTC()},
	}
	for _, p := range participants {
		if err := store.AddParticipant(p); err != nil {
			t.Fatalf("AddParticipant() failed: %v", err)
		}
	}

	events, err := store.AcceptedSharedEvents("user-1")
	if err != nil {
		t.Fatalf("AcceptedSharedEvents() failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 shared event, got %d", len(events))
	}
	if events[0].ID != shared.ID {
		t.Errorf("expected accepted guest event, got %s", events[0].ID)
	}
}

func TestUpdateRSVP(t *testing.T) {
	store := setupTestStore(t)

	event := testItem(t, "user-2", constants.KindEvent, "2024-05-03T18:00:00Z")
	if err := store.CreateItem(event, models.DetailRecord{}); err != nil {
		t.Fatalf("CreateItem() failed: %v", err)
	}
	p := models.EventParticipant{
		ID: uuid.NewString(), EventID: event.ID, UserID: "user-1",
		Role: constants.RoleGuest, RSVPStatus: constants.RSVPPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.AddParticipant(p); err != nil {
		t.Fatalf("AddParticipant() failed: %v", err)
	}

	if err := store.UpdateRSVP(event.ID, "user-1", constants.RSVPAccepted); err != nil {
		t.Fatalf("UpdateRSVP() failed: %v", err)
	}

	events, err := store.AcceptedSharedEvents("user-1")
	if err != nil {
		t.Fatalf("AcceptedSharedEvents() failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected event to appear after accepting, got %d", len(events))
	}

	if err := store.UpdateRSVP(event.ID, "user-9", constants.RSVPAccepted); err == nil {
		t.Error("UpdateRSVP() should fail for an unknown participant")
	}
}
