package constants

// ItemKind identifies the concrete type behind a timeline item
type ItemKind string

// EntryStatus is the outcome recorded for a habit on a single day
type EntryStatus string

// RSVPStatus is a participant's response to an event invitation
type RSVPStatus string

// ParticipantRole distinguishes the event owner from invitees
type ParticipantRole string

const (
	AppName           = "daybook"
	DefaultConfigPath = "~/.config/daybook/daybook.db"
	Version           = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultHabitTime is the slot assigned to a habit with no scheduled time
	DefaultHabitTime = "09:00"

	// DefaultAnchorTime is the sort slot for date-anchored items with no time of day
	DefaultAnchorTime = "09:00"

	// MaxRangeDays caps the span a range request will compose regardless of input
	MaxRangeDays = 42

	// InsightsWindowDays is the trailing window the weekly rollup covers
	InsightsWindowDays = 7

	// Item kinds
	KindEvent        ItemKind = "event"
	KindBill         ItemKind = "bill"
	KindTask         ItemKind = "task"
	KindAppointment  ItemKind = "appointment"
	KindReminder     ItemKind = "reminder"
	KindSubscription ItemKind = "subscription"
	KindGoal         ItemKind = "goal"
	KindTravel       ItemKind = "travel"
	KindJournal      ItemKind = "journal"
	KindWorkBlock    ItemKind = "work_block"

	// KindHabitBlock is synthesized at read time and never persisted
	KindHabitBlock ItemKind = "habit_block"

	// Habit entry statuses
	EntryDone    EntryStatus = "done"
	EntrySkipped EntryStatus = "skipped"
	EntryMissed  EntryStatus = "missed"

	// RSVP statuses
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"

	// Participant roles
	RoleHost  ParticipantRole = "host"
	RoleGuest ParticipantRole = "guest"
)

// PersistedKinds lists every kind that has a backing detail row.
// habit_block is deliberately absent.
var PersistedKinds = []ItemKind{
	KindEvent, KindBill, KindTask, KindAppointment, KindReminder,
	KindSubscription, KindGoal, KindTravel, KindJournal, KindWorkBlock,
}

// ValidKind reports whether k names a persistable item kind.
func ValidKind(k ItemKind) bool {
	for _, pk := range PersistedKinds {
		if pk == k {
			return true
		}
	}
	return false
}

// ValidEntryStatus reports whether s is a recognized habit entry status.
func ValidEntryStatus(s EntryStatus) bool {
	return s == EntryDone || s == EntrySkipped || s == EntryMissed
}
