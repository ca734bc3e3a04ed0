package models

import (
	"fmt"
	"time"

	"github.com/amarling/daybook/internal/constants"
)

// EventParticipant links a user (or a not-yet-registered invitee by email) to
// an event. Accepted non-host rows drive shared-event visibility.
type EventParticipant struct {
	ID           string                    `json:"id"`
	EventID      string                    `json:"event_id"`
	UserID       string                    `json:"user_id,omitempty"`
	InvitedEmail string                    `json:"invited_email,omitempty"`
	Role         constants.ParticipantRole `json:"role"`
	RSVPStatus   constants.RSVPStatus      `json:"rsvp_status"`
	CreatedAt    time.Time                 `json:"created_at"`
}

func (p *EventParticipant) Validate() error {
	if p.EventID == "" {
		return fmt.Errorf("participant event id cannot be empty")
	}
	if p.UserID == "" && p.InvitedEmail == "" {
		return fmt.Errorf("participant needs a user id or an invited email")
	}
	if p.Role != constants.RoleHost && p.Role != constants.RoleGuest {
		return fmt.Errorf("invalid participant role: %s", p.Role)
	}
	switch p.RSVPStatus {
	case constants.RSVPPending, constants.RSVPAccepted, constants.RSVPDeclined:
		return nil
	default:
		return fmt.Errorf("invalid rsvp status: %s", p.RSVPStatus)
	}
}
