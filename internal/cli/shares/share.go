package shares

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/amarling/daybook/internal/cli"
	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

type ShareCmd struct {
	Add  ShareAddCmd  `cmd:"" help:"Invite a participant to an event."`
	Rsvp ShareRsvpCmd `cmd:"" help:"Respond to an event invitation."`
}

type ShareAddCmd struct {
	Event string `arg:"" help:"Event id."`
	User  string `short:"u" help:"Participant user id."`
	Email string `short:"m" help:"Invited email for users without an account."`
}

func (c *ShareAddCmd) Validate() error {
	if c.User == "" && c.Email == "" {
		return fmt.Errorf("either --user or --email is required")
	}
	return nil
}

func (c *ShareAddCmd) Run(ctx *cli.Context) error {
	event, err := ctx.Store.GetItem(c.Event)
	if err != nil {
		return fmt.Errorf("event not found: %w", err)
	}
	if event.Kind != constants.KindEvent {
		return fmt.Errorf("item %s is a %s, not an event", event.ID, event.Kind)
	}
	if event.OwnerID != ctx.Owner {
		return fmt.Errorf("only the event owner can invite participants")
	}

	participant := models.EventParticipant{
		ID:           uuid.NewString(),
		EventID:      event.ID,
		UserID:       c.User,
		InvitedEmail: c.Email,
		Role:         constants.RoleGuest,
		RSVPStatus:   constants.RSVPPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := participant.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddParticipant(participant); err != nil {
		return err
	}

	fmt.Printf("Invited participant to %q\n", event.Title)
	return nil
}

type ShareRsvpCmd struct {
	Event  string `arg:"" help:"Event id."`
	Status string `arg:"" help:"Response (accepted|declined)."`
}

func (c *ShareRsvpCmd) Validate() error {
	s := constants.RSVPStatus(c.Status)
	if s != constants.RSVPAccepted && s != constants.RSVPDeclined {
		return fmt.Errorf("invalid rsvp status %q: must be accepted or declined", c.Status)
	}
	return nil
}

func (c *ShareRsvpCmd) Run(ctx *cli.Context) error {
	status := constants.RSVPStatus(c.Status)
	if err := ctx.Store.UpdateRSVP(c.Event, ctx.Owner, status); err != nil {
		return err
	}

	fmt.Printf("RSVP for %s recorded as %s\n", c.Event, status)
	return nil
}
