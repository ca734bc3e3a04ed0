package sqlite

import (
	"fmt"
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

func (s *Store) AddParticipant(p models.EventParticipant) error {
	_, err := s.db.Exec(`
		INSERT INTO event_participants (id, event_id, user_id, invited_email, role, rsvp_status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id, user_id) DO UPDATE SET
			role = excluded.role,
			rsvp_status = excluded.rsvp_status`,
		p.ID, p.EventID, nullString(p.UserID), nullString(p.InvitedEmail),
		string(p.Role), string(p.RSVPStatus), p.CreatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) UpdateRSVP(eventID, userID string, status constants.RSVPStatus) error {
	result, err := s.db.Exec(`
		UPDATE event_participants SET rsvp_status = ?
		WHERE event_id = ? AND user_id = ?`,
		string(status), eventID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("participant not found")
	}

	return nil
}
