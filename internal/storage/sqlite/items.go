package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

const itemColumns = "id, owner_id, kind, start_at, end_at, title, summary, status, metadata, life_area, priority, created_at, updated_at"

const detailColumns = "item_id, kind, vendor, amount, due_date, next_bill_date, recurrence, autopay, location, visibility, recurrence_rule_id, completed_at, priority, remind_at, extra"

// CreateItem writes the base row and its detail row inside one transaction
// so a failed detail insert never leaves an orphaned item behind.
func (s *Store) CreateItem(item models.TimelineItem, detail models.DetailRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := insertItem(tx, item); err != nil {
		_ = tx.Rollback()
		return err
	}
	detail.ItemID = item.ID
	detail.Kind = item.Kind
	if err := insertDetail(tx, detail); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func insertItem(tx *sql.Tx, item models.TimelineItem) error {
	metadata, err := marshalBag(item.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode item metadata: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO timeline_items (`+itemColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.OwnerID, string(item.Kind),
		nullTime(item.StartAt), nullTime(item.EndAt),
		item.Title, nullString(item.Summary), item.Status, metadata,
		nullString(item.LifeArea), nullInt(item.Priority),
		item.CreatedAt.Format(time.RFC3339), item.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func insertDetail(tx *sql.Tx, d models.DetailRecord) error {
	extra, err := marshalBag(d.Extra)
	if err != nil {
		return fmt.Errorf("failed to encode detail extra: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO item_details (`+detailColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ItemID, string(d.Kind), nullString(d.Vendor), nullDecimal(d.Amount),
		nullString(d.DueDate), nullString(d.NextBillDate), nullString(d.Recurrence),
		d.Autopay, nullString(d.Location), nullString(d.Visibility),
		nullString(d.RecurrenceRuleID), nullTime(d.CompletedAt), nullInt(d.Priority),
		nullString(d.RemindAt), extra)
	if err != nil {
		return fmt.Errorf("failed to insert detail: %w", err)
	}
	return nil
}

func (s *Store) GetItem(id string) (models.TimelineItem, error) {
	row := s.db.QueryRow(`SELECT `+itemColumns+` FROM timeline_items WHERE id = ?`, id)
	return scanItem(row)
}

func (s *Store) UpdateItem(item models.TimelineItem) error {
	metadata, err := marshalBag(item.Metadata)
	if err != nil {
		return fmt.Errorf("failed to encode item metadata: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE timeline_items
		SET start_at = ?, end_at = ?, title = ?, summary = ?, status = ?,
		    metadata = ?, life_area = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		nullTime(item.StartAt), nullTime(item.EndAt), item.Title,
		nullString(item.Summary), item.Status, metadata,
		nullString(item.LifeArea), nullInt(item.Priority),
		time.Now().UTC().Format(time.RFC3339), item.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("item not found")
	}
	return nil
}

func (s *Store) UpdateDetail(d models.DetailRecord) error {
	extra, err := marshalBag(d.Extra)
	if err != nil {
		return fmt.Errorf("failed to encode detail extra: %w", err)
	}

	result, err := s.db.Exec(`
		UPDATE item_details
		SET vendor = ?, amount = ?, due_date = ?, next_bill_date = ?,
		    recurrence = ?, autopay = ?, location = ?, visibility = ?,
		    recurrence_rule_id = ?, completed_at = ?, priority = ?,
		    remind_at = ?, extra = ?
		WHERE item_id = ?`,
		nullString(d.Vendor), nullDecimal(d.Amount), nullString(d.DueDate),
		nullString(d.NextBillDate), nullString(d.Recurrence), d.Autopay,
		nullString(d.Location), nullString(d.Visibility),
		nullString(d.RecurrenceRuleID), nullTime(d.CompletedAt), nullInt(d.Priority),
		nullString(d.RemindAt), extra, d.ItemID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("detail not found")
	}
	return nil
}

func (s *Store) ItemsForOwnerInWindow(ownerID string, start, end time.Time) ([]models.TimelineItem, error) {
	rows, err := s.db.Query(`
		SELECT `+itemColumns+` FROM timeline_items
		WHERE owner_id = ?
		  AND (start_at IS NULL OR (start_at >= ? AND start_at < ?))
		ORDER BY created_at`,
		ownerID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

func (s *Store) DetailsByIDs(kind constants.ItemKind, ids []string) (map[string]models.DetailRecord, error) {
	details := make(map[string]models.DetailRecord)
	if len(ids) == 0 {
		return details, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, string(kind))
	for _, id := range ids {
		args = append(args, id)
	}

	rows, err := s.db.Query(`
		SELECT `+detailColumns+` FROM item_details
		WHERE kind = ? AND item_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details[d.ItemID] = d
	}

	return details, rows.Err()
}

func (s *Store) AcceptedSharedEvents(ownerID string) ([]models.TimelineItem, error) {
	rows, err := s.db.Query(`
		SELECT i.id, i.owner_id, i.kind, i.start_at, i.end_at, i.title, i.summary,
		       i.status, i.metadata, i.life_area, i.priority, i.created_at, i.updated_at
		FROM timeline_items i
		JOIN event_participants p ON p.event_id = i.id
		WHERE p.user_id = ? AND p.rsvp_status = ? AND p.role != ?
		  AND i.kind = ? AND i.owner_id != ?
		ORDER BY i.start_at`,
		ownerID, string(constants.RSVPAccepted), string(constants.RoleHost),
		string(constants.KindEvent), ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanItems(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (models.TimelineItem, error) {
	var i models.TimelineItem
	var kind, createdAt, updatedAt string
	var startAt, endAt, summary, metadata, lifeArea sql.NullString
	var priority sql.NullInt64

	err := row.Scan(&i.ID, &i.OwnerID, &kind, &startAt, &endAt, &i.Title,
		&summary, &i.Status, &metadata, &lifeArea, &priority, &createdAt, &updatedAt)
	if err != nil {
		return models.TimelineItem{}, err
	}

	i.Kind = constants.ItemKind(kind)
	i.Summary = summary.String
	i.LifeArea = lifeArea.String
	if priority.Valid {
		p := int(priority.Int64)
		i.Priority = &p
	}
	if i.StartAt, err = parseNullTime(startAt); err != nil {
		return models.TimelineItem{}, fmt.Errorf("failed to parse start_at for item %s: %w", i.ID, err)
	}
	if i.EndAt, err = parseNullTime(endAt); err != nil {
		return models.TimelineItem{}, fmt.Errorf("failed to parse end_at for item %s: %w", i.ID, err)
	}
	if i.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.TimelineItem{}, fmt.Errorf("failed to parse created_at for item %s: %w", i.ID, err)
	}
	if i.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
		return models.TimelineItem{}, fmt.Errorf("failed to parse updated_at for item %s: %w", i.ID, err)
	}
	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &i.Metadata); err != nil {
			return models.TimelineItem{}, fmt.Errorf("failed to decode metadata for item %s: %w", i.ID, err)
		}
	}

	return i, nil
}

func scanItems(rows *sql.Rows) ([]models.TimelineItem, error) {
	var items []models.TimelineItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanDetail(row rowScanner) (models.DetailRecord, error) {
	var d models.DetailRecord
	var kind string
	var vendor, amount, dueDate, nextBillDate, recurrence sql.NullString
	var location, visibility, ruleID, completedAt, remindAt, extra sql.NullString
	var priority sql.NullInt64

	err := row.Scan(&d.ItemID, &kind, &vendor, &amount, &dueDate, &nextBillDate,
		&recurrence, &d.Autopay, &location, &visibility, &ruleID, &completedAt,
		&priority, &remindAt, &extra)
	if err != nil {
		return models.DetailRecord{}, err
	}

	d.Kind = constants.ItemKind(kind)
	d.Vendor = vendor.String
	d.DueDate = dueDate.String
	d.NextBillDate = nextBillDate.String
	d.Recurrence = recurrence.String
	d.Location = location.String
	d.Visibility = visibility.String
	d.RecurrenceRuleID = ruleID.String
	d.RemindAt = remindAt.String
	if priority.Valid {
		p := int(priority.Int64)
		d.Priority = &p
	}
	if amount.Valid {
		dec, err := decimal.NewFromString(amount.String)
		if err != nil {
			return models.DetailRecord{}, fmt.Errorf("failed to parse amount for detail %s: %w", d.ItemID, err)
		}
		d.Amount = decimal.NullDecimal{Decimal: dec, Valid: true}
	}
	if d.CompletedAt, err = parseNullTime(completedAt); err != nil {
		return models.DetailRecord{}, fmt.Errorf("failed to parse completed_at for detail %s: %w", d.ItemID, err)
	}
	if extra.Valid && extra.String != "" {
		if err := json.Unmarshal([]byte(extra.String), &d.Extra); err != nil {
			return models.DetailRecord{}, fmt.Errorf("failed to decode extra for detail %s: %w", d.ItemID, err)
		}
	}

	return d, nil
}

func marshalBag(bag map[string]any) (sql.NullString, error) {
	if len(bag) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(bag)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(p *int) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*p), Valid: true}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.UTC().Format(time.RFC3339), Valid: true}
}

func nullDecimal(d decimal.NullDecimal) sql.NullString {
	if !d.Valid {
		return sql.NullString{}
	}
	return sql.NullString{String: d.Decimal.String(), Valid: true}
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
