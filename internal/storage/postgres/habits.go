package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/amarling/daybook/internal/constants"
	"github.com/amarling/daybook/internal/models"
)

func (s *Store) AddHabit(habit models.Habit) error {
	return s.UpdateHabit(habit)
}

func (s *Store) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`
SELECT id, owner_id, title, schedule_days, schedule_time, active, category, created_at
FROM habits WHERE id = $1`, id)
	return scanHabit(row)
}

func (s *Store) UpdateHabit(habit models.Habit) error {
	days, err := marshalDays(habit.Schedule.Days)
	if err != nil {
		return fmt.Errorf("failed to encode schedule days: %w", err)
	}

	_, err = s.db.Exec(`
INSERT INTO habits (id, owner_id, title, schedule_days, schedule_time, active, category, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title,
	schedule_days = excluded.schedule_days,
	schedule_time = excluded.schedule_time,
	active = excluded.active,
	category = excluded.category`,
		habit.ID, habit.OwnerID, habit.Title, days,
		nullString(habit.Schedule.Time), habit.Active,
		nullString(habit.Category), habit.CreatedAt.Format(time.RFC3339))

	return err
}

func (s *Store) ActiveHabits(ownerID string) ([]models.Habit, error) {
	rows, err := s.db.Query(`
SELECT id, owner_id, title, schedule_days, schedule_time, active, category, created_at
FROM habits WHERE owner_id = $1 AND active = TRUE
ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}

	return habits, rows.Err()
}

func (s *Store) UpsertHabitEntry(entry models.HabitEntry) error {
	now := time.Now().UTC().Format(time.RFC3339)
	createdAt := now
	if !entry.CreatedAt.IsZero() {
		createdAt = entry.CreatedAt.Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
INSERT INTO habit_entries (id, habit_id, owner_id, day, status, note, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (habit_id, day) DO UPDATE SET
	status = excluded.status,
	note = excluded.note,
	updated_at = excluded.updated_at`,
		entry.ID, entry.HabitID, entry.OwnerID, entry.Day,
		string(entry.Status), nullString(entry.Note), createdAt, now)

	return err
}

func (s *Store) HabitEntriesForDay(ownerID, day string) (map[string]models.HabitEntry, error) {
	rows, err := s.db.Query(`
SELECT id, habit_id, owner_id, day, status, note, created_at, updated_at
FROM habit_entries WHERE owner_id = $1 AND day = $2`, ownerID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make(map[string]models.HabitEntry)
	for rows.Next() {
		var e models.HabitEntry
		var status, createdAt, updatedAt string
		var note sql.NullString

		if err := rows.Scan(&e.ID, &e.HabitID, &e.OwnerID, &e.Day, &status, &note, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		e.Status = constants.EntryStatus(status)
		e.Note = note.String
		if e.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at for entry %s: %w", e.ID, err)
		}
		if e.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at for entry %s: %w", e.ID, err)
		}

		entries[e.HabitID] = e
	}

	return entries, rows.Err()
}

func scanHabit(row rowScanner) (models.Habit, error) {
	var h models.Habit
	var createdAt string
	var days, scheduleTime, category sql.NullString

	err := row.Scan(&h.ID, &h.OwnerID, &h.Title, &days, &scheduleTime, &h.Active, &category, &createdAt)
	if err != nil {
		return models.Habit{}, err
	}

	h.Schedule.Time = scheduleTime.String
	h.Category = category.String
	if h.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
	}
	if days.Valid && days.String != "" {
		if err := json.Unmarshal([]byte(days.String), &h.Schedule.Days); err != nil {
			return models.Habit{}, fmt.Errorf("failed to decode schedule days for habit %s: %w", h.ID, err)
		}
	}

	return h, nil
}

func marshalDays(days []int) (sql.NullString, error) {
	if len(days) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(days)
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}
