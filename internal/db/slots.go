package db

import (
	"context"
	"database/sql"
	"fmt"

	"dashdeck/internal/schedule"
)

// ListSlots returns the saved schedule in insertion order.
func ListSlots(ctx context.Context, db *sql.DB) ([]schedule.Slot, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, day, start_time, end_time, slot_date
		FROM time_slots
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list time slots: %w", err)
	}
	defer rows.Close()

	var slots []schedule.Slot
	for rows.Next() {
		var s schedule.Slot
		var date sql.NullString
		if err := rows.Scan(&s.ID, &s.Day, &s.Start, &s.End, &date); err != nil {
			return nil, fmt.Errorf("failed to scan time slot: %w", err)
		}
		s.Date = date.String
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time slots: %w", err)
	}
	return slots, nil
}

// ReplaceSlots rewrites the saved schedule with slots.
func ReplaceSlots(ctx context.Context, db *sql.DB, slots []schedule.Slot) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM time_slots"); err != nil {
		return fmt.Errorf("failed to clear time slots: %w", err)
	}

	for i, s := range slots {
		var date any
		if s.Date != "" {
			date = s.Date
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO time_slots (id, day, start_time, end_time, slot_date, position) VALUES (?, ?, ?, ?, ?, ?)`,
			s.ID, s.Day, s.Start, s.End, date, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert time slot: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
