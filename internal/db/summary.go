package db

import (
	"context"
	"database/sql"
	"fmt"

	"dashdeck/internal/model"
)

// Summary returns the headline numbers shown on the home screen.
func Summary(ctx context.Context, db *sql.DB) (model.Summary, error) {
	var s model.Summary

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN stock = 0 THEN 1 ELSE 0 END), 0)
		FROM products
	`).Scan(&s.Products, &s.OutOfStock)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to summarize products: %w", err)
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status <> 'Cancelled' THEN total ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0)
		FROM orders
	`).Scan(&s.Orders, &s.Revenue, &s.PendingOrders)
	if err != nil {
		return model.Summary{}, fmt.Errorf("failed to summarize orders: %w", err)
	}

	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM time_slots").Scan(&s.Slots); err != nil {
		return model.Summary{}, fmt.Errorf("failed to count time slots: %w", err)
	}
	return s, nil
}
