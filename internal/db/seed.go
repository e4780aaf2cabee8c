package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"dashdeck/internal/model"
)

var seedProducts = []model.Product{
	{ID: "1", Name: "Laptop", Price: 999.99, Category: "Electronics", Stock: 50, Status: "Active"},
	{ID: "2", Name: "Mouse", Price: 29.99, Category: "Electronics", Stock: 200, Status: "Active"},
	{ID: "3", Name: "Keyboard", Price: 79.99, Category: "Electronics", Stock: 100, Status: "Active"},
	{ID: "4", Name: "Monitor", Price: 299.99, Category: "Electronics", Stock: 25, Status: "Out of Stock"},
	{ID: "5", Name: "Headphones", Price: 149.99, Category: "Electronics", Stock: 75, Status: "Active"},
	{ID: "6", Name: "Desk Lamp", Price: 39.5, Category: "Office", Stock: 60, Status: "Active"},
	{ID: "7", Name: "Standing Desk", Price: 549, Category: "Office", Stock: 8, Status: "Active"},
	{ID: "8", Name: "Office Chair", Price: 329, Category: "Office", Stock: 0, Status: "Out of Stock"},
	{ID: "9", Name: "Notebook Pack", Price: 12.49, Category: "Stationery", Stock: 420, Status: "Active"},
	{ID: "10", Name: "Gel Pens", Price: 8.99, Category: "Stationery", Stock: 610, Status: "Active"},
	{ID: "11", Name: "Whiteboard", Price: 89, Category: "Office", Stock: 14, Status: "Discontinued"},
	{ID: "12", Name: "USB-C Hub", Price: 49.99, Category: "Electronics", Stock: 130, Status: "Active"},
	{ID: "13", Name: "Webcam", Price: 69.99, Category: "Electronics", Stock: 0, Status: "Out of Stock"},
	{ID: "14", Name: "Sticky Notes", Price: 4.25, Category: "Stationery", Stock: 900, Status: "Active"},
	{ID: "15", Name: "Filing Cabinet", Price: 189, Category: "Office", Stock: 5, Status: "Active"},
	{ID: "16", Name: "Desk Mat", Price: 24.99, Category: "Office", Stock: 88, Status: "Active"},
}

var seedOrders = []model.Order{
	{ID: "ORD-001", Customer: "John Doe", Total: 1029.98, Status: "Completed"},
	{ID: "ORD-002", Customer: "Jane Smith", Total: 79.99, Status: "Pending"},
	{ID: "ORD-003", Customer: "Bob Johnson", Total: 449.98, Status: "Shipped"},
	{ID: "ORD-004", Customer: "Alice Brown", Total: 299.99, Status: "Completed"},
	{ID: "ORD-005", Customer: "Charlie Wilson", Total: 149.99, Status: "Processing"},
}

var (
	seedCustomers = []string{
		"Diana Prince", "Ethan Hunt", "Fiona Gallagher", "George Miller",
		"Hannah Lee", "Ivan Petrov", "Julia Roberts", "Kevin Hart",
	}
	seedStatuses = []string{"Completed", "Pending", "Shipped", "Processing", "Cancelled"}
)

const seedOrderCount = 48

// demoOrders returns the fixed demo orders followed by generated ones so
// that server-side paging has several pages to walk.
func demoOrders() []model.Order {
	base := time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC)
	offsets := []int{2, 3, 1, 0, 4}

	orders := make([]model.Order, 0, seedOrderCount)
	for i, o := range seedOrders {
		o.Date = base.AddDate(0, 0, offsets[i])
		orders = append(orders, o)
	}
	for i := len(seedOrders); i < seedOrderCount; i++ {
		orders = append(orders, model.Order{
			ID:       fmt.Sprintf("ORD-%03d", i+1),
			Customer: seedCustomers[i%len(seedCustomers)],
			Total:    float64((i*3731)%150000)/100 + 9.99,
			Status:   seedStatuses[i%len(seedStatuses)],
			Date:     base.AddDate(0, 0, 5+i),
		})
	}
	return orders
}

func seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	added := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range seedProducts {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO products (id, name, price, category, stock, status, added_on) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Price, p.Category, p.Stock, p.Status, added.AddDate(0, 0, i*9).Format(dateLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	for _, o := range demoOrders() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO orders (id, customer, total, status, date) VALUES (?, ?, ?, ?, ?)`,
			o.ID, o.Customer, o.Total, o.Status, o.Date.Format(dateLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to seed order %s: %w", o.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
