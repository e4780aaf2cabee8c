package db

import (
	"database/sql"
	"fmt"

	"dashdeck/internal/model"
)

// ListProducts retrieves all products, optionally limited to one category.
func ListProducts(db *sql.DB, category string) ([]model.Product, error) {
	query := `
		SELECT id, name, price, category, stock, status, added_on
		FROM products
		WHERE (? = '' OR category = ?)
		ORDER BY CAST(id AS INTEGER), id
	`

	rows, err := db.Query(query, category, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var results []model.Product
	for rows.Next() {
		var p model.Product
		var addedOn string
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock, &p.Status, &addedOn); err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		p.AddedOn = parseDate(addedOn)
		results = append(results, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}

	return results, nil
}

// ListCategories returns the distinct product categories.
func ListCategories(db *sql.DB) ([]string, error) {
	return listDistinct(db, "SELECT DISTINCT category FROM products ORDER BY category")
}

// ListOrderStatuses returns the distinct order statuses.
func ListOrderStatuses(db *sql.DB) ([]string, error) {
	return listDistinct(db, "SELECT DISTINCT status FROM orders ORDER BY status")
}

func listDistinct(db *sql.DB, query string) ([]string, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list values: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating values: %w", err)
	}
	return values, nil
}
