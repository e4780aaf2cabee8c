package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"dashdeck/internal/model"
)

const (
	defaultOrderPageSize = 10
	defaultCacheSize     = 64
)

// OrderStore serves orders a page at a time, the way a paginated API would.
// Pages are cached per query; orders are read-only so entries never go stale.
type OrderStore struct {
	db    *sql.DB
	cache *lru.Cache[model.OrderQuery, model.OrderPage]
	lggr  *zap.SugaredLogger
}

// NewOrderStore creates an order store with an LRU page cache.
func NewOrderStore(db *sql.DB, cacheSize int, lggr *zap.SugaredLogger) (*OrderStore, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[model.OrderQuery, model.OrderPage](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create order cache: %w", err)
	}
	if lggr == nil {
		lggr = zap.NewNop().Sugar()
	}
	return &OrderStore{db: db, cache: cache, lggr: lggr.Named("orders")}, nil
}

// Query returns one page of orders matching q, newest first. Search matches
// customer or order id, case-insensitively. Pages past the end are empty.
func (s *OrderStore) Query(ctx context.Context, q model.OrderQuery) (model.OrderPage, error) {
	q.Search = strings.TrimSpace(q.Search)
	if q.PageSize <= 0 {
		q.PageSize = defaultOrderPageSize
	}
	q.PageIndex = max(0, q.PageIndex)

	if page, ok := s.cache.Get(q); ok {
		s.lggr.Debugw("order page cache hit", "query", q)
		return page, nil
	}

	where := `
		WHERE (? = '' OR status = ?)
		  AND (? = '' OR instr(lower(customer), lower(?)) > 0 OR instr(lower(id), lower(?)) > 0)
	`
	args := []any{q.Status, q.Status, q.Search, q.Search, q.Search}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders"+where, args...).Scan(&total); err != nil {
		return model.OrderPage{}, fmt.Errorf("failed to count orders: %w", err)
	}

	query := `SELECT id, customer, total, status, date FROM orders` + where + `
		ORDER BY date DESC, id DESC
		LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, q.PageSize, q.PageIndex*q.PageSize)...)
	if err != nil {
		return model.OrderPage{}, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	page := model.OrderPage{
		TotalRows:  total,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}
	for rows.Next() {
		var o model.Order
		var date string
		if err := rows.Scan(&o.ID, &o.Customer, &o.Total, &o.Status, &date); err != nil {
			return model.OrderPage{}, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.Date = parseDate(date)
		page.Orders = append(page.Orders, o)
	}
	if err := rows.Err(); err != nil {
		return model.OrderPage{}, fmt.Errorf("error iterating order rows: %w", err)
	}

	s.cache.Add(q, page)
	s.lggr.Debugw("order page loaded", "query", q, "rows", len(page.Orders), "pages", page.TotalPages)
	return page, nil
}
