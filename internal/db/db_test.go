package db

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"dashdeck/internal/model"
	"dashdeck/internal/schedule"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestOpenSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.db")
	database, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, database.Close())

	database, err = Open(path)
	require.NoError(t, err)
	defer database.Close()

	products, err := ListProducts(database, "")
	require.NoError(t, err)
	assert.Len(t, products, len(seedProducts))
}

func TestOpenWaitsForWriteLock(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "locked.db")

	holder, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer holder.Close()
	conn, err := holder.Conn(ctx)
	require.NoError(t, err)
	defer conn.Close()
	_, err = conn.ExecContext(ctx, "BEGIN IMMEDIATE")
	require.NoError(t, err)

	other, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer other.Close()
	_, err = other.ExecContext(ctx, schema)
	require.Error(t, err)
	assert.True(t, isBusy(err))
	assert.False(t, isBusy(errors.New("boom")))

	released := make(chan error, 1)
	go func() {
		time.Sleep(100 * time.Millisecond)
		_, err := conn.ExecContext(ctx, "ROLLBACK")
		released <- err
	}()

	database, err := Open(path)
	require.NoError(t, <-released)
	require.NoError(t, err)
	defer database.Close()

	products, err := ListProducts(database, "")
	require.NoError(t, err)
	assert.Len(t, products, len(seedProducts))
}

func TestListProducts(t *testing.T) {
	database := openTestDB(t)

	products, err := ListProducts(database, "")
	require.NoError(t, err)
	require.Len(t, products, len(seedProducts))
	assert.Equal(t, "Laptop", products[0].Name)
	assert.Equal(t, 999.99, products[0].Price)
	assert.False(t, products[0].AddedOn.IsZero())
	assert.Equal(t, "16", products[len(products)-1].ID, "ordered by numeric id")

	office, err := ListProducts(database, "Office")
	require.NoError(t, err)
	require.NotEmpty(t, office)
	for _, p := range office {
		assert.Equal(t, "Office", p.Category)
	}

	categories, err := ListCategories(database)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Office", "Stationery"}, categories)
}

func TestOrderStorePaging(t *testing.T) {
	database := openTestDB(t)
	store, err := NewOrderStore(database, 8, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	ctx := context.Background()

	page, err := store.Query(ctx, model.OrderQuery{PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, seedOrderCount, page.TotalRows)
	assert.Equal(t, 5, page.TotalPages)
	require.Len(t, page.Orders, 10)
	for i := 1; i < len(page.Orders); i++ {
		assert.False(t, page.Orders[i].Date.After(page.Orders[i-1].Date), "newest first")
	}

	last, err := store.Query(ctx, model.OrderQuery{PageIndex: 4, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, last.Orders, seedOrderCount-40)

	past, err := store.Query(ctx, model.OrderQuery{PageIndex: 12, PageSize: 10})
	require.NoError(t, err)
	assert.Empty(t, past.Orders)
	assert.Equal(t, 5, past.TotalPages)

	defaulted, err := store.Query(ctx, model.OrderQuery{PageIndex: -3})
	require.NoError(t, err)
	assert.Equal(t, page, defaulted, "defaults normalize to the same cached query")
}

func TestOrderStoreSearchAndStatus(t *testing.T) {
	database := openTestDB(t)
	store, err := NewOrderStore(database, 0, nil)
	require.NoError(t, err)
	ctx := context.Background()

	page, err := store.Query(ctx, model.OrderQuery{Search: "jane", PageSize: 50})
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, "ORD-002", page.Orders[0].ID)

	page, err = store.Query(ctx, model.OrderQuery{Search: "ord-00", PageSize: 50})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 9)

	page, err = store.Query(ctx, model.OrderQuery{Status: "Pending", PageSize: 50})
	require.NoError(t, err)
	require.NotEmpty(t, page.Orders)
	for _, o := range page.Orders {
		assert.Equal(t, "Pending", o.Status)
	}

	for _, literal := range []string{"%", "_", "J_hn", `\`} {
		page, err = store.Query(ctx, model.OrderQuery{Search: literal, PageSize: 50})
		require.NoError(t, err)
		assert.Zero(t, page.TotalRows, "search %q matches literally", literal)
	}

	page, err = store.Query(ctx, model.OrderQuery{Search: "JOHN", PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, page.TotalRows)

	statuses, err := ListOrderStatuses(database)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cancelled", "Completed", "Pending", "Processing", "Shipped"}, statuses)
}

func TestSlotsRoundTrip(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	slots, err := ListSlots(ctx, database)
	require.NoError(t, err)
	assert.Empty(t, slots)

	want := []schedule.Slot{
		{ID: "b", Day: "Tue", Start: "10:00", End: "10:30"},
		{ID: "a", Day: "Mon", Start: "09:00", End: "09:30", Date: "2024-01-15"},
	}
	require.NoError(t, ReplaceSlots(ctx, database, want))

	got, err := ListSlots(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, ReplaceSlots(ctx, database, want[:1]))
	got, err = ListSlots(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, want[:1], got)
}

func TestReplaceSlotsRejectsBadDay(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, ReplaceSlots(ctx, database, []schedule.Slot{{ID: "a", Day: "Mon", Start: "09:00", End: "09:30"}}))

	err := ReplaceSlots(ctx, database, []schedule.Slot{{ID: "x", Day: "Someday", Start: "09:00", End: "09:30"}})
	require.Error(t, err)

	got, err := ListSlots(ctx, database)
	require.NoError(t, err)
	assert.Len(t, got, 1, "failed rewrite rolls back")
}

func TestSummary(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	require.NoError(t, ReplaceSlots(ctx, database, []schedule.Slot{{ID: "a", Day: "Mon", Start: "09:00", End: "09:30"}}))

	s, err := Summary(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, len(seedProducts), s.Products)
	assert.Equal(t, 2, s.OutOfStock)
	assert.Equal(t, seedOrderCount, s.Orders)
	assert.Positive(t, s.PendingOrders)
	assert.Positive(t, s.Revenue)
	assert.Equal(t, 1, s.Slots)
}
