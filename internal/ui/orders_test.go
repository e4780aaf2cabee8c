package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashdeck/internal/model"
)

func TestOrdersSearchForwardsEveryKeystroke(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	require.Len(t, rec.queries, 1)

	m.HandleKey(runes("/"))
	require.True(t, m.Capturing())
	typeText(t, m.HandleKey, "jan")

	require.Len(t, rec.queries, 4)
	assert.Equal(t, "j", rec.queries[1].Search)
	assert.Equal(t, "ja", rec.queries[2].Search)
	assert.Equal(t, "jan", rec.queries[3].Search)
	assert.Equal(t, "jan", m.table.ctrl.SearchText())
	assert.Equal(t, "jan", m.Query().Search)
}

func TestOrdersSearchDebounce(t *testing.T) {
	m, rec := newTestOrders(t, 200*time.Millisecond)

	m.HandleKey(runes("/"))
	typeText(t, m.HandleKey, "ja")
	require.Len(t, rec.queries, 1, "typing waits for the debounce tick")

	assert.Nil(t, m.HandleSearchTick(orderSearchTick{seq: 1}), "superseded tick is ignored")
	require.Len(t, rec.queries, 1)

	m.HandleSearchTick(orderSearchTick{seq: 2})
	require.Len(t, rec.queries, 2)
	assert.Equal(t, "ja", rec.last().Search)
}

func TestOrdersEscClearsSearch(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	m.HandleKey(runes("/"))
	typeText(t, m.HandleKey, "x")
	m.HandleKey(escKey)

	assert.False(t, m.Capturing())
	assert.Equal(t, "", rec.last().Search)
	assert.Equal(t, "", m.Query().Search)
}

func TestOrdersPageNavigation(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	require.True(t, m.SetPage(orderPage(1, m.Query(), 5)))

	m.HandleKey(runes("]"))
	assert.Equal(t, 1, rec.last().PageIndex)
	assert.Equal(t, 1, m.Query().PageIndex)

	// paging is blocked while the page loads
	m.HandleKey(runes("]"))
	assert.Equal(t, 1, rec.last().PageIndex)

	require.True(t, m.SetPage(orderPage(2, m.Query(), 5)))
	m.HandleKey(runes("}"))
	assert.Equal(t, 4, rec.last().PageIndex)
	require.True(t, m.SetPage(orderPage(3, m.Query(), 5)))

	before := len(rec.queries)
	m.HandleKey(runes("]"))
	assert.Len(t, rec.queries, before, "next is disabled on the last page")

	m.HandleKey(runes("{"))
	assert.Equal(t, 0, rec.last().PageIndex)
}

func TestOrdersStalePageDropped(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	m.HandleKey(runes("/"))
	typeText(t, m.HandleKey, "ab")
	require.Equal(t, []int{1, 2, 3}, rec.seqs)

	assert.False(t, m.SetPage(orderPage(2, rec.queries[1], 3)))
	assert.True(t, m.SetPage(orderPage(3, rec.queries[2], 1)))
	assert.Equal(t, 1, m.table.view.PageCount)
}

func TestOrdersStatusFilterResetsPage(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	m.SetStatuses([]string{"Completed", "Pending"})
	require.True(t, m.SetPage(orderPage(1, m.Query(), 5)))
	m.HandleKey(runes("]"))
	require.True(t, m.SetPage(orderPage(2, m.Query(), 5)))

	_, info := m.HandleKey(runes("f"))
	assert.Equal(t, "Filter: Completed", info)
	assert.Equal(t, model.OrderQuery{Status: "Completed", PageIndex: 0, PageSize: 10}, rec.last())

	m.HandleKey(runes("F"))
	assert.Equal(t, "", rec.last().Status)
}

func TestOrdersPageSizeForwarded(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	require.True(t, m.SetPage(orderPage(1, m.Query(), 5)))

	_, info := m.HandleKey(runes("+"))
	assert.Equal(t, "Rows per page: 20", info)
	assert.Equal(t, 20, rec.last().PageSize)
	assert.Equal(t, 0, rec.last().PageIndex)
}

func TestOrdersSortIsPinned(t *testing.T) {
	m, rec := newTestOrders(t, 0)
	_, info := m.HandleKey(runes("s"))
	assert.Equal(t, "Sorting unavailable", info)
	assert.Len(t, rec.queries, 1)
}
