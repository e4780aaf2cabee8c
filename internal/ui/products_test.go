package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashdeck/internal/model"
)

type loadRecorder struct {
	categories []string
}

func (l *loadRecorder) load(category string) tea.Cmd {
	l.categories = append(l.categories, category)
	return nil
}

func newTestProducts(t *testing.T, prefs TablePrefs) (*ProductsModel, *loadRecorder) {
	t.Helper()
	rec := &loadRecorder{}
	m, err := NewProductsModel(rec.load, 5, []int{5, 10, 20}, prefs)
	require.NoError(t, err)
	m.Init()
	require.True(t, m.SetProducts(model.ProductsLoadedMsg{Products: testProducts(12)}))
	return m, rec
}

func TestProductsInternalPaging(t *testing.T) {
	m, _ := newTestProducts(t, TablePrefs{})
	assert.Equal(t, 3, m.table.view.PageCount)
	assert.Len(t, m.table.view.Rows, 5)

	m.HandleKey(runes("]"))
	assert.Equal(t, 1, m.table.view.PageIndex)
	assert.Equal(t, "F-item", m.table.view.Rows[0].Name)

	m.HandleKey(runes("}"))
	assert.Equal(t, 2, m.table.view.PageIndex)
	assert.Len(t, m.table.view.Rows, 2)

	_, info := m.HandleKey(runes("+"))
	assert.Equal(t, "Rows per page: 10", info)
	assert.Equal(t, 0, m.table.view.PageIndex)
	assert.Equal(t, 2, m.table.view.PageCount)
}

func TestProductsSearchFiltersLocally(t *testing.T) {
	m, rec := newTestProducts(t, TablePrefs{})
	m.HandleKey(runes("]"))

	m.HandleKey(runes("/"))
	typeText(t, m.HandleKey, "c-it")
	assert.Equal(t, 0, m.table.view.PageIndex)
	require.Len(t, m.table.view.Rows, 1)
	assert.Equal(t, "C-item", m.table.view.Rows[0].Name)
	assert.Len(t, rec.categories, 1, "search never goes to the store")

	m.HandleKey(enterKey)
	assert.False(t, m.Capturing())
	assert.Equal(t, "c-it", m.table.ctrl.SearchText())
}

func TestProductsSortAndRecency(t *testing.T) {
	m, _ := newTestProducts(t, TablePrefs{})

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "price", m.table.activeColumn)
	_, info := m.HandleKey(runes("S"))
	assert.Equal(t, "Sorted PRICE descending", info)
	assert.Equal(t, "L-item", m.table.view.Rows[0].Name)

	_, info = m.HandleKey(runes("o"))
	assert.Equal(t, "Sort by: Newest", info)
	assert.Equal(t, "L-item", m.table.view.Rows[0].Name)

	_, info = m.HandleKey(runes("o"))
	assert.Equal(t, "Sort by: Oldest", info)
	assert.Equal(t, "A-item", m.table.view.Rows[0].Name)

	assert.Equal(t, TablePrefs{SortKey: "added", ActiveColumn: "price", PageSize: 5}, m.Prefs())
}

func TestProductsDepartmentReloads(t *testing.T) {
	m, rec := newTestProducts(t, TablePrefs{})
	m.SetCategories([]string{"Electronics", "Office"})

	_, info := m.HandleKey(runes("f"))
	assert.Equal(t, "Filter: Electronics", info)
	assert.Equal(t, "Electronics", m.Category())
	assert.Equal(t, []string{"", "Electronics"}, rec.categories)

	assert.False(t, m.SetProducts(model.ProductsLoadedMsg{Category: "", Products: testProducts(3)}),
		"rows for the previous department are dropped")
	assert.True(t, m.SetProducts(model.ProductsLoadedMsg{Category: "Electronics", Products: testProducts(2)[:1]}))
	assert.Len(t, m.table.view.Rows, 1)

	m.HandleKey(runes("F"))
	assert.Equal(t, "", m.Category())
	assert.Equal(t, []string{"", "Electronics", ""}, rec.categories)
}

func TestProductsNewRowsStartOnFirstPage(t *testing.T) {
	m, _ := newTestProducts(t, TablePrefs{})
	m.SetCategories([]string{"Electronics"})
	m.HandleKey(runes("}"))
	require.Equal(t, 2, m.table.view.PageIndex)

	m.HandleKey(runes("f"))
	require.True(t, m.SetProducts(model.ProductsLoadedMsg{Category: "Electronics", Products: testProducts(2)}))
	m.HandleKey(runes("F"))
	require.True(t, m.SetProducts(model.ProductsLoadedMsg{Products: testProducts(12)}))

	assert.Equal(t, 0, m.table.view.PageIndex)
	assert.Equal(t, 0, m.table.ctrl.Derive().PageIndex)
	assert.Equal(t, "A-item", m.table.view.Rows[0].Name)
}

func TestProductsPrefsRestored(t *testing.T) {
	m, _ := newTestProducts(t, TablePrefs{
		SortKey:       "name",
		SortDesc:      true,
		HiddenColumns: []string{"stock"},
		ActiveColumn:  "category",
		PageSize:      10,
	})

	assert.Equal(t, 10, m.table.view.PageSize)
	assert.Equal(t, "L-item", m.table.view.Rows[0].Name)
	assert.Equal(t, "category", m.table.activeColumn)
	for _, c := range m.table.ctrl.VisibleColumns() {
		assert.NotEqual(t, "stock", c.ID)
	}
}

func TestProductsHideColumns(t *testing.T) {
	m, _ := newTestProducts(t, TablePrefs{})
	for i := 0; i < 5; i++ {
		_, info := m.HandleKey(runes("c"))
		assert.Equal(t, "Column hidden", info)
	}
	_, info := m.HandleKey(runes("c"))
	assert.Equal(t, "Cannot hide last visible column", info)
	assert.Len(t, m.table.ctrl.VisibleColumns(), 1)

	m.HandleKey(runes("C"))
	assert.Len(t, m.table.ctrl.VisibleColumns(), 6)
}
