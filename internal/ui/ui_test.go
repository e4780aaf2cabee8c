package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashdeck/internal/model"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, handle func(tea.KeyMsg) (tea.Cmd, string), text string) {
	t.Helper()
	for _, r := range text {
		handle(runes(string(r)))
	}
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func testProducts(n int) []model.Product {
	categories := []string{"Electronics", "Office"}
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	products := make([]model.Product, n)
	for i := range products {
		products[i] = model.Product{
			ID:       string(rune('a' + i)),
			Name:     string(rune('A'+i)) + "-item",
			Price:    float64(10 + i),
			Category: categories[i%2],
			Stock:    i,
			Status:   "Active",
			AddedOn:  base.AddDate(0, 0, i),
		}
	}
	return products
}

type fetchRecorder struct {
	queries []model.OrderQuery
	seqs    []int
}

func (f *fetchRecorder) fetch(seq int, q model.OrderQuery) tea.Cmd {
	f.queries = append(f.queries, q)
	f.seqs = append(f.seqs, seq)
	return nil
}

func (f *fetchRecorder) last() model.OrderQuery {
	return f.queries[len(f.queries)-1]
}

func newTestOrders(t *testing.T, debounce time.Duration) (*OrdersModel, *fetchRecorder) {
	t.Helper()
	rec := &fetchRecorder{}
	m, err := NewOrdersModel(rec.fetch, 10, []int{5, 10, 20}, debounce, TablePrefs{}, zap.NewNop().Sugar())
	require.NoError(t, err)
	m.Init()
	return m, rec
}

func orderPage(seq int, q model.OrderQuery, totalPages int) model.OrdersLoadedMsg {
	return model.OrdersLoadedMsg{
		Seq:   seq,
		Query: q,
		Page: model.OrderPage{
			Orders:     []model.Order{{ID: "ORD-001", Customer: "Jane", Total: 10, Status: "Pending"}},
			TotalRows:  totalPages * q.PageSize,
			TotalPages: totalPages,
		},
	}
}
