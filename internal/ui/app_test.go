package ui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dashdeck/internal/db"
	"dashdeck/internal/model"
)

func newTestApp(t *testing.T) Model {
	t.Helper()
	dir := t.TempDir()
	database, err := db.Open(filepath.Join(dir, "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	lggr := zap.NewNop().Sugar()
	orders, err := db.NewOrderStore(database, 16, lggr)
	require.NoError(t, err)

	m, err := New(Options{
		DB:              database,
		Orders:          orders,
		Logger:          lggr,
		PageSize:        5,
		PageSizeOptions: []int{5, 10, 20},
		PrefsPath:       filepath.Join(dir, "ui_prefs.yaml"),
	})
	require.NoError(t, err)
	m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return run(t, next.(Model), m.Init())
}

// run executes cmd and feeds every resulting message back into m. Spinner
// ticks are dropped so loading never loops.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case nil, spinner.TickMsg:
		return m
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(t, m, c)
		}
		return m
	default:
		next, c := m.Update(msg)
		return run(t, next.(Model), c)
	}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(k)
		m = run(t, next.(Model), cmd)
	}
	return m
}

func TestAppInitLoadsEveryScreen(t *testing.T) {
	m := newTestApp(t)

	assert.Empty(t, m.error)
	require.NotNil(t, m.home.summary)
	assert.Equal(t, 16, m.home.summary.Products)
	assert.Len(t, m.products.table.view.Rows, 5)
	assert.Len(t, m.orders.table.view.Rows, 5)
	assert.Equal(t, 10, m.orders.table.view.PageCount)
	assert.Len(t, m.products.table.ctrl.Department().Options, 3)
	assert.NotEmpty(t, m.orders.table.ctrl.Status().Options)
	assert.True(t, m.schedule.loaded)

	assert.Contains(t, m.View(), "dashdeck")
	assert.Contains(t, m.View(), "Fri 01 Mar")
}

func TestAppScreenNavigation(t *testing.T) {
	m := newTestApp(t)
	assert.Equal(t, model.ScreenHome, m.screen)

	m = press(t, m, runes("2"))
	assert.Equal(t, model.ScreenProducts, m.screen)
	assert.Contains(t, m.View(), "Laptop")

	m = press(t, m, enterKey)
	require.Equal(t, model.ScreenProductDetail, m.screen)
	assert.Equal(t, "Laptop", m.productDetail.product.Name)
	assert.Contains(t, m.View(), "Products › Laptop")

	m = press(t, m, runes("b"))
	assert.Equal(t, model.ScreenProducts, m.screen)
	assert.Nil(t, m.productDetail)

	m = press(t, m, runes("3"), enterKey)
	require.Equal(t, model.ScreenOrderDetail, m.screen)
	assert.Equal(t, model.ScreenOrders, m.sidebar.active)

	m = press(t, m, escKey, runes("4"))
	assert.Equal(t, model.ScreenSchedule, m.screen)
}

func TestAppOrdersPaging(t *testing.T) {
	m := newTestApp(t)
	first := m.orders.table.view.Rows[0].ID

	m = press(t, m, runes("3"), runes("]"))
	assert.Equal(t, 1, m.orders.Query().PageIndex)
	assert.Equal(t, 1, m.orders.table.view.PageIndex)
	assert.NotEqual(t, first, m.orders.table.view.Rows[0].ID)

	m = press(t, m, runes("f"))
	assert.Equal(t, 0, m.orders.Query().PageIndex)
	status := m.orders.Query().Status
	require.NotEmpty(t, status)
	for _, o := range m.orders.table.view.Rows {
		assert.Equal(t, status, o.Status)
	}
}

func TestAppPersistsTablePrefs(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, runes("2"), tea.KeyMsg{Type: tea.KeyTab}, runes("S"))

	assert.Equal(t, "price", m.prefs.prefs.Products.SortKey)
	assert.True(t, m.prefs.prefs.Products.SortDesc)

	reloaded := newPrefsStore(m.prefs.path, zap.NewNop().Sugar())
	assert.Equal(t, m.prefs.prefs.Products, reloaded.prefs.Products)
}

func TestAppSidebarToggle(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlB})
	assert.Equal(t, 0, m.sidebar.Width())
	assert.True(t, m.prefs.prefs.SidebarHidden)
	assert.NotContains(t, m.View(), "Menu")
}

func TestAppScheduleUndoRedo(t *testing.T) {
	m := newTestApp(t)
	m = press(t, m, runes("4"))

	for i := 0; i < 18; i++ {
		m = press(t, m, runes("j"))
	}
	m = press(t, m, enterKey, enterKey, runes("a"))
	assert.Equal(t, "Slot added (u to undo)", m.info)
	require.Len(t, m.schedule.Slots(), 1)
	assert.Equal(t, 1, m.home.summary.Slots)

	stored, err := db.ListSlots(context.Background(), m.db)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "09:00", stored[0].Start)

	m = press(t, m, runes("u"))
	assert.Equal(t, "Undid: slot added", m.info)
	assert.Empty(t, m.schedule.Slots())
	assert.Equal(t, 0, m.home.summary.Slots)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "Redid: slot added", m.info)
	assert.Len(t, m.schedule.Slots(), 1)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, "Nothing to redo", m.info)
}

func TestAppErrorClearsLoading(t *testing.T) {
	m := newTestApp(t)
	m.orders.table.setLoading(true)

	next, _ := m.Update(model.ErrorMsg{Err: assert.AnError})
	m = next.(Model)
	assert.Equal(t, assert.AnError.Error(), m.error)
	assert.False(t, m.orders.table.loading)
}

func TestAppQuit(t *testing.T) {
	m := newTestApp(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
