package ui

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"dashdeck/internal/db"
	"dashdeck/internal/model"
	"dashdeck/internal/schedule"
)

const queryTimeout = 5 * time.Second

// Options configures the root model.
type Options struct {
	DB              *sql.DB
	Orders          *db.OrderStore
	Logger          *zap.SugaredLogger
	PageSize        int
	PageSizeOptions []int
	SearchDebounce  time.Duration
	// PrefsPath is the YAML file holding UI preferences. Empty keeps them in
	// memory.
	PrefsPath string
}

// Model is the root Bubble Tea model.
type Model struct {
	db     *sql.DB
	lggr   *zap.SugaredLogger
	prefs  *prefsStore
	now    func() time.Time
	screen model.Screen
	gState GState

	width  int
	height int

	error       string
	info        string
	showingHelp bool

	// Screen models
	sidebar       SidebarModel
	home          *HomeModel
	products      *ProductsModel
	orders        *OrdersModel
	schedule      *ScheduleModel
	productDetail *ProductDetailModel
	orderDetail   *OrderDetailModel

	keys      KeyMap
	undoStack []undoAction
	redoStack []undoAction
}

// slotsSaveFailedMsg reports a failed schedule write so the editor can roll
// back to what is stored.
type slotsSaveFailedMsg struct {
	err    error
	label  string
	before []schedule.Slot
}

// New creates a new root model.
func New(opts Options) (Model, error) {
	lggr := opts.Logger
	if lggr == nil {
		lggr = zap.NewNop().Sugar()
	}
	prefs := newPrefsStore(opts.PrefsPath, lggr.Named("prefs"))

	products, err := NewProductsModel(loadProductsCmd(opts.DB), opts.PageSize, opts.PageSizeOptions, prefs.prefs.Products)
	if err != nil {
		return Model{}, fmt.Errorf("failed to create products screen: %w", err)
	}
	orders, err := NewOrdersModel(fetchOrdersCmd(opts.Orders), opts.PageSize, opts.PageSizeOptions, opts.SearchDebounce, prefs.prefs.Orders, lggr.Named("orders"))
	if err != nil {
		return Model{}, fmt.Errorf("failed to create orders screen: %w", err)
	}
	sched := NewScheduleModel(saveSlotsCmd(opts.DB), prefs.prefs.Schedule.Duration, func(minutes int) {
		prefs.update(func(p *UIPreferences) { p.Schedule.Duration = minutes })
	})

	sidebar := NewSidebarModel()
	if prefs.prefs.SidebarHidden {
		sidebar.Toggle()
	}
	sidebar.SetActive(model.ScreenHome)

	return Model{
		db:       opts.DB,
		lggr:     lggr,
		prefs:    prefs,
		now:      time.Now,
		screen:   model.ScreenHome,
		gState:   GStateIdle,
		sidebar:  sidebar,
		home:     &HomeModel{},
		products: products,
		orders:   orders,
		schedule: sched,
		keys:     DefaultKeyMap(),
	}, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		loadSummaryCmd(m.db),
		m.products.Init(),
		loadCategoriesCmd(m.db),
		m.orders.Init(),
		loadOrderStatusesCmd(m.db),
		loadSlotsCmd(m.db),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		return m, tea.Batch(
			m.products.table.updateSpinner(msg),
			m.orders.table.updateSpinner(msg),
		)

	case orderSearchTick:
		return m, m.orders.HandleSearchTick(msg)

	case model.ErrorMsg:
		m.error = msg.Err.Error()
		m.lggr.Errorw("command failed", "err", msg.Err)
		m.products.table.setLoading(false)
		m.orders.table.setLoading(false)
		return m, nil

	case model.SummaryLoadedMsg:
		m.home.SetSummary(msg.Summary)
		return m, nil

	case model.ProductsLoadedMsg:
		if m.products.SetProducts(msg) {
			m.error = ""
		}
		return m, nil

	case model.CategoriesLoadedMsg:
		m.products.SetCategories(msg.Categories)
		return m, nil

	case model.OrdersLoadedMsg:
		if m.orders.SetPage(msg) {
			m.error = ""
		}
		return m, nil

	case model.OrderStatusesLoadedMsg:
		m.orders.SetStatuses(msg.Statuses)
		return m, nil

	case model.SlotsLoadedMsg:
		m.schedule.SetSlots(msg.Slots)
		return m, nil

	case model.SlotsSavedMsg:
		m.pushUndoAction(buildSlotsSaveAction(m.db, msg))
		m.info = msg.Label + " (u to undo)"
		m.error = ""
		return m, loadSummaryCmd(m.db)

	case slotsSaveFailedMsg:
		m.schedule.SetSlots(msg.before)
		m.error = fmt.Sprintf("%s failed: %v", strings.ToLower(msg.label), msg.err)
		m.info = ""
		m.lggr.Errorw("failed to save schedule", "action", msg.label, "err", msg.err)
		return m, nil

	case undoAppliedMsg:
		cmd := m.applyUndoResult(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// The search box gets every key, including q and digits.
	if t := m.currentTable(); t != nil && t.Capturing() {
		return m.handleTableKey(t, msg)
	}

	if key.Matches(msg, m.keys.Help) {
		m.showingHelp = !m.showingHelp
		return m, nil
	}

	if m.showingHelp {
		if msg.String() == "esc" {
			m.showingHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sidebar):
		m.sidebar.Toggle()
		hidden := m.sidebar.Width() == 0
		m.prefs.update(func(p *UIPreferences) { p.SidebarHidden = hidden })
		return m, nil
	case key.Matches(msg, m.keys.Screen):
		n := int(msg.String()[0] - '0')
		if screen, ok := m.sidebar.Screen(n); ok {
			m.switchScreen(screen)
		}
		return m, nil
	}

	// Handle "gg" state machine
	if key.Matches(msg, m.keys.Top) {
		if m.gState == GStateIdle {
			m.gState = GStateFirstG
			return m, nil
		}
		m.gState = GStateIdle
		if t := m.currentTable(); t != nil {
			t.JumpToTop()
		}
		return m, nil
	}
	m.gState = GStateIdle

	switch m.screen {
	case model.ScreenProducts:
		if key.Matches(msg, m.keys.Select) {
			if p, ok := m.products.Selected(); ok {
				m.productDetail = NewProductDetailModel(p)
				m.switchScreen(model.ScreenProductDetail)
			}
			return m, nil
		}
		return m.handleTableKey(m.products, msg)
	case model.ScreenOrders:
		if key.Matches(msg, m.keys.Select) {
			if o, ok := m.orders.Selected(); ok {
				m.orderDetail = NewOrderDetailModel(o)
				m.switchScreen(model.ScreenOrderDetail)
			}
			return m, nil
		}
		return m.handleTableKey(m.orders, msg)
	case model.ScreenProductDetail:
		if key.Matches(msg, m.keys.Back) {
			m.productDetail = nil
			m.switchScreen(model.ScreenProducts)
		}
		return m, nil
	case model.ScreenOrderDetail:
		if key.Matches(msg, m.keys.Back) {
			m.orderDetail = nil
			m.switchScreen(model.ScreenOrders)
		}
		return m, nil
	case model.ScreenSchedule:
		return m.handleScheduleKey(msg)
	}
	return m, nil
}

func (m Model) handleTableKey(t tableScreen, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	before := t.Prefs()
	cmd, info := t.HandleKey(msg)
	if info != "" {
		m.info = info
	}
	if after := t.Prefs(); !tablePrefsEqual(before, after) {
		m.persistTablePrefs(after)
	}
	return m, cmd
}

func (m Model) handleScheduleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Undo):
		if len(m.undoStack) == 0 {
			m.info = "Nothing to undo"
			return m, nil
		}
		cmd := m.undoCmd()
		return m, cmd
	case key.Matches(msg, m.keys.Redo):
		if len(m.redoStack) == 0 {
			m.info = "Nothing to redo"
			return m, nil
		}
		cmd := m.redoCmd()
		return m, cmd
	}

	cmd, info := m.schedule.HandleKey(msg)
	if info != "" {
		m.info = info
	}
	return m, cmd
}

func (m *Model) switchScreen(screen model.Screen) {
	m.screen = screen
	m.sidebar.SetActive(screen)
	m.info = ""
}

func (m *Model) currentTable() tableScreen {
	switch m.screen {
	case model.ScreenProducts:
		return m.products
	case model.ScreenOrders:
		return m.orders
	}
	return nil
}

func (m *Model) persistTablePrefs(prefs TablePrefs) {
	switch m.screen {
	case model.ScreenProducts:
		m.prefs.update(func(p *UIPreferences) { p.Products = prefs })
	case model.ScreenOrders:
		m.prefs.update(func(p *UIPreferences) { p.Orders = prefs })
	}
}

func tablePrefsEqual(a, b TablePrefs) bool {
	return a.SortKey == b.SortKey &&
		a.SortDesc == b.SortDesc &&
		a.ActiveColumn == b.ActiveColumn &&
		a.PageSize == b.PageSize &&
		slices.Equal(a.HiddenColumns, b.HiddenColumns)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if m.showingHelp {
		return RenderFullHelp(m.width, m.height)
	}

	now := m.now()
	breadcrumbParts := []string{m.screen.Title()}
	switch m.screen {
	case model.ScreenProductDetail:
		if m.productDetail != nil {
			breadcrumbParts = append(breadcrumbParts, m.productDetail.product.Name)
		}
	case model.ScreenOrderDetail:
		if m.orderDetail != nil {
			breadcrumbParts = append(breadcrumbParts, m.orderDetail.order.ID)
		}
	}

	header := renderHeader(breadcrumbParts, m.width, now)
	capturing := false
	if t := m.currentTable(); t != nil {
		capturing = t.Capturing()
	}
	footer := RenderHelp(m.screen, capturing, m.width)

	var banners []string
	if m.error != "" {
		banners = append(banners, ErrorStyle.Width(m.width).Render("Error: "+m.error))
	}
	if m.info != "" {
		banners = append(banners, SuccessStyle.Width(m.width).Render(m.info))
	}

	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - len(banners)
	contentHeight = max(1, contentHeight)
	contentWidth := max(20, m.width-m.sidebar.Width())

	var content string
	switch m.screen {
	case model.ScreenHome:
		content = m.home.View(contentWidth, contentHeight)
	case model.ScreenProducts:
		content = m.products.View(contentWidth, contentHeight)
	case model.ScreenOrders:
		content = m.orders.View(contentWidth, contentHeight)
	case model.ScreenSchedule:
		content = m.schedule.View(contentWidth, contentHeight)
	case model.ScreenProductDetail:
		if m.productDetail != nil {
			content = m.productDetail.View(contentWidth, contentHeight, now)
		}
	case model.ScreenOrderDetail:
		if m.orderDetail != nil {
			content = m.orderDetail.View(contentWidth, contentHeight, now)
		}
	}

	// Ensure content fills the available height to anchor footer at bottom
	content = lipgloss.NewStyle().
		Width(contentWidth).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	body := content
	if sidebar := m.sidebar.View(contentHeight); sidebar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}

	parts := []string{header}
	parts = append(parts, banners...)
	parts = append(parts, body, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(breadcrumbParts []string, width int, now time.Time) string {
	// Left side: app name + breadcrumb
	title := HeaderStyle.Render("dashdeck")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	// Right side: current date
	right := BreadcrumbStyle.Render(now.Format("Mon 02 Jan")) + "  "

	padding := max(0, width-TitleStyle.GetHorizontalFrameSize()-lipgloss.Width(left)-lipgloss.Width(right))
	headerContent := left + strings.Repeat(" ", padding) + right
	return TitleStyle.Width(width).Render(headerContent)
}

// Commands

func loadProductsCmd(database *sql.DB) productLoader {
	return func(category string) tea.Cmd {
		return func() tea.Msg {
			products, err := db.ListProducts(database, category)
			if err != nil {
				return model.ErrorMsg{Err: fmt.Errorf("failed to load products: %w", err)}
			}
			return model.ProductsLoadedMsg{Category: category, Products: products}
		}
	}
}

func loadCategoriesCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		categories, err := db.ListCategories(database)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load categories: %w", err)}
		}
		return model.CategoriesLoadedMsg{Categories: categories}
	}
}

func fetchOrdersCmd(store *db.OrderStore) orderFetcher {
	return func(seq int, q model.OrderQuery) tea.Cmd {
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
			defer cancel()
			page, err := store.Query(ctx, q)
			if err != nil {
				return model.ErrorMsg{Err: fmt.Errorf("failed to load orders: %w", err)}
			}
			return model.OrdersLoadedMsg{Seq: seq, Query: q, Page: page}
		}
	}
}

func loadOrderStatusesCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		statuses, err := db.ListOrderStatuses(database)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load order statuses: %w", err)}
		}
		return model.OrderStatusesLoadedMsg{Statuses: statuses}
	}
}

func loadSlotsCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		slots, err := db.ListSlots(ctx, database)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load schedule: %w", err)}
		}
		return model.SlotsLoadedMsg{Slots: slots}
	}
}

func saveSlotsCmd(database *sql.DB) slotSaver {
	return func(label string, before, after []schedule.Slot) tea.Cmd {
		return func() tea.Msg {
			if err := replaceSlots(database, after); err != nil {
				return slotsSaveFailedMsg{err: err, label: label, before: before}
			}
			return model.SlotsSavedMsg{Label: label, Before: before, After: after}
		}
	}
}

func loadSummaryCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		summary, err := db.Summary(ctx, database)
		if err != nil {
			return model.ErrorMsg{Err: fmt.Errorf("failed to load summary: %w", err)}
		}
		return model.SummaryLoadedMsg{Summary: summary}
	}
}
