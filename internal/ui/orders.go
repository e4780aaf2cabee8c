package ui

import (
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"dashdeck/internal/datatable"
	"dashdeck/internal/model"
	"dashdeck/internal/util"
)

// orderFetcher requests one page of orders. The returned command must answer
// with a model.OrdersLoadedMsg carrying seq.
type orderFetcher func(seq int, q model.OrderQuery) tea.Cmd

type orderSearchTick struct {
	seq int
}

// OrdersModel is the orders screen. Every piece of view state is owned here
// and turned into store queries; the table only shows the page it is given.
type OrdersModel struct {
	table *tableView[model.Order]
	fetch orderFetcher
	lggr  *zap.SugaredLogger

	query    model.OrderQuery
	seq      int
	debounce time.Duration

	searchSeq   int
	searchDirty bool
	dirty       bool
}

func orderColumns() []datatable.Column[model.Order] {
	return []datatable.Column[model.Order]{
		{ID: "id", Header: "Order", Width: 9,
			Value: func(o model.Order) any { return o.ID }},
		{ID: "customer", Header: "Customer", Width: 18,
			Value: func(o model.Order) any { return o.Customer }},
		{ID: "total", Header: "Total", Width: 11,
			Value: func(o model.Order) any { return o.Total },
			Cell:  func(o model.Order) string { return util.FormatMoney(o.Total) }},
		{ID: "status", Header: "Status", Width: 11,
			Value: func(o model.Order) any { return o.Status },
			Cell:  func(o model.Order) string { return renderStatus(o.Status) }},
		{ID: "date", Header: "Date", Width: 12,
			Value: func(o model.Order) any { return o.Date },
			Cell:  func(o model.Order) string { return util.FormatDate(o.Date) }},
	}
}

// NewOrdersModel creates the orders screen.
func NewOrdersModel(fetch orderFetcher, pageSize int, pageSizeOptions []int, debounce time.Duration, prefs TablePrefs, lggr *zap.SugaredLogger) (*OrdersModel, error) {
	if prefs.PageSize > 0 && slices.Contains(pageSizeOptions, prefs.PageSize) {
		pageSize = prefs.PageSize
	}
	m := &OrdersModel{
		fetch:    fetch,
		lggr:     lggr,
		debounce: debounce,
		query:    model.OrderQuery{PageSize: pageSize},
	}

	ctrl, err := datatable.New(datatable.Config[model.Order]{
		Columns:         orderColumns(),
		SearchKey:       "customer",
		PageSizeOptions: pageSizeOptions,
		Search:          datatable.External("", m.setSearch),
		Sort:            datatable.Pinned(datatable.Sort{Column: "date", Desc: true}),
		PageIndex:       datatable.External(0, m.setPageIndex),
		PageSize:        datatable.External(pageSize, m.setPageSize),
		Status: &datatable.Filter{
			Axis: datatable.External("", m.setStatus),
		},
	})
	if err != nil {
		return nil, err
	}

	m.table = newTableView(ctrl, "orders", "Search customer or order...")
	m.table.ApplyPrefs(prefs)
	return m, nil
}

func (m *OrdersModel) setSearch(v string) {
	m.query.Search = v
	m.query.PageIndex = 0
	m.table.ctrl.SyncSearch(v)
	m.table.ctrl.SyncPageIndex(0)
	m.searchDirty = true
}

func (m *OrdersModel) setStatus(v string) {
	m.query.Status = v
	m.query.PageIndex = 0
	m.table.ctrl.SyncStatus(v)
	m.table.ctrl.SyncPageIndex(0)
	m.dirty = true
}

func (m *OrdersModel) setPageIndex(i int) {
	m.query.PageIndex = i
	m.table.ctrl.SyncPageIndex(i)
	m.dirty = true
}

func (m *OrdersModel) setPageSize(n int) {
	m.query.PageSize = n
	m.query.PageIndex = 0
	m.table.ctrl.SyncPageSize(n)
	m.table.ctrl.SyncPageIndex(0)
	m.dirty = true
}

// Init requests the first page.
func (m *OrdersModel) Init() tea.Cmd {
	return m.request()
}

// Query returns the query the screen currently shows.
func (m *OrdersModel) Query() model.OrderQuery {
	return m.query
}

func (m *OrdersModel) request() tea.Cmd {
	m.seq++
	return tea.Batch(m.table.setLoading(true), m.fetch(m.seq, m.query))
}

// SetStatuses replaces the status filter options.
func (m *OrdersModel) SetStatuses(statuses []string) {
	f := m.table.ctrl.Status()
	f.Options = f.Options[:0]
	for _, s := range statuses {
		f.Options = append(f.Options, datatable.Option{Value: s, Label: s})
	}
}

// SetPage installs a loaded page unless a newer request is in flight.
func (m *OrdersModel) SetPage(msg model.OrdersLoadedMsg) bool {
	if msg.Seq != m.seq {
		m.lggr.Debugw("dropping stale order page", "seq", msg.Seq, "want", m.seq)
		return false
	}
	m.table.setLoading(false)
	m.table.ctrl.SetData(msg.Page.Orders)
	m.table.ctrl.SetPageCount(msg.Page.TotalPages)
	m.table.totalRows = msg.Page.TotalRows
	m.table.refresh()
	return true
}

// HandleSearchTick fires the debounced search request.
func (m *OrdersModel) HandleSearchTick(msg orderSearchTick) tea.Cmd {
	if msg.seq != m.searchSeq {
		return nil
	}
	return m.request()
}

// Selected returns the order under the cursor.
func (m *OrdersModel) Selected() (model.Order, bool) {
	return m.table.Selected()
}

// HandleKey routes a key to the table and turns forwarded changes into
// store requests. Search keystrokes are debounced.
func (m *OrdersModel) HandleKey(msg tea.KeyMsg) (tea.Cmd, string) {
	_, info, cmd := m.table.HandleKey(msg)
	cmds := []tea.Cmd{cmd}

	if m.searchDirty {
		m.searchDirty = false
		if m.debounce > 0 {
			m.searchSeq++
			seq := m.searchSeq
			cmds = append(cmds, m.table.setLoading(true), tea.Tick(m.debounce, func(time.Time) tea.Msg {
				return orderSearchTick{seq: seq}
			}))
		} else {
			m.dirty = true
		}
	}
	if m.dirty {
		m.dirty = false
		cmds = append(cmds, m.request())
	}
	return tea.Batch(cmds...), info
}

func (m *OrdersModel) Capturing() bool { return m.table.Capturing() }

func (m *OrdersModel) JumpToTop() { m.table.JumpToTop() }

func (m *OrdersModel) Prefs() TablePrefs { return m.table.Prefs() }

// View renders the orders table.
func (m *OrdersModel) View(width, height int) string {
	return m.table.View(width, height)
}
