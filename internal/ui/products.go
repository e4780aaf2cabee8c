package ui

import (
	"slices"

	tea "github.com/charmbracelet/bubbletea"

	"dashdeck/internal/datatable"
	"dashdeck/internal/model"
	"dashdeck/internal/util"
)

// productLoader fetches the products of one category ("" for all).
type productLoader func(category string) tea.Cmd

// ProductsModel is the products screen. Search, sort and paging run in the
// table; the department filter is a category query against the store.
type ProductsModel struct {
	table    *tableView[model.Product]
	load     productLoader
	category string
	reload   bool
}

func productColumns() []datatable.Column[model.Product] {
	return []datatable.Column[model.Product]{
		{ID: "name", Header: "Name", Width: 18,
			Value: func(p model.Product) any { return p.Name }},
		{ID: "price", Header: "Price", Width: 10,
			Value: func(p model.Product) any { return p.Price },
			Cell:  func(p model.Product) string { return util.FormatMoney(p.Price) }},
		{ID: "category", Header: "Category", Width: 12,
			Value: func(p model.Product) any { return p.Category }},
		{ID: "stock", Header: "Stock", Width: 7,
			Value: func(p model.Product) any { return p.Stock },
			Cell:  func(p model.Product) string { return util.FormatCount(p.Stock) }},
		{ID: "status", Header: "Status", Width: 12,
			Value: func(p model.Product) any { return p.Status },
			Cell:  func(p model.Product) string { return renderStatus(p.Status) }},
		{ID: "added", Header: "Added", Width: 12,
			Value: func(p model.Product) any { return p.AddedOn },
			Cell:  func(p model.Product) string { return util.FormatDate(p.AddedOn) }},
	}
}

// NewProductsModel creates the products screen.
func NewProductsModel(load productLoader, pageSize int, pageSizeOptions []int, prefs TablePrefs) (*ProductsModel, error) {
	m := &ProductsModel{load: load}

	if prefs.PageSize > 0 && slices.Contains(pageSizeOptions, prefs.PageSize) {
		pageSize = prefs.PageSize
	}

	ctrl, err := datatable.New(datatable.Config[model.Product]{
		Columns:         productColumns(),
		SearchKey:       "name",
		RecencyColumn:   "added",
		PageSizeOptions: pageSizeOptions,
		Search:          datatable.Internal(""),
		Sort:            datatable.Internal(datatable.Sort{}),
		PageIndex:       datatable.Internal(0),
		PageSize:        datatable.Internal(pageSize),
		Department: &datatable.Filter{
			Axis: datatable.External("", m.setCategory),
		},
	})
	if err != nil {
		return nil, err
	}

	m.table = newTableView(ctrl, "products", "Search products...")
	m.table.ApplyPrefs(prefs)
	return m, nil
}

func (m *ProductsModel) setCategory(category string) {
	m.category = category
	m.table.ctrl.SyncDepartment(category)
	m.reload = true
}

// Init starts the first load.
func (m *ProductsModel) Init() tea.Cmd {
	return tea.Batch(m.table.setLoading(true), m.load(m.category))
}

// Category returns the selected department.
func (m *ProductsModel) Category() string {
	return m.category
}

// SetCategories replaces the department filter options.
func (m *ProductsModel) SetCategories(categories []string) {
	f := m.table.ctrl.Department()
	f.Options = f.Options[:0]
	for _, c := range categories {
		f.Options = append(f.Options, datatable.Option{Value: c, Label: c})
	}
}

// SetProducts installs loaded rows. Rows for a category that is no longer
// selected are ignored.
func (m *ProductsModel) SetProducts(msg model.ProductsLoadedMsg) bool {
	if msg.Category != m.category {
		return false
	}
	m.table.setLoading(false)
	m.table.ctrl.SetData(msg.Products)
	m.table.refresh()
	return true
}

// Selected returns the product under the cursor.
func (m *ProductsModel) Selected() (model.Product, bool) {
	return m.table.Selected()
}

// HandleKey routes a key to the table and reloads when the department
// changed.
func (m *ProductsModel) HandleKey(msg tea.KeyMsg) (tea.Cmd, string) {
	_, info, cmd := m.table.HandleKey(msg)
	if !m.reload {
		return cmd, info
	}
	m.reload = false
	return tea.Batch(cmd, m.table.setLoading(true), m.load(m.category)), info
}

func (m *ProductsModel) Capturing() bool { return m.table.Capturing() }

func (m *ProductsModel) JumpToTop() { m.table.JumpToTop() }

func (m *ProductsModel) Prefs() TablePrefs { return m.table.Prefs() }

// View renders the products table.
func (m *ProductsModel) View(width, height int) string {
	return m.table.View(width, height)
}
