// Package datatable derives the visible page of a table from raw rows and
// view state (search, filters, sort, page index, page size). Each piece of
// state is owned either by the controller or by the caller; caller-owned
// changes are routed to callbacks and the caller re-supplies rows.
package datatable

import (
	"errors"
	"fmt"
	"slices"
)

const (
	// DefaultPageSize is used when no positive page size is configured.
	DefaultPageSize = 10

	defaultStatusPlaceholder     = "All Status"
	defaultDepartmentPlaceholder = "All Department"
)

// DefaultPageSizeOptions are the rows-per-page choices offered by default.
var DefaultPageSizeOptions = []int{5, 10, 20, 30, 40, 50}

// Config configures a Controller.
type Config[T any] struct {
	Columns []Column[T]

	// SearchKey is the column the search box filters on.
	SearchKey string
	// RecencyColumn is the column the newest/oldest shortcut sorts by.
	// The shortcut is unavailable when it is empty.
	RecencyColumn string

	DisableSorting    bool
	DisableFiltering  bool
	DisablePagination bool

	PageSizeOptions []int

	Search    Axis[string]
	Sort      Axis[Sort]
	PageIndex Axis[int]
	PageSize  Axis[int]

	// PageCount is a caller-supplied page total. Zero means computed.
	PageCount int

	Status     *Filter
	Department *Filter
}

// View is the derived state a table renders.
type View[T any] struct {
	Rows      []T
	Headers   []Header
	Search    string
	Sort      Sort
	PageIndex int
	PageSize  int
	PageCount int
	// TotalRows counts rows after filtering, before pagination.
	TotalRows int
	Pages     []int
	Nav       Nav
}

// Controller owns the view state of one table instance.
type Controller[T any] struct {
	columns []Column[T]
	hidden  map[string]bool

	searchKey     string
	recencyColumn string

	sorting   bool
	filtering bool
	paging    bool

	pageSizeOptions []int

	rows      []T
	pageCount int

	search    Axis[string]
	sort      Axis[Sort]
	pageIndex Axis[int]
	pageSize  Axis[int]

	status     *Filter
	department *Filter
}

// New validates cfg and returns a controller with no rows.
func New[T any](cfg Config[T]) (*Controller[T], error) {
	if len(cfg.Columns) == 0 {
		return nil, errors.New("datatable: at least one column is required")
	}
	seen := make(map[string]bool, len(cfg.Columns))
	for _, col := range cfg.Columns {
		if col.ID == "" {
			return nil, errors.New("datatable: column id must not be empty")
		}
		if seen[col.ID] {
			return nil, fmt.Errorf("datatable: duplicate column id %q", col.ID)
		}
		seen[col.ID] = true
	}
	if cfg.SearchKey != "" && !seen[cfg.SearchKey] {
		return nil, fmt.Errorf("datatable: unknown search column %q", cfg.SearchKey)
	}
	if cfg.RecencyColumn != "" && !seen[cfg.RecencyColumn] {
		return nil, fmt.Errorf("datatable: unknown recency column %q", cfg.RecencyColumn)
	}
	if s := cfg.Sort.Value(); !s.IsZero() && !seen[s.Column] {
		return nil, fmt.Errorf("datatable: unknown sort column %q", s.Column)
	}
	if cfg.PageSize.Value() < 0 {
		return nil, fmt.Errorf("datatable: page size must be positive, got %d", cfg.PageSize.Value())
	}
	if cfg.Status != nil && cfg.Status.Axis.owner != ownedExternally {
		return nil, errors.New("datatable: status filter must be externally owned")
	}
	if cfg.Department != nil && cfg.Department.Axis.owner != ownedExternally {
		return nil, errors.New("datatable: department filter must be externally owned")
	}

	pageSize := cfg.PageSize
	if pageSize.Value() == 0 {
		pageSize.value = DefaultPageSize
	}
	options := cfg.PageSizeOptions
	if len(options) == 0 {
		options = DefaultPageSizeOptions
	}
	if cfg.Status != nil && cfg.Status.Placeholder == "" {
		cfg.Status.Placeholder = defaultStatusPlaceholder
	}
	if cfg.Department != nil && cfg.Department.Placeholder == "" {
		cfg.Department.Placeholder = defaultDepartmentPlaceholder
	}

	return &Controller[T]{
		columns:         slices.Clone(cfg.Columns),
		hidden:          make(map[string]bool),
		searchKey:       cfg.SearchKey,
		recencyColumn:   cfg.RecencyColumn,
		sorting:         !cfg.DisableSorting,
		filtering:       !cfg.DisableFiltering,
		paging:          !cfg.DisablePagination,
		pageSizeOptions: slices.Clone(options),
		pageCount:       cfg.PageCount,
		search:          cfg.Search,
		sort:            cfg.Sort,
		pageIndex:       cfg.PageIndex,
		pageSize:        pageSize,
		status:          cfg.Status,
		department:      cfg.Department,
	}, nil
}

// SetData replaces the row collection and returns an internally owned page
// index to the first page. Rows are never mutated.
func (c *Controller[T]) SetData(rows []T) {
	c.rows = rows
	c.resetPage()
}

// SetPageCount sets the caller-supplied page total; zero means computed.
func (c *Controller[T]) SetPageCount(n int) {
	c.pageCount = max(0, n)
}

// SyncSearch stores the caller's search text for an external search axis.
func (c *Controller[T]) SyncSearch(v string) { c.search.sync(v) }

// SyncSort stores the caller's sort for an external or pinned sort axis.
func (c *Controller[T]) SyncSort(s Sort) { c.sort.sync(s) }

// SyncPageIndex stores the caller's page index.
func (c *Controller[T]) SyncPageIndex(i int) { c.pageIndex.sync(i) }

// SyncPageSize stores the caller's page size.
func (c *Controller[T]) SyncPageSize(n int) { c.pageSize.sync(n) }

// SyncStatus stores the caller's status filter value.
func (c *Controller[T]) SyncStatus(v string) {
	if c.status != nil {
		c.status.Axis.sync(v)
	}
}

// SyncDepartment stores the caller's department filter value.
func (c *Controller[T]) SyncDepartment(v string) {
	if c.department != nil {
		c.department.Axis.sync(v)
	}
}

// Columns returns all columns in order, hidden ones included.
func (c *Controller[T]) Columns() []Column[T] {
	return c.columns
}

// Column returns the column with the given id.
func (c *Controller[T]) Column(id string) (Column[T], bool) {
	for _, col := range c.columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column[T]{}, false
}

// VisibleColumns returns the columns that are not hidden.
func (c *Controller[T]) VisibleColumns() []Column[T] {
	cols := make([]Column[T], 0, len(c.columns))
	for _, col := range c.columns {
		if !c.hidden[col.ID] {
			cols = append(cols, col)
		}
	}
	return cols
}

// HideColumn hides a column. The last visible column cannot be hidden.
func (c *Controller[T]) HideColumn(id string) bool {
	if _, ok := c.Column(id); !ok || c.hidden[id] {
		return false
	}
	if len(c.VisibleColumns()) <= 1 {
		return false
	}
	c.hidden[id] = true
	return true
}

// ShowAllColumns clears every hidden flag.
func (c *Controller[T]) ShowAllColumns() {
	clear(c.hidden)
}

// HiddenColumns returns the ids of hidden columns in column order.
func (c *Controller[T]) HiddenColumns() []string {
	var ids []string
	for _, col := range c.columns {
		if c.hidden[col.ID] {
			ids = append(ids, col.ID)
		}
	}
	return ids
}

// SearchKey returns the searchable column id.
func (c *Controller[T]) SearchKey() string {
	return c.searchKey
}

// SearchText returns the current search box value.
func (c *Controller[T]) SearchText() string {
	return c.search.Value()
}

// SearchAvailable reports whether the search box is offered.
func (c *Controller[T]) SearchAvailable() bool {
	return c.searchKey != "" && (c.filtering || c.search.owner == ownedExternally)
}

// SetSearchText filters locally when search is internal, or forwards value
// unchanged to the caller when it is external.
func (c *Controller[T]) SetSearchText(value string) bool {
	switch c.search.owner {
	case ownedExternally:
		return c.search.set(value)
	case ownedInternally:
		if c.searchKey == "" || !c.filtering {
			return false
		}
		c.search.set(value)
		c.resetPage()
		return true
	default:
		return false
	}
}

// Status returns the status filter, or nil when not configured.
func (c *Controller[T]) Status() *Filter {
	return c.status
}

// Department returns the department filter, or nil when not configured.
func (c *Controller[T]) Department() *Filter {
	return c.department
}

// SetStatusFilter forwards value to the caller's status callback.
func (c *Controller[T]) SetStatusFilter(value string) bool {
	if c.status == nil {
		return false
	}
	return c.status.Axis.set(value)
}

// SetDepartmentFilter forwards value to the caller's department callback.
func (c *Controller[T]) SetDepartmentFilter(value string) bool {
	if c.department == nil {
		return false
	}
	return c.department.Axis.set(value)
}

// SortAvailable reports whether the table may change its own sort order.
func (c *Controller[T]) SortAvailable() bool {
	return c.sorting && c.sort.owner == ownedInternally
}

// CurrentSort returns the active sort key.
func (c *Controller[T]) CurrentSort() Sort {
	if !c.sorting {
		return Sort{}
	}
	return c.sort.Value()
}

// SetSort replaces the single active sort key.
func (c *Controller[T]) SetSort(columnID string, desc bool) bool {
	if !c.SortAvailable() {
		return false
	}
	if _, ok := c.Column(columnID); !ok {
		return false
	}
	return c.sort.set(Sort{Column: columnID, Desc: desc})
}

// ClearSort removes the active sort key.
func (c *Controller[T]) ClearSort() bool {
	if !c.SortAvailable() {
		return false
	}
	return c.sort.set(Sort{})
}

// RecencyAvailable reports whether the newest/oldest shortcut is offered.
func (c *Controller[T]) RecencyAvailable() bool {
	return c.recencyColumn != "" && c.SortAvailable()
}

// SortByRecency sorts the designated recency column, newest first when
// newest is true.
func (c *Controller[T]) SortByRecency(newest bool) bool {
	if !c.RecencyAvailable() {
		return false
	}
	return c.SetSort(c.recencyColumn, newest)
}

// Recency reports the shortcut state when the recency column is sorted.
func (c *Controller[T]) Recency() (newest bool, ok bool) {
	s := c.CurrentSort()
	if c.recencyColumn == "" || s.Column != c.recencyColumn {
		return false, false
	}
	return s.Desc, true
}

// PaginationEnabled reports whether the table pages its rows.
func (c *Controller[T]) PaginationEnabled() bool {
	return c.paging
}

// PageSizeOptions returns the rows-per-page choices.
func (c *Controller[T]) PageSizeOptions() []int {
	return c.pageSizeOptions
}

// PageSize returns the effective page size.
func (c *Controller[T]) PageSize() int {
	if n := c.pageSize.Value(); n > 0 {
		return n
	}
	return DefaultPageSize
}

// SetPageIndex forwards index unvalidated when paging is external, or
// stores it clamped to the available pages when internal.
func (c *Controller[T]) SetPageIndex(index int) bool {
	switch c.pageIndex.owner {
	case ownedExternally:
		return c.pageIndex.set(index)
	case ownedInternally:
		count := c.currentPageCount(len(c.filtered()))
		return c.pageIndex.set(clamp(index, 0, count-1))
	default:
		return false
	}
}

// SetPageSize forwards size when external, or stores it and returns to
// the first page when internal.
func (c *Controller[T]) SetPageSize(size int) bool {
	switch c.pageSize.owner {
	case ownedExternally:
		return c.pageSize.set(size)
	case ownedInternally:
		if size <= 0 {
			return false
		}
		c.pageSize.set(size)
		c.resetPage()
		return true
	default:
		return false
	}
}

// FirstPage moves to page 0 unless already there.
func (c *Controller[T]) FirstPage() bool {
	index, count := c.position()
	if !Navigation(index, count).First {
		return false
	}
	return c.SetPageIndex(0)
}

// PrevPage moves back one page.
func (c *Controller[T]) PrevPage() bool {
	index, count := c.position()
	if !Navigation(index, count).Prev {
		return false
	}
	return c.SetPageIndex(index - 1)
}

// NextPage moves forward one page.
func (c *Controller[T]) NextPage() bool {
	index, count := c.position()
	if !Navigation(index, count).Next {
		return false
	}
	return c.SetPageIndex(index + 1)
}

// LastPage moves to the final page.
func (c *Controller[T]) LastPage() bool {
	index, count := c.position()
	if !Navigation(index, count).Last {
		return false
	}
	return c.SetPageIndex(count - 1)
}

// Derive computes the visible rows and page metadata from the current
// inputs. Same inputs always give the same view.
func (c *Controller[T]) Derive() View[T] {
	rows := c.filtered()
	total := len(rows)
	count := c.currentPageCount(total)
	index := c.currentPageIndex(count)
	size := c.PageSize()

	visible := rows
	if c.paging && c.pageIndex.owner == ownedInternally {
		start := min(index*size, total)
		end := min(start+size, total)
		visible = rows[start:end]
	}

	return View[T]{
		Rows:      visible,
		Headers:   c.headers(),
		Search:    c.search.Value(),
		Sort:      c.CurrentSort(),
		PageIndex: index,
		PageSize:  size,
		PageCount: count,
		TotalRows: total,
		Pages:     PageWindow(index, count),
		Nav:       Navigation(index, count),
	}
}

// filtered applies the internal search filter and sort.
func (c *Controller[T]) filtered() []T {
	rows := c.rows
	if c.filtering && c.search.owner == ownedInternally && c.searchKey != "" && c.search.Value() != "" {
		col, _ := c.Column(c.searchKey)
		needle := c.search.Value()
		matched := make([]T, 0, len(rows))
		for _, row := range rows {
			if containsFold(col.RawValue(row), needle) {
				matched = append(matched, row)
			}
		}
		rows = matched
	}

	s := c.sort.Value()
	if c.sorting && c.sort.owner == ownedInternally && !s.IsZero() {
		col, ok := c.Column(s.Column)
		if ok {
			rows = slices.Clone(rows)
			slices.SortStableFunc(rows, func(a, b T) int {
				n := compareValues(col.RawValue(a), col.RawValue(b))
				if s.Desc {
					return -n
				}
				return n
			})
		}
	}
	return rows
}

func (c *Controller[T]) currentPageCount(total int) int {
	if c.pageCount > 0 {
		return c.pageCount
	}
	if !c.paging {
		return min(total, 1)
	}
	return PageCount(total, c.PageSize())
}

func (c *Controller[T]) currentPageIndex(count int) int {
	if !c.paging {
		return 0
	}
	if c.pageIndex.owner != ownedInternally {
		return c.pageIndex.Value()
	}
	return clamp(c.pageIndex.Value(), 0, count-1)
}

func (c *Controller[T]) position() (index, count int) {
	count = c.currentPageCount(len(c.filtered()))
	return c.currentPageIndex(count), count
}

func (c *Controller[T]) resetPage() {
	if c.pageIndex.owner == ownedInternally {
		c.pageIndex.set(0)
	}
}

func (c *Controller[T]) headers() []Header {
	s := c.CurrentSort()
	cols := c.VisibleColumns()
	headers := make([]Header, 0, len(cols))
	for _, col := range cols {
		headers = append(headers, Header{
			ID:       col.ID,
			Label:    col.Label(),
			Sortable: c.SortAvailable() && col.Value != nil,
			Sorted:   s.Column == col.ID,
			Desc:     s.Column == col.ID && s.Desc,
			Width:    col.Width,
			MinWidth: col.MinWidth,
			MaxWidth: col.MaxWidth,
		})
	}
	return headers
}
