package ui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/datatable"
	"dashdeck/internal/util"
)

// tableView renders a datatable.Controller and maps keys onto it. Whether a
// change is applied locally or forwarded to the owning screen is decided by
// the controller's axes.
type tableView[T any] struct {
	ctrl       *datatable.Controller[T]
	view       datatable.View[T]
	keys       KeyMap
	searchKeys SearchKeyMap
	noun       string

	cursor         int
	offset         int
	viewportHeight int
	activeColumn   string

	search    textinput.Model
	searching bool
	// filterField indexes filters(); f and F act on that filter.
	filterField int

	loading bool
	spinner spinner.Model
	// totalRows overrides the row count shown in the footer when the rows
	// are one server page.
	totalRows int
}

func newTableView[T any](ctrl *datatable.Controller[T], noun, placeholder string) *tableView[T] {
	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = placeholder
	search.CharLimit = 100
	search.Width = 28
	search.SetValue(ctrl.SearchText())

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(ColorAccent)

	t := &tableView[T]{
		ctrl:       ctrl,
		keys:       DefaultKeyMap(),
		searchKeys: DefaultSearchKeyMap(),
		noun:       noun,
		search:     search,
		spinner:    sp,
	}
	if cols := ctrl.VisibleColumns(); len(cols) > 0 {
		t.activeColumn = cols[0].ID
	}
	t.refresh()
	return t
}

// refresh re-derives the view and keeps the cursor on the page.
func (t *tableView[T]) refresh() {
	t.view = t.ctrl.Derive()
	t.clampCursor()
}

// Capturing reports whether keys go to the search box.
func (t *tableView[T]) Capturing() bool {
	return t.searching
}

// Selected returns the row under the cursor.
func (t *tableView[T]) Selected() (T, bool) {
	if t.cursor < 0 || t.cursor >= len(t.view.Rows) {
		var zero T
		return zero, false
	}
	return t.view.Rows[t.cursor], true
}

func (t *tableView[T]) setLoading(loading bool) tea.Cmd {
	t.loading = loading
	if loading {
		return t.spinner.Tick
	}
	return nil
}

func (t *tableView[T]) updateSpinner(msg spinner.TickMsg) tea.Cmd {
	if !t.loading {
		return nil
	}
	var cmd tea.Cmd
	t.spinner, cmd = t.spinner.Update(msg)
	return cmd
}

// ApplyPrefs restores sort, hidden columns and the active column.
func (t *tableView[T]) ApplyPrefs(prefs TablePrefs) {
	if prefs.SortKey != "" {
		t.ctrl.SetSort(prefs.SortKey, prefs.SortDesc)
	}
	for _, id := range prefs.HiddenColumns {
		t.ctrl.HideColumn(id)
	}
	if _, ok := t.ctrl.Column(prefs.ActiveColumn); ok {
		t.activeColumn = prefs.ActiveColumn
	}
	t.ensureVisibleActiveColumn()
	t.refresh()
}

// Prefs captures the persisted part of the table state.
func (t *tableView[T]) Prefs() TablePrefs {
	prefs := TablePrefs{
		HiddenColumns: t.ctrl.HiddenColumns(),
		ActiveColumn:  t.activeColumn,
		PageSize:      t.ctrl.PageSize(),
	}
	if t.ctrl.SortAvailable() {
		s := t.ctrl.CurrentSort()
		prefs.SortKey = s.Column
		prefs.SortDesc = s.Desc
	}
	return prefs
}

// HandleKey applies a key to the table. It reports whether the key was
// consumed and returns a message for the info banner.
func (t *tableView[T]) HandleKey(msg tea.KeyMsg) (bool, string, tea.Cmd) {
	if t.searching {
		return t.handleSearchKey(msg)
	}

	handled, info := true, ""
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, t.keys.Search):
		if !t.ctrl.SearchAvailable() {
			info = "Search unavailable"
			break
		}
		t.searching = true
		cmd = t.search.Focus()
	case key.Matches(msg, t.keys.Down):
		t.MoveDown()
	case key.Matches(msg, t.keys.Up):
		t.MoveUp()
	case key.Matches(msg, t.keys.Bottom):
		t.JumpToBottom()
	case key.Matches(msg, t.keys.HalfPageDown):
		t.HalfPageDown()
	case key.Matches(msg, t.keys.HalfPageUp):
		t.HalfPageUp()
	case key.Matches(msg, t.keys.NextColumn):
		t.NextColumn()
	case key.Matches(msg, t.keys.PrevColumn):
		t.PrevColumn()
	case key.Matches(msg, t.keys.SortAsc), key.Matches(msg, t.keys.SortDesc):
		desc := key.Matches(msg, t.keys.SortDesc)
		if !t.ctrl.SetSort(t.activeColumn, desc) {
			info = "Sorting unavailable"
			break
		}
		order := "ascending"
		if desc {
			order = "descending"
		}
		info = fmt.Sprintf("Sorted %s %s", strings.ToUpper(t.activeLabel()), order)
	case key.Matches(msg, t.keys.ClearSort):
		if t.ctrl.ClearSort() {
			info = "Sorting cleared"
		} else {
			info = "Sorting unavailable"
		}
	case key.Matches(msg, t.keys.Recency):
		if !t.ctrl.RecencyAvailable() {
			info = "Newest/oldest unavailable"
			break
		}
		newest, ok := t.ctrl.Recency()
		newest = !(ok && newest)
		t.ctrl.SortByRecency(newest)
		info = "Sort by: " + recencyLabel(newest)
	case key.Matches(msg, t.keys.HideColumn):
		if t.ctrl.HideColumn(t.activeColumn) {
			t.ensureVisibleActiveColumn()
			info = "Column hidden"
		} else {
			info = "Cannot hide last visible column"
		}
	case key.Matches(msg, t.keys.ShowColumns):
		t.ctrl.ShowAllColumns()
		info = "All columns shown"
	case key.Matches(msg, t.keys.Filter):
		info = t.cycleFilter()
	case key.Matches(msg, t.keys.ClearFilter):
		if f, set := t.filter(); f != nil && f.Value() != "" {
			set("")
			info = "Filter cleared"
		}
	case key.Matches(msg, t.keys.FilterField):
		info = t.nextFilterField()
	case key.Matches(msg, t.keys.FirstPage):
		handled = t.page(t.ctrl.FirstPage)
	case key.Matches(msg, t.keys.PrevPage):
		handled = t.page(t.ctrl.PrevPage)
	case key.Matches(msg, t.keys.NextPage):
		handled = t.page(t.ctrl.NextPage)
	case key.Matches(msg, t.keys.LastPage):
		handled = t.page(t.ctrl.LastPage)
	case key.Matches(msg, t.keys.PageSizeUp):
		info = t.stepPageSize(1)
	case key.Matches(msg, t.keys.PageSizeDown):
		info = t.stepPageSize(-1)
	default:
		handled = false
	}

	t.refresh()
	return handled, info, cmd
}

func (t *tableView[T]) handleSearchKey(msg tea.KeyMsg) (bool, string, tea.Cmd) {
	switch {
	case key.Matches(msg, t.searchKeys.Accept):
		t.blurSearch()
		return true, "", nil
	case key.Matches(msg, t.searchKeys.Cancel):
		if t.search.Value() != "" {
			t.search.SetValue("")
			t.ctrl.SetSearchText("")
			t.resetCursor()
		}
		t.blurSearch()
		t.refresh()
		return true, "", nil
	}

	before := t.search.Value()
	var cmd tea.Cmd
	t.search, cmd = t.search.Update(msg)
	if v := t.search.Value(); v != before {
		t.ctrl.SetSearchText(v)
		t.resetCursor()
	}
	t.refresh()
	return true, "", cmd
}

func (t *tableView[T]) blurSearch() {
	t.searching = false
	t.search.Blur()
}

type filterField struct {
	name   string
	filter *datatable.Filter
	set    func(string) bool
}

// filters returns the configured filters, status first.
func (t *tableView[T]) filters() []filterField {
	var out []filterField
	if f := t.ctrl.Status(); f != nil {
		out = append(out, filterField{"status", f, t.ctrl.SetStatusFilter})
	}
	if f := t.ctrl.Department(); f != nil {
		out = append(out, filterField{"department", f, t.ctrl.SetDepartmentFilter})
	}
	return out
}

// filter returns the selected filter and its setter.
func (t *tableView[T]) filter() (*datatable.Filter, func(string) bool) {
	fields := t.filters()
	if len(fields) == 0 {
		return nil, nil
	}
	f := fields[t.filterField%len(fields)]
	return f.filter, f.set
}

// nextFilterField moves f and F to the next configured filter.
func (t *tableView[T]) nextFilterField() string {
	fields := t.filters()
	if len(fields) < 2 {
		return "Only one filter available"
	}
	t.filterField = (t.filterField + 1) % len(fields)
	return "Filter field: " + fields[t.filterField].name
}

// cycleFilter selects the next filter option, wrapping back to "all".
func (t *tableView[T]) cycleFilter() string {
	f, set := t.filter()
	if f == nil || len(f.Options) == 0 {
		return "No filter available"
	}
	values := make([]string, 0, len(f.Options)+1)
	values = append(values, "")
	for _, o := range f.Options {
		values = append(values, o.Value)
	}
	i := slices.Index(values, f.Value())
	next := values[(i+1)%len(values)]
	set(next)
	t.resetCursor()
	if next == "" {
		return "Filter: " + f.Placeholder
	}
	return "Filter: " + next
}

func (t *tableView[T]) page(move func() bool) bool {
	if !t.ctrl.PaginationEnabled() || t.loading {
		return true
	}
	if move() {
		t.resetCursor()
	}
	return true
}

func (t *tableView[T]) stepPageSize(step int) string {
	if !t.ctrl.PaginationEnabled() {
		return ""
	}
	options := t.ctrl.PageSizeOptions()
	i := slices.Index(options, t.ctrl.PageSize())
	switch {
	case i < 0:
		i = 0
	case i+step < 0 || i+step >= len(options):
		return fmt.Sprintf("Rows per page: %d", t.ctrl.PageSize())
	default:
		i += step
	}
	t.ctrl.SetPageSize(options[i])
	t.resetCursor()
	return fmt.Sprintf("Rows per page: %d", options[i])
}

func (t *tableView[T]) activeLabel() string {
	col, _ := t.ctrl.Column(t.activeColumn)
	return col.Label()
}

func (t *tableView[T]) visibleIDs() []string {
	cols := t.ctrl.VisibleColumns()
	ids := make([]string, len(cols))
	for i, c := range cols {
		ids[i] = c.ID
	}
	return ids
}

func (t *tableView[T]) ensureVisibleActiveColumn() {
	ids := t.visibleIDs()
	if !slices.Contains(ids, t.activeColumn) && len(ids) > 0 {
		t.activeColumn = ids[0]
	}
}

// NextColumn moves the active column right, wrapping.
func (t *tableView[T]) NextColumn() {
	ids := t.visibleIDs()
	i := slices.Index(ids, t.activeColumn)
	t.activeColumn = ids[(i+1)%len(ids)]
}

// PrevColumn moves the active column left, wrapping.
func (t *tableView[T]) PrevColumn() {
	ids := t.visibleIDs()
	i := slices.Index(ids, t.activeColumn)
	if i <= 0 {
		i = len(ids)
	}
	t.activeColumn = ids[i-1]
}

func (t *tableView[T]) clampCursor() {
	n := len(t.view.Rows)
	if n == 0 {
		t.cursor = 0
		t.offset = 0
		return
	}
	t.cursor = min(max(t.cursor, 0), n-1)
	if t.offset > t.cursor {
		t.offset = t.cursor
	}
}

func (t *tableView[T]) resetCursor() {
	t.cursor = 0
	t.offset = 0
}

func (t *tableView[T]) height() int {
	if t.viewportHeight <= 0 {
		return 10
	}
	return t.viewportHeight
}

// MoveDown moves the cursor down.
func (t *tableView[T]) MoveDown() {
	if t.cursor < len(t.view.Rows)-1 {
		t.cursor++
		if t.cursor >= t.offset+t.height() {
			t.offset++
		}
	}
}

// MoveUp moves the cursor up.
func (t *tableView[T]) MoveUp() {
	if t.cursor > 0 {
		t.cursor--
		if t.cursor < t.offset {
			t.offset--
		}
	}
}

// JumpToTop jumps to the first row of the page.
func (t *tableView[T]) JumpToTop() {
	t.resetCursor()
}

// JumpToBottom jumps to the last row of the page.
func (t *tableView[T]) JumpToBottom() {
	if len(t.view.Rows) > 0 {
		t.cursor = len(t.view.Rows) - 1
		t.offset = max(0, t.cursor-t.height()+1)
	}
}

// HalfPageDown moves down half a viewport.
func (t *tableView[T]) HalfPageDown() {
	if len(t.view.Rows) == 0 {
		return
	}
	t.cursor = min(t.cursor+t.height()/2, len(t.view.Rows)-1)
	if t.cursor >= t.offset+t.height() {
		t.offset = t.cursor - t.height() + 1
	}
}

// HalfPageUp moves up half a viewport.
func (t *tableView[T]) HalfPageUp() {
	t.cursor = max(t.cursor-t.height()/2, 0)
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
}

func recencyLabel(newest bool) string {
	if newest {
		return "Newest"
	}
	return "Oldest"
}

// View renders the toolbar, the table and the pagination footer.
func (t *tableView[T]) View(width, height int) string {
	toolbar := t.renderToolbar(width)
	footer := t.renderFooter(width)

	widths, header := t.renderHeader(width)
	divider := BreadcrumbStyle.Render(strings.Repeat("─", max(0, width)))

	bodyHeight := height - lipgloss.Height(toolbar) - lipgloss.Height(footer) - 2
	t.viewportHeight = max(1, bodyHeight)

	var body string
	switch {
	case len(t.view.Rows) == 0 && t.loading:
		body = EmptyStateStyle.Width(width).Render(t.spinner.View() + " Loading " + t.noun + "...")
	case len(t.view.Rows) == 0:
		body = EmptyStateStyle.Width(width).Render("No results found.")
	default:
		body = t.renderRows(widths)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, toolbar, header, divider, body)
	spacer := lipgloss.NewStyle().Height(max(0, height-lipgloss.Height(content)-lipgloss.Height(footer))).Render("")
	return lipgloss.JoinVertical(lipgloss.Left, content, spacer, footer)
}

func (t *tableView[T]) renderToolbar(width int) string {
	var parts []string
	if t.ctrl.SearchAvailable() {
		if t.searching {
			parts = append(parts, InputStyle.Render(t.search.View()))
		} else if v := t.search.Value(); v != "" {
			parts = append(parts, InputStyle.Render("/ "+v))
		} else {
			parts = append(parts, InputStyle.Foreground(ColorMuted).Render("/ "+t.search.Placeholder))
		}
	}
	if f, _ := t.filter(); f != nil {
		parts = append(parts, LabelStyle.Render("filter ")+f.Label())
	}
	if t.ctrl.RecencyAvailable() {
		label := "Newest"
		if newest, ok := t.ctrl.Recency(); ok {
			label = recencyLabel(newest)
		} else if !t.ctrl.CurrentSort().IsZero() {
			label = "—"
		}
		parts = append(parts, LabelStyle.Render("sort by ")+label)
	}
	if t.loading {
		parts = append(parts, t.spinner.View())
	}
	return lipgloss.NewStyle().Width(width).Padding(0, 1).Render(strings.Join(parts, "   "))
}

func (t *tableView[T]) renderHeader(width int) ([]int, string) {
	headers := t.view.Headers
	widths := make([]int, len(headers))
	labels := make([]string, len(headers))
	total := 0
	for i, h := range headers {
		label := strings.ToUpper(h.Label)
		if h.Sorted {
			if h.Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		if h.ID == t.activeColumn {
			label = ActiveHeaderStyle.Render(label)
		}
		w := max(h.Width, h.MinWidth, lipgloss.Width(label)) + 2
		if h.MaxWidth > 0 {
			w = min(w, h.MaxWidth+2)
		}
		widths[i] = w
		labels[i] = label
		total += w
	}
	if extra := width - total; extra > 0 && len(widths) > 0 {
		widths[len(widths)-1] += extra
	}
	return widths, renderTableRow(labels, widths, TableHeaderStyle)
}

func (t *tableView[T]) renderRows(widths []int) string {
	cols := t.ctrl.VisibleColumns()
	var rows []string
	for i := t.offset; i < len(t.view.Rows) && i < t.offset+t.height(); i++ {
		row := t.view.Rows[i]
		style := NormalRowStyle
		if i%2 == 1 {
			style = style.Background(ColorStripe)
		}
		if i == t.cursor {
			style = SelectedRowStyle
		}
		cells := make([]string, len(cols))
		for j, col := range cols {
			cells[j] = util.TruncateString(col.Text(row), max(1, widths[j]-2))
		}
		rows = append(rows, renderTableRow(cells, widths, style))
	}
	return strings.Join(rows, "\n")
}

func (t *tableView[T]) renderFooter(width int) string {
	total := t.view.TotalRows
	if t.totalRows > 0 {
		total = t.totalRows
	}
	left := fmt.Sprintf("%s %s", util.FormatCount(total), t.noun)
	if len(t.view.Rows) > 0 {
		left += fmt.Sprintf("  ·  row %d/%d", t.cursor+1, len(t.view.Rows))
	}
	if hidden := len(t.ctrl.HiddenColumns()); hidden > 0 {
		left += fmt.Sprintf("  ·  %d hidden", hidden)
	}

	if !t.ctrl.PaginationEnabled() {
		return StatusBarStyle.Width(width).Render(left)
	}

	pageCount := max(t.view.PageCount, 1)
	nav := t.view.Nav
	if t.loading {
		nav = datatable.Nav{}
	}
	buttons := []string{
		pageButton("«", nav.First),
		pageButton("‹", nav.Prev),
	}
	for _, p := range t.view.Pages {
		if p == t.view.PageIndex {
			buttons = append(buttons, PageCurrentStyle.Render(strconv.Itoa(p+1)))
		} else {
			buttons = append(buttons, PageButtonStyle.Render(strconv.Itoa(p+1)))
		}
	}
	buttons = append(buttons, pageButton("›", nav.Next), pageButton("»", nav.Last))

	right := lipgloss.JoinHorizontal(lipgloss.Center,
		HelpDescStyle.Render(fmt.Sprintf("Rows per page %d   ", t.view.PageSize)),
		HelpDescStyle.Render(fmt.Sprintf("Page %d of %d   ", t.view.PageIndex+1, pageCount)),
		lipgloss.JoinHorizontal(lipgloss.Center, buttons...),
	)

	leftRendered := StatusBarStyle.Render(left)
	gap := max(1, width-lipgloss.Width(leftRendered)-lipgloss.Width(right)-1)
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(ColorMuted).
		Width(width).
		Render(leftRendered + strings.Repeat(" ", gap) + right)
}

func pageButton(label string, enabled bool) string {
	if enabled {
		return PageButtonStyle.Render(label)
	}
	return PageDisabledStyle.Render(label)
}

func renderTableRow(cells []string, widths []int, style lipgloss.Style) string {
	var parts []string
	for i, cell := range cells {
		if i >= len(widths) {
			continue
		}
		parts = append(parts, style.Width(widths[i]).MaxHeight(1).Render(cell))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, parts...)
}
