package datatable

import "fmt"

// Column describes one table column.
type Column[T any] struct {
	ID     string
	Header string
	// Value reads the raw cell value used for filtering and sorting.
	Value func(T) any
	// Cell renders the cell. When nil the raw value is printed.
	Cell func(T) string

	Width    int
	MinWidth int
	MaxWidth int
}

// Label returns the header text, falling back to the column ID.
func (c Column[T]) Label() string {
	if c.Header != "" {
		return c.Header
	}
	return c.ID
}

// RawValue returns the accessor value for row, or nil without an accessor.
func (c Column[T]) RawValue(row T) any {
	if c.Value == nil {
		return nil
	}
	return c.Value(row)
}

// Text renders the cell for row.
func (c Column[T]) Text(row T) string {
	if c.Cell != nil {
		return c.Cell(row)
	}
	v := c.RawValue(row)
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// Header is a visible column as presented in the header row.
type Header struct {
	ID       string
	Label    string
	Sortable bool
	Sorted   bool
	Desc     bool
	Width    int
	MinWidth int
	MaxWidth int
}

// Option is a selectable value of a Filter.
type Option struct {
	Value string
	Label string
}

// Filter is a selector whose value is always owned by the caller, such as a
// status or department filter backed by a server query.
type Filter struct {
	Axis        Axis[string]
	Options     []Option
	Placeholder string
}

// Value returns the selected value.
func (f *Filter) Value() string {
	return f.Axis.Value()
}

// Label returns the label of the selected option or the placeholder.
func (f *Filter) Label() string {
	v := f.Axis.Value()
	for _, o := range f.Options {
		if o.Value == v {
			return o.Label
		}
	}
	return f.Placeholder
}

// Sort is the single active sort key. The zero value means unsorted.
type Sort struct {
	Column string
	Desc   bool
}

// IsZero reports whether no sort is active.
func (s Sort) IsZero() bool {
	return s.Column == ""
}
