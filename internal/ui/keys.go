package ui

import "github.com/charmbracelet/bubbles/key"

// GState represents the state for "gg" navigation.
type GState int

const (
	GStateIdle GState = iota
	GStateFirstG
)

// KeyMap defines all keybindings for nav mode.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Select       key.Binding
	Back         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	HalfPageDown key.Binding
	HalfPageUp   key.Binding
	Quit         key.Binding
	Help         key.Binding
	Sidebar      key.Binding
	Screen       key.Binding

	Search      key.Binding
	NextColumn  key.Binding
	PrevColumn  key.Binding
	SortAsc     key.Binding
	SortDesc    key.Binding
	ClearSort   key.Binding
	Recency     key.Binding
	HideColumn  key.Binding
	ShowColumns key.Binding
	Filter      key.Binding
	ClearFilter key.Binding
	FilterField key.Binding

	PrevPage     key.Binding
	NextPage     key.Binding
	FirstPage    key.Binding
	LastPage     key.Binding
	PageSizeUp   key.Binding
	PageSizeDown key.Binding

	PrevDay  key.Binding
	NextDay  key.Binding
	Duration key.Binding
	Focus    key.Binding
	Submit   key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Cancel   key.Binding
	Undo     key.Binding
	Redo     key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("b", "esc"),
			key.WithHelp("b/esc", "back"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "½ page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "½ page up"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Sidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle sidebar"),
		),
		Screen: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "switch screen"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next col"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev col"),
		),
		SortAsc: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort asc"),
		),
		SortDesc: key.NewBinding(
			key.WithKeys("S"),
			key.WithHelp("S", "sort desc"),
		),
		ClearSort: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear sort"),
		),
		Recency: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "newest/oldest"),
		),
		HideColumn: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "hide col"),
		),
		ShowColumns: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "show cols"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "next filter"),
		),
		ClearFilter: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "clear filter"),
		),
		FilterField: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "switch filter"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left", "h"),
			key.WithHelp("[/h", "prev page"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right", "l"),
			key.WithHelp("]/l", "next page"),
		),
		FirstPage: key.NewBinding(
			key.WithKeys("{", "home"),
			key.WithHelp("{", "first page"),
		),
		LastPage: key.NewBinding(
			key.WithKeys("}", "end"),
			key.WithHelp("}", "last page"),
		),
		PageSizeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more rows"),
		),
		PageSizeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fewer rows"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next day"),
		),
		Duration: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "duration"),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next list"),
		),
		Submit: key.NewBinding(
			key.WithKeys("a", "ctrl+s"),
			key.WithHelp("a", "add/update slot"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "redo"),
		),
	}
}

// SearchKeyMap defines keybindings while the search box has focus.
type SearchKeyMap struct {
	Accept key.Binding
	Cancel key.Binding
}

// DefaultSearchKeyMap returns the default search box keybindings.
func DefaultSearchKeyMap() SearchKeyMap {
	return SearchKeyMap{
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "done"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
	}
}
