package ui

import tea "github.com/charmbracelet/bubbletea"

// tableScreen is a screen built around a tableView.
type tableScreen interface {
	HandleKey(msg tea.KeyMsg) (tea.Cmd, string)
	Capturing() bool
	JumpToTop()
	Prefs() TablePrefs
	View(width, height int) string
}
