package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/model"
)

const sidebarWidth = 20

// SidebarModel is the navigation sidebar.
type SidebarModel struct {
	items     []model.Screen
	active    model.Screen
	collapsed bool
}

// NewSidebarModel creates a sidebar over the top-level screens.
func NewSidebarModel() SidebarModel {
	return SidebarModel{
		items: []model.Screen{
			model.ScreenHome,
			model.ScreenProducts,
			model.ScreenOrders,
			model.ScreenSchedule,
		},
	}
}

// SetActive highlights the entry owning screen.
func (m *SidebarModel) SetActive(screen model.Screen) {
	switch screen {
	case model.ScreenProductDetail:
		screen = model.ScreenProducts
	case model.ScreenOrderDetail:
		screen = model.ScreenOrders
	}
	m.active = screen
}

// Toggle collapses or expands the sidebar.
func (m *SidebarModel) Toggle() {
	m.collapsed = !m.collapsed
}

// Screen returns the screen for a 1-based sidebar number.
func (m SidebarModel) Screen(number int) (model.Screen, bool) {
	if number < 1 || number > len(m.items) {
		return 0, false
	}
	return m.items[number-1], true
}

// Width returns the rendered width.
func (m SidebarModel) Width() int {
	if m.collapsed {
		return 0
	}
	return sidebarWidth
}

// View renders the sidebar.
func (m SidebarModel) View(height int) string {
	if m.collapsed {
		return ""
	}

	innerW := sidebarWidth - 3
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Menu"))
	b.WriteString("\n\n")
	for i, screen := range m.items {
		label := fmt.Sprintf("%d %s", i+1, screen.Title())
		if screen == m.active {
			b.WriteString(SidebarActiveStyle.Width(innerW).Render(label))
		} else {
			b.WriteString(SidebarItemStyle.Width(innerW).Render(label))
		}
		b.WriteString("\n")
	}

	return SidebarStyle.
		Width(sidebarWidth - 1).
		Height(max(1, height-2)).
		Render(lipgloss.NewStyle().Width(innerW).Render(strings.TrimRight(b.String(), "\n")))
}
