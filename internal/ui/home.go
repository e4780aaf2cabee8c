package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/model"
	"dashdeck/internal/util"
)

// HomeModel is the landing screen with headline numbers.
type HomeModel struct {
	summary *model.Summary
}

// SetSummary installs freshly loaded numbers.
func (m *HomeModel) SetSummary(s model.Summary) {
	m.summary = &s
}

// View renders one card per number.
func (m *HomeModel) View(width, height int) string {
	if m.summary == nil {
		return EmptyStateStyle.Width(width).Render("Loading...")
	}
	s := m.summary

	cards := []struct {
		title string
		value string
		note  string
	}{
		{"Products", util.FormatCount(s.Products), fmt.Sprintf("%d out of stock", s.OutOfStock)},
		{"Orders", util.FormatCount(s.Orders), fmt.Sprintf("%d pending", s.PendingOrders)},
		{"Revenue", util.FormatMoney(s.Revenue), "excluding cancelled"},
		{"Schedule", util.FormatCount(s.Slots), "weekly slots"},
	}

	cardWidth := max(18, (width-4)/len(cards)-2)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = PanelStyle.Width(cardWidth).Render(lipgloss.JoinVertical(lipgloss.Left,
			HelpDescStyle.Render(c.title),
			LabelStyle.Render(c.value),
			HelpDescStyle.Render(c.note),
		))
	}

	hint := HelpDescStyle.Render("Press 2 for products, 3 for orders, 4 for the schedule.")
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		"",
		lipgloss.NewStyle().Padding(0, 1).Render(hint),
	)
}
