package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/model"
)

// RenderHelp renders context-sensitive help footer.
func RenderHelp(screen model.Screen, capturing bool, width int) string {
	if capturing {
		return renderSearchHelp(width)
	}

	switch screen {
	case model.ScreenProducts:
		return renderProductsHelp(width)
	case model.ScreenOrders:
		return renderOrdersHelp(width)
	case model.ScreenSchedule:
		return renderScheduleHelp(width)
	case model.ScreenProductDetail, model.ScreenOrderDetail:
		return renderDetailHelp(width)
	default:
		return renderDefaultHelp(width)
	}
}

func renderProductsHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("/", "search"),
		helpKey("tab", "next col"),
		helpKey("s/S", "sort"),
		helpKey("o", "newest/oldest"),
		helpKey("f/F", "department"),
		helpKey("[/]", "page"),
		helpKey("+/-", "rows"),
		helpKey("enter", "details"),
	}
	return renderHelpLine(keys, width)
}

func renderOrdersHelp(width int) string {
	keys := []string{
		helpKey("j/k", "navigate"),
		helpKey("/", "search"),
		helpKey("f/F", "status"),
		helpKey("[/]", "page"),
		helpKey("{/}", "first/last"),
		helpKey("+/-", "rows"),
		helpKey("c/C", "hide/show col"),
		helpKey("enter", "details"),
	}
	return renderHelpLine(keys, width)
}

func renderScheduleHelp(width int) string {
	keys := []string{
		helpKey("h/l", "day"),
		helpKey("t", "duration"),
		helpKey("tab", "next list"),
		helpKey("enter", "pick"),
		helpKey("a", "add/update"),
		helpKey("e/d", "edit/delete"),
		helpKey("esc", "cancel edit"),
		helpKey("u/ctrl+r", "undo/redo"),
	}
	return renderHelpLine(keys, width)
}

func renderDetailHelp(width int) string {
	keys := []string{
		helpKey("b/esc", "back"),
		helpKey("1-4", "screens"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func renderSearchHelp(width int) string {
	keys := []string{
		helpKey("enter", "done"),
		helpKey("esc", "clear"),
	}
	return renderHelpLine(keys, width)
}

func renderDefaultHelp(width int) string {
	keys := []string{
		helpKey("1-4", "screens"),
		helpKey("ctrl+b", "sidebar"),
		helpKey("?", "help"),
		helpKey("q", "quit"),
	}
	return renderHelpLine(keys, width)
}

func helpKey(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}

func renderHelpLine(keys []string, width int) string {
	line := strings.Join(keys, "  ")
	return FooterStyle.Width(width).Render(line)
}

// RenderFullHelp renders the full help screen.
func RenderFullHelp(width, height int) string {
	content := lipgloss.NewStyle().
		Width(width-4).
		Height(height-6).
		Padding(1, 2)

	sections := []string{
		titleSection("Navigation"),
		helpSection([]helpItem{
			{"1 / 2 / 3 / 4", "Home / Products / Orders / Schedule"},
			{"ctrl+b", "Toggle sidebar"},
			{"j / ↓", "Move down"},
			{"k / ↑", "Move up"},
			{"gg", "Jump to top"},
			{"G", "Jump to bottom"},
			{"ctrl+d / ctrl+u", "Half page down / up"},
			{"enter", "Open detail"},
			{"b / esc", "Back"},
			{"q", "Quit"},
			{"?", "Toggle help"},
		}),
		titleSection("Tables"),
		helpSection([]helpItem{
			{"/", "Search (enter keeps, esc clears)"},
			{"tab / shift+tab", "Cycle active column"},
			{"s / S / x", "Sort active column asc / desc / clear"},
			{"o", "Toggle newest / oldest"},
			{"c / C", "Hide active column / show all"},
			{"f / F", "Cycle filter value / clear filter"},
			{"v", "Switch filter when a table has several"},
			{"[ / ] or h / l", "Previous / next page"},
			{"{ / }", "First / last page"},
			{"+ / -", "More / fewer rows per page"},
		}),
		titleSection("Schedule"),
		helpSection([]helpItem{
			{"h / l", "Previous / next day"},
			{"t", "Cycle slot duration"},
			{"tab", "Focus start, end or slot list"},
			{"enter", "Pick start or end time"},
			{"a / ctrl+s", "Add slot, or update the edited one"},
			{"e", "Edit selected slot"},
			{"d", "Delete selected slot"},
			{"esc", "Cancel edit"},
			{"u / ctrl+r", "Undo / redo"},
		}),
	}

	helpText := content.Render(strings.Join(sections, "\n\n"))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		TitleStyle.Width(width).Render("Help"),
		helpText,
		FooterStyle.Width(width).Render(HelpKeyStyle.Render("esc")+" "+HelpDescStyle.Render("close help")),
	)
}

type helpItem struct {
	key  string
	desc string
}

func titleSection(title string) string {
	return LabelStyle.Render(title)
}

func helpSection(items []helpItem) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, "  "+HelpKeyStyle.Render(item.key)+" - "+HelpDescStyle.Render(item.desc))
	}
	return strings.Join(lines, "\n")
}
