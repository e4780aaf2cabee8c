package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	ColorBase    = lipgloss.Color("#1B1F24")
	ColorSurface = lipgloss.Color("#262C33")
	ColorStripe  = lipgloss.Color("#20252B")
	ColorMuted   = lipgloss.Color("#7D8590")
	ColorText    = lipgloss.Color("#D5DAE0")
	ColorAccent  = lipgloss.Color("#7AA2C8")
	ColorGreen   = lipgloss.Color("#a6e3a1")
	ColorRed     = lipgloss.Color("#f38ba8")
	ColorYellow  = lipgloss.Color("#f9e2af")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(ColorMuted)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				Padding(0, 1).
				Background(ColorSurface)

	ActiveHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorText).
				Underline(true)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Padding(0, 1)

	NormalRowStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(ColorMuted)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorMuted).
			Padding(1, 2)

	ActivePanelStyle = PanelStyle.
				BorderForeground(ColorAccent)

	BreadcrumbStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	BreadcrumbActiveStyle = lipgloss.NewStyle().
				Foreground(ColorAccent)

	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true).
			Padding(2, 4)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	SidebarStyle = lipgloss.NewStyle().
			Padding(1, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(ColorMuted)

	SidebarItemStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Padding(0, 1)

	SidebarActiveStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	PageButtonStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	PageCurrentStyle = lipgloss.NewStyle().
				Foreground(ColorBase).
				Background(ColorAccent).
				Bold(true).
				Padding(0, 1)

	PageDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorSurface).
				Padding(0, 1)

	DisabledOptionStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Strikethrough(true)

	StatusStyles = map[string]lipgloss.Style{
		"Active":       lipgloss.NewStyle().Foreground(ColorGreen),
		"Completed":    lipgloss.NewStyle().Foreground(ColorGreen),
		"Shipped":      lipgloss.NewStyle().Foreground(ColorAccent),
		"Processing":   lipgloss.NewStyle().Foreground(ColorYellow),
		"Pending":      lipgloss.NewStyle().Foreground(ColorYellow),
		"Out of Stock": lipgloss.NewStyle().Foreground(ColorRed),
		"Cancelled":    lipgloss.NewStyle().Foreground(ColorRed),
		"Discontinued": lipgloss.NewStyle().Foreground(ColorMuted),
	}
)

func renderStatus(status string) string {
	if style, ok := StatusStyles[status]; ok {
		return style.Render(status)
	}
	return status
}
