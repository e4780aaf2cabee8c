package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/schedule"
)

// slotSaver persists a new schedule. The returned command must answer with
// a model.SlotsSavedMsg or model.ErrorMsg.
type slotSaver func(label string, before, after []schedule.Slot) tea.Cmd

type scheduleFocus int

const (
	focusStart scheduleFocus = iota
	focusEnd
	focusSlots
)

// ScheduleModel is the weekly availability editor.
type ScheduleModel struct {
	picker *schedule.Picker
	save   slotSaver
	keys   KeyMap

	focus       scheduleFocus
	startCursor int
	endCursor   int
	slotCursor  int
	loaded      bool
}

// NewScheduleModel creates the schedule screen. onDuration is told about
// every duration change.
func NewScheduleModel(save slotSaver, duration int, onDuration func(int)) *ScheduleModel {
	var opts []schedule.Option
	if onDuration != nil {
		opts = append(opts, schedule.WithDurationCallback(onDuration))
	}
	p := schedule.NewPicker(nil, schedule.Days[0], opts...)
	if slices.Contains(schedule.Durations, duration) && duration != p.Duration() {
		p.SetDuration(duration)
	}
	return &ScheduleModel{picker: p, save: save, keys: DefaultKeyMap()}
}

// SetSlots installs the saved schedule.
func (m *ScheduleModel) SetSlots(slots []schedule.Slot) {
	m.picker.SetSlots(slots)
	m.loaded = true
	m.clampSlotCursor()
}

// Slots returns the saved schedule.
func (m *ScheduleModel) Slots() []schedule.Slot {
	return m.picker.Slots()
}

// HandleKey applies a key to the picker.
func (m *ScheduleModel) HandleKey(msg tea.KeyMsg) (tea.Cmd, string) {
	switch {
	case key.Matches(msg, m.keys.PrevDay):
		return nil, m.stepDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		return nil, m.stepDay(1)
	case key.Matches(msg, m.keys.Duration):
		i := slices.Index(schedule.Durations, m.picker.Duration())
		next := schedule.Durations[(i+1)%len(schedule.Durations)]
		m.picker.SetDuration(next)
		m.startCursor, m.endCursor = 0, 0
		return nil, fmt.Sprintf("Duration: %d min", next)
	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % 3
		return nil, ""
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		return nil, ""
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		return nil, ""
	case key.Matches(msg, m.keys.Select):
		return m.selectFocused()
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case key.Matches(msg, m.keys.Edit):
		return nil, m.editSelected()
	case key.Matches(msg, m.keys.Delete):
		return m.removeSelected()
	case key.Matches(msg, m.keys.Cancel):
		editing := m.picker.Editing() != ""
		m.picker.CancelEdit()
		if editing {
			return nil, "Edit cancelled"
		}
		return nil, ""
	}
	return nil, ""
}

func (m *ScheduleModel) stepDay(step int) string {
	i := slices.Index(schedule.Days, m.picker.Day())
	n := len(schedule.Days)
	m.picker.SetDay(schedule.Days[((i+step)%n+n)%n])
	m.slotCursor = 0
	if m.picker.Editing() != "" {
		m.picker.CancelEdit()
		return "Edit cancelled"
	}
	return ""
}

func (m *ScheduleModel) moveCursor(step int) {
	switch m.focus {
	case focusStart:
		m.startCursor = clampIndex(m.startCursor+step, len(m.picker.Options()))
	case focusEnd:
		m.endCursor = clampIndex(m.endCursor+step, len(m.picker.Options()))
	case focusSlots:
		m.slotCursor = clampIndex(m.slotCursor+step, len(m.picker.DaySlots()))
	}
}

func (m *ScheduleModel) selectFocused() (tea.Cmd, string) {
	options := m.picker.Options()
	switch m.focus {
	case focusStart:
		if len(options) == 0 {
			return nil, ""
		}
		m.picker.SelectStart(options[m.startCursor])
		m.focus = focusEnd
		m.endCursor = min(m.startCursor+1, len(options)-1)
		return nil, "Start " + schedule.FormatClock(m.picker.Start())
	case focusEnd:
		if len(options) == 0 {
			return nil, ""
		}
		if !m.picker.SelectEnd(options[m.endCursor]) {
			return nil, schedule.ErrEndNotAfterStart.Error()
		}
		return nil, "End " + schedule.FormatClock(m.picker.End())
	default:
		return nil, m.editSelected()
	}
}

func (m *ScheduleModel) submit() (tea.Cmd, string) {
	before := m.picker.Slots()
	label := "Slot added"
	if m.picker.Editing() != "" {
		label = "Slot updated"
	}
	after, err := m.picker.Submit()
	if err != nil {
		return nil, err.Error()
	}
	m.clampSlotCursor()
	return m.save(label, before, after), label
}

func (m *ScheduleModel) selectedSlot() (schedule.Slot, bool) {
	slots := m.picker.DaySlots()
	if m.slotCursor < 0 || m.slotCursor >= len(slots) {
		return schedule.Slot{}, false
	}
	return slots[m.slotCursor], true
}

func (m *ScheduleModel) editSelected() string {
	slot, ok := m.selectedSlot()
	if !ok {
		return "No slot selected"
	}
	if err := m.picker.StartEdit(slot.ID); err != nil {
		return err.Error()
	}
	options := m.picker.Options()
	m.startCursor = max(0, slices.Index(options, slot.Start))
	m.endCursor = max(0, slices.Index(options, slot.End))
	m.focus = focusStart
	return fmt.Sprintf("Editing %s %s", slot.Day, formatRange(slot.Start, slot.End))
}

func (m *ScheduleModel) removeSelected() (tea.Cmd, string) {
	slot, ok := m.selectedSlot()
	if !ok {
		return nil, "No slot selected"
	}
	before := m.picker.Slots()
	after, err := m.picker.Remove(slot.ID)
	if err != nil {
		if errors.Is(err, schedule.ErrUnknownSlot) {
			return nil, "Slot already removed"
		}
		return nil, err.Error()
	}
	m.clampSlotCursor()
	return m.save("Slot removed", before, after), "Slot removed"
}

func (m *ScheduleModel) clampSlotCursor() {
	m.slotCursor = clampIndex(m.slotCursor, len(m.picker.DaySlots()))
}

func clampIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return min(max(i, 0), n-1)
}

func formatRange(start, end string) string {
	return schedule.FormatClock(start) + " – " + schedule.FormatClock(end)
}

// View renders the day bar, the start/end option lists and the day's slots.
func (m *ScheduleModel) View(width, height int) string {
	var days []string
	counts := make(map[string]int)
	for _, s := range m.picker.Slots() {
		counts[s.Day]++
	}
	for _, d := range schedule.Days {
		label := d
		if counts[d] > 0 {
			label = fmt.Sprintf("%s·%d", d, counts[d])
		}
		if d == m.picker.Day() {
			days = append(days, PageCurrentStyle.Render(label))
		} else {
			days = append(days, PageButtonStyle.Render(label))
		}
	}
	dayBar := lipgloss.JoinHorizontal(lipgloss.Left, days...)

	selection := "Start —  End —"
	if m.picker.Start() != "" || m.picker.End() != "" {
		selection = fmt.Sprintf("Start %s  End %s", clockOrDash(m.picker.Start()), clockOrDash(m.picker.End()))
	}
	status := fmt.Sprintf("%s   %s   %s",
		LabelStyle.Render("duration ")+fmt.Sprintf("%d min", m.picker.Duration()),
		selection,
		m.editingLabel(),
	)

	listHeight := max(3, height-8)
	colWidth := max(16, (width-8)/3)
	options := m.picker.Options()

	startList := m.renderList("Start", options, m.startCursor, m.focus == focusStart, listHeight, colWidth, func(c string) (string, bool) {
		return schedule.FormatClock(c), c == m.picker.Start()
	}, nil)
	endList := m.renderList("End", options, m.endCursor, m.focus == focusEnd, listHeight, colWidth, func(c string) (string, bool) {
		return schedule.FormatClock(c), c == m.picker.End()
	}, m.picker.EndDisabled)

	daySlots := m.picker.DaySlots()
	slotLabels := make([]string, len(daySlots))
	for i, s := range daySlots {
		slotLabels[i] = s.ID
	}
	slotList := m.renderList(m.picker.Day()+" slots", slotLabels, m.slotCursor, m.focus == focusSlots, listHeight, colWidth, func(id string) (string, bool) {
		i := slices.IndexFunc(daySlots, func(s schedule.Slot) bool { return s.ID == id })
		return formatRange(daySlots[i].Start, daySlots[i].End), id == m.picker.Editing()
	}, nil)
	if len(daySlots) == 0 {
		slotList = m.panel(m.focus == focusSlots, colWidth, listHeight).Render(
			LabelStyle.Render(m.picker.Day()+" slots") + "\n\n" + HelpDescStyle.Render("No slots yet."))
	}

	if !m.loaded {
		return EmptyStateStyle.Width(width).Render("Loading schedule...")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Padding(0, 1).Render(dayBar),
		lipgloss.NewStyle().Padding(0, 1).Render(status),
		lipgloss.JoinHorizontal(lipgloss.Top, startList, endList, slotList),
	)
}

func (m *ScheduleModel) editingLabel() string {
	id := m.picker.Editing()
	if id == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(ColorYellow).Render("editing (esc to cancel)")
}

func (m *ScheduleModel) panel(focused bool, width, height int) lipgloss.Style {
	style := PanelStyle
	if focused {
		style = ActivePanelStyle
	}
	return style.Padding(0, 1).Width(width).Height(height)
}

// renderList renders a scrolling window of items around cursor.
func (m *ScheduleModel) renderList(title string, items []string, cursor int, focused bool, height, width int, label func(string) (string, bool), disabled func(string) bool) string {
	rows := max(1, height-2)
	start := max(0, min(cursor-rows/2, len(items)-rows))
	end := min(len(items), start+rows)

	lines := []string{LabelStyle.Render(title), ""}
	for i := start; i < end; i++ {
		text, chosen := label(items[i])
		if chosen {
			text = "● " + text
		} else {
			text = "  " + text
		}
		style := NormalRowStyle
		switch {
		case i == cursor && focused:
			style = SelectedRowStyle
		case disabled != nil && disabled(items[i]):
			style = DisabledOptionStyle
		}
		lines = append(lines, style.Render(text))
	}
	return m.panel(focused, width, height).Render(strings.Join(lines, "\n"))
}

func clockOrDash(clock string) string {
	if clock == "" {
		return "—"
	}
	return schedule.FormatClock(clock)
}
