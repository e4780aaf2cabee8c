package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashdeck/internal/schedule"
)

type saveCall struct {
	label  string
	before []schedule.Slot
	after  []schedule.Slot
}

type saveRecorder struct {
	calls []saveCall
}

func (s *saveRecorder) save(label string, before, after []schedule.Slot) tea.Cmd {
	s.calls = append(s.calls, saveCall{label: label, before: before, after: after})
	return nil
}

func newTestSchedule(t *testing.T, slots []schedule.Slot) (*ScheduleModel, *saveRecorder) {
	t.Helper()
	rec := &saveRecorder{}
	m := NewScheduleModel(rec.save, 30, nil)
	m.SetSlots(slots)
	return m, rec
}

func pickRange(m *ScheduleModel, startSteps, endSteps int) {
	m.focus = focusStart
	m.startCursor = 0
	for i := 0; i < startSteps; i++ {
		m.HandleKey(runes("j"))
	}
	m.HandleKey(enterKey)
	for i := 0; i < endSteps; i++ {
		m.HandleKey(runes("j"))
	}
	m.HandleKey(enterKey)
}

func TestScheduleAddSlot(t *testing.T) {
	m, rec := newTestSchedule(t, nil)

	pickRange(m, 18, 0) // 09:00 - 09:30
	assert.Equal(t, "09:00", m.picker.Start())
	assert.Equal(t, "09:30", m.picker.End())

	_, info := m.HandleKey(runes("a"))
	assert.Equal(t, "Slot added", info)
	require.Len(t, rec.calls, 1)
	assert.Empty(t, rec.calls[0].before)
	require.Len(t, rec.calls[0].after, 1)
	assert.Equal(t, "Mon", rec.calls[0].after[0].Day)
	assert.Equal(t, "09:00", rec.calls[0].after[0].Start)
	assert.Equal(t, "09:30", rec.calls[0].after[0].End)
	assert.Empty(t, m.picker.Start(), "inputs are cleared after a save")
}

func TestScheduleRejectsConflict(t *testing.T) {
	existing := []schedule.Slot{{ID: "s1", Day: "Mon", Start: "09:00", End: "10:00"}}
	m, rec := newTestSchedule(t, existing)

	pickRange(m, 19, 1) // 09:30 - 10:30
	_, info := m.HandleKey(runes("a"))
	assert.Equal(t, schedule.ErrConflict.Error(), info)
	assert.Empty(t, rec.calls)
	assert.Equal(t, existing, m.Slots())

	// same range on another day is fine
	m.HandleKey(runes("l"))
	assert.Equal(t, "Tue", m.picker.Day())
	pickRange(m, 19, 1)
	_, info = m.HandleKey(runes("a"))
	assert.Equal(t, "Slot added", info)
	require.Len(t, rec.calls, 1)
}

func TestScheduleIncompleteSubmit(t *testing.T) {
	m, rec := newTestSchedule(t, nil)
	_, info := m.HandleKey(runes("a"))
	assert.Equal(t, schedule.ErrIncomplete.Error(), info)
	assert.Empty(t, rec.calls)
}

func TestScheduleEndBeforeStart(t *testing.T) {
	m, _ := newTestSchedule(t, nil)
	m.focus = focusStart
	m.startCursor = 4
	m.HandleKey(enterKey)
	m.HandleKey(runes("k"))
	m.HandleKey(runes("k"))
	_, info := m.HandleKey(enterKey)
	assert.Equal(t, schedule.ErrEndNotAfterStart.Error(), info)
	assert.Empty(t, m.picker.End())
}

func TestScheduleEditAndRemove(t *testing.T) {
	existing := []schedule.Slot{
		{ID: "s1", Day: "Mon", Start: "09:00", End: "10:00"},
		{ID: "s2", Day: "Mon", Start: "11:00", End: "12:00"},
	}
	m, rec := newTestSchedule(t, existing)

	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	m.HandleKey(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, focusSlots, m.focus)

	_, info := m.HandleKey(runes("e"))
	assert.Equal(t, "Editing Mon 9:00 AM – 10:00 AM", info)
	assert.Equal(t, "s1", m.picker.Editing())
	assert.Equal(t, focusStart, m.focus)

	// move the edited slot to 09:30 - 10:30; it may overlap itself
	m.HandleKey(runes("j"))
	m.HandleKey(enterKey)
	m.endCursor = 21
	m.HandleKey(enterKey)
	_, info = m.HandleKey(runes("a"))
	assert.Equal(t, "Slot updated", info)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, existing, rec.calls[0].before)
	assert.Equal(t, "09:30", rec.calls[0].after[0].Start)
	assert.Equal(t, "10:30", rec.calls[0].after[0].End)
	assert.Empty(t, m.picker.Editing())

	m.focus = focusSlots
	m.slotCursor = 1
	_, info = m.HandleKey(runes("d"))
	assert.Equal(t, "Slot removed", info)
	require.Len(t, rec.calls, 2)
	require.Len(t, rec.calls[1].after, 1)
	assert.Equal(t, "s1", rec.calls[1].after[0].ID)
}

func TestScheduleDayChangeCancelsEdit(t *testing.T) {
	m, _ := newTestSchedule(t, []schedule.Slot{{ID: "s1", Day: "Mon", Start: "09:00", End: "10:00"}})
	m.focus = focusSlots
	m.HandleKey(runes("e"))
	require.Equal(t, "s1", m.picker.Editing())

	_, info := m.HandleKey(runes("h"))
	assert.Equal(t, "Edit cancelled", info)
	assert.Equal(t, "Sun", m.picker.Day())
	assert.Empty(t, m.picker.Editing())
}

func TestScheduleDurationCycle(t *testing.T) {
	var notified []int
	m := NewScheduleModel(func(string, []schedule.Slot, []schedule.Slot) tea.Cmd { return nil }, 15, func(d int) {
		notified = append(notified, d)
	})
	assert.Equal(t, 15, m.picker.Duration())

	_, info := m.HandleKey(runes("t"))
	assert.Equal(t, "Duration: 30 min", info)
	_, info = m.HandleKey(runes("t"))
	assert.Equal(t, "Duration: 60 min", info)
	assert.Len(t, m.picker.Options(), 24)
	_, info = m.HandleKey(runes("t"))
	assert.Equal(t, "Duration: 15 min", info)
	assert.Equal(t, []int{15, 30, 60, 15}, notified)
}

func TestScheduleViewWaitsForLoad(t *testing.T) {
	m := NewScheduleModel(func(string, []schedule.Slot, []schedule.Slot) tea.Cmd { return nil }, 30, nil)
	assert.Contains(t, m.View(100, 20), "Loading schedule...")
	m.SetSlots(nil)
	assert.Contains(t, m.View(100, 20), "Mon")
}
