package ui

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dashdeck/internal/db"
	"dashdeck/internal/model"
	"dashdeck/internal/schedule"
)

type undoAction struct {
	label string
	undo  func() error
	redo  func() error
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

func (m *Model) undoCmd() tea.Cmd {
	if len(m.undoStack) == 0 {
		return nil
	}
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	return func() tea.Msg {
		err := action.undo()
		return undoAppliedMsg{err: err, action: action, direction: "undo"}
	}
}

func (m *Model) redoCmd() tea.Cmd {
	if len(m.redoStack) == 0 {
		return nil
	}
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	return func() tea.Msg {
		err := action.redo()
		return undoAppliedMsg{err: err, action: action, direction: "redo"}
	}
}

// buildSlotsSaveAction restores the schedule before or after a save.
func buildSlotsSaveAction(database *sql.DB, msg model.SlotsSavedMsg) undoAction {
	before := slices.Clone(msg.Before)
	after := slices.Clone(msg.After)
	return undoAction{
		label: strings.ToLower(msg.Label),
		undo: func() error {
			return replaceSlots(database, before)
		},
		redo: func() error {
			return replaceSlots(database, after)
		},
	}
}

func replaceSlots(database *sql.DB, slots []schedule.Slot) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	return db.ReplaceSlots(ctx, database, slots)
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) tea.Cmd {
	if msg.err != nil {
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		m.lggr.Errorw("undo stack action failed", "direction", msg.direction, "action", msg.action.label, "err", msg.err)
		return nil
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = "Undid: " + msg.action.label
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = "Redid: " + msg.action.label
	}
	m.error = ""
	return tea.Batch(loadSlotsCmd(m.db), loadSummaryCmd(m.db))
}
