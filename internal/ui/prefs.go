package ui

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// TablePrefs stores per-table UI preferences.
type TablePrefs struct {
	SortKey       string   `yaml:"sort_key,omitempty"`
	SortDesc      bool     `yaml:"sort_desc,omitempty"`
	HiddenColumns []string `yaml:"hidden_columns,omitempty"`
	ActiveColumn  string   `yaml:"active_column,omitempty"`
	PageSize      int      `yaml:"page_size,omitempty"`
}

// SchedulePrefs stores the schedule editor preferences.
type SchedulePrefs struct {
	Duration int `yaml:"duration,omitempty"`
}

// UIPreferences stores persisted app preferences.
type UIPreferences struct {
	Products      TablePrefs    `yaml:"products"`
	Orders        TablePrefs    `yaml:"orders"`
	Schedule      SchedulePrefs `yaml:"schedule"`
	SidebarHidden bool          `yaml:"sidebar_hidden,omitempty"`
}

// prefsStore loads and saves UIPreferences at a fixed path. An empty path
// keeps preferences in memory only.
type prefsStore struct {
	path  string
	prefs UIPreferences
	lggr  *zap.SugaredLogger
}

func newPrefsStore(path string, lggr *zap.SugaredLogger) *prefsStore {
	s := &prefsStore{path: path, lggr: lggr}
	s.prefs = s.load()
	return s
}

func (s *prefsStore) load() UIPreferences {
	if s.path == "" {
		return UIPreferences{}
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.lggr.Warnw("failed to read prefs", "path", s.path, "err", err)
		}
		return UIPreferences{}
	}

	var prefs UIPreferences
	if err := yaml.Unmarshal(data, &prefs); err != nil {
		s.lggr.Warnw("ignoring invalid prefs file", "path", s.path, "err", err)
		return UIPreferences{}
	}
	return prefs
}

func (s *prefsStore) save() error {
	if s.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create prefs dir: %w", err)
	}

	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("failed to marshal prefs: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}

// update applies fn and saves, logging instead of failing.
func (s *prefsStore) update(fn func(*UIPreferences)) {
	fn(&s.prefs)
	if err := s.save(); err != nil {
		s.lggr.Warnw("failed to save prefs", "err", err)
	}
}
