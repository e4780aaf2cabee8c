package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrefsStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui_prefs.yaml")
	s := newPrefsStore(path, zap.NewNop().Sugar())
	assert.Equal(t, UIPreferences{}, s.prefs)

	s.update(func(p *UIPreferences) {
		p.Products = TablePrefs{SortKey: "price", SortDesc: true, HiddenColumns: []string{"stock"}, ActiveColumn: "price", PageSize: 20}
		p.Schedule.Duration = 60
		p.SidebarHidden = true
	})

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "sort_key: price")
	assert.Contains(t, string(data), "sidebar_hidden: true")

	reloaded := newPrefsStore(path, zap.NewNop().Sugar())
	assert.Equal(t, s.prefs, reloaded.prefs)
}

func TestPrefsStoreInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui_prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products: [not, a, map"), 0o644))

	s := newPrefsStore(path, zap.NewNop().Sugar())
	assert.Equal(t, UIPreferences{}, s.prefs)
}

func TestPrefsStoreInMemory(t *testing.T) {
	s := newPrefsStore("", zap.NewNop().Sugar())
	s.update(func(p *UIPreferences) { p.SidebarHidden = true })
	assert.True(t, s.prefs.SidebarHidden)
	assert.NoError(t, s.save())
}
