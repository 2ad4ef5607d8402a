package tui

import (
	"errors"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saynope/internal/catalog"
	"saynope/internal/theme"
)

type lastRand struct{}

func (lastRand) IntN(n int) int { return n - 1 }

func sample() *catalog.Catalog {
	return catalog.New([]catalog.Category{
		{Name: "Work", Reasons: []string{"Too busy", "Not my job"}},
		{Name: "Life", Reasons: []string{"I'm tired"}},
	})
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(key(k))
		m = updated.(Model)
	}
	return m
}

func TestNew_ShowsEverything(t *testing.T) {
	m := New(sample(), Options{})

	assert.Equal(t, catalog.All, m.Category())
	assert.Equal(t, []string{"Too busy", "Not my job", "I'm tired"}, m.Visible())
	assert.Contains(t, m.View(), "All (3)")
	assert.Contains(t, m.View(), "Showing 3 reasons")
}

func TestSearch(t *testing.T) {
	m := New(sample(), Options{})

	m = send(t, m, "/", "j", "o", "b", "enter")
	assert.Equal(t, "job", m.Query())
	assert.Equal(t, []string{"Not my job"}, m.Visible())

	// Keys after leaving search mode are commands again.
	m = send(t, m, "tab")
	assert.Equal(t, "Work", m.Category())
	assert.Equal(t, []string{"Not my job"}, m.Visible())
}

func TestSearch_EmptyState(t *testing.T) {
	m := New(sample(), Options{})

	m = send(t, m, "/", "z", "z", "z", "esc")
	assert.Empty(t, m.Visible())
	assert.Contains(t, m.View(), "No reasons found")
}

func TestCategoryCycles(t *testing.T) {
	m := New(sample(), Options{})

	m = send(t, m, "tab")
	assert.Equal(t, "Work", m.Category())
	m = send(t, m, "tab")
	assert.Equal(t, "Life", m.Category())
	assert.Equal(t, []string{"I'm tired"}, m.Visible())
	m = send(t, m, "tab")
	assert.Equal(t, catalog.All, m.Category())
	m = send(t, m, "shift+tab")
	assert.Equal(t, "Life", m.Category())
}

func TestRandom_ClearsSearchAndSelectsPick(t *testing.T) {
	m := New(sample(), Options{Rand: lastRand{}})

	m = send(t, m, "tab", "/", "b", "u", "s", "y", "enter")
	require.Equal(t, []string{"Too busy"}, m.Visible())

	m = send(t, m, "r")
	assert.Equal(t, "Not my job", m.Pick())
	assert.Empty(t, m.Query())
	assert.Equal(t, "Work", m.Category())

	selected, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "Not my job", selected)
}

func TestRandom_EmptyCategory(t *testing.T) {
	c := catalog.New([]catalog.Category{{Name: "Empty"}})
	m := New(c, Options{})

	m = send(t, m, "r")
	assert.Empty(t, m.Pick())
	assert.Contains(t, m.Status(), "No reasons available")
}

func TestCopy(t *testing.T) {
	oldClipboard := clipboardWriteAll
	defer func() { clipboardWriteAll = oldClipboard }()

	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}

	m := New(sample(), Options{})
	m = send(t, m, "c")
	assert.Equal(t, "Too busy", copied)
	assert.Contains(t, m.Status(), "Copied to clipboard!")

	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }
	m = send(t, m, "enter")
	assert.Contains(t, m.Status(), "Failed to copy")
}

func TestToggleTheme_Persists(t *testing.T) {
	store := &theme.FileStore{Path: filepath.Join(t.TempDir(), "preferences.yaml")}

	m := New(sample(), Options{Store: store, Mode: theme.Light})
	m = send(t, m, "t")
	assert.Equal(t, theme.Dark, m.Mode())

	// A new session starts from the saved mode.
	mode, err := theme.Current(store, false)
	require.NoError(t, err)
	assert.Equal(t, theme.Dark, mode)

	m = send(t, m, "t")
	assert.Equal(t, theme.Light, m.Mode())
}

func TestQuit(t *testing.T) {
	m := New(sample(), Options{})

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
