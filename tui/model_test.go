package tui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/tui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewPages() []*refbot.Page {
	return []*refbot.Page{
		{Title: "C++: std::abs", Body: "first page", Footer: "Page 1 / 2"},
		{Title: "C++: std::abs", Body: "second page", Footer: "Page 2 / 2"},
	}
}

func TestModel(t *testing.T) {
	t.Parallel()

	t.Run("renders the first page", func(t *testing.T) {
		t.Parallel()

		m, err := tui.NewModel(previewPages(), 0)
		require.NoError(t, err)

		view := m.View()
		assert.Contains(t, view, "std::abs")
		assert.Contains(t, view, "first page")
		assert.Contains(t, view, "Page 1 / 2")
	})

	t.Run("right key advances, left key goes back", func(t *testing.T) {
		t.Parallel()

		m, err := tui.NewModel(previewPages(), 0)
		require.NoError(t, err)

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		view := next.View()
		assert.Contains(t, view, "second page")
		assert.Contains(t, view, "Page 2 / 2")

		back, _ := next.Update(tea.KeyMsg{Type: tea.KeyLeft})
		assert.Contains(t, back.View(), "first page")
	})

	t.Run("right key on the last page is a no-op", func(t *testing.T) {
		t.Parallel()

		m, err := tui.NewModel(previewPages(), 0)
		require.NoError(t, err)

		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		same, _ := next.Update(tea.KeyMsg{Type: tea.KeyRight})
		assert.Contains(t, same.View(), "second page")
	})

	t.Run("quit key returns tea.Quit", func(t *testing.T) {
		t.Parallel()

		m, err := tui.NewModel(previewPages(), 0)
		require.NoError(t, err)

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})

	t.Run("rejects an empty page list", func(t *testing.T) {
		t.Parallel()

		_, err := tui.NewModel(nil, 0)
		assert.Equal(t, refbot.EINVALID, refbot.ErrorCode(err))
	})
}
