// Package tui provides a terminal preview of lookup cards. It renders
// the same paginated pages a chat transport would send, with left/right
// keys standing in for the navigation reactions.
package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fwojciec/refbot"
	"github.com/fwojciec/refbot/card"
)

// previewUser owns preview cards; the keyboard is always the owner.
const previewUser = "local"

// Model is the bubbletea model for a card preview.
type Model struct {
	styles *Styles
	card   *card.Card
	page   *refbot.Page
	now    func() time.Time
	width  int
	done   bool
}

// NewModel creates a preview for the given pages. A zero expiry falls
// back to the default card lifetime.
func NewModel(pages []*refbot.Page, expiry time.Duration) (*Model, error) {
	if expiry <= 0 {
		expiry = refbot.DefaultCardExpiry
	}
	c, err := card.New(previewUser, pages, refbot.ControlPrevNext, expiry)
	if err != nil {
		return nil, err
	}
	return &Model{
		styles: NewStyles(),
		card:   c,
		page:   c.Current(),
		now:    time.Now,
	}, nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses: left/right navigate, q or ctrl+c quits.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.done = true
			return m, tea.Quit
		case "left", "h":
			if page, ok := m.card.Navigate(previewUser, refbot.ControlPrev, m.now()); ok {
				m.page = page
			}
		case "right", "l":
			if page, ok := m.card.Navigate(previewUser, refbot.ControlNext, m.now()); ok {
				m.page = page
			}
		}
	}
	return m, nil
}

// View renders the current page.
func (m *Model) View() string {
	if m.done || m.page == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.page.Title))
	b.WriteString("\n\n")
	b.WriteString(m.page.Body)

	for _, field := range m.page.Fields {
		b.WriteString("\n\n")
		b.WriteString(m.styles.FieldLabel.Render(field.Label))
		b.WriteString("\n")
		b.WriteString(field.Value)
	}

	if m.page.Link != "" {
		b.WriteString("\n\n")
		b.WriteString(m.page.Link)
	}
	if m.page.Attribution != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Attribution.Render(m.page.Attribution))
	}
	if m.page.Footer != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Footer.Render(m.page.Footer))
	}

	frame := m.styles.Frame
	if m.width > 2 {
		frame = frame.Width(m.width - 2)
	}

	help := m.styles.Help.Render("←/→ page · q quit")
	return frame.Render(b.String()) + "\n" + help + "\n"
}
