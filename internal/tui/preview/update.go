package preview

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/themekit/internal/environment"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		if m.deps.Viewport != nil {
			m.deps.Viewport.Set(environment.CellsToViewport(msg.Width, msg.Height, m.deps.CellWidth, m.deps.CellHeight))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		m.deps.Modes.Toggle(m.ctx)
	case key.Matches(msg, m.keys.Clear):
		m.deps.Modes.ClearChoice(m.ctx)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
