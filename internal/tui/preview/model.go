// Package preview is a live terminal preview of the resolved theme. It
// follows the terminal size through the responsive engine and toggles the
// mode through the mode manager.
package preview

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/themekit/internal/environment"
	"github.com/alexisbeaulieu97/themekit/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/themekit/internal/mode"
	"github.com/alexisbeaulieu97/themekit/internal/projection"
	"github.com/alexisbeaulieu97/themekit/internal/resolver"
	"github.com/alexisbeaulieu97/themekit/internal/responsive"
)

// logLines is how many recent log entries the log pane shows.
const logLines = 5

// Deps are the services the preview reads and drives.
type Deps struct {
	Modes     *mode.Manager
	Engine    *responsive.Engine
	Resolver  *resolver.Resolver
	Projector *projection.Projector
	// Viewport receives terminal sizes from WindowSizeMsg. The engine must
	// be attached to it.
	Viewport   *environment.ManualViewport
	Buffer     *logging.EventBuffer
	CellWidth  int
	CellHeight int
}

// Model is the preview's bubbletea model.
type Model struct {
	ctx  context.Context
	deps Deps
	keys keyMap
	help help.Model

	width  int
	height int
	ready  bool
}

// NewModel creates a preview model.
func NewModel(ctx context.Context, deps Deps) Model {
	return Model{
		ctx:  ctx,
		deps: deps,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}
