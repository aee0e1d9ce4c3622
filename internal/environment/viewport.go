package environment

import (
	"context"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/alexisbeaulieu97/themekit/internal/ports"
	apperrors "github.com/alexisbeaulieu97/themekit/pkg/errors"
)

// Default pixel size of one terminal cell.
const (
	DefaultCellWidthPx  = 8
	DefaultCellHeightPx = 16
)

// TerminalViewport measures the controlling terminal and scales its cell
// grid to pixels so breakpoint tables written in pixels apply unchanged.
type TerminalViewport struct {
	File         *os.File
	CellWidthPx  int
	CellHeightPx int
}

// NewTerminalViewport measures stdout with the given cell size. Zero values
// use the defaults.
func NewTerminalViewport(cellWidthPx, cellHeightPx int) *TerminalViewport {
	return &TerminalViewport{File: os.Stdout, CellWidthPx: cellWidthPx, CellHeightPx: cellHeightPx}
}

// Size implements ports.ViewportSource.
func (v *TerminalViewport) Size(context.Context) (ports.Viewport, error) {
	file := v.File
	if file == nil {
		file = os.Stdout
	}
	cols, rows, err := term.GetSize(int(file.Fd()))
	if err != nil {
		return ports.Viewport{}, apperrors.NewEnvironmentSignalUnavailableError(SignalViewport, err)
	}
	return CellsToViewport(cols, rows, v.CellWidthPx, v.CellHeightPx), nil
}

// OnResize implements ports.ViewportSource using the platform resize signal.
func (v *TerminalViewport) OnResize(ctx context.Context, fn func(ports.Viewport)) (ports.Subscription, error) {
	return watchResize(ctx, func() {
		if size, err := v.Size(ctx); err == nil {
			fn(size)
		}
	})
}

// CellsToViewport converts a cell grid to pixels.
func CellsToViewport(cols, rows, cellWidthPx, cellHeightPx int) ports.Viewport {
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}
	if cellHeightPx <= 0 {
		cellHeightPx = DefaultCellHeightPx
	}
	return ports.Viewport{Width: cols * cellWidthPx, Height: rows * cellHeightPx}
}

// ManualViewport is a ViewportSource driven by pushed sizes, for hosts that
// receive resizes as messages (the bubbletea preview) and for tests.
type ManualViewport struct {
	mu        sync.RWMutex
	size      ports.Viewport
	known     bool
	nextID    int
	listeners map[int]func(ports.Viewport)
}

// NewManualViewport returns a source with no known size.
func NewManualViewport() *ManualViewport {
	return &ManualViewport{listeners: make(map[int]func(ports.Viewport))}
}

// Size implements ports.ViewportSource. It fails until a size was pushed.
func (m *ManualViewport) Size(context.Context) (ports.Viewport, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.known {
		return ports.Viewport{}, apperrors.NewEnvironmentSignalUnavailableError(SignalViewport, nil)
	}
	return m.size, nil
}

// OnResize implements ports.ViewportSource.
func (m *ManualViewport) OnResize(_ context.Context, fn func(ports.Viewport)) (ports.Subscription, error) {
	m.mu.Lock()
	m.nextID++
	id := m.nextID
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return ports.SubscriptionFunc(func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}), nil
}

// Set records a new size and notifies listeners synchronously.
func (m *ManualViewport) Set(size ports.Viewport) {
	m.mu.Lock()
	m.size = size
	m.known = true
	listeners := make([]func(ports.Viewport), 0, len(m.listeners))
	for id := 1; id <= m.nextID; id++ {
		if fn, ok := m.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(size)
	}
}

// Listeners reports how many resize listeners are registered.
func (m *ManualViewport) Listeners() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.listeners)
}
