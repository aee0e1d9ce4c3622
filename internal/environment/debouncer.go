package environment

import (
	"sync"
	"time"
)

// DefaultDebounce is how long a preference file must stay quiet before it is
// re-read.
const DefaultDebounce = 100 * time.Millisecond

// settleTimer re-reads a watched preference once the file stops changing.
// Editors often save with a truncate, write and rename burst; each event
// pushes the read back by window, and only the read scheduled by the last
// event runs.
type settleTimer struct {
	window time.Duration
	read   func()

	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	stopped    bool
}

func newSettleTimer(window time.Duration, read func()) *settleTimer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &settleTimer{window: window, read: read}
}

// touch records a file event and restarts the quiet window.
func (s *settleTimer) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.window, func() { s.fire(gen) })
}

func (s *settleTimer) fire(gen uint64) {
	s.mu.Lock()
	due := !s.stopped && gen == s.generation
	if due {
		s.timer = nil
	}
	s.mu.Unlock()
	if due {
		s.read()
	}
}

// stop drops any pending read. Later touches are ignored.
func (s *settleTimer) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
