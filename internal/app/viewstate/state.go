package viewstate

import (
	"context"
	"sync"

	"mlb-scoreboard-service/internal/timeutil"
)

// Overlay is the modal currently shown over the scores view.
type Overlay string

const (
	OverlayNone       Overlay = ""
	OverlayBoxScore   Overlay = "boxscore"
	OverlayHighlights Overlay = "highlights"
)

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Date    string  `json:"date"`
	Route   Route   `json:"route"`
	Overlay Overlay `json:"overlay,omitempty"`
	GamePk  int     `json:"gamePk,omitempty"`
}

// State owns the selected date, the active route and overlay visibility.
// Views mutate it only through a Handle.
type State struct {
	mu      sync.Mutex
	snap    Snapshot
	gen     uint64
	current *Handle
}

// New returns a State on the scores view for date.
func New(date string) *State {
	return &State{snap: Snapshot{Date: date, Route: Route{View: ViewScores}}}
}

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Mount activates route and returns the handle for its lifetime. The
// previous handle is released and any open overlay is closed.
func (s *State) Mount(parent context.Context, route Route) *Handle {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	prev := s.current
	s.gen++
	h := &Handle{state: s, gen: s.gen, ctx: ctx, cancel: cancel}
	s.current = h
	s.snap.Route = route
	s.snap.Overlay = OverlayNone
	s.snap.GamePk = 0
	s.mu.Unlock()

	if prev != nil {
		prev.cancel()
	}
	return h
}

// Handle is a view's scoped access to State. Writes through a released
// handle are ignored.
type Handle struct {
	state  *State
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Context ends when the handle is released or replaced.
func (h *Handle) Context() context.Context { return h.ctx }

// Active reports whether the handle still owns the state.
func (h *Handle) Active() bool {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	return h.activeLocked()
}

func (h *Handle) activeLocked() bool {
	return h.ctx.Err() == nil && h.state.gen == h.gen
}

// Release ends the handle's lifetime.
func (h *Handle) Release() { h.cancel() }

// Snapshot returns the current state.
func (h *Handle) Snapshot() Snapshot { return h.state.Snapshot() }

func (h *Handle) update(fn func(*Snapshot)) bool {
	h.state.mu.Lock()
	defer h.state.mu.Unlock()
	if !h.activeLocked() {
		return false
	}
	fn(&h.state.snap)
	return true
}

// SetDate selects a date and closes any overlay.
func (h *Handle) SetDate(date string) bool {
	return h.update(func(s *Snapshot) {
		s.Date = date
		s.Overlay = OverlayNone
		s.GamePk = 0
	})
}

// ShiftDate moves the selected date by days and returns the new date.
func (h *Handle) ShiftDate(days int) (string, bool) {
	var next string
	ok := h.update(func(s *Snapshot) {
		shifted, err := timeutil.ShiftDate(s.Date, days)
		if err != nil {
			return
		}
		next = shifted
		s.Date = shifted
		s.Overlay = OverlayNone
		s.GamePk = 0
	})
	return next, ok && next != ""
}

// Open shows an overlay for a game.
func (h *Handle) Open(overlay Overlay, gamePk int) bool {
	return h.update(func(s *Snapshot) {
		s.Overlay = overlay
		s.GamePk = gamePk
	})
}

// Close hides the overlay.
func (h *Handle) Close() bool {
	return h.update(func(s *Snapshot) {
		s.Overlay = OverlayNone
		s.GamePk = 0
	})
}
