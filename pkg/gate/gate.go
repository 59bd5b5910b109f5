package gate

import "sync"

// State is the onboarding gate state.
type State int

const (
	// StateShown means the onboarding overlay is visible and the embedded
	// surface must stay paused.
	StateShown State = iota
	// StateDismissed means the user confirmed onboarding. Terminal for the
	// lifetime of the shell instance.
	StateDismissed
)

func (s State) String() string {
	switch s {
	case StateShown:
		return "Shown"
	case StateDismissed:
		return "Dismissed"
	}
	return "Unknown"
}

// Gate tracks whether the pre-game onboarding overlay is showing. It starts
// in StateShown and moves to StateDismissed exactly once.
type Gate struct {
	mu    sync.Mutex
	state State
}

func New() *Gate {
	return &Gate{
		state: StateShown,
	}
}

// Confirm dismisses the overlay. It returns true only on the transition from
// Shown to Dismissed; repeated confirms are a no-op and return false so
// callers can avoid re-broadcasting an unchanged run state.
func (g *Gate) Confirm() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == StateDismissed {
		return false
	}
	g.state = StateDismissed
	return true
}

// Shown reports whether the overlay is still visible. The embedded surface
// is paused exactly while this is true.
func (g *Gate) Shown() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state == StateShown
}

// State returns the current gate state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}
