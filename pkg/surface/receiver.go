package surface

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/cask-games/marquee/pkg/log"
	"github.com/cask-games/marquee/pkg/messages"
	"github.com/cask-games/marquee/pkg/theme"
)

// Receiver is the embedded-surface side of the channel contract. Applying a
// message with the currently active value is a no-op, and unknown message
// types are ignored so newer hosts can talk to older surfaces.
type Receiver struct {
	mu          sync.Mutex
	theme       theme.Theme
	paused      bool
	transitions int
}

// NewReceiver creates a receiver with the surface's initial render state.
func NewReceiver(initial theme.Theme, paused bool) *Receiver {
	return &Receiver{
		theme:  initial,
		paused: paused,
	}
}

// Apply processes a single control message.
func (r *Receiver) Apply(msg *messages.Message) error {
	switch msg.Type {
	case messages.MessageTypeSetTheme:
		setTheme := &messages.SetTheme{}
		if err := json.Unmarshal(msg.Payload, setTheme); err != nil {
			return fmt.Errorf("failed to unmarshal set theme message: %v", err)
		}
		parsed, err := theme.ParseTheme(setTheme.Theme)
		if err != nil {
			return fmt.Errorf("failed to parse theme: %v", err)
		}
		r.mu.Lock()
		if r.theme != parsed {
			r.theme = parsed
			r.transitions++
		}
		r.mu.Unlock()
	case messages.MessageTypePauseGame:
		pauseGame := &messages.PauseGame{}
		if err := json.Unmarshal(msg.Payload, pauseGame); err != nil {
			return fmt.Errorf("failed to unmarshal pause game message: %v", err)
		}
		r.mu.Lock()
		if r.paused != pauseGame.Paused {
			r.paused = pauseGame.Paused
			r.transitions++
		}
		r.mu.Unlock()
	default:
		log.Trace("Ignoring unknown message type %s", msg.Type)
	}

	return nil
}

// Listen applies messages arriving on an in-process conduit until the
// context is canceled or the conduit closes.
func (r *Receiver) Listen(ctx context.Context, conduit *ChanConduit) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-conduit.Done():
			return
		case data := <-conduit.Messages():
			msg, err := messages.DeserializeMessage(data)
			if err != nil {
				log.Error("Failed to deserialize message: %v", err)
				continue
			}
			if err := r.Apply(msg); err != nil {
				log.Error("Failed to apply %s message: %v", msg.Type, err)
			}
		}
	}
}

// Theme returns the theme the surface is rendering.
func (r *Receiver) Theme() theme.Theme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.theme
}

// Paused reports whether the surface is holding its simulation idle.
func (r *Receiver) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Transitions counts observable state changes. Redundant messages do not
// increment it.
func (r *Receiver) Transitions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.transitions
}
