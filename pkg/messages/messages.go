package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cask-games/marquee/pkg/theme"
)

// Message types sent from the host shell to the embedded surface.
// The set is closed on the sending side; receivers must ignore types
// they do not recognize.
const (
	MessageTypeSetTheme  = "SET_THEME"
	MessageTypePauseGame = "PAUSE_GAME"
)

// Message represents a generic control message for serialization/deserialization.
// Messages are independent, idempotent signals: no ordering is guaranteed
// between distinct types and re-delivery of the same value is harmless.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SetTheme tells the embedded surface which visual theme to render.
type SetTheme struct {
	Theme string `json:"theme"`
}

// PauseGame tells the embedded surface whether to hold its simulation idle.
type PauseGame struct {
	Paused bool `json:"paused"`
}

// NewSetTheme creates a SET_THEME message for the given theme.
func NewSetTheme(t theme.Theme) (*Message, error) {
	payload, err := json.Marshal(&SetTheme{Theme: t.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal set theme payload: %v", err)
	}
	return &Message{
		Type:    MessageTypeSetTheme,
		Payload: payload,
	}, nil
}

// NewPauseGame creates a PAUSE_GAME message for the given paused state.
func NewPauseGame(paused bool) (*Message, error) {
	payload, err := json.Marshal(&PauseGame{Paused: paused})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pause game payload: %v", err)
	}
	return &Message{
		Type:    MessageTypePauseGame,
		Payload: payload,
	}, nil
}
