package messages

import (
	"encoding/json"
	"testing"

	"github.com/cask-games/marquee/pkg/theme"
	"github.com/stretchr/testify/assert"
)

func TestSerializeMessage_WireShape(t *testing.T) {
	msg, err := NewSetTheme(theme.ThemeDark)
	assert.NoError(t, err)

	b, err := SerializeMessage(msg)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"SET_THEME","payload":{"theme":"dark"}}`, string(b))

	msg, err = NewPauseGame(true)
	assert.NoError(t, err)

	b, err = SerializeMessage(msg)
	assert.NoError(t, err)
	assert.JSONEq(t, `{"type":"PAUSE_GAME","payload":{"paused":true}}`, string(b))
}

func TestDeserializeMessage(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantType string
		wantErr  bool
	}{
		{
			name:     "set theme",
			data:     `{"type":"SET_THEME","payload":{"theme":"light"}}`,
			wantType: MessageTypeSetTheme,
		},
		{
			name:     "pause game",
			data:     `{"type":"PAUSE_GAME","payload":{"paused":false}}`,
			wantType: MessageTypePauseGame,
		},
		{
			// unknown types survive deserialization so receivers can
			// decide to ignore them
			name:     "unknown type",
			data:     `{"type":"RESIZE","payload":{"w":640}}`,
			wantType: "RESIZE",
		},
		{
			name:    "missing type",
			data:    `{"payload":{}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			data:    `pause please`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeserializeMessage([]byte(tt.data))
			if (err != nil) != tt.wantErr {
				t.Errorf("DeserializeMessage() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				assert.Equal(t, tt.wantType, got.Type)
			}
		})
	}
}

func TestNewPauseGame_Payload(t *testing.T) {
	msg, err := NewPauseGame(false)
	assert.NoError(t, err)

	pauseGame := &PauseGame{}
	assert.NoError(t, json.Unmarshal(msg.Payload, pauseGame))
	assert.False(t, pauseGame.Paused)
}
