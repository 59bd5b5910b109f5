package surface

import (
	"testing"

	"github.com/cask-games/marquee/pkg/messages"
	"github.com/cask-games/marquee/pkg/theme"
	"github.com/stretchr/testify/assert"
)

func mustSetTheme(t *testing.T, th theme.Theme) *messages.Message {
	t.Helper()
	msg, err := messages.NewSetTheme(th)
	if err != nil {
		t.Fatalf("failed to create set theme message: %v", err)
	}
	return msg
}

func TestChannel_SendIsNoOpSafe(t *testing.T) {
	channel := NewChannel()

	// no surface mounted
	channel.Send(nil, mustSetTheme(t, theme.ThemeDark))

	// handle without a conduit
	handle := NewHandle("primary")
	channel.Send(handle, mustSetTheme(t, theme.ThemeDark))

	// closed handle
	handle.Close()
	channel.Send(handle, mustSetTheme(t, theme.ThemeDark))
}

func TestChannel_SendDelivers(t *testing.T) {
	channel := NewChannel()
	handle := NewHandle("primary")
	conduit := NewChanConduit()
	assert.NoError(t, handle.Attach(conduit))

	channel.Send(handle, mustSetTheme(t, theme.ThemeDark))

	select {
	case data := <-conduit.Messages():
		msg, err := messages.DeserializeMessage(data)
		assert.NoError(t, err)
		assert.Equal(t, messages.MessageTypeSetTheme, msg.Type)
	default:
		t.Fatal("expected a delivered message")
	}
}

func TestChannel_SendDropsOnFullBuffer(t *testing.T) {
	channel := NewChannel()
	handle := NewHandle("primary")
	conduit := NewChanConduit()
	assert.NoError(t, handle.Attach(conduit))

	// nobody drains the conduit; overflow must drop, not block
	for i := 0; i < ConduitBufferSize*2; i++ {
		channel.Send(handle, mustSetTheme(t, theme.ThemeDark))
	}
	assert.Len(t, conduit.Messages(), ConduitBufferSize)
}

func TestHandle_AttachAfterClose(t *testing.T) {
	handle := NewHandle("primary")
	handle.Close()
	assert.Error(t, handle.Attach(NewChanConduit()))
}

func TestHandle_AttachReplacesConduit(t *testing.T) {
	handle := NewHandle("primary")
	first := NewChanConduit()
	assert.NoError(t, handle.Attach(first))

	second := NewChanConduit()
	assert.NoError(t, handle.Attach(second))

	// the superseded conduit is closed
	select {
	case <-first.Done():
	default:
		t.Fatal("expected first conduit to be closed")
	}

	channel := NewChannel()
	channel.Send(handle, mustSetTheme(t, theme.ThemeLight))
	assert.Len(t, second.Messages(), 1)
}

func TestReceiver_Idempotence(t *testing.T) {
	r := NewReceiver(theme.ThemeLight, true)

	msg := mustSetTheme(t, theme.ThemeDark)
	assert.NoError(t, r.Apply(msg))
	assert.Equal(t, theme.ThemeDark, r.Theme())
	assert.Equal(t, 1, r.Transitions())

	// re-applying the active value changes nothing observable
	assert.NoError(t, r.Apply(msg))
	assert.Equal(t, theme.ThemeDark, r.Theme())
	assert.Equal(t, 1, r.Transitions())

	pause, err := messages.NewPauseGame(true)
	assert.NoError(t, err)
	assert.NoError(t, r.Apply(pause))
	assert.True(t, r.Paused())
	assert.Equal(t, 1, r.Transitions())

	unpause, err := messages.NewPauseGame(false)
	assert.NoError(t, err)
	assert.NoError(t, r.Apply(unpause))
	assert.False(t, r.Paused())
	assert.Equal(t, 2, r.Transitions())
}

func TestReceiver_IgnoresUnknownTypes(t *testing.T) {
	r := NewReceiver(theme.ThemeLight, true)

	msg, err := messages.DeserializeMessage([]byte(`{"type":"RESIZE","payload":{"w":640}}`))
	assert.NoError(t, err)

	assert.NoError(t, r.Apply(msg))
	assert.Equal(t, theme.ThemeLight, r.Theme())
	assert.True(t, r.Paused())
	assert.Equal(t, 0, r.Transitions())
}

func TestReceiver_MalformedPayload(t *testing.T) {
	r := NewReceiver(theme.ThemeLight, true)

	msg, err := messages.DeserializeMessage([]byte(`{"type":"SET_THEME","payload":{"theme":"plaid"}}`))
	assert.NoError(t, err)
	assert.Error(t, r.Apply(msg))
	assert.Equal(t, theme.ThemeLight, r.Theme())
}
