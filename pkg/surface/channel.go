package surface

import (
	"github.com/cask-games/marquee/pkg/log"
	"github.com/cask-games/marquee/pkg/messages"
)

// Channel delivers control messages from the host to the mounted surface.
// Send is fire-and-forget: it never blocks, never fails, and gives no
// ordering guarantee between distinct message types. Callers achieve
// eventual consistency by re-broadcasting on every state change.
type Channel interface {
	Send(handle *Handle, msg *messages.Message)
}

// ConduitChannel sends messages through the handle's attached conduit.
type ConduitChannel struct {
}

// NewChannel creates the default channel implementation.
func NewChannel() *ConduitChannel {
	return &ConduitChannel{}
}

func (c *ConduitChannel) Send(handle *Handle, msg *messages.Message) {
	if handle == nil {
		log.Trace("Dropping %s message: no surface mounted", msg.Type)
		return
	}

	b, err := messages.SerializeMessage(msg)
	if err != nil {
		log.Error("Failed to serialize %s message: %v", msg.Type, err)
		return
	}

	if !handle.deliver(b) {
		log.Trace("Dropping %s message for surface %s: not listening", msg.Type, handle.ID())
	}
}
