package surface

import (
	"fmt"
	"sync"

	"github.com/cask-games/marquee/pkg/content"
	"github.com/google/uuid"
)

// Handle is a reference to the currently mounted embedded surface. Only the
// shell creates handles, and at most one is live at a time; a superseded
// handle is closed before its replacement exists. Sending through a closed
// or unattached handle is a silent drop, never an error.
type Handle struct {
	id      uuid.UUID
	variant content.Variant

	mu      sync.Mutex
	conduit Conduit
	closed  bool
}

// NewHandle creates a handle for a freshly mounted surface.
func NewHandle(variant content.Variant) *Handle {
	return &Handle{
		id:      uuid.New(),
		variant: variant,
	}
}

// ID returns the handle identity.
func (h *Handle) ID() uuid.UUID {
	return h.id
}

// Variant returns the variant mounted under this handle.
func (h *Handle) Variant() content.Variant {
	return h.variant
}

// Attach connects the surface's conduit to the handle. A conduit attached
// earlier is closed and replaced; attaching to a closed handle fails.
func (h *Handle) Attach(conduit Conduit) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return fmt.Errorf("surface handle %s is closed", h.id)
	}
	if h.conduit != nil {
		h.conduit.Close()
	}
	h.conduit = conduit
	return nil
}

// Close invalidates the handle and closes any attached conduit.
func (h *Handle) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	if h.conduit != nil {
		h.conduit.Close()
		h.conduit = nil
	}
}

// deliver hands raw bytes to the attached conduit. It reports whether the
// message was accepted; false means the message is lost and the caller's
// re-broadcast strategy is responsible for eventual consistency.
func (h *Handle) deliver(data []byte) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed || h.conduit == nil {
		return false
	}
	if err := h.conduit.Deliver(data); err != nil {
		return false
	}
	return true
}
