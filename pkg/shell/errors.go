package shell

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrStaleHandle indicates an attach attempt against a handle that is no
// longer (or never was) the current surface.
type ErrStaleHandle struct {
	HandleID uuid.UUID
}

func (e *ErrStaleHandle) Error() string {
	return fmt.Sprintf("surface handle %s is not current", e.HandleID)
}

// ErrStopped indicates the controller loop is no longer running.
type ErrStopped struct {
}

func (e *ErrStopped) Error() string {
	return "shell controller is stopped"
}
