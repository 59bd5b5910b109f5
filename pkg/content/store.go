package content

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Variant identifies one of the interchangeable content payloads selectable
// at runtime.
type Variant string

// Payload is the opaque markup/script bundle resolved for a variant. The
// shell owns the active payload; the embedded surface only ever receives a
// copy at mount time.
type Payload struct {
	Variant   Variant
	Data      []byte
	FetchedAt time.Time
}

// Store resolves a variant identifier to its content payload.
type Store interface {
	Resolve(ctx context.Context, variant Variant) (*Payload, error)
}

// FetchError indicates content resolution failed. It is never fatal to the
// shell: the caller keeps whatever payload it already had.
type FetchError struct {
	Variant Variant
	Reason  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch content for variant %q: %v", e.Variant, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Reason
}

// IsFetchError reports whether err is a content fetch failure.
func IsFetchError(err error) bool {
	fetchErr := &FetchError{}
	return errors.As(err, &fetchErr)
}
