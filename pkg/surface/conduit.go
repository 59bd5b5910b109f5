package surface

import (
	"fmt"
	"sync"
)

// Conduit carries serialized control messages toward an embedded surface.
// Delivery is one-way and unacknowledged.
type Conduit interface {
	Deliver(data []byte) error
	Close() error
}

const (
	// ConduitBufferSize is the maximum number of undelivered messages an
	// in-process conduit holds before dropping.
	ConduitBufferSize = 64
)

// ChanConduit is an in-process conduit backed by a buffered channel. It is
// used for locally hosted surfaces and in tests. Deliver never blocks; a
// full buffer drops the message.
type ChanConduit struct {
	ch       chan []byte
	closeOne sync.Once
	done     chan struct{}
}

// NewChanConduit creates a new in-process conduit.
func NewChanConduit() *ChanConduit {
	return &ChanConduit{
		ch:   make(chan []byte, ConduitBufferSize),
		done: make(chan struct{}),
	}
}

func (c *ChanConduit) Deliver(data []byte) error {
	select {
	case <-c.done:
		return fmt.Errorf("conduit is closed")
	default:
	}
	select {
	case c.ch <- data:
		return nil
	default:
		return fmt.Errorf("conduit buffer is full")
	}
}

func (c *ChanConduit) Close() error {
	c.closeOne.Do(func() {
		close(c.done)
	})
	return nil
}

// Messages returns the receiving end of the conduit.
func (c *ChanConduit) Messages() <-chan []byte {
	return c.ch
}

// Done is closed when the conduit is closed.
func (c *ChanConduit) Done() <-chan struct{} {
	return c.done
}
