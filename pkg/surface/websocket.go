package surface

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// DefaultWriteWait bounds a single write so a surface that stopped
	// reading cannot stall the sender.
	DefaultWriteWait = 5 * time.Second
)

// WSConduit delivers control messages over a WebSocket connection to a
// remotely embedded surface. Writes are serialized with a mutex since the
// underlying connection does not support concurrent writers, and each write
// carries a deadline so a stalled peer turns into an error and the channel's
// silent drop rather than blocking the caller.
type WSConduit struct {
	conn      *websocket.Conn
	writeMu   sync.Mutex
	writeWait time.Duration
}

// NewWSConduit wraps an established WebSocket connection.
func NewWSConduit(conn *websocket.Conn) *WSConduit {
	return &WSConduit{
		conn:      conn,
		writeWait: DefaultWriteWait,
	}
}

func (c *WSConduit) Deliver(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %v", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to write message to WebSocket connection: %v", err)
	}
	return nil
}

func (c *WSConduit) Close() error {
	return c.conn.Close()
}
