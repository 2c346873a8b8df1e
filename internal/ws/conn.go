// Package ws adapts a gorilla WebSocket to the relay's connection contract.
package ws

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Tous-project/chat-server/internal/chat"
)

const (
	writeWait = 10 * time.Second
	closeWait = time.Second
)

// Conn owns one client socket's lifecycle. Writes are serialized because
// gorilla allows at most one concurrent writer.
type Conn struct {
	sock    *websocket.Conn
	writeMu sync.Mutex
	once    sync.Once
	closed  atomic.Bool
}

func NewConn(sock *websocket.Conn) *Conn {
	return &Conn{sock: sock}
}

// Receive blocks until one text message arrives. Any read error is
// reported as a closed connection; gorilla reads never recover after one.
func (c *Conn) Receive() (string, error) {
	_, data, err := c.sock.ReadMessage()
	if err != nil {
		return "", fmt.Errorf("%w: %v", chat.ErrConnectionClosed, err)
	}
	return string(data), nil
}

func (c *Conn) Send(text string) error {
	if c.closed.Load() {
		return chat.ErrConnectionClosed
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.sock.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.sock.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return fmt.Errorf("%w: %v", chat.ErrConnectionClosed, err)
	}
	return nil
}

// Close sends a close frame and releases the socket. Safe to call from
// either relay loop; only the first call acts.
func (c *Conn) Close() {
	c.once.Do(func() {
		c.closed.Store(true)
		deadline := time.Now().Add(closeWait)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server closing")
		_ = c.sock.WriteControl(websocket.CloseMessage, msg, deadline)
		c.sock.Close()
	})
}
