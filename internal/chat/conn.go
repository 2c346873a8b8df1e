package chat

import "errors"

// ErrConnectionClosed reports that the client's duplex channel is gone. It
// is the sole termination signal for the relay's send loop.
var ErrConnectionClosed = errors.New("connection closed")

// Conn is one client's duplex channel seen as blocking text operations.
// Close must be idempotent; the relay guarantees it runs exactly once per
// lifecycle regardless of which loop terminates first.
type Conn interface {
	Receive() (string, error)
	Send(text string) error
	Close()
}
