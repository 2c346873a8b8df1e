// Package bus abstracts the publish/subscribe broker that carries chat
// envelopes between connections, possibly across process boundaries.
package bus

import (
	"context"
	"errors"
	"strconv"
)

var (
	// ErrUnavailable reports a broker transport failure. A successful
	// Publish only means the broker accepted the payload.
	ErrUnavailable = errors.New("bus unavailable")

	// ErrSubscriptionClosed is returned by Receive after Close. A closed
	// subscription cannot be restarted; missed messages are not replayed.
	ErrSubscriptionClosed = errors.New("subscription closed")
)

// Bus is a topic-addressed broker. Subscribers on a topic receive every
// payload published to it, including their own publishes.
type Bus interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	Subscribe(ctx context.Context, topic string) (Subscription, error)
}

// Subscription yields payloads for one topic in broker delivery order.
type Subscription interface {
	// Receive blocks until the next payload arrives, the context is
	// canceled, or the subscription is closed.
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}

// Topic derives the broker topic for a room.
func Topic(roomID int64) string {
	return "chat:" + strconv.FormatInt(roomID, 10)
}
