package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Tous-project/chat-server/internal/bus"
	"github.com/Tous-project/chat-server/internal/domain"
	"github.com/Tous-project/chat-server/internal/observability"
)

// leaveTimeout bounds the best-effort goodbye publish after the connection
// is already gone.
const leaveTimeout = 5 * time.Second

// Relay binds one authorized connection to one room topic. It runs a send
// loop (client to bus) and a receive loop (bus to client) concurrently;
// whichever terminates first cancels the other, then the relay drains:
// goodbye notice, subscription closed, connection closed exactly once,
// registry decremented. A relay never outlives its connection.
type Relay struct {
	conn     Conn
	broker   bus.Bus
	registry *Registry
	roomID   int64
	user     domain.User
	log      *zap.Logger
}

func NewRelay(conn Conn, broker bus.Bus, registry *Registry, roomID int64, user domain.User, log *zap.Logger) *Relay {
	return &Relay{
		conn:     conn,
		broker:   broker,
		registry: registry,
		roomID:   roomID,
		user:     user,
		log: log.With(
			zap.Int64("room_id", roomID),
			zap.Int64("user_id", user.ID),
		),
	}
}

// Run drives the relay until either loop terminates, then tears down.
// It returns nil on a clean client disconnect.
func (r *Relay) Run(ctx context.Context) error {
	topic := bus.Topic(r.roomID)

	// Subscribe before anything is published so the joiner receives the
	// echo of its own join notice.
	sub, err := r.broker.Subscribe(ctx, topic)
	if err != nil {
		r.conn.Close()
		return fmt.Errorf("relay: %w", err)
	}

	if first := r.registry.Enter(r.roomID); first {
		observability.RoomsActive.Inc()
		r.log.Info("room activated on this instance")
	}

	if err := r.publishNotice(ctx, topic, fmt.Sprintf("%q joined the room", r.user.Name)); err != nil {
		r.log.Error("join notice failed", zap.Error(err))
		r.teardown(topic, "", sub)
		return fmt.Errorf("relay: %w", err)
	}

	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() { errc <- r.sendLoop(loopCtx, topic) }()
	go func() { errc <- r.receiveLoop(loopCtx, sub) }()

	// First loop to finish, for any reason, drains the relay. Cancel the
	// context, close the subscription to unblock a pending bus pull, and
	// close the connection to unblock a pending socket read.
	err = <-errc
	cancel()
	sub.Close()
	r.conn.Close()
	<-errc

	r.teardown(topic, fmt.Sprintf("%q left the room", r.user.Name), sub)

	if errors.Is(err, ErrConnectionClosed) {
		r.log.Info("client disconnected")
		return nil
	}
	return err
}

// sendLoop forwards client input to the room topic. It ends on connection
// close or the first publish failure; publishes are never retried because
// a retry could reorder or duplicate traffic after a torn connection.
func (r *Relay) sendLoop(ctx context.Context, topic string) error {
	for {
		text, err := r.conn.Receive()
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		payload, err := ParseClientPayload(text)
		if err != nil {
			r.log.Warn("ignoring malformed client payload", zap.Error(err))
			continue
		}

		env := NewUserEnvelope(r.user, payload.Type, payload.Text, payload.TargetMessageID)
		data, err := env.Encode()
		if err != nil {
			return fmt.Errorf("encode envelope: %w", err)
		}
		if err := r.broker.Publish(ctx, topic, data); err != nil {
			return err
		}
	}
}

// receiveLoop forwards bus traffic verbatim to the client. A payload that
// does not decode as an envelope is skipped: one corrupt message from
// another party must not sever this connection.
func (r *Relay) receiveLoop(ctx context.Context, sub bus.Subscription) error {
	for {
		data, err := sub.Receive(ctx)
		if err != nil {
			return err
		}
		if _, err := DecodeEnvelope(data); err != nil {
			observability.EnvelopesDroppedTotal.Inc()
			r.log.Warn("skipping malformed bus payload", zap.Error(err))
			continue
		}
		if err := r.conn.Send(string(data)); err != nil {
			return err
		}
		observability.EnvelopesRelayedTotal.Inc()
	}
}

func (r *Relay) publishNotice(ctx context.Context, topic, text string) error {
	env := NewSystemEnvelope(text)
	data, err := env.Encode()
	if err != nil {
		return fmt.Errorf("encode notice: %w", err)
	}
	return r.broker.Publish(ctx, topic, data)
}

// teardown publishes the goodbye notice (best effort; the connection is
// already gone, so its failure is only logged), releases the subscription
// and connection, and decrements the registry.
func (r *Relay) teardown(topic, notice string, sub bus.Subscription) {
	if notice != "" {
		ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
		defer cancel()
		if err := r.publishNotice(ctx, topic, notice); err != nil {
			r.log.Warn("leave notice dropped", zap.Error(err))
		}
	}
	sub.Close()
	r.conn.Close()
	if last := r.registry.Leave(r.roomID); last {
		observability.RoomsActive.Dec()
		r.log.Info("room idle on this instance")
	}
}
