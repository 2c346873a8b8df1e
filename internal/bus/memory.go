package bus

import (
	"context"
	"sync"
)

const memorySubBuffer = 64

// MemoryBus is a process-local broker for standalone mode and tests. It
// keeps the same contract as the external brokers: subscribers receive
// every publish on their topic, echo included, with no replay.
type MemoryBus struct {
	mu   sync.Mutex
	subs map[string]map[*memorySub]struct{}
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[*memorySub]struct{})}
}

func (b *MemoryBus) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.Lock()
	targets := make([]*memorySub, 0, len(b.subs[topic]))
	for s := range b.subs[topic] {
		targets = append(targets, s)
	}
	b.mu.Unlock()

	for _, s := range targets {
		select {
		case s.ch <- payload:
		case <-s.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (b *MemoryBus) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	s := &memorySub{
		bus:   b,
		topic: topic,
		ch:    make(chan []byte, memorySubBuffer),
		done:  make(chan struct{}),
	}
	b.mu.Lock()
	if b.subs[topic] == nil {
		b.subs[topic] = make(map[*memorySub]struct{})
	}
	b.subs[topic][s] = struct{}{}
	b.mu.Unlock()
	return s, nil
}

type memorySub struct {
	bus   *MemoryBus
	topic string
	ch    chan []byte
	done  chan struct{}
	once  sync.Once
}

func (s *memorySub) Receive(ctx context.Context) ([]byte, error) {
	// Drain buffered payloads before reporting close so a subscriber
	// never loses messages delivered ahead of its own teardown.
	select {
	case payload := <-s.ch:
		return payload, nil
	default:
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-s.done:
		return nil, ErrSubscriptionClosed
	case payload := <-s.ch:
		return payload, nil
	}
}

func (s *memorySub) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.bus.mu.Lock()
		delete(s.bus.subs[s.topic], s)
		if len(s.bus.subs[s.topic]) == 0 {
			delete(s.bus.subs, s.topic)
		}
		s.bus.mu.Unlock()
	})
	return nil
}
