package bus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/segmentio/kafka-go"
)

// KafkaBus carries envelopes over Kafka, one topic per room. Subscribers
// join without a consumer group so every subscriber sees every record, and
// start at the latest offset: a chat connection only cares about traffic
// published while it is attached.
type KafkaBus struct {
	brokers []string
	w       *kafka.Writer
}

func NewKafkaBus(brokers []string) *KafkaBus {
	return &KafkaBus{
		brokers: brokers,
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (b *KafkaBus) Publish(ctx context.Context, topic string, payload []byte) error {
	err := b.w.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Value: payload,
	})
	if err != nil {
		return fmt.Errorf("%w: publish %s: %v", ErrUnavailable, topic, err)
	}
	return nil
}

func (b *KafkaBus) Subscribe(ctx context.Context, topic string) (Subscription, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers: b.brokers,
		Topic:   topic,
	})
	// ReaderConfig.StartOffset only applies to consumer groups; a group-less
	// reader begins at the earliest retained record unless moved. Without
	// this, every new subscription would replay the room's full history.
	if err := r.SetOffset(kafka.LastOffset); err != nil {
		r.Close()
		return nil, fmt.Errorf("%w: subscribe %s: %v", ErrUnavailable, topic, err)
	}
	return &kafkaSub{r: r}, nil
}

func (b *KafkaBus) Close() error {
	return b.w.Close()
}

type kafkaSub struct {
	r    *kafka.Reader
	once sync.Once
}

func (s *kafkaSub) Receive(ctx context.Context) ([]byte, error) {
	msg, err := s.r.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) {
			return nil, ErrSubscriptionClosed
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return msg.Value, nil
}

func (s *kafkaSub) Close() error {
	var err error
	s.once.Do(func() {
		err = s.r.Close()
	})
	return err
}
