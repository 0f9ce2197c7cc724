package messaging

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"ballotbox/contexts/governance/campaign-ledger/ports"
)

const subscriberBuffer = 256

var ErrBusClosed = errors.New("event bus is closed")

type subscription struct {
	group string
	ch    chan ports.EventEnvelope
}

// Kafka is the event bus used by the outbox relay and ledger consumers. It
// delivers in process, keeping per-topic publish order for each subscriber.
type Kafka struct {
	mu          sync.RWMutex
	brokers     []string
	subscribers map[string][]subscription
	closed      bool
	logger      *slog.Logger
}

func NewKafka(brokers []string, logger *slog.Logger) (*Kafka, error) {
	if logger == nil {
		logger = slog.Default()
	}
	bus := &Kafka{
		brokers:     append([]string(nil), brokers...),
		subscribers: make(map[string][]subscription),
		logger:      logger,
	}
	logger.Info("event bus ready",
		"event", "kafka_bus_ready",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"brokers", strings.Join(bus.brokers, ","),
	)
	return bus, nil
}

// Publish blocks while a subscriber's buffer is full so the relay never marks
// an outbox row published for an event a consumer did not receive.
func (k *Kafka) Publish(ctx context.Context, topic string, event ports.EventEnvelope) error {
	k.mu.RLock()
	if k.closed {
		k.mu.RUnlock()
		return ErrBusClosed
	}
	subs := append([]subscription(nil), k.subscribers[topic]...)
	k.mu.RUnlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case sub.ch <- event:
		}
	}

	k.logger.Debug("event published",
		"event", "kafka_publish",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"topic", topic,
		"event_id", event.EventID,
		"event_type", event.EventType,
		"subscriber_count", len(subs),
	)
	return nil
}

func (k *Kafka) Subscribe(
	ctx context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	sub := subscription{
		group: strings.TrimSpace(consumerGroup),
		ch:    make(chan ports.EventEnvelope, subscriberBuffer),
	}

	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		return ErrBusClosed
	}
	k.subscribers[topic] = append(k.subscribers[topic], sub)
	k.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				k.removeSubscriber(topic, sub.ch)
				return
			case event := <-sub.ch:
				if err := handler(ctx, event); err != nil {
					k.logger.Error("consumer handler failed",
						"event", "kafka_consume_failed",
						"module", "internal/platform/messaging",
						"layer", "platform",
						"topic", topic,
						"consumer_group", sub.group,
						"event_id", event.EventID,
						"event_type", event.EventType,
						"error", err.Error(),
					)
				}
			}
		}
	}()
	return nil
}

// Close rejects further publishes and subscriptions. Consumer goroutines stop
// with their subscription context.
func (k *Kafka) Close() error {
	k.mu.Lock()
	k.closed = true
	k.mu.Unlock()
	return nil
}

func (k *Kafka) removeSubscriber(topic string, target chan ports.EventEnvelope) {
	k.mu.Lock()
	defer k.mu.Unlock()

	items := k.subscribers[topic]
	if len(items) == 0 {
		return
	}
	filtered := make([]subscription, 0, len(items))
	for _, item := range items {
		if item.ch != target {
			filtered = append(filtered, item)
		}
	}
	k.subscribers[topic] = filtered
}

var (
	_ ports.EventPublisher  = (*Kafka)(nil)
	_ ports.EventSubscriber = (*Kafka)(nil)
)
