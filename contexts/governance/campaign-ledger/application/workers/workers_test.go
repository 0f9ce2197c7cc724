package workers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/adapters/memory"
	"ballotbox/contexts/governance/campaign-ledger/ports"
)

type recordingPublisher struct {
	published []ports.EventEnvelope
	topics    []string
	failAfter int
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, event ports.EventEnvelope) error {
	if p.failAfter > 0 && len(p.published) >= p.failAfter {
		return errors.New("broker unavailable")
	}
	p.published = append(p.published, event)
	p.topics = append(p.topics, topic)
	return nil
}

type recordingSubscriber struct {
	topics   []string
	groups   []string
	handlers []func(context.Context, ports.EventEnvelope) error
}

func (s *recordingSubscriber) Subscribe(
	_ context.Context,
	topic string,
	consumerGroup string,
	handler func(context.Context, ports.EventEnvelope) error,
) error {
	s.topics = append(s.topics, topic)
	s.groups = append(s.groups, consumerGroup)
	s.handlers = append(s.handlers, handler)
	return nil
}

func seedOutbox(t *testing.T, store *memory.Store, eventTypes ...string) {
	t.Helper()
	ctx := context.Background()
	err := store.WithinTx(ctx, func(tx ports.LedgerTx) error {
		for i, eventType := range eventTypes {
			if err := tx.AppendOutbox(ctx, ports.EventEnvelope{
				EventID:      eventType + "-" + string(rune('a'+i)),
				EventType:    eventType,
				OccurredAt:   time.Date(2026, 3, 1, 0, 0, i, 0, time.UTC),
				PartitionKey: "1",
				Data:         json.RawMessage(`{"campaign_id":1}`),
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed outbox failed: %v", err)
	}
}

func TestOutboxRelayPublishesInCommitOrder(t *testing.T) {
	store := memory.NewStore()
	seedOutbox(t, store, "campaign.created", "fee.paid", "campaign.activated")
	publisher := &recordingPublisher{}

	relay := OutboxRelay{Outbox: store, Publisher: publisher, BatchSize: 10}
	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("relay failed: %v", err)
	}

	want := []string{"campaign.created", "fee.paid", "campaign.activated"}
	if len(publisher.topics) != len(want) {
		t.Fatalf("expected %d publishes, got %d", len(want), len(publisher.topics))
	}
	for i, topic := range want {
		if publisher.topics[i] != topic {
			t.Fatalf("publish %d: expected topic %s, got %s", i, topic, publisher.topics[i])
		}
	}
	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected outbox drained, got %d pending", len(pending))
	}

	if err := relay.RunOnce(context.Background()); err != nil {
		t.Fatalf("idle relay failed: %v", err)
	}
	if len(publisher.published) != len(want) {
		t.Fatalf("expected no republish, got %d publishes", len(publisher.published))
	}
}

func TestOutboxRelayStopsAtFirstPublishFailure(t *testing.T) {
	store := memory.NewStore()
	seedOutbox(t, store, "campaign.created", "campaign.activated", "vote.basic_cast")
	publisher := &recordingPublisher{failAfter: 1}

	relay := OutboxRelay{Outbox: store, Publisher: publisher}
	if err := relay.RunOnce(context.Background()); err == nil {
		t.Fatalf("expected publish failure to surface")
	}

	pending, _ := store.ListPendingOutbox(context.Background(), 10)
	if len(pending) != 2 {
		t.Fatalf("expected 2 rows left pending, got %d", len(pending))
	}
	if pending[0].EventType != "campaign.activated" {
		t.Fatalf("expected failed row to stay at the head, got %s", pending[0].EventType)
	}
}

func TestAuditTrailConsumerSkipsReplays(t *testing.T) {
	store := memory.NewStore()
	subscriber := &recordingSubscriber{}
	consumer := AuditTrailConsumer{
		Subscriber: subscriber,
		Dedup:      store,
		Topics:     []string{"vote.basic_cast", "campaign.ended"},
	}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(subscriber.topics) != 2 || subscriber.groups[0] != defaultAuditCG {
		t.Fatalf("unexpected subscriptions %v groups %v", subscriber.topics, subscriber.groups)
	}

	event := ports.EventEnvelope{
		EventID:      "evt-1",
		EventType:    "vote.basic_cast",
		PartitionKey: "4",
		Data:         json.RawMessage(`{"campaign_id":4,"voter":"0x01"}`),
	}
	if err := consumer.handle(context.Background(), event); err != nil {
		t.Fatalf("first delivery failed: %v", err)
	}
	if err := consumer.handle(context.Background(), event); err != nil {
		t.Fatalf("replay should be skipped without error, got %v", err)
	}

	event.Data = json.RawMessage(`{"campaign_id":4,"voter":"0x02"}`)
	if err := consumer.handle(context.Background(), event); err == nil {
		t.Fatalf("expected conflicting payload for a seen event id to fail")
	}
}

func TestAuditTrailConsumerDisabled(t *testing.T) {
	subscriber := &recordingSubscriber{}
	consumer := AuditTrailConsumer{Subscriber: subscriber, Disabled: true}
	if err := consumer.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(subscriber.topics) != 0 {
		t.Fatalf("expected no subscriptions when disabled, got %v", subscriber.topics)
	}
}
