package workers

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/ports"
)

const defaultAuditCG = "campaign-ledger-audit-cg"

// AuditTrailConsumer writes one structured log line per ledger event. Replays
// of an already seen event id are skipped through the dedup store.
type AuditTrailConsumer struct {
	Subscriber    ports.EventSubscriber
	Dedup         ports.EventDedupStore
	Clock         ports.Clock
	Topics        []string
	ConsumerGroup string
	DedupTTL      time.Duration
	Disabled      bool
	Logger        *slog.Logger
}

func (c AuditTrailConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	if c.Disabled {
		logger.Info("audit consumer disabled by feature flag",
			"event", "campaign_ledger_audit_consumer_disabled",
			"module", moduleName,
			"layer", "worker",
		)
		return nil
	}
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultAuditCG
	}
	topics := c.Topics
	if len(topics) == 0 {
		topics = commands.LedgerEventTypes
	}

	for _, topic := range topics {
		if err := c.Subscriber.Subscribe(ctx, topic, group, c.handle); err != nil {
			logger.Error("audit consumer subscribe failed",
				"event", "campaign_ledger_audit_subscribe_failed",
				"module", moduleName,
				"layer", "worker",
				"topic", topic,
				"consumer_group", group,
				"error", err.Error(),
			)
			return err
		}
	}
	logger.Info("audit consumer subscriptions active",
		"event", "campaign_ledger_audit_consumer_started",
		"module", moduleName,
		"layer", "worker",
		"consumer_group", group,
		"topic_count", len(topics),
	)
	return nil
}

func (c AuditTrailConsumer) handle(ctx context.Context, event ports.EventEnvelope) error {
	logger := application.ResolveLogger(c.Logger)
	if err := event.Validate(); err != nil {
		logger.Error("audit event rejected",
			"event", "campaign_ledger_audit_invalid_envelope",
			"module", moduleName,
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	alreadyProcessed, err := c.Dedup.ReserveEvent(ctx, event.EventID, hashPayload(event.Data), c.now().Add(c.dedupTTL()))
	if err != nil {
		logger.Error("audit event dedupe failed",
			"event", "campaign_ledger_audit_dedupe_failed",
			"module", moduleName,
			"layer", "worker",
			"event_id", event.EventID,
			"event_type", event.EventType,
			"error", err.Error(),
		)
		return err
	}
	if alreadyProcessed {
		logger.Debug("audit event replay skipped",
			"event", "campaign_ledger_audit_replayed",
			"module", moduleName,
			"layer", "worker",
			"event_id", event.EventID,
		)
		return nil
	}

	var payload map[string]any
	if err := event.DecodeData(&payload); err != nil {
		logger.Error("audit event decode failed",
			"event", "campaign_ledger_audit_decode_failed",
			"module", moduleName,
			"layer", "worker",
			"event_id", event.EventID,
			"error", err.Error(),
		)
		return err
	}
	logger.Info("ledger event recorded",
		"event", "campaign_ledger_audit_recorded",
		"module", moduleName,
		"layer", "worker",
		"event_id", event.EventID,
		"event_type", event.EventType,
		"campaign_id", event.PartitionKey,
		"occurred_at", event.OccurredAt.UTC().Format(time.RFC3339),
		"data", payload,
	)
	return nil
}

func (c AuditTrailConsumer) now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (c AuditTrailConsumer) dedupTTL() time.Duration {
	if c.DedupTTL <= 0 {
		return 7 * 24 * time.Hour
	}
	return c.DedupTTL
}
