package ports

import (
	"context"
	"math/big"
	"time"

	contractsv1 "ballotbox/contracts/gen/events/v1"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"

	"github.com/ethereum/go-ethereum/common"
)

// LedgerStore runs every mutating ledger operation as one unit of work. The
// callback's writes become visible only if it returns nil; any error rolls
// back everything staged through the LedgerTx.
type LedgerStore interface {
	WithinTx(ctx context.Context, fn func(tx LedgerTx) error) error
}

// LedgerTx is the transactional view of ledger state. Implementations lock
// the global ledger row in LockLedger and the campaign row in GetCampaign, in
// that order.
type LedgerTx interface {
	LockLedger(ctx context.Context) (entities.LedgerState, error)
	SaveLedger(ctx context.Context, state entities.LedgerState) error

	GetCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error)
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error

	// Engine state reads return an empty state for campaigns that were never
	// configured.
	GetBasicState(ctx context.Context, campaignID uint64) (entities.BasicState, error)
	SaveBasicState(ctx context.Context, state entities.BasicState) error
	GetBallotState(ctx context.Context, campaignID uint64) (entities.BallotState, error)
	SaveBallotState(ctx context.Context, state entities.BallotState) error

	// RecordVoter is the exactly-once guard; it returns ErrAlreadyVoted when
	// the (campaign, voter) pair is already present.
	RecordVoter(ctx context.Context, record entities.VoterRecord) error

	// SaveFinalResult stores the archive snapshot; a second write for the
	// same campaign fails with ErrCampaignAlreadyEnded.
	SaveFinalResult(ctx context.Context, result entities.FinalResult) error

	OutboxWriter
}

// LedgerReader serves the query surface from committed state.
type LedgerReader interface {
	GetLedgerState(ctx context.Context) (entities.LedgerState, error)
	GetCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error)
	ListCampaigns(ctx context.Context) ([]entities.Campaign, error)
	GetBasicState(ctx context.Context, campaignID uint64) (entities.BasicState, error)
	GetBallotState(ctx context.Context, campaignID uint64) (entities.BallotState, error)
	HasVoted(ctx context.Context, campaignID uint64, voter common.Address) (bool, error)
	GetFinalResult(ctx context.Context, campaignID uint64) (entities.FinalResult, bool, error)
}

// TokenGateway is the fungible governance token. Transfer moves tokens held
// by the ledger itself; TransferFrom spends a previously granted allowance.
// A transfer the token reports as unsuccessful is returned as an error.
type TokenGateway interface {
	BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)
	Allowance(ctx context.Context, owner common.Address, spender common.Address) (*big.Int, error)
	TransferFrom(ctx context.Context, from common.Address, to common.Address, amount *big.Int) error
	Transfer(ctx context.Context, to common.Address, amount *big.Int) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type EventSubscriber interface {
	Subscribe(
		ctx context.Context,
		topic string,
		consumerGroup string,
		handler func(context.Context, EventEnvelope) error,
	) error
}

type EventDedupStore interface {
	ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error)
}
