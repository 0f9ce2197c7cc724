package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"
	sharedoutbox "ballotbox/internal/shared/outbox"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

type voterKey struct {
	campaignID uint64
	voter      common.Address
}

type outboxRecord struct {
	message ports.OutboxMessage
	status  sharedoutbox.Status
	seq     uint64
}

type dedupRecord struct {
	payloadHash string
	expiresAt   time.Time
}

// Store keeps the whole ledger in process. Transactions are serialized on
// one lock and applied only when the callback succeeds.
type Store struct {
	mu sync.RWMutex

	state     entities.LedgerState
	campaigns map[uint64]entities.Campaign
	basic     map[uint64]entities.BasicState
	ballot    map[uint64]entities.BallotState
	voters    map[voterKey]entities.VoterRecord
	results   map[uint64]entities.FinalResult

	outbox     map[string]outboxRecord
	outboxSeq  uint64
	eventDedup map[string]dedupRecord
}

func NewStore() *Store {
	return &Store{
		state:      entities.NewLedgerState(),
		campaigns:  make(map[uint64]entities.Campaign),
		basic:      make(map[uint64]entities.BasicState),
		ballot:     make(map[uint64]entities.BallotState),
		voters:     make(map[voterKey]entities.VoterRecord),
		results:    make(map[uint64]entities.FinalResult),
		outbox:     make(map[string]outboxRecord),
		eventDedup: make(map[string]dedupRecord),
	}
}

func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := newMemoryTx(s)
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (s *Store) GetLedgerState(_ context.Context) (entities.LedgerState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state, nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID uint64) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	campaign, ok := s.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignID
	}
	return campaign, nil
}

func (s *Store) ListCampaigns(_ context.Context) ([]entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		items = append(items, campaign)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (s *Store) GetBasicState(_ context.Context, campaignID uint64) (entities.BasicState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.basicState(campaignID), nil
}

func (s *Store) GetBallotState(_ context.Context, campaignID uint64) (entities.BallotState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ballotState(campaignID), nil
}

func (s *Store) HasVoted(_ context.Context, campaignID uint64, voter common.Address) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voters[voterKey{campaignID: campaignID, voter: voter}]
	return ok, nil
}

func (s *Store) GetFinalResult(_ context.Context, campaignID uint64) (entities.FinalResult, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[campaignID]
	if !ok {
		return entities.FinalResult{}, false, nil
	}
	return result.Clone(), true, nil
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows := make([]outboxRecord, 0, len(s.outbox))
	for _, row := range s.outbox {
		if row.status != sharedoutbox.StatusPending {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].seq < rows[j].seq
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.message)
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.outbox[strings.TrimSpace(outboxID)]
	if !ok {
		return domainerrors.ErrConflict
	}
	row.status = sharedoutbox.StatusPublished
	s.outbox[strings.TrimSpace(outboxID)] = row
	return nil
}

func (s *Store) ReserveEvent(
	_ context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.TrimSpace(eventID)
	existing, ok := s.eventDedup[key]
	if ok {
		if !existing.expiresAt.IsZero() && time.Now().UTC().After(existing.expiresAt.UTC()) {
			delete(s.eventDedup, key)
		} else {
			if existing.payloadHash != strings.TrimSpace(payloadHash) {
				return false, domainerrors.ErrConflict
			}
			return true, nil
		}
	}

	s.eventDedup[key] = dedupRecord{
		payloadHash: strings.TrimSpace(payloadHash),
		expiresAt:   expiresAt.UTC(),
	}
	return false, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

func (s *Store) basicState(campaignID uint64) entities.BasicState {
	state, ok := s.basic[campaignID]
	if !ok {
		return entities.BasicState{CampaignID: campaignID}
	}
	return state.Clone()
}

func (s *Store) ballotState(campaignID uint64) entities.BallotState {
	state, ok := s.ballot[campaignID]
	if !ok {
		return entities.NewBallotState(campaignID)
	}
	return state.Clone()
}

// memoryTx stages writes on top of the store; reads fall through to the
// committed maps when nothing is staged for a key.
type memoryTx struct {
	store *Store

	state     *entities.LedgerState
	campaigns map[uint64]entities.Campaign
	basic     map[uint64]entities.BasicState
	ballot    map[uint64]entities.BallotState
	voters    map[voterKey]entities.VoterRecord
	results   map[uint64]entities.FinalResult
	outbox    []outboxRecord
}

func newMemoryTx(store *Store) *memoryTx {
	return &memoryTx{
		store:     store,
		campaigns: make(map[uint64]entities.Campaign),
		basic:     make(map[uint64]entities.BasicState),
		ballot:    make(map[uint64]entities.BallotState),
		voters:    make(map[voterKey]entities.VoterRecord),
		results:   make(map[uint64]entities.FinalResult),
	}
}

func (t *memoryTx) LockLedger(_ context.Context) (entities.LedgerState, error) {
	if t.state != nil {
		return *t.state, nil
	}
	return t.store.state, nil
}

func (t *memoryTx) SaveLedger(_ context.Context, state entities.LedgerState) error {
	t.state = &state
	return nil
}

func (t *memoryTx) GetCampaign(_ context.Context, campaignID uint64) (entities.Campaign, error) {
	if campaign, ok := t.campaigns[campaignID]; ok {
		return campaign, nil
	}
	campaign, ok := t.store.campaigns[campaignID]
	if !ok {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignID
	}
	return campaign, nil
}

func (t *memoryTx) CreateCampaign(ctx context.Context, campaign entities.Campaign) error {
	if _, err := t.GetCampaign(ctx, campaign.ID); err == nil {
		return domainerrors.ErrConflict
	}
	t.campaigns[campaign.ID] = campaign
	return nil
}

func (t *memoryTx) UpdateCampaign(ctx context.Context, campaign entities.Campaign) error {
	if _, err := t.GetCampaign(ctx, campaign.ID); err != nil {
		return err
	}
	t.campaigns[campaign.ID] = campaign
	return nil
}

func (t *memoryTx) GetBasicState(_ context.Context, campaignID uint64) (entities.BasicState, error) {
	if state, ok := t.basic[campaignID]; ok {
		return state.Clone(), nil
	}
	return t.store.basicState(campaignID), nil
}

func (t *memoryTx) SaveBasicState(_ context.Context, state entities.BasicState) error {
	t.basic[state.CampaignID] = state.Clone()
	return nil
}

func (t *memoryTx) GetBallotState(_ context.Context, campaignID uint64) (entities.BallotState, error) {
	if state, ok := t.ballot[campaignID]; ok {
		return state.Clone(), nil
	}
	return t.store.ballotState(campaignID), nil
}

func (t *memoryTx) SaveBallotState(_ context.Context, state entities.BallotState) error {
	t.ballot[state.CampaignID] = state.Clone()
	return nil
}

func (t *memoryTx) RecordVoter(_ context.Context, record entities.VoterRecord) error {
	key := voterKey{campaignID: record.CampaignID, voter: record.Voter}
	if _, ok := t.voters[key]; ok {
		return domainerrors.ErrAlreadyVoted
	}
	if _, ok := t.store.voters[key]; ok {
		return domainerrors.ErrAlreadyVoted
	}
	t.voters[key] = record
	return nil
}

func (t *memoryTx) SaveFinalResult(_ context.Context, result entities.FinalResult) error {
	if _, ok := t.results[result.CampaignID]; ok {
		return domainerrors.ErrCampaignAlreadyEnded
	}
	if _, ok := t.store.results[result.CampaignID]; ok {
		return domainerrors.ErrCampaignAlreadyEnded
	}
	t.results[result.CampaignID] = result.Clone()
	return nil
}

func (t *memoryTx) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	if existing, ok := t.store.outbox[outboxID]; ok {
		if !bytes.Equal(existing.message.Payload, payload) {
			return domainerrors.ErrConflict
		}
		return nil
	}
	for _, staged := range t.outbox {
		if staged.message.OutboxID == outboxID {
			if !bytes.Equal(staged.message.Payload, payload) {
				return domainerrors.ErrConflict
			}
			return nil
		}
	}
	createdAt := envelope.OccurredAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	t.outbox = append(t.outbox, outboxRecord{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    strings.TrimSpace(envelope.EventType),
			PartitionKey: strings.TrimSpace(envelope.PartitionKey),
			Payload:      payload,
			CreatedAt:    createdAt,
		},
		status: sharedoutbox.StatusPending,
	})
	return nil
}

func (t *memoryTx) commit() {
	s := t.store
	if t.state != nil {
		s.state = *t.state
	}
	for id, campaign := range t.campaigns {
		s.campaigns[id] = campaign
	}
	for id, state := range t.basic {
		s.basic[id] = state
	}
	for id, state := range t.ballot {
		s.ballot[id] = state
	}
	for key, record := range t.voters {
		s.voters[key] = record
	}
	for id, result := range t.results {
		s.results[id] = result
	}
	for _, row := range t.outbox {
		s.outboxSeq++
		row.seq = s.outboxSeq
		s.outbox[row.message.OutboxID] = row
	}
}

var (
	_ ports.LedgerStore      = (*Store)(nil)
	_ ports.LedgerReader     = (*Store)(nil)
	_ ports.OutboxRepository = (*Store)(nil)
	_ ports.EventDedupStore  = (*Store)(nil)
	_ ports.Clock            = (*Store)(nil)
	_ ports.IDGenerator      = (*Store)(nil)
	_ ports.LedgerTx         = (*memoryTx)(nil)
)
