package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"
	sharedoutbox "ballotbox/internal/shared/outbox"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the ledger tables and seeds the singleton ledger_state row.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(
		&ledgerStateModel{},
		&campaignModel{},
		&basicPollModel{},
		&basicChoiceModel{},
		&ballotPositionModel{},
		&ballotCandidateModel{},
		&voterModel{},
		&finalResultModel{},
		&outboxModel{},
		&eventDedupModel{},
	); err != nil {
		return r.logError("campaign_ledger_migrate_failed", err)
	}
	if err := seedLedgerState(r.db.WithContext(ctx)); err != nil {
		return r.logError("campaign_ledger_seed_state_failed", err)
	}
	return nil
}

// WithinTx runs fn in one database transaction. Campaign and ledger rows read
// through the LedgerTx are locked FOR UPDATE until commit or rollback.
func (r *Repository) WithinTx(ctx context.Context, fn func(tx ports.LedgerTx) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerTx{db: tx})
	})
}

func (r *Repository) GetLedgerState(ctx context.Context) (entities.LedgerState, error) {
	var row ledgerStateModel
	err := r.db.WithContext(ctx).
		Where("id = ?", ledgerStateRowID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.NewLedgerState(), nil
		}
		return entities.LedgerState{}, r.logError("campaign_ledger_state_read_failed", err)
	}
	return row.toEntity(), nil
}

func (r *Repository) GetCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error) {
	return getCampaign(r.db.WithContext(ctx), campaignID)
}

func (r *Repository) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	var rows []campaignModel
	if err := r.db.WithContext(ctx).
		Order("campaign_id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("campaign_ledger_list_campaigns_failed", err)
	}
	items := make([]entities.Campaign, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetBasicState(ctx context.Context, campaignID uint64) (entities.BasicState, error) {
	return getBasicState(r.db.WithContext(ctx), campaignID)
}

func (r *Repository) GetBallotState(ctx context.Context, campaignID uint64) (entities.BallotState, error) {
	return getBallotState(r.db.WithContext(ctx), campaignID)
}

func (r *Repository) HasVoted(ctx context.Context, campaignID uint64, voter common.Address) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&voterModel{}).
		Where("campaign_id = ? AND voter = ?", campaignID, voter.Hex()).
		Count(&count).
		Error; err != nil {
		return false, r.logError("campaign_ledger_has_voted_failed", err, "campaign_id", campaignID)
	}
	return count > 0, nil
}

func (r *Repository) GetFinalResult(ctx context.Context, campaignID uint64) (entities.FinalResult, bool, error) {
	var row finalResultModel
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.FinalResult{}, false, nil
		}
		return entities.FinalResult{}, false, r.logError("campaign_ledger_final_result_read_failed", err, "campaign_id", campaignID)
	}
	result, err := row.toEntity()
	if err != nil {
		return entities.FinalResult{}, false, err
	}
	return result, true, nil
}

func (r *Repository) ListPendingOutbox(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	var rows []outboxModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", string(sharedoutbox.StatusPending)).
		Order("seq ASC").
		Limit(limit).
		Find(&rows).
		Error; err != nil {
		return nil, r.logError("campaign_ledger_outbox_list_failed", err)
	}

	items := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.OutboxMessage{
			OutboxID:     row.OutboxID,
			EventType:    row.EventType,
			PartitionKey: row.PartitionKey,
			Payload:      append([]byte(nil), row.Payload...),
			CreatedAt:    row.CreatedAt.UTC(),
		})
	}
	return items, nil
}

func (r *Repository) MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&outboxModel{}).
		Where("outbox_id = ?", strings.TrimSpace(outboxID)).
		Updates(map[string]any{
			"status":       string(sharedoutbox.StatusPublished),
			"published_at": publishedAt.UTC(),
		})
	if result.Error != nil {
		return r.logError("campaign_ledger_outbox_mark_failed", result.Error, "outbox_id", outboxID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrConflict
	}
	return nil
}

func (r *Repository) ReserveEvent(
	ctx context.Context,
	eventID string,
	payloadHash string,
	expiresAt time.Time,
) (bool, error) {
	row := eventDedupModel{
		EventID:     strings.TrimSpace(eventID),
		PayloadHash: strings.TrimSpace(payloadHash),
		ExpiresAt:   expiresAt.UTC(),
		ProcessedAt: time.Now().UTC(),
	}

	createResult := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoNothing: true,
		}).
		Create(&row)
	if createResult.Error != nil {
		return false, createResult.Error
	}
	if createResult.RowsAffected > 0 {
		return false, nil
	}

	var existing eventDedupModel
	if err := r.db.WithContext(ctx).
		Select("payload_hash").
		Where("event_id = ?", row.EventID).
		First(&existing).
		Error; err != nil {
		return false, err
	}
	if existing.PayloadHash != row.PayloadHash {
		return false, domainerrors.ErrConflict
	}
	return true, nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+7)
	fields = append(fields,
		"event", event,
		"module", "governance/campaign-ledger",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("campaign ledger repository operation failed", fields...)
	return err
}

func seedLedgerState(db *gorm.DB) error {
	initial := entities.NewLedgerState()
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&ledgerStateModel{
		ID:             ledgerStateRowID,
		NextCampaignID: initial.NextCampaignID,
		UpdatedAt:      time.Now().UTC(),
	}).Error
}

func getCampaign(db *gorm.DB, campaignID uint64) (entities.Campaign, error) {
	var row campaignModel
	err := db.Where("campaign_id = ?", campaignID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Campaign{}, domainerrors.ErrInvalidCampaignID
		}
		return entities.Campaign{}, err
	}
	return row.toEntity(), nil
}

func getBasicState(db *gorm.DB, campaignID uint64) (entities.BasicState, error) {
	state := entities.BasicState{CampaignID: campaignID}

	var poll basicPollModel
	err := db.Where("campaign_id = ?", campaignID).First(&poll).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.BasicState{}, err
	}
	state.SingleVoteOnly = poll.SingleVoteOnly

	var choices []basicChoiceModel
	if err := db.Where("campaign_id = ?", campaignID).
		Order("choice_index ASC").
		Find(&choices).
		Error; err != nil {
		return entities.BasicState{}, err
	}
	for _, choice := range choices {
		state.Choices = append(state.Choices, choice.Name)
		state.Votes = append(state.Votes, choice.Votes)
	}
	return state, nil
}

func getBallotState(db *gorm.DB, campaignID uint64) (entities.BallotState, error) {
	state := entities.NewBallotState(campaignID)

	var positions []ballotPositionModel
	if err := db.Where("campaign_id = ?", campaignID).
		Order("position_index ASC").
		Find(&positions).
		Error; err != nil {
		return entities.BallotState{}, err
	}
	for _, position := range positions {
		state.Positions = append(state.Positions, entities.Position{
			Name:           position.Name,
			MaxSelections:  position.MaxSelections,
			CandidateCount: position.CandidateCount,
		})
	}

	var candidates []ballotCandidateModel
	if err := db.Where("campaign_id = ?", campaignID).
		Order("candidate_id ASC").
		Find(&candidates).
		Error; err != nil {
		return entities.BallotState{}, err
	}
	for _, candidate := range candidates {
		state.Candidates = append(state.Candidates, entities.Candidate{
			Name:          candidate.Name,
			PositionIndex: candidate.PositionIndex,
		})
		state.Votes = append(state.Votes, candidate.Votes)
	}
	return state, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var (
	_ ports.LedgerStore      = (*Repository)(nil)
	_ ports.LedgerReader     = (*Repository)(nil)
	_ ports.OutboxRepository = (*Repository)(nil)
	_ ports.EventDedupStore  = (*Repository)(nil)
)
