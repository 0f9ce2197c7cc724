package postgresadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"
	sharedoutbox "ballotbox/internal/shared/outbox"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ledgerTx struct {
	db *gorm.DB
}

func (t *ledgerTx) LockLedger(_ context.Context) (entities.LedgerState, error) {
	var row ledgerStateModel
	err := t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", ledgerStateRowID).
		First(&row).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := seedLedgerState(t.db); err != nil {
			return entities.LedgerState{}, err
		}
		err = t.db.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", ledgerStateRowID).
			First(&row).
			Error
	}
	if err != nil {
		return entities.LedgerState{}, err
	}
	return row.toEntity(), nil
}

func (t *ledgerTx) SaveLedger(_ context.Context, state entities.LedgerState) error {
	return t.db.Model(&ledgerStateModel{}).
		Where("id = ?", ledgerStateRowID).
		Updates(map[string]any{
			"next_campaign_id":   state.NextCampaignID,
			"active_campaign_id": state.ActiveCampaignID,
			"updated_at":         time.Now().UTC(),
		}).
		Error
}

func (t *ledgerTx) GetCampaign(_ context.Context, campaignID uint64) (entities.Campaign, error) {
	return getCampaign(t.db.Clauses(clause.Locking{Strength: "UPDATE"}), campaignID)
}

func (t *ledgerTx) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	row := campaignModelFromEntity(campaign)
	if err := t.db.Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	return nil
}

func (t *ledgerTx) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	result := t.db.Model(&campaignModel{}).
		Where("campaign_id = ?", campaign.ID).
		Updates(campaignUpdatesFromEntity(campaign))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrInvalidCampaignID
	}
	return nil
}

func (t *ledgerTx) GetBasicState(_ context.Context, campaignID uint64) (entities.BasicState, error) {
	return getBasicState(t.db, campaignID)
}

// SaveBasicState upserts every choice row; choices are never removed.
func (t *ledgerTx) SaveBasicState(_ context.Context, state entities.BasicState) error {
	poll := basicPollModel{CampaignID: state.CampaignID, SingleVoteOnly: state.SingleVoteOnly}
	if err := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"single_vote_only"}),
	}).Create(&poll).Error; err != nil {
		return err
	}
	if len(state.Choices) == 0 {
		return nil
	}
	rows := make([]basicChoiceModel, 0, len(state.Choices))
	for index, name := range state.Choices {
		rows = append(rows, basicChoiceModel{
			CampaignID:  state.CampaignID,
			ChoiceIndex: uint64(index),
			Name:        name,
			Votes:       state.Votes[index],
		})
	}
	return t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "choice_index"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "votes"}),
	}).Create(&rows).Error
}

func (t *ledgerTx) GetBallotState(_ context.Context, campaignID uint64) (entities.BallotState, error) {
	return getBallotState(t.db, campaignID)
}

func (t *ledgerTx) SaveBallotState(_ context.Context, state entities.BallotState) error {
	if len(state.Positions) > 0 {
		positions := make([]ballotPositionModel, 0, len(state.Positions))
		for index, position := range state.Positions {
			positions = append(positions, ballotPositionModel{
				CampaignID:     state.CampaignID,
				PositionIndex:  uint64(index),
				Name:           position.Name,
				MaxSelections:  position.MaxSelections,
				CandidateCount: position.CandidateCount,
			})
		}
		if err := t.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "position_index"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "max_selections", "candidate_count"}),
		}).Create(&positions).Error; err != nil {
			return err
		}
	}
	if len(state.Candidates) == 0 {
		return nil
	}
	candidates := make([]ballotCandidateModel, 0, len(state.Candidates))
	for id, candidate := range state.Candidates {
		var votes uint64
		if id < len(state.Votes) {
			votes = state.Votes[id]
		}
		candidates = append(candidates, ballotCandidateModel{
			CampaignID:    state.CampaignID,
			CandidateID:   uint64(id),
			Name:          candidate.Name,
			PositionIndex: candidate.PositionIndex,
			Votes:         votes,
		})
	}
	return t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}, {Name: "candidate_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "position_index", "votes"}),
	}).Create(&candidates).Error
}

// RecordVoter relies on the (campaign_id, voter) primary key so two
// concurrent ballots from one address cannot both insert.
func (t *ledgerTx) RecordVoter(_ context.Context, record entities.VoterRecord) error {
	row := voterModel{
		CampaignID: record.CampaignID,
		Voter:      record.Voter.Hex(),
		VotedAt:    record.VotedAt.UTC(),
	}
	result := t.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domainerrors.ErrAlreadyVoted
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAlreadyVoted
	}
	return nil
}

func (t *ledgerTx) SaveFinalResult(_ context.Context, result entities.FinalResult) error {
	row, err := finalResultModelFromEntity(result)
	if err != nil {
		return err
	}
	created := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "campaign_id"}},
		DoNothing: true,
	}).Create(&row)
	if created.Error != nil {
		return created.Error
	}
	if created.RowsAffected == 0 {
		return domainerrors.ErrCampaignAlreadyEnded
	}
	return nil
}

func (t *ledgerTx) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	row := outboxModel{
		OutboxID:     strings.TrimSpace(envelope.EventID),
		EventType:    strings.TrimSpace(envelope.EventType),
		PartitionKey: strings.TrimSpace(envelope.PartitionKey),
		Payload:      payload,
		Status:       string(sharedoutbox.StatusPending),
		CreatedAt:    envelope.OccurredAt.UTC(),
	}
	if row.OutboxID == "" {
		row.OutboxID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	createResult := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "outbox_id"}},
		DoNothing: true,
	}).Create(&row)
	if createResult.Error != nil {
		return createResult.Error
	}
	if createResult.RowsAffected == 0 {
		var existing outboxModel
		if err := t.db.Select("payload").Where("outbox_id = ?", row.OutboxID).First(&existing).Error; err != nil {
			return err
		}
		if !bytes.Equal(existing.Payload, row.Payload) {
			return domainerrors.ErrConflict
		}
	}
	return nil
}

var _ ports.LedgerTx = (*ledgerTx)(nil)
