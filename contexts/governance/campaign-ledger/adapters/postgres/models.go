package postgresadapter

import (
	"encoding/json"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"

	"github.com/ethereum/go-ethereum/common"
)

const ledgerStateRowID = 1

type ledgerStateModel struct {
	ID               int       `gorm:"column:id;primaryKey"`
	NextCampaignID   uint64    `gorm:"column:next_campaign_id"`
	ActiveCampaignID uint64    `gorm:"column:active_campaign_id"`
	UpdatedAt        time.Time `gorm:"column:updated_at"`
}

func (ledgerStateModel) TableName() string {
	return "ledger_state"
}

func (m ledgerStateModel) toEntity() entities.LedgerState {
	return entities.LedgerState{
		NextCampaignID:   m.NextCampaignID,
		ActiveCampaignID: m.ActiveCampaignID,
	}
}

type campaignModel struct {
	CampaignID  uint64     `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	Type        string     `gorm:"column:campaign_type"`
	Description string     `gorm:"column:description"`
	Creator     string     `gorm:"column:creator;index"`
	IsActive    bool       `gorm:"column:is_active"`
	IsFinalized bool       `gorm:"column:is_finalized"`
	IsEnded     bool       `gorm:"column:is_ended"`
	TotalVotes  uint64     `gorm:"column:total_votes"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	FinalizedAt *time.Time `gorm:"column:finalized_at"`
	EndedAt     *time.Time `gorm:"column:ended_at"`
}

func (campaignModel) TableName() string {
	return "ledger_campaigns"
}

func campaignModelFromEntity(campaign entities.Campaign) campaignModel {
	return campaignModel{
		CampaignID:  campaign.ID,
		Type:        string(campaign.Type),
		Description: campaign.Description,
		Creator:     campaign.Creator.Hex(),
		IsActive:    campaign.IsActive,
		IsFinalized: campaign.IsFinalized,
		IsEnded:     campaign.IsEnded,
		TotalVotes:  campaign.TotalVotes,
		CreatedAt:   campaign.CreatedAt.UTC(),
		UpdatedAt:   campaign.UpdatedAt.UTC(),
		FinalizedAt: normalizeOptionalTime(campaign.FinalizedAt),
		EndedAt:     normalizeOptionalTime(campaign.EndedAt),
	}
}

func campaignUpdatesFromEntity(campaign entities.Campaign) map[string]any {
	return map[string]any{
		"description":  campaign.Description,
		"is_active":    campaign.IsActive,
		"is_finalized": campaign.IsFinalized,
		"is_ended":     campaign.IsEnded,
		"total_votes":  campaign.TotalVotes,
		"updated_at":   campaign.UpdatedAt.UTC(),
		"finalized_at": normalizeOptionalTime(campaign.FinalizedAt),
		"ended_at":     normalizeOptionalTime(campaign.EndedAt),
	}
}

func (m campaignModel) toEntity() entities.Campaign {
	return entities.Campaign{
		ID:          m.CampaignID,
		Type:        entities.CampaignType(m.Type),
		Description: m.Description,
		Creator:     common.HexToAddress(m.Creator),
		IsActive:    m.IsActive,
		IsFinalized: m.IsFinalized,
		IsEnded:     m.IsEnded,
		TotalVotes:  m.TotalVotes,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
		FinalizedAt: normalizeOptionalTime(m.FinalizedAt),
		EndedAt:     normalizeOptionalTime(m.EndedAt),
	}
}

type basicPollModel struct {
	CampaignID     uint64 `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	SingleVoteOnly bool   `gorm:"column:single_vote_only"`
}

func (basicPollModel) TableName() string {
	return "ledger_basic_polls"
}

type basicChoiceModel struct {
	CampaignID  uint64 `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	ChoiceIndex uint64 `gorm:"column:choice_index;primaryKey;autoIncrement:false"`
	Name        string `gorm:"column:name"`
	Votes       uint64 `gorm:"column:votes"`
}

func (basicChoiceModel) TableName() string {
	return "ledger_basic_choices"
}

type ballotPositionModel struct {
	CampaignID     uint64 `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	PositionIndex  uint64 `gorm:"column:position_index;primaryKey;autoIncrement:false"`
	Name           string `gorm:"column:name"`
	MaxSelections  uint8  `gorm:"column:max_selections"`
	CandidateCount uint64 `gorm:"column:candidate_count"`
}

func (ballotPositionModel) TableName() string {
	return "ledger_ballot_positions"
}

type ballotCandidateModel struct {
	CampaignID    uint64 `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	CandidateID   uint64 `gorm:"column:candidate_id;primaryKey;autoIncrement:false"`
	Name          string `gorm:"column:name"`
	PositionIndex uint64 `gorm:"column:position_index"`
	Votes         uint64 `gorm:"column:votes"`
}

func (ballotCandidateModel) TableName() string {
	return "ledger_ballot_candidates"
}

type voterModel struct {
	CampaignID uint64    `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	Voter      string    `gorm:"column:voter;primaryKey"`
	VotedAt    time.Time `gorm:"column:voted_at"`
}

func (voterModel) TableName() string {
	return "ledger_voters"
}

type finalResultModel struct {
	CampaignID uint64    `gorm:"column:campaign_id;primaryKey;autoIncrement:false"`
	Type       string    `gorm:"column:campaign_type"`
	TotalVotes uint64    `gorm:"column:total_votes"`
	Payload    []byte    `gorm:"column:payload;type:jsonb"`
	EndedAt    time.Time `gorm:"column:ended_at"`
}

func (finalResultModel) TableName() string {
	return "ledger_final_results"
}

type finalResultPayload struct {
	Choices        []string             `json:"choices,omitempty"`
	ChoiceVotes    []uint64             `json:"choice_votes,omitempty"`
	Positions      []entities.Position  `json:"positions,omitempty"`
	Candidates     []entities.Candidate `json:"candidates,omitempty"`
	CandidateVotes []uint64             `json:"candidate_votes,omitempty"`
}

func finalResultModelFromEntity(result entities.FinalResult) (finalResultModel, error) {
	payload, err := json.Marshal(finalResultPayload{
		Choices:        result.Choices,
		ChoiceVotes:    result.ChoiceVotes,
		Positions:      result.Positions,
		Candidates:     result.Candidates,
		CandidateVotes: result.CandidateVotes,
	})
	if err != nil {
		return finalResultModel{}, err
	}
	return finalResultModel{
		CampaignID: result.CampaignID,
		Type:       string(result.Type),
		TotalVotes: result.TotalVotes,
		Payload:    payload,
		EndedAt:    result.EndedAt.UTC(),
	}, nil
}

func (m finalResultModel) toEntity() (entities.FinalResult, error) {
	var payload finalResultPayload
	if err := json.Unmarshal(m.Payload, &payload); err != nil {
		return entities.FinalResult{}, err
	}
	return entities.FinalResult{
		CampaignID:     m.CampaignID,
		Type:           entities.CampaignType(m.Type),
		Choices:        payload.Choices,
		ChoiceVotes:    payload.ChoiceVotes,
		Positions:      payload.Positions,
		Candidates:     payload.Candidates,
		CandidateVotes: payload.CandidateVotes,
		TotalVotes:     m.TotalVotes,
		EndedAt:        m.EndedAt.UTC(),
	}, nil
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload;type:jsonb"`
	Status       string     `gorm:"column:status;index"`
	Seq          uint64     `gorm:"column:seq;autoIncrement"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "ledger_outbox"
}

type eventDedupModel struct {
	EventID     string    `gorm:"column:event_id;primaryKey"`
	PayloadHash string    `gorm:"column:payload_hash"`
	ExpiresAt   time.Time `gorm:"column:expires_at"`
	ProcessedAt time.Time `gorm:"column:processed_at"`
}

func (eventDedupModel) TableName() string {
	return "ledger_event_dedup"
}

func normalizeOptionalTime(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	timestamp := value.UTC()
	return &timestamp
}
