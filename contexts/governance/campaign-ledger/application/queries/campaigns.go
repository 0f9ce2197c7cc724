package queries

import (
	"context"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"
)

// CampaignQueryUseCase reads committed registry and tally state.
type CampaignQueryUseCase struct {
	Ledger ports.LedgerReader
}

type BasicResults struct {
	CampaignID     uint64
	Choices        []string
	Votes          []uint64
	SingleVoteOnly bool
	TotalVotes     uint64
}

type BallotResults struct {
	CampaignID uint64
	Positions  []entities.Position
	Candidates []entities.Candidate
	Votes      []uint64
	TotalVotes uint64
}

func (uc CampaignQueryUseCase) GetCampaign(ctx context.Context, campaignID uint64) (entities.Campaign, error) {
	if campaignID == 0 {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignID
	}
	return uc.Ledger.GetCampaign(ctx, campaignID)
}

func (uc CampaignQueryUseCase) ListCampaigns(ctx context.Context) ([]entities.Campaign, error) {
	return uc.Ledger.ListCampaigns(ctx)
}

// NextCampaignID previews the id the next successful create will receive.
func (uc CampaignQueryUseCase) NextCampaignID(ctx context.Context) (uint64, error) {
	state, err := uc.Ledger.GetLedgerState(ctx)
	if err != nil {
		return 0, err
	}
	return state.NextCampaignID, nil
}

func (uc CampaignQueryUseCase) ActiveCampaign(ctx context.Context) (entities.Campaign, bool, error) {
	state, err := uc.Ledger.GetLedgerState(ctx)
	if err != nil {
		return entities.Campaign{}, false, err
	}
	if state.ActiveCampaignID == 0 {
		return entities.Campaign{}, false, nil
	}
	campaign, err := uc.Ledger.GetCampaign(ctx, state.ActiveCampaignID)
	if err != nil {
		return entities.Campaign{}, false, err
	}
	return campaign, true, nil
}

func (uc CampaignQueryUseCase) BasicResults(ctx context.Context, campaignID uint64) (BasicResults, error) {
	campaign, err := uc.finalizedCampaign(ctx, campaignID, entities.CampaignTypeBasic)
	if err != nil {
		return BasicResults{}, err
	}
	state, err := uc.Ledger.GetBasicState(ctx, campaignID)
	if err != nil {
		return BasicResults{}, err
	}
	return BasicResults{
		CampaignID:     campaign.ID,
		Choices:        state.Choices,
		Votes:          state.Votes,
		SingleVoteOnly: state.SingleVoteOnly,
		TotalVotes:     campaign.TotalVotes,
	}, nil
}

func (uc CampaignQueryUseCase) BallotResults(ctx context.Context, campaignID uint64) (BallotResults, error) {
	campaign, err := uc.finalizedCampaign(ctx, campaignID, entities.CampaignTypeBallot)
	if err != nil {
		return BallotResults{}, err
	}
	state, err := uc.Ledger.GetBallotState(ctx, campaignID)
	if err != nil {
		return BallotResults{}, err
	}
	return BallotResults{
		CampaignID: campaign.ID,
		Positions:  state.Positions,
		Candidates: state.Candidates,
		Votes:      state.Votes,
		TotalVotes: campaign.TotalVotes,
	}, nil
}

// FinalResult returns the archived snapshot of an ended campaign.
func (uc CampaignQueryUseCase) FinalResult(ctx context.Context, campaignID uint64) (entities.FinalResult, error) {
	if _, err := uc.GetCampaign(ctx, campaignID); err != nil {
		return entities.FinalResult{}, err
	}
	result, found, err := uc.Ledger.GetFinalResult(ctx, campaignID)
	if err != nil {
		return entities.FinalResult{}, err
	}
	if !found {
		return entities.FinalResult{}, domainerrors.ErrCampaignNotEnded
	}
	return result, nil
}

func (uc CampaignQueryUseCase) finalizedCampaign(
	ctx context.Context,
	campaignID uint64,
	expected entities.CampaignType,
) (entities.Campaign, error) {
	campaign, err := uc.GetCampaign(ctx, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.Type != expected {
		return entities.Campaign{}, domainerrors.ErrCampaignTypeMismatch
	}
	if !campaign.IsFinalized {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFinalized
	}
	return campaign, nil
}
