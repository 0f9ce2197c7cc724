package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

type SetupBasicCommand struct {
	Caller         common.Address
	CampaignID     uint64
	Choices        []string
	SingleVoteOnly bool
}

type BasicVoteCommand struct {
	Voter         common.Address
	CampaignID    uint64
	ChoiceIndices []uint64
}

// VoteResult reports the recorded ballot and the reward paid for it.
type VoteResult struct {
	CampaignID uint64
	Voter      common.Address
	TotalVotes uint64
	Reward     *big.Int
}

type BasicCampaignUseCase struct {
	Ledger      ports.LedgerStore
	Eligibility EligibilityGate
	Rewards     RewardEngine
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// SetupBasic stores the choice list and finalizes the campaign in one step.
func (uc BasicCampaignUseCase) SetupBasic(ctx context.Context, cmd SetupBasicCommand) (entities.BasicState, error) {
	now := resolveNow(uc.Clock)
	var configured entities.BasicState
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		if err := requireType(campaign, entities.CampaignTypeBasic); err != nil {
			return err
		}
		if campaign.IsFinalized {
			return domainerrors.ErrCampaignAlreadyFinalized
		}
		if len(cmd.Choices) == 0 {
			return domainerrors.ErrEmptyChoiceOrCandidateList
		}

		state := entities.NewBasicState(campaign.ID, cmd.Choices, cmd.SingleVoteOnly)
		if err := tx.SaveBasicState(ctx, state); err != nil {
			return err
		}
		campaign.MarkFinalized(now)
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignBasicConfigured, campaign.ID, now, map[string]any{
			"choices":          state.Choices,
			"single_vote_only": state.SingleVoteOnly,
		}); err != nil {
			return err
		}
		configured = state
		return nil
	})
	if err != nil {
		return entities.BasicState{}, err
	}
	application.ResolveLogger(uc.Logger).Info("basic campaign configured",
		"event", "campaign_ledger_basic_configured",
		"module", moduleName,
		"layer", "application",
		"campaign_id", configured.CampaignID,
		"choice_count", len(configured.Choices),
		"single_vote_only", configured.SingleVoteOnly,
	)
	return configured, nil
}

// VoteBasic records one ballot per voter. Repeated indices in a multi-choice
// ballot are each counted.
func (uc BasicCampaignUseCase) VoteBasic(ctx context.Context, cmd BasicVoteCommand) (VoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := resolveNow(uc.Clock)
	result := VoteResult{CampaignID: cmd.CampaignID, Voter: cmd.Voter}
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		campaign, err := loadCampaign(ctx, tx, cmd.CampaignID)
		if err != nil {
			return err
		}
		if err := requireCaller(cmd.Voter); err != nil {
			return err
		}
		if err := uc.Eligibility.RequireEligible(ctx, cmd.Voter); err != nil {
			return err
		}
		if err := tx.RecordVoter(ctx, entities.VoterRecord{
			CampaignID: campaign.ID,
			Voter:      cmd.Voter,
			VotedAt:    now,
		}); err != nil {
			return err
		}
		if !campaign.IsActive {
			return domainerrors.ErrCampaignNotActive
		}
		if err := requireType(campaign, entities.CampaignTypeBasic); err != nil {
			return err
		}
		if len(cmd.ChoiceIndices) == 0 {
			return domainerrors.ErrEmptyChoiceOrCandidateList
		}

		state, err := tx.GetBasicState(ctx, campaign.ID)
		if err != nil {
			return err
		}
		if state.SingleVoteOnly && len(cmd.ChoiceIndices) != 1 {
			return fmt.Errorf("%w: single choice campaign received %d selections",
				domainerrors.ErrSelectionLimitExceeded, len(cmd.ChoiceIndices))
		}
		for _, index := range cmd.ChoiceIndices {
			if index >= uint64(len(state.Choices)) {
				return fmt.Errorf("%w: choice %d (campaign has %d choices)",
					domainerrors.ErrInvalidChoiceOrCandidateIndex, index, len(state.Choices))
			}
		}

		state.Tally(cmd.ChoiceIndices)
		if err := tx.SaveBasicState(ctx, state); err != nil {
			return err
		}
		campaign.TotalVotes++
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventBasicVoteCast, campaign.ID, now, map[string]any{
			"voter":          cmd.Voter.Hex(),
			"choice_indices": cmd.ChoiceIndices,
			"total_votes":    campaign.TotalVotes,
		}); err != nil {
			return err
		}

		reward, err := uc.Rewards.PayVoter(ctx, tx, campaign.ID, cmd.Voter, now)
		if err != nil {
			return err
		}
		result.TotalVotes = campaign.TotalVotes
		result.Reward = reward
		return nil
	})
	if err != nil {
		logger.Warn("basic vote rejected",
			"event", "campaign_ledger_basic_vote_rejected",
			"module", moduleName,
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"voter", cmd.Voter.Hex(),
			"error", err.Error(),
		)
		return VoteResult{}, err
	}
	logger.Info("basic vote recorded",
		"event", "campaign_ledger_basic_vote_recorded",
		"module", moduleName,
		"layer", "application",
		"campaign_id", result.CampaignID,
		"voter", result.Voter.Hex(),
		"total_votes", result.TotalVotes,
		"reward", result.Reward.String(),
	)
	return result, nil
}
