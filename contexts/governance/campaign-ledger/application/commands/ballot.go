package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

type AddPositionCommand struct {
	Caller        common.Address
	CampaignID    uint64
	Name          string
	MaxSelections uint8
}

type AddCandidatesCommand struct {
	Caller        common.Address
	CampaignID    uint64
	PositionIndex uint64
	Names         []string
}

type BallotVoteCommand struct {
	Voter        common.Address
	CampaignID   uint64
	CandidateIDs []uint64
}

type BallotCampaignUseCase struct {
	Ledger      ports.LedgerStore
	Eligibility EligibilityGate
	Rewards     RewardEngine
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// AddPosition appends a position and returns its index.
func (uc BallotCampaignUseCase) AddPosition(ctx context.Context, cmd AddPositionCommand) (uint64, error) {
	now := resolveNow(uc.Clock)
	var positionIndex uint64
	err := uc.withEditableBallot(ctx, cmd.Caller, cmd.CampaignID, func(tx ports.LedgerTx, state *entities.BallotState) error {
		if strings.TrimSpace(cmd.Name) == "" {
			return domainerrors.ErrEmptyName
		}
		if cmd.MaxSelections == 0 {
			return domainerrors.ErrInvalidMaxSelections
		}
		positionIndex = state.AddPosition(cmd.Name, cmd.MaxSelections)
		return appendLedgerEvent(ctx, tx, uc.IDGen, EventBallotPositionAdded, cmd.CampaignID, now, map[string]any{
			"position_index": positionIndex,
			"name":           cmd.Name,
			"max_selections": cmd.MaxSelections,
		})
	})
	if err != nil {
		return 0, err
	}
	application.ResolveLogger(uc.Logger).Info("ballot position added",
		"event", "campaign_ledger_ballot_position_added",
		"module", moduleName,
		"layer", "application",
		"campaign_id", cmd.CampaignID,
		"position_index", positionIndex,
	)
	return positionIndex, nil
}

// AddCandidate appends one candidate and returns its global id.
func (uc BallotCampaignUseCase) AddCandidate(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	positionIndex uint64,
	name string,
) (uint64, error) {
	ids, err := uc.addCandidates(ctx, AddCandidatesCommand{
		Caller:        caller,
		CampaignID:    campaignID,
		PositionIndex: positionIndex,
		Names:         []string{name},
	}, false)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

// AddCandidates appends a batch under one position and emits a single
// summary event. Returned ids are in input order.
func (uc BallotCampaignUseCase) AddCandidates(ctx context.Context, cmd AddCandidatesCommand) ([]uint64, error) {
	return uc.addCandidates(ctx, cmd, true)
}

func (uc BallotCampaignUseCase) addCandidates(ctx context.Context, cmd AddCandidatesCommand, batch bool) ([]uint64, error) {
	now := resolveNow(uc.Clock)
	ids := make([]uint64, 0, len(cmd.Names))
	err := uc.withEditableBallot(ctx, cmd.Caller, cmd.CampaignID, func(tx ports.LedgerTx, state *entities.BallotState) error {
		if len(cmd.Names) == 0 {
			return domainerrors.ErrEmptyChoiceOrCandidateList
		}
		if cmd.PositionIndex >= uint64(len(state.Positions)) {
			return fmt.Errorf("%w: position %d (campaign has %d positions)",
				domainerrors.ErrInvalidChoiceOrCandidateIndex, cmd.PositionIndex, len(state.Positions))
		}
		for _, name := range cmd.Names {
			ids = append(ids, state.AddCandidate(name, cmd.PositionIndex))
		}
		if batch {
			return appendLedgerEvent(ctx, tx, uc.IDGen, EventBallotCandidatesAdded, cmd.CampaignID, now, map[string]any{
				"position_index":  cmd.PositionIndex,
				"candidate_count": len(ids),
			})
		}
		return appendLedgerEvent(ctx, tx, uc.IDGen, EventBallotCandidateAdded, cmd.CampaignID, now, map[string]any{
			"position_index": cmd.PositionIndex,
			"candidate_id":   ids[0],
			"name":           cmd.Names[0],
		})
	})
	if err != nil {
		return nil, err
	}
	application.ResolveLogger(uc.Logger).Info("ballot candidates added",
		"event", "campaign_ledger_ballot_candidates_added",
		"module", moduleName,
		"layer", "application",
		"campaign_id", cmd.CampaignID,
		"position_index", cmd.PositionIndex,
		"candidate_count", len(ids),
	)
	return ids, nil
}

// FinalizeBallotSetup freezes positions and candidates and zeroes the tally.
func (uc BallotCampaignUseCase) FinalizeBallotSetup(ctx context.Context, cmd CampaignCommand) (entities.BallotState, error) {
	now := resolveNow(uc.Clock)
	var finalized entities.BallotState
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		if err := requireType(campaign, entities.CampaignTypeBallot); err != nil {
			return err
		}
		if campaign.IsFinalized {
			return domainerrors.ErrCampaignAlreadyFinalized
		}
		state, err := tx.GetBallotState(ctx, campaign.ID)
		if err != nil {
			return err
		}
		if len(state.Positions) == 0 {
			return domainerrors.ErrEmptyChoiceOrCandidateList
		}
		state.ResetVotes()
		if err := tx.SaveBallotState(ctx, state); err != nil {
			return err
		}
		campaign.MarkFinalized(now)
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventBallotFinalized, campaign.ID, now, map[string]any{
			"position_count":  len(state.Positions),
			"candidate_count": len(state.Candidates),
		}); err != nil {
			return err
		}
		finalized = state
		return nil
	})
	if err != nil {
		return entities.BallotState{}, err
	}
	application.ResolveLogger(uc.Logger).Info("ballot setup finalized",
		"event", "campaign_ledger_ballot_finalized",
		"module", moduleName,
		"layer", "application",
		"campaign_id", finalized.CampaignID,
		"position_count", len(finalized.Positions),
		"candidate_count", len(finalized.Candidates),
	)
	return finalized, nil
}

// VoteBallot records one ballot per voter across all positions.
func (uc BallotCampaignUseCase) VoteBallot(ctx context.Context, cmd BallotVoteCommand) (VoteResult, error) {
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
		if err := requireType(campaign, entities.CampaignTypeBallot); err != nil {
			return err
		}
		if !campaign.IsFinalized {
			return domainerrors.ErrCampaignNotFinalized
		}
		if len(cmd.CandidateIDs) == 0 {
			return domainerrors.ErrEmptyChoiceOrCandidateList
		}

		state, err := tx.GetBallotState(ctx, campaign.ID)
		if err != nil {
			return err
		}
		if err := validateBallotSelection(state, cmd.CandidateIDs); err != nil {
			return err
		}

		state.Tally(cmd.CandidateIDs)
		if err := tx.SaveBallotState(ctx, state); err != nil {
			return err
		}
		campaign.TotalVotes++
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventBallotVoteCast, campaign.ID, now, map[string]any{
			"voter":         cmd.Voter.Hex(),
			"candidate_ids": cmd.CandidateIDs,
			"total_votes":   campaign.TotalVotes,
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
		logger.Warn("ballot vote rejected",
			"event", "campaign_ledger_ballot_vote_rejected",
			"module", moduleName,
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"voter", cmd.Voter.Hex(),
			"error", err.Error(),
		)
		return VoteResult{}, err
	}
	logger.Info("ballot vote recorded",
		"event", "campaign_ledger_ballot_vote_recorded",
		"module", moduleName,
		"layer", "application",
		"campaign_id", result.CampaignID,
		"voter", result.Voter.Hex(),
		"total_votes", result.TotalVotes,
		"reward", result.Reward.String(),
	)
	return result, nil
}

// validateBallotSelection rejects repeated ids, then unknown ids, then any
// position whose selection count exceeds its limit.
func validateBallotSelection(state entities.BallotState, candidateIDs []uint64) error {
	for i := 0; i < len(candidateIDs); i++ {
		for j := i + 1; j < len(candidateIDs); j++ {
			if candidateIDs[i] == candidateIDs[j] {
				return fmt.Errorf("%w: candidate %d", domainerrors.ErrDuplicateCandidateSelection, candidateIDs[i])
			}
		}
	}
	for _, id := range candidateIDs {
		if id >= uint64(len(state.Candidates)) {
			return fmt.Errorf("%w: candidate %d (campaign has %d candidates)",
				domainerrors.ErrInvalidChoiceOrCandidateIndex, id, len(state.Candidates))
		}
	}
	for positionIndex, count := range state.SelectionsPerPosition(candidateIDs) {
		position := state.Positions[positionIndex]
		if count > int(position.MaxSelections) {
			return fmt.Errorf("%w: position %d %q allows %d, got %d",
				domainerrors.ErrSelectionLimitExceeded, positionIndex, position.Name, position.MaxSelections, count)
		}
	}
	return nil
}

// withEditableBallot loads a creator-owned, unfinalized ballot campaign, lets
// fn mutate its state and persists the result.
func (uc BallotCampaignUseCase) withEditableBallot(
	ctx context.Context,
	caller common.Address,
	campaignID uint64,
	fn func(tx ports.LedgerTx, state *entities.BallotState) error,
) error {
	now := resolveNow(uc.Clock)
	return uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		campaign, err := loadOwnedCampaign(ctx, tx, campaignID, caller)
		if err != nil {
			return err
		}
		if err := requireType(campaign, entities.CampaignTypeBallot); err != nil {
			return err
		}
		if campaign.IsFinalized {
			return domainerrors.ErrCampaignAlreadyFinalized
		}
		state, err := tx.GetBallotState(ctx, campaign.ID)
		if err != nil {
			return err
		}
		if err := fn(tx, &state); err != nil {
			return err
		}
		if err := tx.SaveBallotState(ctx, state); err != nil {
			return err
		}
		campaign.UpdatedAt = now
		return tx.UpdateCampaign(ctx, campaign)
	})
}
