package commands

import (
	"context"
	"log/slog"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"
)

// ArchiveUseCase ends campaigns: it snapshots live tallies into the
// write-once archive and releases the active slot.
type ArchiveUseCase struct {
	Ledger ports.LedgerStore
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc ArchiveUseCase) EndCampaign(ctx context.Context, cmd CampaignCommand) (entities.FinalResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := resolveNow(uc.Clock)
	var archived entities.FinalResult
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		state, err := tx.LockLedger(ctx)
		if err != nil {
			return err
		}
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		if !campaign.IsFinalized {
			return domainerrors.ErrCampaignNotFinalized
		}
		if campaign.IsEnded {
			return domainerrors.ErrCampaignAlreadyEnded
		}

		var result entities.FinalResult
		switch campaign.Type {
		case entities.CampaignTypeBasic:
			basic, err := tx.GetBasicState(ctx, campaign.ID)
			if err != nil {
				return err
			}
			result = entities.NewBasicFinalResult(campaign, basic, now)
		case entities.CampaignTypeBallot:
			ballot, err := tx.GetBallotState(ctx, campaign.ID)
			if err != nil {
				return err
			}
			result = entities.NewBallotFinalResult(campaign, ballot, now)
		default:
			return domainerrors.ErrCampaignTypeMismatch
		}
		if err := tx.SaveFinalResult(ctx, result); err != nil {
			return err
		}

		if campaign.IsActive {
			campaign.IsActive = false
			if state.ActiveCampaignID == campaign.ID {
				state.ActiveCampaignID = 0
				if err := tx.SaveLedger(ctx, state); err != nil {
					return err
				}
			}
			if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignDeactivated, campaign.ID, now, map[string]any{
				"reason": "ended",
			}); err != nil {
				return err
			}
		}
		endedAt := now
		campaign.IsEnded = true
		campaign.EndedAt = &endedAt
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignEnded, campaign.ID, now, map[string]any{
			"campaign_type": string(campaign.Type),
			"total_votes":   campaign.TotalVotes,
		}); err != nil {
			return err
		}
		archived = result
		return nil
	})
	if err != nil {
		logger.Warn("campaign end rejected",
			"event", "campaign_ledger_end_rejected",
			"module", moduleName,
			"layer", "application",
			"campaign_id", cmd.CampaignID,
			"error", err.Error(),
		)
		return entities.FinalResult{}, err
	}
	logger.Info("campaign ended and archived",
		"event", "campaign_ledger_campaign_ended",
		"module", moduleName,
		"layer", "application",
		"campaign_id", archived.CampaignID,
		"total_votes", archived.TotalVotes,
	)
	return archived, nil
}
