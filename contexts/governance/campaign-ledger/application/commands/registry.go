package commands

import (
	"context"
	"log/slog"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

type CreateCampaignCommand struct {
	Caller      common.Address
	Description string
	Type        entities.CampaignType
}

type SetDescriptionCommand struct {
	Caller      common.Address
	CampaignID  uint64
	Description string
}

// CampaignCommand addresses a creator-only action on one campaign.
type CampaignCommand struct {
	Caller     common.Address
	CampaignID uint64
}

// RegistryUseCase owns campaign identity, descriptions and the single
// system-wide active campaign.
type RegistryUseCase struct {
	Ledger  ports.LedgerStore
	Rewards RewardEngine
	Clock   ports.Clock
	IDGen   ports.IDGenerator
	Logger  *slog.Logger
}

// CreateCampaign charges the creation fee and allocates the next sequential
// id. New campaigns start inactive and unfinalized.
func (uc RegistryUseCase) CreateCampaign(ctx context.Context, cmd CreateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	if err := requireCaller(cmd.Caller); err != nil {
		return entities.Campaign{}, err
	}
	if !cmd.Type.Valid() {
		logger.Warn("campaign create rejected undefined type",
			"event", "campaign_ledger_create_type_invalid",
			"module", moduleName,
			"layer", "application",
			"creator", cmd.Caller.Hex(),
		)
		return entities.Campaign{}, domainerrors.ErrUndefinedCampaignType
	}

	now := resolveNow(uc.Clock)
	var created entities.Campaign
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		state, err := tx.LockLedger(ctx)
		if err != nil {
			return err
		}
		campaign := entities.Campaign{
			ID:          state.NextCampaignID,
			Type:        cmd.Type,
			Description: cmd.Description,
			Creator:     cmd.Caller,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		state.NextCampaignID++
		if err := tx.SaveLedger(ctx, state); err != nil {
			return err
		}
		if err := tx.CreateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignCreated, campaign.ID, now, map[string]any{
			"campaign_type": string(campaign.Type),
			"creator":       campaign.Creator.Hex(),
			"description":   campaign.Description,
		}); err != nil {
			return err
		}
		if err := uc.Rewards.ChargeCreationFee(ctx, tx, campaign.ID, cmd.Caller, now); err != nil {
			return err
		}
		created = campaign
		return nil
	})
	if err != nil {
		logger.Warn("campaign create failed",
			"event", "campaign_ledger_create_failed",
			"module", moduleName,
			"layer", "application",
			"creator", cmd.Caller.Hex(),
			"error", err.Error(),
		)
		return entities.Campaign{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_ledger_campaign_created",
		"module", moduleName,
		"layer", "application",
		"campaign_id", created.ID,
		"campaign_type", string(created.Type),
		"creator", created.Creator.Hex(),
	)
	return created, nil
}

func (uc RegistryUseCase) SetDescription(ctx context.Context, cmd SetDescriptionCommand) (entities.Campaign, error) {
	now := resolveNow(uc.Clock)
	var updated entities.Campaign
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		campaign.Description = cmd.Description
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignDescriptionSet, campaign.ID, now, map[string]any{
			"description": campaign.Description,
		}); err != nil {
			return err
		}
		updated = campaign
		return nil
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	application.ResolveLogger(uc.Logger).Info("campaign description updated",
		"event", "campaign_ledger_description_set",
		"module", moduleName,
		"layer", "application",
		"campaign_id", updated.ID,
	)
	return updated, nil
}

// ActivateCampaign makes the campaign the only active one, deactivating the
// previous holder of the active slot in the same unit of work.
func (uc RegistryUseCase) ActivateCampaign(ctx context.Context, cmd CampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := resolveNow(uc.Clock)
	var (
		activated  entities.Campaign
		supplanted uint64
	)
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		state, err := tx.LockLedger(ctx)
		if err != nil {
			return err
		}
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		if campaign.IsActive && state.ActiveCampaignID == campaign.ID {
			activated = campaign
			return nil
		}

		if state.ActiveCampaignID != 0 && state.ActiveCampaignID != campaign.ID {
			previous, err := tx.GetCampaign(ctx, state.ActiveCampaignID)
			if err != nil {
				return err
			}
			previous.IsActive = false
			previous.UpdatedAt = now
			if err := tx.UpdateCampaign(ctx, previous); err != nil {
				return err
			}
			if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignDeactivated, previous.ID, now, map[string]any{
				"reason":        "superseded",
				"superseded_by": campaign.ID,
			}); err != nil {
				return err
			}
			supplanted = previous.ID
		}

		campaign.IsActive = true
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		state.ActiveCampaignID = campaign.ID
		if err := tx.SaveLedger(ctx, state); err != nil {
			return err
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignActivated, campaign.ID, now, nil); err != nil {
			return err
		}
		activated = campaign
		return nil
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	logger.Info("campaign activated",
		"event", "campaign_ledger_campaign_activated",
		"module", moduleName,
		"layer", "application",
		"campaign_id", activated.ID,
		"superseded_campaign_id", supplanted,
	)
	return activated, nil
}

func (uc RegistryUseCase) DeactivateCampaign(ctx context.Context, cmd CampaignCommand) (entities.Campaign, error) {
	now := resolveNow(uc.Clock)
	var deactivated entities.Campaign
	err := uc.Ledger.WithinTx(ctx, func(tx ports.LedgerTx) error {
		state, err := tx.LockLedger(ctx)
		if err != nil {
			return err
		}
		campaign, err := loadOwnedCampaign(ctx, tx, cmd.CampaignID, cmd.Caller)
		if err != nil {
			return err
		}
		if !campaign.IsActive {
			deactivated = campaign
			return nil
		}
		campaign.IsActive = false
		campaign.UpdatedAt = now
		if err := tx.UpdateCampaign(ctx, campaign); err != nil {
			return err
		}
		if state.ActiveCampaignID == campaign.ID {
			state.ActiveCampaignID = 0
			if err := tx.SaveLedger(ctx, state); err != nil {
				return err
			}
		}
		if err := appendLedgerEvent(ctx, tx, uc.IDGen, EventCampaignDeactivated, campaign.ID, now, map[string]any{
			"reason": "creator_request",
		}); err != nil {
			return err
		}
		deactivated = campaign
		return nil
	})
	if err != nil {
		return entities.Campaign{}, err
	}
	application.ResolveLogger(uc.Logger).Info("campaign deactivated",
		"event", "campaign_ledger_campaign_deactivated",
		"module", moduleName,
		"layer", "application",
		"campaign_id", deactivated.ID,
	)
	return deactivated, nil
}
