package commands

import (
	"context"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

const moduleName = "governance/campaign-ledger"

func requireCaller(caller common.Address) error {
	if caller == (common.Address{}) {
		return domainerrors.ErrInvalidCaller
	}
	return nil
}

func loadCampaign(ctx context.Context, tx ports.LedgerTx, campaignID uint64) (entities.Campaign, error) {
	if campaignID == 0 {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignID
	}
	return tx.GetCampaign(ctx, campaignID)
}

// loadOwnedCampaign resolves the campaign and checks the caller created it.
func loadOwnedCampaign(
	ctx context.Context,
	tx ports.LedgerTx,
	campaignID uint64,
	caller common.Address,
) (entities.Campaign, error) {
	campaign, err := loadCampaign(ctx, tx, campaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if !campaign.IsCreator(caller) {
		return entities.Campaign{}, domainerrors.ErrNotCampaignCreator
	}
	return campaign, nil
}

func requireType(campaign entities.Campaign, expected entities.CampaignType) error {
	if campaign.Type != expected {
		return domainerrors.ErrCampaignTypeMismatch
	}
	return nil
}

func resolveNow(clock ports.Clock) time.Time {
	if clock == nil {
		return time.Now().UTC()
	}
	return clock.Now().UTC()
}
