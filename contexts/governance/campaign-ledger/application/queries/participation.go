package queries

import (
	"context"
	"math/big"

	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

type Eligibility struct {
	Address        common.Address
	Balance        *big.Int
	Eligible       bool
	LegacyRegistry common.Address
}

// ParticipationQueryUseCase answers voter-facing questions: eligibility,
// whether an address already voted and what a balance would earn.
type ParticipationQueryUseCase struct {
	Ledger         ports.LedgerReader
	Token          ports.TokenGateway
	LegacyRegistry common.Address
}

func (uc ParticipationQueryUseCase) Eligibility(ctx context.Context, voter common.Address) (Eligibility, error) {
	balance, err := uc.Token.BalanceOf(ctx, voter)
	if err != nil {
		return Eligibility{}, err
	}
	if balance == nil {
		balance = new(big.Int)
	}
	return Eligibility{
		Address:        voter,
		Balance:        balance,
		Eligible:       balance.Sign() > 0,
		LegacyRegistry: uc.LegacyRegistry,
	}, nil
}

func (uc ParticipationQueryUseCase) HasVoted(ctx context.Context, campaignID uint64, voter common.Address) (bool, error) {
	if campaignID == 0 {
		return false, domainerrors.ErrInvalidCampaignID
	}
	if _, err := uc.Ledger.GetCampaign(ctx, campaignID); err != nil {
		return false, err
	}
	return uc.Ledger.HasVoted(ctx, campaignID, voter)
}

func (uc ParticipationQueryUseCase) TotalVotes(ctx context.Context, campaignID uint64) (uint64, error) {
	if campaignID == 0 {
		return 0, domainerrors.ErrInvalidCampaignID
	}
	campaign, err := uc.Ledger.GetCampaign(ctx, campaignID)
	if err != nil {
		return 0, err
	}
	return campaign.TotalVotes, nil
}

func (uc ParticipationQueryUseCase) RewardQuote(balance *big.Int) *big.Int {
	return entities.ComputeReward(balance)
}
