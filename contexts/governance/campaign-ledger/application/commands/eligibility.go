package commands

import (
	"context"
	"log/slog"
	"math/big"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

// EligibilityGate admits voters that currently hold a positive governance
// token balance. LegacyRegistry is reported for reference only and is never
// consulted.
type EligibilityGate struct {
	Token          ports.TokenGateway
	LegacyRegistry common.Address
	Logger         *slog.Logger
}

func (g EligibilityGate) Balance(ctx context.Context, voter common.Address) (*big.Int, error) {
	balance, err := g.Token.BalanceOf(ctx, voter)
	if err != nil {
		application.ResolveLogger(g.Logger).Error("eligibility balance lookup failed",
			"event", "campaign_ledger_eligibility_balance_failed",
			"module", moduleName,
			"layer", "application",
			"voter", voter.Hex(),
			"error", err.Error(),
		)
		return nil, err
	}
	if balance == nil {
		balance = new(big.Int)
	}
	return balance, nil
}

func (g EligibilityGate) IsEligible(ctx context.Context, voter common.Address) (bool, error) {
	balance, err := g.Balance(ctx, voter)
	if err != nil {
		return false, err
	}
	return balance.Sign() > 0, nil
}

func (g EligibilityGate) RequireEligible(ctx context.Context, voter common.Address) error {
	eligible, err := g.IsEligible(ctx, voter)
	if err != nil {
		return err
	}
	if !eligible {
		return domainerrors.ErrNotEligible
	}
	return nil
}
