package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	application "ballotbox/contexts/governance/campaign-ledger/application"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

// RewardEngine moves tokens between participants and the ledger account:
// creation fees in, voter rewards out. Both token calls are meant to be the
// final step of a unit of work so a failure discards every staged write.
type RewardEngine struct {
	Token         ports.TokenGateway
	LedgerAddress common.Address
	CreationFee   *big.Int
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func (e RewardEngine) Fee() *big.Int {
	if e.CreationFee == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(e.CreationFee)
}

func (e RewardEngine) Quote(balance *big.Int) *big.Int {
	return entities.ComputeReward(balance)
}

// ChargeCreationFee pulls the creation fee from payer into the ledger account.
func (e RewardEngine) ChargeCreationFee(
	ctx context.Context,
	outbox ports.OutboxWriter,
	campaignID uint64,
	payer common.Address,
	now time.Time,
) error {
	logger := application.ResolveLogger(e.Logger)
	fee := e.Fee()
	if fee.Sign() == 0 {
		return nil
	}

	allowance, err := e.Token.Allowance(ctx, payer, e.LedgerAddress)
	if err != nil {
		return err
	}
	if allowance == nil || allowance.Cmp(fee) < 0 {
		logger.Warn("creation fee allowance too low",
			"event", "campaign_ledger_fee_allowance_insufficient",
			"module", moduleName,
			"layer", "application",
			"campaign_id", campaignID,
			"payer", payer.Hex(),
			"fee", fee.String(),
		)
		return domainerrors.ErrInsufficientAllowance
	}

	if err := appendLedgerEvent(ctx, outbox, e.IDGen, EventFeePaid, campaignID, now, map[string]any{
		"payer":  payer.Hex(),
		"amount": fee.String(),
	}); err != nil {
		return err
	}

	if err := e.Token.TransferFrom(ctx, payer, e.LedgerAddress, fee); err != nil {
		logger.Error("creation fee transfer failed",
			"event", "campaign_ledger_fee_transfer_failed",
			"module", moduleName,
			"layer", "application",
			"campaign_id", campaignID,
			"payer", payer.Hex(),
			"fee", fee.String(),
			"error", err.Error(),
		)
		return fmt.Errorf("%w: %v", domainerrors.ErrFeeTransferFailed, err)
	}
	return nil
}

// PayVoter transfers floor(balance*1618/1e6) to the voter. A zero reward is
// recorded as an event and no transfer is attempted.
func (e RewardEngine) PayVoter(
	ctx context.Context,
	outbox ports.OutboxWriter,
	campaignID uint64,
	voter common.Address,
	now time.Time,
) (*big.Int, error) {
	logger := application.ResolveLogger(e.Logger)
	balance, err := e.Token.BalanceOf(ctx, voter)
	if err != nil {
		return nil, err
	}
	reward := entities.ComputeReward(balance)
	if reward.Sign() == 0 {
		if err := appendLedgerEvent(ctx, outbox, e.IDGen, EventVoterRewardZero, campaignID, now, map[string]any{
			"voter":   voter.Hex(),
			"balance": balanceString(balance),
		}); err != nil {
			return nil, err
		}
		return reward, nil
	}

	if err := appendLedgerEvent(ctx, outbox, e.IDGen, EventVoterRewarded, campaignID, now, map[string]any{
		"voter":   voter.Hex(),
		"balance": balanceString(balance),
		"amount":  reward.String(),
	}); err != nil {
		return nil, err
	}
	if err := e.Token.Transfer(ctx, voter, reward); err != nil {
		logger.Error("voter reward transfer failed",
			"event", "campaign_ledger_reward_transfer_failed",
			"module", moduleName,
			"layer", "application",
			"campaign_id", campaignID,
			"voter", voter.Hex(),
			"reward", reward.String(),
			"error", err.Error(),
		)
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrRewardTransferFailed, err)
	}
	return reward, nil
}

func balanceString(balance *big.Int) string {
	if balance == nil {
		return "0"
	}
	return balance.String()
}
