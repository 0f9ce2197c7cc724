package memory

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInsufficientBalance   = errors.New("token balance too low")
	ErrInsufficientAllowance = errors.New("token allowance too low")
	ErrTransfersRejected     = errors.New("token transfer rejected")
)

// TokenLedger is an in-process fungible token. Transfer debits the ledger
// account given at construction.
type TokenLedger struct {
	mu         sync.Mutex
	ledger     common.Address
	balances   map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
	rejectAll  bool
}

func NewTokenLedger(ledger common.Address) *TokenLedger {
	return &TokenLedger{
		ledger:     ledger,
		balances:   make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
	}
}

func (t *TokenLedger) LedgerAddress() common.Address {
	return t.ledger
}

func (t *TokenLedger) Mint(owner common.Address, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.balances[owner] = new(big.Int).Add(t.balanceLocked(owner), amount)
}

func (t *TokenLedger) Approve(owner common.Address, spender common.Address, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.allowances[owner] == nil {
		t.allowances[owner] = make(map[common.Address]*big.Int)
	}
	t.allowances[owner][spender] = new(big.Int).Set(amount)
}

// RejectTransfers makes every subsequent transfer fail until reset.
func (t *TokenLedger) RejectTransfers(reject bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rejectAll = reject
}

func (t *TokenLedger) BalanceOf(_ context.Context, owner common.Address) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.balanceLocked(owner)), nil
}

func (t *TokenLedger) Allowance(_ context.Context, owner common.Address, spender common.Address) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.allowanceLocked(owner, spender)), nil
}

func (t *TokenLedger) TransferFrom(_ context.Context, from common.Address, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rejectAll {
		return ErrTransfersRejected
	}
	allowance := t.allowanceLocked(from, t.ledger)
	if allowance.Cmp(amount) < 0 {
		return ErrInsufficientAllowance
	}
	if err := t.moveLocked(from, to, amount); err != nil {
		return err
	}
	if t.allowances[from] != nil {
		t.allowances[from][t.ledger] = new(big.Int).Sub(allowance, amount)
	}
	return nil
}

func (t *TokenLedger) Transfer(_ context.Context, to common.Address, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rejectAll {
		return ErrTransfersRejected
	}
	return t.moveLocked(t.ledger, to, amount)
}

func (t *TokenLedger) moveLocked(from common.Address, to common.Address, amount *big.Int) error {
	balance := t.balanceLocked(from)
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	t.balances[from] = new(big.Int).Sub(balance, amount)
	t.balances[to] = new(big.Int).Add(t.balanceLocked(to), amount)
	return nil
}

func (t *TokenLedger) balanceLocked(owner common.Address) *big.Int {
	if balance, ok := t.balances[owner]; ok {
		return balance
	}
	return new(big.Int)
}

func (t *TokenLedger) allowanceLocked(owner common.Address, spender common.Address) *big.Int {
	if allowance, ok := t.allowances[owner][spender]; ok {
		return allowance
	}
	return new(big.Int)
}

var _ ports.TokenGateway = (*TokenLedger)(nil)
