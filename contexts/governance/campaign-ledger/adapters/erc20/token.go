package erc20

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const tokenABI = `[
{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"}
]`

var (
	ErrTransferRejected = errors.New("token transfer returned false")
	ErrTransferReverted = errors.New("token transfer reverted")
	ErrMissingSigner    = errors.New("ledger signing key is not configured")
)

type Config struct {
	RPCURL         string
	TokenAddress   common.Address
	PrivateKeyHex  string
	ChainID        int64
	ReceiptTimeout time.Duration
}

// Token talks to a deployed ERC20 contract. Reads are eth_call; transfers are
// sent from the ledger account and waited on until mined.
type Token struct {
	address        common.Address
	abi            abi.ABI
	contract       *bind.BoundContract
	receipts       bind.DeployBackend
	auth           *bind.TransactOpts
	receiptTimeout time.Duration
	logger         *slog.Logger
}

func NewToken(
	address common.Address,
	caller bind.ContractCaller,
	transactor bind.ContractTransactor,
	receipts bind.DeployBackend,
	auth *bind.TransactOpts,
	receiptTimeout time.Duration,
	logger *slog.Logger,
) (*Token, error) {
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if receiptTimeout <= 0 {
		receiptTimeout = 2 * time.Minute
	}
	return &Token{
		address:        address,
		abi:            parsed,
		contract:       bind.NewBoundContract(address, parsed, caller, transactor, nil),
		receipts:       receipts,
		auth:           auth,
		receiptTimeout: receiptTimeout,
		logger:         logger,
	}, nil
}

// Dial connects to the RPC endpoint and builds a signing Token. The returned
// close func releases the client.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Token, func(), error) {
	client, err := ethclient.DialContext(ctx, strings.TrimSpace(cfg.RPCURL))
	if err != nil {
		return nil, nil, err
	}

	var auth *bind.TransactOpts
	if key := strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKeyHex), "0x"); key != "" {
		privateKey, err := crypto.HexToECDSA(key)
		if err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("parse ledger private key: %w", err)
		}
		auth, err = bind.NewKeyedTransactorWithChainID(privateKey, big.NewInt(cfg.ChainID))
		if err != nil {
			client.Close()
			return nil, nil, err
		}
	}

	token, err := NewToken(cfg.TokenAddress, client, client, client, auth, cfg.ReceiptTimeout, logger)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return token, client.Close, nil
}

func (t *Token) Address() common.Address {
	return t.address
}

// SignerAddress is the ledger account, or the zero address for a read-only Token.
func (t *Token) SignerAddress() common.Address {
	if t.auth == nil {
		return common.Address{}
	}
	return t.auth.From
}

func (t *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error) {
	return t.callUint(ctx, "balanceOf", owner)
}

func (t *Token) Allowance(ctx context.Context, owner common.Address, spender common.Address) (*big.Int, error) {
	return t.callUint(ctx, "allowance", owner, spender)
}

func (t *Token) TransferFrom(ctx context.Context, from common.Address, to common.Address, amount *big.Int) error {
	return t.send(ctx, "transferFrom", from, to, amount)
}

func (t *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) error {
	return t.send(ctx, "transfer", to, amount)
}

func (t *Token) callUint(ctx context.Context, method string, args ...any) (*big.Int, error) {
	var out []any
	if err := t.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s returned no value", method)
	}
	value := abi.ConvertType(out[0], new(big.Int)).(*big.Int)
	return new(big.Int).Set(value), nil
}

func (t *Token) send(ctx context.Context, method string, args ...any) error {
	if t.auth == nil {
		return ErrMissingSigner
	}

	// Tokens that signal failure by returning false instead of reverting are
	// caught here, before anything is broadcast.
	var out []any
	if err := t.contract.Call(&bind.CallOpts{Context: ctx, From: t.auth.From}, &out, method, args...); err != nil {
		return err
	}
	if len(out) == 0 {
		return ErrTransferRejected
	}
	if ok, _ := out[0].(bool); !ok {
		return ErrTransferRejected
	}

	opts := *t.auth
	opts.Context = ctx
	tx, err := t.contract.Transact(&opts, method, args...)
	if err != nil {
		return err
	}

	waitCtx, cancel := context.WithTimeout(ctx, t.receiptTimeout)
	defer cancel()
	receipt, err := bind.WaitMined(waitCtx, t.receipts, tx)
	if err != nil {
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		t.logger.Error("token transfer reverted",
			"event", "campaign_ledger_token_transfer_reverted",
			"module", "governance/campaign-ledger",
			"layer", "adapter",
			"method", method,
			"tx_hash", tx.Hash().Hex(),
		)
		return fmt.Errorf("%w: %s", ErrTransferReverted, tx.Hash().Hex())
	}

	t.logger.Info("token transfer mined",
		"event", "campaign_ledger_token_transfer_mined",
		"module", "governance/campaign-ledger",
		"layer", "adapter",
		"method", method,
		"tx_hash", tx.Hash().Hex(),
		"block_number", receipt.BlockNumber.String(),
	)
	return nil
}

var _ ports.TokenGateway = (*Token)(nil)
