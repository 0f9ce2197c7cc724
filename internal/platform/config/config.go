package config

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	TokenMemory     = "memory"
	TokenERC20      = "erc20"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName    string   `env:"SERVICE_NAME" envDefault:"ballotbox"`
	HTTPPort       string   `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN    string   `env:"POSTGRES_DSN"`
	StorageBackend string   `env:"STORAGE_BACKEND" envDefault:"postgres"`
	KafkaBrokers   []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`

	TokenBackend        string            `env:"TOKEN_BACKEND" envDefault:"erc20"`
	EthRPCURL           string            `env:"ETH_RPC_URL"`
	TokenAddressHex     string            `env:"TOKEN_ADDRESS"`
	LedgerPrivateKey    string            `env:"LEDGER_PRIVATE_KEY"`
	LedgerAddressHex    string            `env:"LEDGER_ADDRESS"`
	ChainID             int64             `env:"CHAIN_ID" envDefault:"1"`
	CreationFeeRaw      string            `env:"CREATION_FEE" envDefault:"0"`
	LegacyRegistryHex   string            `env:"LEGACY_REGISTRY_ADDRESS"`
	MemoryTokenSeed     map[string]string `env:"MEMORY_TOKEN_SEED" envSeparator:"," envKeyValSeparator:"="`
	TxReceiptTimeout    time.Duration     `env:"TX_RECEIPT_TIMEOUT" envDefault:"2m"`
	OutboxPollInterval  time.Duration     `env:"OUTBOX_POLL_INTERVAL" envDefault:"2s"`
	OutboxBatchSize     int               `env:"OUTBOX_BATCH_SIZE" envDefault:"100"`
	EnableAuditConsumer bool              `env:"ENABLE_AUDIT_CONSUMER" envDefault:"true"`

	// Parsed forms of the raw values above, filled in by Load.
	TokenAddress   common.Address
	LedgerAddress  common.Address
	LegacyRegistry common.Address
	CreationFee    *big.Int
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch c.StorageBackend {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", StorageMemory, StoragePostgres, c.StorageBackend)
	}
	c.TokenBackend = strings.ToLower(strings.TrimSpace(c.TokenBackend))
	switch c.TokenBackend {
	case TokenMemory, TokenERC20:
	default:
		return fmt.Errorf("TOKEN_BACKEND must be %q or %q, got %q", TokenMemory, TokenERC20, c.TokenBackend)
	}

	brokers := make([]string, 0, len(c.KafkaBrokers))
	for _, value := range c.KafkaBrokers {
		if value = strings.TrimSpace(value); value != "" {
			brokers = append(brokers, value)
		}
	}
	c.KafkaBrokers = brokers

	fee, ok := new(big.Int).SetString(strings.TrimSpace(c.CreationFeeRaw), 10)
	if !ok || fee.Sign() < 0 {
		return fmt.Errorf("CREATION_FEE must be a non-negative integer, got %q", c.CreationFeeRaw)
	}
	c.CreationFee = fee

	var err error
	if c.TokenAddress, err = optionalAddress("TOKEN_ADDRESS", c.TokenAddressHex); err != nil {
		return err
	}
	if c.LedgerAddress, err = optionalAddress("LEDGER_ADDRESS", c.LedgerAddressHex); err != nil {
		return err
	}
	if c.LegacyRegistry, err = optionalAddress("LEGACY_REGISTRY_ADDRESS", c.LegacyRegistryHex); err != nil {
		return err
	}

	if c.TokenBackend == TokenERC20 {
		if strings.TrimSpace(c.EthRPCURL) == "" {
			return fmt.Errorf("ETH_RPC_URL is required when TOKEN_BACKEND=%s", TokenERC20)
		}
		if c.TokenAddress == (common.Address{}) {
			return fmt.Errorf("TOKEN_ADDRESS is required when TOKEN_BACKEND=%s", TokenERC20)
		}
	}
	if c.OutboxBatchSize <= 0 {
		c.OutboxBatchSize = 100
	}
	if c.OutboxPollInterval <= 0 {
		c.OutboxPollInterval = 2 * time.Second
	}
	return nil
}

// MemoryBalances parses MEMORY_TOKEN_SEED into opening balances for the
// in-process token.
func (c Config) MemoryBalances() (map[common.Address]*big.Int, error) {
	balances := make(map[common.Address]*big.Int, len(c.MemoryTokenSeed))
	for rawAddress, rawAmount := range c.MemoryTokenSeed {
		address, err := optionalAddress("MEMORY_TOKEN_SEED", rawAddress)
		if err != nil {
			return nil, err
		}
		amount, ok := new(big.Int).SetString(strings.TrimSpace(rawAmount), 10)
		if !ok || amount.Sign() < 0 {
			return nil, fmt.Errorf("MEMORY_TOKEN_SEED amount for %s is invalid: %q", rawAddress, rawAmount)
		}
		balances[address] = amount
	}
	return balances, nil
}

func optionalAddress(name string, raw string) (common.Address, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return common.Address{}, nil
	}
	if !common.IsHexAddress(value) {
		return common.Address{}, fmt.Errorf("%s is not a hex address: %q", name, raw)
	}
	return common.HexToAddress(value), nil
}
