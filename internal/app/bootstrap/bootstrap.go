package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	campaignledger "ballotbox/contexts/governance/campaign-ledger"
	"ballotbox/contexts/governance/campaign-ledger/adapters/erc20"
	"ballotbox/contexts/governance/campaign-ledger/adapters/memory"
	postgresadapter "ballotbox/contexts/governance/campaign-ledger/adapters/postgres"
	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	workerapp "ballotbox/contexts/governance/campaign-ledger/application/workers"
	"ballotbox/contexts/governance/campaign-ledger/ports"
	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/db"
	"ballotbox/internal/platform/httpserver"
	"ballotbox/internal/platform/messaging"

	"github.com/ethereum/go-ethereum/common"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server  *httpserver.Server
	closers []func() error
	logger  *slog.Logger
}

type WorkerApp struct {
	outboxRelay  workerapp.OutboxRelay
	audit        workerapp.AuditTrailConsumer
	bus          *messaging.Kafka
	pollInterval time.Duration
	closers      []func() error
	logger       *slog.Logger
}

// ledgerRuntime is the set of ports chosen by STORAGE_BACKEND and
// TOKEN_BACKEND, shared by the API and worker processes.
type ledgerRuntime struct {
	ledger        ports.LedgerStore
	reader        ports.LedgerReader
	outbox        ports.OutboxRepository
	dedup         ports.EventDedupStore
	clock         ports.Clock
	idGen         ports.IDGenerator
	token         ports.TokenGateway
	ledgerAddress common.Address
	closers       []func() error
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	runtime, err := buildLedgerRuntime(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	module := campaignledger.NewModule(campaignledger.Dependencies{
		Ledger:         runtime.ledger,
		Reader:         runtime.reader,
		Token:          runtime.token,
		Clock:          runtime.clock,
		IDGen:          runtime.idGen,
		LedgerAddress:  runtime.ledgerAddress,
		CreationFee:    cfg.CreationFee,
		LegacyRegistry: cfg.LegacyRegistry,
		Logger:         logger,
	})

	server := httpserver.New(module, logger, normalizeAddr(cfg.HTTPPort))
	return &APIApp{
		server:  server,
		closers: runtime.closers,
		logger:  logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if cfg.StorageBackend == config.StorageMemory {
		return nil, errors.New("worker requires STORAGE_BACKEND=postgres; the memory store is private to one process")
	}
	runtime, err := buildLedgerRuntime(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		closeAll(runtime.closers, logger)
		return nil, err
	}

	return &WorkerApp{
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    runtime.outbox,
			Publisher: kafka,
			Clock:     runtime.clock,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		audit: workerapp.AuditTrailConsumer{
			Subscriber:    kafka,
			Dedup:         runtime.dedup,
			Clock:         runtime.clock,
			Topics:        commands.LedgerEventTypes,
			ConsumerGroup: "campaign-ledger-audit-cg",
			DedupTTL:      7 * 24 * time.Hour,
			Disabled:      !cfg.EnableAuditConsumer,
			Logger:        logger,
		},
		bus:          kafka,
		pollInterval: cfg.OutboxPollInterval,
		closers:      runtime.closers,
		logger:       logger,
	}, nil
}

func buildLedgerRuntime(ctx context.Context, cfg config.Config, logger *slog.Logger) (ledgerRuntime, error) {
	var runtime ledgerRuntime

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return ledgerRuntime{}, errors.New("POSTGRES_DSN is required")
		}
		pg, err := db.Connect(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return ledgerRuntime{}, err
		}
		runtime.closers = append(runtime.closers, pg.Close)

		repo := postgresadapter.NewRepository(pg.DB, logger)
		if err := repo.Migrate(ctx); err != nil {
			closeAll(runtime.closers, logger)
			return ledgerRuntime{}, err
		}
		runtime.ledger = repo
		runtime.reader = repo
		runtime.outbox = repo
		runtime.dedup = repo
		runtime.clock = postgresadapter.SystemClock{}
		runtime.idGen = postgresadapter.UUIDGenerator{}
	default:
		store := memory.NewStore()
		runtime.ledger = store
		runtime.reader = store
		runtime.outbox = store
		runtime.dedup = store
		runtime.clock = store
		runtime.idGen = store
	}

	switch cfg.TokenBackend {
	case config.TokenERC20:
		token, closeClient, err := erc20.Dial(ctx, erc20.Config{
			RPCURL:         cfg.EthRPCURL,
			TokenAddress:   cfg.TokenAddress,
			PrivateKeyHex:  cfg.LedgerPrivateKey,
			ChainID:        cfg.ChainID,
			ReceiptTimeout: cfg.TxReceiptTimeout,
		}, logger)
		if err != nil {
			closeAll(runtime.closers, logger)
			return ledgerRuntime{}, err
		}
		runtime.closers = append(runtime.closers, func() error {
			closeClient()
			return nil
		})
		runtime.token = token
		runtime.ledgerAddress = cfg.LedgerAddress
		if signer := token.SignerAddress(); signer != (common.Address{}) {
			if runtime.ledgerAddress != (common.Address{}) && runtime.ledgerAddress != signer {
				closeAll(runtime.closers, logger)
				return ledgerRuntime{}, errors.New("LEDGER_ADDRESS does not match LEDGER_PRIVATE_KEY")
			}
			runtime.ledgerAddress = signer
		}
	default:
		balances, err := cfg.MemoryBalances()
		if err != nil {
			closeAll(runtime.closers, logger)
			return ledgerRuntime{}, err
		}
		token := memory.NewTokenLedger(cfg.LedgerAddress)
		for owner, amount := range balances {
			token.Mint(owner, amount)
		}
		runtime.token = token
		runtime.ledgerAddress = cfg.LedgerAddress
	}

	if runtime.ledgerAddress == (common.Address{}) {
		closeAll(runtime.closers, logger)
		return ledgerRuntime{}, errors.New("LEDGER_ADDRESS or LEDGER_PRIVATE_KEY is required")
	}

	logger.Info("ledger runtime built",
		"event", "bootstrap_ledger_runtime_built",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"storage_backend", cfg.StorageBackend,
		"token_backend", cfg.TokenBackend,
		"ledger_address", runtime.ledgerAddress.Hex(),
		"creation_fee", cfg.CreationFee.String(),
	)
	return runtime, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (a *APIApp) Close() error {
	return closeAll(a.closers, a.logger)
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.audit.Start(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)

	for {
		if err := w.outboxRelay.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Warn("outbox relay cycle failed, retrying next tick",
				"event", "bootstrap_worker_relay_retry",
				"module", "internal/app/bootstrap",
				"layer", "platform",
				"error", err.Error(),
			)
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	closers := append([]func() error{w.bus.Close}, w.closers...)
	return closeAll(closers, w.logger)
}

func closeAll(closers []func() error, logger *slog.Logger) error {
	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	err := errors.Join(errs...)
	if err != nil && logger != nil {
		logger.Error("shutdown close failed",
			"event", "bootstrap_close_failed",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"error", err.Error(),
		)
	}
	return err
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
