package campaignledger

import (
	"log/slog"
	"math/big"

	httpadapter "ballotbox/contexts/governance/campaign-ledger/adapters/http"
	"ballotbox/contexts/governance/campaign-ledger/adapters/memory"
	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/application/queries"
	"ballotbox/contexts/governance/campaign-ledger/ports"

	"github.com/ethereum/go-ethereum/common"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
	Token   *memory.TokenLedger
}

type Dependencies struct {
	Ledger         ports.LedgerStore
	Reader         ports.LedgerReader
	Token          ports.TokenGateway
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	LedgerAddress  common.Address
	CreationFee    *big.Int
	LegacyRegistry common.Address
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	rewards := commands.RewardEngine{
		Token:         deps.Token,
		LedgerAddress: deps.LedgerAddress,
		CreationFee:   deps.CreationFee,
		IDGen:         deps.IDGen,
		Logger:        deps.Logger,
	}
	eligibility := commands.EligibilityGate{
		Token:          deps.Token,
		LegacyRegistry: deps.LegacyRegistry,
		Logger:         deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{
			Registry: commands.RegistryUseCase{
				Ledger:  deps.Ledger,
				Rewards: rewards,
				Clock:   deps.Clock,
				IDGen:   deps.IDGen,
				Logger:  deps.Logger,
			},
			Basic: commands.BasicCampaignUseCase{
				Ledger:      deps.Ledger,
				Eligibility: eligibility,
				Rewards:     rewards,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Logger:      deps.Logger,
			},
			Ballot: commands.BallotCampaignUseCase{
				Ledger:      deps.Ledger,
				Eligibility: eligibility,
				Rewards:     rewards,
				Clock:       deps.Clock,
				IDGen:       deps.IDGen,
				Logger:      deps.Logger,
			},
			Archive: commands.ArchiveUseCase{
				Ledger: deps.Ledger,
				Clock:  deps.Clock,
				IDGen:  deps.IDGen,
				Logger: deps.Logger,
			},
			Campaigns: queries.CampaignQueryUseCase{
				Ledger: deps.Reader,
			},
			Participation: queries.ParticipationQueryUseCase{
				Ledger:         deps.Reader,
				Token:          deps.Token,
				LegacyRegistry: deps.LegacyRegistry,
			},
			Logger: deps.Logger,
		},
	}
}

// NewInMemoryModule wires the ledger to an in-process store and token. The
// token's ledger account is ledgerAddress; fund it with Mint to pay rewards.
func NewInMemoryModule(ledgerAddress common.Address, creationFee *big.Int, logger *slog.Logger) Module {
	store := memory.NewStore()
	token := memory.NewTokenLedger(ledgerAddress)
	module := NewModule(Dependencies{
		Ledger:        store,
		Reader:        store,
		Token:         token,
		Clock:         store,
		IDGen:         store,
		LedgerAddress: ledgerAddress,
		CreationFee:   creationFee,
		Logger:        logger,
	})
	module.Store = store
	module.Token = token
	return module
}
