package commands_test

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"ballotbox/contexts/governance/campaign-ledger/adapters/memory"
	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ledgerAccount = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	creator       = common.HexToAddress("0x1000000000000000000000000000000000000001")
	otherCreator  = common.HexToAddress("0x1000000000000000000000000000000000000002")
	alice         = common.HexToAddress("0x2000000000000000000000000000000000000001")
	bob           = common.HexToAddress("0x2000000000000000000000000000000000000002")
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type ledgerFixture struct {
	store    *memory.Store
	token    *memory.TokenLedger
	registry commands.RegistryUseCase
	basic    commands.BasicCampaignUseCase
	ballot   commands.BallotCampaignUseCase
	archive  commands.ArchiveUseCase
}

func newLedgerFixture(t *testing.T, fee int64) ledgerFixture {
	t.Helper()
	store := memory.NewStore()
	token := memory.NewTokenLedger(ledgerAccount)
	token.Mint(ledgerAccount, big.NewInt(1_000_000))
	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	rewards := commands.RewardEngine{
		Token:         token,
		LedgerAddress: ledgerAccount,
		CreationFee:   big.NewInt(fee),
		IDGen:         store,
	}
	eligibility := commands.EligibilityGate{Token: token}
	return ledgerFixture{
		store: store,
		token: token,
		registry: commands.RegistryUseCase{
			Ledger:  store,
			Rewards: rewards,
			Clock:   clock,
			IDGen:   store,
		},
		basic: commands.BasicCampaignUseCase{
			Ledger:      store,
			Eligibility: eligibility,
			Rewards:     rewards,
			Clock:       clock,
			IDGen:       store,
		},
		ballot: commands.BallotCampaignUseCase{
			Ledger:      store,
			Eligibility: eligibility,
			Rewards:     rewards,
			Clock:       clock,
			IDGen:       store,
		},
		archive: commands.ArchiveUseCase{
			Ledger: store,
			Clock:  clock,
			IDGen:  store,
		},
	}
}

func (f ledgerFixture) createCampaign(t *testing.T, campaignType entities.CampaignType) entities.Campaign {
	t.Helper()
	campaign, err := f.registry.CreateCampaign(context.Background(), commands.CreateCampaignCommand{
		Caller:      creator,
		Description: "test campaign",
		Type:        campaignType,
	})
	if err != nil {
		t.Fatalf("create campaign failed: %v", err)
	}
	return campaign
}

func (f ledgerFixture) activate(t *testing.T, campaignID uint64) {
	t.Helper()
	if _, err := f.registry.ActivateCampaign(context.Background(), commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaignID,
	}); err != nil {
		t.Fatalf("activate campaign %d failed: %v", campaignID, err)
	}
}

func (f ledgerFixture) balance(t *testing.T, owner common.Address) *big.Int {
	t.Helper()
	balance, err := f.token.BalanceOf(context.Background(), owner)
	if err != nil {
		t.Fatalf("balance lookup failed: %v", err)
	}
	return balance
}

func (f ledgerFixture) pendingEventTypes(t *testing.T) []string {
	t.Helper()
	rows, err := f.store.ListPendingOutbox(context.Background(), 1000)
	if err != nil {
		t.Fatalf("list outbox failed: %v", err)
	}
	types := make([]string, 0, len(rows))
	for _, row := range rows {
		types = append(types, row.EventType)
	}
	return types
}

func TestCreateCampaignAllocatesSequentialIDs(t *testing.T) {
	fixture := newLedgerFixture(t, 0)

	first := fixture.createCampaign(t, entities.CampaignTypeBasic)
	second := fixture.createCampaign(t, entities.CampaignTypeBallot)
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1 and 2, got %d and %d", first.ID, second.ID)
	}
	if first.IsActive || first.IsFinalized || first.IsEnded {
		t.Fatalf("expected new campaign to be inactive and unfinalized, got %+v", first)
	}
	if first.Creator != creator {
		t.Fatalf("expected creator %s, got %s", creator.Hex(), first.Creator.Hex())
	}

	state, err := fixture.store.GetLedgerState(context.Background())
	if err != nil {
		t.Fatalf("ledger state failed: %v", err)
	}
	if state.NextCampaignID != 3 {
		t.Fatalf("expected next campaign id 3, got %d", state.NextCampaignID)
	}
}

func TestCreateCampaignRejectsInvalidInput(t *testing.T) {
	fixture := newLedgerFixture(t, 0)

	tests := []struct {
		name string
		cmd  commands.CreateCampaignCommand
		want error
	}{
		{
			name: "undefined type",
			cmd:  commands.CreateCampaignCommand{Caller: creator, Type: entities.CampaignTypeUndefined},
			want: domainerrors.ErrUndefinedCampaignType,
		},
		{
			name: "unknown type",
			cmd:  commands.CreateCampaignCommand{Caller: creator, Type: entities.ParseCampaignType("ranked")},
			want: domainerrors.ErrUndefinedCampaignType,
		},
		{
			name: "missing caller",
			cmd:  commands.CreateCampaignCommand{Type: entities.CampaignTypeBasic},
			want: domainerrors.ErrInvalidCaller,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixture.registry.CreateCampaign(context.Background(), tc.cmd)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	campaigns, err := fixture.store.ListCampaigns(context.Background())
	if err != nil {
		t.Fatalf("list campaigns failed: %v", err)
	}
	if len(campaigns) != 0 {
		t.Fatalf("expected no campaigns after rejected creates, got %d", len(campaigns))
	}
}

func TestCreateCampaignChargesCreationFee(t *testing.T) {
	fixture := newLedgerFixture(t, 100)
	fixture.token.Mint(creator, big.NewInt(150))

	_, err := fixture.registry.CreateCampaign(context.Background(), commands.CreateCampaignCommand{
		Caller: creator,
		Type:   entities.CampaignTypeBasic,
	})
	if !errors.Is(err, domainerrors.ErrInsufficientAllowance) {
		t.Fatalf("expected insufficient allowance, got %v", err)
	}
	state, _ := fixture.store.GetLedgerState(context.Background())
	if state.NextCampaignID != 1 {
		t.Fatalf("expected rejected create to leave next id at 1, got %d", state.NextCampaignID)
	}

	fixture.token.Approve(creator, ledgerAccount, big.NewInt(100))
	campaign := fixture.createCampaign(t, entities.CampaignTypeBasic)
	if campaign.ID != 1 {
		t.Fatalf("expected first paid campaign to get id 1, got %d", campaign.ID)
	}
	if got := fixture.balance(t, creator); got.Cmp(big.NewInt(50)) != 0 {
		t.Fatalf("expected creator balance 50 after fee, got %s", got)
	}
	if got := fixture.balance(t, ledgerAccount); got.Cmp(big.NewInt(1_000_100)) != 0 {
		t.Fatalf("expected ledger balance 1000100 after fee, got %s", got)
	}

	types := fixture.pendingEventTypes(t)
	if len(types) != 2 || types[0] != commands.EventCampaignCreated || types[1] != commands.EventFeePaid {
		t.Fatalf("expected created then fee events, got %v", types)
	}
}

func TestCreateCampaignRollsBackWhenFeeTransferFails(t *testing.T) {
	fixture := newLedgerFixture(t, 100)
	fixture.token.Mint(creator, big.NewInt(100))
	fixture.token.Approve(creator, ledgerAccount, big.NewInt(100))
	fixture.token.RejectTransfers(true)

	_, err := fixture.registry.CreateCampaign(context.Background(), commands.CreateCampaignCommand{
		Caller: creator,
		Type:   entities.CampaignTypeBallot,
	})
	if !errors.Is(err, domainerrors.ErrFeeTransferFailed) {
		t.Fatalf("expected fee transfer failure, got %v", err)
	}
	if _, err := fixture.store.GetCampaign(context.Background(), 1); !errors.Is(err, domainerrors.ErrInvalidCampaignID) {
		t.Fatalf("expected campaign 1 to be absent after rollback, got %v", err)
	}
	if types := fixture.pendingEventTypes(t); len(types) != 0 {
		t.Fatalf("expected no outbox rows after rollback, got %v", types)
	}
	if got := fixture.balance(t, creator); got.Cmp(big.NewInt(100)) != 0 {
		t.Fatalf("expected creator balance untouched, got %s", got)
	}
}

func TestActivateCampaignKeepsSingleActiveSlot(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	first := fixture.createCampaign(t, entities.CampaignTypeBasic)
	second := fixture.createCampaign(t, entities.CampaignTypeBallot)

	fixture.activate(t, first.ID)
	fixture.activate(t, second.ID)

	previous, err := fixture.store.GetCampaign(context.Background(), first.ID)
	if err != nil {
		t.Fatalf("get campaign failed: %v", err)
	}
	if previous.IsActive {
		t.Fatalf("expected campaign %d to be deactivated when %d was activated", first.ID, second.ID)
	}
	state, _ := fixture.store.GetLedgerState(context.Background())
	if state.ActiveCampaignID != second.ID {
		t.Fatalf("expected active campaign %d, got %d", second.ID, state.ActiveCampaignID)
	}

	// Activating the holder again is a no-op.
	fixture.activate(t, second.ID)

	if _, err := fixture.registry.DeactivateCampaign(context.Background(), commands.CampaignCommand{
		Caller:     creator,
		CampaignID: second.ID,
	}); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	state, _ = fixture.store.GetLedgerState(context.Background())
	if state.ActiveCampaignID != 0 {
		t.Fatalf("expected no active campaign, got %d", state.ActiveCampaignID)
	}

	active := 0
	campaigns, _ := fixture.store.ListCampaigns(context.Background())
	for _, campaign := range campaigns {
		if campaign.IsActive {
			active++
		}
	}
	if active != 0 {
		t.Fatalf("expected zero active campaigns, got %d", active)
	}
}

func TestCreatorOnlyOperations(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	campaign := fixture.createCampaign(t, entities.CampaignTypeBasic)
	ctx := context.Background()

	if _, err := fixture.registry.SetDescription(ctx, commands.SetDescriptionCommand{
		Caller:      otherCreator,
		CampaignID:  campaign.ID,
		Description: "hijacked",
	}); !errors.Is(err, domainerrors.ErrNotCampaignCreator) {
		t.Fatalf("expected not creator on set description, got %v", err)
	}
	if _, err := fixture.registry.ActivateCampaign(ctx, commands.CampaignCommand{
		Caller:     otherCreator,
		CampaignID: campaign.ID,
	}); !errors.Is(err, domainerrors.ErrNotCampaignCreator) {
		t.Fatalf("expected not creator on activate, got %v", err)
	}
	if _, err := fixture.basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:     otherCreator,
		CampaignID: campaign.ID,
		Choices:    []string{"a"},
	}); !errors.Is(err, domainerrors.ErrNotCampaignCreator) {
		t.Fatalf("expected not creator on setup, got %v", err)
	}

	updated, err := fixture.registry.SetDescription(ctx, commands.SetDescriptionCommand{
		Caller:      creator,
		CampaignID:  campaign.ID,
		Description: "renamed",
	})
	if err != nil {
		t.Fatalf("set description failed: %v", err)
	}
	if updated.Description != "renamed" {
		t.Fatalf("expected description renamed, got %q", updated.Description)
	}
}

func TestUnknownCampaignIDIsRejected(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.createCampaign(t, entities.CampaignTypeBasic)
	ctx := context.Background()

	for _, campaignID := range []uint64{0, 2, 99} {
		if _, err := fixture.registry.ActivateCampaign(ctx, commands.CampaignCommand{
			Caller:     creator,
			CampaignID: campaignID,
		}); !errors.Is(err, domainerrors.ErrInvalidCampaignID) {
			t.Fatalf("campaign %d: expected invalid id on activate, got %v", campaignID, err)
		}
		// bob holds no tokens; the unknown id is reported first.
		if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
			Voter:         bob,
			CampaignID:    campaignID,
			ChoiceIndices: []uint64{0},
		}); !errors.Is(err, domainerrors.ErrInvalidCampaignID) {
			t.Fatalf("campaign %d: expected invalid id on vote, got %v", campaignID, err)
		}
	}
}
