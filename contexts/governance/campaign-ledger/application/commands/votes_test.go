package commands_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"

	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
)

func (f ledgerFixture) setupBasic(t *testing.T, choices []string, singleVoteOnly bool) entities.Campaign {
	t.Helper()
	campaign := f.createCampaign(t, entities.CampaignTypeBasic)
	if _, err := f.basic.SetupBasic(context.Background(), commands.SetupBasicCommand{
		Caller:         creator,
		CampaignID:     campaign.ID,
		Choices:        choices,
		SingleVoteOnly: singleVoteOnly,
	}); err != nil {
		t.Fatalf("setup basic failed: %v", err)
	}
	f.activate(t, campaign.ID)
	return campaign
}

func TestBasicCampaignVoteAndReward(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(10_000))
	campaign := fixture.setupBasic(t, []string{"Yes", "No"}, true)
	ctx := context.Background()

	result, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{0},
	})
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if result.Reward.Cmp(big.NewInt(16)) != 0 {
		t.Fatalf("expected reward 16, got %s", result.Reward)
	}
	if result.TotalVotes != 1 {
		t.Fatalf("expected total votes 1, got %d", result.TotalVotes)
	}
	if got := fixture.balance(t, alice); got.Cmp(big.NewInt(10_016)) != 0 {
		t.Fatalf("expected alice balance 10016, got %s", got)
	}
	if got := fixture.balance(t, ledgerAccount); got.Cmp(big.NewInt(999_984)) != 0 {
		t.Fatalf("expected ledger balance 999984, got %s", got)
	}

	state, _ := fixture.store.GetBasicState(ctx, campaign.ID)
	if state.Votes[0] != 1 || state.Votes[1] != 0 {
		t.Fatalf("expected tallies [1 0], got %v", state.Votes)
	}
	voted, _ := fixture.store.HasVoted(ctx, campaign.ID, alice)
	if !voted {
		t.Fatalf("expected alice to be recorded as voted")
	}

	if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1},
	}); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already voted, got %v", err)
	}
	if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         bob,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1},
	}); !errors.Is(err, domainerrors.ErrNotEligible) {
		t.Fatalf("expected not eligible for empty wallet, got %v", err)
	}
}

func TestBasicVoteValidation(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(5_000))
	single := fixture.setupBasic(t, []string{"A", "B", "C"}, true)

	tests := []struct {
		name    string
		indices []uint64
		want    error
	}{
		{name: "empty selection", indices: nil, want: domainerrors.ErrEmptyChoiceOrCandidateList},
		{name: "two choices in single mode", indices: []uint64{0, 1}, want: domainerrors.ErrSelectionLimitExceeded},
		{name: "index out of range", indices: []uint64{3}, want: domainerrors.ErrInvalidChoiceOrCandidateIndex},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixture.basic.VoteBasic(context.Background(), commands.BasicVoteCommand{
				Voter:         alice,
				CampaignID:    single.ID,
				ChoiceIndices: tc.indices,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	voted, _ := fixture.store.HasVoted(context.Background(), single.ID, alice)
	if voted {
		t.Fatalf("rejected ballots must not mark the voter")
	}
}

func TestBasicMultiChoiceCountsRepeatedIndices(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(1))
	campaign := fixture.setupBasic(t, []string{"A", "B"}, false)

	result, err := fixture.basic.VoteBasic(context.Background(), commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1, 1, 0},
	})
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if result.Reward.Sign() != 0 {
		t.Fatalf("expected zero reward for balance 1, got %s", result.Reward)
	}
	state, _ := fixture.store.GetBasicState(context.Background(), campaign.ID)
	if state.Votes[0] != 1 || state.Votes[1] != 2 {
		t.Fatalf("expected tallies [1 2], got %v", state.Votes)
	}

	types := fixture.pendingEventTypes(t)
	if last := types[len(types)-1]; last != commands.EventVoterRewardZero {
		t.Fatalf("expected trailing %s event, got %s", commands.EventVoterRewardZero, last)
	}
}

func TestBasicSetupRules(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	ctx := context.Background()
	ballot := fixture.createCampaign(t, entities.CampaignTypeBallot)
	basic := fixture.createCampaign(t, entities.CampaignTypeBasic)

	if _, err := fixture.basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:     creator,
		CampaignID: ballot.ID,
		Choices:    []string{"a"},
	}); !errors.Is(err, domainerrors.ErrCampaignTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
	if _, err := fixture.basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:     creator,
		CampaignID: basic.ID,
	}); !errors.Is(err, domainerrors.ErrEmptyChoiceOrCandidateList) {
		t.Fatalf("expected empty choice list, got %v", err)
	}
	if _, err := fixture.basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:     creator,
		CampaignID: basic.ID,
		Choices:    []string{"a", "b"},
	}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if _, err := fixture.basic.SetupBasic(ctx, commands.SetupBasicCommand{
		Caller:     creator,
		CampaignID: basic.ID,
		Choices:    []string{"c"},
	}); !errors.Is(err, domainerrors.ErrCampaignAlreadyFinalized) {
		t.Fatalf("expected already finalized, got %v", err)
	}

	campaign, _ := fixture.store.GetCampaign(ctx, basic.ID)
	if !campaign.IsFinalized || campaign.FinalizedAt == nil {
		t.Fatalf("expected basic setup to finalize the campaign, got %+v", campaign)
	}
}

func TestVoteRequiresActiveCampaign(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(10_000))
	campaign := fixture.createCampaign(t, entities.CampaignTypeBasic)
	if _, err := fixture.basic.SetupBasic(context.Background(), commands.SetupBasicCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
		Choices:    []string{"a"},
	}); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err := fixture.basic.VoteBasic(context.Background(), commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{0},
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotActive) {
		t.Fatalf("expected not active, got %v", err)
	}
}

func TestConcurrentVotesFromOneVoterPayOnce(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(1_000_000))
	campaign := fixture.setupBasic(t, []string{"Yes", "No"}, true)

	var (
		wg        sync.WaitGroup
		successes atomic.Int64
		duplicate atomic.Int64
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := fixture.basic.VoteBasic(context.Background(), commands.BasicVoteCommand{
				Voter:         alice,
				CampaignID:    campaign.ID,
				ChoiceIndices: []uint64{0},
			})
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, domainerrors.ErrAlreadyVoted):
				duplicate.Add(1)
			default:
				t.Errorf("unexpected vote error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != 1 || duplicate.Load() != 31 {
		t.Fatalf("expected 1 success and 31 duplicates, got %d and %d", successes.Load(), duplicate.Load())
	}
	if got := fixture.balance(t, alice); got.Cmp(big.NewInt(1_001_618)) != 0 {
		t.Fatalf("expected a single 1618 reward, got balance %s", got)
	}
	refreshed, _ := fixture.store.GetCampaign(context.Background(), campaign.ID)
	if refreshed.TotalVotes != 1 {
		t.Fatalf("expected total votes 1, got %d", refreshed.TotalVotes)
	}
}

func TestRewardTransferFailureRollsBackVote(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(10_000))
	campaign := fixture.setupBasic(t, []string{"Yes", "No"}, true)
	before := len(fixture.pendingEventTypes(t))
	fixture.token.RejectTransfers(true)

	_, err := fixture.basic.VoteBasic(context.Background(), commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1},
	})
	if !errors.Is(err, domainerrors.ErrRewardTransferFailed) {
		t.Fatalf("expected reward transfer failure, got %v", err)
	}

	ctx := context.Background()
	voted, _ := fixture.store.HasVoted(ctx, campaign.ID, alice)
	if voted {
		t.Fatalf("expected voter mark to roll back")
	}
	refreshed, _ := fixture.store.GetCampaign(ctx, campaign.ID)
	if refreshed.TotalVotes != 0 {
		t.Fatalf("expected total votes 0 after rollback, got %d", refreshed.TotalVotes)
	}
	state, _ := fixture.store.GetBasicState(ctx, campaign.ID)
	if state.Votes[1] != 0 {
		t.Fatalf("expected tally rollback, got %v", state.Votes)
	}
	if after := len(fixture.pendingEventTypes(t)); after != before {
		t.Fatalf("expected outbox unchanged (%d rows), got %d", before, after)
	}

	fixture.token.RejectTransfers(false)
	if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1},
	}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func (f ledgerFixture) setupBallot(t *testing.T) entities.Campaign {
	t.Helper()
	ctx := context.Background()
	campaign := f.createCampaign(t, entities.CampaignTypeBallot)

	president, err := f.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		Name:          "President",
		MaxSelections: 1,
	})
	if err != nil {
		t.Fatalf("add position failed: %v", err)
	}
	council, err := f.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		Name:          "Council",
		MaxSelections: 2,
	})
	if err != nil {
		t.Fatalf("add position failed: %v", err)
	}
	if president != 0 || council != 1 {
		t.Fatalf("expected position indices 0 and 1, got %d and %d", president, council)
	}

	first, err := f.ballot.AddCandidate(ctx, creator, campaign.ID, president, "Ada")
	if err != nil {
		t.Fatalf("add candidate failed: %v", err)
	}
	ids, err := f.ballot.AddCandidates(ctx, commands.AddCandidatesCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		PositionIndex: president,
		Names:         []string{"Grace"},
	})
	if err != nil {
		t.Fatalf("add candidates failed: %v", err)
	}
	councilIDs, err := f.ballot.AddCandidates(ctx, commands.AddCandidatesCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		PositionIndex: council,
		Names:         []string{"Linus", "Ken", "Rob"},
	})
	if err != nil {
		t.Fatalf("add council candidates failed: %v", err)
	}
	if first != 0 || ids[0] != 1 || councilIDs[0] != 2 || councilIDs[2] != 4 {
		t.Fatalf("expected global candidate ids 0..4, got %d %v %v", first, ids, councilIDs)
	}
	return campaign
}

func TestBallotCampaignLifecycle(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(2_000_000))
	fixture.token.Mint(bob, big.NewInt(10_000))
	campaign := fixture.setupBallot(t)
	fixture.activate(t, campaign.ID)
	ctx := context.Background()

	if _, err := fixture.ballot.VoteBallot(ctx, commands.BallotVoteCommand{
		Voter:        alice,
		CampaignID:   campaign.ID,
		CandidateIDs: []uint64{0},
	}); !errors.Is(err, domainerrors.ErrCampaignNotFinalized) {
		t.Fatalf("expected not finalized before setup is frozen, got %v", err)
	}

	if _, err := fixture.ballot.FinalizeBallotSetup(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if _, err := fixture.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		Name:          "Treasurer",
		MaxSelections: 1,
	}); !errors.Is(err, domainerrors.ErrCampaignAlreadyFinalized) {
		t.Fatalf("expected already finalized, got %v", err)
	}

	result, err := fixture.ballot.VoteBallot(ctx, commands.BallotVoteCommand{
		Voter:        alice,
		CampaignID:   campaign.ID,
		CandidateIDs: []uint64{0, 2, 4},
	})
	if err != nil {
		t.Fatalf("ballot vote failed: %v", err)
	}
	if result.Reward.Cmp(big.NewInt(3236)) != 0 {
		t.Fatalf("expected reward 3236, got %s", result.Reward)
	}

	rejections := []struct {
		name string
		ids  []uint64
		want error
	}{
		{name: "duplicate candidate", ids: []uint64{1, 1}, want: domainerrors.ErrDuplicateCandidateSelection},
		{name: "unknown candidate", ids: []uint64{5}, want: domainerrors.ErrInvalidChoiceOrCandidateIndex},
		{name: "position limit", ids: []uint64{0, 1}, want: domainerrors.ErrSelectionLimitExceeded},
		{name: "empty ballot", ids: nil, want: domainerrors.ErrEmptyChoiceOrCandidateList},
	}
	for _, tc := range rejections {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fixture.ballot.VoteBallot(ctx, commands.BallotVoteCommand{
				Voter:        bob,
				CampaignID:   campaign.ID,
				CandidateIDs: tc.ids,
			})
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	state, _ := fixture.store.GetBallotState(ctx, campaign.ID)
	want := []uint64{1, 0, 1, 0, 1}
	for i, votes := range want {
		if state.Votes[i] != votes {
			t.Fatalf("expected tallies %v, got %v", want, state.Votes)
		}
	}
	if state.Positions[1].CandidateCount != 3 {
		t.Fatalf("expected council to have 3 candidates, got %d", state.Positions[1].CandidateCount)
	}
}

func TestBallotSetupValidation(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	ctx := context.Background()
	campaign := fixture.createCampaign(t, entities.CampaignTypeBallot)

	if _, err := fixture.ballot.FinalizeBallotSetup(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	}); !errors.Is(err, domainerrors.ErrEmptyChoiceOrCandidateList) {
		t.Fatalf("expected empty ballot to be rejected, got %v", err)
	}
	if _, err := fixture.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
		Name:       "Chair",
	}); !errors.Is(err, domainerrors.ErrInvalidMaxSelections) {
		t.Fatalf("expected invalid max selections, got %v", err)
	}
	if _, err := fixture.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        creator,
		CampaignID:    campaign.ID,
		Name:          "  ",
		MaxSelections: 1,
	}); !errors.Is(err, domainerrors.ErrEmptyName) {
		t.Fatalf("expected empty name, got %v", err)
	}
	if _, err := fixture.ballot.AddCandidate(ctx, creator, campaign.ID, 0, "Nobody"); !errors.Is(err, domainerrors.ErrInvalidChoiceOrCandidateIndex) {
		t.Fatalf("expected missing position, got %v", err)
	}

	basic := fixture.createCampaign(t, entities.CampaignTypeBasic)
	if _, err := fixture.ballot.AddPosition(ctx, commands.AddPositionCommand{
		Caller:        creator,
		CampaignID:    basic.ID,
		Name:          "Chair",
		MaxSelections: 1,
	}); !errors.Is(err, domainerrors.ErrCampaignTypeMismatch) {
		t.Fatalf("expected type mismatch, got %v", err)
	}
}
