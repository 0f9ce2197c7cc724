package commands_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"ballotbox/contexts/governance/campaign-ledger/application/commands"
	"ballotbox/contexts/governance/campaign-ledger/domain/entities"
	domainerrors "ballotbox/contexts/governance/campaign-ledger/domain/errors"
)

func TestEndCampaignArchivesAndFreezesResult(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(10_000))
	fixture.token.Mint(bob, big.NewInt(10_000))
	campaign := fixture.setupBasic(t, []string{"Yes", "No"}, true)
	ctx := context.Background()

	if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         alice,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{0},
	}); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	if _, err := fixture.archive.EndCampaign(ctx, commands.CampaignCommand{
		Caller:     otherCreator,
		CampaignID: campaign.ID,
	}); !errors.Is(err, domainerrors.ErrNotCampaignCreator) {
		t.Fatalf("expected not creator, got %v", err)
	}

	archived, err := fixture.archive.EndCampaign(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	})
	if err != nil {
		t.Fatalf("end campaign failed: %v", err)
	}
	if archived.Type != entities.CampaignTypeBasic || archived.TotalVotes != 1 || archived.ChoiceVotes[0] != 1 {
		t.Fatalf("unexpected archive %+v", archived)
	}

	ended, _ := fixture.store.GetCampaign(ctx, campaign.ID)
	if !ended.IsEnded || ended.IsActive || ended.EndedAt == nil {
		t.Fatalf("expected ended and inactive campaign, got %+v", ended)
	}
	state, _ := fixture.store.GetLedgerState(ctx)
	if state.ActiveCampaignID != 0 {
		t.Fatalf("expected active slot released, got %d", state.ActiveCampaignID)
	}

	if _, err := fixture.archive.EndCampaign(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	}); !errors.Is(err, domainerrors.ErrCampaignAlreadyEnded) {
		t.Fatalf("expected already ended, got %v", err)
	}

	// Live tallies may keep moving after reactivation; the archive does not.
	fixture.activate(t, campaign.ID)
	if _, err := fixture.basic.VoteBasic(ctx, commands.BasicVoteCommand{
		Voter:         bob,
		CampaignID:    campaign.ID,
		ChoiceIndices: []uint64{1},
	}); err != nil {
		t.Fatalf("post-end vote failed: %v", err)
	}
	stored, found, err := fixture.store.GetFinalResult(ctx, campaign.ID)
	if err != nil || !found {
		t.Fatalf("expected stored final result, found=%v err=%v", found, err)
	}
	if stored.TotalVotes != 1 || stored.ChoiceVotes[1] != 0 {
		t.Fatalf("expected frozen archive, got %+v", stored)
	}
}

func TestEndCampaignRequiresFinalizedSetup(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	campaign := fixture.createCampaign(t, entities.CampaignTypeBallot)

	_, err := fixture.archive.EndCampaign(context.Background(), commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	})
	if !errors.Is(err, domainerrors.ErrCampaignNotFinalized) {
		t.Fatalf("expected not finalized, got %v", err)
	}
}

func TestEndBallotCampaignSnapshotsCandidates(t *testing.T) {
	fixture := newLedgerFixture(t, 0)
	fixture.token.Mint(alice, big.NewInt(10_000))
	campaign := fixture.setupBallot(t)
	ctx := context.Background()
	if _, err := fixture.ballot.FinalizeBallotSetup(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	}); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	fixture.activate(t, campaign.ID)
	if _, err := fixture.ballot.VoteBallot(ctx, commands.BallotVoteCommand{
		Voter:        alice,
		CampaignID:   campaign.ID,
		CandidateIDs: []uint64{1, 3},
	}); err != nil {
		t.Fatalf("ballot vote failed: %v", err)
	}

	archived, err := fixture.archive.EndCampaign(ctx, commands.CampaignCommand{
		Caller:     creator,
		CampaignID: campaign.ID,
	})
	if err != nil {
		t.Fatalf("end campaign failed: %v", err)
	}
	if len(archived.Positions) != 2 || len(archived.Candidates) != 5 {
		t.Fatalf("expected 2 positions and 5 candidates, got %d and %d", len(archived.Positions), len(archived.Candidates))
	}
	if archived.CandidateVotes[1] != 1 || archived.CandidateVotes[3] != 1 || archived.CandidateVotes[0] != 0 {
		t.Fatalf("unexpected candidate votes %v", archived.CandidateVotes)
	}

	types := fixture.pendingEventTypes(t)
	if last := types[len(types)-1]; last != commands.EventCampaignEnded {
		t.Fatalf("expected %s as final event, got %s", commands.EventCampaignEnded, last)
	}
}
