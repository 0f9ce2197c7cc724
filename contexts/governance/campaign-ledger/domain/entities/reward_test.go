package entities

import (
	"math/big"
	"testing"
)

func TestComputeReward(t *testing.T) {
	tests := []struct {
		balance *big.Int
		want    int64
	}{
		{balance: nil, want: 0},
		{balance: big.NewInt(-5), want: 0},
		{balance: big.NewInt(0), want: 0},
		{balance: big.NewInt(617), want: 0},
		{balance: big.NewInt(618), want: 0},
		{balance: big.NewInt(619), want: 1},
		{balance: big.NewInt(10_000), want: 16},
		{balance: big.NewInt(1_000_000), want: 1618},
		{balance: big.NewInt(1_000_000_000), want: 1_618_000},
	}
	for _, tc := range tests {
		got := ComputeReward(tc.balance)
		if got.Cmp(big.NewInt(tc.want)) != 0 {
			t.Fatalf("ComputeReward(%v) = %s, want %d", tc.balance, got, tc.want)
		}
	}
}

func TestComputeRewardHandlesUint256Balances(t *testing.T) {
	balance, _ := new(big.Int).SetString("115792089237316195423570985008687907853269984665640564039457584007913129639935", 10)
	got := ComputeReward(balance)
	want := new(big.Int).Mul(balance, big.NewInt(RewardMultiplier))
	want.Quo(want, big.NewInt(RewardDivisor))
	if got.Cmp(want) != 0 {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if balance.Cmp(new(big.Int).Lsh(big.NewInt(1), 256)) >= 0 {
		t.Fatalf("input must stay below 2^256")
	}
}

func TestBallotStateSelectionsPerPosition(t *testing.T) {
	state := NewBallotState(1)
	president := state.AddPosition("President", 1)
	council := state.AddPosition("Council", 2)
	state.AddCandidate("Ada", president)
	state.AddCandidate("Linus", council)
	state.AddCandidate("Ken", council)

	counts := state.SelectionsPerPosition([]uint64{0, 1, 2})
	if counts[president] != 1 || counts[council] != 2 {
		t.Fatalf("unexpected counts %v", counts)
	}

	state.Tally([]uint64{1, 2})
	clone := state.Clone()
	clone.Tally([]uint64{1})
	if state.Votes[1] != 1 || clone.Votes[1] != 2 {
		t.Fatalf("expected clone tallies to be independent, got %v and %v", state.Votes, clone.Votes)
	}
}
