package entities

import "math/big"

const (
	RewardMultiplier = 1618
	RewardDivisor    = 1_000_000
)

// ComputeReward returns floor(balance * RewardMultiplier / RewardDivisor).
// Nil and non-positive balances earn nothing.
func ComputeReward(balance *big.Int) *big.Int {
	if balance == nil || balance.Sign() <= 0 {
		return new(big.Int)
	}
	reward := new(big.Int).Mul(balance, big.NewInt(RewardMultiplier))
	return reward.Quo(reward, big.NewInt(RewardDivisor))
}
