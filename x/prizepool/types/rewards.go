package types

import "cosmossdk.io/math"

// TierWinningInfo is one tier's sealed draw parameters: its range and the
// uniformly-drawn winning number within [0, range) (spec.md §4.3 step 9).
type TierWinningInfo struct {
	Range         math.Int `json:"range"`
	WinningNumber math.Int `json:"winning_number"`
}

// TierPoolInfo is one tier's claim bookkeeping (spec.md §3).
type TierPoolInfo struct {
	NumOfRewards   uint64   `json:"num_of_rewards"`
	RewardPerMatch math.Int `json:"reward_per_match"`
	NumClaimed     uint64   `json:"num_claimed"`
}

// RewardsState is the sealed prize-pot and draw parameters for one round
// (spec.md §3), sealed by Round Engine step 11 and mutated only by Prize
// Draw claims thereafter.
type RewardsState struct {
	TicketPrice           math.Int                  `json:"ticket_price"`
	WinningSequence       [NumTiers]TierWinningInfo  `json:"winning_sequence"`
	TierPools             [NumTiers]TierPoolInfo     `json:"tier_pools"`
	RewardsExpirationDate int64                      `json:"rewards_expiration_date"`
	TotalRewards          math.Int                   `json:"total_rewards"`
	TotalClaimed          math.Int                   `json:"total_claimed"`

	// SealedSeed/SealedEntropy snapshot Config.prng_seed and round.entropy at
	// the instant this round's draw was sealed, so a claimant's seed
	// reconstruction (spec.md §4.4 step 1, §9) always reproduces the exact
	// material the draw used even though Round.Entropy keeps accumulating
	// across later rounds.
	SealedSeed    []byte `json:"sealed_seed"`
	SealedEntropy []byte `json:"sealed_entropy"`
}

// NewEmptyRewardsState builds the all-zero/defaults sealed state used when a
// round's rewards total is zero (spec.md §4.3 step 4).
func NewEmptyRewardsState(ticketPrice math.Int, expirationDate int64) RewardsState {
	rs := RewardsState{
		TicketPrice:           ticketPrice,
		RewardsExpirationDate: expirationDate,
		TotalRewards:          math.ZeroInt(),
		TotalClaimed:          math.ZeroInt(),
	}
	for k := 0; k < NumTiers; k++ {
		rs.WinningSequence[k] = TierWinningInfo{Range: math.ZeroInt(), WinningNumber: math.ZeroInt()}
		rs.TierPools[k] = TierPoolInfo{RewardPerMatch: math.ZeroInt()}
	}
	return rs
}

// IsExpired reports whether now is past this round's rewards_expiration_date
// (spec.md §4.3 "State machine": Expired).
func (rs RewardsState) IsExpired(now int64) bool {
	return now > rs.RewardsExpirationDate
}
