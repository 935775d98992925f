package types

import "cosmossdk.io/math"

// PoolState is the global pool accounting record (spec.md §3). Owned by the
// Round Engine for total_reserves and by all flows jointly for the rest, per
// the ownership table in spec.md §3.
type PoolState struct {
	TotalDelegated            math.Int `json:"total_delegated"`
	TotalSponsored             math.Int `json:"total_sponsored"`
	TotalReserves              math.Int `json:"total_reserves"`
	RewardsReturnedToContract  math.Int `json:"rewards_returned_to_contract"`
	PendingUnbondingBatchIDs   []uint64 `json:"pending_unbonding_batch_ids"`

	// ReservesUnbonding/ReservesWithdrawable mirror UserInfo's
	// amount_unbonding/amount_withdrawable for the admin-driven reserves
	// withdraw flow (SPEC_FULL.md §3), since reserves have no owning
	// UserInfo/SponsorInfo record of their own.
	ReservesUnbonding    math.Int `json:"reserves_unbonding"`
	ReservesWithdrawable math.Int `json:"reserves_withdrawable"`
}

// NewPoolState returns a zeroed PoolState.
func NewPoolState() PoolState {
	return PoolState{
		TotalDelegated:            math.ZeroInt(),
		TotalSponsored:            math.ZeroInt(),
		TotalReserves:             math.ZeroInt(),
		RewardsReturnedToContract: math.ZeroInt(),
		ReservesUnbonding:         math.ZeroInt(),
		ReservesWithdrawable:      math.ZeroInt(),
	}
}

// TotalPooled is the sum the Delegation Router's validator table must equal
// net of outstanding-but-unreleased unbonding (invariant I1).
func (p PoolState) TotalPooled() math.Int {
	return p.TotalDelegated.Add(p.TotalSponsored).Add(p.TotalReserves)
}

// PoolLiquidity is the lazily-materialized round-scoped aggregate liquidity
// snapshot (spec.md §3, §4.2 "Lazy materialization").
type PoolLiquidity struct {
	// TotalDelegatedAtStart is nil/zero-value (use Materialized) until the
	// round's first touch.
	Materialized                bool     `json:"materialized"`
	TotalDelegatedAtStart       math.Int `json:"total_delegated_at_start_of_round"`
	TotalTimeWeightedLiquidity math.Int `json:"total_time_weighted_liquidity"`
}

// NewPoolLiquidity returns the None/unmaterialized sentinel.
func NewPoolLiquidity() PoolLiquidity {
	return PoolLiquidity{
		TotalDelegatedAtStart:      math.ZeroInt(),
		TotalTimeWeightedLiquidity: math.ZeroInt(),
	}
}
