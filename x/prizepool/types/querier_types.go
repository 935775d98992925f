package types

import "cosmossdk.io/math"

// Read-only response shapes for the QueryServer (SPEC_FULL.md §3 "Query
// surface"), named after the original contract's msg.rs response types.

type ContractConfigResponse struct {
	Config Config `json:"config"`
}

type PoolStateInfoResponse struct {
	PoolState  PoolState   `json:"pool_state"`
	Validators []Validator `json:"validators"`
}

type UserInfoResponse struct {
	UserInfo UserInfo `json:"user_info"`
}

type RoundResponse struct {
	Round Round `json:"round"`
}

type RewardStatsResponse struct {
	RewardsState RewardsState `json:"rewards_state"`
}

type LiquidityResponse struct {
	UserLiquidity UserLiquidity `json:"user_liquidity"`
	PoolLiquidity PoolLiquidity `json:"pool_liquidity"`
}

type WithdrawableResponse struct {
	AmountWithdrawable math.Int `json:"amount_withdrawable"`
}

type UnbondingsResponse struct {
	Batches []UnbondingBatchEntry `json:"batches"`
}

type UnbondingBatchEntry struct {
	BatchIndex uint64         `json:"batch_index"`
	Batch      UnbondingBatch `json:"batch"`
	UserAmount math.Int       `json:"user_amount"`
}
