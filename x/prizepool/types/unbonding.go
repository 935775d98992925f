package types

import "cosmossdk.io/math"

// UnbondingSource distinguishes which ledger an UnbondingBatch entry drains,
// letting one batching mechanism serve user withdrawals, sponsor withdrawals
// and reserves withdrawals alike (SPEC_FULL.md §3).
type UnbondingSource int32

const (
	SourceUser UnbondingSource = iota
	SourceSponsor
	SourceReserves
)

// UnbondingBatch is a sealed batch of outgoing withdrawals (spec.md §3).
// UnbondingTime/Amount are Option<...> until the scheduler seals the batch
// (HasUnbondingTime false => "None").
type UnbondingBatch struct {
	HasUnbondingTime bool     `json:"has_unbonding_time"`
	UnbondingTime    int64    `json:"unbonding_time"`
	Amount           math.Int `json:"amount"`
}

// UserUnbond is one actor's requested amount within one batch (spec.md §3).
type UserUnbond struct {
	Amount math.Int `json:"amount"`
	Source UnbondingSource `json:"source"`
}
