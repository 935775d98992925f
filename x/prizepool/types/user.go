package types

import "cosmossdk.io/math"

// UserInfo is the per-depositor account record (spec.md §3).
type UserInfo struct {
	AmountDelegated   math.Int `json:"amount_delegated"`
	AmountUnbonding   math.Int `json:"amount_unbonding"`
	AmountWithdrawable math.Int `json:"amount_withdrawable"`

	// StartingRound/LastClaimRewardsRound are Option<u64> in spec.md §3;
	// HasX booleans model "None".
	HasStartingRound     bool   `json:"has_starting_round"`
	StartingRound        uint64 `json:"starting_round"`
	HasLastClaimRound    bool   `json:"has_last_claim_round"`
	LastClaimRewardsRound uint64 `json:"last_claim_rewards_round"`

	TotalWon math.Int `json:"total_won"`

	OwnedUnbondingBatchIDs []uint64 `json:"owned_unbonding_batch_ids"`
}

// NewUserInfo returns the zero-value record created on first deposit.
func NewUserInfo() UserInfo {
	return UserInfo{
		AmountDelegated:    math.ZeroInt(),
		AmountUnbonding:    math.ZeroInt(),
		AmountWithdrawable: math.ZeroInt(),
		TotalWon:           math.ZeroInt(),
	}
}

// UserLiquidity is the lazily-materialized per-user, per-round liquidity
// snapshot (spec.md §3, §4.2).
type UserLiquidity struct {
	HasAmountDelegated bool     `json:"has_amount_delegated"`
	AmountDelegated    math.Int `json:"amount_delegated"`

	HasTimeWeighted bool     `json:"has_time_weighted"`
	TimeWeighted    math.Int `json:"time_weighted_liquidity"`

	HasTicketsUsed bool     `json:"has_tickets_used"`
	TicketsUsed    math.Int `json:"tickets_used"`
}

// NewUserLiquidity returns the unmaterialized ("None" everywhere) sentinel.
func NewUserLiquidity() UserLiquidity {
	return UserLiquidity{
		AmountDelegated: math.ZeroInt(),
		TimeWeighted:    math.ZeroInt(),
		TicketsUsed:     math.ZeroInt(),
	}
}

// SponsorInfo is the per-sponsor account record (SPEC_FULL.md §3).
type SponsorInfo struct {
	AmountSponsored    math.Int `json:"amount_sponsored"`
	AmountUnbonding    math.Int `json:"amount_unbonding"`
	AmountWithdrawable math.Int `json:"amount_withdrawable"`
	OwnedUnbondingBatchIDs []uint64 `json:"owned_unbonding_batch_ids"`
}

// NewSponsorInfo returns the zero-value record created on first sponsorship.
func NewSponsorInfo() SponsorInfo {
	return SponsorInfo{
		AmountSponsored:    math.ZeroInt(),
		AmountUnbonding:    math.ZeroInt(),
		AmountWithdrawable: math.ZeroInt(),
	}
}

// SponsorMessageStatus is the moderation state of an attached sponsor
// message (SPEC_FULL.md §3).
type SponsorMessageStatus int32

const (
	SponsorMsgPending SponsorMessageStatus = iota
	SponsorMsgApproved
	SponsorMsgRejected
)

// SponsorMessage is an optional moderated message attached to a Sponsor
// command, stored at a compact-with-holes index (spec.md §9).
type SponsorMessage struct {
	Sponsor string               `json:"sponsor"`
	Title   string               `json:"title"`
	Body    string               `json:"body"`
	Status  SponsorMessageStatus `json:"status"`
}

// UserRewardsLogEntry is one entry of the bounded per-user rewards log
// (SPEC_FULL.md §3).
type UserRewardsLogEntry struct {
	Round  uint64   `json:"round"`
	Amount math.Int `json:"amount"`
}

// MaxUserRewardsLogEntries bounds the ring buffer.
const MaxUserRewardsLogEntries = 16
