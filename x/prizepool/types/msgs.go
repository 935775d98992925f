package types

import "cosmossdk.io/math"

// The following request types are the module's action surface (spec.md §6
// table). They are plain Go structs rather than protobuf-generated sdk.Msg
// implementations: message framing/serialization is explicitly out of scope
// (spec.md §1), but the operation surface itself is not, so MsgServer methods
// below take these typed requests directly.

type MsgDeposit struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgRequestWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgClaimRewards struct {
	Sender string `json:"sender"`
}

type MsgSponsor struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
	Title  string   `json:"title,omitempty"`
	Body   string   `json:"body,omitempty"`
}

type MsgSponsorRequestWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgSponsorWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgEndRound struct {
	Sender string `json:"sender"`
}

type MsgUnbondBatch struct {
	Sender string `json:"sender"`
}

type MsgUpdateValidatorSet struct {
	Sender     string                 `json:"sender"`
	Validators []ValidatorWithWeight  `json:"validators"`
}

type MsgRebalanceValidatorSet struct {
	Sender string `json:"sender"`
}

type MsgRequestReservesWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgReservesWithdraw struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
}

type MsgSetContractStatus struct {
	Sender string         `json:"sender"`
	Status ContractStatus `json:"status"`
}

type MsgReviewSponsorMessage struct {
	Sender  string `json:"sender"`
	Index   uint64 `json:"index"`
	Approve bool   `json:"approve"`
}

type MsgUpdateConfig struct {
	Sender                        string   `json:"sender"`
	UnbondingBatchDuration        *int64   `json:"unbonding_batch_duration,omitempty"`
	UnbondingDuration             *int64   `json:"unbonding_duration,omitempty"`
	MinimumDeposit                math.Int `json:"minimum_deposit,omitempty"`
	NumberOfTicketsPerTransaction math.Int `json:"number_of_tickets_per_transaction,omitempty"`
}

type MsgUpdateRound struct {
	Sender                string            `json:"sender"`
	TicketPrice           math.Int          `json:"ticket_price,omitempty"`
	RewardsDistribution   *RewardsDistInfo  `json:"rewards_distribution,omitempty"`
	RewardsExpiryDuration *int64            `json:"rewards_expiry_duration,omitempty"`
	TriggererSharePercentage *Fraction      `json:"triggerer_share_percentage,omitempty"`
	AdminShare            *AdminShareInfo   `json:"admin_share,omitempty"`
	UnclaimedDistribution *UnclaimedDistInfo `json:"unclaimed_distribution,omitempty"`
}

type MsgAddRole struct {
	Sender string `json:"sender"`
	Role   string `json:"role"` // "admin", "triggerer", or "reviewer"
	Addr   string `json:"addr"`
}

type MsgRemoveRole struct {
	Sender string `json:"sender"`
	Role   string `json:"role"`
	Addr   string `json:"addr"`
}
