package types

import (
	"cosmossdk.io/math"
)

// ContractStatus is Config.status (spec.md §5): the gate every operation is
// declared against.
type ContractStatus int32

const (
	StatusNormal ContractStatus = iota
	StatusStopTransactions
	StatusStopAll
)

// Allows reports whether an operation requiring at most `max` may run at the
// current status level (spec.md §5 "Status gating").
func (s ContractStatus) Allows(max ContractStatus) bool {
	return s <= max
}

// Config is the process-wide configuration object (spec.md §3). The
// validator table itself is stored independently (types.ValidatorKey) to
// allow append/removal without rewriting the whole Config blob, but the
// notion "Validator embedded in Config" in spec.md §6 is preserved logically:
// NumValidators plus the Get/Set helpers on Keeper are the only way to reach
// them.
type Config struct {
	Admins       []string `json:"admins"`
	Triggerers   []string `json:"triggerers"`
	Reviewers    []string `json:"reviewers"`
	Denom        string   `json:"denom"`
	PRNGSeed     []byte   `json:"prng_seed"`
	NumValidators uint64  `json:"num_validators"`

	NextDelegationIndex uint64 `json:"next_delegation_index"`
	NextUnbondingIndex  uint64 `json:"next_unbonding_index"`

	NextUnbondingBatchIndex  uint64   `json:"next_unbonding_batch_index"`
	NextUnbondingBatchTime   int64    `json:"next_unbonding_batch_time"`
	NextUnbondingBatchAmount math.Int `json:"next_unbonding_batch_amount"`

	UnbondingBatchDuration int64 `json:"unbonding_batch_duration"`
	UnbondingDuration      int64 `json:"unbonding_duration"`

	MinimumDeposit math.Int `json:"minimum_deposit"` // nil => no minimum

	Status ContractStatus `json:"status"`

	CommonDivisor math.Int `json:"common_divisor"`

	NumberOfTicketsPerTransaction math.Int `json:"number_of_tickets_per_transaction"`

	// NextSponsorMessageSlot is the high-water mark for the sponsor-message
	// compact-with-holes index (SPEC_FULL.md §3); freed slots are recycled
	// via the keeper's free-slot stack before this counter is advanced.
	NextSponsorMessageSlot uint64 `json:"next_sponsor_message_slot"`
}

// Validate enforces the initialization rules of spec.md §9 "Global mutable
// state": at least one admin, triggerer and validator; common_divisor > 0.
// The round's reserve/propagate partition (I5) is checked by
// GenesisState.Validate, not here.
func (c Config) Validate() error {
	if len(c.Admins) == 0 {
		return ErrPreconditionViolated.Wrap("config must have at least one admin")
	}
	if len(c.Triggerers) == 0 {
		return ErrPreconditionViolated.Wrap("config must have at least one triggerer")
	}
	if c.NumValidators == 0 {
		return ErrNoValidators.Wrap("config must have at least one validator")
	}
	if c.CommonDivisor.IsNil() || !c.CommonDivisor.IsPositive() {
		return ErrPreconditionViolated.Wrap("common_divisor must be > 0")
	}
	if c.Denom == "" {
		return ErrInvalidAmount.Wrap("denom must be set")
	}
	return nil
}

// HasRole reports whether addr is a member of the named role set. This is
// the full extent of access control the core implements (spec.md §1): "caller
// bears role R", not membership management.
func (c Config) HasRole(addr string, role []string) bool {
	for _, a := range role {
		if a == addr {
			return true
		}
	}
	return false
}

func (c Config) IsAdmin(addr string) bool     { return c.HasRole(addr, c.Admins) }
func (c Config) IsTriggerer(addr string) bool { return c.HasRole(addr, c.Triggerers) }
func (c Config) IsReviewer(addr string) bool  { return c.HasRole(addr, c.Reviewers) }
