package types

import "cosmossdk.io/math"

// AdminShareInfo splits the admin share between the shade and galactic
// payout addresses (spec.md §3).
type AdminShareInfo struct {
	TotalPercentageShare Fraction `json:"total_percentage_share"`
	ShadePercentageShare Fraction `json:"shade_percentage_share"`
	ShadeAddress         string   `json:"shade_address"`
	GalacticAddress      string   `json:"galactic_address"`
}

// UnclaimedDistInfo is the reserve/propagate split applied to swept unclaimed
// prizes (spec.md §3, §4.3 step 6). ReservePercentage + PropagatePercentage
// must sum to the common divisor (I5).
type UnclaimedDistInfo struct {
	ReservePercentage   Fraction `json:"reserve_percentage"`
	PropagatePercentage Fraction `json:"propagate_percentage"`
}

// RewardsDistInfo declares, per tier k in 0..5, the total number of winners
// and the percentage of winning_amount allocated to that tier (spec.md §3,
// §4.3 steps 8 and 10).
type RewardsDistInfo struct {
	NumOfRewards       [NumTiers]uint64   `json:"num_of_rewards"`
	PercentageOfRewards [NumTiers]Fraction `json:"percentage_of_rewards"`
}

// NumTiers is the fixed six-tier lottery width (spec.md §4.3, GLOSSARY).
const NumTiers = 6

// Round is the time-bounded prize round configuration and clock (spec.md §3).
type Round struct {
	Duration        int64 `json:"duration"`
	StartTime       int64 `json:"start_time"`
	EndTime         int64 `json:"end_time"`
	CurrentRoundIdx uint64 `json:"current_round_index"`

	TicketPrice math.Int `json:"ticket_price"`

	RewardsDistribution   RewardsDistInfo   `json:"rewards_distribution"`
	RewardsExpiryDuration int64             `json:"rewards_expiry_duration"`

	TriggererSharePercentage Fraction       `json:"triggerer_share_percentage"`
	AdminShare               AdminShareInfo `json:"admin_share"`
	ProtocolShare            Fraction       `json:"protocol_share"`

	ShadeAddress    string `json:"shade_address"`
	GalacticAddress string `json:"galactic_address"`
	GrandPrizeAddress string `json:"grand_prize_address"`

	UnclaimedDistribution UnclaimedDistInfo `json:"unclaimed_distribution"`

	UnclaimedRewardsLastClaimedRound uint64 `json:"unclaimed_rewards_last_claimed_round"`

	Entropy []byte `json:"entropy"`
	Seed    []byte `json:"seed"`
}

// MaxEntropyBytes bounds round.entropy growth (spec.md §4.3 step 2).
const MaxEntropyBytes = 1024

// IsOpen reports Round = Open: now < end_time (spec.md §4.3 "State machine").
func (r Round) IsOpen(now int64) bool { return now < r.EndTime }

// IsReady reports Round = Ready: now >= end_time.
func (r Round) IsReady(now int64) bool { return now >= r.EndTime }

// ExtendEntropy appends height/time/seed material to round.entropy and
// truncates to the last MaxEntropyBytes-1 bytes if the extension overflows
// (spec.md §4.3 step 2).
func (r *Round) ExtendEntropy(blockHeight uint64, blockTime int64, processSeed []byte) {
	extra := make([]byte, 0, 8+8+len(processSeed))
	extra = appendUint64(extra, blockHeight)
	extra = appendInt64(extra, blockTime)
	extra = append(extra, processSeed...)
	r.Entropy = append(r.Entropy, extra...)
	if len(r.Entropy) > MaxEntropyBytes {
		r.Entropy = r.Entropy[len(r.Entropy)-(MaxEntropyBytes-1):]
	}
}

func appendUint64(b []byte, v uint64) []byte {
	for i := 7; i >= 0; i-- {
		b = append(b, byte(v>>(8*i)))
	}
	return b
}

func appendInt64(b []byte, v int64) []byte {
	return appendUint64(b, uint64(v))
}
