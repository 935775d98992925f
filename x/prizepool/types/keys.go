package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName is the name of the prize-pool core module.
	ModuleName = "prizepool"

	// StoreKey is the store key under which all module state is kept.
	StoreKey = ModuleName
)

// Top-level key prefixes. Every entity in spec.md §3 gets exactly one prefix
// byte, following the key-builder-function idiom of x/distribution/keeper
// (GetDelegatorStartingInfoKey) and x/staking/keeper/rewards.go
// (types.EpochInfoKey).
var (
	ConfigKey         = []byte{0x01}
	RoundKey          = []byte{0x02}
	PoolStateKey      = []byte{0x03}
	ValidatorPrefix   = []byte{0x04}
	PoolLiquidityPre  = []byte{0x05}
	UserInfoPrefix    = []byte{0x06}
	UserLiquidityPre  = []byte{0x07}
	RewardsStatePre   = []byte{0x08}
	UnbondingBatchPre = []byte{0x09}
	UserUnbondPre     = []byte{0x0A}
	SponsorInfoPrefix = []byte{0x0B}
	SponsorMsgPrefix  = []byte{0x0C}
	UserRewardsLogPre = []byte{0x0D}
	SponsorMsgFreeListKey = []byte{0x0E}
	ReservesUnbondPre = []byte{0x0F}
)

func uint64Key(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

// ValidatorKey addresses Validator(idx) records embedded in Config (spec.md §3).
func ValidatorKey(idx uint64) []byte {
	return append(append([]byte{}, ValidatorPrefix...), uint64Key(idx)...)
}

// PoolLiquidityKey addresses PoolLiquidity(round_index).
func PoolLiquidityKey(round uint64) []byte {
	return append(append([]byte{}, PoolLiquidityPre...), uint64Key(round)...)
}

// UserInfoKey addresses UserInfo(addr).
func UserInfoKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, UserInfoPrefix...), addr.Bytes()...)
}

// UserLiquidityKey addresses UserLiquidity(addr, round_index).
func UserLiquidityKey(addr sdk.AccAddress, round uint64) []byte {
	key := append(append([]byte{}, UserLiquidityPre...), addr.Bytes()...)
	return append(key, uint64Key(round)...)
}

// RewardsStateKey addresses RewardsState(round_index).
func RewardsStateKey(round uint64) []byte {
	return append(append([]byte{}, RewardsStatePre...), uint64Key(round)...)
}

// UnbondingBatchKey addresses UnbondingBatch(batch_index).
func UnbondingBatchKey(idx uint64) []byte {
	return append(append([]byte{}, UnbondingBatchPre...), uint64Key(idx)...)
}

// UserUnbondKey addresses UserUnbond(batch_index, addr).
func UserUnbondKey(idx uint64, addr sdk.AccAddress) []byte {
	key := append(append([]byte{}, UserUnbondPre...), uint64Key(idx)...)
	return append(key, addr.Bytes()...)
}

// SponsorInfoKey addresses SponsorInfo(addr) (supplemented, SPEC_FULL.md §3).
func SponsorInfoKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, SponsorInfoPrefix...), addr.Bytes()...)
}

// SponsorMessageKey addresses a moderated sponsor message by slot index.
func SponsorMessageKey(idx uint64) []byte {
	return append(append([]byte{}, SponsorMsgPrefix...), uint64Key(idx)...)
}

// UserRewardsLogKey addresses the bounded per-user rewards log (supplemented).
func UserRewardsLogKey(addr sdk.AccAddress) []byte {
	return append(append([]byte{}, UserRewardsLogPre...), addr.Bytes()...)
}

// UserUnbondPrefixForBatch returns the iteration prefix for all UserUnbond
// entries within one batch.
func UserUnbondPrefixForBatch(idx uint64) []byte {
	return append(append([]byte{}, UserUnbondPre...), uint64Key(idx)...)
}

// ReservesUnbondKey addresses the reserves-origin amount within batch idx
// (SPEC_FULL.md §3 "Reserves withdraw flow"), tracked separately from
// UserUnbond since reserves have no owning address.
func ReservesUnbondKey(idx uint64) []byte {
	return append(append([]byte{}, ReservesUnbondPre...), uint64Key(idx)...)
}
