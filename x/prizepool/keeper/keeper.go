// Package keeper implements the prize-pool core: the Delegation Router,
// Liquidity Ledger, Round Engine, Prize Draw and Unbonding Scheduler
// described in spec.md §4, wired against a single sdk.KVStore the way
// x/distribution/keeper and x/staking/keeper/rewards.go wire their state in
// this corpus.
package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// Keeper is the prize-pool core's sole entry point into state. Every
// mutation commits through sdk.Context's underlying CommitMultiStore, so a
// transaction's changes are all-or-nothing (spec.md §5 "Shared-resource
// policy").
type Keeper struct {
	storeKey storetypes.StoreKey

	stakingKeeper types.StakingKeeper
	bankKeeper    types.BankKeeper
}

// NewKeeper wires the prize-pool core to its store key and host collaborators.
func NewKeeper(storeKey storetypes.StoreKey, stakingKeeper types.StakingKeeper, bankKeeper types.BankKeeper) Keeper {
	return Keeper{
		storeKey:      storeKey,
		stakingKeeper: stakingKeeper,
		bankKeeper:    bankKeeper,
	}
}

// Logger returns a module-scoped logger, following the
// x/distribution/keeper / x/staking/keeper/rewards.go idiom.
func (k Keeper) Logger(ctx sdk.Context) log.Logger {
	return ctx.Logger().With("module", "x/"+types.ModuleName)
}

func (k Keeper) store(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// get unmarshals the JSON value at key into dst, returning false if absent.
// This mirrors the store.Get + json.Unmarshal idiom of
// x/staking/keeper/rewards.go's GetEpochInfo.
func (k Keeper) get(ctx sdk.Context, key []byte, dst interface{}) bool {
	bz := k.store(ctx).Get(key)
	if bz == nil {
		return false
	}
	if err := json.Unmarshal(bz, dst); err != nil {
		panic(errorsmod.Wrapf(err, "corrupt state at key %x", key))
	}
	return true
}

// set JSON-marshals src and stores it at key.
func (k Keeper) set(ctx sdk.Context, key []byte, src interface{}) {
	bz, err := json.Marshal(src)
	if err != nil {
		panic(errorsmod.Wrapf(err, "failed to marshal value for key %x", key))
	}
	k.store(ctx).Set(key, bz)
}

func (k Keeper) has(ctx sdk.Context, key []byte) bool {
	return k.store(ctx).Has(key)
}

func (k Keeper) delete(ctx sdk.Context, key []byte) {
	k.store(ctx).Delete(key)
}

// GetConfig returns the process-wide Config; callers must only invoke this
// after genesis has run (InitGenesis always writes one).
func (k Keeper) GetConfig(ctx sdk.Context) types.Config {
	var cfg types.Config
	if !k.get(ctx, types.ConfigKey, &cfg) {
		panic("prizepool: config not set")
	}
	return cfg
}

// SetConfig persists Config. Genesis and admin operations write it, and the
// Delegation Router, Unbonding Scheduler and sponsor-message slot allocator
// write their own index/batch fields through it (ownership table, spec.md §3).
func (k Keeper) SetConfig(ctx sdk.Context, cfg types.Config) {
	k.set(ctx, types.ConfigKey, cfg)
}

// GetRound returns the current Round record.
func (k Keeper) GetRound(ctx sdk.Context) types.Round {
	var r types.Round
	if !k.get(ctx, types.RoundKey, &r) {
		panic("prizepool: round not set")
	}
	return r
}

// SetRound persists Round. Owned by the Round Engine (spec.md §3).
func (k Keeper) SetRound(ctx sdk.Context, r types.Round) {
	k.set(ctx, types.RoundKey, r)
}

// GetPoolState returns the global pool accounting record.
func (k Keeper) GetPoolState(ctx sdk.Context) types.PoolState {
	var ps types.PoolState
	if !k.get(ctx, types.PoolStateKey, &ps) {
		panic("prizepool: pool state not set")
	}
	return ps
}

// SetPoolState persists PoolState.
func (k Keeper) SetPoolState(ctx sdk.Context, ps types.PoolState) {
	k.set(ctx, types.PoolStateKey, ps)
}

// GetValidator returns validator at idx and whether it exists.
func (k Keeper) GetValidator(ctx sdk.Context, idx uint64) (types.Validator, bool) {
	var v types.Validator
	ok := k.get(ctx, types.ValidatorKey(idx), &v)
	return v, ok
}

// SetValidator persists validator at idx. Owned exclusively by the
// Delegation Router (invariant I1 ownership note, spec.md §3).
func (k Keeper) SetValidator(ctx sdk.Context, idx uint64, v types.Validator) {
	k.set(ctx, types.ValidatorKey(idx), v)
}

// DeleteValidator removes validator idx (weight=0 lifecycle end, spec.md §3).
func (k Keeper) DeleteValidator(ctx sdk.Context, idx uint64) {
	k.delete(ctx, types.ValidatorKey(idx))
}

// Validators returns every validator in table-index order 0..NumValidators-1.
func (k Keeper) Validators(ctx sdk.Context) []types.Validator {
	cfg := k.GetConfig(ctx)
	out := make([]types.Validator, 0, cfg.NumValidators)
	for i := uint64(0); i < cfg.NumValidators; i++ {
		if v, ok := k.GetValidator(ctx, i); ok {
			out = append(out, v)
		}
	}
	return out
}

// GetUserInfo returns UserInfo(addr), or the zero-value record if the user
// has never deposited.
func (k Keeper) GetUserInfo(ctx sdk.Context, addr sdk.AccAddress) types.UserInfo {
	var u types.UserInfo
	if !k.get(ctx, types.UserInfoKey(addr), &u) {
		return types.NewUserInfo()
	}
	return u
}

// SetUserInfo persists UserInfo(addr). Owned by the Liquidity Ledger.
func (k Keeper) SetUserInfo(ctx sdk.Context, addr sdk.AccAddress, u types.UserInfo) {
	k.set(ctx, types.UserInfoKey(addr), u)
}

// GetSponsorInfo returns SponsorInfo(addr), or its zero value.
func (k Keeper) GetSponsorInfo(ctx sdk.Context, addr sdk.AccAddress) types.SponsorInfo {
	var s types.SponsorInfo
	if !k.get(ctx, types.SponsorInfoKey(addr), &s) {
		return types.NewSponsorInfo()
	}
	return s
}

// SetSponsorInfo persists SponsorInfo(addr).
func (k Keeper) SetSponsorInfo(ctx sdk.Context, addr sdk.AccAddress, s types.SponsorInfo) {
	k.set(ctx, types.SponsorInfoKey(addr), s)
}

// GetPoolLiquidity returns PoolLiquidity(round) and whether it has been
// materialized yet (spec.md §4.2 "Lazy materialization").
func (k Keeper) GetPoolLiquidity(ctx sdk.Context, round uint64) (types.PoolLiquidity, bool) {
	var pl types.PoolLiquidity
	ok := k.get(ctx, types.PoolLiquidityKey(round), &pl)
	return pl, ok && pl.Materialized
}

// SetPoolLiquidity persists PoolLiquidity(round). Owned by the Liquidity
// Ledger.
func (k Keeper) SetPoolLiquidity(ctx sdk.Context, round uint64, pl types.PoolLiquidity) {
	k.set(ctx, types.PoolLiquidityKey(round), pl)
}

// GetUserLiquidity returns UserLiquidity(addr, round) and whether it has
// been materialized yet.
func (k Keeper) GetUserLiquidity(ctx sdk.Context, addr sdk.AccAddress, round uint64) (types.UserLiquidity, bool) {
	var ul types.UserLiquidity
	ok := k.get(ctx, types.UserLiquidityKey(addr, round), &ul)
	return ul, ok
}

// SetUserLiquidity persists UserLiquidity(addr, round).
func (k Keeper) SetUserLiquidity(ctx sdk.Context, addr sdk.AccAddress, round uint64, ul types.UserLiquidity) {
	k.set(ctx, types.UserLiquidityKey(addr, round), ul)
}

// GetRewardsState returns RewardsState(round) and whether it has been sealed.
func (k Keeper) GetRewardsState(ctx sdk.Context, round uint64) (types.RewardsState, bool) {
	var rs types.RewardsState
	ok := k.get(ctx, types.RewardsStateKey(round), &rs)
	return rs, ok
}

// SetRewardsState persists RewardsState(round). Sealed by the Round Engine,
// mutated thereafter only by Prize Draw claims.
func (k Keeper) SetRewardsState(ctx sdk.Context, round uint64, rs types.RewardsState) {
	k.set(ctx, types.RewardsStateKey(round), rs)
}

// GetUnbondingBatch returns UnbondingBatch(idx) and whether it exists.
func (k Keeper) GetUnbondingBatch(ctx sdk.Context, idx uint64) (types.UnbondingBatch, bool) {
	var b types.UnbondingBatch
	ok := k.get(ctx, types.UnbondingBatchKey(idx), &b)
	return b, ok
}

// SetUnbondingBatch persists UnbondingBatch(idx). Owned by the Scheduler.
func (k Keeper) SetUnbondingBatch(ctx sdk.Context, idx uint64, b types.UnbondingBatch) {
	k.set(ctx, types.UnbondingBatchKey(idx), b)
}

// GetUserUnbond returns UserUnbond(idx, addr) and whether it exists.
func (k Keeper) GetUserUnbond(ctx sdk.Context, idx uint64, addr sdk.AccAddress) (types.UserUnbond, bool) {
	var u types.UserUnbond
	ok := k.get(ctx, types.UserUnbondKey(idx, addr), &u)
	return u, ok
}

// SetUserUnbond persists UserUnbond(idx, addr).
func (k Keeper) SetUserUnbond(ctx sdk.Context, idx uint64, addr sdk.AccAddress, u types.UserUnbond) {
	k.set(ctx, types.UserUnbondKey(idx, addr), u)
}

// DeleteUserUnbond removes UserUnbond(idx, addr), consumed on withdraw.
func (k Keeper) DeleteUserUnbond(ctx sdk.Context, idx uint64, addr sdk.AccAddress) {
	k.delete(ctx, types.UserUnbondKey(idx, addr))
}

// GetReservesUnbond returns the reserves-origin share of batch idx.
func (k Keeper) GetReservesUnbond(ctx sdk.Context, idx uint64) math.Int {
	var amt math.Int
	if !k.get(ctx, types.ReservesUnbondKey(idx), &amt) {
		return math.ZeroInt()
	}
	return amt
}

// SetReservesUnbond persists the reserves-origin share of batch idx.
func (k Keeper) SetReservesUnbond(ctx sdk.Context, idx uint64, amt math.Int) {
	k.set(ctx, types.ReservesUnbondKey(idx), amt)
}

// DeleteReservesUnbond removes the reserves-origin share of batch idx.
func (k Keeper) DeleteReservesUnbond(ctx sdk.Context, idx uint64) {
	k.delete(ctx, types.ReservesUnbondKey(idx))
}

// GetSponsorMessage returns SponsorMessage(idx) and whether the slot is
// occupied.
func (k Keeper) GetSponsorMessage(ctx sdk.Context, idx uint64) (types.SponsorMessage, bool) {
	var m types.SponsorMessage
	ok := k.get(ctx, types.SponsorMessageKey(idx), &m)
	return m, ok
}

// SetSponsorMessage persists SponsorMessage(idx).
func (k Keeper) SetSponsorMessage(ctx sdk.Context, idx uint64, m types.SponsorMessage) {
	k.set(ctx, types.SponsorMessageKey(idx), m)
}

// DeleteSponsorMessage removes the entry at slot idx; releaseSponsorMessageSlot
// returns the slot to the free-slot stack (SPEC_FULL.md §3 "compact-with-holes").
func (k Keeper) DeleteSponsorMessage(ctx sdk.Context, idx uint64) {
	k.delete(ctx, types.SponsorMessageKey(idx))
}

// sponsorMsgFreeList is the stack of freed sponsor-message slot indexes
// available for reuse before the slot count is grown.
func (k Keeper) sponsorMsgFreeList(ctx sdk.Context) []uint64 {
	var free []uint64
	k.get(ctx, types.SponsorMsgFreeListKey, &free)
	return free
}

func (k Keeper) setSponsorMsgFreeList(ctx sdk.Context, free []uint64) {
	k.set(ctx, types.SponsorMsgFreeListKey, free)
}

// nextSponsorMessageSlot pops a freed slot if one exists, else grows the
// slot count by one (spec.md §9 "Cyclic references → indexed access").
func (k Keeper) nextSponsorMessageSlot(ctx sdk.Context) uint64 {
	free := k.sponsorMsgFreeList(ctx)
	if len(free) > 0 {
		idx := free[len(free)-1]
		k.setSponsorMsgFreeList(ctx, free[:len(free)-1])
		return idx
	}
	cfg := k.GetConfig(ctx)
	idx := cfg.NextSponsorMessageSlot
	cfg.NextSponsorMessageSlot++
	k.SetConfig(ctx, cfg)
	return idx
}

// releaseSponsorMessageSlot returns idx to the free-slot stack after its
// entry has been deleted.
func (k Keeper) releaseSponsorMessageSlot(ctx sdk.Context, idx uint64) {
	k.setSponsorMsgFreeList(ctx, append(k.sponsorMsgFreeList(ctx), idx))
}

// GetUserRewardsLog returns the bounded ring of a user's recent per-round
// claim amounts (SPEC_FULL.md §3).
func (k Keeper) GetUserRewardsLog(ctx sdk.Context, addr sdk.AccAddress) []types.UserRewardsLogEntry {
	var log []types.UserRewardsLogEntry
	k.get(ctx, types.UserRewardsLogKey(addr), &log)
	return log
}
