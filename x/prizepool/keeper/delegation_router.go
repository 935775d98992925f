package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// StakeOne places one inbound amount, whole, on the validator at the
// round-robin index and advances that index (spec.md §4.1). It emits an authoritative delegate
// request to the host staking system and folds any rewards currently
// reported for the selected validator into PoolState.rewards_returned_to_contract
// (snapshot-on-touch accounting).
func (k Keeper) StakeOne(ctx sdk.Context, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("stake_one amount must be > 0")
	}

	cfg := k.GetConfig(ctx)
	if cfg.NumValidators == 0 {
		return types.ErrNoValidators
	}

	idx := cfg.NextDelegationIndex % cfg.NumValidators
	v, ok := k.GetValidator(ctx, idx)
	if !ok {
		return types.ErrNotFound.Wrapf("validator at index %d", idx)
	}

	if err := k.stakingKeeper.Delegate(ctx, v.Address, sdk.NewCoin(cfg.Denom, amount)); err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}
	v.Delegated = v.Delegated.Add(amount)

	k.absorbValidatorRewards(ctx, &v)

	ps := k.GetPoolState(ctx)
	v.RecomputeFilled(ps.TotalPooled())
	k.SetValidator(ctx, idx, v)

	cfg.NextDelegationIndex = (idx + 1) % cfg.NumValidators
	k.SetConfig(ctx, cfg)

	return nil
}

// absorbValidatorRewards queries the currently-reported reward for v and
// folds it into PoolState.rewards_returned_to_contract, zeroing it from the
// host's perspective via WithdrawRewards (spec.md §4.1 "snapshot-on-touch").
func (k Keeper) absorbValidatorRewards(ctx sdk.Context, v *types.Validator) {
	rewards, err := k.stakingKeeper.QueryRewards(ctx, sdk.AccAddress{})
	if err != nil {
		return
	}
	ps := k.GetPoolState(ctx)
	for _, r := range rewards {
		if r.Validator != v.Address {
			continue
		}
		if r.Amount.Amount.IsPositive() {
			if err := k.stakingKeeper.WithdrawRewards(ctx, v.Address); err == nil {
				ps.RewardsReturnedToContract = ps.RewardsReturnedToContract.Add(r.Amount.Amount)
			}
		}
	}
	k.SetPoolState(ctx, ps)
}

// UnbondUpTo drains validators starting at next_unbonding until `total` has
// been removed or every validator has been visited once in this call,
// returning the indexes touched (spec.md §4.1).
func (k Keeper) UnbondUpTo(ctx sdk.Context, total math.Int) ([]uint64, error) {
	cfg := k.GetConfig(ctx)
	if cfg.NumValidators == 0 {
		return nil, types.ErrNoValidators
	}

	remaining := total
	touched := make([]uint64, 0, cfg.NumValidators)
	visited := uint64(0)

	for remaining.IsPositive() && visited < cfg.NumValidators {
		idx := cfg.NextUnbondingIndex % cfg.NumValidators
		v, ok := k.GetValidator(ctx, idx)
		if !ok {
			cfg.NextUnbondingIndex = (idx + 1) % cfg.NumValidators
			visited++
			continue
		}

		share := math.MinInt(v.Delegated, remaining)
		if share.IsPositive() {
			if err := k.stakingKeeper.Undelegate(ctx, v.Address, sdk.NewCoin(cfg.Denom, share)); err != nil {
				return nil, types.ErrHostInterface.Wrap(err.Error())
			}
			v.Delegated = v.Delegated.Sub(share)
			remaining = remaining.Sub(share)
			touched = append(touched, idx)
		}

		ps := k.GetPoolState(ctx)
		v.RecomputeFilled(ps.TotalPooled())
		k.SetValidator(ctx, idx, v)

		cfg.NextUnbondingIndex = (idx + 1) % cfg.NumValidators
		visited++
	}

	k.SetConfig(ctx, cfg)
	return touched, nil
}

// Rebalance recomputes each validator's ideal delegated amount from its
// weight and redistributes surplus to deficit validators in min(surplus,
// deficit) chunks, rolling touched validators' rewards into the accumulator
// and resetting both round-robin indexes to 0 (spec.md §4.1).
func (k Keeper) Rebalance(ctx sdk.Context) error {
	cfg := k.GetConfig(ctx)
	if cfg.NumValidators == 0 {
		return types.ErrNoValidators
	}

	vs := k.Validators(ctx)
	ps := k.GetPoolState(ctx)
	total := ps.TotalDelegated.Add(ps.TotalSponsored).Add(ps.TotalReserves)

	type surplusEntry struct {
		idx    uint64
		amount math.Int
	}
	var surpluses, deficits []surplusEntry

	for i := range vs {
		ideal := vs[i].IdealDelegated(total)
		if vs[i].Delegated.GT(ideal) {
			surpluses = append(surpluses, surplusEntry{uint64(i), vs[i].Delegated.Sub(ideal)})
		} else if vs[i].Delegated.LT(ideal) {
			deficits = append(deficits, surplusEntry{uint64(i), ideal.Sub(vs[i].Delegated)})
		}
	}

	si, di := 0, 0
	for si < len(surpluses) && di < len(deficits) {
		s := &surpluses[si]
		d := &deficits[di]
		chunk := math.MinInt(s.amount, d.amount)
		if chunk.IsPositive() {
			srcV, _ := k.GetValidator(ctx, s.idx)
			dstV, _ := k.GetValidator(ctx, d.idx)

			if err := k.stakingKeeper.Redelegate(ctx, srcV.Address, dstV.Address, sdk.NewCoin(cfg.Denom, chunk)); err != nil {
				return types.ErrHostInterface.Wrap(err.Error())
			}
			srcV.Delegated = srcV.Delegated.Sub(chunk)
			dstV.Delegated = dstV.Delegated.Add(chunk)

			k.absorbValidatorRewards(ctx, &srcV)
			k.absorbValidatorRewards(ctx, &dstV)

			srcV.RecomputeFilled(total)
			dstV.RecomputeFilled(total)
			k.SetValidator(ctx, s.idx, srcV)
			k.SetValidator(ctx, d.idx, dstV)

			s.amount = s.amount.Sub(chunk)
			d.amount = d.amount.Sub(chunk)
		}
		if s.amount.IsZero() {
			si++
		}
		if d.amount.IsZero() {
			di++
		}
	}

	cfg.NextDelegationIndex = 0
	cfg.NextUnbondingIndex = 0
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeRebalance))
	return nil
}

// ReplaceValidatorSet computes an equivalent rebalance against newSet (which
// may retain zero-weight entries to migrate residual delegations out), then
// drops entries whose weight and delegated amount are both zero, compacting
// the table (spec.md §4.1).
func (k Keeper) ReplaceValidatorSet(ctx sdk.Context, newSet []types.ValidatorWithWeight) error {
	if len(newSet) == 0 {
		return types.ErrNoValidators
	}

	old := k.Validators(ctx)
	byAddr := make(map[string]types.Validator, len(old))
	for _, v := range old {
		byAddr[v.Address] = v
	}

	cfg := k.GetConfig(ctx)
	for i, nv := range newSet {
		v, existed := byAddr[nv.Address]
		if !existed {
			v = types.Validator{Address: nv.Address, Delegated: math.ZeroInt()}
		}
		v.Weight = nv.Weight
		k.SetValidator(ctx, uint64(i), v)
	}
	cfg.NumValidators = uint64(len(newSet))
	k.SetConfig(ctx, cfg)

	if err := k.Rebalance(ctx); err != nil {
		return err
	}

	// Retain only nonzero-weight entries (residual delegations have already
	// been migrated out by Rebalance).
	kept := uint64(0)
	for i := uint64(0); i < cfg.NumValidators; i++ {
		v, ok := k.GetValidator(ctx, i)
		if !ok {
			continue
		}
		if v.Weight.Numerator.IsZero() && v.Delegated.IsZero() {
			k.DeleteValidator(ctx, i)
			continue
		}
		if i != kept {
			k.SetValidator(ctx, kept, v)
			k.DeleteValidator(ctx, i)
		}
		kept++
	}
	cfg = k.GetConfig(ctx)
	cfg.NumValidators = kept
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeValidatorSetUpdate))
	return nil
}
