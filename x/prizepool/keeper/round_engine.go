package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// EndRound advances the round clock and finalizes the prize pot (spec.md
// §4.3). It is the single most load-bearing operation in the core: splits,
// the unclaimed-rewards sweep, tier-range computation, the deterministic
// draw and round advancement all happen in one commit.
func (k Keeper) EndRound(ctx sdk.Context, now int64) error {
	round := k.GetRound(ctx)
	if !round.IsReady(now) {
		return types.ErrPreconditionViolated.Wrap("round not over")
	}

	cfg := k.GetConfig(ctx)
	round.ExtendEntropy(uint64(ctx.BlockHeight()), ctx.BlockTime().Unix(), cfg.PRNGSeed)

	rewards, err := k.stakingKeeper.QueryRewards(ctx, sdk.AccAddress{})
	if err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}
	ps := k.GetPoolState(ctx)
	r := math.ZeroInt()
	for _, rw := range rewards {
		r = r.Add(rw.Amount.Amount)
	}
	ps.RewardsReturnedToContract = ps.RewardsReturnedToContract.Add(r)
	k.SetPoolState(ctx, ps)

	currentIdx := round.CurrentRoundIdx
	expiration := now + round.RewardsExpiryDuration

	if r.IsZero() {
		k.SetRewardsState(ctx, currentIdx, types.NewEmptyRewardsState(round.TicketPrice, expiration))
		k.materializeIfAbsent(ctx, currentIdx)
		k.advanceRound(ctx, &round, now)
		ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeEndRound,
			sdk.NewAttribute(types.AttributeKeyRound, roundAttr(currentIdx)),
			sdk.NewAttribute(types.AttributeKeyTotalRewards, "0"),
		))
		return nil
	}

	triggerShare := round.TriggererSharePercentage.MulInt(r)
	r1 := r.Sub(triggerShare)
	adminShare := round.AdminShare.TotalPercentageShare.MulInt(r1)
	shadeShare := round.AdminShare.ShadePercentageShare.MulInt(adminShare)
	galacticShare := adminShare.Sub(shadeShare)
	winningAmount := r1.Sub(adminShare)

	winningAmount = k.sweepUnclaimedRewards(ctx, &round, now, winningAmount)

	k.materializeIfAbsent(ctx, currentIdx)
	pl, _ := k.GetPoolLiquidity(ctx, currentIdx)

	rs := k.sealRewardsState(ctx, &round, pl, winningAmount, expiration)
	k.SetRewardsState(ctx, currentIdx, rs)

	if err := k.payout(ctx, round.AdminShare.ShadeAddress, cfg.Denom, shadeShare); err != nil {
		return err
	}
	if err := k.payout(ctx, round.AdminShare.GalacticAddress, cfg.Denom, galacticShare); err != nil {
		return err
	}
	if err := k.payout(ctx, triggererPayoutAddress(ctx, cfg), cfg.Denom, triggerShare); err != nil {
		return err
	}

	k.advanceRound(ctx, &round, now)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeEndRound,
		sdk.NewAttribute(types.AttributeKeyRound, roundAttr(currentIdx)),
		sdk.NewAttribute(types.AttributeKeyTotalRewards, winningAmount.String()),
		sdk.NewAttribute(types.AttributeKeyTriggerShare, triggerShare.String()),
		sdk.NewAttribute(types.AttributeKeyAdminShare, adminShare.String()),
	))
	return nil
}

// sweepUnclaimedRewards implements spec.md §4.3 step 6: starting at
// unclaimed_rewards_last_claimed_round+1, sweeps every expired round's
// unclaimed prize into reserves (re-delegated) and propagation (added to
// winningAmount), stopping at the first non-expired round.
func (k Keeper) sweepUnclaimedRewards(ctx sdk.Context, round *types.Round, now int64, winningAmount math.Int) math.Int {
	start := round.UnclaimedRewardsLastClaimedRound + 1
	if round.UnclaimedRewardsLastClaimedRound == 0 {
		start = 1
	}

	highest := round.UnclaimedRewardsLastClaimedRound
	for r := start; r < round.CurrentRoundIdx; r++ {
		rs, ok := k.GetRewardsState(ctx, r)
		if !ok || rs.RewardsExpirationDate > now {
			break
		}

		unclaimed := rs.TotalRewards.Sub(rs.TotalClaimed)
		if unclaimed.IsPositive() {
			reserve := round.UnclaimedDistribution.ReservePercentage.MulInt(unclaimed)
			propagate := unclaimed.Sub(reserve)

			ps := k.GetPoolState(ctx)
			ps.TotalReserves = ps.TotalReserves.Add(reserve)
			k.SetPoolState(ctx, ps)
			if reserve.IsPositive() {
				_ = k.StakeOne(ctx, reserve)
			}

			winningAmount = winningAmount.Add(propagate)
		}
		highest = r
	}
	round.UnclaimedRewardsLastClaimedRound = highest
	return winningAmount
}

// materializeIfAbsent snapshots PoolLiquidity(round) to PoolState.total_delegated
// if it has not yet been touched this round (spec.md §4.3 step 7).
func (k Keeper) materializeIfAbsent(ctx sdk.Context, round uint64) {
	if _, ok := k.GetPoolLiquidity(ctx, round); ok {
		return
	}
	ps := k.GetPoolState(ctx)
	k.SetPoolLiquidity(ctx, round, types.PoolLiquidity{
		Materialized:               true,
		TotalDelegatedAtStart:      ps.TotalDelegated,
		TotalTimeWeightedLiquidity: ps.TotalDelegated,
	})
}

// sealRewardsState computes per-tier ranges, draws winning numbers, computes
// per-tier pools and returns the sealed RewardsState (spec.md §4.3 steps
// 8-11).
func (k Keeper) sealRewardsState(ctx sdk.Context, round *types.Round, pl types.PoolLiquidity, winningAmount math.Int, expiration int64) types.RewardsState {
	rs := types.RewardsState{
		TicketPrice:           round.TicketPrice,
		RewardsExpirationDate: expiration,
		TotalRewards:          winningAmount,
		TotalClaimed:          math.ZeroInt(),
		SealedSeed:            append([]byte{}, round.Seed...),
		SealedEntropy:         append([]byte{}, round.Entropy...),
	}

	dist := round.RewardsDistribution

	totalTickets := math.ZeroInt()
	if round.TicketPrice.IsPositive() {
		totalTickets = pl.TotalTimeWeightedLiquidity.Quo(round.TicketPrice)
	}

	ranges := computeTierRanges(totalTickets, dist.NumOfRewards)

	for tier := 0; tier < types.NumTiers; tier++ {
		s := DeriveSeed(round.Seed, round.Entropy, tierDiscriminator(tier))
		rng := newDrawRNG(s)
		winningNumber := rng.uniform(ranges[tier])
		rs.WinningSequence[tier] = types.TierWinningInfo{Range: ranges[tier], WinningNumber: winningNumber}
	}

	tierPools := computeTierPools(winningAmount, dist)
	for tier := 0; tier < types.NumTiers; tier++ {
		rs.TierPools[tier] = types.TierPoolInfo{
			NumOfRewards:   dist.NumOfRewards[tier],
			RewardPerMatch: tierPools[tier],
			NumClaimed:     0,
		}
	}

	return rs
}

// computeTierRanges implements spec.md §4.3 step 8: range[5] = T / sum(N_k);
// range[k] = N_{k+1} / N_k for k in 0..4.
func computeTierRanges(totalTickets math.Int, numOfRewards [types.NumTiers]uint64) [types.NumTiers]math.Int {
	var ranges [types.NumTiers]math.Int
	sum := uint64(0)
	for _, n := range numOfRewards {
		sum += n
	}
	if sum == 0 {
		for i := range ranges {
			ranges[i] = math.ZeroInt()
		}
		return ranges
	}
	ranges[5] = totalTickets.Quo(math.NewIntFromUint64(sum))
	for k := 0; k < 5; k++ {
		if numOfRewards[k] == 0 {
			ranges[k] = math.ZeroInt()
			continue
		}
		ranges[k] = math.NewIntFromUint64(numOfRewards[k+1]).Quo(math.NewIntFromUint64(numOfRewards[k]))
	}
	return ranges
}

// computeTierPools implements spec.md §4.3 step 10: tier k's pool is
// winningAmount*percentage_k/divisor for k>=1, and tier 0's pool is the
// remainder to avoid rounding drift. Per-match reward is pool_k/N_k.
func computeTierPools(winningAmount math.Int, dist types.RewardsDistInfo) [types.NumTiers]math.Int {
	var pools [types.NumTiers]math.Int
	sumRest := math.ZeroInt()
	for tier := 1; tier < types.NumTiers; tier++ {
		pools[tier] = dist.PercentageOfRewards[tier].MulInt(winningAmount)
		sumRest = sumRest.Add(pools[tier])
	}
	pools[0] = winningAmount.Sub(sumRest)

	var perMatch [types.NumTiers]math.Int
	for tier := 0; tier < types.NumTiers; tier++ {
		if dist.NumOfRewards[tier] == 0 {
			perMatch[tier] = math.ZeroInt()
			continue
		}
		perMatch[tier] = pools[tier].Quo(math.NewIntFromUint64(dist.NumOfRewards[tier]))
	}
	return perMatch
}

// advanceRound mutates round in place to start/end=now/now+duration and
// increments current_round_index, then persists it (spec.md §4.3 step 13).
func (k Keeper) advanceRound(ctx sdk.Context, round *types.Round, now int64) {
	round.StartTime = now
	round.EndTime = now + round.Duration
	round.CurrentRoundIdx++
	k.SetRound(ctx, *round)
}

func (k Keeper) payout(ctx sdk.Context, to string, denom string, amount math.Int) error {
	if !amount.IsPositive() || to == "" {
		return nil
	}
	addr, err := sdk.AccAddressFromBech32(to)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("invalid payout address %s", to)
	}
	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, addr, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}
	return nil
}

// triggererPayoutAddress resolves the caller-facing triggerer payout target;
// by convention the first registered triggerer receives the trigger share
// when EndRound is invoked, since any triggerer may call EndRound.
func triggererPayoutAddress(ctx sdk.Context, cfg types.Config) string {
	if len(cfg.Triggerers) == 0 {
		return ""
	}
	return cfg.Triggerers[0]
}

func roundAttr(idx uint64) string {
	return math.NewIntFromUint64(idx).String()
}
