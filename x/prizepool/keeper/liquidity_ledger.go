package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// timeWeightedContribution computes Δ·(end-t)/duration for an event at time
// t within [start, end), or 0 if t>=end (spec.md §4.2 "Time-weighting rule").
// Multiply-before-divide, per spec.md §9.
func timeWeightedContribution(delta math.Int, t, end, duration int64) math.Int {
	if t >= end {
		return math.ZeroInt()
	}
	remaining := math.NewInt(end - t)
	return delta.Mul(remaining).Quo(math.NewInt(duration))
}

// touchUserLiquidity lazily materializes UserLiquidity(addr, round), seeding
// its baseline from max(prior snapshot, currentDelegated) on first touch
// (spec.md §4.2 "Lazy materialization").
func (k Keeper) touchUserLiquidity(ctx sdk.Context, addr sdk.AccAddress, round uint64, currentDelegated math.Int) types.UserLiquidity {
	ul, ok := k.GetUserLiquidity(ctx, addr, round)
	if ok && ul.HasAmountDelegated {
		return ul
	}

	baseline := currentDelegated
	if prior, ok := k.priorMaterializedAmountDelegated(ctx, addr, round); ok && prior.GT(baseline) {
		baseline = prior
	}

	ul = types.NewUserLiquidity()
	ul.HasAmountDelegated = true
	ul.AmountDelegated = baseline
	ul.HasTimeWeighted = true
	ul.TimeWeighted = math.ZeroInt()
	ul.HasTicketsUsed = true
	ul.TicketsUsed = math.ZeroInt()
	return ul
}

// priorMaterializedAmountDelegated walks backward from round-1, bounded by
// lowerBound, to find the most recent materialized snapshot (spec.md §4.2
// "Carry-forward for claims").
func (k Keeper) priorMaterializedAmountDelegated(ctx sdk.Context, addr sdk.AccAddress, round uint64) (math.Int, bool) {
	user := k.GetUserInfo(ctx, addr)
	lowerBound := uint64(0)
	if user.HasStartingRound {
		lowerBound = user.StartingRound
	}

	if round == 0 {
		return math.ZeroInt(), false
	}
	for r := round - 1; r >= lowerBound; r-- {
		if ul, ok := k.GetUserLiquidity(ctx, addr, r); ok && ul.HasAmountDelegated {
			return ul.AmountDelegated, true
		}
		if r == 0 {
			break
		}
	}
	return math.ZeroInt(), false
}

// touchPoolLiquidity mirrors touchUserLiquidity at aggregate granularity
// (spec.md §4.2).
func (k Keeper) touchPoolLiquidity(ctx sdk.Context, round uint64, currentTotalDelegated math.Int) types.PoolLiquidity {
	pl, ok := k.GetPoolLiquidity(ctx, round)
	if ok {
		return pl
	}
	return types.PoolLiquidity{
		Materialized:               true,
		TotalDelegatedAtStart:      currentTotalDelegated,
		TotalTimeWeightedLiquidity: math.ZeroInt(),
	}
}

// RecordDeposit applies a deposit of amount by actor at time now against the
// given round, updating the per-user and pool time-weighted liquidity
// (spec.md §4.2).
func (k Keeper) RecordDeposit(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, round types.Round) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("deposit amount must be > 0")
	}

	user := k.GetUserInfo(ctx, actor)
	ul := k.touchUserLiquidity(ctx, actor, round.CurrentRoundIdx, user.AmountDelegated)
	pl := k.touchPoolLiquidity(ctx, round.CurrentRoundIdx, k.GetPoolState(ctx).TotalDelegated)

	contribution := timeWeightedContribution(amount, now, round.EndTime, round.Duration)
	ul.TimeWeighted = ul.TimeWeighted.Add(contribution)
	ul.AmountDelegated = ul.AmountDelegated.Add(amount)
	pl.TotalTimeWeightedLiquidity = pl.TotalTimeWeightedLiquidity.Add(contribution)

	user.AmountDelegated = user.AmountDelegated.Add(amount)
	if !user.HasStartingRound {
		user.HasStartingRound = true
		user.StartingRound = round.CurrentRoundIdx
	}

	k.SetUserLiquidity(ctx, actor, round.CurrentRoundIdx, ul)
	k.SetPoolLiquidity(ctx, round.CurrentRoundIdx, pl)
	k.SetUserInfo(ctx, actor, user)

	ps := k.GetPoolState(ctx)
	ps.TotalDelegated = ps.TotalDelegated.Add(amount)
	k.SetPoolState(ctx, ps)

	return nil
}

// RecordRequestWithdraw subtracts a request-withdraw's time-weighted
// contribution the same way RecordDeposit adds one (spec.md §4.2).
func (k Keeper) RecordRequestWithdraw(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, round types.Round) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("withdraw amount must be > 0")
	}

	user := k.GetUserInfo(ctx, actor)
	if amount.GT(user.AmountDelegated) {
		return types.ErrUnderflow.Wrap("request-withdraw exceeds amount_delegated")
	}

	ul := k.touchUserLiquidity(ctx, actor, round.CurrentRoundIdx, user.AmountDelegated)
	pl := k.touchPoolLiquidity(ctx, round.CurrentRoundIdx, k.GetPoolState(ctx).TotalDelegated)

	contribution := timeWeightedContribution(amount, now, round.EndTime, round.Duration)
	ul.TimeWeighted = ul.TimeWeighted.Sub(contribution)
	ul.AmountDelegated = ul.AmountDelegated.Sub(amount)
	pl.TotalTimeWeightedLiquidity = pl.TotalTimeWeightedLiquidity.Sub(contribution)

	user.AmountDelegated = user.AmountDelegated.Sub(amount)

	k.SetUserLiquidity(ctx, actor, round.CurrentRoundIdx, ul)
	k.SetPoolLiquidity(ctx, round.CurrentRoundIdx, pl)
	k.SetUserInfo(ctx, actor, user)

	ps := k.GetPoolState(ctx)
	if amount.GT(ps.TotalDelegated) {
		return types.ErrUnderflow.Wrap("request-withdraw exceeds total_delegated")
	}
	ps.TotalDelegated = ps.TotalDelegated.Sub(amount)
	k.SetPoolState(ctx, ps)

	return nil
}

// RecordTransfer moves amount of delegated liquidity from one user to
// another at time now, honoring the optional distributor allowlist
// restriction (spec.md §4.2, §9 "Transfer restrictions on the wrapper
// token"). allowed is nil when no restriction is configured.
func (k Keeper) RecordTransfer(ctx sdk.Context, from, to sdk.AccAddress, amount math.Int, now int64, round types.Round, allowed func(addr sdk.AccAddress) bool) error {
	if allowed != nil && !allowed(from) && !allowed(to) {
		return types.ErrUnauthorized.Wrap("neither party is on the distributor allowlist")
	}
	if err := k.RecordRequestWithdraw(ctx, from, amount, now, round); err != nil {
		return err
	}
	return k.RecordDeposit(ctx, to, amount, now, round)
}

// LiquidityOf returns the read-only UserLiquidity(addr, round) snapshot
// (materialized or not).
func (k Keeper) LiquidityOf(ctx sdk.Context, addr sdk.AccAddress, round uint64) types.UserLiquidity {
	ul, ok := k.GetUserLiquidity(ctx, addr, round)
	if ok {
		return ul
	}
	return types.NewUserLiquidity()
}
