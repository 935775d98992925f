package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// Sponsor implements the supplemented sponsor flow (SPEC_FULL.md §3): stake
// is issued exactly like a Deposit and the contribution dilutes the pool's
// time-weighted liquidity (so it lowers depositors' win odds without ever
// drawing itself), but it posts against SponsorInfo/PoolState.total_sponsored
// rather than UserInfo/PoolState.total_delegated. An optional title/body
// pair is queued for reviewer moderation.
func (k Keeper) Sponsor(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, title, body string) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("sponsor amount must be > 0")
	}

	round := k.GetRound(ctx)

	sponsor := k.GetSponsorInfo(ctx, actor)
	pl := k.touchPoolLiquidity(ctx, round.CurrentRoundIdx, k.GetPoolState(ctx).TotalDelegated)

	contribution := timeWeightedContribution(amount, now, round.EndTime, round.Duration)
	pl.TotalTimeWeightedLiquidity = pl.TotalTimeWeightedLiquidity.Add(contribution)
	k.SetPoolLiquidity(ctx, round.CurrentRoundIdx, pl)

	// The sponsor's own liquidity is tracked at the same UserLiquidity
	// bucket for observability, but it is never consulted by ClaimForRound
	// because sponsors never call ClaimRewards.
	sul := k.touchUserLiquidity(ctx, actor, round.CurrentRoundIdx, sponsor.AmountSponsored)
	sul.TimeWeighted = sul.TimeWeighted.Add(contribution)
	sul.AmountDelegated = sul.AmountDelegated.Add(amount)
	k.SetUserLiquidity(ctx, actor, round.CurrentRoundIdx, sul)

	sponsor.AmountSponsored = sponsor.AmountSponsored.Add(amount)
	k.SetSponsorInfo(ctx, actor, sponsor)

	ps := k.GetPoolState(ctx)
	ps.TotalSponsored = ps.TotalSponsored.Add(amount)
	k.SetPoolState(ctx, ps)

	if err := k.StakeOne(ctx, amount); err != nil {
		return err
	}

	if title != "" || body != "" {
		idx := k.nextSponsorMessageSlot(ctx)
		k.SetSponsorMessage(ctx, idx, types.SponsorMessage{
			Sponsor: actor.String(),
			Title:   title,
			Body:    body,
			Status:  types.SponsorMsgPending,
		})
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeSponsor,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// SponsorRequestWithdraw debits SponsorInfo/PoolState.total_sponsored the
// way RecordRequestWithdraw debits a depositor, then enqueues the amount
// into the shared Unbonding Scheduler batch with SourceSponsor.
func (k Keeper) SponsorRequestWithdraw(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("sponsor withdraw amount must be > 0")
	}

	sponsor := k.GetSponsorInfo(ctx, actor)
	if amount.GT(sponsor.AmountSponsored) {
		return types.ErrUnderflow.Wrap("request-withdraw exceeds amount_sponsored")
	}

	round := k.GetRound(ctx)
	pl := k.touchPoolLiquidity(ctx, round.CurrentRoundIdx, k.GetPoolState(ctx).TotalDelegated)
	contribution := timeWeightedContribution(amount, now, round.EndTime, round.Duration)
	pl.TotalTimeWeightedLiquidity = pl.TotalTimeWeightedLiquidity.Sub(contribution)
	k.SetPoolLiquidity(ctx, round.CurrentRoundIdx, pl)

	sul := k.touchUserLiquidity(ctx, actor, round.CurrentRoundIdx, sponsor.AmountSponsored)
	sul.TimeWeighted = sul.TimeWeighted.Sub(contribution)
	sul.AmountDelegated = sul.AmountDelegated.Sub(amount)
	k.SetUserLiquidity(ctx, actor, round.CurrentRoundIdx, sul)

	sponsor.AmountSponsored = sponsor.AmountSponsored.Sub(amount)
	k.SetSponsorInfo(ctx, actor, sponsor)

	ps := k.GetPoolState(ctx)
	if amount.GT(ps.TotalSponsored) {
		return types.ErrUnderflow.Wrap("request-withdraw exceeds total_sponsored")
	}
	ps.TotalSponsored = ps.TotalSponsored.Sub(amount)
	k.SetPoolState(ctx, ps)

	cfg := k.GetConfig(ctx)
	batchIdx := cfg.NextUnbondingBatchIndex

	uu, ok := k.GetUserUnbond(ctx, batchIdx, actor)
	if !ok {
		uu = types.UserUnbond{Amount: math.ZeroInt(), Source: types.SourceSponsor}
	}
	uu.Amount = uu.Amount.Add(amount)
	k.SetUserUnbond(ctx, batchIdx, actor, uu)

	sponsor.AmountUnbonding = sponsor.AmountUnbonding.Add(amount)
	if !containsBatch(sponsor.OwnedUnbondingBatchIDs, batchIdx) {
		sponsor.OwnedUnbondingBatchIDs = append(sponsor.OwnedUnbondingBatchIDs, batchIdx)
	}
	k.SetSponsorInfo(ctx, actor, sponsor)

	cfg.NextUnbondingBatchAmount = cfg.NextUnbondingBatchAmount.Add(amount)
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeRequestWithdraw,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyBatchIndex, roundAttr(batchIdx)),
	))
	return nil
}

// SponsorWithdraw mirrors Withdraw against SponsorInfo's own
// unbonding/withdrawable ledger.
func (k Keeper) SponsorWithdraw(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, denom string) error {
	sponsor := k.GetSponsorInfo(ctx, actor)

	kept := sponsor.OwnedUnbondingBatchIDs[:0:0]
	for _, idx := range sponsor.OwnedUnbondingBatchIDs {
		batch, ok := k.GetUnbondingBatch(ctx, idx)
		if !ok || !batch.HasUnbondingTime || batch.UnbondingTime > now {
			kept = append(kept, idx)
			continue
		}

		uu, ok := k.GetUserUnbond(ctx, idx, actor)
		if ok {
			sponsor.AmountWithdrawable = sponsor.AmountWithdrawable.Add(uu.Amount)
			sponsor.AmountUnbonding = sponsor.AmountUnbonding.Sub(uu.Amount)
			k.DeleteUserUnbond(ctx, idx, actor)
		}
	}
	sponsor.OwnedUnbondingBatchIDs = kept

	if amount.GT(sponsor.AmountWithdrawable) {
		k.SetSponsorInfo(ctx, actor, sponsor)
		return types.ErrInsufficientFunds.Wrap("amount exceeds amount_withdrawable")
	}
	sponsor.AmountWithdrawable = sponsor.AmountWithdrawable.Sub(amount)
	k.SetSponsorInfo(ctx, actor, sponsor)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, actor, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// ReviewSponsorMessage is the narrow reviewer-gated moderation operation
// (SPEC_FULL.md §3); it only flips Status and frees the slot on rejection.
func (k Keeper) ReviewSponsorMessage(ctx sdk.Context, idx uint64, approve bool) error {
	msg, ok := k.GetSponsorMessage(ctx, idx)
	if !ok {
		return types.ErrNotFound.Wrapf("sponsor message %d", idx)
	}
	if approve {
		msg.Status = types.SponsorMsgApproved
		k.SetSponsorMessage(ctx, idx, msg)
		return nil
	}
	msg.Status = types.SponsorMsgRejected
	k.SetSponsorMessage(ctx, idx, msg)
	k.DeleteSponsorMessage(ctx, idx)
	k.releaseSponsorMessageSlot(ctx, idx)
	return nil
}

// RequestReservesWithdraw enqueues an admin-driven withdrawal against
// PoolState.total_reserves through the same batch machinery as user and
// sponsor withdrawals (SPEC_FULL.md §3 "Reserves withdraw flow").
func (k Keeper) RequestReservesWithdraw(ctx sdk.Context, amount math.Int) error {
	if !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrap("reserves withdraw amount must be > 0")
	}

	ps := k.GetPoolState(ctx)
	if amount.GT(ps.TotalReserves) {
		return types.ErrUnderflow.Wrap("request-withdraw exceeds total_reserves")
	}
	ps.TotalReserves = ps.TotalReserves.Sub(amount)

	cfg := k.GetConfig(ctx)
	batchIdx := cfg.NextUnbondingBatchIndex

	k.SetReservesUnbond(ctx, batchIdx, k.GetReservesUnbond(ctx, batchIdx).Add(amount))
	ps.ReservesUnbonding = ps.ReservesUnbonding.Add(amount)
	if !containsBatch(ps.PendingUnbondingBatchIDs, batchIdx) {
		ps.PendingUnbondingBatchIDs = append(ps.PendingUnbondingBatchIDs, batchIdx)
	}
	k.SetPoolState(ctx, ps)

	cfg.NextUnbondingBatchAmount = cfg.NextUnbondingBatchAmount.Add(amount)
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeRequestWithdraw,
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyBatchIndex, roundAttr(batchIdx)),
	))
	return nil
}

// ReservesWithdraw mirrors Withdraw against PoolState's own
// unbonding/withdrawable ledger, paying out to an admin-supplied recipient.
func (k Keeper) ReservesWithdraw(ctx sdk.Context, to sdk.AccAddress, amount math.Int, now int64, denom string) error {
	ps := k.GetPoolState(ctx)

	kept := ps.PendingUnbondingBatchIDs[:0:0]
	for _, idx := range ps.PendingUnbondingBatchIDs {
		batch, ok := k.GetUnbondingBatch(ctx, idx)
		if !ok || !batch.HasUnbondingTime || batch.UnbondingTime > now {
			kept = append(kept, idx)
			continue
		}

		share := k.GetReservesUnbond(ctx, idx)
		if share.IsPositive() {
			ps.ReservesWithdrawable = ps.ReservesWithdrawable.Add(share)
			ps.ReservesUnbonding = ps.ReservesUnbonding.Sub(share)
			k.DeleteReservesUnbond(ctx, idx)
		}
	}
	ps.PendingUnbondingBatchIDs = kept

	if amount.GT(ps.ReservesWithdrawable) {
		k.SetPoolState(ctx, ps)
		return types.ErrInsufficientFunds.Wrap("amount exceeds reserves_withdrawable")
	}
	ps.ReservesWithdrawable = ps.ReservesWithdrawable.Sub(amount)
	k.SetPoolState(ctx, ps)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, to, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyActor, to.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}
