package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// RequestWithdraw implements spec.md §4.5 request_withdraw: debits the
// Liquidity Ledger, appends amount to UserUnbond(next_batch, u) and tracks
// the batch id against the user's owned-batches list if not already present.
func (k Keeper) RequestWithdraw(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, source types.UnbondingSource) error {
	round := k.GetRound(ctx)
	if err := k.RecordRequestWithdraw(ctx, actor, amount, now, round); err != nil {
		return err
	}

	cfg := k.GetConfig(ctx)
	batchIdx := cfg.NextUnbondingBatchIndex

	uu, ok := k.GetUserUnbond(ctx, batchIdx, actor)
	if !ok {
		uu = types.UserUnbond{Amount: math.ZeroInt(), Source: source}
	}
	uu.Amount = uu.Amount.Add(amount)
	k.SetUserUnbond(ctx, batchIdx, actor, uu)

	user := k.GetUserInfo(ctx, actor)
	user.AmountUnbonding = user.AmountUnbonding.Add(amount)
	if !containsBatch(user.OwnedUnbondingBatchIDs, batchIdx) {
		user.OwnedUnbondingBatchIDs = append(user.OwnedUnbondingBatchIDs, batchIdx)
	}
	k.SetUserInfo(ctx, actor, user)

	cfg.NextUnbondingBatchAmount = cfg.NextUnbondingBatchAmount.Add(amount)
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeRequestWithdraw,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		sdk.NewAttribute(types.AttributeKeyBatchIndex, roundAttr(batchIdx)),
	))
	return nil
}

// TriggerBatch implements spec.md §4.5 trigger_batch: seals the pending
// batch once its window has elapsed, draining validators for its amount via
// the Delegation Router, or fast-forwards the clock with no draw if the
// pending amount is zero.
func (k Keeper) TriggerBatch(ctx sdk.Context, now int64) error {
	cfg := k.GetConfig(ctx)
	if now < cfg.NextUnbondingBatchTime {
		return types.ErrPreconditionViolated.Wrap("unbonding batch window not yet elapsed")
	}

	if cfg.NextUnbondingBatchAmount.IsZero() {
		cfg.NextUnbondingBatchIndex++
		cfg.NextUnbondingBatchTime = now + cfg.UnbondingBatchDuration
		k.SetConfig(ctx, cfg)
		return nil
	}

	batchIdx := cfg.NextUnbondingBatchIndex
	amount := cfg.NextUnbondingBatchAmount

	if _, err := k.UnbondUpTo(ctx, amount); err != nil {
		return err
	}

	k.SetUnbondingBatch(ctx, batchIdx, types.UnbondingBatch{
		HasUnbondingTime: true,
		UnbondingTime:    now + cfg.UnbondingDuration,
		Amount:           amount,
	})

	cfg.NextUnbondingBatchAmount = math.ZeroInt()
	cfg.NextUnbondingBatchIndex++
	cfg.NextUnbondingBatchTime = now + cfg.UnbondingBatchDuration
	k.SetConfig(ctx, cfg)

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeUnbondBatch,
		sdk.NewAttribute(types.AttributeKeyBatchIndex, roundAttr(batchIdx)),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

// Withdraw implements spec.md §4.5 withdraw: rolls every one of the user's
// owned batches whose seal has matured into amount_withdrawable, then pays
// out amount from the withdrawable balance.
func (k Keeper) Withdraw(ctx sdk.Context, actor sdk.AccAddress, amount math.Int, now int64, denom string) error {
	user := k.GetUserInfo(ctx, actor)

	kept := user.OwnedUnbondingBatchIDs[:0:0]
	for _, idx := range user.OwnedUnbondingBatchIDs {
		batch, ok := k.GetUnbondingBatch(ctx, idx)
		if !ok || !batch.HasUnbondingTime || batch.UnbondingTime > now {
			kept = append(kept, idx)
			continue
		}

		uu, ok := k.GetUserUnbond(ctx, idx, actor)
		if ok {
			user.AmountWithdrawable = user.AmountWithdrawable.Add(uu.Amount)
			user.AmountUnbonding = user.AmountUnbonding.Sub(uu.Amount)
			k.DeleteUserUnbond(ctx, idx, actor)
		}
	}
	user.OwnedUnbondingBatchIDs = kept

	if amount.GT(user.AmountWithdrawable) {
		k.SetUserInfo(ctx, actor, user)
		return types.ErrInsufficientFunds.Wrap("amount exceeds amount_withdrawable")
	}
	user.AmountWithdrawable = user.AmountWithdrawable.Sub(amount)
	k.SetUserInfo(ctx, actor, user)

	if err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.ModuleName, actor, sdk.NewCoins(sdk.NewCoin(denom, amount))); err != nil {
		return types.ErrHostInterface.Wrap(err.Error())
	}

	ctx.EventManager().EmitEvent(sdk.NewEvent(types.EventTypeWithdraw,
		sdk.NewAttribute(types.AttributeKeyActor, actor.String()),
		sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
	))
	return nil
}

func containsBatch(ids []uint64, idx uint64) bool {
	for _, id := range ids {
		if id == idx {
			return true
		}
	}
	return false
}
