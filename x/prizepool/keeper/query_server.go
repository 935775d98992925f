package keeper

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// QueryServer is the read-only surface named in SPEC_FULL.md §3 "Query
// surface". It never mutates state and never gates on Config.status.
type QueryServer struct {
	Keeper
}

// NewQueryServer returns the module's query-handling surface.
func NewQueryServer(k Keeper) QueryServer {
	return QueryServer{Keeper: k}
}

func (q QueryServer) ContractConfig(ctx sdk.Context) types.ContractConfigResponse {
	return types.ContractConfigResponse{Config: q.GetConfig(ctx)}
}

func (q QueryServer) PoolStateInfo(ctx sdk.Context) types.PoolStateInfoResponse {
	return types.PoolStateInfoResponse{
		PoolState:  q.GetPoolState(ctx),
		Validators: q.Validators(ctx),
	}
}

func (q QueryServer) UserInfo(ctx sdk.Context, addr sdk.AccAddress) types.UserInfoResponse {
	return types.UserInfoResponse{UserInfo: q.GetUserInfo(ctx, addr)}
}

func (q QueryServer) CurrentRound(ctx sdk.Context) types.RoundResponse {
	return types.RoundResponse{Round: q.GetRound(ctx)}
}

func (q QueryServer) RewardStats(ctx sdk.Context, round uint64) (types.RewardStatsResponse, error) {
	rs, ok := q.GetRewardsState(ctx, round)
	if !ok {
		return types.RewardStatsResponse{}, types.ErrNotFound.Wrapf("rewards state for round %d", round)
	}
	return types.RewardStatsResponse{RewardsState: rs}, nil
}

func (q QueryServer) Liquidity(ctx sdk.Context, addr sdk.AccAddress, round uint64) types.LiquidityResponse {
	pl, ok := q.GetPoolLiquidity(ctx, round)
	if !ok {
		pl = types.NewPoolLiquidity()
	}
	return types.LiquidityResponse{
		UserLiquidity: q.LiquidityOf(ctx, addr, round),
		PoolLiquidity: pl,
	}
}

func (q QueryServer) Withdrawable(ctx sdk.Context, addr sdk.AccAddress) types.WithdrawableResponse {
	user := q.GetUserInfo(ctx, addr)
	return types.WithdrawableResponse{AmountWithdrawable: user.AmountWithdrawable}
}

// Unbondings reports every batch addr still has an outstanding claim
// against, whether sealed or still pending.
func (q QueryServer) Unbondings(ctx sdk.Context, addr sdk.AccAddress) types.UnbondingsResponse {
	user := q.GetUserInfo(ctx, addr)
	entries := make([]types.UnbondingBatchEntry, 0, len(user.OwnedUnbondingBatchIDs))
	for _, idx := range user.OwnedUnbondingBatchIDs {
		batch, ok := q.GetUnbondingBatch(ctx, idx)
		if !ok {
			batch = types.UnbondingBatch{Amount: math.ZeroInt()}
		}
		amount := math.ZeroInt()
		if uu, ok := q.GetUserUnbond(ctx, idx, addr); ok {
			amount = uu.Amount
		}
		entries = append(entries, types.UnbondingBatchEntry{
			BatchIndex: idx,
			Batch:      batch,
			UserAmount: amount,
		})
	}
	return types.UnbondingsResponse{Batches: entries}
}

// UserRewardsLog returns the bounded recent-claims ring for addr
// (SPEC_FULL.md §3).
func (q QueryServer) UserRewardsLog(ctx sdk.Context, addr sdk.AccAddress) []types.UserRewardsLogEntry {
	return q.GetUserRewardsLog(ctx, addr)
}
