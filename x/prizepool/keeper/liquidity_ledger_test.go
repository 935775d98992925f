package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestRecordDeposit_TimeWeighting(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("alice")

	round := f.keeper.GetRound(f.ctx)
	// Deposit exactly halfway through the round: contribution should be
	// amount * (remaining half) / duration.
	half := round.Duration / 2
	ctx := f.ctx.WithBlockTime(f.ctx.BlockTime())
	require.NoError(t, f.keeper.RecordDeposit(ctx, actor, math.NewInt(1000), half, round))

	ul, ok := f.keeper.GetUserLiquidity(ctx, actor, round.CurrentRoundIdx)
	require.True(t, ok)
	require.True(t, ul.HasTimeWeighted)
	require.Equal(t, math.NewInt(500), ul.TimeWeighted)
	require.Equal(t, math.NewInt(1000), ul.AmountDelegated)

	user := f.keeper.GetUserInfo(ctx, actor)
	require.Equal(t, math.NewInt(1000), user.AmountDelegated)
	require.True(t, user.HasStartingRound)
	require.Equal(t, round.CurrentRoundIdx, user.StartingRound)

	ps := f.keeper.GetPoolState(ctx)
	require.Equal(t, math.NewInt(1000), ps.TotalDelegated)
}

func TestRecordRequestWithdraw_RejectsOverdraw(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("bob")
	round := f.keeper.GetRound(f.ctx)

	require.NoError(t, f.keeper.RecordDeposit(f.ctx, actor, math.NewInt(500), 0, round))
	err := f.keeper.RecordRequestWithdraw(f.ctx, actor, math.NewInt(501), 100, round)
	require.Error(t, err)
}

func TestLiquidityOf_CarriesForwardZeroWhenUntouched(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("carol")
	round := f.keeper.GetRound(f.ctx)

	ul := f.keeper.LiquidityOf(f.ctx, actor, round.CurrentRoundIdx+5)
	require.False(t, ul.HasTimeWeighted)
	require.True(t, ul.TimeWeighted.IsZero())
}
