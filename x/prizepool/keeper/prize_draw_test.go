package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestClaimForRound_NoSealedState_Errors(t *testing.T) {
	f := setupFixture(t, 2)
	_, err := f.keeper.ClaimForRound(f.ctx, userAddr("erin"), 1, 0, nil)
	require.Error(t, err)
}

func TestClaimRewards_NoOpWhenNothingToClaim(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("frank")
	require.NoError(t, f.keeper.ClaimRewards(f.ctx, actor, 0, testDenom))
	require.Empty(t, f.bank.sentFromModule)
}

func TestClaimRewards_PaysOutAndAdvancesLastClaimRound(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("grace")
	round := f.keeper.GetRound(f.ctx)

	require.NoError(t, f.keeper.RecordDeposit(f.ctx, actor, math.NewInt(1_000_000), 0, round))

	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	f.staking.addPendingReward(v0.Address, math.NewInt(100_000))

	ctx := f.ctx.WithBlockHeight(2)
	require.NoError(t, f.keeper.EndRound(ctx, round.EndTime))

	require.NoError(t, f.keeper.ClaimRewards(ctx, actor, round.EndTime+1, testDenom))

	user := f.keeper.GetUserInfo(ctx, actor)
	require.True(t, user.HasLastClaimRound)
	require.Equal(t, uint64(1), user.LastClaimRewardsRound)

	// A second claim before any further round ends has nothing new to
	// process and is a silent no-op.
	sentBefore := len(f.bank.sentFromModule)
	require.NoError(t, f.keeper.ClaimRewards(ctx, actor, round.EndTime+1, testDenom))
	require.Equal(t, sentBefore, len(f.bank.sentFromModule))
}

func TestClaimForRound_ExpiredRound_FullyProcessedWithoutPayout(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("heidi")
	round := f.keeper.GetRound(f.ctx)

	require.NoError(t, f.keeper.RecordDeposit(f.ctx, actor, math.NewInt(1_000_000), 0, round))
	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	f.staking.addPendingReward(v0.Address, math.NewInt(100_000))

	ctx := f.ctx.WithBlockHeight(2)
	require.NoError(t, f.keeper.EndRound(ctx, round.EndTime))

	rs, ok := f.keeper.GetRewardsState(ctx, 1)
	require.True(t, ok)

	res, err := f.keeper.ClaimForRound(ctx, actor, 1, rs.RewardsExpirationDate+1, nil)
	require.NoError(t, err)
	require.True(t, res.FullyProcessed)
	require.True(t, res.AmountWon.IsZero())
}

func TestClaimForRound_TicketCapSplitsAcrossCalls(t *testing.T) {
	f := setupFixture(t, 2)
	actor := userAddr("ivan")
	round := f.keeper.GetRound(f.ctx)

	// 1,000,000 stake at a ticket price of 100 yields 10,000 tickets.
	require.NoError(t, f.keeper.RecordDeposit(f.ctx, actor, math.NewInt(1_000_000), 0, round))
	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	f.staking.addPendingReward(v0.Address, math.NewInt(50_000))

	ctx := f.ctx.WithBlockHeight(2)
	require.NoError(t, f.keeper.EndRound(ctx, round.EndTime))

	cap1 := math.NewInt(4000)
	res1, err := f.keeper.ClaimForRound(ctx, actor, 1, round.EndTime+1, &cap1)
	require.NoError(t, err)
	require.False(t, res1.FullyProcessed)
	require.True(t, cap1.IsZero())

	cap2 := math.NewInt(100_000)
	res2, err := f.keeper.ClaimForRound(ctx, actor, 1, round.EndTime+1, &cap2)
	require.NoError(t, err)
	require.True(t, res2.FullyProcessed)
}
