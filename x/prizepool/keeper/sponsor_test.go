package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

func TestSponsor_DilutesPoolLiquidityWithoutDrawing(t *testing.T) {
	f := setupFixture(t, 2)
	depositor := userAddr("nancy")
	sponsor := userAddr("oscar")
	round := f.keeper.GetRound(f.ctx)

	require.NoError(t, f.keeper.RecordDeposit(f.ctx, depositor, math.NewInt(1000), 0, round))
	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(500), 0, "", ""))

	pl, ok := f.keeper.GetPoolLiquidity(f.ctx, round.CurrentRoundIdx)
	require.True(t, ok)
	require.Equal(t, math.NewInt(1500), pl.TotalTimeWeightedLiquidity)

	si := f.keeper.GetSponsorInfo(f.ctx, sponsor)
	require.Equal(t, math.NewInt(500), si.AmountSponsored)

	ps := f.keeper.GetPoolState(f.ctx)
	require.Equal(t, math.NewInt(500), ps.TotalSponsored)
	require.Equal(t, math.NewInt(1000), ps.TotalDelegated)

	v, ok := f.keeper.GetValidator(f.ctx, 0)
	require.True(t, ok)
	require.Equal(t, math.NewInt(500), v.Delegated)
}

func TestSponsor_QueuesMessageForReview(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("peggy")

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "hello", "world"))

	msg, ok := f.keeper.GetSponsorMessage(f.ctx, 0)
	require.True(t, ok)
	require.Equal(t, types.SponsorMsgPending, msg.Status)
	require.Equal(t, "hello", msg.Title)
}

func TestSponsor_RejectsNonPositiveAmount(t *testing.T) {
	f := setupFixture(t, 2)
	err := f.keeper.Sponsor(f.ctx, userAddr("quentin"), math.ZeroInt(), 0, "", "")
	require.Error(t, err)
}

func TestReviewSponsorMessage_RejectFreesSlotForReuse(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("rupert")

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "t1", "b1"))
	require.NoError(t, f.keeper.ReviewSponsorMessage(f.ctx, 0, false))

	_, ok := f.keeper.GetSponsorMessage(f.ctx, 0)
	require.False(t, ok)

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "t2", "b2"))
	msg, ok := f.keeper.GetSponsorMessage(f.ctx, 0)
	require.True(t, ok)
	require.Equal(t, "t2", msg.Title)
}

func TestReviewSponsorMessage_ApprovedKeepsEntry(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("sybil")

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "t1", "b1"))
	require.NoError(t, f.keeper.ReviewSponsorMessage(f.ctx, 0, true))

	msg, ok := f.keeper.GetSponsorMessage(f.ctx, 0)
	require.True(t, ok)
	require.Equal(t, types.SponsorMsgApproved, msg.Status)
}

func TestSponsorRequestWithdraw_RejectsOverdraw(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("trent")

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "", ""))
	err := f.keeper.SponsorRequestWithdraw(f.ctx, sponsor, math.NewInt(101), 10)
	require.Error(t, err)
}

func TestSponsorWithdrawFlow_MaturesAndPaysOut(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("ursula")

	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(500), 0, "", ""))
	require.NoError(t, f.keeper.SponsorRequestWithdraw(f.ctx, sponsor, math.NewInt(500), 10))
	require.NoError(t, f.keeper.TriggerBatch(f.ctx, 0))

	cfg := f.keeper.GetConfig(f.ctx)
	require.NoError(t, f.keeper.SponsorWithdraw(f.ctx, sponsor, math.NewInt(500), cfg.UnbondingDuration+1, testDenom))

	si := f.keeper.GetSponsorInfo(f.ctx, sponsor)
	require.True(t, si.AmountWithdrawable.IsZero())
	require.Len(t, f.bank.sentFromModule, 1)
}

func TestReservesWithdrawFlow_MaturesAndPaysOut(t *testing.T) {
	f := setupFixture(t, 2)
	ps := f.keeper.GetPoolState(f.ctx)
	ps.TotalReserves = math.NewInt(1000)
	f.keeper.SetPoolState(f.ctx, ps)

	require.NoError(t, f.keeper.RequestReservesWithdraw(f.ctx, math.NewInt(400)))
	require.NoError(t, f.keeper.TriggerBatch(f.ctx, 0))

	cfg := f.keeper.GetConfig(f.ctx)
	to := userAddr("victor")
	require.NoError(t, f.keeper.ReservesWithdraw(f.ctx, to, math.NewInt(400), cfg.UnbondingDuration+1, testDenom))

	ps = f.keeper.GetPoolState(f.ctx)
	require.True(t, ps.ReservesWithdrawable.IsZero())
	require.Equal(t, math.NewInt(600), ps.TotalReserves)
}

func TestRequestReservesWithdraw_RejectsExceedingReserves(t *testing.T) {
	f := setupFixture(t, 2)
	err := f.keeper.RequestReservesWithdraw(f.ctx, math.NewInt(1))
	require.Error(t, err)
}
