package keeper_test

import (
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/shade-protocol/galacticpools/x/prizepool/keeper"
	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

func TestMsgServer_Deposit_RejectsBelowMinimum(t *testing.T) {
	f := setupFixture(t, 2)
	cfg := f.keeper.GetConfig(f.ctx)
	cfg.MinimumDeposit = math.NewInt(1000)
	f.keeper.SetConfig(f.ctx, cfg)

	srv := keeper.NewMsgServer(f.keeper)
	err := srv.Deposit(f.ctx, types.MsgDeposit{Sender: userAddr("wendy").String(), Amount: math.NewInt(500)})
	require.Error(t, err)
}

func TestMsgServer_Deposit_RejectsWhenStopped(t *testing.T) {
	f := setupFixture(t, 2)
	cfg := f.keeper.GetConfig(f.ctx)
	cfg.Status = types.StatusStopAll
	f.keeper.SetConfig(f.ctx, cfg)

	srv := keeper.NewMsgServer(f.keeper)
	err := srv.Deposit(f.ctx, types.MsgDeposit{Sender: userAddr("wendy").String(), Amount: math.NewInt(500)})
	require.Error(t, err)
}

func TestMsgServer_Deposit_SucceedsAndStakes(t *testing.T) {
	f := setupFixture(t, 2)
	srv := keeper.NewMsgServer(f.keeper)
	actor := userAddr("xavier")

	err := srv.Deposit(f.ctx, types.MsgDeposit{Sender: actor.String(), Amount: math.NewInt(500)})
	require.NoError(t, err)

	user := f.keeper.GetUserInfo(f.ctx, actor)
	require.Equal(t, math.NewInt(500), user.AmountDelegated)

	v, _ := f.keeper.GetValidator(f.ctx, 0)
	require.Equal(t, math.NewInt(500), v.Delegated)
}

func TestMsgServer_EndRound_RequiresTriggerer(t *testing.T) {
	f := setupFixture(t, 2)
	round := f.keeper.GetRound(f.ctx)
	ctx := f.ctx.WithBlockTime(time.Unix(round.EndTime, 0))

	srv := keeper.NewMsgServer(f.keeper)
	err := srv.EndRound(ctx, types.MsgEndRound{Sender: userAddr("yusuf").String()})
	require.Error(t, err)

	err = srv.EndRound(ctx, types.MsgEndRound{Sender: triggererAddr().String()})
	require.NoError(t, err)
}

func TestMsgServer_UpdateValidatorSet_RequiresAdmin(t *testing.T) {
	f := setupFixture(t, 2)
	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	newSet := []types.ValidatorWithWeight{{Address: v0.Address, Weight: types.NewFraction(10000)}}

	srv := keeper.NewMsgServer(f.keeper)
	err := srv.UpdateValidatorSet(f.ctx, types.MsgUpdateValidatorSet{Sender: userAddr("zara").String(), Validators: newSet})
	require.Error(t, err)

	err = srv.UpdateValidatorSet(f.ctx, types.MsgUpdateValidatorSet{Sender: adminAddr().String(), Validators: newSet})
	require.NoError(t, err)

	cfg := f.keeper.GetConfig(f.ctx)
	require.Equal(t, uint64(1), cfg.NumValidators)
}

func TestMsgServer_ReviewSponsorMessage_RequiresReviewer(t *testing.T) {
	f := setupFixture(t, 2)
	sponsor := userAddr("amber")
	require.NoError(t, f.keeper.Sponsor(f.ctx, sponsor, math.NewInt(100), 0, "t", "b"))

	srv := keeper.NewMsgServer(f.keeper)
	err := srv.ReviewSponsorMessage(f.ctx, types.MsgReviewSponsorMessage{Sender: userAddr("bilbo").String(), Index: 0, Approve: true})
	require.Error(t, err)

	err = srv.ReviewSponsorMessage(f.ctx, types.MsgReviewSponsorMessage{Sender: reviewerAddr().String(), Index: 0, Approve: true})
	require.NoError(t, err)
}

func TestMsgServer_AddRoleThenRemoveRole(t *testing.T) {
	f := setupFixture(t, 2)
	srv := keeper.NewMsgServer(f.keeper)
	newAdmin := userAddr("carlos").String()

	require.NoError(t, srv.AddRole(f.ctx, types.MsgAddRole{Sender: adminAddr().String(), Role: "admin", Addr: newAdmin}))
	cfg := f.keeper.GetConfig(f.ctx)
	require.Contains(t, cfg.Admins, newAdmin)

	require.NoError(t, srv.RemoveRole(f.ctx, types.MsgRemoveRole{Sender: adminAddr().String(), Role: "admin", Addr: newAdmin}))
	cfg = f.keeper.GetConfig(f.ctx)
	require.NotContains(t, cfg.Admins, newAdmin)
}

func TestMsgServer_UpdateConfig_OnlyTouchesSetFields(t *testing.T) {
	f := setupFixture(t, 2)
	srv := keeper.NewMsgServer(f.keeper)
	before := f.keeper.GetConfig(f.ctx)

	newMin := math.NewInt(42)
	require.NoError(t, srv.UpdateConfig(f.ctx, types.MsgUpdateConfig{
		Sender:         adminAddr().String(),
		MinimumDeposit: newMin,
	}))

	after := f.keeper.GetConfig(f.ctx)
	require.Equal(t, newMin, after.MinimumDeposit)
	require.Equal(t, before.UnbondingDuration, after.UnbondingDuration)
}
