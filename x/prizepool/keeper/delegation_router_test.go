package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

func TestStakeOne_RoundRobinsAcrossValidators(t *testing.T) {
	f := setupFixture(t, 3)

	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(100)))
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(100)))
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(100)))

	for i := 0; i < 3; i++ {
		v, ok := f.keeper.GetValidator(f.ctx, uint64(i))
		require.True(t, ok)
		require.Equal(t, math.NewInt(100), v.Delegated)
		require.Equal(t, math.NewInt(100), f.staking.delegated[v.Address])
	}

	cfg := f.keeper.GetConfig(f.ctx)
	require.Equal(t, uint64(0), cfg.NextDelegationIndex)
}

func TestStakeOne_AbsorbsPendingValidatorRewards(t *testing.T) {
	f := setupFixture(t, 2)
	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	f.staking.addPendingReward(v0.Address, math.NewInt(50))

	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(200)))

	ps := f.keeper.GetPoolState(f.ctx)
	require.Equal(t, math.NewInt(50), ps.RewardsReturnedToContract)
	require.True(t, f.staking.pending[v0.Address].IsZero())
}

func TestStakeOne_RejectsNonPositiveAmount(t *testing.T) {
	f := setupFixture(t, 2)
	err := f.keeper.StakeOne(f.ctx, math.ZeroInt())
	require.Error(t, err)
}

func TestUnbondUpTo_DrainsAcrossValidatorsInOrder(t *testing.T) {
	f := setupFixture(t, 2)
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(100)))
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(100)))

	touched, err := f.keeper.UnbondUpTo(f.ctx, math.NewInt(150))
	require.NoError(t, err)
	require.Equal(t, []uint64{0, 1}, touched)

	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	v1, _ := f.keeper.GetValidator(f.ctx, 1)
	require.Equal(t, math.ZeroInt(), v0.Delegated)
	require.Equal(t, math.NewInt(50), v1.Delegated)
}

func TestUnbondUpTo_StopsAfterOneFullPassWhenUnderfunded(t *testing.T) {
	f := setupFixture(t, 2)
	// Nothing delegated yet: every validator has zero balance, so a full pass
	// touches nobody and returns without error.
	touched, err := f.keeper.UnbondUpTo(f.ctx, math.NewInt(1000))
	require.NoError(t, err)
	require.Empty(t, touched)
}

func TestRebalance_MovesSurplusToDeficit(t *testing.T) {
	f := setupFixture(t, 2)
	// Concentrate everything on validator 0 by staking twice before a
	// rebalance normalizes weights back to 50/50.
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(1000)))
	v0cfg := f.keeper.GetConfig(f.ctx)
	v0cfg.NextDelegationIndex = 0
	f.keeper.SetConfig(f.ctx, v0cfg)
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(1000)))

	ps := f.keeper.GetPoolState(f.ctx)
	ps.TotalDelegated = math.NewInt(2000)
	f.keeper.SetPoolState(f.ctx, ps)

	require.NoError(t, f.keeper.Rebalance(f.ctx))

	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	v1, _ := f.keeper.GetValidator(f.ctx, 1)
	require.Equal(t, math.NewInt(1000), v0.Delegated)
	require.Equal(t, math.NewInt(1000), v1.Delegated)

	cfg := f.keeper.GetConfig(f.ctx)
	require.Equal(t, uint64(0), cfg.NextDelegationIndex)
	require.Equal(t, uint64(0), cfg.NextUnbondingIndex)
}

func TestReplaceValidatorSet_PrunesZeroWeightEntries(t *testing.T) {
	f := setupFixture(t, 2)
	require.NoError(t, f.keeper.StakeOne(f.ctx, math.NewInt(1000)))
	ps := f.keeper.GetPoolState(f.ctx)
	ps.TotalDelegated = math.NewInt(1000)
	f.keeper.SetPoolState(f.ctx, ps)

	v0, _ := f.keeper.GetValidator(f.ctx, 0)
	v1, _ := f.keeper.GetValidator(f.ctx, 1)
	newSet := []types.ValidatorWithWeight{
		{Address: v1.Address, Weight: types.NewFraction(10000)},
		{Address: v0.Address, Weight: types.NewFraction(0)},
	}

	require.NoError(t, f.keeper.ReplaceValidatorSet(f.ctx, newSet))

	cfg := f.keeper.GetConfig(f.ctx)
	require.Equal(t, uint64(1), cfg.NumValidators)

	kept, ok := f.keeper.GetValidator(f.ctx, 0)
	require.True(t, ok)
	require.Equal(t, v1.Address, kept.Address)
	require.Equal(t, math.NewInt(1000), kept.Delegated)
}
