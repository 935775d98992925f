package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/shade-protocol/galacticpools/testutil/memstore"
	"github.com/shade-protocol/galacticpools/x/prizepool/keeper"
	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// fakeStakingKeeper is an in-memory double for types.StakingKeeper: it keeps
// per-validator delegated totals and a pending-rewards table that tests seed
// directly, mirroring the narrow host interface spec.md §6 declares.
type fakeStakingKeeper struct {
	delegated map[string]math.Int
	pending   map[string]math.Int
}

func newFakeStakingKeeper() *fakeStakingKeeper {
	return &fakeStakingKeeper{
		delegated: map[string]math.Int{},
		pending:   map[string]math.Int{},
	}
}

func (f *fakeStakingKeeper) Delegate(_ sdk.Context, validator string, amount sdk.Coin) error {
	cur, ok := f.delegated[validator]
	if !ok {
		cur = math.ZeroInt()
	}
	f.delegated[validator] = cur.Add(amount.Amount)
	return nil
}

func (f *fakeStakingKeeper) Undelegate(_ sdk.Context, validator string, amount sdk.Coin) error {
	cur := f.delegated[validator]
	f.delegated[validator] = cur.Sub(amount.Amount)
	return nil
}

func (f *fakeStakingKeeper) Redelegate(_ sdk.Context, src, dst string, amount sdk.Coin) error {
	f.delegated[src] = f.delegated[src].Sub(amount.Amount)
	cur, ok := f.delegated[dst]
	if !ok {
		cur = math.ZeroInt()
	}
	f.delegated[dst] = cur.Add(amount.Amount)
	return nil
}

func (f *fakeStakingKeeper) WithdrawRewards(_ sdk.Context, validator string) error {
	f.pending[validator] = math.ZeroInt()
	return nil
}

func (f *fakeStakingKeeper) QueryRewards(_ sdk.Context, _ sdk.AccAddress) ([]types.ValidatorReward, error) {
	out := make([]types.ValidatorReward, 0, len(f.pending))
	for val, amt := range f.pending {
		if amt.IsPositive() {
			out = append(out, types.ValidatorReward{Validator: val, Amount: sdk.NewCoin("stake", amt)})
		}
	}
	return out, nil
}

func (f *fakeStakingKeeper) addPendingReward(validator string, amount math.Int) {
	cur, ok := f.pending[validator]
	if !ok {
		cur = math.ZeroInt()
	}
	f.pending[validator] = cur.Add(amount)
}

// fakeBankKeeper records every module-to-account send so tests can assert
// payout amounts; SendCoins is accepted without being recorded.
type fakeBankKeeper struct {
	sentFromModule []sentEntry
}

type sentEntry struct {
	to     sdk.AccAddress
	amount sdk.Coins
}

func (f *fakeBankKeeper) SendCoins(_ sdk.Context, _, _ sdk.AccAddress, _ sdk.Coins) error {
	return nil
}

func (f *fakeBankKeeper) SendCoinsFromModuleToAccount(_ sdk.Context, _ string, recipient sdk.AccAddress, amount sdk.Coins) error {
	f.sentFromModule = append(f.sentFromModule, sentEntry{to: recipient, amount: amount})
	return nil
}

const testDenom = "stake"

// testFixture bundles everything a keeper test needs: a ready keeper wired
// to fake host collaborators, seeded with a minimal valid genesis.
type testFixture struct {
	t       *testing.T
	ctx     sdk.Context
	keeper  keeper.Keeper
	staking *fakeStakingKeeper
	bank    *fakeBankKeeper
}

func setupFixture(t *testing.T, numValidators int) *testFixture {
	t.Helper()
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	ctx := memstore.NewContext(t, storeKey)

	staking := newFakeStakingKeeper()
	bank := &fakeBankKeeper{}
	k := keeper.NewKeeper(storeKey, staking, bank)

	validators := make([]types.Validator, numValidators)
	for i := 0; i < numValidators; i++ {
		validators[i] = types.Validator{
			Address:   validatorAddr(i),
			Weight:    types.NewFraction(int64(10000 / numValidators)),
			Delegated: math.ZeroInt(),
		}
	}

	cfg := types.Config{
		Admins:                        []string{adminAddr().String()},
		Triggerers:                    []string{triggererAddr().String()},
		Reviewers:                     []string{reviewerAddr().String()},
		Denom:                         testDenom,
		PRNGSeed:                      []byte("0123456789abcdef0123456789abcdef"),
		NumValidators:                 uint64(numValidators),
		NextUnbondingBatchAmount:      math.ZeroInt(),
		UnbondingBatchDuration:        3600,
		UnbondingDuration:             86400,
		MinimumDeposit:                math.ZeroInt(),
		CommonDivisor:                 types.DefaultDivisor,
		NumberOfTicketsPerTransaction: math.NewInt(1_000_000),
	}

	round := types.Round{
		Duration:              3600,
		StartTime:             0,
		EndTime:               3600,
		CurrentRoundIdx:        1,
		TicketPrice:           math.NewInt(100),
		RewardsDistribution:   defaultRewardsDist(),
		RewardsExpiryDuration: 86400,
		TriggererSharePercentage: types.NewFraction(100),
		AdminShare: types.AdminShareInfo{
			TotalPercentageShare: types.NewFraction(1000),
			ShadePercentageShare: types.NewFraction(5000),
			ShadeAddress:         shadeAddr().String(),
			GalacticAddress:      galacticAddr().String(),
		},
		UnclaimedDistribution: types.UnclaimedDistInfo{
			ReservePercentage:   types.NewFraction(5000),
			PropagatePercentage: types.NewFraction(5000),
		},
	}

	gs := types.GenesisState{
		Config:     cfg,
		Round:      round,
		PoolState:  types.NewPoolState(),
		Validators: validators,
	}
	k.InitGenesis(ctx, gs)

	return &testFixture{t: t, ctx: ctx, keeper: k, staking: staking, bank: bank}
}

func defaultRewardsDist() types.RewardsDistInfo {
	return types.RewardsDistInfo{
		NumOfRewards: [types.NumTiers]uint64{100, 50, 20, 10, 4, 1},
		PercentageOfRewards: [types.NumTiers]types.Fraction{
			{}, // tier 0 gets the remainder, computed by computeTierPools
			types.NewFraction(1000),
			types.NewFraction(1500),
			types.NewFraction(1500),
			types.NewFraction(2000),
			types.NewFraction(3000),
		},
	}
}

func validatorAddr(i int) string {
	return sdk.ValAddress([]byte{byte(0xA0 + i), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}).String()
}

func adminAddr() sdk.AccAddress {
	return sdk.AccAddress([]byte("admin_____address___"))
}

func triggererAddr() sdk.AccAddress {
	return sdk.AccAddress([]byte("triggerer_address___"))
}

func reviewerAddr() sdk.AccAddress {
	return sdk.AccAddress([]byte("reviewer__address___"))
}

func shadeAddr() sdk.AccAddress {
	return sdk.AccAddress([]byte("shade_____address___"))
}

func galacticAddr() sdk.AccAddress {
	return sdk.AccAddress([]byte("galactic__address___"))
}

func userAddr(name string) sdk.AccAddress {
	b := make([]byte, 20)
	copy(b, name)
	return sdk.AccAddress(b)
}

func TestInitGenesis(t *testing.T) {
	f := setupFixture(t, 3)
	cfg := f.keeper.GetConfig(f.ctx)
	require.Equal(t, uint64(3), cfg.NumValidators)
	round := f.keeper.GetRound(f.ctx)
	require.Equal(t, uint64(1), round.CurrentRoundIdx)
	require.Equal(t, cfg.PRNGSeed, round.Seed)
}

func TestExportGenesisRoundTrip(t *testing.T) {
	f := setupFixture(t, 2)
	gs := f.keeper.ExportGenesis(f.ctx)
	require.Len(t, gs.Validators, 2)
	require.NoError(t, gs.Validate())
}
