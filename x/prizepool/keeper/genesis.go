package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/shade-protocol/galacticpools/x/prizepool/types"
)

// InitGenesis seeds Config, Round, PoolState and the validator table from
// genesis (spec.md §3 "created at init"). Round.seed is copied from
// Config.prng_seed since a freshly created round has never been extended.
func (k Keeper) InitGenesis(ctx sdk.Context, gs types.GenesisState) {
	if err := gs.Validate(); err != nil {
		panic(err)
	}

	round := gs.Round
	round.Seed = append([]byte{}, gs.Config.PRNGSeed...)
	if round.CurrentRoundIdx == 0 {
		round.CurrentRoundIdx = 1
	}

	k.SetConfig(ctx, gs.Config)
	k.SetRound(ctx, round)
	k.SetPoolState(ctx, gs.PoolState)

	for i, v := range gs.Validators {
		k.SetValidator(ctx, uint64(i), v)
	}
}

// ExportGenesis reads back the module's full genesis-relevant state.
func (k Keeper) ExportGenesis(ctx sdk.Context) types.GenesisState {
	return types.GenesisState{
		Config:     k.GetConfig(ctx),
		Round:      k.GetRound(ctx),
		PoolState:  k.GetPoolState(ctx),
		Validators: k.Validators(ctx),
	}
}
