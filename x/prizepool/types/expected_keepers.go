package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// StakingKeeper is the narrow host staking interface the core issues requests
// against and reads reward totals from (spec.md §6). The core never
// implements delegate/undelegate/redelegate/withdraw-rewards itself.
type StakingKeeper interface {
	Delegate(ctx sdk.Context, validator string, amount sdk.Coin) error
	Undelegate(ctx sdk.Context, validator string, amount sdk.Coin) error
	Redelegate(ctx sdk.Context, src, dst string, amount sdk.Coin) error
	WithdrawRewards(ctx sdk.Context, validator string) error
	QueryRewards(ctx sdk.Context, contract sdk.AccAddress) ([]ValidatorReward, error)
}

// ValidatorReward is one entry of StakingKeeper.QueryRewards' result.
type ValidatorReward struct {
	Validator string
	Amount    sdk.Coin
}

// BankKeeper is the narrow host bank interface used to release matured
// withdrawals and payouts (spec.md §6).
type BankKeeper interface {
	SendCoins(ctx sdk.Context, from, to sdk.AccAddress, amount sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipient sdk.AccAddress, amount sdk.Coins) error
}
