// Package memstore builds an in-memory sdk.Context backed by a real
// CommitMultiStore, the same boilerplate the teacher's sibling keeper test
// suites set up before exercising a keeper in isolation (simapp-less keeper
// tests), so x/prizepool/keeper tests never need a full chain.
package memstore

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/store"
	storetypes "github.com/cosmos/cosmos-sdk/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"
)

// NewContext mounts storeKey on a fresh in-memory IAVL-backed multistore and
// returns a ready-to-use sdk.Context, with BlockHeight=1 and BlockTime=now
// (callers override via ctx.WithBlockTime/WithBlockHeight per test case).
func NewContext(t *testing.T, storeKey storetypes.StoreKey) sdk.Context {
	t.Helper()

	db := dbm.NewMemDB()
	ms := store.NewCommitMultiStore(db)
	ms.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, ms.LoadLatestVersion())

	header := types.Header{Height: 1, Time: time.Unix(0, 0).UTC()}
	return sdk.NewContext(ms, header, false, log.NewNopLogger())
}
