package keeper

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestDeriveSeed_IsDeterministicAndDiscriminatorSensitive(t *testing.T) {
	processSeed := []byte("process-seed-0123456789abcdef01")
	entropy := []byte("round-entropy")

	a := DeriveSeed(processSeed, entropy, tierDiscriminator(0))
	b := DeriveSeed(processSeed, entropy, tierDiscriminator(0))
	require.Equal(t, a, b)

	c := DeriveSeed(processSeed, entropy, tierDiscriminator(1))
	require.NotEqual(t, a, c)
}

func TestDrawRNG_SkipMatchesDirectDraws(t *testing.T) {
	seed := DeriveSeed([]byte("seed"), []byte("entropy"), []byte{0})

	direct := newDrawRNG(seed)
	var draws []math.Int
	for i := 0; i < 5; i++ {
		draws = append(draws, direct.nextU128())
	}

	skipped := newDrawRNG(seed)
	skipped.skip(3)
	require.True(t, draws[3].Equal(skipped.nextU128()))
	require.True(t, draws[4].Equal(skipped.nextU128()))
}

func TestDrawRNG_UniformIsBoundedAndZeroModulusSafe(t *testing.T) {
	seed := DeriveSeed([]byte("seed"), []byte("entropy"), []byte{1})
	r := newDrawRNG(seed)

	modulus := math.NewInt(100)
	for i := 0; i < 50; i++ {
		v := r.uniform(modulus)
		require.True(t, v.GTE(math.ZeroInt()))
		require.True(t, v.LT(modulus))
	}

	require.True(t, r.uniform(math.ZeroInt()).IsZero())
	require.True(t, r.uniform(math.NewInt(-5)).IsZero())
}

func TestNewDrawRNG_DifferentSeedsDivergeImmediately(t *testing.T) {
	s1 := DeriveSeed([]byte("a"), nil, nil)
	s2 := DeriveSeed([]byte("b"), nil, nil)
	require.False(t, newDrawRNG(s1).nextU128().Equal(newDrawRNG(s2).nextU128()))
}
