package mgf1

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsavault/rsavault/internal/digest"
)

func TestMask_Deterministic(t *testing.T) {
	seed := big.NewInt(12345)
	a, err := Mask(seed, 32, digest.Native{})
	require.NoError(t, err)
	b, err := Mask(seed, 32, digest.Native{})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMask_OutputLength(t *testing.T) {
	seed := big.NewInt(999)
	for _, l := range []int{0, 1, 31, 32, 33, 100} {
		out, err := Mask(seed, l, digest.Native{})
		require.NoError(t, err)
		assert.Len(t, out, 2*l, "Mask(%d) must produce 2*L hex digits", l)
	}
}

func TestMask_DifferentSeedsDiffer(t *testing.T) {
	a, err := Mask(big.NewInt(1), 32, digest.Native{})
	require.NoError(t, err)
	b, err := Mask(big.NewInt(2), 32, digest.Native{})
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestMask_RejectsOverlongOutput(t *testing.T) {
	_, err := Mask(big.NewInt(1), MaxOutputLen, digest.Native{})
	assert.Error(t, err)
}

func TestMask_IsLowercaseHex(t *testing.T) {
	out, err := Mask(big.NewInt(42), 16, digest.Native{})
	require.NoError(t, err)
	for _, c := range out {
		isLowerHex := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
		assert.True(t, isLowerHex, "unexpected character %q in mask output", c)
	}
}
