package primeseed

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsavault/rsavault/internal/numtheory"
	"github.com/rsavault/rsavault/internal/rng"
)

func loadTestTable(t *testing.T) []*big.Int {
	t.Helper()
	table, err := LoadTable(filepath.Join("..", "..", "assets", "small_primes.txt"))
	require.NoError(t, err)
	return table
}

func TestGenerate_ProducesPrimesOfRequestedWidth(t *testing.T) {
	table := loadTestTable(t)
	src := rng.New(99)

	for _, bits := range []int{64, 128, 256} {
		p := Generate(bits, table, src, numtheory.DefaultRounds)
		require.Equal(t, bits, p.BitLen())
		require.True(t, numtheory.MillerRabin(p, numtheory.DefaultRounds, rng.New(1000)),
			"candidate from independent randomness must still test prime")
	}
}

func TestGenerate_NeverDivisibleBySmallPrimes(t *testing.T) {
	table := loadTestTable(t)
	src := rng.New(55)

	p := Generate(96, table, src, numtheory.DefaultRounds)
	for _, small := range table {
		m := new(big.Int).Mod(p, small)
		require.NotEqual(t, 0, m.Sign())
	}
}
