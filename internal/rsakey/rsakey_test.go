package rsakey

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsavault/rsavault/internal/primeseed"
	"github.com/rsavault/rsavault/internal/rng"
)

func loadTable(t *testing.T) []*big.Int {
	t.Helper()
	table, err := primeseed.LoadTable(filepath.Join("..", "..", "assets", "small_primes.txt"))
	require.NoError(t, err)
	return table
}

// TestGenerate_KeyInvariants checks the core RSA key invariants:
// p*q = n, e*d mod phi = 1, q*qInvModP mod p = 1, bitlen(n) = B.
func TestGenerate_KeyInvariants(t *testing.T) {
	table := loadTable(t)
	src := rng.New(321)

	const bits = 256
	pub, priv, err := Generate(bits, src, table)
	require.NoError(t, err)

	require.Equal(t, bits, pub.N.BitLen())

	n := new(big.Int).Mul(priv.P, priv.Q)
	require.Equal(t, 0, n.Cmp(pub.N), "p*q must equal n")

	phi := new(big.Int).Mul(
		new(big.Int).Sub(priv.P, big.NewInt(1)),
		new(big.Int).Sub(priv.Q, big.NewInt(1)),
	)
	product := new(big.Int).Mod(new(big.Int).Mul(pub.E, priv.D), phi)
	require.Equal(t, big.NewInt(1), product, "e*d mod phi(n) must equal 1")

	qCheck := new(big.Int).Mod(new(big.Int).Mul(priv.Q, priv.QInvModP), priv.P)
	require.Equal(t, big.NewInt(1), qCheck, "q*qInvModP mod p must equal 1")
}

func TestGenerate_PublicExponentIsF4(t *testing.T) {
	table := loadTable(t)
	src := rng.New(654)

	pub, _, err := Generate(192, src, table)
	require.NoError(t, err)
	require.Equal(t, 0, pub.E.Cmp(big.NewInt(65537)))
}

func TestFingerprint_Deterministic(t *testing.T) {
	table := loadTable(t)
	src := rng.New(77)
	pub, _, err := Generate(192, src, table)
	require.NoError(t, err)

	a := pub.Fingerprint()
	b := pub.Fingerprint()
	require.Equal(t, a, b)
}
