package numtheory

import (
	"math/big"

	"github.com/rsavault/rsavault/internal/rng"
)

// DefaultRounds is the witness count used throughout the key engine,
// matching the security parameter used by the original sieve-and-test
// generator this package is modeled on.
const DefaultRounds = 10

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// MillerRabin reports whether n is probably prime using the given number of
// witness rounds drawn from src. It never raises — composite and
// probably-prime are both ordinary boolean outcomes, not errors.
func MillerRabin(n *big.Int, rounds int, src *rng.Source) bool {
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Cmp(two) == 0 || n.Cmp(three) == 0 {
		return true
	}
	if n.Bit(0) == 0 {
		return false
	}

	nMinus1 := new(big.Int).Sub(n, one)

	// n - 1 = r * 2^s, r odd.
	r := new(big.Int).Set(nMinus1)
	s := 0
	for r.Bit(0) == 0 {
		r.Rsh(r, 1)
		s++
	}

	nMinus2 := new(big.Int).Sub(n, two)

	for round := 0; round < rounds; round++ {
		// a uniform in [2, n-2]
		a := new(big.Int).Add(src.Uniform(new(big.Int).Sub(nMinus2, one)), two)

		y := new(big.Int).Exp(a, r, n)
		if y.Cmp(one) == 0 || y.Cmp(nMinus1) == 0 {
			continue
		}

		witnessForComposite := true
		for i := 0; i < s-1; i++ {
			y.Mul(y, y)
			y.Mod(y, n)
			if y.Cmp(one) == 0 {
				return false
			}
			if y.Cmp(nMinus1) == 0 {
				witnessForComposite = false
				break
			}
		}
		if witnessForComposite {
			return false
		}
	}
	return true
}
