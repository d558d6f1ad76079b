package primeseed

import (
	"math/big"

	"github.com/rsavault/rsavault/internal/numtheory"
	"github.com/rsavault/rsavault/internal/rng"
)

var two = big.NewInt(2)

// Generate samples a b-bit probable prime using a residue-ladder sieve: a
// random odd b-bit candidate is advanced by 2 until it survives trial
// division against every entry of table, at which point it is handed to
// Miller-Rabin. Only candidates coprime to every small prime ever reach the
// expensive primality test.
func Generate(b int, table []*big.Int, src *rng.Source, rounds int) *big.Int {
	x := src.Bits(b)

	res := make([]*big.Int, len(table))
	for i, p := range table {
		res[i] = new(big.Int).Mod(x, p)
	}

	advance := func() {
		x.Add(x, two)
		for l, p := range table {
			res[l].Add(res[l], two)
			res[l].Mod(res[l], p)
		}
	}

	for {
		for hasZero(res) {
			advance()
		}
		if numtheory.MillerRabin(x, rounds, src) {
			return x
		}
		advance()
	}
}

func hasZero(res []*big.Int) bool {
	for _, r := range res {
		if r.Sign() == 0 {
			return true
		}
	}
	return false
}
