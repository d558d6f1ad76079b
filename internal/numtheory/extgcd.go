package numtheory

import "math/big"

// ExtGCD runs the iterative extended Euclidean algorithm on a, b and
// returns (gcd, x, y) such that a*x + b*y = gcd. Inputs are not mutated;
// every intermediate big.Int is freshly allocated and owned by the caller
// on return (no shared references survive the call).
func ExtGCD(a, b *big.Int) (gcd, x, y *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	quot := new(big.Int)
	tmp := new(big.Int)

	for r.Sign() != 0 {
		quot.Div(oldR, r)

		oldR, r = r, tmp.Sub(oldR, tmp.Mul(quot, r))
		tmp = new(big.Int)

		oldS, s = s, new(big.Int).Sub(oldS, new(big.Int).Mul(quot, s))
		oldT, t = t, new(big.Int).Sub(oldT, new(big.Int).Mul(quot, t))
	}

	return oldR, oldS, oldT
}

// ModInverse returns x such that a*x ≡ 1 (mod m). If gcd(a, m) != 1 the
// inverse does not exist; ModInverse signals this by returning a zero
// big.Int and ok=false. The caller must check ok — this never panics.
func ModInverse(a, m *big.Int) (inv *big.Int, ok bool) {
	gcd, x, _ := ExtGCD(a, m)
	if gcd.CmpAbs(big.NewInt(1)) != 0 {
		return new(big.Int), false
	}
	inv = new(big.Int).Mod(x, m)
	if inv.Sign() < 0 {
		inv.Add(inv, m)
	}
	return inv, true
}
