// Package rng provides the single seeded randomness source used by the
// primality engine, key engine, and padding engines. One Source is created
// at process startup and passed explicitly down every call chain; nothing
// here keeps process-global state, since this system runs single-threaded
// end to end.
package rng

import (
	"fmt"
	"math/big"
	"math/rand/v2"
)

// Source is a seeded uniform random source producing integers of a
// requested size. It is not safe for concurrent use — callers run a
// single cooperative thread of execution.
type Source struct {
	r *rand.Rand
}

// New creates a Source seeded from the given 64-bit value. Callers seed
// from wall-clock time at process startup (see cmd/rsavault).
func New(seed uint64) *Source {
	return &Source{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Bits returns a random odd big integer of exactly n bits: the top bit and
// the bottom bit are always 1, so the result is an odd value in
// [2^(n-1), 2^n - 1], uniform over the odd values there. n must be positive.
func (s *Source) Bits(n int) *big.Int {
	if n <= 0 {
		panic(fmt.Sprintf("rng: requested non-positive bit length %d", n))
	}
	byteLen := (n + 7) / 8
	buf := make([]byte, byteLen)
	for i := range buf {
		buf[i] = byte(s.r.IntN(256))
	}
	x := new(big.Int).SetBytes(buf)

	// Clear any excess high bits above n, then force the top bit of the
	// requested width and force the value odd.
	excess := byteLen*8 - n
	x.Rsh(x, uint(excess))
	x.SetBit(x, n-1, 1)
	x.SetBit(x, 0, 1)
	return x
}

// IntN returns a uniform random integer in [0, n). n must be > 0.
func (s *Source) IntN(n int) int {
	return s.r.IntN(n)
}

// Uniform returns a uniform random big integer in [0, n). n must be positive.
func (s *Source) Uniform(n *big.Int) *big.Int {
	if n.Sign() <= 0 {
		panic("rng: Uniform requires a positive bound")
	}
	bitLen := n.BitLen()
	byteLen := (bitLen + 7) / 8
	buf := make([]byte, byteLen)
	for {
		for i := range buf {
			buf[i] = byte(s.r.IntN(256))
		}
		x := new(big.Int).SetBytes(buf)
		excess := byteLen*8 - bitLen
		x.Rsh(x, uint(excess))
		if x.Cmp(n) < 0 {
			return x
		}
	}
}

// Bytes fills and returns n freshly drawn random bytes.
func (s *Source) Bytes(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(s.r.IntN(256))
	}
	return buf
}

// ByteInRange returns a single random byte in [lo, hi] inclusive.
func (s *Source) ByteInRange(lo, hi byte) byte {
	span := int(hi) - int(lo) + 1
	return lo + byte(s.r.IntN(span))
}
