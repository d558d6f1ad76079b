// Package rsakey generates RSA key pairs with retained CRT parameters,
// built directly on internal/primeseed and internal/numtheory rather than
// crypto/rsa, since this module implements RSA from first principles
// rather than consuming the standard library's constant-time
// implementation.
package rsakey

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"github.com/rsavault/rsavault/internal/numtheory"
	"github.com/rsavault/rsavault/internal/primeseed"
	"github.com/rsavault/rsavault/internal/rng"
)

// PublicExponent is fixed at F4 = 65537 for every generated key.
var PublicExponent = big.NewInt(65537)

// PublicKey is immutable after generation.
type PublicKey struct {
	N *big.Int
	E *big.Int
}

// PrivateKey retains the prime factors and the CRT coefficient so that
// internal/rsapipeline can take the Garner recombination path.
type PrivateKey struct {
	D        *big.Int
	P        *big.Int
	Q        *big.Int
	QInvModP *big.Int
}

// ByteLen returns the byte length of n, i.e. |n|_256.
func (pub *PublicKey) ByteLen() int {
	return (pub.N.BitLen() + 7) / 8
}

// Fingerprint returns SHA-256(N.Bytes()), used by the audit ledger and for
// eyeballing two key blobs for equality.
func (pub *PublicKey) Fingerprint() [32]byte {
	return sha256.Sum256(pub.N.Bytes())
}

// Generate builds an RSA key pair with modulus bit length bits. table is
// the small-primes table loaded once per call via primeseed.LoadTable, and
// src is the process's single seeded randomness source.
func Generate(bits int, src *rng.Source, table []*big.Int) (*PublicKey, *PrivateKey, error) {
	if bits < 16 {
		return nil, nil, fmt.Errorf("rsakey: bit length %d is too small to hold two primes", bits)
	}

	// ceil(bits/2) and floor(bits/2), swapped onto p/q so that when bits is
	// odd the larger half lands on q.
	pBits := bits / 2
	qBits := bits - pBits

	for {
		p := primeseed.Generate(pBits, table, src, numtheory.DefaultRounds)
		q := primeseed.Generate(qBits, table, src, numtheory.DefaultRounds)

		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			// Carry overflow (or underflow) past the target width: regenerate.
			continue
		}

		pMinus1 := new(big.Int).Sub(p, one)
		qMinus1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pMinus1, qMinus1)

		d, ok := numtheory.ModInverse(PublicExponent, phi)
		if !ok {
			continue
		}

		qInvModP, ok := numtheory.ModInverse(q, p)
		if !ok {
			continue
		}

		pub := &PublicKey{N: n, E: new(big.Int).Set(PublicExponent)}
		priv := &PrivateKey{D: d, P: p, Q: q, QInvModP: qInvModP}
		return pub, priv, nil
	}
}

var one = big.NewInt(1)
