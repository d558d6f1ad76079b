// Package padding implements two independent padding regimes behind a
// single Scheme capability: wrap(block, isLast) -> paddedInteger and
// unwrap(paddedInteger, isLast) -> plainBytes, so the RSA pipeline can
// swap padding variants without knowing their internals.
package padding

import (
	"math/big"

	"github.com/rsavault/rsavault/internal/rng"
)

// Scheme builds and strips padded blocks for one RSA modulus width.
type Scheme interface {
	// Name identifies the scheme for logging and config selection.
	Name() string
	// InputWidth returns W_in, the plaintext byte width of one block under
	// modulus n.
	InputWidth(n *big.Int) int
	// Wrap encodes block (len(block) <= InputWidth(n), shorter only on the
	// final block) into a padded message integer m < n.
	Wrap(n *big.Int, block []byte, isLast bool, src *rng.Source) (*big.Int, error)
	// Unwrap strips padding from a decrypted message integer, returning the
	// plaintext bytes it carries. For the final block, the returned slice
	// is truncated to the original payload length encoded in the padding.
	Unwrap(n *big.Int, m *big.Int, isLast bool) ([]byte, error)
}

// byteWidth returns |n|_256, n's big-endian byte length.
func byteWidth(n *big.Int) int {
	return (n.BitLen() + 7) / 8
}

// toFixedBytes renders x as exactly width big-endian bytes, left-padded
// with zeros.
func toFixedBytes(x *big.Int, width int) []byte {
	raw := x.Bytes()
	if len(raw) > width {
		raw = raw[len(raw)-width:]
	}
	out := make([]byte, width)
	copy(out[width-len(raw):], raw)
	return out
}

// hexXOR XORs two equal-length lowercase hex strings digit by digit,
// converting each hex character to its nibble value, XORing, and
// converting back. For the even-length lowercase strings the OAEP engine
// passes in, the result is the hex encoding of the byte-wise XOR.
func hexXOR(a, b string) string {
	if len(a) != len(b) {
		panic("padding: hexXOR operands must have equal length")
	}
	out := make([]byte, len(a))
	for i := 0; i < len(a); i++ {
		na := nibble(a[i])
		nb := nibble(b[i])
		out[i] = hexDigit(na ^ nb)
	}
	return string(out)
}

func nibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		panic("padding: invalid hex digit")
	}
}

func hexDigit(n byte) byte {
	const digits = "0123456789abcdef"
	return digits[n&0xF]
}
