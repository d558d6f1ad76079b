package padding

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/rsavault/rsavault/internal/digest"
	"github.com/rsavault/rsavault/internal/mgf1"
	"github.com/rsavault/rsavault/internal/rng"
)

// seedByteLen is the width of the seed/length slot (8 bytes == the Y
// half's 16 hex digits).
const seedByteLen = 8

// OAEP implements an MGF1-based padding variant. It is explicitly
// "OAEP-like" rather than standards-conformant: the final block's seed
// slot carries the raw payload length instead of random entropy.
type OAEP struct {
	Digest digest.Provider
}

var _ Scheme = OAEP{}

func (OAEP) Name() string { return "oaep-mgf1" }

// InputWidth is |n|_256 - 8: the remaining 8 bytes carry the seed/length.
func (OAEP) InputWidth(n *big.Int) int {
	return byteWidth(n) - seedByteLen
}

func (o OAEP) Wrap(n *big.Int, block []byte, isLast bool, src *rng.Source) (*big.Int, error) {
	wIn := o.InputWidth(n)
	if len(block) > wIn {
		return nil, fmt.Errorf("oaep: block of %d bytes exceeds input width %d", len(block), wIn)
	}

	var seed *big.Int
	if isLast {
		seed = big.NewInt(int64(len(block)))
	} else {
		seedBytes := make([]byte, seedByteLen)
		for i := range seedBytes {
			seedBytes[i] = src.ByteInRange(0x10, 0xFF)
		}
		seed = new(big.Int).SetBytes(seedBytes)
	}
	seedHex := padHex(seed.Text(16), 2*seedByteLen)

	plainPadded := make([]byte, wIn)
	copy(plainPadded, block)
	plainHex := hex.EncodeToString(plainPadded)

	maskHex, err := mgf1.Mask(seed, wIn, o.Digest)
	if err != nil {
		return nil, fmt.Errorf("oaep: masking plaintext: %w", err)
	}
	x := hexXOR(maskHex, plainHex)

	xPrefix, err := hexToBigInt(x[:2*seedByteLen])
	if err != nil {
		return nil, fmt.Errorf("oaep: parsing X prefix: %w", err)
	}
	yMaskHex, err := mgf1.Mask(xPrefix, seedByteLen, o.Digest)
	if err != nil {
		return nil, fmt.Errorf("oaep: masking seed: %w", err)
	}
	y := hexXOR(yMaskHex, seedHex)

	padded, err := hex.DecodeString(x + y)
	if err != nil {
		return nil, fmt.Errorf("oaep: decoding padded hex: %w", err)
	}

	m := new(big.Int).SetBytes(padded)
	if m.Cmp(n) >= 0 {
		return nil, fmt.Errorf("oaep: padded block integer exceeds modulus")
	}
	return m, nil
}

func (o OAEP) Unwrap(n *big.Int, m *big.Int, isLast bool) ([]byte, error) {
	t := byteWidth(n)
	wIn := o.InputWidth(n)
	raw := toFixedBytes(m, t)
	fullHex := hex.EncodeToString(raw)

	xHex := fullHex[:2*wIn]
	yHex := fullHex[2*wIn:]

	xPrefix, err := hexToBigInt(xHex[:2*seedByteLen])
	if err != nil {
		return nil, fmt.Errorf("oaep: parsing X prefix: %w", err)
	}
	seedMaskHex, err := mgf1.Mask(xPrefix, seedByteLen, o.Digest)
	if err != nil {
		return nil, fmt.Errorf("oaep: masking seed: %w", err)
	}
	seedHex := hexXOR(seedMaskHex, yHex)
	seed, err := hexToBigInt(seedHex)
	if err != nil {
		return nil, fmt.Errorf("oaep: parsing recovered seed: %w", err)
	}

	plainMaskHex, err := mgf1.Mask(seed, wIn, o.Digest)
	if err != nil {
		return nil, fmt.Errorf("oaep: masking plaintext: %w", err)
	}
	plainHex := hexXOR(plainMaskHex, xHex)
	plain, err := hex.DecodeString(plainHex)
	if err != nil {
		return nil, fmt.Errorf("oaep: decoding recovered plaintext: %w", err)
	}

	if !isLast {
		return plain, nil
	}

	length := seed.Int64()
	if length < 0 || length > int64(wIn) {
		return nil, fmt.Errorf("oaep: recovered final-block length %d out of range [0, %d]", length, wIn)
	}
	return plain[:length], nil
}

func padHex(s string, width int) string {
	if len(s) >= width {
		return s
	}
	out := make([]byte, width-len(s))
	for i := range out {
		out[i] = '0'
	}
	return string(out) + s
}

func hexToBigInt(s string) (*big.Int, error) {
	x, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("invalid hex string %q", s)
	}
	return x, nil
}
