package padding

import (
	"fmt"
	"math/big"

	"github.com/rsavault/rsavault/internal/rng"
)

// minPaddingBytes is the minimum PS length required: at least 8 random
// bytes, each in [0x10, 0xFF].
const minPaddingBytes = 8

// markerByte is the leading byte of every PKCS1-v1.5 padded block. Its high
// nibble (0x1) is the "marker" the decoder looks for.
const markerByte = 0x10

// PKCS1 implements the classical byte-padding variant.
type PKCS1 struct{}

var _ Scheme = PKCS1{}

func (PKCS1) Name() string { return "pkcs1v15" }

// InputWidth is |n|_256 - 11: one marker byte, one zero separator, and at
// least 9 bytes of padding when the block is full.
func (PKCS1) InputWidth(n *big.Int) int {
	return byteWidth(n) - 11
}

func (p PKCS1) Wrap(n *big.Int, block []byte, isLast bool, src *rng.Source) (*big.Int, error) {
	t := byteWidth(n)
	if len(block) > p.InputWidth(n) {
		return nil, fmt.Errorf("pkcs1: block of %d bytes exceeds input width %d", len(block), p.InputWidth(n))
	}

	psLen := t - 2 - len(block)
	if psLen < minPaddingBytes {
		return nil, fmt.Errorf("pkcs1: modulus too small to hold marker, %d-byte padding and %d-byte block", minPaddingBytes, len(block))
	}

	out := make([]byte, 0, t)
	out = append(out, markerByte)
	for i := 0; i < psLen; i++ {
		out = append(out, src.ByteInRange(0x10, 0xFF))
	}
	out = append(out, 0x00)
	out = append(out, block...)

	m := new(big.Int).SetBytes(out)
	if m.Cmp(n) >= 0 {
		return nil, fmt.Errorf("pkcs1: padded block integer exceeds modulus")
	}
	return m, nil
}

func (PKCS1) Unwrap(n *big.Int, m *big.Int, isLast bool) ([]byte, error) {
	t := byteWidth(n)
	raw := toFixedBytes(m, t)

	if len(raw) == 0 || raw[0]>>4 != markerByte>>4 {
		return nil, fmt.Errorf("pkcs1: padded block missing 0x1 marker nibble")
	}

	sep := -1
	for i := 1; i < len(raw); i++ {
		if raw[i] == 0x00 {
			sep = i
			break
		}
	}
	if sep < 0 {
		return nil, fmt.Errorf("pkcs1: no 0x00 separator found after marker")
	}
	if sep-1 < minPaddingBytes {
		return nil, fmt.Errorf("pkcs1: padding shorter than %d bytes", minPaddingBytes)
	}

	return raw[sep+1:], nil
}
