// Package mgf1 implements a bespoke mask generation function: SHA-256
// iterated over a hex-encoded seed and counter, emitted as a lowercase hex
// stream and truncated to the requested length. This is not the MGF1
// defined by PKCS#1 (which operates on raw bytes); the OAEP engine in
// internal/padding is itself a non-standard "OAEP-like" scheme that
// consumes this exact hex-level variant (see DESIGN.md).
package mgf1

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/rsavault/rsavault/internal/digest"
)

// MaxOutputLen is a 2^37 byte bound. No valid RSA block size ever
// approaches it; it exists only so the function has a defined failure mode
// instead of an unbounded loop.
const MaxOutputLen = 1 << 37

// seedHexWidth is the padded width of the seed's hex encoding (16 hex
// digits == 8 bytes), matching the padded block's Y half.
const seedHexWidth = 16

// counterHexWidth is I2OSP(c, 8): the counter encoded as exactly 8 hex
// digits.
const counterHexWidth = 8

// Mask returns the first L bytes of the MGF1 stream for seed, represented
// as a lowercase hex string of exactly 2*L hex digits.
func Mask(seed *big.Int, l int, provider digest.Provider) (string, error) {
	if l < 0 {
		return "", fmt.Errorf("mgf1: negative output length %d", l)
	}
	if l >= MaxOutputLen {
		return "", fmt.Errorf("mgf1: requested output length %d exceeds bound %d", l, MaxOutputLen)
	}

	sHex := padHex(seed.Text(16), seedHexWidth)

	var out strings.Builder
	needed := 2 * l
	for counter := 0; out.Len() < needed; counter++ {
		cHex := padHex(fmt.Sprintf("%x", counter), counterHexWidth)
		block := provider.SHA256Bytes([]byte(sHex + cHex))
		out.WriteString(hex.EncodeToString(block[:]))
	}

	return out.String()[:needed], nil
}

func padHex(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
