// Package rsapipeline implements the RSA block pipeline: framing a file
// into fixed-width plaintext windows, padding each into a message integer,
// raising it to an exponent modulo n, and the inverse.
package rsapipeline

import (
	"bytes"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/rsavault/rsavault/internal/keycodec"
	"github.com/rsavault/rsavault/internal/padding"
	"github.com/rsavault/rsavault/internal/rng"
	"github.com/rsavault/rsavault/internal/rsakey"
)

// EncryptBytes runs the encrypt/sign half of the pipeline over an
// in-memory plaintext, writing length-prefixed ciphertext records to w.
func EncryptBytes(w io.Writer, plaintext []byte, n, exp *big.Int, scheme padding.Scheme, src *rng.Source) error {
	wIn := scheme.InputWidth(n)
	if wIn <= 0 {
		return fmt.Errorf("rsapipeline: modulus too small for %s padding", scheme.Name())
	}

	blocks := splitBlocks(plaintext, wIn)
	for i, block := range blocks {
		isLast := i == len(blocks)-1
		m, err := scheme.Wrap(n, block, isLast, src)
		if err != nil {
			return fmt.Errorf("rsapipeline: padding block %d: %w", i, err)
		}
		c := new(big.Int).Exp(m, exp, n)
		if err := keycodec.WriteRecord(w, c); err != nil {
			return fmt.Errorf("rsapipeline: writing ciphertext record %d: %w", i, err)
		}
	}
	return nil
}

// DecryptBytes runs the decrypt/verify half of the pipeline, reading all
// ciphertext records from r and returning the reassembled plaintext.
// useCRT selects the Garner recombination path; otherwise decryption is
// direct modular exponentiation with expInv = d.
func DecryptBytes(r io.Reader, n, expInv *big.Int, priv *rsakey.PrivateKey, useCRT bool, scheme padding.Scheme) ([]byte, error) {
	var records []*big.Int
	for {
		c, err := keycodec.ReadRecord(r)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("rsapipeline: reading ciphertext: %w", err)
		}
		records = append(records, c)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("rsapipeline: ciphertext is empty")
	}

	var out bytes.Buffer
	for i, c := range records {
		isLast := i == len(records)-1

		var m *big.Int
		if useCRT {
			if priv == nil {
				return nil, fmt.Errorf("rsapipeline: CRT decryption requires a private key")
			}
			m = crtDecrypt(c, priv)
		} else {
			m = new(big.Int).Exp(c, expInv, n)
		}

		plain, err := scheme.Unwrap(n, m, isLast)
		if err != nil {
			return nil, fmt.Errorf("rsapipeline: unwrapping block %d: %w", i, err)
		}
		out.Write(plain)
	}
	return out.Bytes(), nil
}

// crtDecrypt applies Garner's recombination: computes m = c^d mod n via
// the two half-size exponentiations mod p and mod q instead of one
// full-size exponentiation mod n.
func crtDecrypt(c *big.Int, priv *rsakey.PrivateKey) *big.Int {
	pMinus1 := new(big.Int).Sub(priv.P, one)
	qMinus1 := new(big.Int).Sub(priv.Q, one)

	dP := new(big.Int).Mod(priv.D, pMinus1)
	dQ := new(big.Int).Mod(priv.D, qMinus1)

	mP := new(big.Int).Exp(c, dP, priv.P)
	mQ := new(big.Int).Exp(c, dQ, priv.Q)

	h := new(big.Int).Sub(mP, mQ)
	h.Mul(h, priv.QInvModP)
	h.Mod(h, priv.P)

	m := new(big.Int).Mul(h, priv.Q)
	m.Add(m, mQ)
	return m
}

var one = big.NewInt(1)

// splitBlocks slices data into chunks of at most width bytes. An empty
// input still yields one empty block so the pipeline always produces at
// least one ciphertext record.
func splitBlocks(data []byte, width int) [][]byte {
	if len(data) == 0 {
		return [][]byte{{}}
	}
	var blocks [][]byte
	for offset := 0; offset < len(data); offset += width {
		end := offset + width
		if end > len(data) {
			end = len(data)
		}
		blocks = append(blocks, data[offset:end])
	}
	return blocks
}

// EncryptFile reads plaintext from inPath and writes the ciphertext blob to
// outPath.
func EncryptFile(inPath, outPath string, n, exp *big.Int, scheme padding.Scheme, src *rng.Source) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("rsapipeline: reading plaintext %s: %w", inPath, err)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("rsapipeline: creating ciphertext %s: %w", outPath, err)
	}
	defer f.Close()

	if err := EncryptBytes(f, data, n, exp, scheme, src); err != nil {
		return err
	}
	return f.Close()
}

// DecryptFile reads a ciphertext blob from inPath and writes recovered
// plaintext to outPath.
func DecryptFile(inPath, outPath string, n, expInv *big.Int, priv *rsakey.PrivateKey, useCRT bool, scheme padding.Scheme) error {
	f, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("rsapipeline: opening ciphertext %s: %w", inPath, err)
	}
	defer f.Close()

	plain, err := DecryptBytes(f, n, expInv, priv, useCRT, scheme)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("rsapipeline: closing ciphertext %s: %w", inPath, err)
	}

	if err := os.WriteFile(outPath, plain, 0o600); err != nil {
		return fmt.Errorf("rsapipeline: writing plaintext %s: %w", outPath, err)
	}
	return nil
}
