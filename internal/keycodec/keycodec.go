// Package keycodec implements the raw length-prefixed big-integer codec
// used for key blobs, ciphertext blobs, and signature blobs. There is no
// header, no OID, and no compatibility with standard RSA key file formats
// — by design, not an oversight.
package keycodec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/rsavault/rsavault/internal/rsakey"
)

// WriteRecord appends one length-prefixed big-endian integer to w: a
// 4-byte big-endian length followed by that many raw bytes.
func WriteRecord(w io.Writer, x *big.Int) error {
	raw := x.Bytes()
	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(len(raw)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("keycodec: writing record length: %w", err)
	}
	if _, err := w.Write(raw); err != nil {
		return fmt.Errorf("keycodec: writing record body: %w", err)
	}
	return nil
}

// ReadRecord reads one length-prefixed record from r. It returns io.EOF
// (unwrapped, so callers can use errors.Is) when r is exhausted before the
// start of a new record.
func ReadRecord(r io.Reader) (*big.Int, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("keycodec: reading record length: %w", err)
	}
	n := binary.BigEndian.Uint32(lenBuf[:])
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("keycodec: reading record body: %w", err)
	}
	return new(big.Int).SetBytes(body), nil
}

// WritePublicKeyBlob writes the single-record public key blob: [n].
func WritePublicKeyBlob(w io.Writer, pub *rsakey.PublicKey) error {
	return WriteRecord(w, pub.N)
}

// ReadPublicKeyBlob reads a public key blob.
func ReadPublicKeyBlob(r io.Reader) (*rsakey.PublicKey, error) {
	n, err := ReadRecord(r)
	if err != nil {
		return nil, fmt.Errorf("keycodec: reading public key blob: %w", err)
	}
	return &rsakey.PublicKey{N: n, E: new(big.Int).Set(rsakey.PublicExponent)}, nil
}

// WritePrivateKeyBlob writes the four-record private key blob:
// [d, p, q, qInvModP].
func WritePrivateKeyBlob(w io.Writer, priv *rsakey.PrivateKey) error {
	for _, x := range []*big.Int{priv.D, priv.P, priv.Q, priv.QInvModP} {
		if err := WriteRecord(w, x); err != nil {
			return fmt.Errorf("keycodec: writing private key blob: %w", err)
		}
	}
	return nil
}

// ReadPrivateKeyBlob reads a private key blob.
func ReadPrivateKeyBlob(r io.Reader) (*rsakey.PrivateKey, error) {
	vals := make([]*big.Int, 4)
	for i := range vals {
		x, err := ReadRecord(r)
		if err != nil {
			return nil, fmt.Errorf("keycodec: reading private key blob field %d: %w", i, err)
		}
		vals[i] = x
	}
	return &rsakey.PrivateKey{D: vals[0], P: vals[1], Q: vals[2], QInvModP: vals[3]}, nil
}
