// Package signer implements digest-then-RSA signing over a file, and
// signature verification by comparing a decrypted digest against a
// freshly recomputed one.
package signer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/rsavault/rsavault/internal/digest"
	"github.com/rsavault/rsavault/internal/padding"
	"github.com/rsavault/rsavault/internal/rng"
	"github.com/rsavault/rsavault/internal/rsakey"
	"github.com/rsavault/rsavault/internal/rsapipeline"
)

// Sign computes h = SHA-256(file) and writes a signature blob (the
// encrypt pipeline applied to h under the private exponent d) to w.
func Sign(w io.Writer, filePath string, pub *rsakey.PublicKey, priv *rsakey.PrivateKey, scheme padding.Scheme, prov digest.Provider, src *rng.Source) error {
	h, err := prov.SHA256File(filePath)
	if err != nil {
		return fmt.Errorf("signer: digesting %s: %w", filePath, err)
	}
	if err := rsapipeline.EncryptBytes(w, h[:], pub.N, priv.D, scheme, src); err != nil {
		return fmt.Errorf("signer: signing %s: %w", filePath, err)
	}
	return nil
}

// Verify recovers h' by decrypting the signature blob under the public
// exponent e, recomputes h = SHA-256(file), and reports whether they match
// byte-for-byte. This is the only place ciphertext/signature integrity is
// checked end to end; a tampered ciphertext otherwise decrypts silently to
// arbitrary bytes.
func Verify(signature io.Reader, filePath string, pub *rsakey.PublicKey, scheme padding.Scheme, prov digest.Provider) (bool, error) {
	recovered, err := rsapipeline.DecryptBytes(signature, pub.N, pub.E, nil, false, scheme)
	if err != nil {
		return false, fmt.Errorf("signer: decrypting signature: %w", err)
	}
	h, err := prov.SHA256File(filePath)
	if err != nil {
		return false, fmt.Errorf("signer: digesting %s: %w", filePath, err)
	}
	return bytes.Equal(recovered, h[:]), nil
}

// SignFile signs a file and writes the signature blob to sigPath.
func SignFile(filePath, sigPath string, pub *rsakey.PublicKey, priv *rsakey.PrivateKey, scheme padding.Scheme, prov digest.Provider, src *rng.Source) error {
	f, err := os.Create(sigPath)
	if err != nil {
		return fmt.Errorf("signer: creating signature file %s: %w", sigPath, err)
	}
	defer f.Close()

	if err := Sign(f, filePath, pub, priv, scheme, prov, src); err != nil {
		return err
	}
	return f.Close()
}

// VerifyFile verifies a file against a signature blob stored at sigPath.
func VerifyFile(filePath, sigPath string, pub *rsakey.PublicKey, scheme padding.Scheme, prov digest.Provider) (bool, error) {
	f, err := os.Open(sigPath)
	if err != nil {
		return false, fmt.Errorf("signer: opening signature file %s: %w", sigPath, err)
	}
	defer f.Close()
	return Verify(f, filePath, pub, scheme, prov)
}
