// Package digest defines the digest provider capability and a native
// implementation. Hashing is treated as an injectable capability rather
// than a hardcoded call so a historical shell-out implementation can sit
// behind the same interface as the native one; crypto/sha256 backs the
// default implementation, since no third-party library improves on the
// standard library's SHA-256.
package digest

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// Provider computes SHA-256 digests of files and in-memory byte strings.
// Any conforming implementation may be injected; rsavault ships Native and
// the historical ShellOut variant.
type Provider interface {
	SHA256File(path string) ([32]byte, error)
	SHA256Bytes(data []byte) [32]byte
}

// Native computes SHA-256 with the standard library.
type Native struct{}

var _ Provider = Native{}

// SHA256File streams the file through SHA-256 without buffering it whole.
func (Native) SHA256File(path string) ([32]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return [32]byte{}, fmt.Errorf("digest: opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return [32]byte{}, fmt.Errorf("digest: hashing %s: %w", path, err)
	}

	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out, nil
}

// SHA256Bytes hashes an in-memory byte string.
func (Native) SHA256Bytes(data []byte) [32]byte {
	return sha256.Sum256(data)
}
