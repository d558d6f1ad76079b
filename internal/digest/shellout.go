package digest

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ShellOut shells out to an external sha256sum-compatible utility rather
// than hashing in-process, preserving a historical deployment path where
// the hash binary was swapped independently of the vault binary.
// rsavault's CLI defaults to Native.
type ShellOut struct {
	// Binary is the executable invoked, e.g. "sha256sum" or "shasum -a 256"
	// split into argv form.
	Binary string
	Args   []string
}

var _ Provider = ShellOut{}

// SHA256File shells out to compute the digest of a file on disk.
func (s ShellOut) SHA256File(path string) ([32]byte, error) {
	args := append(append([]string{}, s.Args...), path)
	out, err := exec.Command(s.Binary, args...).Output()
	if err != nil {
		return [32]byte{}, fmt.Errorf("digest: running %s: %w", s.Binary, err)
	}
	return parseHexDigest(out)
}

// SHA256Bytes writes data to a temp file and shells out over it, mirroring
// how the original CLI could only hash files, not in-memory buffers.
func (s ShellOut) SHA256Bytes(data []byte) [32]byte {
	tmp, err := os.CreateTemp("", "rsavault-digest-*")
	if err != nil {
		panic(fmt.Sprintf("digest: creating scratch file: %v", err))
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		panic(fmt.Sprintf("digest: writing scratch file: %v", err))
	}
	if err := tmp.Close(); err != nil {
		panic(fmt.Sprintf("digest: closing scratch file: %v", err))
	}

	out, err := s.SHA256File(tmp.Name())
	if err != nil {
		panic(fmt.Sprintf("digest: shelling out: %v", err))
	}
	return out
}

func parseHexDigest(out []byte) ([32]byte, error) {
	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return [32]byte{}, fmt.Errorf("digest: empty output from shell utility")
	}
	hexDigest := fields[0]
	if len(hexDigest) != 64 {
		return [32]byte{}, fmt.Errorf("digest: unexpected digest length %d", len(hexDigest))
	}
	var out32 [32]byte
	for i := 0; i < 32; i++ {
		var b byte
		if _, err := fmt.Sscanf(hexDigest[i*2:i*2+2], "%02x", &b); err != nil {
			return [32]byte{}, fmt.Errorf("digest: parsing hex digest: %w", err)
		}
		out32[i] = b
	}
	return out32, nil
}
