package digest

import (
	"crypto/sha256"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNative_SHA256Bytes(t *testing.T) {
	data := []byte("the quick brown fox")
	want := sha256.Sum256(data)
	got := Native{}.SHA256Bytes(data)
	require.Equal(t, want, got)
}

func TestNative_SHA256File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02}
	require.NoError(t, os.WriteFile(path, data, 0o600))

	want := sha256.Sum256(data)
	got, err := Native{}.SHA256File(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNative_SHA256File_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	want := sha256.Sum256(nil)
	got, err := Native{}.SHA256File(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestNative_SHA256File_Missing(t *testing.T) {
	_, err := Native{}.SHA256File(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func requireSHA256Sum(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sha256sum"); err != nil {
		t.Skip("sha256sum not available in PATH")
	}
}

func TestShellOut_SHA256File_MatchesNative(t *testing.T) {
	requireSHA256Sum(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	data := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02}
	require.NoError(t, os.WriteFile(path, data, 0o600))

	want := sha256.Sum256(data)
	got, err := ShellOut{Binary: "sha256sum"}.SHA256File(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestShellOut_SHA256Bytes_MatchesNative(t *testing.T) {
	requireSHA256Sum(t)

	data := []byte("the quick brown fox")
	want := sha256.Sum256(data)
	got := ShellOut{Binary: "sha256sum"}.SHA256Bytes(data)
	require.Equal(t, want, got)
}

func TestShellOut_SHA256File_MissingBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := ShellOut{Binary: "rsavault-nonexistent-digest-binary"}.SHA256File(path)
	require.Error(t, err)
}
