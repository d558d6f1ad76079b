package primeseed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTable_FromRepoAsset(t *testing.T) {
	path := filepath.Join("..", "..", "assets", "small_primes.txt")
	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Len(t, table, TableSize)

	// ascending
	for i := 1; i < len(table); i++ {
		assert.Equal(t, -1, table[i-1].Cmp(table[i]), "table must be strictly ascending")
	}
}

func TestLoadTable_TooShort(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "short.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n5\n7\n"), 0o600))

	_, err := LoadTable(path)
	assert.Error(t, err)
}

func TestLoadTable_Missing(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
