package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Len(t, first, 43)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second call reads the persisted value back
	second, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestLoadOrCreatePepper_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := LoadOrCreatePepper(path)
	require.Error(t, err)
}
