package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemory_SetEmptyDeletes(t *testing.T) {
	st := NewMemory()

	require.NoError(t, st.Set("k", "v"))
	require.Equal(t, "v", st.Get("k"))

	require.NoError(t, st.Set("k", ""))
	require.Empty(t, st.Get("k"))
}

func TestMemory_GetMissingKey(t *testing.T) {
	st := NewMemory()
	require.Empty(t, st.Get("absent"))
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyAccessToken, "access-1"))
	require.NoError(t, st.Set(KeyThemeMode, "light"))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	require.Equal(t, "access-1", reopened.Get(KeyAccessToken))
	require.Equal(t, "light", reopened.Get(KeyThemeMode))
}

func TestFile_DeleteRemovesKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyAccessToken, "access-1"))
	require.NoError(t, st.Delete(KeyAccessToken))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	require.Empty(t, reopened.Get(KeyAccessToken))
}

func TestFile_SetEmptyDeletes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, st.Set(KeyRefreshToken, "refresh-1"))
	require.NoError(t, st.Set(KeyRefreshToken, ""))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(raw, &m))
	require.NotContains(t, m, KeyRefreshToken)
}

func TestFile_CreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("k", "v"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFile_RejectsCorruptedState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := OpenFile(path)
	require.Error(t, err)
}

func TestFile_NoLeftoverTempFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("k", "v"))

	_, err = os.Stat(path + ".tmp")
	require.True(t, os.IsNotExist(err))
}
