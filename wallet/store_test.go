package wallet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := NewFileStore(path)

	_, ok := store.Load()
	require.False(t, ok)

	rec := Record{ID: "metamask", Address: "0x00000000000000000000000000000000000000aa", Network: "ETH", NetworkType: "ETH"}
	require.NoError(t, store.Save(rec))

	got, ok := store.Load()
	require.True(t, ok)
	require.Equal(t, rec, got)

	require.NoError(t, store.Clear())
	_, ok = store.Load()
	require.False(t, ok)
}

func TestFileStoreCorruptRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

	_, ok := NewFileStore(path).Load()
	require.False(t, ok)
}

func TestFileStoreClearMissing(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, store.Clear())
}

func TestFileStoreFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(Record{ID: "keyfile", Address: "0xabc", Network: "ETH", NetworkType: "ETH"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	for _, key := range []string{`"id"`, `"address"`, `"network"`, `"networkType"`} {
		require.Contains(t, string(data), key)
	}
}
