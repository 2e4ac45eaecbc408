package archive_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aximo-works/boardwatch/internal/archive"
)

func TestStoreRoundTrip(t *testing.T) {
	kv := archive.NewMemory()

	s, err := archive.NewStore(kv)
	require.NoError(t, err)

	require.NoError(t, s.Archive("t2"))
	require.NoError(t, s.Archive("t1"))
	require.NoError(t, s.Archive("t1")) // idempotent

	assert.True(t, s.Has("t1"))
	assert.False(t, s.Has("t3"))
	assert.Equal(t, []string{"t1", "t2"}, s.IDs())

	// A fresh store over the same KV sees the persisted set.
	s2, err := archive.NewStore(kv)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, s2.IDs())

	require.NoError(t, s2.Unarchive("t1"))
	require.NoError(t, s2.Unarchive("missing")) // no-op

	s3, err := archive.NewStore(kv)
	require.NoError(t, err)
	assert.Equal(t, []string{"t2"}, s3.IDs())
}

func TestStoreCorruptRecordResetsToEmpty(t *testing.T) {
	kv := archive.NewMemory()
	require.NoError(t, kv.Set(archive.StorageKey, []byte("{not json")))

	s, err := archive.NewStore(kv)
	require.NoError(t, err)
	assert.Empty(t, s.IDs())

	// The reset was persisted: the raw record is now a valid empty list.
	data, found, err := kv.Get(archive.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, "[]", string(data))
}

func TestFileKV(t *testing.T) {
	dir := t.TempDir()
	kv := archive.NewFile(dir)

	_, found, err := kv.Get(archive.StorageKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(archive.StorageKey, []byte(`["t1"]`)))

	data, found, err := kv.Get(archive.StorageKey)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `["t1"]`, string(data))

	// The value lives in a file the next process can find.
	_, err = os.Stat(filepath.Join(dir, archive.StorageKey+".json"))
	assert.NoError(t, err)
}

func TestStoreReloadPicksUpExternalChange(t *testing.T) {
	kv := archive.NewMemory()
	s, err := archive.NewStore(kv)
	require.NoError(t, err)

	require.NoError(t, kv.Set(archive.StorageKey, []byte(`["t9"]`)))
	require.NoError(t, s.Reload())
	assert.True(t, s.Has("t9"))
}
