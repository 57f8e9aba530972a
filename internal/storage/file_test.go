package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileKV_Contract(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestNewFileKV_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	kv, err := NewFileKV(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, kv.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewFileKV_EmptyDir(t *testing.T) {
	_, err := NewFileKV("")
	assert.Error(t, err)
}

func TestFileKV_FileLayout(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(context.Background(), "resumeData", []byte("{}")))

	data, err := os.ReadFile(filepath.Join(dir, "resumeData.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"", "..", "../escape", `a\b`} {
		assert.Error(t, kv.Set(ctx, key, []byte("x")), "key %q", key)
		_, err := kv.Get(ctx, key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestWriteFileAtomic_Mode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("data"), 0o600))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
