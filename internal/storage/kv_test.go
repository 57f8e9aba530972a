package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the shared KV contract against a backend.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "resumeData")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "resumeData", []byte(`{"a":1}`)))
	got, err := kv.Get(ctx, "resumeData")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	require.NoError(t, kv.Set(ctx, "resumeData", []byte(`{"a":2}`)))
	got, err = kv.Get(ctx, "resumeData")
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(got))

	require.NoError(t, kv.Delete(ctx, "resumeData"))
	_, err = kv.Get(ctx, "resumeData")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, kv.Delete(ctx, "resumeData"), "deleting a missing key is not an error")
}

func TestMemoryKV_Contract(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKV_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()

	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
