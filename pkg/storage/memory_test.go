package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStorage()

	_, err := m.Read(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Write(ctx, []byte(`[{"x":1}]`)))
	data, err := m.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"x":1}]`), data)

	t.Run("reads are copies", func(t *testing.T) {
		data[0] = '!'
		again, err := m.Read(ctx)
		require.NoError(t, err)
		assert.Equal(t, byte('['), again[0])
	})

	t.Run("empty value round-trips distinct from missing", func(t *testing.T) {
		require.NoError(t, m.Write(ctx, nil))
		data, err := m.Read(ctx)
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("purge removes the value", func(t *testing.T) {
		require.NoError(t, m.Purge(ctx))
		_, err := m.Read(ctx)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	assert.True(t, m.Available())
	assert.NoError(t, m.Close())
}

func TestNilRedisStorageIsSafe(t *testing.T) {
	var r *RedisStorage
	ctx := context.Background()

	assert.False(t, r.Available())
	_, err := r.Read(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, r.Write(ctx, []byte("x")))
	assert.NoError(t, r.Purge(ctx))
	assert.NoError(t, r.Close())
}
