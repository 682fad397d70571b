package credstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sauce1o9/Elementopia-Mobile/internal/common"
	"github.com/Sauce1o9/Elementopia-Mobile/internal/logging"
)

func TestOpen_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "data")

	st, closeFn, err := Open(ctx, dir, logging.Nop())
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, "abc123"))
	require.NoError(t, closeFn())

	for _, name := range []string{PlainDBFile, SecureDBFile, DeviceKeyFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
	}

	st, closeFn, err = Open(ctx, dir, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	primary, err := st.primary.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(primary))

	secondary, err := st.secondary.Get(ctx, common.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc123", string(secondary))
}

func TestOpen_ClearThenLoad(t *testing.T) {
	ctx := context.Background()

	st, closeFn, err := Open(ctx, t.TempDir(), logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, st.Save(ctx, "abc123"))
	require.NoError(t, st.Clear(ctx))
	require.NoError(t, st.Clear(ctx))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_PlainFileOnlyStillLoads(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	st, closeFn, err := Open(ctx, dir, logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = closeFn() })

	require.NoError(t, st.secondary.Set(ctx, common.TokenKey, []byte("legacy")))

	got, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "legacy", got)
}
