package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/cryptox"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func setupStorage(t *testing.T) *Storage {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)

	key := cryptox.DeriveStorageKey([]byte("test-secret"), []byte("test-salt"))
	return New(db, key)
}

// ---- TESTS ----

func TestStorage_TokenRoundTrip(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	// absent tokens read back as empty strings
	tok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	require.NoError(t, s.SetAccessToken(ctx, "at-1"))
	require.NoError(t, s.SetRefreshToken(ctx, "rt-1"))

	tok, err = s.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "at-1", tok)

	tok, err = s.RefreshToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "rt-1", tok)
}

func TestStorage_TokensSealedOnDisk(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetAccessToken(ctx, "super-secret-token"))

	raw, err := s.repo.Get(ctx, common.KeyAccessToken)
	require.NoError(t, err)
	require.NotContains(t, string(raw), "super-secret-token")
}

func TestStorage_SetOverwrites(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetAccessToken(ctx, "old"))
	require.NoError(t, s.SetAccessToken(ctx, "new"))

	tok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", tok)
}

func TestStorage_ClearAuth(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetAccessToken(ctx, "at"))
	require.NoError(t, s.SetRefreshToken(ctx, "rt"))
	require.NoError(t, s.SaveSnapshot(ctx, common.KeySession, map[string]any{"isAuthenticated": true}))
	require.NoError(t, s.SaveSnapshot(ctx, common.KeyCart, map[string]any{"items": []any{}}))

	require.NoError(t, s.ClearAuth(ctx))

	tok, err := s.AccessToken(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	tok, err = s.RefreshToken(ctx)
	require.NoError(t, err)
	require.Empty(t, tok)

	var v map[string]any
	found, err := s.LoadSnapshot(ctx, common.KeySession, &v)
	require.NoError(t, err)
	require.False(t, found)

	// cart snapshot is not auth data and must survive
	found, err = s.LoadSnapshot(ctx, common.KeyCart, &v)
	require.NoError(t, err)
	require.True(t, found)
}

func TestStorage_SnapshotRoundTrip(t *testing.T) {
	s := setupStorage(t)
	ctx := context.Background()

	type snap struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	var missing snap
	found, err := s.LoadSnapshot(ctx, common.KeyCart, &missing)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, s.SaveSnapshot(ctx, common.KeyCart, snap{Name: "a", Count: 2}))

	var got snap
	found, err = s.LoadSnapshot(ctx, common.KeyCart, &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, snap{Name: "a", Count: 2}, got)

	require.NoError(t, s.DeleteSnapshot(ctx, common.KeyCart))
	found, err = s.LoadSnapshot(ctx, common.KeyCart, &got)
	require.NoError(t, err)
	require.False(t, found)
}

func TestOpen_CreatesAndMigrates(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.SetAccessToken(ctx, "at"))
	require.FileExists(t, filepath.Join(dir, "hygieia.db"))
	require.FileExists(t, filepath.Join(dir, "device.key"))
}

func TestOpen_ReusesDeviceKey(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := Open(ctx, dir)
	require.NoError(t, err)
	require.NoError(t, s1.SetAccessToken(ctx, "persisted"))
	require.NoError(t, s1.Close())

	// reopening with the same dir must be able to unseal previous values
	s2, err := Open(ctx, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s2.Close() })

	tok, err := s2.AccessToken(ctx)
	require.NoError(t, err)
	require.Equal(t, "persisted", tok)
}
