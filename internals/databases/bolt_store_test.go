package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func openTemp(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_GetPut(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	var out doc
	found, err := s.Get(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Put(ctx, "a", doc{Name: "x", Items: []string{"1", "2"}}))
	found, err = s.Get(ctx, "a", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "x", Items: []string{"1", "2"}}, out)

	require.NoError(t, s.Delete(ctx, "a"))
	found, err = s.Get(ctx, "a", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBoltStore_PutManyAndCorrupt(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.PutMany(ctx, map[string]any{"k1": 1, "k2": []int{2}}))
	var n int
	found, err := s.Get(ctx, "k1", &n)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 1, n)

	require.NoError(t, s.PutRaw("broken", []byte("{not json")))
	var d doc
	found, err = s.Get(ctx, "broken", &d)
	assert.True(t, found)
	assert.Error(t, err)

	assert.NoError(t, s.Ping(ctx))
	assert.Equal(t, "bolt", s.Driver())
}

func TestBoltStore_CancelledContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Put(ctx, "k", 1), context.Canceled)
}

func TestMapPGError(t *testing.T) {
	assert.NoError(t, mapPGError("op", nil))

	err := mapPGError("put", &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	err = mapPGError("put", &pgconn.PgError{Code: "23505", Message: "duplicate key"})
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "23505")

	err = mapPGError("get", context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	base := errors.New("boom")
	assert.ErrorIs(t, mapPGError("x", base), base)
}
