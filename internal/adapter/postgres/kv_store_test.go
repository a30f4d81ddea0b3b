package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDB emulates kv_store with a map, recognising the three statements the
// store issues.
type fakeDB struct {
	rows    map[string]string
	execErr error
	queries []string
}

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*string) = r.value
	return nil
}

type fakeTag int64

func (t fakeTag) RowsAffected() int64 { return int64(t) }

func newFakeDB() *fakeDB {
	return &fakeDB{rows: make(map[string]string)}
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) Row {
	db.queries = append(db.queries, sql)
	v, ok := db.rows[args[0].(string)]
	if !ok {
		return fakeRow{err: pgx.ErrNoRows}
	}
	return fakeRow{value: v}
}

func (db *fakeDB) Exec(_ context.Context, sql string, args ...any) (CommandTag, error) {
	db.queries = append(db.queries, sql)
	if db.execErr != nil {
		return fakeTag(0), db.execErr
	}

	switch {
	case strings.Contains(sql, "INSERT INTO kv_store"):
		db.rows[args[0].(string)] = args[1].(string)
	case strings.Contains(sql, "DELETE FROM kv_store"):
		delete(db.rows, args[0].(string))
	}
	return fakeTag(1), nil
}

func (db *fakeDB) Close() {}

func TestKeyValueStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := newFakeDB()
	store := NewKeyValueStore(db)

	require.NoError(t, store.EnsureSchema(ctx))
	assert.Contains(t, db.queries[0], "CREATE TABLE IF NOT EXISTS kv_store")

	_, ok, err := store.Read(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Write(ctx, "orders", []byte(`[{"id":"ORD-1"}]`)))
	got, ok, err := store.Read(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"ORD-1"}]`, string(got))

	require.NoError(t, store.Delete(ctx, "orders"))
	_, ok, err = store.Read(ctx, "orders")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyValueStoreWrapsErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	db := newFakeDB()
	db.execErr = boom
	store := NewKeyValueStore(db)

	err := store.Write(ctx, "cart", []byte(`[]`))
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "cart")

	assert.ErrorIs(t, store.EnsureSchema(ctx), boom)
}
