package session

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/YelzhanWeb/tableorder/internal/adapter/kv"
	"github.com/YelzhanWeb/tableorder/internal/adapter/logger"
	"github.com/YelzhanWeb/tableorder/internal/adapter/memory"
	"github.com/YelzhanWeb/tableorder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = logger.NewWithWriter("test", "error", io.Discard)

func newService(store *memory.Store, delay time.Duration) *Service {
	return NewService(kv.NewSessionRepository(store), quiet, "admin123", delay)
}

func TestValidateTable(t *testing.T) {
	svc := newService(memory.NewStore(), 0)

	tests := []struct {
		code  string
		valid bool
	}{
		{"T101", true},
		{"T1", true},
		{"t101", false},
		{"T", false},
		{"T10a", false},
		{"101", false},
		{" T101", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			check := svc.ValidateTable(context.Background(), tt.code)
			assert.Equal(t, tt.valid, check.Valid)
			if tt.valid {
				assert.Equal(t, msgTableValid, check.Message)
			} else {
				assert.Equal(t, msgTableInvalid, check.Message)
			}
		})
	}
}

func TestValidateTableCancelled(t *testing.T) {
	svc := newService(memory.NewStore(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.False(t, svc.ValidateTable(ctx, "T101").Valid)
}

func TestSetTable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, 0)

	table, err := svc.Table(ctx)
	require.NoError(t, err)
	assert.Empty(t, table)

	require.NoError(t, svc.SetTable(ctx, " T102 "))

	err = svc.SetTable(ctx, "table 7")
	assert.ErrorIs(t, err, domain.ErrValidation)

	// survives a restart
	table, err = newService(store, 0).Table(ctx)
	require.NoError(t, err)
	assert.Equal(t, "T102", table)

	raw, ok, err := store.Read(ctx, kv.KeyTableNumber)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "T102", string(raw))
}

func TestStaffLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := newService(store, 0)

	err := svc.Login(ctx, "guess")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	in, err := svc.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)

	require.NoError(t, svc.Login(ctx, "admin123"))
	in, err = newService(store, 0).LoggedIn(ctx)
	require.NoError(t, err)
	assert.True(t, in)

	require.NoError(t, svc.Logout(ctx))
	in, err = svc.LoggedIn(ctx)
	require.NoError(t, err)
	assert.False(t, in)

	_, ok, err := store.Read(ctx, kv.KeyStaffLoggedIn)
	require.NoError(t, err)
	assert.False(t, ok)
}
