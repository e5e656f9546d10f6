package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/domain"
	"taskboard/internal/repository"
	"taskboard/internal/repository/memory"
)

func TestSessionLifecycle(t *testing.T) {
	kv := memory.NewKV()
	svc := NewSessionService(kv)
	ctx := context.Background()

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	user := domain.SessionUser{Name: "Alice", Email: "alice@x.com"}
	require.NoError(t, svc.Set(ctx, user))

	current, err = svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, user, *current)

	// The persisted record uses the fixed {name,email} layout.
	raw, ok, err := kv.Get(ctx, repository.KeyCurrentUser)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"Alice","email":"alice@x.com"}`, string(raw))

	require.NoError(t, svc.Clear(ctx))
	current, err = svc.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestSessionSetReplacesPrevious(t *testing.T) {
	svc := NewSessionService(memory.NewKV())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, domain.SessionUser{Name: "Alice", Email: "alice@x.com"}))
	require.NoError(t, svc.Set(ctx, domain.SessionUser{Name: "Bob", Email: "bob@x.com"}))

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "bob@x.com", current.Email)
}
