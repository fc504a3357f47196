package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vbonduro/fishedex/internal/domain"
	"github.com/vbonduro/fishedex/internal/store"
)

func TestUserService(t *testing.T) {
	svc := NewUserService(store.NewUserStore(openTestDB(t)), testLogger())
	ctx := context.Background()

	u, err := svc.CreateUser(ctx, "angler", "angler@example.com")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "angler", got.Username)

	_, err = svc.GetUser(ctx, u.ID+1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.CreateUser(ctx, "angler", "other@example.com")
	assert.ErrorIs(t, err, domain.ErrConstraint)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
