package sessionstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newswave/internal/domain/entity"
	"newswave/internal/infra/sessionstore"
)

func TestMemory_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemory()

	assert.True(t, store.Load(ctx).IsZero())

	s := entity.Session{Role: entity.RoleSubscriber, UserID: 5, UserName: "Ada"}
	require.NoError(t, store.Save(ctx, s))
	assert.Equal(t, s, store.Load(ctx))

	require.NoError(t, store.Clear(ctx))
	assert.True(t, store.Load(ctx).IsZero())
}

func TestMemory_RejectsIncompleteSession(t *testing.T) {
	ctx := context.Background()
	store := sessionstore.NewMemory()

	err := store.Save(ctx, entity.Session{Role: entity.RolePublisher, UserID: 1})
	require.Error(t, err)
	assert.True(t, entity.IsValidation(err))
	assert.True(t, store.Load(ctx).IsZero())
}
