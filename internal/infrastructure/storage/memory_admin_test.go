package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimyagariii/supermarket/internal/domain/entity"
)

func TestAdminSessionLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAdminRepository()

	isAdmin, err := repo.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.False(t, isAdmin)

	require.NoError(t, repo.CreateSession(ctx, entity.AdminSession{
		UserID:    42,
		IsAdmin:   true,
		LoginTime: time.Now(),
	}))

	isAdmin, err = repo.IsAdmin(ctx, 42)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	session, err := repo.GetSession(ctx, 42)
	require.NoError(t, err)
	assert.True(t, session.IsAdmin)

	require.NoError(t, repo.DeleteSession(ctx, 42))
	isAdmin, _ = repo.IsAdmin(ctx, 42)
	assert.False(t, isAdmin)

	_, err = repo.GetSession(ctx, 42)
	assert.Error(t, err)
}

func TestRecentActionsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAdminRepository()

	for i, name := range []string{"login", "add_product", "export_catalog"} {
		require.NoError(t, repo.LogAction(ctx, entity.AdminAction{
			ID:        name,
			UserID:    42,
			Action:    name,
			Timestamp: time.Now().Add(time.Duration(i) * time.Second),
		}))
	}

	actions, err := repo.RecentActions(ctx, 2)
	require.NoError(t, err)
	require.Len(t, actions, 2)

	// Yangi birinchi
	assert.Equal(t, "export_catalog", actions[0].Action)
	assert.Equal(t, "add_product", actions[1].Action)

	all, err := repo.RecentActions(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
