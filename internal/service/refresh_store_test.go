package service

import (
	"context"
	"testing"
	"time"

	"manager_system/internal/model"
	"manager_system/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshStore_SetMatchClear(t *testing.T) {
	repo := newMemUserRepo(model.User{ID: "user-1", Email: "a@x.com"})
	store := NewRefreshStore(repo)
	ctx := context.Background()

	none := repo.get("user-1")
	assert.False(t, store.MatchesCurrent(&none, "anything"), "no stored hash must fail closed")
	assert.False(t, store.MatchesCurrent(nil, "anything"))

	require.NoError(t, store.SetCurrent(ctx, "user-1", "token-a"))
	current := repo.get("user-1")
	assert.True(t, store.MatchesCurrent(&current, "token-a"))
	assert.False(t, store.MatchesCurrent(&current, "token-b"))
	assert.False(t, store.MatchesCurrent(&current, ""))

	require.NoError(t, store.SetCurrent(ctx, "user-1", "token-b"))
	current = repo.get("user-1")
	assert.False(t, store.MatchesCurrent(&current, "token-a"), "a new token replaces the old one")
	assert.True(t, store.MatchesCurrent(&current, "token-b"))

	require.NoError(t, store.Clear(ctx, "user-1"))
	current = repo.get("user-1")
	assert.False(t, store.MatchesCurrent(&current, "token-b"))

	assert.ErrorIs(t, store.SetCurrent(ctx, "ghost", "token"), ErrNotFound)
}

func TestRefreshStore_Rotate(t *testing.T) {
	repo := newMemUserRepo(model.User{ID: "user-1", Email: "a@x.com"})
	store := NewRefreshStore(repo)
	ctx := context.Background()

	require.NoError(t, store.SetCurrent(ctx, "user-1", "token-a"))
	expected := *repo.get("user-1").RefreshTokenHash

	require.NoError(t, store.Rotate(ctx, "user-1", expected, "token-b"))
	current := repo.get("user-1")
	assert.True(t, store.MatchesCurrent(&current, "token-b"))

	assert.ErrorIs(t, store.Rotate(ctx, "user-1", expected, "token-c"), ErrTokenInvalid)
}

func TestRefreshStore_SignedTokens(t *testing.T) {
	user := model.User{ID: "user-1", Email: "a@x.com", Role: model.RoleUser, CompanyID: "company-1"}
	repo := newMemUserRepo(user)
	store := NewRefreshStore(repo)
	jwtUtil := utils.NewJWTUtil("access-secret", "refresh-secret", time.Minute, time.Hour)
	ctx := context.Background()

	first, err := jwtUtil.IssuePair(model.IdentityOf(&user))
	require.NoError(t, err)
	second, err := jwtUtil.IssuePair(model.IdentityOf(&user))
	require.NoError(t, err)
	require.Greater(t, len(first.RefreshToken), 72)
	require.Equal(t, first.RefreshToken[:40], second.RefreshToken[:40], "same header and leading claims")

	require.NoError(t, store.SetCurrent(ctx, "user-1", first.RefreshToken))
	current := repo.get("user-1")
	assert.True(t, store.MatchesCurrent(&current, first.RefreshToken))
	assert.False(t, store.MatchesCurrent(&current, second.RefreshToken))

	require.NoError(t, store.Rotate(ctx, "user-1", *current.RefreshTokenHash, second.RefreshToken))
	current = repo.get("user-1")
	assert.False(t, store.MatchesCurrent(&current, first.RefreshToken))
	assert.True(t, store.MatchesCurrent(&current, second.RefreshToken))
}
