package service

import (
	"context"
	"errors"
	"fmt"

	"manager_system/internal/model"
	"manager_system/internal/repository"
	"manager_system/internal/utils"
)

// RefreshStore keeps a bcrypt hash of the one refresh token each user may
// currently present. The token itself is never persisted.
type RefreshStore struct {
	users repository.UserRepository
}

// NewRefreshStore creates a RefreshStore backed by the users table.
func NewRefreshStore(users repository.UserRepository) *RefreshStore {
	return &RefreshStore{users: users}
}

// SetCurrent makes token the sole valid refresh token for userID.
func (s *RefreshStore) SetCurrent(ctx context.Context, userID, token string) error {
	hash, err := utils.HashToken(token)
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %w", err)
	}
	if err := s.users.UpdateRefreshHash(ctx, userID, &hash); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// MatchesCurrent reports whether token matches the hash stored on the
// credential record. It fails closed when no session exists.
func (s *RefreshStore) MatchesCurrent(user *model.User, token string) bool {
	if user == nil || user.RefreshTokenHash == nil || token == "" {
		return false
	}
	return utils.CheckTokenHash(token, *user.RefreshTokenHash)
}

// Rotate replaces expectedHash with a hash of next. If another rotation got
// there first the call fails with ErrTokenInvalid.
func (s *RefreshStore) Rotate(ctx context.Context, userID, expectedHash, next string) error {
	hash, err := utils.HashToken(next)
	if err != nil {
		return fmt.Errorf("failed to hash refresh token: %w", err)
	}
	swapped, err := s.users.SwapRefreshHash(ctx, userID, expectedHash, hash)
	if err != nil {
		return err
	}
	if !swapped {
		return ErrTokenInvalid
	}
	return nil
}

// Clear ends the session of userID.
func (s *RefreshStore) Clear(ctx context.Context, userID string) error {
	if err := s.users.UpdateRefreshHash(ctx, userID, nil); err != nil {
		return mapRepoErr(err)
	}
	return nil
}

// mapRepoErr translates repository sentinels into service errors and
// leaves everything else wrapped as is.
func mapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrAlreadyExists
	}
	return err
}
