package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"manager_system/internal/model"
	"manager_system/internal/repository"
	"manager_system/internal/utils"
)

// AuthService provides authentication related services
type AuthService interface {
	Login(ctx context.Context, email, password string) (*model.TokenPair, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*model.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type authService struct {
	userRepo repository.UserRepository
	refresh  *RefreshStore
	jwtUtil  *utils.JWTUtil
	locks    *keyedMutex
	logger   *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepository, refresh *RefreshStore, jwtUtil *utils.JWTUtil, logger *slog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		refresh:  refresh,
		jwtUtil:  jwtUtil,
		locks:    newKeyedMutex(),
		logger:   logger.With("component", "auth"),
	}
}

// dummyHash is compared against when the email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash = sync.OnceValue(func() string {
	h, _ := utils.HashPassword("manager-system-placeholder")
	return h
})

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login verifies the credentials and starts a new session. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.TokenPair, error) {
	user, err := s.userRepo.FindCredentialByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	if user == nil {
		utils.CheckPasswordHash(password, dummyHash())
		s.logger.Warn("login rejected", "reason", "unknown email")
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.logger.Warn("login rejected", "reason", "password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtUtil.IssuePair(model.IdentityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.refresh.SetCurrent(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.logger.Info("login succeeded", "user_id", user.ID, "company_id", user.CompanyID)
	return pair, nil
}

// Refresh exchanges the current refresh token for a new pair. The
// presented token stops working as soon as this returns successfully.
func (s *authService) Refresh(ctx context.Context, userID, refreshToken string) (*model.TokenPair, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.userRepo.FindCredentialByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error finding user by ID: %w", err)
	}
	if user == nil || user.RefreshTokenHash == nil {
		s.logger.Warn("refresh rejected", "reason", "no active session", "user_id", userID)
		return nil, ErrAccessDenied
	}
	expectedHash := *user.RefreshTokenHash

	if !s.refresh.MatchesCurrent(user, refreshToken) {
		s.logger.Warn("refresh rejected", "reason", "token not current", "user_id", userID)
		return nil, ErrTokenInvalid
	}

	claims, err := s.jwtUtil.VerifyRefresh(refreshToken)
	if err != nil {
		s.logger.Warn("refresh rejected", "reason", err.Error(), "user_id", userID)
		return nil, err
	}
	if claims.Subject != user.ID {
		s.logger.Warn("refresh rejected", "reason", "subject mismatch", "user_id", userID)
		return nil, ErrTokenInvalid
	}

	// Role and company come from the record so a promotion or demotion
	// takes effect on the next refresh.
	pair, err := s.jwtUtil.IssuePair(model.IdentityOf(user))
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.refresh.Rotate(ctx, user.ID, expectedHash, pair.RefreshToken); err != nil {
		if errors.Is(err, ErrTokenInvalid) {
			s.logger.Warn("refresh rejected", "reason", "concurrent rotation", "user_id", userID)
			return nil, err
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return pair, nil
}

// Logout clears the stored refresh hash. Outstanding access tokens stay
// valid until they expire.
func (s *authService) Logout(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.refresh.Clear(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	s.logger.Info("logout", "user_id", userID)
	return nil
}
