package utils

import (
	"errors"
	"fmt"
	"time"

	"manager_system/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrTokenExpired     = errors.New("token expired")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenMalformed   = errors.New("malformed token")
)

// JWTClaims custom claims for JWT
type JWTClaims struct {
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CompanyID string     `json:"company_id"`
	BranchID  *string    `json:"branch_id,omitempty"`
	jwt.RegisteredClaims
}

// Identity returns the actor encoded in the claims.
func (c *JWTClaims) Identity() model.Identity {
	return model.Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		Role:      c.Role,
		CompanyID: c.CompanyID,
		BranchID:  c.BranchID,
	}
}

// IssueToken signs an HS256 token for identity that expires after ttl.
// A zero or negative ttl produces a token that is already expired.
func IssueToken(identity model.Identity, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Email:     identity.Email,
		Role:      identity.Role,
		CompanyID: identity.CompanyID,
		BranchID:  identity.BranchID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// VerifyToken checks signature and expiry and returns the claims.
// Failures are reported as ErrTokenExpired, ErrInvalidSignature or ErrTokenMalformed.
func VerifyToken(tokenString, secret string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		default:
			return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
		}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// JWTUtil issues and verifies access/refresh tokens with independent
// secrets and lifetimes.
type JWTUtil struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// NewJWTUtil creates a new JWTUtil
func NewJWTUtil(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTUtil {
	return &JWTUtil{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssuePair signs an access and a refresh token from the same identity.
func (ju *JWTUtil) IssuePair(identity model.Identity) (*model.TokenPair, error) {
	var pair model.TokenPair
	var g errgroup.Group
	g.Go(func() error {
		t, err := IssueToken(identity, ju.accessSecret, ju.accessTTL)
		if err != nil {
			return fmt.Errorf("access token: %w", err)
		}
		pair.AccessToken = t
		return nil
	})
	g.Go(func() error {
		t, err := IssueToken(identity, ju.refreshSecret, ju.refreshTTL)
		if err != nil {
			return fmt.Errorf("refresh token: %w", err)
		}
		pair.RefreshToken = t
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &pair, nil
}

// VerifyAccess validates a token signed with the access secret.
func (ju *JWTUtil) VerifyAccess(tokenString string) (*JWTClaims, error) {
	return VerifyToken(tokenString, ju.accessSecret)
}

// VerifyRefresh validates a token signed with the refresh secret.
func (ju *JWTUtil) VerifyRefresh(tokenString string) (*JWTClaims, error) {
	return VerifyToken(tokenString, ju.refreshSecret)
}
