package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// AuthConfig holds the token secrets and lifetimes.
type AuthConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// LoadAuthConfig reads JWT_SECRET, RT_SECRET, JWT_EXPIRE and RT_EXPIRE.
// Both secrets are required and must differ so an access token can never
// pass as a refresh token.
func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		AccessSecret:  os.Getenv("JWT_SECRET"),
		RefreshSecret: os.Getenv("RT_SECRET"),
	}
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("token secrets not set (JWT_SECRET, RT_SECRET)")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("JWT_SECRET and RT_SECRET must be different")
	}

	var err error
	if cfg.AccessTTL, err = durationEnv("JWT_EXPIRE", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = durationEnv("RT_EXPIRE", defaultRefreshTTL); err != nil {
		return nil, err
	}
	return cfg, nil
}
