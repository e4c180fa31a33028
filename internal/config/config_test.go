package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"manager_system/internal/logging"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTTL(t *testing.T) {
	cases := map[string]time.Duration{
		"15m":  15 * time.Minute,
		"2h":   2 * time.Hour,
		"900":  900 * time.Second,
		"7d":   7 * 24 * time.Hour,
		" 1d ": 24 * time.Hour,
	}
	for in, want := range cases {
		got, err := ParseTTL(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"", "abc", "0", "-5", "0d", "xd", "-1m"} {
		_, err := ParseTTL(in)
		assert.Error(t, err, in)
	}
}

func TestLoadAuthConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "access")
	t.Setenv("RT_SECRET", "refresh")
	t.Setenv("JWT_EXPIRE", "")
	t.Setenv("RT_EXPIRE", "")

	cfg, err := LoadAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultAccessTTL, cfg.AccessTTL)
	assert.Equal(t, defaultRefreshTTL, cfg.RefreshTTL)

	t.Setenv("JWT_EXPIRE", "60")
	t.Setenv("RT_EXPIRE", "30d")
	cfg, err = LoadAuthConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.AccessTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTTL)

	t.Setenv("RT_EXPIRE", "soon")
	_, err = LoadAuthConfig()
	assert.ErrorContains(t, err, "RT_EXPIRE")
}

func TestLoadAuthConfig_Secrets(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("RT_SECRET", "refresh")
	_, err := LoadAuthConfig()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "same")
	t.Setenv("RT_SECRET", "same")
	_, err = LoadAuthConfig()
	assert.ErrorContains(t, err, "must be different")
}

func TestLoadDBConfig(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "ms")
	t.Setenv("DB_SSLMODE", "")

	cfg, err := LoadDBConfig()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=ms sslmode=disable", cfg.DSN)

	t.Setenv("DB_SSLMODE", "require")
	cfg, err = LoadDBConfig()
	require.NoError(t, err)
	assert.Contains(t, cfg.DSN, "sslmode=require")

	t.Setenv("DB_HOST", "")
	_, err = LoadDBConfig()
	assert.Error(t, err)
}

func TestLoadServerConfig(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("GIN_MODE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("ALLOWED_ORIGINS", "")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.OriginAllowed("https://anything.example"))

	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com ,")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	cfg, err = LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.OriginAllowed("https://admin.example.com"))
	assert.False(t, cfg.OriginAllowed("https://evil.example.com"))

	t.Setenv("REQUEST_TIMEOUT", "forever")
	_, err = LoadServerConfig()
	assert.Error(t, err)
}

func TestLoadSeedConfig(t *testing.T) {
	t.Setenv("SEED_COMPANY_NAME", "")
	t.Setenv("SEED_ADMIN_EMAIL", "root@ms.com")
	t.Setenv("SEED_ADMIN_PASSWORD", " spaced ")

	cfg := LoadSeedConfig()
	assert.Equal(t, "ms", cfg.CompanyName)
	assert.Equal(t, "root@ms.com", cfg.AdminEmail)
	assert.Equal(t, " spaced ", cfg.AdminPassword)
}

func TestAutoMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS companies").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, AutoMigrate(context.Background(), mock, logging.Discard()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAutoMigrate_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))

	err = AutoMigrate(context.Background(), mock, logging.Discard())
	assert.ErrorContains(t, err, "unable to apply migrations")
}
