package config

import (
	"os"
	"strings"
	"time"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string
	GinMode        string
	AllowedOrigins []string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadServerConfig loads server settings from the environment.
func LoadServerConfig() (*ServerConfig, error) {
	timeout, err := durationEnv("REQUEST_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	cfg := &ServerConfig{
		Port:           getEnv("SERVER_PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: timeout,
	}
	for _, origin := range strings.Split(getEnv("ALLOWED_ORIGINS", ""), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	return cfg, nil
}

// OriginAllowed reports whether origin may call the API. An empty list
// allows every origin.
func (c *ServerConfig) OriginAllowed(origin string) bool {
	if len(c.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	return false
}

// SeedConfig names the default company and its SUPER_ADMIN.
type SeedConfig struct {
	CompanyName   string
	CompanyEmail  string
	AdminEmail    string
	AdminPassword string
}

// LoadSeedConfig reads the SEED_* variables.
func LoadSeedConfig() *SeedConfig {
	return &SeedConfig{
		CompanyName:   getEnv("SEED_COMPANY_NAME", "ms"),
		CompanyEmail:  getEnv("SEED_COMPANY_EMAIL", ""),
		AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
		AdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}
}
