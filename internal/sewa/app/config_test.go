package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SEWA_JWT_SECRET", testSecret)

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.False(t, cfg.IsProd())
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 15*time.Second, cfg.Server.ShutdownGrace)
	require.Equal(t, "sewa_session", cfg.Server.CookieName)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, 5*time.Second, cfg.Database.Timeout)
	require.Equal(t, "argon2id", cfg.Security.HashAlgorithm)
	require.Equal(t, "HS256", cfg.JWT.Algorithm)
	require.Equal(t, 7*24*time.Hour, cfg.JWT.TTL)
	require.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	require.False(t, cfg.SMTP.Enabled)
	require.Empty(t, cfg.Housekeeping.Schedule)
	require.True(t, cfg.Metrics.Enabled)
	require.Equal(t, httpx.DefaultRateLimits(), cfg.RateLimit.Limits())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
env: prod
frontend_base_url: https://app.mysewa.com
server:
  port: 9090
  shutdown_grace: 30s
database:
  driver: postgres
  dsn: postgres://sewa:sewa@db:5432/sewa
jwt:
  secret: ` + testSecret + `
  issuer: sewa-prod
smtp:
  enabled: true
  host: smtp.example.com
  port: 465
housekeeping:
  schedule: "@every 15m"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.True(t, cfg.IsProd())
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, 30*time.Second, cfg.Server.ShutdownGrace)
	require.Equal(t, "postgres", cfg.Database.Driver)
	require.Equal(t, "postgres://sewa:sewa@db:5432/sewa", cfg.Database.DSN)
	require.Equal(t, "sewa-prod", cfg.JWT.Issuer)
	require.True(t, cfg.SMTP.Enabled)
	require.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	require.Equal(t, 465, cfg.SMTP.Port)
	require.Equal(t, "@every 15m", cfg.Housekeeping.Schedule)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 9090\n"), 0o600))

	t.Setenv("SEWA_JWT_SECRET", testSecret)
	t.Setenv("SEWA_SERVER_PORT", "7070")
	t.Setenv("SEWA_SECURITY_HASH_ALGORITHM", "bcrypt")
	t.Setenv("SEWA_HOUSEKEEPING_SCHEDULE", "@hourly")
	t.Setenv("SEWA_RATELIMIT_STRICT_REQUESTS", "1000")
	t.Setenv("SEWA_RATELIMIT_STRICT_WINDOW", "30s")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "bcrypt", cfg.Security.HashAlgorithm)
	require.Equal(t, "@hourly", cfg.Housekeeping.Schedule)
	require.Equal(t, 1000, cfg.RateLimit.Strict.Requests)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Strict.Window)
	require.Equal(t, 5, cfg.RateLimit.Strict.Burst)
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			FrontendBaseURL: "https://app.mysewa.com",
			Database:        DatabaseConfig{Driver: "sqlite", File: "sewa.db"},
			Security:        SecurityConfig{HashAlgorithm: "argon2id"},
			JWT:             JWTConfig{Algorithm: "HS256", Secret: testSecret, TTL: time.Hour},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"short secret", func(c *Config) { c.JWT.Secret = "short" }, "jwt.secret"},
		{"eddsa without key file", func(c *Config) { c.JWT.Algorithm = "EdDSA" }, "jwt.key_file"},
		{"unknown algorithm", func(c *Config) { c.JWT.Algorithm = "RS256" }, "jwt.algorithm"},
		{"zero ttl", func(c *Config) { c.JWT.TTL = 0 }, "jwt.ttl"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"postgres without dsn", func(c *Config) { c.Database.Driver = "postgres" }, "database.dsn"},
		{"sqlite without file", func(c *Config) { c.Database.File = "" }, "database.file"},
		{"unknown hasher", func(c *Config) { c.Security.HashAlgorithm = "md5" }, "hash_algorithm"},
		{"relative frontend url", func(c *Config) { c.FrontendBaseURL = "/invite" }, "frontend_base_url"},
		{"smtp without host", func(c *Config) { c.SMTP.Enabled = true }, "smtp.host"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("SEWA_JWT_SECRET", "")
	_, err := LoadConfig(t.TempDir())
	require.ErrorContains(t, err, "jwt.secret")
}
