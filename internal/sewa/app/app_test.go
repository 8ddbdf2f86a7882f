package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	dir := t.TempDir()
	return &Config{
		Env:      "test",
		Log:      LogConfig{Level: "error", Format: "text"},
		Server:   ServerConfig{Port: 0, ShutdownGrace: time.Second, CookieName: "sewa_session"},
		Database: DatabaseConfig{Driver: "sqlite", File: filepath.Join(dir, "db", "sewa.db"), Timeout: time.Second},
		Security: SecurityConfig{PepperFile: filepath.Join(dir, "pepper"), HashAlgorithm: "bcrypt", BcryptCost: 4},
		JWT:      JWTConfig{Algorithm: "HS256", Secret: testSecret, Issuer: "sewa-test", TTL: time.Hour},
		SMTP:     SMTPConfig{From: "no-reply@mysewa.test", Timeout: time.Second},
		Metrics:  MetricsConfig{Enabled: true},
		RateLimit: RateLimitConfig{
			Strict: LimitConfig{Requests: 100, Window: time.Minute, Burst: 100},
			Route:  LimitConfig{Requests: 100, Window: time.Minute, Burst: 100},
			Public: LimitConfig{Requests: 100, Window: time.Minute, Burst: 100},
		},
		FrontendBaseURL: "http://localhost:3000",
	}
}

func get(t *testing.T, srv *httptest.Server, path string) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp.StatusCode
}

func TestNewServesHealthAndMetrics(t *testing.T) {
	cfg := testConfig(t)

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	_, err = os.Stat(cfg.Database.File)
	require.NoError(t, err, "sqlite file should be created under a fresh directory")

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	require.Equal(t, http.StatusOK, get(t, srv, "/livez"))
	require.Equal(t, http.StatusOK, get(t, srv, "/readyz"))
	require.Equal(t, http.StatusOK, get(t, srv, "/metrics"))
	require.Equal(t, http.StatusUnauthorized, get(t, srv, "/v1/auth/me"))
}

func TestNewWithoutMetrics(t *testing.T) {
	cfg := testConfig(t)
	cfg.Metrics.Enabled = false

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	srv := httptest.NewServer(application.Handler())
	defer srv.Close()

	require.Equal(t, http.StatusNotFound, get(t, srv, "/metrics"))
}

func TestNewEdDSACreatesKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.JWT = JWTConfig{
		Algorithm: "EdDSA",
		KeyFile:   filepath.Join(t.TempDir(), "keys", "jwt.pem"),
		Issuer:    "sewa-test",
		TTL:       time.Hour,
	}

	application, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = application.Shutdown() })

	key, err := os.ReadFile(cfg.JWT.KeyFile)
	require.NoError(t, err)
	require.Contains(t, string(key), "PRIVATE KEY")
	require.Equal(t, "EdDSA", application.sessionService.Signer.Alg())
}

func TestNewHousekeepingOnlyWhenScheduled(t *testing.T) {
	cfg := testConfig(t)
	application, err := New(cfg)
	require.NoError(t, err)
	require.Nil(t, application.housekeepingService)
	require.NoError(t, application.Shutdown())

	cfg = testConfig(t)
	cfg.Housekeeping.Schedule = "@every 1h"
	application, err = New(cfg)
	require.NoError(t, err)
	require.NotNil(t, application.housekeepingService)
	require.NoError(t, application.housekeepingService.Start())
	require.NoError(t, application.Shutdown())
}

func TestNewRejectsBadSMTP(t *testing.T) {
	cfg := testConfig(t)
	cfg.SMTP.Enabled = true

	_, err := New(cfg)
	require.ErrorContains(t, err, "smtp")
}
