package app

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mysewa/sewa/pkg/httpx"
	"github.com/mysewa/sewa/pkg/jwtx"
	"github.com/spf13/viper"
)

// Config represents the runtime configuration for the sewa service.
type Config struct {
	Env string `mapstructure:"env"`

	Log          LogConfig          `mapstructure:"log"`
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Security     SecurityConfig     `mapstructure:"security"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	SMTP         SMTPConfig         `mapstructure:"smtp"`
	Housekeeping HousekeepingConfig `mapstructure:"housekeeping"`
	Metrics      MetricsConfig      `mapstructure:"metrics"`
	RateLimit    RateLimitConfig    `mapstructure:"ratelimit"`

	// FrontendBaseURL prefixes invitation links sent by email.
	FrontendBaseURL string `mapstructure:"frontend_base_url"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port          int           `mapstructure:"port"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
	CookieName    string        `mapstructure:"cookie_name"`
}

type DatabaseConfig struct {
	Driver  string        `mapstructure:"driver"`
	File    string        `mapstructure:"file"`
	DSN     string        `mapstructure:"dsn"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type SecurityConfig struct {
	PepperFile    string `mapstructure:"pepper_file"`
	HashAlgorithm string `mapstructure:"hash_algorithm"`
	BcryptCost    int    `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	// Algorithm is HS256 (Secret) or EdDSA (KeyFile, created on first start).
	Algorithm string        `mapstructure:"algorithm"`
	Secret    string        `mapstructure:"secret"`
	KeyFile   string        `mapstructure:"key_file"`
	Issuer    string        `mapstructure:"issuer"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// SMTPConfig configures outbound mail. When disabled, mail is written to
// the log instead.
type SMTPConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	From     string        `mapstructure:"from"`
	UseTLS   bool          `mapstructure:"use_tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type HousekeepingConfig struct {
	// Schedule is a cron spec for the expiry sweep. Empty disables it.
	Schedule string `mapstructure:"schedule"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig mirrors httpx.RateLimits so deployments (and e2e runs) can
// loosen or tighten each profile.
type RateLimitConfig struct {
	Strict LimitConfig `mapstructure:"strict"`
	Route  LimitConfig `mapstructure:"route"`
	Public LimitConfig `mapstructure:"public"`
}

type LimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
	Burst    int           `mapstructure:"burst"`
}

func (l LimitConfig) rateLimit() httpx.RateLimitConfig {
	return httpx.RateLimitConfig{RequestsPerWindow: l.Requests, Window: l.Window, Burst: l.Burst}
}

// Limits converts the configured profiles for the router.
func (r RateLimitConfig) Limits() httpx.RateLimits {
	return httpx.RateLimits{
		Strict: r.Strict.rateLimit(),
		Route:  r.Route.rateLimit(),
		Public: r.Public.rateLimit(),
	}
}

// IsProd reports whether the service runs in production mode.
func (c *Config) IsProd() bool {
	return strings.EqualFold(c.Env, "prod")
}

// LoadConfig reads config.yaml from ./config and any extra paths, then
// overlays SEWA_* environment variables. A missing file is not an error.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("SEWA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("frontend_base_url", "http://localhost:3000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_grace", "15s")
	v.SetDefault("server.cookie_name", "sewa_session")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file", "./data/sewa.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.timeout", "5s")

	v.SetDefault("security.pepper_file", "./data/pepper")
	v.SetDefault("security.hash_algorithm", "argon2id")
	v.SetDefault("security.bcrypt_cost", 12)

	v.SetDefault("jwt.algorithm", jwtx.AlgHS256)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.key_file", "./data/jwt_ed25519.pem")
	v.SetDefault("jwt.issuer", "sewa")
	v.SetDefault("jwt.ttl", jwtx.DefaultSessionTTL.String())

	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.password", "")
	v.SetDefault("smtp.from", "MySewa <no-reply@mysewa.local>")
	v.SetDefault("smtp.use_tls", true)
	v.SetDefault("smtp.timeout", "10s")

	v.SetDefault("housekeeping.schedule", "")

	v.SetDefault("metrics.enabled", true)

	limits := httpx.DefaultRateLimits()
	for name, l := range map[string]httpx.RateLimitConfig{
		"strict": limits.Strict,
		"route":  limits.Route,
		"public": limits.Public,
	} {
		v.SetDefault("ratelimit."+name+".requests", l.RequestsPerWindow)
		v.SetDefault("ratelimit."+name+".window", l.Window.String())
		v.SetDefault("ratelimit."+name+".burst", l.Burst)
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch {
	case strings.EqualFold(c.JWT.Algorithm, jwtx.AlgHS256):
		if len(c.JWT.Secret) < jwtx.MinHS256SecretLength {
			return fmt.Errorf("config: jwt.secret must be at least %d bytes", jwtx.MinHS256SecretLength)
		}
	case strings.EqualFold(c.JWT.Algorithm, jwtx.AlgEdDSA):
		if c.JWT.KeyFile == "" {
			return errors.New("config: jwt.key_file is required for EdDSA")
		}
	default:
		return fmt.Errorf("config: unknown jwt.algorithm %q", c.JWT.Algorithm)
	}
	if c.JWT.TTL <= 0 {
		return errors.New("config: jwt.ttl must be positive")
	}

	switch c.Database.Driver {
	case "sqlite":
		if c.Database.File == "" {
			return errors.New("config: database.file is required for sqlite")
		}
	case "postgres":
		if c.Database.DSN == "" {
			return errors.New("config: database.dsn is required for postgres")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q", c.Database.Driver)
	}

	switch c.Security.HashAlgorithm {
	case "argon2id", "bcrypt":
	default:
		return fmt.Errorf("config: unknown security.hash_algorithm %q", c.Security.HashAlgorithm)
	}

	u, err := url.Parse(c.FrontendBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: frontend_base_url %q is not an absolute URL", c.FrontendBaseURL)
	}

	if c.SMTP.Enabled && c.SMTP.Host == "" {
		return errors.New("config: smtp.host is required when smtp is enabled")
	}
	return nil
}
