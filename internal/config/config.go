package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAppName          = "FinanceTracker"
	defaultAppEnv           = "development"
	defaultPort             = "5000"
	defaultLogLevel         = "info"
	defaultLogFormat        = "json"
	defaultShutdownDelay    = 10 * time.Second
	defaultIdempotencyTTL   = 24 * time.Hour
	defaultTokenTTL         = time.Hour
	defaultLoginMaxAttempts = 5
	defaultLoginWindow      = 15 * time.Minute
	defaultBcryptCost       = 10
	defaultCORSOrigins      = "*"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	LogFormat      string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration
	CORSOrigins    string

	// JWTSecret has no default. An empty value fails Load.
	JWTSecret string
	TokenTTL  time.Duration

	LoginMaxAttempts int
	LoginWindow      time.Duration
	BcryptCost       int

	// UnifyLoginErrors reports unknown emails as invalid credentials so the
	// login endpoint cannot be used to enumerate accounts.
	UnifyLoginErrors bool
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", defaultAppName)
	v.SetDefault("APP_ENV", defaultAppEnv)
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("LOG_FORMAT", defaultLogFormat)
	v.SetDefault("SHUTDOWN_TIMEOUT", defaultShutdownDelay)
	v.SetDefault("IDEMPOTENCY_TTL", defaultIdempotencyTTL)
	v.SetDefault("TOKEN_TTL", defaultTokenTTL)
	v.SetDefault("LOGIN_RATE_LIMIT_MAX", defaultLoginMaxAttempts)
	v.SetDefault("LOGIN_RATE_LIMIT_WINDOW", defaultLoginWindow)
	v.SetDefault("BCRYPT_COST", defaultBcryptCost)
	v.SetDefault("AUTH_UNIFY_LOGIN_ERRORS", false)
	v.SetDefault("CORS_ALLOW_ORIGINS", defaultCORSOrigins)

	cfg := Config{
		AppName:          v.GetString("APP_NAME"),
		AppEnv:           strings.ToLower(v.GetString("APP_ENV")),
		Port:             v.GetString("PORT"),
		LogLevel:         strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:        strings.ToLower(v.GetString("LOG_FORMAT")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		RedisURL:         v.GetString("REDIS_URL"),
		ShutdownPeriod:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		IdempotencyTTL:   v.GetDuration("IDEMPOTENCY_TTL"),
		CORSOrigins:      v.GetString("CORS_ALLOW_ORIGINS"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		LoginMaxAttempts: v.GetInt("LOGIN_RATE_LIMIT_MAX"),
		LoginWindow:      v.GetDuration("LOGIN_RATE_LIMIT_WINDOW"),
		BcryptCost:       v.GetInt("BCRYPT_COST"),
		UnifyLoginErrors: v.GetBool("AUTH_UNIFY_LOGIN_ERRORS"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks invariants that must hold before the server starts.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}
	for name, d := range map[string]time.Duration{
		"SHUTDOWN_TIMEOUT":        c.ShutdownPeriod,
		"IDEMPOTENCY_TTL":         c.IdempotencyTTL,
		"TOKEN_TTL":               c.TokenTTL,
		"LOGIN_RATE_LIMIT_WINDOW": c.LoginWindow,
	} {
		if d <= 0 {
			return fmt.Errorf("invalid %s: must be a positive duration", name)
		}
	}
	if c.LoginMaxAttempts <= 0 {
		return fmt.Errorf("invalid LOGIN_RATE_LIMIT_MAX: must be positive")
	}
	if c.IsDevelopment() {
		return nil
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", c.AppEnv)
	}
	if c.RedisURL == "" {
		return fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", c.AppEnv)
	}
	return nil
}

// IsDevelopment reports whether the process runs in a local/dev environment,
// where in-memory stores may stand in for Postgres and Redis.
func (c Config) IsDevelopment() bool {
	switch c.AppEnv {
	case "dev", "development", "local", "test":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}
