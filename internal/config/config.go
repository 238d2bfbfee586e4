package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	defaultPort     = "5000"
	defaultDSN      = "contacts.db"
	defaultTokenTTL = time.Hour
)

// Config is the resolved application configuration.
type Config struct {
	AppName  string
	Env      string
	Port     string
	LogLevel string

	// DSN is either a postgres:// URL or a SQLite file path / DSN.
	DSN          string
	MaxOpenConns int

	JWTSecret       string
	TokenTTL        time.Duration
	ProtectContacts bool

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	AuthRateLimit   int
	RateLimitWindow time.Duration

	CORSAllowedOrigins []string
}

// IsProduction reports whether diagnostic output must be suppressed.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// envBindings maps config keys onto the environment variables that override them.
var envBindings = map[string]string{
	"app.env":               "APP_ENV",
	"port":                  "PORT",
	"log.level":             "LOG_LEVEL",
	"db.dsn":                "CONNECTION_STRING",
	"auth.jwt_secret":       "JWT_SECRET",
	"auth.protect_contacts": "PROTECT_CONTACTS",
	"redis.addr":            "REDIS_ADDR",
	"redis.password":        "REDIS_PASSWORD",
	"cors.allowed_origins":  "CORS_ALLOWED_ORIGINS",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "contacts-api")
	v.SetDefault("app.env", EnvDevelopment)
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", "info")
	v.SetDefault("db.dsn", defaultDSN)
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("auth.jwt_secret", "dev-secret-change-me")
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("auth.protect_contacts", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("rate_limit.auth", 10)
	v.SetDefault("rate_limit.window", time.Minute)
	v.SetDefault("cors.allowed_origins", "")
}

// Load reads .env (if present), configs/config.yml from the given search
// paths (if present) and environment overrides.
func Load(paths ...string) (*Config, error) {
	_ = godotenv.Load() // .env is optional

	v := viper.New()
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		AppName:  v.GetString("app.name"),
		Env:      strings.ToLower(strings.TrimSpace(v.GetString("app.env"))),
		Port:     v.GetString("port"),
		LogLevel: v.GetString("log.level"),

		DSN:          v.GetString("db.dsn"),
		MaxOpenConns: v.GetInt("db.max_open_conns"),

		JWTSecret:       v.GetString("auth.jwt_secret"),
		TokenTTL:        v.GetDuration("auth.token_ttl"),
		ProtectContacts: v.GetBool("auth.protect_contacts"),

		RedisAddr:       v.GetString("redis.addr"),
		RedisPassword:   v.GetString("redis.password"),
		RedisDB:         v.GetInt("redis.db"),
		AuthRateLimit:   v.GetInt("rate_limit.auth"),
		RateLimitWindow: v.GetDuration("rate_limit.window"),

		CORSAllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.DSN) == "" {
		return errors.New("db.dsn (CONNECTION_STRING) is empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.TokenTTL)
	}
	if c.IsProduction() && c.JWTSecret == "dev-secret-change-me" {
		return errors.New("auth.jwt_secret (JWT_SECRET) must be set in production")
	}
	return nil
}

// splitList turns a comma-separated value into a trimmed slice.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
