package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server reads from the environment.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Mail      MailConfig      `mapstructure:"mail"`
}

type AppConfig struct {
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type MongoConfig struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	ServerID string `mapstructure:"server_id"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessTTL     time.Duration `mapstructure:"access_ttl"`
	RefreshTTL    time.Duration `mapstructure:"refresh_ttl"`
}

type RateLimitConfig struct {
	AuthLimit  int           `mapstructure:"auth_limit"`
	AuthWindow time.Duration `mapstructure:"auth_window"`
	APILimit   int           `mapstructure:"api_limit"`
	APIWindow  time.Duration `mapstructure:"api_window"`
}

type StorageConfig struct {
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
}

type MailConfig struct {
	APIKey string `mapstructure:"api_key"`
	From   string `mapstructure:"from"`
}

const minSecretLength = 32

// Load reads configuration from the environment (and an optional .env file
// already loaded by godotenv) and applies defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	keys := []string{
		"app.environment", "app.allowed_origins",
		"server.host", "server.port", "server.read_timeout", "server.write_timeout", "server.idle_timeout",
		"mongo.uri", "mongo.database",
		"redis.addr", "redis.password", "redis.server_id",
		"jwt.access_secret", "jwt.refresh_secret", "jwt.access_ttl", "jwt.refresh_ttl",
		"ratelimit.auth_limit", "ratelimit.auth_window", "ratelimit.api_limit", "ratelimit.api_window",
		"storage.access_key", "storage.secret_key", "storage.bucket",
		"mail.api_key", "mail.from",
	}
	for _, k := range keys {
		if err := v.BindEnv(k); err != nil {
			return nil, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "60s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")

	v.SetDefault("mongo.database", "entreprenapp")

	v.SetDefault("redis.server_id", "server-1")

	v.SetDefault("jwt.access_ttl", "15m")
	v.SetDefault("jwt.refresh_ttl", "168h")

	v.SetDefault("ratelimit.auth_limit", 10)
	v.SetDefault("ratelimit.auth_window", "1m")
	v.SetDefault("ratelimit.api_limit", 100)
	v.SetDefault("ratelimit.api_window", "1m")
}

// Validate separates fatal misconfiguration (returned as an error, the
// process should exit 1) from degraded-mode warnings (returned for logging).
func (c *Config) Validate() ([]string, error) {
	var fatal []string
	var warnings []string

	if c.Mongo.URI == "" {
		fatal = append(fatal, "MONGO_URI is required")
	}
	if len(c.JWT.AccessSecret) < minSecretLength {
		fatal = append(fatal, fmt.Sprintf("JWT_ACCESS_SECRET must be at least %d characters", minSecretLength))
	}
	if len(c.JWT.RefreshSecret) < minSecretLength {
		fatal = append(fatal, fmt.Sprintf("JWT_REFRESH_SECRET must be at least %d characters", minSecretLength))
	}

	if c.Redis.Addr == "" {
		warnings = append(warnings, "REDIS_ADDR not set, using in-memory hub and rate limiter (single server)")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		warnings = append(warnings, "object storage credentials not set, media uploads disabled")
	}
	if c.Mail.APIKey == "" {
		warnings = append(warnings, "mail provider key not set, verification codes will only be logged")
	}

	if len(fatal) > 0 {
		return warnings, errors.New(strings.Join(fatal, "; "))
	}
	return warnings, nil
}

// IsProduction reports whether secure cookie settings should apply.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
