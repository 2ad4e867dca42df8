package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type RateLimitConfig struct {
	// Requests allowed per window on /register and /login, per client IP.
	AuthRequests int `yaml:"auth_requests"`
	// Requests allowed per window on /submit-quiz, per user.
	SubmitRequests int           `yaml:"submit_requests"`
	Window         time.Duration `yaml:"window"`
	// Honor X-Forwarded-For/X-Real-IP. Enable only behind a reverse proxy
	// that overwrites them.
	TrustProxy bool `yaml:"trust_proxy"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is loaded once at startup and treated as read-only afterwards.
type Config struct {
	Host           string          `yaml:"host"`
	Port           string          `yaml:"port"`
	DatabaseURL    string          `yaml:"database_url"`
	StoreDriver    string          `yaml:"store_driver"`
	JWTSecret      string          `yaml:"jwt_secret"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Log            LogConfig       `yaml:"log"`
	Redis          RedisConfig     `yaml:"redis"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// Load builds the configuration from defaults, then the YAML file at path
// (if any), then .env and the process environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Host:        "0.0.0.0",
		Port:        "8080",
		StoreDriver: StorePostgres,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		RateLimit: RateLimitConfig{
			AuthRequests:   20,
			SubmitRequests: 30,
			Window:         time.Minute,
		},
	}
}

func (c *Config) applyEnv() error {
	c.Host = getEnv("HOST", c.Host)
	c.Port = getEnv("PORT", c.Port)
	c.StoreDriver = getEnv("STORE_DRIVER", c.StoreDriver)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	} else if c.DatabaseURL == "" {
		c.DatabaseURL = databaseURLFromParts()
	}

	var err error
	if c.Redis.DB, err = getEnvInt("REDIS_DB", c.Redis.DB); err != nil {
		return err
	}
	if c.RateLimit.AuthRequests, err = getEnvInt("RATE_LIMIT_AUTH", c.RateLimit.AuthRequests); err != nil {
		return err
	}
	if c.RateLimit.SubmitRequests, err = getEnvInt("RATE_LIMIT_SUBMIT", c.RateLimit.SubmitRequests); err != nil {
		return err
	}
	if raw := os.Getenv("RATE_LIMIT_TRUST_PROXY"); raw != "" {
		trust, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_TRUST_PROXY: %w", err)
		}
		c.RateLimit.TrustProxy = trust
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
		c.RateLimit.Window = d
	}
	return nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	switch c.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("rate limit window must be positive")
	}
	return nil
}

func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

// LogValue leaves out the token secret and credentials.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", c.Addr()),
		slog.String("store", c.StoreDriver),
		slog.Bool("redis", c.Redis.Addr != ""),
		slog.Any("allowed_origins", c.AllowedOrigins),
		slog.String("log_level", c.Log.Level),
	)
}

// SlogLevel parses Log.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func databaseURLFromParts() string {
	host := getEnv("DB_HOST", "localhost")
	port := getEnv("DB_PORT", "5432")
	user := getEnv("DB_USER", "postgres")
	password := getEnv("DB_PASSWORD", "postgres")
	dbname := getEnv("DB_NAME", "quiz_app")
	sslmode := getEnv("DB_SSLMODE", "disable")

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbname, sslmode,
	)
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
