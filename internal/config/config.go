package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App       AppConfig       `yaml:"app"`
	Log       LogConfig       `yaml:"log"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	HTTP      HTTPConfig      `yaml:"http"`
	NATS      NATSConfig      `yaml:"nats"`
	Match     MatchConfig     `yaml:"match"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type AppConfig struct {
	ENV string `yaml:"env"`
}

type LogConfig struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	Component string `yaml:"component"`
	Source    bool   `yaml:"source"`
}

type DBConfig struct {
	Driver       string `yaml:"driver"` // mysql | postgres | sqlite
	DSN          string `yaml:"dsn"`
	Host         string `yaml:"host"`
	Port         string `yaml:"port"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	Name         string `yaml:"name"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	AutoMigrate  bool   `yaml:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type GRPCConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// MatchConfig holds the engine knobs. CooldownWindow is how long a vote stays
// active; ResultCap bounds every recent-activity list.
type MatchConfig struct {
	CooldownWindow time.Duration `yaml:"cooldown_window"`
	ResultCap      int           `yaml:"result_cap"`
	StoreTimeout   time.Duration `yaml:"store_timeout"`
}

// RateLimitConfig caps votes per voter per Window. Votes <= 0 disables it.
type RateLimitConfig struct {
	Votes  int           `yaml:"votes"`
	Window time.Duration `yaml:"window"`
}

// New builds the config from defaults and environment variables.
func New() *Config {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// Load reads the YAML file at path (if any) on top of the defaults and then
// applies environment overrides. An empty path falls back to CONFIG_FILE.
func Load(path string) (*Config, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	}

	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported db driver %q", c.DB.Driver)
	}
	if c.Match.CooldownWindow <= 0 {
		return fmt.Errorf("match cooldown window must be positive")
	}
	if c.Match.ResultCap <= 0 {
		return fmt.Errorf("match result cap must be positive")
	}
	if c.RateLimit.Votes > 0 && c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate limit window must be positive when votes limit is set")
	}
	return nil
}

func defaults() *Config {
	cfg := &Config{}

	cfg.App.ENV = "production"

	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Log.Component = "grpc_server"

	cfg.DB.Driver = "mysql"
	cfg.DB.Host = "localhost"
	cfg.DB.Port = "3306"
	cfg.DB.User = "root"
	cfg.DB.Password = "root"
	cfg.DB.Name = "muzz"
	cfg.DB.MaxOpenConns = 20
	cfg.DB.AutoMigrate = true

	cfg.Redis.Addr = "localhost:6379"

	cfg.GRPC.Host = "127.0.0.1"
	cfg.GRPC.Port = "50051"

	cfg.HTTP.Addr = ":8080"

	cfg.NATS.Subject = "match.found"

	cfg.Match.CooldownWindow = 30 * 24 * time.Hour
	cfg.Match.ResultCap = 5
	cfg.Match.StoreTimeout = 3 * time.Second

	cfg.RateLimit.Votes = 60
	cfg.RateLimit.Window = time.Minute

	return cfg
}

func applyEnv(cfg *Config) {
	cfg.App.ENV = getEnvDefault("APP_ENV", cfg.App.ENV)

	// Logger
	cfg.Log.Level = getEnvDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Component = getEnvDefault("LOG_COMPONENT", cfg.Log.Component)
	if v, ok := os.LookupEnv("LOG_SOURCE"); ok {
		cfg.Log.Source = isTruthy(v)
	}

	// Database
	cfg.DB.Driver = strings.ToLower(getEnvDefault("DB_DRIVER", cfg.DB.Driver))
	cfg.DB.Host = getEnvDefault("DB_HOST", cfg.DB.Host)
	cfg.DB.Port = getEnvDefault("DB_PORT", cfg.DB.Port)
	cfg.DB.User = getEnvDefault("DB_USER", cfg.DB.User)
	cfg.DB.Password = getEnvDefault("DB_PASSWORD", cfg.DB.Password)
	cfg.DB.Name = getEnvDefault("DB_NAME", cfg.DB.Name)
	cfg.DB.MaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", cfg.DB.MaxOpenConns)
	if v, ok := os.LookupEnv("DB_AUTO_MIGRATE"); ok {
		cfg.DB.AutoMigrate = isTruthy(v)
	}
	cfg.DB.DSN = getEnvDefault("DB_DSN", getEnvDefault("MYSQL_DSN", cfg.DB.DSN))
	if cfg.DB.DSN == "" {
		cfg.DB.DSN = buildDSN(cfg.DB)
	}

	// Redis
	cfg.Redis.Addr = getEnvDefault("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnvDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvInt("REDIS_DB", cfg.Redis.DB)

	// gRPC
	cfg.GRPC.Host = getEnvDefault("GRPC_HOST", cfg.GRPC.Host)
	cfg.GRPC.Port = getEnvDefault("GRPC_PORT", cfg.GRPC.Port)

	cfg.HTTP.Addr = getEnvDefault("HTTP_ADDR", cfg.HTTP.Addr)

	// NATS
	cfg.NATS.URL = getEnvDefault("NATS_URL", cfg.NATS.URL)
	cfg.NATS.Subject = getEnvDefault("NATS_MATCH_SUBJECT", cfg.NATS.Subject)

	// Matching
	cfg.Match.CooldownWindow = getEnvDuration("MATCH_COOLDOWN_WINDOW", cfg.Match.CooldownWindow)
	cfg.Match.ResultCap = getEnvInt("MATCH_RESULT_CAP", cfg.Match.ResultCap)
	cfg.Match.StoreTimeout = getEnvDuration("MATCH_STORE_TIMEOUT", cfg.Match.StoreTimeout)

	cfg.RateLimit.Votes = getEnvInt("RATE_LIMIT_VOTES", cfg.RateLimit.Votes)
	cfg.RateLimit.Window = getEnvDuration("RATE_LIMIT_WINDOW", cfg.RateLimit.Window)
}

// buildDSN assembles a driver-specific DSN from the discrete DB fields.
// clientFoundRows makes MySQL report matched (not changed) rows on UPDATE,
// which the vote upsert relies on.
func buildDSN(db DBConfig) string {
	switch db.Driver {
	case "postgres":
		return fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			db.Host, db.Port, db.User, db.Password, db.Name,
		)
	case "sqlite":
		return fmt.Sprintf("file:%s.db?_foreign_keys=on", db.Name)
	default:
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC&clientFoundRows=true",
			db.User, db.Password, db.Host, db.Port, db.Name,
		)
	}
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(k string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
