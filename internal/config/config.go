package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	Generation GenerationConfig `yaml:"generation"`
	Settings   SettingsConfig   `yaml:"settings"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                int      `yaml:"port"`
	Host                string   `yaml:"host"`
	AllowedOrigins      []string `yaml:"allowed_origins"`
	ReadTimeoutSeconds  int      `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int      `yaml:"write_timeout_seconds"`
}

// GetHost returns the server host, with container detection
func (c ServerConfig) GetHost() string {
	if os.Getenv("ECS_CONTAINER_METADATA_URI") != "" || os.Getenv("AWS_EXECUTION_ENV") != "" {
		return "0.0.0.0"
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// DatabaseConfig selects Postgres for products and templates. An empty URL
// means the seeded in-memory repositories are used.
type DatabaseConfig struct {
	URL           string `yaml:"url"`
	MaxOpenConns  int    `yaml:"max_open_conns"`
	MaxIdleConns  int    `yaml:"max_idle_conns"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// RedisConfig enables the cross-instance generation lock and the redis
// settings backend.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// GenerationConfig tunes the description generator.
type GenerationConfig struct {
	DefaultVariants    int   `yaml:"default_variants"`
	MaxVariants        int   `yaml:"max_variants"`
	SimulatedLatencyMs int   `yaml:"simulated_latency_ms"`
	BulkDelayMs        int   `yaml:"bulk_delay_ms"`
	LockTTLSeconds     int   `yaml:"lock_ttl_seconds"`
	Seed               int64 `yaml:"seed"` // 0 seeds from the clock
}

func (c GenerationConfig) SimulatedLatency() time.Duration {
	return time.Duration(c.SimulatedLatencyMs) * time.Millisecond
}

func (c GenerationConfig) BulkDelay() time.Duration {
	return time.Duration(c.BulkDelayMs) * time.Millisecond
}

func (c GenerationConfig) LockTTL() time.Duration {
	return time.Duration(c.LockTTLSeconds) * time.Second
}

// SettingsConfig holds storage settings for the preferences record.
type SettingsConfig struct {
	Backend       string `yaml:"backend"` // local, redis or dynamodb
	LocalPath     string `yaml:"local_path"`
	Key           string `yaml:"key"`
	DynamoDBTable string `yaml:"dynamodb_table"`
	S3Bucket      string `yaml:"s3_bucket"`
	AWSRegion     string `yaml:"aws_region"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Redact bool   `yaml:"redact"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Logging: LoggingConfig{Redact: true}}
	applyDefaults(cfg)
	return cfg
}

// Load reads a YAML file and fills unset fields with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Config{Logging: LoggingConfig{Redact: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if cfg.Server.ReadTimeoutSeconds == 0 {
		cfg.Server.ReadTimeoutSeconds = 15
	}
	if cfg.Server.WriteTimeoutSeconds == 0 {
		cfg.Server.WriteTimeoutSeconds = 60
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "migrations"
	}
	if cfg.Generation.DefaultVariants == 0 {
		cfg.Generation.DefaultVariants = 3
	}
	if cfg.Generation.MaxVariants == 0 {
		cfg.Generation.MaxVariants = 10
	}
	if cfg.Generation.SimulatedLatencyMs == 0 {
		cfg.Generation.SimulatedLatencyMs = 2000
	}
	if cfg.Generation.BulkDelayMs == 0 {
		cfg.Generation.BulkDelayMs = 100
	}
	if cfg.Generation.LockTTLSeconds == 0 {
		cfg.Generation.LockTTLSeconds = 60
	}
	if cfg.Settings.Backend == "" {
		cfg.Settings.Backend = "local"
	}
	if cfg.Settings.LocalPath == "" {
		cfg.Settings.LocalPath = "data/settings.json"
	}
	if cfg.Settings.Key == "" {
		cfg.Settings.Key = "pagecraft-settings"
	}
	if cfg.Settings.DynamoDBTable == "" {
		cfg.Settings.DynamoDBTable = "pagecraft-settings"
	}
	if cfg.Settings.AWSRegion == "" {
		cfg.Settings.AWSRegion = "us-west-2"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// LoadFromEnv loads .env, then the YAML file when it exists, then applies
// environment overrides.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg *Config
	if _, err := os.Stat(path); err == nil {
		cfg, err = Load(path)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = Default()
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("PAGECRAFT_SETTINGS_BACKEND"); v != "" {
		cfg.Settings.Backend = v
	}
	if v := os.Getenv("PAGECRAFT_S3_BUCKET"); v != "" {
		cfg.Settings.S3Bucket = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.Settings.AWSRegion = v
	}
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg, nil
}
