package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	OTel     OTelConfig     `mapstructure:"otel"`
	Insights InsightsConfig `mapstructure:"insights"`
}

// AppConfig holds application-level settings
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"` // development, staging, production
	Debug       bool   `mapstructure:"debug"`
	Version     string `mapstructure:"version"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// KafkaConfig holds Kafka producer settings
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// JWTConfig holds JWT verification settings for internal endpoints
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// OTelConfig holds OpenTelemetry settings
type OTelConfig struct {
	Enabled       bool    `mapstructure:"enabled"`
	CollectorAddr string  `mapstructure:"collector_addr"`
	SampleRatio   float64 `mapstructure:"sample_ratio"`
}

// InsightsConfig holds tuning knobs for the segmentation views
type InsightsConfig struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// Validate checks that required settings are present
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.JWT.Secret == "" && !c.IsDevelopment() {
		return fmt.Errorf("jwt secret is required outside development")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers are required when kafka is enabled")
	}
	return nil
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Read from .env file (optional) - env vars may still be set
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadWithPath loads configuration from a specific env file
func LoadWithPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}
	if err := bindConfig(v, cfg); err != nil {
		return nil, fmt.Errorf("failed to bind config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("APP_NAME", "catalog-insights")
	v.SetDefault("APP_ENVIRONMENT", "development")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "1.0.0")

	// Server defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8084)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "30s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "120s")

	// Catalog database
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_DBNAME", "catalog_db")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "1h")
	v.SetDefault("DATABASE_CONN_MAX_IDLE_TIME", "30m")

	// Redis defaults
	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 100)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	v.SetDefault("REDIS_DIAL_TIMEOUT", "5s")
	v.SetDefault("REDIS_READ_TIMEOUT", "3s")
	v.SetDefault("REDIS_WRITE_TIMEOUT", "3s")

	// Kafka defaults
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_TOPIC", "catalog-insights-events")

	// JWT defaults (development only)
	v.SetDefault("JWT_SECRET", "dev-secret-change-me")

	// OTel defaults
	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_COLLECTOR_ADDR", "localhost:4317")
	v.SetDefault("OTEL_SAMPLE_RATIO", 1.0)

	// Insights defaults
	v.SetDefault("INSIGHTS_CACHE_TTL", "5m")
}

func bindConfig(v *viper.Viper, cfg *Config) error {
	cfg.App = AppConfig{
		Name:        v.GetString("APP_NAME"),
		Environment: v.GetString("APP_ENVIRONMENT"),
		Debug:       v.GetBool("APP_DEBUG"),
		Version:     v.GetString("APP_VERSION"),
	}
	cfg.Server = ServerConfig{
		Host:         v.GetString("SERVER_HOST"),
		Port:         v.GetInt("SERVER_PORT"),
		ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		IdleTimeout:  v.GetDuration("SERVER_IDLE_TIMEOUT"),
	}
	cfg.Database = DatabaseConfig{
		Host:            v.GetString("DATABASE_HOST"),
		Port:            v.GetInt("DATABASE_PORT"),
		User:            v.GetString("DATABASE_USER"),
		Password:        v.GetString("DATABASE_PASSWORD"),
		DBName:          v.GetString("DATABASE_DBNAME"),
		SSLMode:         v.GetString("DATABASE_SSLMODE"),
		MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
		MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
		ConnMaxLifetime: v.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		ConnMaxIdleTime: v.GetDuration("DATABASE_CONN_MAX_IDLE_TIME"),
	}
	cfg.Redis = RedisConfig{
		Host:         v.GetString("REDIS_HOST"),
		Port:         v.GetInt("REDIS_PORT"),
		Password:     v.GetString("REDIS_PASSWORD"),
		DB:           v.GetInt("REDIS_DB"),
		PoolSize:     v.GetInt("REDIS_POOL_SIZE"),
		MinIdleConns: v.GetInt("REDIS_MIN_IDLE_CONNS"),
		DialTimeout:  v.GetDuration("REDIS_DIAL_TIMEOUT"),
		ReadTimeout:  v.GetDuration("REDIS_READ_TIMEOUT"),
		WriteTimeout: v.GetDuration("REDIS_WRITE_TIMEOUT"),
	}
	cfg.Kafka = KafkaConfig{
		Enabled: v.GetBool("KAFKA_ENABLED"),
		Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		Topic:   v.GetString("KAFKA_TOPIC"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("JWT_SECRET"),
	}
	cfg.OTel = OTelConfig{
		Enabled:       v.GetBool("OTEL_ENABLED"),
		CollectorAddr: v.GetString("OTEL_COLLECTOR_ADDR"),
		SampleRatio:   v.GetFloat64("OTEL_SAMPLE_RATIO"),
	}
	cfg.Insights = InsightsConfig{
		CacheTTL: v.GetDuration("INSIGHTS_CACHE_TTL"),
	}
	return nil
}
