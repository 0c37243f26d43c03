package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Log       LogConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	RabbitMQ  RabbitMQConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name string
	Env  string
}

// ServerConfig holds the listen address. TrustedProxies lists the proxy
// CIDRs or IPs whose X-Forwarded-For is honoured; empty trusts none.
type ServerConfig struct {
	Host           string
	Port           int
	TrustedProxies []string
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	DSN         string
	EnableTLS   bool
	MaxOpen     int
	MaxIdle     int
	AutoMigrate bool
}

// RedisConfig backs the rate limiter. An empty Addr disables Redis.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	PoolSize  int
	EnableTLS bool
}

type RateLimitConfig struct {
	Requests      int
	WindowSeconds int
}

// RabbitMQConfig backs the notification publisher. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL        string
	EnableTLS  bool
	Exchange   string
	RoutingKey string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TelemetryConfig struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (a *AppConfig) IsDevelopment() bool {
	return a.Env == "development"
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("APP_NAME", "planner-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8029)
	v.SetDefault("TRUSTED_PROXIES", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DSN", "host=localhost user=planner password=planner dbname=planner port=5432 sslmode=disable")
	v.SetDefault("DATABASE_ENABLE_TLS", false)
	v.SetDefault("DATABASE_MAX_OPEN", 20)
	v.SetDefault("DATABASE_MAX_IDLE", 5)
	v.SetDefault("DATABASE_AUTO_MIGRATE", true)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_ENABLE_TLS", false)
	v.SetDefault("RATE_LIMIT_REQUESTS", 300)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_ENABLE_TLS", false)
	v.SetDefault("RABBITMQ_EXCHANGE", "planner.notifications")
	v.SetDefault("RABBITMQ_ROUTING_KEY", "notification.queued")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("TELEMETRY_ENABLED", false)
	v.SetDefault("TELEMETRY_OTLP_ENDPOINT", "")
	v.SetDefault("TELEMETRY_SAMPLE_RATIO", 1.0)

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("APP_NAME"),
			Env:  v.GetString("APP_ENV"),
		},
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetInt("SERVER_PORT"),
			TrustedProxies: splitList(v.GetString("TRUSTED_PROXIES")),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Database: DatabaseConfig{
			DSN:         v.GetString("DATABASE_DSN"),
			EnableTLS:   v.GetBool("DATABASE_ENABLE_TLS"),
			MaxOpen:     v.GetInt("DATABASE_MAX_OPEN"),
			MaxIdle:     v.GetInt("DATABASE_MAX_IDLE"),
			AutoMigrate: v.GetBool("DATABASE_AUTO_MIGRATE"),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			PoolSize:  v.GetInt("REDIS_POOL_SIZE"),
			EnableTLS: v.GetBool("REDIS_ENABLE_TLS"),
		},
		RateLimit: RateLimitConfig{
			Requests:      v.GetInt("RATE_LIMIT_REQUESTS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:        v.GetString("RABBITMQ_URL"),
			EnableTLS:  v.GetBool("RABBITMQ_ENABLE_TLS"),
			Exchange:   v.GetString("RABBITMQ_EXCHANGE"),
			RoutingKey: v.GetString("RABBITMQ_ROUTING_KEY"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Telemetry: TelemetryConfig{
			Enabled:      v.GetBool("TELEMETRY_ENABLED"),
			OtlpEndpoint: v.GetString("TELEMETRY_OTLP_ENDPOINT"),
			SampleRatio:  v.GetFloat64("TELEMETRY_SAMPLE_RATIO"),
		},
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
