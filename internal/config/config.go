// Package config defines process configuration for the API, worker, consumer
// and seed commands.
package config

import (
	"time"

	"github.com/tnoeldner/Housing-Leadership-Reports/internal/shared/connection"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	HTTPPort     string        `koanf:"http_port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`

	DBHost     string `koanf:"db_host"`
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`
	DBName     string `koanf:"db_name"`
	DBPort     string `koanf:"db_port"`
	DBSSLMode  string `koanf:"db_sslmode"`

	// ConnectRetries bounds the retry loop of every infrastructure connector.
	ConnectRetries int `koanf:"connect_retries"`

	RedisAddr string `koanf:"redis_addr"`

	KafkaBroker        string        `koanf:"kafka_broker"`
	KafkaGroupID       string        `koanf:"kafka_group_id"`
	OutboxPollInterval time.Duration `koanf:"outbox_poll_interval"`

	JWTSecret string `koanf:"jwt_secret"`

	// RateLimitRPS and RateLimitBurst configure the per-actor token bucket.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// OpenAIAPIKey enables AI narratives; empty falls back to the plain summary.
	OpenAIAPIKey string `koanf:"openai_api_key"`
	OpenAIModel  string `koanf:"openai_model"`

	SMTPHost     string `koanf:"smtp_host"`
	SMTPPort     int    `koanf:"smtp_port"`
	SMTPUsername string `koanf:"smtp_username"`
	SMTPPassword string `koanf:"smtp_password"`
	SMTPFrom     string `koanf:"smtp_from"`

	// RecognitionRecipients receive the winner email. Comma separated in env.
	RecognitionRecipients []string `koanf:"recognition_recipients"`

	// RubricSeedPath overrides the embedded rubric seed for cmd/seed.
	RubricSeedPath string `koanf:"rubric_seed_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		HTTPPort:           "8080",
		ReadTimeout:        15 * time.Second,
		WriteTimeout:       15 * time.Second,
		IdleTimeout:        60 * time.Second,
		DBHost:             "localhost",
		DBUser:             "postgres",
		DBName:             "housing_reports",
		DBPort:             "5432",
		DBSSLMode:          "disable",
		ConnectRetries:     5,
		RedisAddr:          "localhost:6379",
		KafkaBroker:        "localhost:9092",
		KafkaGroupID:       "hlr-recognition-mailer",
		OutboxPollInterval: 3 * time.Second,
		RateLimitRPS:       5,
		RateLimitBurst:     10,
		OpenAIModel:        "gpt-4o-mini",
		SMTPPort:           587,
	}
}

// Postgres returns the connection parameters for the configured database.
func (c *Config) Postgres() connection.PostgresParams {
	return connection.PostgresParams{
		Host:     c.DBHost,
		User:     c.DBUser,
		Password: c.DBPassword,
		DBName:   c.DBName,
		Port:     c.DBPort,
		SSLMode:  c.DBSSLMode,
	}
}

// SMTPEnabled reports whether enough SMTP settings exist to deliver mail.
func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
