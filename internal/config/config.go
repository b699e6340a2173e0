package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort   string `env:"APP_PORT" envDefault:"3000"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT"` // json or console; empty picks by AppEnv

	AWSRegion      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpointURL string `env:"AWS_ENDPOINT_URL"` // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`

	DynamoTables    DynamoTables
	DynamoBootstrap bool `env:"DYNAMO_BOOTSTRAP" envDefault:"false"`

	SNSRegion              string `env:"SNS_REGION" envDefault:"us-east-1"`
	SNSPlatformApplication string `env:"SNS_PLATFORM_APPLICATION_ARN"`

	ChatAPIURL      string        `env:"CHAT_API_URL" envDefault:"https://langchain-606795817007.us-central1.run.app"`
	ChatAPITimeout  time.Duration `env:"CHAT_API_TIMEOUT" envDefault:"60s"`
	DeeplinkBaseURL string        `env:"DEEPLINK_BASE_URL" envDefault:"https://www.nysaa.ai/chat"`

	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST" envDefault:"10"`

	// Only enable behind a proxy that overwrites X-Forwarded-For.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	DispatcherMode string `env:"DISPATCHER_MODE" envDefault:"lambda"`
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Notifications string `env:"DYNAMO_TABLE_NOTIFICATIONS" envDefault:"notifications"`
	Users         string `env:"DYNAMO_TABLE_USERS" envDefault:"users"`
	Errors        string `env:"DYNAMO_TABLE_ERRORS" envDefault:"errors"`
}

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DispatcherMode != "lambda" && cfg.DispatcherMode != "http" {
		return nil, fmt.Errorf("DISPATCHER_MODE must be lambda or http, got %q", cfg.DispatcherMode)
	}
	return cfg, nil
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// LogEncoding returns LogFormat when set, otherwise json in production and
// console elsewhere.
func (c *Config) LogEncoding() string {
	if c.LogFormat != "" {
		return c.LogFormat
	}
	if c.IsProduction() {
		return "json"
	}
	return "console"
}
