package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName        string
	AppEnv         string
	AppPort        string
	DatabaseURL    string
	RedisURL       string
	WebhookURL     string
	WebhookTimeout time.Duration
	NATSUrl        string
	NATSSubject    string
	StatusCacheTTL time.Duration
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// UsesMemoryStore reports whether the in-process store substitutes for a
// database.
func (c Config) UsesMemoryStore() bool {
	return c.DatabaseURL == ""
}

// Load reads configuration values from environment variables and optional .env file.
// DatabaseURL, RedisURL, WebhookURL and NATSUrl are all optional: an absent
// database selects the in-process store, the others disable their feature.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PANTAU")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "PANTAU API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "4000")
	v.SetDefault("webhook.timeout", "5s")
	v.SetDefault("nats.subject", "pantau.checkin.failed")
	v.SetDefault("status.cache_ttl", "30s")

	webhookTimeout, err := time.ParseDuration(v.GetString("webhook.timeout"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid webhook timeout: %w", err)
	}

	cacheTTL, err := time.ParseDuration(v.GetString("status.cache_ttl"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid status cache ttl: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		AppPort:        v.GetString("app.port"),
		DatabaseURL:    v.GetString("database.url"),
		RedisURL:       v.GetString("redis.url"),
		WebhookURL:     v.GetString("webhook.url"),
		WebhookTimeout: webhookTimeout,
		NATSUrl:        v.GetString("nats.url"),
		NATSSubject:    v.GetString("nats.subject"),
		StatusCacheTTL: cacheTTL,
	}

	return cfg, nil
}
