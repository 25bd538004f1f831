package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort     string `mapstructure:"APP_PORT"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Env         string `mapstructure:"ENV"`
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Rate limiting.
	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Week start convention for time slot day_of_week indexing:
	// "sunday" means 0=Sunday..6=Saturday, "monday" means 0=Monday..6=Sunday.
	WeekStart string `mapstructure:"WEEK_START"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisRateDB    int    `mapstructure:"REDIS_RATE_DB"`
	RedisWebhookDB int    `mapstructure:"REDIS_WEBHOOK_DB"`

	// Webhook dispatcher.
	WebhookTimeoutSec int `mapstructure:"WEBHOOK_TIMEOUT_SEC"`
	WebhookMaxRetries int `mapstructure:"WEBHOOK_MAX_RETRIES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("WEEK_START", "sunday")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_RATE_DB", 1)
	viper.SetDefault("REDIS_WEBHOOK_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("WEBHOOK_TIMEOUT_SEC", 10)
	viper.SetDefault("WEBHOOK_MAX_RETRIES", 8)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
