package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every runtime setting of the storefront.
type Config struct {
	AppPort string

	DatabaseDriver string
	DatabaseDSN    string

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	PasswordMinEntropy float64
	DefaultRoles       []string

	RabbitMQURL  string
	ReceiptQueue string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SMTP     SMTPConfig
	ShopName string

	Storage           StorageConfig
	ImageFetchTimeout time.Duration

	CORSOrigins    string
	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel  string
	LogFormat string
}

// SMTPConfig describes the outgoing mail server.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// StorageConfig selects where fetched product images are kept.
type StorageConfig struct {
	Driver    string // "disk" or "minio"
	MediaRoot string
	MediaURL  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=storefront port=5432 sslmode=disable")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("ACCESS_TOKEN_TTL", "60m")
	v.SetDefault("REFRESH_TOKEN_TTL", "24h")
	v.SetDefault("PASSWORD_MIN_ENTROPY", 50)
	v.SetDefault("DEFAULT_ROLES", "customer,manager")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RECEIPT_QUEUE", "receipt_queue")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SMTP_HOST", "")
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_USERNAME", "")
	v.SetDefault("SMTP_PASSWORD", "")
	v.SetDefault("SMTP_FROM", "")
	v.SetDefault("SHOP_NAME", "Storefront")
	v.SetDefault("STORAGE_DRIVER", "disk")
	v.SetDefault("MEDIA_ROOT", "./media")
	v.SetDefault("MEDIA_URL", "")
	v.SetDefault("MINIO_ENDPOINT", "")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "product-images")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("IMAGE_FETCH_TIMEOUT", "30s")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:            v.GetString("APP_PORT"),
		DatabaseDriver:     strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:        v.GetString("DATABASE_DSN"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		AccessTokenTTL:     v.GetDuration("ACCESS_TOKEN_TTL"),
		RefreshTokenTTL:    v.GetDuration("REFRESH_TOKEN_TTL"),
		PasswordMinEntropy: v.GetFloat64("PASSWORD_MIN_ENTROPY"),
		DefaultRoles:       splitList(v.GetString("DEFAULT_ROLES")),
		RabbitMQURL:        v.GetString("RABBITMQ_URL"),
		ReceiptQueue:       v.GetString("RECEIPT_QUEUE"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		RedisPassword:      v.GetString("REDIS_PASSWORD"),
		RedisDB:            v.GetInt("REDIS_DB"),
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
		ShopName: v.GetString("SHOP_NAME"),
		Storage: StorageConfig{
			Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
			MediaRoot:      v.GetString("MEDIA_ROOT"),
			MediaURL:       v.GetString("MEDIA_URL"),
			MinIOEndpoint:  v.GetString("MINIO_ENDPOINT"),
			MinIOAccessKey: v.GetString("MINIO_ACCESS_KEY"),
			MinIOSecretKey: v.GetString("MINIO_SECRET_KEY"),
			MinIOBucket:    v.GetString("MINIO_BUCKET"),
			MinIOUseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		ImageFetchTimeout: v.GetDuration("IMAGE_FETCH_TIMEOUT"),
		CORSOrigins:       v.GetString("CORS_ALLOWED_ORIGINS"),
		RateLimitRPS:      v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:    v.GetInt("RATE_LIMIT_BURST"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	switch c.Storage.Driver {
	case "disk":
	case "minio":
		if c.Storage.MinIOEndpoint == "" {
			return fmt.Errorf("MINIO_ENDPOINT is required when STORAGE_DRIVER=minio")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_DRIVER %q", c.Storage.Driver)
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token lifetimes must be positive")
	}
	return nil
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
