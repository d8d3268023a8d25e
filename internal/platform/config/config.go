package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	NotifyPort  string
	Environment string
	CORSOrigins []string

	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Mail     MailConfig
	Auth     AuthConfig

	PhotoMaxBytes  int64
	PhotoMaxSide   int
	PhotoMaxPixels int64

	NotifyURL       string
	NotifyTimeout   time.Duration
	UploadTimeout   time.Duration
	PersistTimeout  time.Duration
	CatalogCacheTTL time.Duration

	MetricsEnabled bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type StorageConfig struct {
	Driver          string
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
	LocalDir        string
	LocalBaseURL    string
	SignedURLTTL    time.Duration
}

type MailConfig struct {
	Driver        string
	MailjetKey    string
	MailjetSecret string
	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	From          string
	FromName      string
	OperatorEmail string
	OperatorPhone string
	ParkName      string
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminPasswordHash string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, bool) {
	dotenv := godotenv.Load() == nil

	return &Config{
		Port:        getEnv("PORT", "8080"),
		NotifyPort:  getEnv("NOTIFY_PORT", "8081"),
		Environment: getEnv("ENVIRONMENT", "development"),
		CORSOrigins: getEnvAsList("CORS_ORIGINS", []string{"*"}),

		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "park_booking"),
		},

		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		Storage: StorageConfig{
			Driver:          getEnv("STORAGE_DRIVER", "local"),
			Bucket:          getEnv("S3_BUCKET", "site-images"),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			PublicBaseURL:   getEnv("S3_PUBLIC_BASE_URL", ""),
			LocalDir:        getEnv("LOCAL_STORAGE_DIR", "uploads"),
			LocalBaseURL:    getEnv("LOCAL_PUBLIC_BASE_URL", "http://localhost:8080/uploads"),
			SignedURLTTL:    getEnvAsDuration("SIGNED_URL_TTL", "1h"),
		},

		Mail: MailConfig{
			Driver:        getEnv("MAIL_DRIVER", "log"),
			MailjetKey:    getEnv("MAILJET_API_KEY", ""),
			MailjetSecret: getEnv("MAILJET_API_SECRET", ""),
			SMTPHost:      getEnv("SMTP_HOST", ""),
			SMTPPort:      getEnv("SMTP_PORT", "587"),
			SMTPUser:      getEnv("SMTP_USERNAME", ""),
			SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
			From:          getEnv("MAIL_FROM", "bookings@example.com"),
			FromName:      getEnv("MAIL_FROM_NAME", "Murchison Falls Bookings"),
			OperatorEmail: getEnv("OPERATOR_EMAIL", "bookings@example.com"),
			OperatorPhone: getEnv("OPERATOR_PHONE", "+256 785393756"),
			ParkName:      getEnv("PARK_NAME", "Murchison Falls National Park"),
		},

		Auth: AuthConfig{
			JWTSecret:         getEnv("JWT_SECRET", ""),
			TokenTTL:          getEnvAsDuration("ADMIN_TOKEN_TTL", "12h"),
			AdminEmail:        getEnv("ADMIN_EMAIL", ""),
			AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		},

		PhotoMaxBytes:  getEnvAsInt64("PHOTO_MAX_BYTES", 10*1024*1024),
		PhotoMaxSide:   getEnvAsInt("PHOTO_MAX_SIDE", 1200),
		PhotoMaxPixels: getEnvAsInt64("PHOTO_MAX_PIXELS", 40_000_000),

		NotifyURL:       getEnv("NOTIFY_URL", ""),
		NotifyTimeout:   getEnvAsDuration("NOTIFY_TIMEOUT", "15s"),
		UploadTimeout:   getEnvAsDuration("UPLOAD_TIMEOUT", "30s"),
		PersistTimeout:  getEnvAsDuration("PERSIST_TIMEOUT", "5s"),
		CatalogCacheTTL: getEnvAsDuration("CATALOG_CACHE_TTL", "5m"),

		MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
	}, dotenv
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	if duration, err := time.ParseDuration(getEnv(key, defaultValue)); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
