package config

import (
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds registry database connection settings.
// Driver selects between the embedded SQLite file (Path) and PostgreSQL.
type DatabaseConfig struct {
	Driver             string
	Path               string
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// ArtifactConfig selects where rendered QR images are written.
type ArtifactConfig struct {
	Driver string // fs|minio|s3|memory
	Dir    string // root directory for the fs driver
	Prefix string // key prefix for object-store drivers
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// S3Config holds settings for an AWS S3 (or compatible) bucket.
// Without an explicit key pair the default AWS credential chain is used.
type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	PathStyle       bool
	AccessKeyID     string // optional
	SecretAccessKey string // optional
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	Timezone string
	LogLevel string
	// BaseURLOverride, when set, takes precedence over the stored base_url setting.
	BaseURLOverride string
	Database        DatabaseConfig
	Artifacts       ArtifactConfig
	MinIO           MinIOConfig
	S3              S3Config
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:         getEnv("APP_HOST", "localhost:5001"),
		Port:            getEnv("PORT", "5001"),
		Timezone:        getEnv("APP_TIMEZONE", "UTC"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		BaseURLOverride: strings.TrimRight(getEnv("BASE_URL", ""), "/"),
		Database: DatabaseConfig{
			Driver:             getEnv("DB_DRIVER", "sqlite"),
			Path:               getEnv("DB_PATH", "assetqr.db"),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Artifacts: ArtifactConfig{
			Driver: getEnv("ARTIFACT_DRIVER", "fs"),
			Dir:    getEnv("ARTIFACT_DIR", "static/qrcodes"),
			Prefix: getEnv("ARTIFACT_PREFIX", "qrcodes/"),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "us-east-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			PathStyle:       getEnvBool("S3_PATH_STYLE", false),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
