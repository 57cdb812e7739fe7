package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage driver names accepted by Load.
const (
	StorageDriverFile     = "file"
	StorageDriverRedis    = "redis"
	StorageDriverSQLite   = "sqlite"
	StorageDriverPostgres = "postgres"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	StorageDriver          string
	StoragePath            string
	SQLitePath             string
	DatabaseURL            string
	RedisURL               string
	ReportCacheTTL         time.Duration
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	UploadMaxMB            int
	FeedbackEmail          string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// ArtifactUploadsEnabled reports whether Cloudinary credentials are present.
// Portfolio artifact uploads are optional and disabled without them.
func (c Config) ArtifactUploadsEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("HQ")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "HomeschoolHQ API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("storage.driver", StorageDriverFile)
	v.SetDefault("storage.path", "data/document.json")
	v.SetDefault("sqlite.path", "data/homeschoolhq.db")
	v.SetDefault("report.cache_ttl", "5m")
	v.SetDefault("cloudinary.folder", "homeschoolhq/portfolio")
	v.SetDefault("upload.max_mb", 10)
	v.SetDefault("feedback.email", "feedback@homeschoolhq.app")

	ttlString := v.GetString("report.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid report cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		StorageDriver:          strings.ToLower(v.GetString("storage.driver")),
		StoragePath:            v.GetString("storage.path"),
		SQLitePath:             v.GetString("sqlite.path"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		ReportCacheTTL:         ttl,
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		UploadMaxMB:            v.GetInt("upload.max_mb"),
		FeedbackEmail:          v.GetString("feedback.email"),
	}

	switch cfg.StorageDriver {
	case StorageDriverFile, StorageDriverSQLite:
	case StorageDriverRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("redis url must be provided for the redis storage driver")
		}
	case StorageDriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("database url must be provided for the postgres storage driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 10
	}

	return cfg, nil
}
