// Package config exposes application configuration through one accessor
// function per key. Values come from the environment and an optional .env
// file, read through viper; every accessor has a development-friendly
// fallback so the server boots with zero configuration.
package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultMongoURI     = "mongodb://localhost:27017"
	defaultDatabaseName = "plantNet"
	defaultRedisAddr    = "localhost:6379"
	defaultJWTSecret    = "change-me-in-production"
	defaultAppPort      = "5000"
	defaultAppEnv       = "local"
	defaultCORSOrigins  = "http://localhost:5173,http://localhost:5174"
)

var (
	loadOnce sync.Once
	loadErr  error
)

// Load reads .env (if present) and the process environment. Safe to call
// from every accessor; the file is only parsed once.
func Load() error {
	loadOnce.Do(func() {
		viper.SetConfigFile(".env")
		viper.SetConfigType("env")
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			// A missing .env is the normal case in containers; only a
			// malformed file is an error.
			if _, ok := err.(viper.ConfigParseError); ok {
				loadErr = err
			}
		}
	})
	return loadErr
}

func get(key, fallback string) string {
	_ = Load()
	if value := strings.TrimSpace(viper.GetString(key)); value != "" {
		return value
	}
	return fallback
}

// MongoURI returns the MongoDB connection string.
func MongoURI() string {
	return get("MONGO_URI", defaultMongoURI)
}

// DatabaseName returns the Mongo database holding the marketplace collections.
func DatabaseName() string {
	return get("DB_NAME", defaultDatabaseName)
}

// JWTSecret returns the HMAC secret used to sign session tokens.
func JWTSecret() string {
	return get("ACCESS_TOKEN_SECRET", defaultJWTSecret)
}

// AppPort returns the HTTP listen port.
func AppPort() string {
	return get("APP_PORT", defaultAppPort)
}

// AppEnv returns the runtime environment name ("local", "production", …).
func AppEnv() string {
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether the server runs with production settings.
// Cookie attributes and log output format key off this.
func IsProduction() bool {
	switch AppEnv() {
	case "production", "prod":
		return true
	}
	return false
}

// CORSOrigins returns the browser origins allowed to send credentialed
// requests.
func CORSOrigins() []string {
	raw := get("CORS_ORIGINS", defaultCORSOrigins)
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// RedisAddr returns the redis host:port used by the catalog cache.
func RedisAddr() string {
	return get("REDIS_ADDR", defaultRedisAddr)
}

// RedisPassword returns the redis password, empty when auth is disabled.
func RedisPassword() string {
	return get("REDIS_PASSWORD", "")
}

// CatalogCacheTTL returns how long the plant listing stays cached.
func CatalogCacheTTL() time.Duration {
	_ = Load()
	if d := viper.GetDuration("CATALOG_CACHE_TTL"); d > 0 {
		return d
	}
	return time.Minute
}

// LogToMongo reports whether log records should also be written to the
// database's logs collection.
func LogToMongo() bool {
	_ = Load()
	return viper.GetBool("LOG_TO_MONGO")
}

// ── Storage ──────────────────────────────────────────────────────────────────

func StorageDefault() string   { return get("STORAGE_DISK", "local") }
func StorageLocalRoot() string { return get("STORAGE_LOCAL_ROOT", "storage") }
func StorageURL() string       { return get("STORAGE_URL", "http://localhost:5000/storage") }

func StorageS3Bucket() string   { return get("S3_BUCKET", "") }
func StorageS3Region() string   { return get("S3_REGION", "us-east-1") }
func StorageS3Key() string      { return get("S3_KEY", "") }
func StorageS3Secret() string   { return get("S3_SECRET", "") }
func StorageS3Endpoint() string { return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { return get("S3_URL", "") }

// Get reads any config key by name with an optional fallback.
func Get(key, fallback string) string {
	return get(key, fallback)
}
