package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageBadger = "badger"
	StorageSQL    = "sql"

	CacheMemory = "memory"
	CacheRedis  = "redis"

	MediaDisk = "disk"
	MediaS3   = "s3"
)

// Config holds every runtime setting of the service. Zero values are never
// used directly: Default() provides the baseline and Load() overlays the
// environment on top of it.
type Config struct {
	BindAddress string

	Storage    string // "badger" or "sql"
	BadgerPath string
	SQLDriver  string // "sqlite", "mysql" or "postgres"
	SQLDSN     string

	SessionKey    string
	SessionMaxAge int // seconds
	SessionSecure bool

	CacheBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	IndexCacheTTL time.Duration

	PostsPerPage int

	MediaBackend string
	MediaRoot    string
	S3Bucket     string
	S3Region     string
	S3Endpoint   string

	LogLevel  string
	LogFormat string // "text" or "json"
	Debug     bool
}

// Default returns the configuration used when nothing is set in the environment.
func Default() Config {
	return Config{
		BindAddress:   "0.0.0.0:8080",
		Storage:       StorageBadger,
		BadgerPath:    "data/badger",
		SQLDriver:     "sqlite",
		SQLDSN:        "data/yatube.db",
		SessionKey:    "change-me-in-production-please-32b",
		SessionMaxAge: 14 * 86400,
		CacheBackend:  CacheMemory,
		RedisAddr:     "localhost:6379",
		IndexCacheTTL: 20 * time.Second,
		PostsPerPage:  10,
		MediaBackend:  MediaDisk,
		MediaRoot:     "data/media",
		S3Region:      "us-east-1",
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Load reads the .env files for the current YATUBE_ENV and then the process
// environment.
func Load() Config {
	LoadDotEnvs()
	return FromEnv()
}

// LoadDotEnvs loads .env files following the dotenv convention. Files loaded
// first win, since godotenv never overrides a variable that is already set.
func LoadDotEnvs() {
	env := os.Getenv("YATUBE_ENV")
	if env == "" {
		env = "dev"
	}
	// .env.[env].local usually carries credentials
	_ = godotenv.Load(".env." + env + ".local")
	if env != "test" {
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load(".env")
}

// FromEnv overlays the process environment on Default().
func FromEnv() Config {
	c := Default()
	readEnvString("BIND_ADDRESS", &c.BindAddress)
	readEnvString("STORAGE", &c.Storage)
	readEnvString("BADGER_PATH", &c.BadgerPath)
	readEnvString("SQL_DRIVER", &c.SQLDriver)
	readEnvString("SQL_DSN", &c.SQLDSN)
	readEnvString("SESSION_KEY", &c.SessionKey)
	readEnvInt("SESSION_MAX_AGE", &c.SessionMaxAge)
	readEnvBool("SESSION_SECURE", &c.SessionSecure)
	readEnvString("CACHE_BACKEND", &c.CacheBackend)
	readEnvString("REDIS_ADDR", &c.RedisAddr)
	readEnvString("REDIS_PASSWORD", &c.RedisPassword)
	readEnvInt("REDIS_DB", &c.RedisDB)
	readEnvDuration("INDEX_CACHE_TTL", &c.IndexCacheTTL)
	readEnvInt("POSTS_PER_PAGE", &c.PostsPerPage)
	readEnvString("MEDIA_BACKEND", &c.MediaBackend)
	readEnvString("MEDIA_ROOT", &c.MediaRoot)
	readEnvString("S3_BUCKET", &c.S3Bucket)
	readEnvString("S3_REGION", &c.S3Region)
	readEnvString("S3_ENDPOINT", &c.S3Endpoint)
	readEnvString("LOG_LEVEL", &c.LogLevel)
	readEnvString("LOG_FORMAT", &c.LogFormat)
	readEnvBool("DEBUG_MODE", &c.Debug)
	return c
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = i
}

// readEnvDuration accepts Go durations ("20s") or a plain number of seconds.
func readEnvDuration(name string, value *time.Duration) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*value = d
		return
	}
	if secs, err := strconv.Atoi(v); err == nil {
		*value = time.Duration(secs) * time.Second
	}
}
