package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config carries all process configuration. It is loaded once at startup
// and passed down through constructors.
type Config struct {
	Env      string
	HTTPPort string

	// DBDriver selects between sqlite and postgres. DBPath is the sqlite
	// file, DatabaseURL the postgres DSN.
	DBDriver    string
	DBPath      string
	DatabaseURL string

	// RedisAddr enables the post cache when non-empty.
	RedisAddr     string
	RedisPassword string

	MediaRoot    string
	MediaBaseURL string

	// OCRProvider selects the extraction backend: openai or tesseract.
	OCRProvider   string
	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	OCRLanguages  []string

	// SplitMinLength drops OCR noise paragraphs at or below this length.
	SplitMinLength int

	// Compression names the codec for stored raw OCR text: gzip, brotli, lz4 or nop.
	Compression string

	// CleanerSchedule is the cron spec for the orphaned media sweep.
	CleanerSchedule string
}

// LoadConfig reads configuration from the environment with local-dev defaults.
func LoadConfig() *Config {
	cnf := &Config{
		Env:             envOr("ENV", "dev"),
		HTTPPort:        envOr("BOOKPOST_HTTP_PORT", "8000"),
		DBDriver:        envOr("BOOKPOST_DB_DRIVER", "sqlite"),
		DBPath:          envOr("BOOKPOST_DB_PATH", ".db/bookpost.db"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisAddr:       os.Getenv("BOOKPOST_REDIS_ADDR"),
		RedisPassword:   os.Getenv("BOOKPOST_REDIS_PASSWORD"),
		MediaRoot:       envOr("BOOKPOST_MEDIA_ROOT", ".media"),
		MediaBaseURL:    envOr("BOOKPOST_MEDIA_BASE_URL", "http://localhost:8000"),
		OCRProvider:     envOr("BOOKPOST_OCR_PROVIDER", "openai"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:     envOr("BOOKPOST_OCR_MODEL", "gpt-4o-mini"),
		SplitMinLength:  envIntOr("BOOKPOST_SPLIT_MIN_LENGTH", 20),
		Compression:     envOr("BOOKPOST_COMPRESSION", "gzip"),
		CleanerSchedule: envOr("BOOKPOST_CLEANER_SCHEDULE", "@every 10m"),
	}

	if langs := os.Getenv("BOOKPOST_OCR_LANGUAGES"); langs != "" {
		cnf.OCRLanguages = splitCSV(langs)
	}

	return cnf
}

// GetDb opens the configured database connection.
func GetDb(cnf *Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cnf.DBDriver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cnf.DatabaseURL), &gorm.Config{})
	default:
		if dir := filepath.Dir(cnf.DBPath); dir != "." {
			if err := os.MkdirAll(dir, os.ModePerm); err != nil {
				logrus.Fatalf("error creating db directory: %v", err)
			}
		}
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}

	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("invalid %s=%q, using default %d", key, v, def)
		return def
	}

	return n
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
