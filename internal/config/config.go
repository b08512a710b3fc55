package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/deidaraiorek/deirake/internal/textprocessor"
)

type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
)

type AppConfig struct {
	Env      Environment
	LogLevel string
	LogFile  string
}

type StorageConfig struct {
	AbstractDBPath string
	KeywordDBPath  string
}

type RakeConfig struct {
	StoplistPath   string
	MinWordLength  int
	MaxWordLength  int
	KeepNumerals   bool
	Stem           bool
	StemLanguage   string
	MaxPhraseWords int
}

type BulkConfig struct {
	Source           string
	AbstractType     string
	SamplePercentage float64
	Workers          int
	Method           string
	Resume           bool
	BatchSize        int
}

type ServerConfig struct {
	Port                string
	CacheSize           int
	MaxTextBytes        int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

type Config struct {
	App     AppConfig
	Storage StorageConfig
	Rake    RakeConfig
	Bulk    BulkConfig
	Server  ServerConfig
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := parseEnvironment(getEnv("APP_ENV", "development"))

	abstractDB := getEnv("ABSTRACT_DB_PATH", "abstracts.db")

	return &Config{
		App: AppConfig{
			Env:      env,
			LogLevel: getLogLevel(env),
			LogFile:  getEnv("APP_LOG_FILE", ""),
		},
		Storage: StorageConfig{
			AbstractDBPath: abstractDB,
			KeywordDBPath:  getEnv("KEYWORD_DB_PATH", abstractDB),
		},
		Rake: RakeConfig{
			StoplistPath:   getEnv("RAKE_STOPLIST_PATH", ""),
			MinWordLength:  getEnvInt("RAKE_MIN_WORD_LENGTH", 1),
			MaxWordLength:  getEnvInt("RAKE_MAX_WORD_LENGTH", 50),
			KeepNumerals:   getEnvBool("RAKE_KEEP_NUMERALS", false),
			Stem:           getEnvBool("RAKE_STEM", false),
			StemLanguage:   getEnv("RAKE_STEM_LANGUAGE", textprocessor.DefaultLanguage),
			MaxPhraseWords: getEnvInt("RAKE_MAX_PHRASE_WORDS", 0),
		},
		Bulk: BulkConfig{
			Source:           getEnv("BULK_SOURCE", ""),
			AbstractType:     getEnv("BULK_ABSTRACT_TYPE", "Testing"),
			SamplePercentage: getEnvFloat("BULK_SAMPLE_PERCENTAGE", 1.0),
			Workers:          getEnvInt("BULK_WORKERS", min(runtime.NumCPU(), 8)),
			Method:           getEnv("BULK_METHOD", "RAKE"),
			Resume:           getEnvBool("BULK_RESUME", false),
			BatchSize:        getEnvInt("BULK_BATCH_SIZE", 100),
		},
		Server: ServerConfig{
			Port:                getEnv("SERVER_PORT", "8080"),
			CacheSize:           getEnvInt("SERVER_CACHE_SIZE", 1024),
			MaxTextBytes:        getEnvInt("SERVER_MAX_TEXT_BYTES", 1<<20),
			ReadTimeoutSeconds:  getEnvInt("SERVER_READ_TIMEOUT_SECONDS", 15),
			WriteTimeoutSeconds: getEnvInt("SERVER_WRITE_TIMEOUT_SECONDS", 30),
		},
	}, nil
}

func (c *Config) Validate() error {
	if c.Rake.MinWordLength < 1 {
		return fmt.Errorf("RAKE_MIN_WORD_LENGTH must be at least 1")
	}
	if c.Rake.MaxWordLength < c.Rake.MinWordLength {
		return fmt.Errorf("RAKE_MAX_WORD_LENGTH must not be below RAKE_MIN_WORD_LENGTH")
	}
	if c.Rake.MaxPhraseWords < 0 {
		return fmt.Errorf("RAKE_MAX_PHRASE_WORDS must not be negative")
	}
	if !textprocessor.IsSupportedLanguage(strings.TrimSpace(c.Rake.StemLanguage)) {
		return fmt.Errorf("RAKE_STEM_LANGUAGE %q is not supported", c.Rake.StemLanguage)
	}
	if c.Bulk.SamplePercentage <= 0 || c.Bulk.SamplePercentage > 1 {
		return fmt.Errorf("BULK_SAMPLE_PERCENTAGE must be in (0, 1]")
	}
	if c.Bulk.Workers < 1 {
		return fmt.Errorf("BULK_WORKERS must be at least 1")
	}
	if c.Bulk.BatchSize < 1 {
		return fmt.Errorf("BULK_BATCH_SIZE must be at least 1")
	}
	if c.Server.CacheSize < 1 {
		return fmt.Errorf("SERVER_CACHE_SIZE must be at least 1")
	}
	return nil
}

func parseEnvironment(envStr string) Environment {
	env := Environment(strings.ToLower(envStr))

	switch env {
	case Development, Production:
		return env
	default:
		return Development
	}
}

func getLogLevel(env Environment) string {
	if env == Production {
		return getEnv("APP_LOG_LEVEL", "info")
	}

	return getEnv("APP_LOG_LEVEL", "debug")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
