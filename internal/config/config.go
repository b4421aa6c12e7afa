package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds the tool's environment-backed defaults. CLI flags override
// these per invocation.
type Config struct {
	StringsFile    string
	TempTag        string
	Routine        string
	DevLocale      string
	WorkerCount    int
	FailOnDefaults bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	return &Config{
		StringsFile:    getEnv("STRINGSYNC_STRINGS_FILE", "Localizable.strings"),
		TempTag:        getEnv("STRINGSYNC_TEMP_TAG", "*"),
		Routine:        getEnv("STRINGSYNC_ROUTINE", "NSLocalizedString"),
		DevLocale:      getEnv("STRINGSYNC_DEV_LOCALE", "en"),
		WorkerCount:    getEnvInt("STRINGSYNC_WORKER_COUNT", 4),
		FailOnDefaults: getEnvBool("STRINGSYNC_FAIL_ON_DEFAULTS", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
