package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variables read by FromEnv.
const (
	EnvPeriod    = "USAGE_PERIOD"
	EnvFormat    = "USAGE_FORMAT"
	EnvRating    = "USAGE_RATING"
	EnvFallbacks = "USAGE_FALLBACKS" // Comma-separated
	EnvOutput    = "USAGE_OUTPUT"
	EnvBaseURL   = "USAGE_BASE_URL"
	EnvTimeout   = "USAGE_TIMEOUT_SECONDS"
	EnvLimit     = "USAGE_LIMIT"
	EnvLogLevel  = "USAGE_LOG_LEVEL"
	EnvLogFile   = "USAGE_LOG_FILE"
)

// FromEnv builds a Config from environment variables. Unset or unparsable
// variables leave the field at its zero value so defaults can fill it.
func FromEnv() Config {
	return Config{
		Period:         getEnvString(EnvPeriod, ""),
		Format:         getEnvString(EnvFormat, ""),
		Rating:         getEnvInt(EnvRating, 0),
		Fallbacks:      getEnvList(EnvFallbacks),
		Output:         getEnvString(EnvOutput, ""),
		BaseURL:        getEnvString(EnvBaseURL, ""),
		TimeoutSeconds: getEnvInt(EnvTimeout, 0),
		Limit:          getEnvInt(EnvLimit, 0),
		LogLevel:       getEnvString(EnvLogLevel, ""),
		LogFile:        getEnvString(EnvLogFile, ""),
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated environment variable, dropping empty entries.
func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
