package envutil

import (
	"os"
	"strconv"
	"strings"

	"github.com/campushare/campushare-backend/internal/pkg/logger"
)

func GetEnv(key, fallback string, log *logger.Logger) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		if log != nil {
			log.Debug("env var not set, using fallback", "key", key, "fallback", fallback)
		}
		return fallback
	}
	return value
}

func GetEnvAsInt(key string, fallback int, log *logger.Logger) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		if log != nil {
			log.Warn("invalid integer env var, using fallback", "key", key, "value", value)
		}
		return fallback
	}
	return parsed
}

func GetEnvAsBool(key string, fallback bool, log *logger.Logger) bool {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		if log != nil {
			log.Warn("invalid boolean env var, using fallback", "key", key, "value", value)
		}
		return fallback
	}
	return parsed
}
