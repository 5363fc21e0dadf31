package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks cfg for values the client cannot operate with.
func Validate(cfg *Config) error {
	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}

	if err := validateHTTP(&cfg.HTTP); err != nil {
		return fmt.Errorf("http config: %w", err)
	}

	if err := validateAPI(&cfg.API); err != nil {
		return fmt.Errorf("api config: %w", err)
	}

	return nil
}

func validateLog(cfg *LogConfig) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !slices.Contains(validLevels, cfg.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			cfg.Level, strings.Join(validLevels, ", "))
	}

	return nil
}

func validateHTTP(cfg *HTTPConfig) error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}

	if cfg.Token.Header == "" {
		return fmt.Errorf("token header is required")
	}

	if cfg.RequestID.Header == "" {
		return fmt.Errorf("request ID header is required")
	}

	return nil
}

func validateAPI(cfg *APIConfig) error {
	if cfg.BaseDomain == "" {
		return fmt.Errorf("base domain is required")
	}

	return nil
}
