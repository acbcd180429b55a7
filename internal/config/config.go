// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Data    DataConfig
	Catalog CatalogConfig
	Server  ServerConfig
	Auth    AuthConfig
	Season  SeasonConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// DataConfig holds entity store configuration.
type DataConfig struct {
	// BasePath is the directory for the badger database and derived files.
	BasePath string
}

// CatalogConfig holds camp catalog configuration.
type CatalogConfig struct {
	// Path is the directory of camp catalog JSON files.
	Path string
	// Watch enables hot-reload of catalog files (default: true).
	Watch bool
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Name         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// AuthConfig holds token verification configuration.
type AuthConfig struct {
	// PASETO v4 symmetric key for access tokens (32 bytes).
	AccessTokenKey []byte
	// AccessTokenDuration is the lifetime of minted tokens (e.g., 24h).
	AccessTokenDuration time.Duration
}

// SeasonConfig holds summer season defaults and planning knobs.
type SeasonConfig struct {
	// DefaultSchoolEnd is used when an account profile has no school-end date.
	DefaultSchoolEnd string
	// DefaultSchoolStart is used when an account profile has no school-start date.
	DefaultSchoolStart string
	// BudgetWarnFraction is the fraction of budget at which to flag warnings.
	BudgetWarnFraction float64
}

// LoadConfig loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	catalogPath := flag.String("catalog-path", "", "Path to camp catalog directory")
	catalogWatch := flag.String("catalog-watch", "", "Hot-reload catalog files on change (default: true)")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	accessTokenDuration := flag.String("access-token-duration", "", "Access token lifetime (e.g., 24h)")
	schoolEnd := flag.String("default-school-end", "", "Default school end date (YYYY-MM-DD)")
	schoolStart := flag.String("default-school-start", "", "Default school start date (YYYY-MM-DD)")
	budgetWarn := flag.String("budget-warn-fraction", "", "Fraction of budget at which to warn (default: 0.8)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "SUMMERPLAN_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "SUMMERPLAN_LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getConfigValue(*dataPath, "SUMMERPLAN_DATA_PATH", ""),
		},
		Catalog: CatalogConfig{
			Path:  getConfigValue(*catalogPath, "SUMMERPLAN_CATALOG_PATH", ""),
			Watch: getBoolConfigValue(*catalogWatch, "SUMMERPLAN_CATALOG_WATCH", true),
		},
		Server: ServerConfig{
			Name: getConfigValue(*serverName, "SUMMERPLAN_SERVER_NAME", "SummerPlan Server"),
			Port: getConfigValue(*serverPort, "SUMMERPLAN_SERVER_PORT", "8080"),
		},
		Season: SeasonConfig{
			DefaultSchoolEnd:   getConfigValue(*schoolEnd, "DEFAULT_SCHOOL_END", "2026-06-05"),
			DefaultSchoolStart: getConfigValue(*schoolStart, "DEFAULT_SCHOOL_START", "2026-08-19"),
			BudgetWarnFraction: getFloatConfigValue(*budgetWarn, "SEASON_BUDGET_WARN_FRACTION", 0.8),
		},
	}

	accessDurationStr := getConfigValue(*accessTokenDuration, "SUMMERPLAN_ACCESS_TOKEN_DURATION", "24h")
	accessDuration, err := time.ParseDuration(accessDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration %q: %w", accessDurationStr, err)
	}
	cfg.Auth.AccessTokenDuration = accessDuration

	timeouts := []struct {
		dest     *time.Duration
		flagVal  string
		envKey   string
		fallback string
	}{
		{&cfg.Server.ReadTimeout, *readTimeout, "SUMMERPLAN_READ_TIMEOUT", "15s"},
		{&cfg.Server.WriteTimeout, *writeTimeout, "SUMMERPLAN_WRITE_TIMEOUT", "15s"},
		{&cfg.Server.IdleTimeout, *idleTimeout, "SUMMERPLAN_IDLE_TIMEOUT", "60s"},
	}
	for _, t := range timeouts {
		s := getConfigValue(t.flagVal, t.envKey, t.fallback)
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: %w", t.envKey, s, err)
		}
		*t.dest = d
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandCatalogPath(); err != nil {
		return nil, fmt.Errorf("invalid catalog path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if _, err := time.Parse("2006-01-02", c.Season.DefaultSchoolEnd); err != nil {
		return fmt.Errorf("invalid DEFAULT_SCHOOL_END %q: %w", c.Season.DefaultSchoolEnd, err)
	}
	if _, err := time.Parse("2006-01-02", c.Season.DefaultSchoolStart); err != nil {
		return fmt.Errorf("invalid DEFAULT_SCHOOL_START %q: %w", c.Season.DefaultSchoolStart, err)
	}

	if c.Season.BudgetWarnFraction <= 0 || c.Season.BudgetWarnFraction > 1 {
		return fmt.Errorf("invalid SEASON_BUDGET_WARN_FRACTION %v (must be in (0, 1])", c.Season.BudgetWarnFraction)
	}

	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty and defaultPath is provided, uses the default.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// expandDataPath expands ~ and makes the path absolute, defaulting under the home directory.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "SummerPlan", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

// expandCatalogPath expands ~ and makes the path absolute.
// If empty, leaves it empty; the catalog then starts with no camps.
func (c *Config) expandCatalogPath() error {
	if c.Catalog.Path == "" {
		return nil
	}

	expanded, err := expandPath(c.Catalog.Path, "")
	if err != nil {
		return err
	}
	c.Catalog.Path = expanded
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getFloatConfigValue returns a float64 from flag, env var, or default.
func getFloatConfigValue(flagValue, envKey string, defaultValue float64) float64 {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(strValue, 64)
	if err != nil {
		return defaultValue
	}
	return result
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		// Env vars take precedence over .env file.
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
