// filepath: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds the application's configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
	ETL      ETLConfig      `toml:"etl"`

	MaxDownloadSizeBytes int64 `toml:"-"` // Runtime computed value
}

// ServerConfig holds the server configuration.
type ServerConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	CORSOrigin string `toml:"cors_origin"` // Origin allowed to call the API from a browser
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	Path string `toml:"path"`
}

// LoggingConfig holds the logging configuration.
type LoggingConfig struct {
	Level        string `toml:"level"`
	AuditEnabled bool   `toml:"audit_enabled"` // Toggle for audit logs
}

// ETLConfig holds settings for the dataset collection pipeline.
type ETLConfig struct {
	Dataset         string `toml:"dataset"`           // Kaggle dataset in owner/slug form
	Table           string `toml:"table"`             // Target table for loaded games
	IfExists        string `toml:"if_exists"`         // "replace" or "append"
	BatchSize       int    `toml:"batch_size"`        // Rows per insert transaction batch
	CacheRoot       string `toml:"cache_root"`        // Directory for downloaded archives
	CacheMaxAge     string `toml:"cache_max_age"`     // e.g. "30d", "0" disables pruning
	MaxDownloadSize string `toml:"max_download_size"` // e.g. "500MB", cap on archive size
}

// LoadConfig loads the configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// SaveConfig writes the current configuration back to a TOML file.
func SaveConfig(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file for saving: %w", err)
	}
	defer f.Close()
	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config to file: %w", err)
	}
	return nil
}

// ParseAndValidate processes configuration strings into runtime values.
// It sets defaults if values are missing and parses human-readable sizes.
func (c *Config) ParseAndValidate() error {
	// Default MaxDownloadSize to 500MB if not specified
	if c.ETL.MaxDownloadSize == "" {
		c.ETL.MaxDownloadSize = "500MB"
	}

	sizeBytes, err := parseSize(c.ETL.MaxDownloadSize)
	if err != nil {
		return fmt.Errorf("invalid max_download_size: %w", err)
	}
	c.MaxDownloadSizeBytes = sizeBytes

	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 0 and 65535)", c.Server.Port)
	}

	if c.ETL.IfExists != "" && c.ETL.IfExists != "replace" && c.ETL.IfExists != "append" {
		return fmt.Errorf("invalid if_exists mode: %s (must be 'replace' or 'append')", c.ETL.IfExists)
	}

	if c.ETL.BatchSize < 0 {
		return fmt.Errorf("invalid batch_size: %d (must be positive)", c.ETL.BatchSize)
	}

	return nil
}

// parseSize parses a size string (e.g., "100G", "500MB") into bytes.
func parseSize(sizeStr string) (int64, error) {
	re := regexp.MustCompile(`(?i)^(\d+)\s*(K|M|G|T)?B?$`)
	matches := re.FindStringSubmatch(strings.TrimSpace(sizeStr))

	if len(matches) < 2 {
		return 0, fmt.Errorf("invalid size format: %s", sizeStr)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size number: %s", matches[1])
	}

	unit := ""
	if len(matches) > 2 {
		unit = strings.ToUpper(matches[2])
	}

	switch unit {
	case "T":
		return value * (1 << 40), nil
	case "G":
		return value * (1 << 30), nil
	case "M":
		return value * (1 << 20), nil
	case "K":
		return value * (1 << 10), nil
	default:
		return value, nil
	}
}
