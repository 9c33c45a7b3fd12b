// filepath: internal/cli/root.go
package cli

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/noahchrist/myCbbModel/internal/config"
	"github.com/noahchrist/myCbbModel/internal/logging"

	"github.com/spf13/cobra"
)

var (
	// Version info
	Version   = "0.1.0"
	StartTime time.Time

	// Global config object populated by flags/env/file
	cfg *config.Config

	// Flags
	cfgFile       string
	logLevel      string
	dbPath        string
	auditEnabled  bool
	port          int
	corsOrigin    string
	cacheRoot     string
	dataset       string
	table         string
	forceDownload bool
	runsLimit     int
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "cbbmodel",
	Short: "myCbbModel API & Web Interface",
	Long:  `A REST API and web frontend for a college basketball model, plus tooling to collect its game dataset.`,
	// PersistentPreRunE loads the configuration before any command runs.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// frontendFS holds the embedded frontend assets.
var frontendFS embed.FS

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(fs embed.FS) {
	frontendFS = fs // Store for use in runServer
	StartTime = time.Now()

	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Define flags.
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config_path", "config.toml", "Path to the base configuration file. (Env: CBB_CONFIG_PATH)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Logging level (debug, info, warn, error). (Env: CBB_LOG_LEVEL)")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database file. (Env: CBB_DATABASE_PATH)")
	RootCmd.PersistentFlags().BoolVar(&auditEnabled, "audit-enabled", false, "Enable detailed audit logging. (Env: CBB_AUDIT_ENABLED=true)")
}

// initializeConfig loads and overrides configuration values.
func initializeConfig(cmd *cobra.Command) error {
	// 1. Check environment variable for config path first
	if envPath := os.Getenv("CBB_CONFIG_PATH"); envPath != "" && cfgFile == "config.toml" {
		cfgFile = envPath
	}

	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		if os.IsNotExist(err) {
			// Create empty config if not found, rely on defaults/flags
			cfg = &config.Config{}
		} else {
			return fmt.Errorf("failed to load configuration from %s: %w", cfgFile, err)
		}
	}

	// 2. Apply Overrides (Env Vars and CLI Flags)
	applyOverrides(cfg, cmd)

	// 3. Validate
	if err := cfg.ParseAndValidate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// 4. Initialize Logging
	logging.Init(cfg.Logging.Level)

	return nil
}

func applyOverrides(c *config.Config, cmd *cobra.Command) {
	// Helper to get string from env or fallback
	getEnv := func(key string) string {
		return os.Getenv(key)
	}

	// --- 1. Environment Variables ---
	if v := getEnv("CBB_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getEnv("CBB_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := getEnv("CBB_AUDIT_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Logging.AuditEnabled = b
		}
	}
	if v := getEnv("CBB_DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := getEnv("CBB_CACHE_ROOT"); v != "" {
		c.ETL.CacheRoot = v
	}
	if v := getEnv("CBB_CORS_ORIGIN"); v != "" {
		c.Server.CORSOrigin = v
	}

	// --- 2. CLI Flags (Take precedence) ---
	if port != 0 {
		c.Server.Port = port
	}
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	// Check if flag was explicitly set
	if cmd.Flags().Changed("audit-enabled") {
		c.Logging.AuditEnabled = auditEnabled
	}
	if dbPath != "" {
		c.Database.Path = dbPath
	}
	if corsOrigin != "" {
		c.Server.CORSOrigin = corsOrigin
	}
	if cacheRoot != "" {
		c.ETL.CacheRoot = cacheRoot
	}

	// --- 3. Defaults ---
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.CORSOrigin == "" {
		c.Server.CORSOrigin = "http://localhost:5173"
	}
	if c.Database.Path == "" {
		c.Database.Path = "cbbmodel.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.ETL.Dataset == "" {
		c.ETL.Dataset = "nateduncan/2011current-ncaa-basketball-games"
	}
	if c.ETL.Table == "" {
		c.ETL.Table = "games_raw"
	}
	if c.ETL.IfExists == "" {
		c.ETL.IfExists = "replace"
	}
	if c.ETL.BatchSize == 0 {
		c.ETL.BatchSize = 500
	}
	if c.ETL.CacheMaxAge == "" {
		c.ETL.CacheMaxAge = "30d"
	}
	if c.ETL.CacheRoot == "" {
		if userCache, err := os.UserCacheDir(); err == nil {
			c.ETL.CacheRoot = filepath.Join(userCache, "cbbmodel")
		} else {
			c.ETL.CacheRoot = ".cbbmodel-cache"
		}
	}
}
