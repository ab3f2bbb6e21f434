package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/venuemap/pkg/constants"
	"github.com/agentstation/venuemap/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Storage and market
	DatabaseURL  string
	TargetsFile  string
	HistoryLimit int

	// Provider
	GeminiAPIKey string
	GeminiModel  string
	Temperature  float64
	GCPProject   string
	GCPRegion    string

	// Background sync
	AutoSyncInterval time.Duration

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables
//  3. .env files
//  4. Config file (./.venuemap.yaml, then $HOME/.venuemap.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("database_url", constants.DefaultDatabaseURL)
	v.SetDefault("history_limit", constants.DefaultHistoryLimit)
	v.SetDefault("gemini_model", constants.DefaultModel)
	v.SetDefault("temperature", constants.DefaultTemperature)
	v.SetDefault("google_cloud_location", "us-central1")
	v.SetDefault("sync_interval", constants.DefaultSyncInterval)

	bindEnv(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".venuemap")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicit file must exist; the search locations are optional.
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", "reading "+configFileName(v, configFile), err)
		}
	}

	config := &Config{
		ConfigFile: v.ConfigFileUsed(),

		DatabaseURL:  v.GetString("database_url"),
		TargetsFile:  v.GetString("targets"),
		HistoryLimit: v.GetInt("history_limit"),

		GeminiAPIKey: v.GetString("gemini_api_key"),
		GeminiModel:  v.GetString("gemini_model"),
		Temperature:  v.GetFloat64("temperature"),
		GCPProject:   v.GetString("google_cloud_project"),
		GCPRegion:    v.GetString("google_cloud_location"),

		AutoSyncInterval: v.GetDuration("sync_interval"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.GeminiAPIKey == "" {
		config.GeminiAPIKey = v.GetString("google_api_key")
	}
	if config.TargetsFile == "" {
		if _, err := os.Stat(constants.DefaultTargetsFile); err == nil {
			config.TargetsFile = constants.DefaultTargetsFile
		}
	}
	if config.AutoSyncInterval <= 0 {
		config.AutoSyncInterval = constants.DefaultSyncInterval
	}

	return config, nil
}

// UpdateFromFlags updates config values from parsed command flags so flag
// values take precedence over the config file and env vars. Empty values
// leave the loaded setting alone.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel, databaseURL, targetsFile string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if databaseURL != "" {
		c.DatabaseURL = databaseURL
	}
	if targetsFile != "" {
		c.TargetsFile = targetsFile
	}
}

// bindEnv binds settings to their conventional environment variable names.
func bindEnv(v *viper.Viper) {
	bindings := map[string][]string{
		"database_url":          {"DATABASE_URL", "VENUEMAP_DATABASE_URL"},
		"targets":               {"VENUEMAP_TARGETS"},
		"history_limit":         {"VENUEMAP_HISTORY_LIMIT"},
		"gemini_api_key":        {"GEMINI_API_KEY"},
		"google_api_key":        {"GOOGLE_API_KEY"},
		"gemini_model":          {"GEMINI_MODEL"},
		"temperature":           {"GEMINI_TEMPERATURE"},
		"google_cloud_project":  {"GOOGLE_CLOUD_PROJECT"},
		"google_cloud_location": {"GOOGLE_CLOUD_LOCATION"},
		"sync_interval":         {"VENUEMAP_SYNC_INTERVAL"},
		"log_level":             {"LOG_LEVEL"},
	}
	for key, envs := range bindings {
		// BindEnv only fails without a key.
		_ = v.BindEnv(append([]string{key}, envs...)...)
	}
}

// loadEnvFiles loads environment variables from .env files. Variables that
// are already set win.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func configFileName(v *viper.Viper, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return v.ConfigFileUsed()
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
