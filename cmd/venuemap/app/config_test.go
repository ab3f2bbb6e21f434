package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/agentstation/venuemap/pkg/constants"
)

// isolate runs the test in an empty directory with a clean environment so
// neither the developer's .env files nor their config leak in.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"DATABASE_URL", "VENUEMAP_DATABASE_URL", "VENUEMAP_TARGETS", "VENUEMAP_HISTORY_LIMIT",
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL", "GEMINI_TEMPERATURE",
		"GOOGLE_CLOUD_PROJECT", "GOOGLE_CLOUD_LOCATION", "VENUEMAP_SYNC_INTERVAL",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT", "VENUEMAP_CONFIG",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// TestLoadConfig verifies defaults.
func TestLoadConfig(t *testing.T) {
	isolate(t)

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DatabaseURL != constants.DefaultDatabaseURL {
		t.Errorf("DatabaseURL = %q, want %q", config.DatabaseURL, constants.DefaultDatabaseURL)
	}
	if config.GeminiModel != constants.DefaultModel {
		t.Errorf("GeminiModel = %q, want %q", config.GeminiModel, constants.DefaultModel)
	}
	if config.Temperature != constants.DefaultTemperature {
		t.Errorf("Temperature = %v, want %v", config.Temperature, constants.DefaultTemperature)
	}
	if config.HistoryLimit != constants.DefaultHistoryLimit {
		t.Errorf("HistoryLimit = %d, want %d", config.HistoryLimit, constants.DefaultHistoryLimit)
	}
	if config.AutoSyncInterval != constants.DefaultSyncInterval {
		t.Errorf("AutoSyncInterval = %v, want %v", config.AutoSyncInterval, constants.DefaultSyncInterval)
	}
	if config.TargetsFile != "" {
		t.Errorf("TargetsFile = %q, want empty", config.TargetsFile)
	}
	if config.LogFormat != "auto" || config.LogOutput != "stderr" {
		t.Errorf("LogFormat/LogOutput = %q/%q, want auto/stderr", config.LogFormat, config.LogOutput)
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	isolate(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@db/venuemap")
	t.Setenv("GEMINI_API_KEY", "key-1")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")
	t.Setenv("VENUEMAP_SYNC_INTERVAL", "1h")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DatabaseURL != "postgres://u:p@db/venuemap" {
		t.Errorf("DatabaseURL = %q", config.DatabaseURL)
	}
	if config.GeminiAPIKey != "key-1" {
		t.Errorf("GeminiAPIKey = %q, want key-1", config.GeminiAPIKey)
	}
	if config.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", config.Temperature)
	}
	if config.AutoSyncInterval != time.Hour {
		t.Errorf("AutoSyncInterval = %v, want 1h", config.AutoSyncInterval)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", config.LogLevel)
	}
}

// TestConfig_EnvironmentAliases verifies the fallback variable names.
func TestConfig_EnvironmentAliases(t *testing.T) {
	isolate(t)
	t.Setenv("VENUEMAP_DATABASE_URL", "memory://")
	t.Setenv("GOOGLE_API_KEY", "google-key")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.DatabaseURL != "memory://" {
		t.Errorf("DatabaseURL = %q, want memory://", config.DatabaseURL)
	}
	if config.GeminiAPIKey != "google-key" {
		t.Errorf("GeminiAPIKey = %q, want google-key", config.GeminiAPIKey)
	}
}

// TestConfig_InvalidSyncInterval verifies non-positive intervals fall back.
func TestConfig_InvalidSyncInterval(t *testing.T) {
	isolate(t)
	t.Setenv("VENUEMAP_SYNC_INTERVAL", "-5m")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.AutoSyncInterval != constants.DefaultSyncInterval {
		t.Errorf("AutoSyncInterval = %v, want %v", config.AutoSyncInterval, constants.DefaultSyncInterval)
	}
}

// TestConfig_File verifies config file loading and precedence.
func TestConfig_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "venuemap.yaml")
	writeFile(t, path, "database_url: memory://\ntargets: market.yaml\ngemini_model: gemini-2.5-pro\n")

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
	if config.DatabaseURL != "memory://" {
		t.Errorf("DatabaseURL = %q, want memory://", config.DatabaseURL)
	}
	if config.TargetsFile != "market.yaml" {
		t.Errorf("TargetsFile = %q, want market.yaml", config.TargetsFile)
	}

	// Environment beats the file
	t.Setenv("GEMINI_MODEL", "gemini-2.5-flash-lite")
	config, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.GeminiModel != "gemini-2.5-flash-lite" {
		t.Errorf("GeminiModel = %q, want gemini-2.5-flash-lite", config.GeminiModel)
	}
}

// TestConfig_DiscoveredFile verifies .venuemap.yaml in the working directory is read.
func TestConfig_DiscoveredFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".venuemap.yaml"), "history_limit: 50\n")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.HistoryLimit != 50 {
		t.Errorf("HistoryLimit = %d, want 50", config.HistoryLimit)
	}
}

// TestConfig_MissingExplicitFile verifies an explicit config file must exist.
func TestConfig_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("LoadConfig() with a missing explicit file should fail")
	}
}

// TestConfig_DefaultTargetsFile verifies targets.yaml is picked up automatically.
func TestConfig_DefaultTargetsFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, constants.DefaultTargetsFile), "subject: peace\n")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.TargetsFile != constants.DefaultTargetsFile {
		t.Errorf("TargetsFile = %q, want %q", config.TargetsFile, constants.DefaultTargetsFile)
	}
}

// TestConfig_EnvFile verifies .env files are loaded without overriding the environment.
func TestConfig_EnvFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, ".env"), "GEMINI_API_KEY=from-dotenv\nGEMINI_MODEL=from-dotenv\n")
	t.Setenv("GEMINI_MODEL", "from-env")

	config, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config.GeminiAPIKey != "from-dotenv" {
		t.Errorf("GeminiAPIKey = %q, want from-dotenv", config.GeminiAPIKey)
	}
	if config.GeminiModel != "from-env" {
		t.Errorf("GeminiModel = %q, want from-env", config.GeminiModel)
	}
}

// TestConfig_UpdateFromFlags verifies flags override loaded values.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{
		Format:      "table",
		LogLevel:    "info",
		DatabaseURL: "sqlite://a.db",
		TargetsFile: "a.yaml",
	}

	config.UpdateFromFlags(true, false, true, "json", "", "memory://", "")

	if !config.Verbose || config.Quiet || !config.NoColor {
		t.Errorf("Verbose/Quiet/NoColor = %v/%v/%v, want true/false/true", config.Verbose, config.Quiet, config.NoColor)
	}
	if config.Format != "json" {
		t.Errorf("Format = %q, want json", config.Format)
	}
	if config.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info (empty flag keeps value)", config.LogLevel)
	}
	if config.DatabaseURL != "memory://" {
		t.Errorf("DatabaseURL = %q, want memory://", config.DatabaseURL)
	}
	if config.TargetsFile != "a.yaml" {
		t.Errorf("TargetsFile = %q, want a.yaml", config.TargetsFile)
	}
}
