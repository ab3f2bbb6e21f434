package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/agentstation/venuemap"
	"github.com/agentstation/venuemap/internal/sources/replay"
	"github.com/agentstation/venuemap/pkg/errors"
	"github.com/agentstation/venuemap/pkg/targets"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	isolate(t)

	app, err := New("1.0.0", "abc123", "2025-03-10", "test")
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	app.config.DatabaseURL = "memory://"
	t.Cleanup(func() { _ = app.Shutdown(context.Background()) })
	return app
}

// TestApp_New verifies app initialization.
func TestApp_New(t *testing.T) {
	app := newTestApp(t)

	if app.Version() != "1.0.0" {
		t.Errorf("Version() = %s, want 1.0.0", app.Version())
	}
	if app.Commit() != "abc123" {
		t.Errorf("Commit() = %s, want abc123", app.Commit())
	}
	if app.Date() != "2025-03-10" {
		t.Errorf("Date() = %s, want 2025-03-10", app.Date())
	}
	if app.BuiltBy() != "test" {
		t.Errorf("BuiltBy() = %s, want test", app.BuiltBy())
	}
	if app.Logger() == nil {
		t.Error("Logger() returned nil")
	}
	if app.Config() == nil {
		t.Error("Config() returned nil")
	}
}

// TestApp_Client_Singleton verifies that Client() returns the same instance.
func TestApp_Client_Singleton(t *testing.T) {
	app := newTestApp(t)

	c1, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}
	c2, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed on second call: %v", err)
	}
	if c1 != c2 {
		t.Error("Client() returned different instances")
	}
}

// TestApp_Client_WithoutCredentials verifies reads work without provider
// credentials and syncs report the missing key.
func TestApp_Client_WithoutCredentials(t *testing.T) {
	app := newTestApp(t)

	client, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	market, err := client.Market(context.Background())
	if err != nil {
		t.Fatalf("Market() failed: %v", err)
	}
	if !market.Empty() {
		t.Error("new store should be empty")
	}

	if _, err := client.Sync(context.Background()); err == nil {
		t.Error("Sync() without credentials should fail")
	}
	if _, err := app.Source(); err == nil {
		t.Error("Source() without credentials should fail")
	}
}

// TestApp_ClientWithOptions verifies option overrides get a fresh client.
func TestApp_ClientWithOptions(t *testing.T) {
	app := newTestApp(t)

	shared, err := app.Client()
	if err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	c, err := app.ClientWithOptions(venuemap.WithSource(replay.New(filepath.Join(t.TempDir(), "missing.md"))))
	if err != nil {
		t.Fatalf("ClientWithOptions() failed: %v", err)
	}
	defer func() { _ = c.Close() }()

	if c == shared {
		t.Error("ClientWithOptions() returned the shared client")
	}
	if _, err := c.Sync(context.Background()); !errors.IsNotFound(err) {
		t.Errorf("Sync() error = %v, want not found from the replay source", err)
	}
}

// TestApp_Targets verifies the built-in market is used without a targets file.
func TestApp_Targets(t *testing.T) {
	app := newTestApp(t)

	cfg, err := app.Targets()
	if err != nil {
		t.Fatalf("Targets() failed: %v", err)
	}
	if len(cfg.Venues) != len(targets.Default().Venues) {
		t.Errorf("Targets() has %d venues, want %d", len(cfg.Venues), len(targets.Default().Venues))
	}

	again, _ := app.Targets()
	if again != cfg {
		t.Error("Targets() should be loaded once")
	}
}

// TestApp_Targets_MissingFile verifies a configured targets file must exist.
func TestApp_Targets_MissingFile(t *testing.T) {
	app := newTestApp(t)
	app.config.TargetsFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := app.Targets(); err == nil {
		t.Error("Targets() with a missing file should fail")
	}
	if _, err := app.Client(); err == nil {
		t.Error("Client() with a missing targets file should fail")
	}
}

// TestApp_Shutdown verifies shutdown is idempotent.
func TestApp_Shutdown(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.Client(); err != nil {
		t.Fatalf("Client() failed: %v", err)
	}

	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() failed: %v", err)
	}
	if err := app.Shutdown(context.Background()); err != nil {
		t.Errorf("second Shutdown() failed: %v", err)
	}
}
