package app

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func execute(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := a.createRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// TestExecute_Version verifies the version command.
func TestExecute_Version(t *testing.T) {
	a := newTestApp(t)

	out, err := execute(t, a, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "venuemap 1.0.0") {
		t.Errorf("version output = %q", out)
	}
}

// TestExecute_GlobalFlags verifies persistent flags reach the configuration.
func TestExecute_GlobalFlags(t *testing.T) {
	a := newTestApp(t)

	out, err := execute(t, a, "--database-url", "memory://", "--log-level", "error", "-o", "json", "targets")
	if err != nil {
		t.Fatalf("targets failed: %v", err)
	}

	if a.Config().Format != "json" || a.Config().LogLevel != "error" {
		t.Errorf("Format/LogLevel = %q/%q, want json/error", a.Config().Format, a.Config().LogLevel)
	}
	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("targets -o json is not JSON: %v\n%s", err, out)
	}
	if _, ok := decoded["venues"]; !ok {
		t.Errorf("targets JSON has no venues: %s", out)
	}
}

// TestExecute_InvalidFormat verifies unknown formats are rejected.
func TestExecute_InvalidFormat(t *testing.T) {
	a := newTestApp(t)

	if _, err := execute(t, a, "-o", "xml", "targets"); err == nil {
		t.Error("expected an error for -o xml")
	}
}

// TestExecute_LatestEmptyStore verifies reads work on an empty store.
func TestExecute_LatestEmptyStore(t *testing.T) {
	a := newTestApp(t)

	_, err := execute(t, a, "-o", "json", "history")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if _, err := execute(t, a, "latest"); err == nil {
		t.Error("latest on an empty store should fail")
	}
}
