package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NexusOnePlus/spacedrive/schema"
)

func writeTestConfig(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "tabs.yaml")
	data := fmt.Sprintf("config_version: 1\nstate_dir: %s\nstorage:\n  backend: %s\n", filepath.Join(dir, "state"), backend)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := run(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func listLines(out string) []string {
	return strings.Split(strings.TrimSpace(out), "\n")
}

func TestRootHasCommands(t *testing.T) {
	root := newRootCmd()
	want := map[string]bool{"tabs": false, "view": false, "config": false, "version": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("expected root command to include %s", name)
		}
	}
}

func TestTabsWorkflow(t *testing.T) {
	for _, backend := range []string{"file", "sqlite"} {
		cfg := writeTestConfig(t, backend)

		lines := listLines(mustRun(t, cfg, "tabs", "list"))
		if len(lines) != 1 || !strings.HasPrefix(lines[0], "*") || !strings.Contains(lines[0], "Overview") {
			t.Fatalf("%s: unexpected fresh list %q", backend, lines)
		}

		id := strings.TrimSpace(mustRun(t, cfg, "tabs", "new", "/favorites"))
		if id == "" {
			t.Fatalf("%s: expected new tab id", backend)
		}
		lines = listLines(mustRun(t, cfg, "tabs", "list"))
		if len(lines) != 2 || !strings.HasPrefix(lines[1], "*") || !strings.Contains(lines[1], id) || !strings.Contains(lines[1], "Favorites") {
			t.Fatalf("%s: expected new tab active after reload, got %q", backend, lines)
		}

		lines = listLines(mustRun(t, cfg, "tabs", "prev"))
		if !strings.HasPrefix(lines[0], "*") {
			t.Fatalf("%s: expected first tab active, got %q", backend, lines)
		}

		lines = listLines(mustRun(t, cfg, "tabs", "move", "1", "2"))
		if !strings.Contains(lines[0], id) {
			t.Fatalf("%s: expected %s first after move, got %q", backend, id, lines)
		}

		lines = listLines(mustRun(t, cfg, "tabs", "close", id))
		if len(lines) != 1 || !strings.HasPrefix(lines[0], "*") {
			t.Fatalf("%s: unexpected list after close %q", backend, lines)
		}
		if out := mustRun(t, cfg, "tabs", "close"); !strings.Contains(out, "last tab stays open") {
			t.Fatalf("%s: expected last tab to stay, got %q", backend, out)
		}
	}
}

func TestTabsRenameAndNavigate(t *testing.T) {
	cfg := writeTestConfig(t, "file")
	mustRun(t, cfg, "tabs", "navigate", "/explorer?view=device")
	if out := mustRun(t, cfg, "tabs", "list"); !strings.Contains(out, "This Device") {
		t.Fatalf("expected derived device title, got %q", out)
	}
	mustRun(t, cfg, "tabs", "rename", "Home")
	mustRun(t, cfg, "tabs", "navigate", "/jobs")
	if out := mustRun(t, cfg, "tabs", "list"); !strings.Contains(out, "Home") {
		t.Fatalf("expected explicit title to persist, got %q", out)
	}
	mustRun(t, cfg, "tabs", "rename")
	if out := mustRun(t, cfg, "tabs", "list"); !strings.Contains(out, "Jobs") {
		t.Fatalf("expected derived title after reset, got %q", out)
	}
}

func TestTabsSelectOutOfRange(t *testing.T) {
	cfg := writeTestConfig(t, "memory")
	if _, err := run(t, cfg, "tabs", "select", "3"); !errors.Is(err, schema.ErrTabNotFound) {
		t.Fatalf("expected ErrTabNotFound, got %v", err)
	}
	if _, err := run(t, cfg, "tabs", "switch", "nope"); !errors.Is(err, schema.ErrTabNotFound) {
		t.Fatalf("expected ErrTabNotFound, got %v", err)
	}
}

func TestTabsDefaultPath(t *testing.T) {
	cfg := writeTestConfig(t, "file")
	if out := strings.TrimSpace(mustRun(t, cfg, "tabs", "default-path", "/recents")); out != "/recents" {
		t.Fatalf("unexpected default path %q", out)
	}
	if out := strings.TrimSpace(mustRun(t, cfg, "tabs", "default-path")); out != "/recents" {
		t.Fatalf("expected default path to persist, got %q", out)
	}
	mustRun(t, cfg, "tabs", "new")
	if out := mustRun(t, cfg, "tabs", "list"); !strings.Contains(out, "Recents") {
		t.Fatalf("expected new tab at default path, got %q", out)
	}
}

func TestViewSetShowReset(t *testing.T) {
	cfg := writeTestConfig(t, "file")
	mustRun(t, cfg, "view", "set", "--mode", "list", "--sort", "date-modified", "--column-stack", "/a,/a/b")
	out := mustRun(t, cfg, "view", "show")
	for _, want := range []string{`"viewMode": "list"`, `"sortBy": "modified"`, `"/a/b"`, `"gridSize": 120`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	mustRun(t, cfg, "view", "reset")
	if out := mustRun(t, cfg, "view", "show"); !strings.Contains(out, `"viewMode": "grid"`) {
		t.Fatalf("expected defaults after reset, got %s", out)
	}
}

func TestViewSetRejectsBadInput(t *testing.T) {
	cfg := writeTestConfig(t, "memory")
	if _, err := run(t, cfg, "view", "set"); err == nil {
		t.Fatalf("expected error without fields")
	}
	if _, err := run(t, cfg, "view", "set", "--mode", "grirf"); !errors.Is(err, schema.ErrInvalidViewMode) {
		t.Fatalf("expected ErrInvalidViewMode, got %v", err)
	}
	if _, err := run(t, cfg, "view", "set", "--sort", "colour"); !errors.Is(err, schema.ErrInvalidSortBy) {
		t.Fatalf("expected ErrInvalidSortBy, got %v", err)
	}
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "nested", "tabs.yaml")
	if out := mustRun(t, path, "config", "init"); !strings.Contains(out, path) {
		t.Fatalf("expected written path, got %q", out)
	}
	if _, err := run(t, path, "config", "init"); err == nil {
		t.Fatalf("expected existing config to be kept")
	}
	mustRun(t, path, "config", "init", "--force")
	mustRun(t, path, "tabs", "list")
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		t.Fatalf("unexpected version output %q", out.String())
	}
}
