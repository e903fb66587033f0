package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() without a file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "metro")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "config.toml", "collapse = \"compact\"\n\n[serve]\naddr = \":9000\"\n")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Collapse != "compact" || cfg.Serve.Addr != ":9000" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}
	if cfg.Cache.Backend != BackendFile || cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "collapse = ", "load config"},
		{"unknown key", "colapse = \"compact\"\n", "unknown key"},
		{"unknown section key", "[cache]\nbakend = \"none\"\n", "unknown key"},
		{"bad collapse", "collapse = \"folded\"\n", "collapse"},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", "cache backend"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".toml", tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("LoadConfig() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadConfig() of an explicit missing file succeeded")
	}
}

func TestConfigBackendCase(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "config.toml", "[cache]\nbackend = \"NONE\"\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Cache.Backend != BackendNone {
		t.Errorf("backend = %q, want %q", cfg.Cache.Backend, BackendNone)
	}
}

func TestConfigCollapseApplied(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, t.TempDir(), "config.toml", "collapse = \"compact\"\n")
	script := writeFile(t, t.TempDir(), "wide.yaml", wideJoinScript)

	res := runCLI(t, "", "--config", cfg, "render", script)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := strings.Count(res.stdout, "\n"); got != 5 {
		t.Errorf("lines with compact config = %d, want 5", got)
	}

	// Flags override the config file.
	res = runCLI(t, "", "--config", cfg, "render", "--collapse", "stepwise", script)
	if res.err != nil {
		t.Fatal(res.err)
	}
	if got := strings.Count(res.stdout, "\n"); got != 6 {
		t.Errorf("lines with --collapse stepwise = %d, want 6", got)
	}
}

func TestBadConfigFailsCommands(t *testing.T) {
	isolate(t)
	cfg := writeFile(t, t.TempDir(), "config.toml", "[cache]\nbackend = \"memcached\"\n")

	if res := runCLI(t, "", "--config", cfg, "cache", "path"); res.err == nil {
		t.Error("command with an invalid config succeeded")
	}
}
