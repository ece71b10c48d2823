package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

// setConfigHome points XDG at dir for the duration of the test. The xdg
// package caches the environment at init, so it must be reloaded both after
// the override and after the test restores the original environment.
func setConfigHome(t *testing.T, dir string) {
	t.Helper()
	t.Cleanup(func() { xdg.Reload() })
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
}

func TestLoad_MissingConfigUsesDefaults(t *testing.T) {
	// Point XDG at an empty directory so no config file is found.
	setConfigHome(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no config file should not error, got: %v", err)
	}

	if cfg.LinterCommand != DefaultLinterCommand {
		t.Errorf("Expected default linter command %q, got %q", DefaultLinterCommand, cfg.LinterCommand)
	}
	if cfg.GitTimeoutSeconds != DefaultGitTimeoutSeconds {
		t.Errorf("Expected default git timeout %d, got %d", DefaultGitTimeoutSeconds, cfg.GitTimeoutSeconds)
	}
	if cfg.GuidelineDir != "" {
		t.Errorf("Expected empty guideline dir by default, got %q", cfg.GuidelineDir)
	}
}

func TestLoadFrom(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		expectError bool
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			content: `guideline_dir: /etc/commitkit/guides
linter_command: commitlint
git_timeout_seconds: 5
lint_timeout_seconds: 20
version: "1.0"
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.GuidelineDir != "/etc/commitkit/guides" {
					t.Errorf("GuidelineDir = %q", cfg.GuidelineDir)
				}
				if cfg.GitTimeout() != 5*time.Second {
					t.Errorf("GitTimeout = %v", cfg.GitTimeout())
				}
				if cfg.LintTimeout() != 20*time.Second {
					t.Errorf("LintTimeout = %v", cfg.LintTimeout())
				}
			},
		},
		{
			name:    "partial config gets defaults",
			content: "guideline_dir: /somewhere\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.LinterCommand != DefaultLinterCommand {
					t.Errorf("Expected default linter command, got %q", cfg.LinterCommand)
				}
				if cfg.GitTimeoutSeconds != DefaultGitTimeoutSeconds {
					t.Errorf("Expected default git timeout, got %d", cfg.GitTimeoutSeconds)
				}
			},
		},
		{
			name:    "negative timeout replaced",
			content: "git_timeout_seconds: -1\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.GitTimeoutSeconds != DefaultGitTimeoutSeconds {
					t.Errorf("Expected negative timeout replaced with default, got %d", cfg.GitTimeoutSeconds)
				}
			},
		},
		{
			name:        "invalid yaml",
			content:     "guideline_dir: [unterminated\n",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("Failed to write test config: %v", err)
			}

			cfg, err := LoadFrom(path)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFrom failed: %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestSaveTo_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	original := DefaultConfig()
	original.GuidelineDir = "/custom/guides"
	original.LintTimeoutSeconds = 30

	if err := original.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	if original.InitTime == 0 {
		t.Error("InitTime should be set on first save")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.GuidelineDir != original.GuidelineDir {
		t.Errorf("GuidelineDir = %q, want %q", loaded.GuidelineDir, original.GuidelineDir)
	}
	if loaded.LintTimeoutSeconds != original.LintTimeoutSeconds {
		t.Errorf("LintTimeoutSeconds = %d, want %d", loaded.LintTimeoutSeconds, original.LintTimeoutSeconds)
	}
	if loaded.InitTime != original.InitTime {
		t.Errorf("InitTime = %d, want %d", loaded.InitTime, original.InitTime)
	}
}

func TestSaveTo_RestrictivePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("Expected config file mode 0600, got %o", perm)
	}
}

func TestConfigPath(t *testing.T) {
	setConfigHome(t, "/custom/config")

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath failed: %v", err)
	}
	if path != filepath.Join("/custom/config", APP_NAME, "config.yaml") {
		t.Errorf("Unexpected config path: %q", path)
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	setConfigHome(t, dir)

	path, exists := FindConfigFile()
	if exists {
		t.Fatal("Expected no config file in a fresh directory")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	found, exists := FindConfigFile()
	if !exists {
		t.Fatal("Expected config file to be found after writing it")
	}
	if found != path {
		t.Errorf("FindConfigFile = %q, want %q", found, path)
	}
}
