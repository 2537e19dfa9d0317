package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Defaults.Size != 300 {
		t.Errorf("Default size = %d, want 300", cfg.Defaults.Size)
	}
	if cfg.Defaults.Workers != 1 {
		t.Errorf("Default workers = %d, want 1", cfg.Defaults.Workers)
	}
	if cfg.Defaults.Filter != "lanczos" {
		t.Errorf("Default filter = %s, want lanczos", cfg.Defaults.Filter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Save_Load(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Size = 512
	cfg.Defaults.Workers = 4

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if loaded.Defaults.Size != 512 {
		t.Errorf("Loaded size = %d, want 512", loaded.Defaults.Size)
	}
	if loaded.Defaults.Workers != 4 {
		t.Errorf("Loaded workers = %d, want 4", loaded.Defaults.Workers)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Size != 300 {
		t.Errorf("size = %d, want 300", cfg.Defaults.Size)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults:\n  size: 250\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Defaults.Size != 250 {
		t.Errorf("size = %d, want 250", cfg.Defaults.Size)
	}
	if cfg.Mask.CacheSize != 16 {
		t.Errorf("cache_size = %d, want default 16", cfg.Mask.CacheSize)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("defaults: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for invalid yaml")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero size", func(c *Config) { c.Defaults.Size = 0 }, "defaults.size"},
		{"too many workers", func(c *Config) { c.Defaults.Workers = 65 }, "defaults.workers"},
		{"unknown filter", func(c *Config) { c.Defaults.Filter = "bicubic" }, "defaults.filter"},
		{"zero cache", func(c *Config) { c.Mask.CacheSize = 0 }, "mask.cache_size"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvSize:     "128",
		EnvWorkers:  "3",
		EnvFilter:   "Linear",
		EnvLogLevel: "DEBUG",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg := DefaultConfig()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Defaults.Size != 128 || cfg.Defaults.Workers != 3 {
		t.Errorf("size/workers = %d/%d, want 128/3", cfg.Defaults.Size, cfg.Defaults.Workers)
	}
	if cfg.Defaults.Filter != "linear" || cfg.Log.Level != "debug" {
		t.Errorf("filter/level = %s/%s, want linear/debug", cfg.Defaults.Filter, cfg.Log.Level)
	}

	env[EnvSize] = "big"
	if err := DefaultConfig().ApplyEnv(lookup); err == nil {
		t.Error("ApplyEnv() expected error for non-numeric size")
	}
}

func TestLoadEnvFile(t *testing.T) {
	if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("LoadEnvFile() on missing file error = %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PHOTOCCROP_TEST_ONLY=42\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PHOTOCCROP_TEST_ONLY", "")
	os.Unsetenv("PHOTOCCROP_TEST_ONLY")

	if err := LoadEnvFile(path); err != nil {
		t.Fatalf("LoadEnvFile() error = %v", err)
	}
	if got := os.Getenv("PHOTOCCROP_TEST_ONLY"); got != "42" {
		t.Errorf("PHOTOCCROP_TEST_ONLY = %q, want 42", got)
	}
}

func TestAppDir(t *testing.T) {
	dir := AppDir()
	if dir == "" {
		t.Error("AppDir() returned empty string")
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".photoccrop")
	if dir != expected {
		t.Errorf("AppDir() = %s, want %s", dir, expected)
	}
}
