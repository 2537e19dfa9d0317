package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file
const (
	EnvSize     = "PHOTOCCROP_SIZE"
	EnvWorkers  = "PHOTOCCROP_WORKERS"
	EnvFilter   = "PHOTOCCROP_FILTER"
	EnvLogLevel = "PHOTOCCROP_LOG_LEVEL"
)

// Config represents the application configuration
type Config struct {
	Defaults DefaultsConfig `yaml:"defaults"`
	Mask     MaskConfig     `yaml:"mask"`
	Log      LogConfig      `yaml:"log"`
}

// DefaultsConfig holds default values for crop commands
type DefaultsConfig struct {
	Size    int    `yaml:"size" validate:"min=1,max=10000"`
	Workers int    `yaml:"workers" validate:"min=1,max=64"`
	Filter  string `yaml:"filter" validate:"oneof=lanczos catmullrom linear nearest"`
}

// MaskConfig controls mask memoization
type MaskConfig struct {
	CacheSize int `yaml:"cache_size" validate:"min=1,max=1024"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Defaults: DefaultsConfig{
			Size:    300,
			Workers: 1,
			Filter:  "lanczos",
		},
		Mask: MaskConfig{
			CacheSize: 16,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// AppDir returns the application directory (~/.photoccrop)
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".photoccrop"
	}
	return filepath.Join(home, ".photoccrop")
}

// ConfigPath returns the config file path
func ConfigPath() string {
	return filepath.Join(AppDir(), "config.yaml")
}

// EnsureDirs creates all required directories
func EnsureDirs() error {
	if err := os.MkdirAll(AppDir(), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", AppDir(), err)
	}
	return nil
}

// Load reads config from file, returns default if not exists
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// LoadDefault loads config from default path
func LoadDefault() (*Config, error) {
	return Load(ConfigPath())
}

// Save writes config to file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveDefault saves config to default path
func (c *Config) SaveDefault() error {
	return c.Save(ConfigPath())
}

// LoadEnvFile copies KEY=value pairs from a .env file into the process
// environment. A missing file is not an error; variables already set win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides values from environment variables looked up with lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvSize, v)
		}
		c.Defaults.Size = n
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %s", EnvWorkers, v)
		}
		c.Defaults.Workers = n
	}
	if v, ok := lookup(EnvFilter); ok && v != "" {
		c.Defaults.Filter = strings.ToLower(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report yaml names so messages match the config file
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		msgs = append(msgs, fmt.Sprintf("%s: %v violates %s=%s", field, fe.Value(), fe.Tag(), fe.Param()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
