package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"budgman/internal/log"
)

const (
	AppDir          = "budgman"
	DefaultDBFile   = "data.db"
	DefaultConfFile = "config.yml"
)

type Config struct {
	// Store
	DBPath      string `yaml:"db_path"`
	DataBackend string `yaml:"backend"`

	// Active budget id as given by the user; parsed later by the resolver.
	Budget string `yaml:"budget"`

	// Logging
	LogLevel string `yaml:"log_level"`
}

// Dir is the per-user directory holding the store and the config file.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppDir)
}

// DefaultFile is the config file read by Load.
func DefaultFile() string {
	return filepath.Join(Dir(), DefaultConfFile)
}

func Defaults() *Config {
	return &Config{
		DBPath:      filepath.Join(Dir(), DefaultDBFile),
		DataBackend: "sqlite",
		LogLevel:    "warn",
	}
}

// Load reads the default config file, if any, then applies the environment.
func Load() (*Config, error) {
	return LoadFrom(DefaultFile())
}

// LoadFrom layers defaults, the YAML file at path and the environment, in
// that order. A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBPath = getEnv("BUDGMAN_DB_PATH", cfg.DBPath)
	cfg.DataBackend = getEnv("BUDGMAN_BACKEND", cfg.DataBackend)
	cfg.Budget = getEnv("BUDGMAN_BUDGET", cfg.Budget)
	cfg.LogLevel = getEnv("BUDGMAN_LOG_LEVEL", cfg.LogLevel)

	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(b, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.DBPath != "" {
		c.DBPath = expandHome(fileCfg.DBPath)
	}
	if fileCfg.DataBackend != "" {
		c.DataBackend = fileCfg.DataBackend
	}
	if fileCfg.Budget != "" {
		c.Budget = fileCfg.Budget
	}
	if fileCfg.LogLevel != "" {
		c.LogLevel = fileCfg.LogLevel
	}
	return nil
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validBackends := []string{"sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" && strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty when using sqlite backend")
	}

	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(p string) string {
	if p == "~" {
		return xdg.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(xdg.Home, p[2:])
	}
	return p
}
