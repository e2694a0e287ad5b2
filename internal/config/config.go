package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the carprice server configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Dataset DatasetConfig `yaml:"dataset"`
	Model   ModelConfig   `yaml:"model"`
	Form    FormConfig    `yaml:"form"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"` // debug, info, warn, error (default: determined by env)
	File       string `yaml:"file"`  // optional rotated log file
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatasetConfig locates the reference listings file.
type DatasetConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"` // csv, parquet (default: from extension)
}

// ModelConfig locates the exported model artifact.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// FormConfig holds the input bounds and defaults of the prediction form.
type FormConfig struct {
	Title          string `yaml:"title"`
	CurrencySymbol string `yaml:"currency_symbol"`
	YearMin        int    `yaml:"year_min"`
	YearMax        int    `yaml:"year_max"`
	YearDefault    int    `yaml:"year_default"`
	KmsMin         int    `yaml:"kms_min"`
	KmsMax         int    `yaml:"kms_max"`
	KmsStep        int    `yaml:"kms_step"`
	KmsDefault     int    `yaml:"kms_default"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit YAML file.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8501
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Form.Title == "" {
		c.Form.Title = "Car Price Prediction"
	}
	if c.Form.CurrencySymbol == "" {
		c.Form.CurrencySymbol = "₹"
	}
	if c.Form.YearMin == 0 && c.Form.YearMax == 0 {
		c.Form.YearMin, c.Form.YearMax = 1990, 2024
	}
	if c.Form.YearDefault == 0 {
		c.Form.YearDefault = 2015
	}
	if c.Form.KmsMax == 0 {
		c.Form.KmsMax = 500000
	}
	if c.Form.KmsStep <= 0 {
		c.Form.KmsStep = 1000
	}
	if c.Form.KmsDefault == 0 {
		c.Form.KmsDefault = 50000
	}
	if c.Logging.File != "" {
		if c.Logging.MaxSizeMB <= 0 {
			c.Logging.MaxSizeMB = 10
		}
		if c.Logging.MaxBackups <= 0 {
			c.Logging.MaxBackups = 7
		}
		if c.Logging.MaxAgeDays <= 0 {
			c.Logging.MaxAgeDays = 7
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path is required")
	}
	switch c.Dataset.Format {
	case "", "csv", "parquet":
		// ok
	default:
		return fmt.Errorf("dataset.format must be \"csv\" or \"parquet\", got %q", c.Dataset.Format)
	}
	if c.Model.Path == "" {
		return fmt.Errorf("model.path is required")
	}
	f := c.Form
	if f.YearMin > f.YearMax {
		return fmt.Errorf("form.year_min (%d) must not exceed form.year_max (%d)", f.YearMin, f.YearMax)
	}
	if f.YearDefault < f.YearMin || f.YearDefault > f.YearMax {
		return fmt.Errorf("form.year_default %d outside [%d, %d]", f.YearDefault, f.YearMin, f.YearMax)
	}
	if f.KmsMin < 0 || f.KmsMin > f.KmsMax {
		return fmt.Errorf("form.kms_min/kms_max must satisfy 0 <= min <= max, got [%d, %d]", f.KmsMin, f.KmsMax)
	}
	if f.KmsDefault < f.KmsMin || f.KmsDefault > f.KmsMax {
		return fmt.Errorf("form.kms_default %d outside [%d, %d]", f.KmsDefault, f.KmsMin, f.KmsMax)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
