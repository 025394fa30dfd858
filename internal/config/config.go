package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"fleetreport/domain/report"
	"fleetreport/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Layout   report.Layout
	Renderer RendererConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// UploadConfig holds file upload limits
type UploadConfig struct {
	MaxBytes int64
}

// RendererConfig holds the PDF rendering engine settings
type RendererConfig struct {
	// Binary is the HTML-to-PDF converter probed at startup.
	Binary string
}

// fileConfig is the optional YAML configuration file shape. Env vars win
// over the file, the file wins over defaults.
type fileConfig struct {
	Layout   *report.Layout `yaml:"layout"`
	Server   *struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Renderer *struct {
		Binary string `yaml:"binary"`
	} `yaml:"renderer"`
}

// Load reads configuration from the optional YAML file named by CONFIG_PATH
// and from environment variables, then validates it.
func Load() (*Config, error) {
	config := &Config{
		Server:   ServerConfig{Port: "8080"},
		Upload:   UploadConfig{MaxBytes: 50 * 1024 * 1024},
		Layout:   report.DefaultLayout(),
		Renderer: RendererConfig{Binary: "wkhtmltopdf"},
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := applyFile(config, path); err != nil {
			return nil, errors.Wrapf(err, "failed to load config file %s", path)
		}
	}

	config.Server.Port = getEnvOrDefault("PORT", config.Server.Port)
	config.Upload.MaxBytes = getEnvInt64OrDefault("MAX_UPLOAD_BYTES", config.Upload.MaxBytes)
	config.Renderer.Binary = getEnvOrDefault("PDF_BINARY", config.Renderer.Binary)
	config.Layout.DateCol = getEnvIntOrDefault("LAYOUT_DATE_COL", config.Layout.DateCol)
	config.Layout.HeaderRow = getEnvIntOrDefault("LAYOUT_HEADER_ROW", config.Layout.HeaderRow)
	config.Layout.DataStartRow = getEnvIntOrDefault("LAYOUT_DATA_START_ROW", config.Layout.DataStartRow)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func applyFile(config *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return err
	}
	if fc.Layout != nil {
		config.Layout = *fc.Layout
	}
	if fc.Server != nil && fc.Server.Port != "" {
		config.Server.Port = fc.Server.Port
	}
	if fc.Renderer != nil && fc.Renderer.Binary != "" {
		config.Renderer.Binary = fc.Renderer.Binary
	}
	return nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Upload.MaxBytes <= 0 {
		return errors.ConfigInvalid("upload size limit must be positive")
	}
	if err := config.Layout.Validate(); err != nil {
		return errors.Wrap(err, "grid layout")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
