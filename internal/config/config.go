package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	ImageKit ImageKitConfig `yaml:"imagekit"`
	Upload   UploadConfig   `yaml:"upload"`
	CORS     CORSConfig     `yaml:"cors"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig contains MongoDB connection settings
type DatabaseConfig struct {
	URI            string `yaml:"uri"`
	Database       string `yaml:"database"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ImageKitConfig contains object storage credentials.
// Credentials are normally supplied via environment variables; values here
// act as fallbacks for local development.
type ImageKitConfig struct {
	PublicKey   string `yaml:"public_key"`
	PrivateKey  string `yaml:"private_key"`
	URLEndpoint string `yaml:"url_endpoint"`
}

// UploadConfig contains image upload settings
type UploadConfig struct {
	TempDir string `yaml:"temp_dir"`
	Folder  string `yaml:"folder"`
}

// CORSConfig contains CORS settings
type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Configured reports whether all ImageKit credentials are present.
func (c *ImageKitConfig) Configured() bool {
	return c.PublicKey != "" && c.PrivateKey != "" && c.URLEndpoint != ""
}

// GetTimeout returns the database timeout as a duration
func (c *DatabaseConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "4000",
		},
		Database: DatabaseConfig{
			URI:            "mongodb://localhost:27017",
			Database:       "realestate",
			TimeoutSeconds: 10,
		},
		Upload: UploadConfig{
			TempDir: os.TempDir(),
			Folder:  "Property",
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:5173", "http://localhost:5174"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// An emptied temp dir falls back to the system default
	if config.Upload.TempDir == "" {
		config.Upload.TempDir = os.TempDir()
	}

	return config, nil
}
