package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

const (
	appDirName     = "pdf-ocr"
	configFileName = "config.yaml"

	defaultBaseURL   = "https://generativelanguage.googleapis.com/v1beta/openai"
	defaultModel     = "gemini-2.5-pro"
	defaultRasterDPI = 200
)

// Config is the persisted application configuration. The API key is stored
// base64-encoded; use DecodeAPIKey / SetAPIKey rather than the raw field.
type Config struct {
	APIKey      string `yaml:"api_key"`
	Provider    string `yaml:"provider"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	OutputDir   string `yaml:"output_dir"`
	PopplerPath string `yaml:"poppler_path"`
	RasterDPI   int    `yaml:"raster_dpi"`
	DarkMode    bool   `yaml:"dark_mode"`
	Debug       bool   `yaml:"debug"`
}

// LLMConfig carries the subset of settings the OCR engine needs.
type LLMConfig struct {
	Provider string
	BaseURL  string
	Key      string
	Model    string
}

// Default returns a config populated with default values.
func Default() *Config {
	return &Config{
		Provider:  ProviderOpenAI,
		BaseURL:   defaultBaseURL,
		Model:     defaultModel,
		RasterDPI: defaultRasterDPI,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	return AppFilePath(configFileName)
}

// AppFilePath returns the location of a named file inside the per-user
// application directory.
func AppFilePath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, appDirName, name), nil
}

// LoadConfig reads the config file at path. A missing file is not an error;
// defaults are returned instead.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to path, creating the parent directory if needed.
// Called only on explicit user save actions.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// SetAPIKey stores the credential base64-encoded.
func (c *Config) SetAPIKey(plain string) {
	c.APIKey = base64.StdEncoding.EncodeToString([]byte(plain))
}

// DecodeAPIKey returns the decoded credential. A key that does not decode is
// a fatal configuration error for the batch.
func (c *Config) DecodeAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("api key is not set")
	}
	raw, err := base64.StdEncoding.DecodeString(c.APIKey)
	if err != nil {
		return "", fmt.Errorf("invalid api key encoding: %w", err)
	}
	return string(raw), nil
}

// LLM builds the engine configuration, decoding the stored credential.
func (c *Config) LLM() (*LLMConfig, error) {
	key, err := c.DecodeAPIKey()
	if err != nil && c.Provider != ProviderOllama {
		return nil, err
	}
	return &LLMConfig{
		Provider: c.Provider,
		BaseURL:  c.BaseURL,
		Key:      key,
		Model:    c.Model,
	}, nil
}
