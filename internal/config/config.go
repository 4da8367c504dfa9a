package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
)

// Feedback source names accepted in configuration.
const (
	FeedbackTemplate = "template"
	FeedbackExternal = "external"
)

// Config represents the prcritic configuration.
type Config struct {
	Provider               string      `json:"provider"`
	Model                  string      `json:"model"`
	FeedbackSource         string      `json:"feedbackSource"`
	Format                 string      `json:"format"`
	FailBelow              float64     `json:"failBelow"`
	TemplatesFile          string      `json:"templatesFile,omitempty"`
	ExternalTimeoutSeconds int         `json:"externalTimeoutSeconds"`
	Cache                  CacheConfig `json:"cache"`
}

// CacheConfig controls caching of external feedback responses.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:               "openai",
		Model:                  "gpt-4o-mini",
		FeedbackSource:         FeedbackTemplate,
		Format:                 "text",
		FailBelow:              0,
		ExternalTimeoutSeconds: 30,
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for prcritic.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "prcritic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "prcritic"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "prcritic"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "prcritic"), nil
	default:
		return filepath.Join(home, ".config", "prcritic"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil
// error if the file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.FeedbackSource != "" {
		dst.FeedbackSource = src.FeedbackSource
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailBelow > 0 {
		dst.FailBelow = src.FailBelow
	}
	if src.TemplatesFile != "" {
		dst.TemplatesFile = src.TemplatesFile
	}
	if src.ExternalTimeoutSeconds > 0 {
		dst.ExternalTimeoutSeconds = src.ExternalTimeoutSeconds
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("PRCRITIC_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("PRCRITIC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PRCRITIC_FEEDBACK_SOURCE"); v != "" {
		cfg.FeedbackSource = v
	}
	if v := os.Getenv("PRCRITIC_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("PRCRITIC_FAIL_BELOW"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FailBelow = f
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["feedbackSource"]; ok && v != "" {
		cfg.FeedbackSource = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["failBelow"]; ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.FailBelow = f
		}
	}
	if v, ok := overrides["templatesFile"]; ok && v != "" {
		cfg.TemplatesFile = v
	}
	if v, ok := overrides["externalTimeoutSeconds"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ExternalTimeoutSeconds = n
		}
	}
}

// SetField sets a single config field by key name. Returns error if key is
// unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "feedbackSource":
		if value != FeedbackTemplate && value != FeedbackExternal {
			return fmt.Errorf("feedbackSource must be %q or %q", FeedbackTemplate, FeedbackExternal)
		}
		cfg.FeedbackSource = value
	case "format":
		cfg.Format = value
	case "failBelow":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("failBelow must be a number: %w", err)
		}
		cfg.FailBelow = f
	case "templatesFile":
		cfg.TemplatesFile = value
	case "externalTimeoutSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("externalTimeoutSeconds must be an integer: %w", err)
		}
		cfg.ExternalTimeoutSeconds = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
