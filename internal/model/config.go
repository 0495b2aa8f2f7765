package model

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. CLASSIFY_DATABASE_PATH.
const envPrefix = "CLASSIFY"

// DatabaseConfig locates the SQLite storage file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ArtifactsConfig controls the schema/seed SQL files written at startup.
type ArtifactsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir     string `mapstructure:"dir" yaml:"dir"`
}

// ExportConfig controls where report exports are written.
type ExportConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zap level name: debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// Format is "json" or "console".
	Format string `mapstructure:"format" yaml:"format"`

	// File receives log output. The terminal belongs to the UI, so logs
	// never go to stdout.
	File string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Artifacts ArtifactsConfig `mapstructure:"artifacts" yaml:"artifacts"`
	Export    ExportConfig    `mapstructure:"export" yaml:"export"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/classify/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "classify", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database:  DatabaseConfig{Path: "ClassIFY.db"},
		Artifacts: ArtifactsConfig{Enabled: true, Dir: "."},
		Export:    ExportConfig{Dir: "."},
		Log:       LogConfig{Level: "info", Format: "json", File: "classify.log"},
		Display:   DisplayConfig{Theme: "default"},
	}
}

func setDefaults(v *viper.Viper) {
	d := defaultAppConfig()
	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("artifacts.enabled", d.Artifacts.Enabled)
	v.SetDefault("artifacts.dir", d.Artifacts.Dir)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("display.theme", d.Display.Theme)
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Values resolve as: environment > file > defaults. A .env file in the
// working directory is loaded into the environment first when present.
// A missing config file is not an error.
func LoadConfig(path string) (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail later and less clearly.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path must not be empty")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("artifacts", cfg.Artifacts)
	v.Set("export", cfg.Export)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
