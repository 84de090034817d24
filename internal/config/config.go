package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Version   int               `toml:"version" yaml:"version"`
	Dataset   string            `toml:"dataset" yaml:"dataset"` // path to the dataset JSON file
	Selection SelectionSettings `toml:"selection" yaml:"selection"`
	UI        UISettings        `toml:"ui" yaml:"ui"`
	Log       LogSettings       `toml:"log" yaml:"log"`
}

// SelectionSettings configures the selection engine
type SelectionSettings struct {
	// DefaultThreshold overrides the dataset's minimum relation weight as the
	// initial and reset threshold
	DefaultThreshold *float64 `toml:"default_threshold,omitempty" yaml:"default_threshold,omitempty"`
	ThresholdStep    float64  `toml:"threshold_step" yaml:"threshold_step"`
	ScaleBands       int      `toml:"scale_bands" yaml:"scale_bands"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	GridSize      int  `toml:"grid_size" yaml:"grid_size"`           // density grid cells per side
	NeighborLimit int  `toml:"neighbor_limit" yaml:"neighbor_limit"` // neighbours listed in the info panel
	ShowInsights  bool `toml:"show_insights" yaml:"show_insights"`
	ShowDimmed    bool `toml:"show_dimmed" yaml:"show_dimmed"` // list filtered-out entities greyed
}

// LogSettings represents logging configuration
type LogSettings struct {
	Path  string `toml:"path" yaml:"path"`
	Level string `toml:"level" yaml:"level"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
}

// NewConfigService creates a config service backed by the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "cocoverse", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service bound to an explicit file
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path. Values missing from
// the file keep their defaults.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = toml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects settings the dashboard cannot work with
func (c *Config) Validate() error {
	if c.UI.GridSize < 1 {
		return fmt.Errorf("ui.grid_size must be positive, got %d", c.UI.GridSize)
	}
	if c.UI.NeighborLimit < 0 {
		return fmt.Errorf("ui.neighbor_limit must not be negative, got %d", c.UI.NeighborLimit)
	}
	if c.Selection.ThresholdStep <= 0 {
		return fmt.Errorf("selection.threshold_step must be positive, got %g", c.Selection.ThresholdStep)
	}
	if c.Selection.ScaleBands < 1 {
		return fmt.Errorf("selection.scale_bands must be positive, got %d", c.Selection.ScaleBands)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Selection: SelectionSettings{
			ThresholdStep: 1,
			ScaleBands:    4,
		},
		UI: UISettings{
			GridSize:      12,
			NeighborLimit: 8,
			ShowInsights:  true,
			ShowDimmed:    true,
		},
		Log: LogSettings{
			Path:  "cocoverse.log",
			Level: "info",
		},
	}
}
