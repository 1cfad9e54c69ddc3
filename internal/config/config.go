package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/gerunddev/orgtree/elements"
	"github.com/gerunddev/orgtree/parser"
)

// Log levels accepted in log_level.
var logLevels = []any{"debug", "info", "warn", "error"}

// Config represents the orgtree configuration
type Config struct {
	TodoKeywords []string `json:"todo_keywords"`
	DoneKeywords []string `json:"done_keywords"`
	MaxDepth     int      `json:"max_depth,omitempty"`
	Disabled     []string `json:"disabled,omitempty"`
	LogFile      string   `json:"log_file,omitempty"`
	LogLevel     string   `json:"log_level"`
	IDMapFile    string   `json:"id_map_file,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		TodoKeywords: []string{"TODO"},
		DoneKeywords: []string{"DONE"},
		LogLevel:     "info",
		Disabled:     []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to XDG if home dir unavailable
		return filepath.Join(xdg.ConfigHome, "orgtree", "config.json")
	}
	return filepath.Join(home, ".config", "orgtree", "config.json")
}

// Load reads configuration from ConfigPath
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads configuration from path. A missing file yields the
// defaults.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Disabled == nil {
		cfg.Disabled = []string{}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes configuration to configPath, creating its directory.
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.TodoKeywords, validation.Required),
		validation.Field(&c.DoneKeywords, validation.Required),
		validation.Field(&c.MaxDepth, validation.Min(0)),
		validation.Field(&c.LogLevel, validation.Required, validation.In(logLevels...)),
		validation.Field(&c.Disabled, validation.Each(validation.By(knownKind))),
	); err != nil {
		return err
	}

	pc, err := c.ParserConfig()
	if err != nil {
		return err
	}
	return pc.Validate()
}

func knownKind(v any) error {
	name, _ := v.(string)
	if _, err := elements.ParseKind(name); err != nil {
		var names []string
		for _, k := range elements.Kinds() {
			names = append(names, k.String())
		}
		return fmt.Errorf("%w (valid: %s)", err, strings.Join(names, ", "))
	}
	return nil
}

// ParserConfig converts the file settings into a parser configuration.
func (c *Config) ParserConfig() (*parser.Config, error) {
	pc := &parser.Config{
		TodoKeywords: c.TodoKeywords,
		DoneKeywords: c.DoneKeywords,
		MaxDepth:     c.MaxDepth,
	}
	for _, name := range c.Disabled {
		k, err := elements.ParseKind(name)
		if err != nil {
			return nil, err
		}
		pc.Disabled = append(pc.Disabled, k)
	}
	return pc, nil
}

// LoadIDMap reads the JSON object mapping org-roam ids to note names from
// IDMapFile. No file configured yields an empty map.
func (c *Config) LoadIDMap() (map[string]string, error) {
	return LoadIDMap(c.IDMapFile)
}

// LoadIDMap reads a JSON id map from path. An empty path yields an empty
// map.
func LoadIDMap(path string) (map[string]string, error) {
	idMap := map[string]string{}
	if path == "" {
		return idMap, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read id map: %w", err)
	}
	if err := json.Unmarshal(data, &idMap); err != nil {
		return nil, fmt.Errorf("failed to parse id map: %w", err)
	}
	return idMap, nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.IDMapFile, err = expandPath(c.IDMapFile)
	if err != nil {
		return fmt.Errorf("failed to expand id_map_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Abs(path)
}
