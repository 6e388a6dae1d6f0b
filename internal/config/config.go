package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the engine's user-facing configuration. Action and alias
// tables are deliberately external: they are loaded here and threaded
// into the dispatcher as explicit values, never read as ambient globals.
type Config struct {
	Theme   ThemeConfig             `mapstructure:"theme"`
	Aliases map[string]string       `mapstructure:"aliases"`
	Actions map[string]ActionConfig `mapstructure:"actions"`
	Render  RenderConfig            `mapstructure:"render"`
}

// ThemeConfig overrides engine face colors. Values are ANSI color numbers
// (0-255) or hex codes (#RRGGBB).
type ThemeConfig struct {
	Link          string `mapstructure:"link"`
	InlineCode    string `mapstructure:"inline_code"`
	DocMarkup     string `mapstructure:"doc_markup"`
	HeadingColors string `mapstructure:"heading_colors"` // comma-separated, up to 8
}

// ActionConfig declares a custom block action for one canonical language.
type ActionConfig struct {
	Confirm string `mapstructure:"confirm"` // prompt shown before running
	Command string `mapstructure:"command"` // shell command; body arrives on stdin
}

// RenderConfig tunes the renderer.
type RenderConfig struct {
	HighlightStyle string `mapstructure:"highlight_style"` // chroma style name
}

// Dir returns the configuration directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "chatgpt-shell"), nil
}

// Load reads config.yaml from the config directory. A missing file yields
// the zero config; a malformed one is an error.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// LoadAliasFile reads a standalone alias table: a flat YAML mapping of
// raw token to canonical identifier.
func LoadAliasFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	aliases := map[string]string{}
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("parsing alias file %s: %w", path, err)
	}
	return aliases, nil
}
