package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    string `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
	Daily      bool   `mapstructure:"daily"`
}

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string            `mapstructure:"level"`
	Path       string            `mapstructure:"path"`
	Rotation   RotationConfig    `mapstructure:"rotation"`
	Components map[string]string `mapstructure:"components"`
}

// ExtensionConfig identifies the browser extension under development.
type ExtensionConfig struct {
	Name string `mapstructure:"name"`
}

// WatchConfig configures the change watcher.
type WatchConfig struct {
	Dir            string        `mapstructure:"dir"`
	Interval       time.Duration `mapstructure:"interval"`
	Extensions     []string      `mapstructure:"extensions"`
	Ignore         []string      `mapstructure:"ignore"`
	IgnorePatterns []string      `mapstructure:"ignore_patterns"`
}

// IconsConfig configures the placeholder icon generator.
type IconsConfig struct {
	OutDir     string `mapstructure:"out_dir"`
	Sizes      []int  `mapstructure:"sizes"`
	Label      string `mapstructure:"label"`
	Background string `mapstructure:"background"`
	Panel      string `mapstructure:"panel"`
}

// Config represents the application configuration.
type Config struct {
	Extension ExtensionConfig `mapstructure:"extension"`
	Watch     WatchConfig     `mapstructure:"watch"`
	Output    string          `mapstructure:"output"`
	Icons     IconsConfig     `mapstructure:"icons"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// Load loads configuration from file and environment variables.
// Config file locations (in order of precedence):
//   - $XDG_CONFIG_HOME/extdev/config.yaml
//   - $HOME/.config/extdev/config.yaml
//
// Environment variables are prefixed with EXTDEV_ (e.g., EXTDEV_WATCH_DIR).
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		v.AddConfigPath(filepath.Join(xdgConfigHome, "extdev"))
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	v.AddConfigPath(filepath.Join(homeDir, ".config", "extdev"))

	v.SetEnvPrefix("EXTDEV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is acceptable; we use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in the watch dir if present
	if strings.HasPrefix(cfg.Watch.Dir, "~") {
		cfg.Watch.Dir = filepath.Join(homeDir, cfg.Watch.Dir[1:])
	}

	return &cfg, nil
}

// SetDefaults registers every configuration default on the given viper
// instance. The CLI shares it with Load so flag-only runs see the same values.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("extension.name", DefaultExtensionName)

	v.SetDefault("watch.dir", DefaultWatchDir)
	v.SetDefault("watch.interval", DefaultInterval)
	v.SetDefault("watch.extensions", DefaultExtensions)
	v.SetDefault("watch.ignore", DefaultIgnore)
	v.SetDefault("watch.ignore_patterns", DefaultIgnorePatterns)

	v.SetDefault("output", DefaultOutput)

	v.SetDefault("icons.out_dir", DefaultIconsDir)
	v.SetDefault("icons.sizes", DefaultIconSizes)
	v.SetDefault("icons.label", "") // Empty means first letter of extension.name
	v.SetDefault("icons.background", DefaultIconBackground)
	v.SetDefault("icons.panel", DefaultIconPanel)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "") // Empty means use DefaultLogPath
	v.SetDefault("logging.rotation.max_size", "10MB")
	v.SetDefault("logging.rotation.max_age", 30)
	v.SetDefault("logging.rotation.max_backups", 5)
	v.SetDefault("logging.rotation.daily", true)
	v.SetDefault("logging.components", map[string]string{
		"watch":  "info",
		"icons":  "info",
		"output": "warn",
	})
}

// ConfigDir returns the configuration directory path.
func ConfigDir() (string, error) {
	// Check XDG_CONFIG_HOME first
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, "extdev"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "extdev"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return nil
}

// WriteDefault writes a default config file if none exists.
// Returns nil if a config file already exists.
func WriteDefault() error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configDir, err := ConfigDir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(configDir, "config.yaml")

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	defaultConfig := fmt.Sprintf(`# extdev configuration

# Browser extension under development. The name appears in the reload
# instructions and seeds the icon label.
extension:
  name: %s

# Change watcher settings
watch:
  # Directory to watch when none is given on the command line
  dir: %s
  # Polling interval between scans
  interval: %s
  # File extensions that trigger a reload reminder
  extensions: [%s]
  # Exact filenames to skip
  ignore: [%s]
  # Glob patterns for subtrees to skip
  ignore_patterns: [%s]

# Report renderer: pretty, plain
output: %s

# Placeholder icon generator
icons:
  out_dir: %s
  sizes: [%s]
  # Letter drawn on the icon; empty uses the extension name's first letter
  label: ""
  background: "%s"
  panel: "%s"

# Logging configuration
logging:
  # Log level: debug, info, warn, error
  level: info
  # Log file path (empty means use default: $XDG_STATE_HOME/extdev/extdev.log)
  path: ""
  # Log rotation settings
  rotation:
    max_size: 10MB
    max_age: 30       # days
    max_backups: 5
    daily: true
  # Per-component log levels
  components:
    watch: info
    icons: info
    output: warn
`, DefaultExtensionName, DefaultWatchDir, DefaultInterval,
		quoteJoin(DefaultExtensions), quoteJoin(DefaultIgnore), quoteJoin(DefaultIgnorePatterns),
		DefaultOutput, DefaultIconsDir, joinInts(DefaultIconSizes),
		DefaultIconBackground, DefaultIconPanel)

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}

	return nil
}

// quoteJoin renders a string slice as a YAML flow sequence body.
func quoteJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

// joinInts renders an int slice as a YAML flow sequence body.
func joinInts(items []int) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("%d", item)
	}
	return strings.Join(parts, ", ")
}

// ExpandPath expands ~ in a path to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(homeDir, path[1:]), nil
}

// StateDir returns $XDG_STATE_HOME/extdev/ for log files.
func StateDir() string {
	return filepath.Join(xdg.StateHome, "extdev")
}

// DefaultLogPath returns the default log file path.
func DefaultLogPath() string {
	return filepath.Join(StateDir(), "extdev.log")
}

// EnsureStateDir creates the state directory if it doesn't exist.
func EnsureStateDir() error {
	if err := os.MkdirAll(StateDir(), 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	return nil
}
