package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config represents the complete Evolution configuration
type Config struct {
	TUI     TUIConfig     `mapstructure:"tui"`
	Sensor  SensorConfig  `mapstructure:"sensor"`
	Logging LoggingConfig `mapstructure:"logging"`
	State   StateConfig   `mapstructure:"state"`
}

// TUIConfig controls the terminal shell
type TUIConfig struct {
	// MinFullWidth is the narrowest terminal (in columns) that still counts as
	// a full-screen window. Anything narrower is the Snapped geometry.
	MinFullWidth int `mapstructure:"min_full_width"`
	// MinFullHeight is the matching row threshold.
	MinFullHeight int `mapstructure:"min_full_height"`
	// Theme is the color theme for the TUI (default: "default")
	// Options: "default", "monokai", "dracula", "nord"
	Theme string `mapstructure:"theme"`
	// ThumbnailWidth is the width of each thumbnail tile in columns
	ThumbnailWidth int `mapstructure:"thumbnail_width"`
	// FrameIntervalMs is how often started surfaces are redrawn
	FrameIntervalMs int `mapstructure:"frame_interval_ms"`
	// KeymapFile is an optional YAML file overriding key bindings
	KeymapFile string `mapstructure:"keymap_file"`
}

// Sensor drivers.
const (
	DriverSimulated = "simulated"
	DriverSerial    = "serial"
)

// SensorConfig selects and tunes the device session
type SensorConfig struct {
	// Driver is "simulated" or "serial"
	Driver string `mapstructure:"driver"`
	// SerialPort is the device path used by the serial driver (e.g. /dev/ttyUSB0)
	SerialPort string `mapstructure:"serial_port"`
	// BaudRate for the serial driver
	BaudRate int `mapstructure:"baud_rate"`
	// PollIntervalMs is how often the serial driver checks for the device
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
	// SimulatedAvailable makes the simulated device present from the start
	SimulatedAvailable bool `mapstructure:"simulated_available"`
	// SimulatedFlapSeconds toggles simulated availability on this period (0 disables)
	SimulatedFlapSeconds int `mapstructure:"simulated_flap_seconds"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether logging is active (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level sets the minimum log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum size in megabytes before log rotation (default: 5)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup files to keep (default: 2)
	MaxBackups int `mapstructure:"max_backups"`
}

// StateConfig controls where runtime state lives
type StateConfig struct {
	// Dir holds debug.log and prefs.db. Empty means the config directory.
	Dir string `mapstructure:"dir"`
	// RememberSelection restores the last tech panel and camera mode on start
	RememberSelection bool `mapstructure:"remember_selection"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		TUI: TUIConfig{
			MinFullWidth:    100,
			MinFullHeight:   30,
			Theme:           "default",
			ThumbnailWidth:  18,
			FrameIntervalMs: 200,
			KeymapFile:      "",
		},
		Sensor: SensorConfig{
			Driver:               DriverSimulated,
			SerialPort:           "",
			BaudRate:             115200,
			PollIntervalMs:       1000,
			SimulatedAvailable:   true,
			SimulatedFlapSeconds: 0,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
		State: StateConfig{
			Dir:               "",
			RememberSelection: true,
		},
	}
}

// FrameInterval returns the redraw interval as a time.Duration
func (c *TUIConfig) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// PollInterval returns the serial poll interval as a time.Duration
func (c *SensorConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// FlapInterval returns the simulated flap period as a time.Duration
func (c *SensorConfig) FlapInterval() time.Duration {
	return time.Duration(c.SimulatedFlapSeconds) * time.Second
}

// ResolveDir returns the state directory, falling back to the config directory.
func (s *StateConfig) ResolveDir() string {
	if s.Dir == "" {
		return ConfigDir()
	}
	if len(s.Dir) > 1 && s.Dir[0] == '~' && s.Dir[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, s.Dir[2:])
		}
	}
	return s.Dir
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// TUI defaults
	viper.SetDefault("tui.min_full_width", defaults.TUI.MinFullWidth)
	viper.SetDefault("tui.min_full_height", defaults.TUI.MinFullHeight)
	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.thumbnail_width", defaults.TUI.ThumbnailWidth)
	viper.SetDefault("tui.frame_interval_ms", defaults.TUI.FrameIntervalMs)
	viper.SetDefault("tui.keymap_file", defaults.TUI.KeymapFile)

	// Sensor defaults
	viper.SetDefault("sensor.driver", defaults.Sensor.Driver)
	viper.SetDefault("sensor.serial_port", defaults.Sensor.SerialPort)
	viper.SetDefault("sensor.baud_rate", defaults.Sensor.BaudRate)
	viper.SetDefault("sensor.poll_interval_ms", defaults.Sensor.PollIntervalMs)
	viper.SetDefault("sensor.simulated_available", defaults.Sensor.SimulatedAvailable)
	viper.SetDefault("sensor.simulated_flap_seconds", defaults.Sensor.SimulatedFlapSeconds)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// State defaults
	viper.SetDefault("state.dir", defaults.State.Dir)
	viper.SetDefault("state.remember_selection", defaults.State.RememberSelection)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// Watch reloads the configuration whenever the config file in use changes
// and hands the result to onChange. It does nothing when no file was read.
func Watch(onChange func(*Config, error)) bool {
	if viper.ConfigFileUsed() == "" {
		return false
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(Load())
	})
	viper.WatchConfig()
	return true
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "evolution")
	}
	// Fall back to ~/.config/evolution
	home, err := os.UserHomeDir()
	if err != nil {
		return ".evolution"
	}
	return filepath.Join(home, ".config", "evolution")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidDrivers returns the list of valid sensor drivers
func ValidDrivers() []string {
	return []string{DriverSimulated, DriverSerial}
}

// ValidThemes returns the list of valid theme names
func ValidThemes() []string {
	return []string{"default", "monokai", "dracula", "nord"}
}
