package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/Iron-Ham/evolution/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create Evolution configuration",
	Long: `View or create Evolution configuration.

Without arguments, displays the effective configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/evolution/config.yaml with all available options.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	RunE:  runConfigPath,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for errors",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	// Show where config is being read from
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "# Config file: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "# Config file: (none - using defaults)\n")
	}

	data, err := yaml.Marshal(viper.AllSettings())
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	_, err = out.Write(data)
	return err
}

const defaultConfigContent = `# Evolution Configuration

# Terminal shell settings
tui:
  # Below either minimum the shell shows the "needs more room" notice
  min_full_width: 100
  min_full_height: 30
  # Color theme: default, monokai, dracula, nord
  theme: default
  # Width of each thumbnail tile in columns (0 uses the built-in width)
  thumbnail_width: 18
  # How often live surfaces are redrawn, in milliseconds
  frame_interval_ms: 200
  # Optional YAML file overriding key bindings
  keymap_file: ""

# Sensor session
sensor:
  # Driver: simulated or serial
  driver: simulated
  # Device path for the serial driver, e.g. /dev/ttyUSB0
  serial_port: ""
  baud_rate: 115200
  # How often the serial driver checks for the device, in milliseconds
  poll_interval_ms: 1000
  # Whether the simulated device is present at start
  simulated_available: true
  # Toggle simulated availability every N seconds (0 disables)
  simulated_flap_seconds: 0

# Debug logging (written to debug.log in the state directory)
logging:
  enabled: true
  # Level: debug, info, warn, error
  level: info
  max_size_mb: 5
  max_backups: 2

# Runtime state
state:
  # Directory for debug.log and prefs.db (empty uses the config directory)
  dir: ""
  # Restore the last tech panel and camera mode on start
  remember_selection: true
`

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	// Create config directory
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configFile, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if viper.ConfigFileUsed() != "" {
		fmt.Fprintf(out, "Active config: %s\n", viper.ConfigFileUsed())
	} else {
		fmt.Fprintf(out, "Default path: %s (not created)\n", config.ConfigFile())
	}

	fmt.Fprintln(out, "\nSearch paths:")
	fmt.Fprintf(out, "  1. %s\n", config.ConfigFile())
	fmt.Fprintf(out, "  2. ./config.yaml (current directory)\n")
	fmt.Fprintln(out, "\nEnvironment variables: EVOLUTION_* (e.g., EVOLUTION_SENSOR_DRIVER)")
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	_, err := config.Load()
	var verrs config.ValidationErrors
	if errors.As(err, &verrs) {
		fmt.Fprintln(cmd.ErrOrStderr(), verrs.Error())
		return fmt.Errorf("configuration has %d error(s)", len(verrs))
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
	return nil
}
