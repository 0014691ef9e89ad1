package cmd

import (
	"fmt"

	"github.com/Iron-Ham/evolution/internal/config"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/prefs"
	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/Iron-Ham/evolution/internal/surface"
	"github.com/Iron-Ham/evolution/internal/tui"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the shell",
	Long: `Start the shell in the terminal.

The simulated driver needs no hardware. The serial driver treats the sensor
as available while its port is present and can be opened.

Examples:
  evolution start
  evolution start --sensor serial --port /dev/ttyUSB0`,
	RunE: runStart,
}

var startNoWatch bool

func init() {
	rootCmd.AddCommand(startCmd)

	startCmd.Flags().String("sensor", "", "Sensor driver (simulated/serial)")
	startCmd.Flags().String("port", "", "Serial port for the serial driver")
	startCmd.Flags().BoolVar(&startNoWatch, "no-watch", false, "Do not reload the config file when it changes")
	_ = viper.BindPFlag("sensor.driver", startCmd.Flags().Lookup("sensor"))
	_ = viper.BindPFlag("sensor.serial_port", startCmd.Flags().Lookup("port"))
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	stateDir := cfg.State.ResolveDir()

	logger, err := newLogger(cfg, stateDir)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Close() }()

	session, err := newSession(cfg, logger)
	if err != nil {
		return err
	}
	logger = logger.WithSession(session.ID())
	logger.Info("starting shell", "driver", cfg.Sensor.Driver, "state_dir", stateDir)
	defer func() {
		if err := closeIfOpen(session); err != nil {
			logger.Warn("failed to close sensor session", "error", err)
		}
	}()

	km := keymap.DefaultKeymap()
	if cfg.TUI.KeymapFile != "" {
		km, err = keymap.LoadFile(cfg.TUI.KeymapFile)
		if err != nil {
			return fmt.Errorf("failed to load keymap: %w", err)
		}
	}

	opts := tui.Options{
		Config:      cfg,
		Session:     session,
		Factory:     surface.TextFactory{},
		Logger:      logger,
		Keymap:      km,
		WatchConfig: !startNoWatch,
	}
	if cfg.State.RememberSelection {
		store, err := prefs.Open(stateDir)
		if err != nil {
			logger.Warn("preferences unavailable", "error", err)
		} else {
			defer func() { _ = store.Close() }()
			opts.Store = store
		}
	}

	return tui.New(opts).Run(cmd.Context())
}

// newLogger creates the file logger, or a no-op logger when logging is off.
func newLogger(cfg *config.Config, dir string) (*logging.Logger, error) {
	if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(dir, cfg.Logging.Level, logging.RotationConfig{
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// newSession builds the session for the configured driver. The session is
// not opened here.
func newSession(cfg *config.Config, logger *logging.Logger) (sensor.Session, error) {
	switch cfg.Sensor.Driver {
	case config.DriverSimulated:
		return sensor.NewSimulated(sensor.SimulatedConfig{
			Available:    cfg.Sensor.SimulatedAvailable,
			FlapInterval: cfg.Sensor.FlapInterval(),
		}), nil
	case config.DriverSerial:
		if cfg.Sensor.SerialPort == "" {
			return nil, fmt.Errorf("the serial driver needs a port (--port or sensor.serial_port)")
		}
		return sensor.NewSerial(sensor.SerialConfig{
			Port:         cfg.Sensor.SerialPort,
			BaudRate:     cfg.Sensor.BaudRate,
			PollInterval: cfg.Sensor.PollInterval(),
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown sensor driver %q", cfg.Sensor.Driver)
	}
}

// closeIfOpen closes a session the controller never took over. Once the
// controller has opened it, Controller.Close owns the close.
func closeIfOpen(s sensor.Session) error {
	if s == nil || !s.IsOpen() {
		return nil
	}
	return s.Close()
}
