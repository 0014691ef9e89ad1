package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	apperrors "github.com/Iron-Ham/evolution/internal/errors"
)

// ValidationErrors is a collection of validation errors
type ValidationErrors []*apperrors.ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, err := range e {
		errs[i] = err
	}
	return errs
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

func invalid(field string, value any, format string, args ...any) *apperrors.ValidationError {
	return apperrors.NewValidationError(fmt.Sprintf(format, args...)).WithField(field).WithValue(value)
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []*apperrors.ValidationError {
	var errors []*apperrors.ValidationError

	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateSensor()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validateState()...)

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []*apperrors.ValidationError {
	var errors []*apperrors.ValidationError

	const minWidth, maxWidth = 20, 1000
	const minHeight, maxHeight = 8, 500

	if c.TUI.MinFullWidth < minWidth {
		errors = append(errors, invalid("tui.min_full_width", c.TUI.MinFullWidth, "must be at least %d columns", minWidth))
	}
	if c.TUI.MinFullWidth > maxWidth {
		errors = append(errors, invalid("tui.min_full_width", c.TUI.MinFullWidth, "exceeds maximum of %d columns", maxWidth))
	}
	if c.TUI.MinFullHeight < minHeight {
		errors = append(errors, invalid("tui.min_full_height", c.TUI.MinFullHeight, "must be at least %d rows", minHeight))
	}
	if c.TUI.MinFullHeight > maxHeight {
		errors = append(errors, invalid("tui.min_full_height", c.TUI.MinFullHeight, "exceeds maximum of %d rows", maxHeight))
	}

	if c.TUI.Theme != "" && !slices.Contains(ValidThemes(), c.TUI.Theme) {
		errors = append(errors, invalid("tui.theme", c.TUI.Theme, "must be one of: %s", strings.Join(ValidThemes(), ", ")))
	}

	// 0 means use default
	const minThumb, maxThumb = 8, 60
	if c.TUI.ThumbnailWidth != 0 && (c.TUI.ThumbnailWidth < minThumb || c.TUI.ThumbnailWidth > maxThumb) {
		errors = append(errors, invalid("tui.thumbnail_width", c.TUI.ThumbnailWidth, "must be between %d and %d columns", minThumb, maxThumb))
	}

	const minFrame, maxFrame = 16, 5000
	if c.TUI.FrameIntervalMs < minFrame {
		errors = append(errors, invalid("tui.frame_interval_ms", c.TUI.FrameIntervalMs, "must be at least %dms", minFrame))
	}
	if c.TUI.FrameIntervalMs > maxFrame {
		errors = append(errors, invalid("tui.frame_interval_ms", c.TUI.FrameIntervalMs, "exceeds maximum of %dms", maxFrame))
	}

	if c.TUI.KeymapFile != "" {
		if info, err := os.Stat(c.TUI.KeymapFile); err != nil {
			errors = append(errors, invalid("tui.keymap_file", c.TUI.KeymapFile, "cannot be read: %v", err))
		} else if info.IsDir() {
			errors = append(errors, invalid("tui.keymap_file", c.TUI.KeymapFile, "must be a file, not a directory"))
		}
	}

	return errors
}

// validateSensor validates the SensorConfig
func (c *Config) validateSensor() []*apperrors.ValidationError {
	var errors []*apperrors.ValidationError

	if !slices.Contains(ValidDrivers(), c.Sensor.Driver) {
		errors = append(errors, invalid("sensor.driver", c.Sensor.Driver, "must be one of: %s", strings.Join(ValidDrivers(), ", ")))
	}

	// The port may be supplied on the command line, so an empty one is only
	// checked when the serial driver is actually opened.
	if c.Sensor.BaudRate <= 0 {
		errors = append(errors, invalid("sensor.baud_rate", c.Sensor.BaudRate, "must be positive"))
	}

	const minPoll, maxPoll = 50, 60000
	if c.Sensor.PollIntervalMs < minPoll {
		errors = append(errors, invalid("sensor.poll_interval_ms", c.Sensor.PollIntervalMs, "must be at least %dms", minPoll))
	}
	if c.Sensor.PollIntervalMs > maxPoll {
		errors = append(errors, invalid("sensor.poll_interval_ms", c.Sensor.PollIntervalMs, "exceeds maximum of %dms", maxPoll))
	}

	if c.Sensor.SimulatedFlapSeconds < 0 {
		errors = append(errors, invalid("sensor.simulated_flap_seconds", c.Sensor.SimulatedFlapSeconds, "must be non-negative (0 disables flapping)"))
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []*apperrors.ValidationError {
	var errors []*apperrors.ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, invalid("logging.level", c.Logging.Level, "must be one of: %s", strings.Join(ValidLogLevels(), ", ")))
	}

	const maxLogSizeMB = 100
	if c.Logging.MaxSizeMB < 1 {
		errors = append(errors, invalid("logging.max_size_mb", c.Logging.MaxSizeMB, "must be at least 1"))
	}
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, invalid("logging.max_size_mb", c.Logging.MaxSizeMB, "exceeds maximum of %d", maxLogSizeMB))
	}

	const maxBackups = 10
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, invalid("logging.max_backups", c.Logging.MaxBackups, "must be non-negative"))
	}
	if c.Logging.MaxBackups > maxBackups {
		errors = append(errors, invalid("logging.max_backups", c.Logging.MaxBackups, "exceeds maximum of %d", maxBackups))
	}

	return errors
}

// validateState validates the StateConfig
func (c *Config) validateState() []*apperrors.ValidationError {
	var errors []*apperrors.ValidationError

	if c.State.Dir == "" {
		return errors
	}
	if strings.ContainsRune(c.State.Dir, 0) {
		errors = append(errors, invalid("state.dir", c.State.Dir, "contains a null byte"))
		return errors
	}
	if info, err := os.Stat(c.State.ResolveDir()); err == nil && !info.IsDir() {
		errors = append(errors, invalid("state.dir", c.State.Dir, "exists and is not a directory"))
	}

	return errors
}
