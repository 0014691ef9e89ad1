package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/Iron-Ham/evolution/internal/errors"
)

func TestValidationErrors_Error(t *testing.T) {
	tests := []struct {
		name     string
		errs     ValidationErrors
		contains []string
	}{
		{
			name: "empty",
			errs: ValidationErrors{},
		},
		{
			name: "single",
			errs: ValidationErrors{
				invalid("tui.min_full_width", 0, "must be at least %d columns", 20),
			},
			contains: []string{"field=tui.min_full_width", "value=0", "must be at least 20 columns"},
		},
		{
			name: "multiple",
			errs: ValidationErrors{
				invalid("a", 1, "bad a"),
				invalid("b", 2, "bad b"),
			},
			contains: []string{"2 validation errors:", "1. ", "bad a", "2. ", "bad b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.errs.Error()
			if len(tt.contains) == 0 && got != "" {
				t.Errorf("Error() = %q, want empty", got)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, should contain %q", got, want)
				}
			}
		})
	}
}

func TestValidationErrors_Unwrap(t *testing.T) {
	var err error = ValidationErrors{invalid("sensor.driver", "usb", "bad")}
	if !apperrors.Is(err, apperrors.ErrInvalidInput) {
		t.Error("ValidationErrors should match ErrInvalidInput through Unwrap")
	}
	var ve *apperrors.ValidationError
	if !apperrors.As(err, &ve) || ve.Field != "sensor.driver" {
		t.Errorf("As() = %v, want the sensor.driver error", ve)
	}
}

func TestConfig_Validate_DefaultConfig(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("default config should be valid, got %v", ValidationErrors(errs))
	}
}

func fields(errs []*apperrors.ValidationError) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Field
	}
	return out
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	keymap := filepath.Join(dir, "keys.yaml")
	if err := os.WriteFile(keymap, []byte("quit: [q]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	notADir := filepath.Join(dir, "file")
	if err := os.WriteFile(notADir, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		modify func(*Config)
		field  string // empty means valid
	}{
		{"narrow width", func(c *Config) { c.TUI.MinFullWidth = 10 }, "tui.min_full_width"},
		{"huge width", func(c *Config) { c.TUI.MinFullWidth = 5000 }, "tui.min_full_width"},
		{"short height", func(c *Config) { c.TUI.MinFullHeight = 2 }, "tui.min_full_height"},
		{"huge height", func(c *Config) { c.TUI.MinFullHeight = 900 }, "tui.min_full_height"},
		{"unknown theme", func(c *Config) { c.TUI.Theme = "solarized" }, "tui.theme"},
		{"known theme", func(c *Config) { c.TUI.Theme = "nord" }, ""},
		{"thumbnail zero uses default", func(c *Config) { c.TUI.ThumbnailWidth = 0 }, ""},
		{"thumbnail too small", func(c *Config) { c.TUI.ThumbnailWidth = 3 }, "tui.thumbnail_width"},
		{"frame too fast", func(c *Config) { c.TUI.FrameIntervalMs = 1 }, "tui.frame_interval_ms"},
		{"frame too slow", func(c *Config) { c.TUI.FrameIntervalMs = 9000 }, "tui.frame_interval_ms"},
		{"missing keymap", func(c *Config) { c.TUI.KeymapFile = filepath.Join(dir, "nope.yaml") }, "tui.keymap_file"},
		{"keymap is dir", func(c *Config) { c.TUI.KeymapFile = dir }, "tui.keymap_file"},
		{"keymap ok", func(c *Config) { c.TUI.KeymapFile = keymap }, ""},
		{"unknown driver", func(c *Config) { c.Sensor.Driver = "usb" }, "sensor.driver"},
		{"serial without port", func(c *Config) { c.Sensor.Driver = DriverSerial }, ""},
		{"zero baud", func(c *Config) { c.Sensor.BaudRate = 0 }, "sensor.baud_rate"},
		{"poll too fast", func(c *Config) { c.Sensor.PollIntervalMs = 1 }, "sensor.poll_interval_ms"},
		{"poll too slow", func(c *Config) { c.Sensor.PollIntervalMs = 100000 }, "sensor.poll_interval_ms"},
		{"negative flap", func(c *Config) { c.Sensor.SimulatedFlapSeconds = -1 }, "sensor.simulated_flap_seconds"},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"upper level", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
		{"zero log size", func(c *Config) { c.Logging.MaxSizeMB = 0 }, "logging.max_size_mb"},
		{"huge log size", func(c *Config) { c.Logging.MaxSizeMB = 500 }, "logging.max_size_mb"},
		{"negative backups", func(c *Config) { c.Logging.MaxBackups = -1 }, "logging.max_backups"},
		{"too many backups", func(c *Config) { c.Logging.MaxBackups = 50 }, "logging.max_backups"},
		{"state dir is file", func(c *Config) { c.State.Dir = notADir }, "state.dir"},
		{"state dir missing is ok", func(c *Config) { c.State.Dir = filepath.Join(dir, "later") }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			got := fields(cfg.Validate())

			if tt.field == "" {
				if len(got) != 0 {
					t.Errorf("Validate() = %v, want no errors", got)
				}
				return
			}
			if len(got) != 1 || got[0] != tt.field {
				t.Errorf("Validate() fields = %v, want [%s]", got, tt.field)
			}
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.TUI.MinFullWidth = 0
	cfg.Sensor.Driver = ""
	cfg.Logging.MaxBackups = -1

	if errs := cfg.Validate(); len(errs) != 3 {
		t.Errorf("Validate() returned %d errors, want 3: %v", len(errs), fields(errs))
	}
}

func TestValidLogLevels(t *testing.T) {
	want := []string{"debug", "info", "warn", "error"}
	got := ValidLogLevels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ValidLogLevels() = %v, want %v", got, want)
	}
}
