package tui

import (
	"time"

	apperrors "github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/shell"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	"github.com/Iron-Ham/evolution/internal/tui/styles"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval is used when ModelOptions leaves it unset.
const DefaultFrameInterval = 200 * time.Millisecond

// ModelOptions configures a Model.
type ModelOptions struct {
	Controller     *shell.Controller
	Keymap         *keymap.Keymap
	Theme          string
	ThumbnailWidth int
	FrameInterval  time.Duration
	Logger         *logging.Logger
}

// Model is the Bubbletea model of the shell. Every controller call happens
// inside Update, which makes the Update loop the controller's owning
// goroutine.
type Model struct {
	ctrl   *shell.Controller
	keymap *keymap.Keymap
	styles *styles.Styles
	logger *logging.Logger

	mode          keymap.Mode
	width, height int
	thumbWidth    int
	frameInterval time.Duration

	// status is a message key shown in the status bar until the next key.
	status string

	spinner spinner.Model
	jump    jumpState
	help    helpView
}

// NewModel creates a Model around an existing controller.
func NewModel(opts ModelOptions) *Model {
	if opts.Keymap == nil {
		opts.Keymap = keymap.DefaultKeymap()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.ThumbnailWidth <= 0 {
		opts.ThumbnailWidth = DefaultThumbnailWidth
	}
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}

	sp := spinner.New()
	sp.Spinner = spinner.MiniDot

	st := styles.New(opts.Theme)
	sp.Style = st.Notice.UnsetPadding()

	return &Model{
		ctrl:          opts.Controller,
		keymap:        opts.Keymap,
		styles:        st,
		logger:        opts.Logger.WithComponent("tui"),
		mode:          keymap.ModeNormal,
		thumbWidth:    opts.ThumbnailWidth,
		frameInterval: opts.FrameInterval,
		spinner:       sp,
		jump:          newJumpState(),
	}
}

// Mode returns the current input mode.
func (m *Model) Mode() keymap.Mode { return m.mode }

// Status returns the current status message key, empty when none.
func (m *Model) Status() string { return m.status }

// Init starts the frame clock and the no-sensor spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(frame(m.frameInterval), m.spinner.Tick)
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		state := m.ctrl.Resize(msg.Width, msg.Height)
		m.help.invalidate()
		m.logger.Debug("terminal resized", "width", msg.Width, "height", msg.Height, "state", state.String())
		return m, nil

	case availabilityMsg:
		m.ctrl.SetSensorAvailable(msg.available)
		return m, nil

	case configReloadedMsg:
		return m.handleConfigReload(msg)

	case frameMsg:
		return m, frame(m.frameInterval)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.mode == keymap.ModeJump {
		return m, m.jump.update(msg, m.titles())
	}
	return m, nil
}

func (m *Model) handleConfigReload(msg configReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("config reload rejected", "error", msg.err)
		m.status = msgReloadFailed
		return m, nil
	}
	cfg := msg.cfg
	state := m.ctrl.SetThresholds(cfg.TUI.MinFullWidth, cfg.TUI.MinFullHeight)
	if d := cfg.TUI.FrameInterval(); d > 0 {
		m.frameInterval = d
	}
	m.logger.Info("config reloaded",
		"min_full_width", cfg.TUI.MinFullWidth,
		"min_full_height", cfg.TUI.MinFullHeight,
		"frame_interval_ms", cfg.TUI.FrameIntervalMs,
		"state", state.String())
	m.status = msgReloaded
	return m, nil
}

// report turns a controller error into a status message key.
func (m *Model) report(op string, err error) {
	if err == nil {
		return
	}
	switch {
	case apperrors.Is(err, apperrors.ErrEmptyCatalog):
		m.status = msgEmptyCatalog
	case apperrors.Is(err, apperrors.ErrSessionAbsent):
		m.status = msgNoSession
	case apperrors.Is(err, apperrors.ErrIndexOutOfRange):
		// A digit past the last panel does nothing.
	}
	if apperrors.GetSeverity(err) >= apperrors.SeverityError {
		m.logger.Error(op+" failed", "error", err)
		return
	}
	m.logger.Debug(op+" ignored", "error", err)
}

func (m *Model) titles() []string {
	panels := m.ctrl.Panels()
	titles := make([]string, len(panels))
	for i, p := range panels {
		titles[i] = p.Title()
	}
	return titles
}
