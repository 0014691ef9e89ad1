// Package tui is the terminal front end of the shell: a Bubbletea program
// that owns the shell controller and renders the camera, tech and thumbnail
// slots.
package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Iron-Ham/evolution/internal/config"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/Iron-Ham/evolution/internal/shell"
	"github.com/Iron-Ham/evolution/internal/surface"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// Options configures an App.
type Options struct {
	Config  *config.Config
	Session sensor.Session
	Factory surface.Factory
	Logger  *logging.Logger
	Store   shell.PreferenceStore
	Keymap  *keymap.Keymap
	// WatchConfig hot-applies changes to the config file while running.
	WatchConfig bool
}

// App wraps the Bubbletea program
type App struct {
	opts    Options
	program *tea.Program
	model   *Model
	ctrl    *shell.Controller
}

// New creates a new TUI application
func New(opts Options) *App {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &App{opts: opts}
}

// Run opens the session, runs the program until the user quits or ctx is
// cancelled, then tears the session down.
func (a *App) Run(ctx context.Context) error {
	cfg := a.opts.Config
	logger := a.opts.Logger.WithComponent("app")

	a.ctrl = shell.New(shell.Options{
		Factory: a.opts.Factory,
		Logger:  a.opts.Logger,
		// Availability flips arrive on the session's goroutine; Send hands
		// them to Update.
		Dispatch: func(available bool) {
			a.program.Send(availabilityMsg{available: available})
		},
		MinFullWidth:  cfg.TUI.MinFullWidth,
		MinFullHeight: cfg.TUI.MinFullHeight,
		Store:         a.opts.Store,
	})
	a.model = NewModel(ModelOptions{
		Controller:     a.ctrl,
		Keymap:         a.opts.Keymap,
		Theme:          cfg.TUI.Theme,
		ThumbnailWidth: cfg.TUI.ThumbnailWidth,
		FrameInterval:  cfg.TUI.FrameInterval(),
		Logger:         a.opts.Logger,
	})
	a.program = tea.NewProgram(
		a.model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Size the controller before the first frame so it opens in the right
	// view state.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		a.ctrl.Resize(w, h)
	}

	if err := a.ctrl.OpenSession(a.opts.Session); err != nil {
		return fmt.Errorf("failed to open sensor session: %w", err)
	}
	defer func() {
		if err := a.ctrl.Close(); err != nil {
			logger.Warn("failed to close session", "error", err)
		}
	}()

	if a.opts.WatchConfig {
		watching := config.Watch(func(cfg *config.Config, err error) {
			a.program.Send(configReloadedMsg{cfg: cfg, err: err})
		})
		logger.Debug("config watch", "enabled", watching)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := a.program.Run()
		return err
	})
	g.Go(func() error {
		<-gctx.Done()
		a.program.Quit()
		return nil
	})

	err := g.Wait()
	logger.Info("tui exited", "error", err)
	return err
}
