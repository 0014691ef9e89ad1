// Package shell composes the panel catalog, the attachment coordinator and
// the view-state machine into the controller the TUI drives.
//
// The Controller is single-threaded. Sensor availability callbacks arrive on
// background goroutines and must be handed back to the owning goroutine
// through Options.Dispatch; nothing else calls into the Controller
// concurrently.
package shell

import (
	"context"
	"slices"

	"github.com/Iron-Ham/evolution/internal/attach"
	"github.com/Iron-Ham/evolution/internal/catalog"
	"github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/navigation"
	"github.com/Iron-Ham/evolution/internal/panel"
	"github.com/Iron-Ham/evolution/internal/prefs"
	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/Iron-Ham/evolution/internal/surface"
	"github.com/Iron-Ham/evolution/internal/viewstate"
)

// Default fullscreen geometry thresholds, in terminal cells.
const (
	DefaultMinFullWidth  = 100
	DefaultMinFullHeight = 30
)

// PreferenceStore persists the selection between runs.
type PreferenceStore interface {
	Load(ctx context.Context) (prefs.Selection, bool, error)
	Save(ctx context.Context, sel prefs.Selection) error
}

// Options configures a Controller.
type Options struct {
	Factory surface.Factory
	Logger  *logging.Logger
	// Bus receives every shell event. A nil bus gets a private one.
	Bus *event.Bus
	// Dispatch hands an availability change back to the owning goroutine,
	// which then calls SetSensorAvailable. Nil applies it immediately, which
	// is only correct when the session notifies on the owning goroutine.
	Dispatch      func(available bool)
	MinFullWidth  int
	MinFullHeight int
	// Store, when set, restores the selection on New and saves it on Close.
	Store PreferenceStore
}

// Controller is the composition root of the panel and view-state logic.
type Controller struct {
	root     *logging.Logger
	logger   *logging.Logger
	bus      *event.Bus
	factory  surface.Factory
	dispatch func(bool)
	store    PreferenceStore
	dirty    bool

	catalog *catalog.Catalog
	attach  *attach.Coordinator
	view    *viewstate.Machine

	session         sensor.Session
	cancelAvailable func()
	camera          surface.Surface
	cameraMode      navigation.CameraMode
	selectedIndex   int
	lastSelected    int
	width, height   int
	minFullWidth    int
	minFullHeight   int
}

// New creates a Controller without a session.
func New(opts Options) *Controller {
	if opts.Factory == nil {
		opts.Factory = surface.TextFactory{}
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.Bus == nil {
		opts.Bus = event.NewBus()
	}
	if opts.MinFullWidth <= 0 {
		opts.MinFullWidth = DefaultMinFullWidth
	}
	if opts.MinFullHeight <= 0 {
		opts.MinFullHeight = DefaultMinFullHeight
	}

	c := &Controller{
		root:          opts.Logger.WithComponent("shell"),
		logger:        opts.Logger.WithComponent("shell"),
		bus:           opts.Bus,
		factory:       opts.Factory,
		dispatch:      opts.Dispatch,
		store:         opts.Store,
		catalog:       catalog.New(opts.Factory, opts.Logger),
		attach:        attach.New(opts.Bus, opts.Logger),
		view:          viewstate.New(opts.Bus, opts.Logger),
		cameraMode:    navigation.ModeDepth,
		selectedIndex: -1,
		lastSelected:  -1,
		minFullWidth:  opts.MinFullWidth,
		minFullHeight: opts.MinFullHeight,
	}
	c.restore()
	return c
}

func (c *Controller) restore() {
	if c.store == nil {
		return
	}
	sel, ok, err := c.store.Load(context.Background())
	if err != nil {
		c.logger.Warn("failed to load preferences", "error", err)
		return
	}
	if !ok {
		return
	}
	c.lastSelected = sel.TechIndex
	if mode, err := navigation.ParseCameraMode(sel.CameraMode); err == nil && mode != navigation.ModeDepthRamp {
		c.cameraMode = mode
	}
	c.logger.Debug("restored preferences", "tech_index", sel.TechIndex, "camera_mode", sel.CameraMode)
}

// markDirty records that the selection differs from what the store holds.
// Saving waits for flush so no input handler touches the store.
func (c *Controller) markDirty() {
	if c.store != nil {
		c.dirty = true
	}
}

func (c *Controller) flush() {
	if !c.dirty {
		return
	}
	c.dirty = false
	sel := prefs.Selection{TechIndex: c.lastSelected, CameraMode: c.cameraMode.String()}
	if err := c.store.Save(context.Background(), sel); err != nil {
		c.logger.Warn("failed to save preferences", "error", err)
	}
}

// OpenSession opens s if needed, builds its panels and starts listening for
// availability changes. Opening the current session again is a no-op.
func (c *Controller) OpenSession(s sensor.Session) error {
	if s == nil {
		return errors.NewSessionError("open session", errors.ErrSessionAbsent)
	}
	if s == c.session {
		return nil
	}
	if c.session != nil {
		c.teardown()
	}

	if !s.IsOpen() {
		if err := s.Open(); err != nil {
			return errors.Wrap(err, "open sensor session")
		}
	}

	panels, err := c.catalog.Build(s)
	if err != nil {
		return err
	}
	camera, err := c.factory.New(surface.KindCamera, s.Source(surface.KindCamera.Modality()))
	if err != nil {
		_, _ = c.catalog.Build(nil)
		return errors.NewSessionError("build camera surface", err).WithSessionID(s.ID())
	}

	c.session = s
	c.logger = c.root.WithSession(s.ID())
	c.camera = camera
	c.applyCameraMode()
	c.selectedIndex = -1
	if c.lastSelected >= len(panels) {
		c.lastSelected = -1
	}

	for _, p := range panels {
		c.attach.Track(p)
	}
	_ = c.attach.Attach(camera, attach.SlotCamera)

	c.cancelAvailable = s.OnAvailabilityChanged(func(available bool) {
		if c.dispatch != nil {
			c.dispatch(available)
			return
		}
		c.SetSensorAvailable(available)
	})
	c.logger.Info("session opened", "panels", len(panels))

	if s.IsAvailable() {
		c.SetSensorAvailable(true)
	}
	return nil
}

// teardown unsubscribes from the session and releases the catalog, closing
// the session.
func (c *Controller) teardown() {
	if c.cancelAvailable != nil {
		c.cancelAvailable()
		c.cancelAvailable = nil
	}
	c.attach.Reset()
	if _, err := c.catalog.Build(nil); err != nil {
		c.logger.Warn("failed to release catalog", "error", err)
	}
	c.session = nil
	c.camera = nil
	c.selectedIndex = -1
	c.view.SetAvailability(false)
}

// Close saves any selection change, unsubscribes from every notification
// and closes the session. The owner must not close the session again.
func (c *Controller) Close() error {
	c.flush()
	if c.session == nil {
		return nil
	}
	c.teardown()
	c.logger.Info("session closed")
	return nil
}

// Session returns the open session, or nil.
func (c *Controller) Session() sensor.Session { return c.session }

// Bus returns the event bus shell events are published on.
func (c *Controller) Bus() *event.Bus { return c.bus }

// Panels returns the tech panels in catalog order.
func (c *Controller) Panels() []*panel.Descriptor { return c.catalog.Panels() }

// State returns the current view state.
func (c *Controller) State() viewstate.State { return c.view.State() }

// CameraMode returns the camera slot mode.
func (c *Controller) CameraMode() navigation.CameraMode { return c.cameraMode }

// SelectedIndex returns the live tech index, or -1.
func (c *Controller) SelectedIndex() int { return c.selectedIndex }

// LastSelectedIndex returns the index navigation last settled on, or -1.
func (c *Controller) LastSelectedIndex() int { return c.lastSelected }

// Camera returns the camera surface, or nil without a session.
func (c *Controller) Camera() surface.Surface { return c.camera }

// SetSensorAvailable applies an availability change. When the sensor becomes
// available every surface is started once and the last tech selection is
// restored, defaulting to the first panel.
func (c *Controller) SetSensorAvailable(available bool) {
	became := c.view.SetAvailability(available)
	sessionID := ""
	if c.session != nil {
		sessionID = c.session.ID()
	}
	c.bus.Publish(event.NewSensorAvailabilityEvent(sessionID, available))
	if !became || c.session == nil {
		return
	}

	if c.camera != nil {
		c.start(c.camera)
	}
	for _, p := range c.catalog.Panels() {
		c.start(p.Surface())
	}

	if c.catalog.Len() == 0 {
		return
	}
	if c.lastSelected < 0 {
		c.lastSelected = 0
	}
	if err := c.SelectTech(c.lastSelected); err != nil {
		c.logger.Warn("failed to restore selection", "index", c.lastSelected, "error", err)
	}
}

func (c *Controller) start(s surface.Surface) {
	s.Start()
	c.bus.Publish(event.NewSurfaceStartedEvent(s.ID()))
}

// SelectTech makes panel i the live tech panel and records it as the
// navigation position. A negative i clears the selection, which reverts to
// the last valid index.
func (c *Controller) SelectTech(i int) error {
	if err := c.selectPanel(i); err != nil {
		return err
	}
	if c.selectedIndex >= 0 {
		c.lastSelected = c.selectedIndex
		c.markDirty()
	}
	return nil
}

// PickTech selects panel i the way a pointer click on a thumbnail does: the
// navigation position is left alone, so the next directional step catches
// up to i instead of moving past it.
func (c *Controller) PickTech(i int) error {
	return c.selectPanel(i)
}

func (c *Controller) selectPanel(i int) error {
	n := c.catalog.Len()
	if n == 0 {
		return errors.NewCatalogError("select tech", errors.ErrEmptyCatalog).WithIndex(i).WithCount(0)
	}
	if i >= n {
		return errors.NewCatalogError("select tech", errors.ErrIndexOutOfRange).WithIndex(i).WithCount(n)
	}

	var prev, next *panel.Descriptor
	if c.selectedIndex >= 0 && c.selectedIndex < n {
		prev, _ = c.catalog.At(c.selectedIndex)
	}
	if i >= 0 {
		next, _ = c.catalog.At(i)
	}

	if reverted := c.attach.Select(prev, next); reverted {
		previous := c.selectedIndex
		c.selectedIndex = -1
		c.logger.Debug("selection cleared, reverting", "last_selected", c.lastSelected)
		if c.lastSelected >= 0 && c.lastSelected < n {
			return c.selectPanel(c.lastSelected)
		}
		if previous >= 0 {
			c.bus.Publish(event.NewSelectionChangedEvent(previous, -1, ""))
		}
		return nil
	}

	previous := c.selectedIndex
	c.selectedIndex = i
	if previous != i {
		c.logger.Info("tech selection changed", "from", previous, "to", i, "panel", next.Title())
		c.bus.Publish(event.NewSelectionChangedEvent(previous, i, next.Title()))
	}
	return nil
}

// CycleTechSelection steps the tech selection in dir with wraparound.
func (c *Controller) CycleTechSelection(dir navigation.Direction) error {
	n := c.catalog.Len()
	next, err := navigation.Next(c.lastSelected, c.selectedIndex, n, dir)
	if err != nil {
		return err
	}
	return c.SelectTech(next)
}

// CycleCameraMode steps the camera mode in dir, skipping the depth ramp.
func (c *Controller) CycleCameraMode(dir navigation.Direction) navigation.CameraMode {
	prev := c.cameraMode
	c.cameraMode = navigation.CycleMode(prev, dir)
	c.applyCameraMode()
	c.logger.Info("camera mode changed", "from", prev.String(), "to", c.cameraMode.String())
	c.bus.Publish(event.NewCameraModeChangedEvent(prev.String(), c.cameraMode.String()))
	c.markDirty()
	return c.cameraMode
}

// moder is implemented by camera surfaces that draw several modes.
type moder interface {
	SetMode(mode string)
}

func (c *Controller) applyCameraMode() {
	if m, ok := c.camera.(moder); ok {
		m.SetMode(c.cameraMode.String())
	}
}

// RequestCameraFullscreen toggles the camera region fullscreen.
func (c *Controller) RequestCameraFullscreen() viewstate.State {
	return c.view.RequestCameraFullscreen()
}

// RequestTechFullscreen toggles the tech region fullscreen.
func (c *Controller) RequestTechFullscreen() viewstate.State {
	return c.view.RequestTechFullscreen()
}

// ResetToDefaultView leaves any fullscreen region.
func (c *Controller) ResetToDefaultView() viewstate.State {
	return c.view.Reset()
}

// Resize feeds the terminal size. The shell counts as fullscreen when both
// dimensions meet the configured minimums.
func (c *Controller) Resize(width, height int) viewstate.State {
	c.width, c.height = width, height
	return c.view.SetFullScreen(c.isFullScreen())
}

// SetThresholds changes the fullscreen minimums and re-applies the last size.
func (c *Controller) SetThresholds(minWidth, minHeight int) viewstate.State {
	if minWidth > 0 {
		c.minFullWidth = minWidth
	}
	if minHeight > 0 {
		c.minFullHeight = minHeight
	}
	return c.view.SetFullScreen(c.isFullScreen())
}

func (c *Controller) isFullScreen() bool {
	return c.width >= c.minFullWidth && c.height >= c.minFullHeight
}

// Layout is a snapshot of what every slot holds. Thumbnails are in catalog
// order.
type Layout struct {
	Camera     surface.Surface
	Tech       *panel.Descriptor
	Thumbnails []*panel.Descriptor
}

// Layout resolves the attachment map into descriptors for rendering.
func (c *Controller) Layout() Layout {
	var l Layout
	l.Camera = c.attach.Occupant(attach.SlotCamera)
	if s := c.attach.Occupant(attach.SlotTech); s != nil {
		if i := c.catalog.IndexOf(s.ID()); i >= 0 {
			l.Tech, _ = c.catalog.At(i)
		}
	}
	for _, s := range c.attach.Members(attach.SlotThumbnails) {
		if i := c.catalog.IndexOf(s.ID()); i >= 0 {
			d, _ := c.catalog.At(i)
			l.Thumbnails = append(l.Thumbnails, d)
		}
	}
	slices.SortFunc(l.Thumbnails, func(a, b *panel.Descriptor) int {
		return c.catalog.IndexOf(a.ID()) - c.catalog.IndexOf(b.ID())
	})
	return l
}
