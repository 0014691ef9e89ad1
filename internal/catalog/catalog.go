// Package catalog builds the fixed set of tech panels for a sensor session.
package catalog

import (
	"fmt"
	"slices"

	"github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/panel"
	"github.com/Iron-Ham/evolution/internal/sensor"
	"github.com/Iron-Ham/evolution/internal/surface"
)

// Catalog holds the ordered panel sequence for one session.
//
// A Catalog is not safe for concurrent use; it lives on the coordinating
// goroutine together with the rest of the shell state.
type Catalog struct {
	factory surface.Factory
	logger  *logging.Logger
	bus     *event.Bus

	session sensor.Session
	panels  []*panel.Descriptor
}

// New creates an empty catalog. A nil logger discards output.
func New(factory surface.Factory, logger *logging.Logger) *Catalog {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Catalog{
		factory: factory,
		logger:  logger.WithComponent("catalog"),
		bus:     event.NewBus(),
	}
}

// Build binds the catalog to session and returns its panels.
//
// Calling Build again with the current session returns the existing panels.
// A nil session closes the prior session if it is still open and clears the
// catalog. Any other session gets four new descriptors in catalog order,
// swapped in together: if a surface cannot be made the previous panels stay
// in place and an error is returned.
func (c *Catalog) Build(session sensor.Session) ([]*panel.Descriptor, error) {
	if session != nil && session == c.session {
		return c.Panels(), nil
	}

	if session == nil {
		c.clear()
		return nil, nil
	}

	if !session.IsOpen() {
		return nil, errors.NewSessionError("build catalog", errors.ErrSessionAbsent).WithSessionID(session.ID())
	}

	panels := make([]*panel.Descriptor, 0, len(entries))
	for _, e := range entries {
		s, err := c.factory.New(e.kind, session.Source(e.kind.Modality()))
		if err != nil {
			c.logger.Error("failed to build catalog", "session_id", session.ID(), "kind", e.kind.String(), "error", err)
			return nil, errors.NewCatalogError("build", fmt.Errorf("%w: %w", errors.ErrSurfaceFactory, err)).
				WithPanel(Lookup(e.titleKey)).WithIndex(len(panels))
		}
		panels = append(panels, panel.New(s, panel.KindDerivedVisualization, Lookup(e.titleKey), Lookup(e.descKey)))
	}

	c.session = session
	c.panels = panels
	c.logger.Info("catalog built", "session_id", session.ID(), "count", len(panels))
	c.bus.Publish(event.NewCatalogRebuiltEvent(session.ID(), len(panels)))
	return c.Panels(), nil
}

func (c *Catalog) clear() {
	prior := c.session
	hadPanels := len(c.panels) > 0

	if prior != nil && prior.IsOpen() {
		if err := prior.Close(); err != nil {
			c.logger.Warn("failed to close prior session", "session_id", prior.ID(), "error", err)
		}
	}
	c.session = nil
	c.panels = nil

	if prior != nil || hadPanels {
		c.logger.Info("catalog cleared")
		c.bus.Publish(event.NewCatalogRebuiltEvent("", 0))
	}
}

// Panels returns a copy of the panel sequence.
func (c *Catalog) Panels() []*panel.Descriptor {
	return slices.Clone(c.panels)
}

// Len returns the number of panels.
func (c *Catalog) Len() int { return len(c.panels) }

// At returns the panel at index i.
func (c *Catalog) At(i int) (*panel.Descriptor, error) {
	if len(c.panels) == 0 {
		return nil, errors.NewCatalogError("at", errors.ErrEmptyCatalog).WithIndex(i).WithCount(0)
	}
	if i < 0 || i >= len(c.panels) {
		return nil, errors.NewCatalogError("at", errors.ErrIndexOutOfRange).WithIndex(i).WithCount(len(c.panels))
	}
	return c.panels[i], nil
}

// IndexOf returns the index of the panel whose surface has id, or -1.
func (c *Catalog) IndexOf(id string) int {
	return slices.IndexFunc(c.panels, func(d *panel.Descriptor) bool { return d.ID() == id })
}

// Session returns the bound session, or nil.
func (c *Catalog) Session() sensor.Session { return c.session }

// Subscribe registers h for catalog.rebuilt events.
func (c *Catalog) Subscribe(h event.Handler) string {
	return c.bus.Subscribe(event.TypeCatalogRebuilt, h)
}

// Unsubscribe removes a subscription.
func (c *Catalog) Unsubscribe(id string) bool {
	return c.bus.Unsubscribe(id)
}
