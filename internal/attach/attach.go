// Package attach owns the mapping from surfaces to display slots.
//
// Each surface sits in at most one slot. The camera and tech slots hold one
// surface each; the thumbnail slot is the rest holder for every tech surface
// that is not live. Moves are always detach-then-attach. When a caller breaks
// the single-occupancy rule the coordinator repairs the layout, logs the
// repair, and carries on without returning an error.
package attach

import (
	"slices"

	"github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/logging"
	"github.com/Iron-Ham/evolution/internal/panel"
	"github.com/Iron-Ham/evolution/internal/surface"
)

// Slot names a display location.
type Slot string

const (
	SlotNone       Slot = ""
	SlotCamera     Slot = "camera"
	SlotTech       Slot = "tech"
	SlotThumbnails Slot = "thumbnails"
)

// single reports whether the slot holds at most one surface.
func (s Slot) single() bool {
	return s == SlotCamera || s == SlotTech
}

func (s Slot) String() string {
	if s == SlotNone {
		return "none"
	}
	return string(s)
}

// Repair actions carried by InvariantRepairedEvent.
const (
	ActionEvicted    = "evicted"
	ActionDetached   = "detached"
	ActionReselected = "reselected"
)

// Coordinator tracks where every surface is attached.
//
// It is not safe for concurrent use; all calls happen on the coordinating
// goroutine.
type Coordinator struct {
	logger *logging.Logger
	bus    *event.Bus

	where    map[string]Slot
	surfaces map[string]surface.Surface
	order    map[Slot][]string

	tracked map[*panel.Descriptor]string
}

// New creates a Coordinator publishing to bus. A nil bus gets a private one;
// a nil logger discards output.
func New(bus *event.Bus, logger *logging.Logger) *Coordinator {
	if bus == nil {
		bus = event.NewBus()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Coordinator{
		logger:   logger.WithComponent("attach"),
		bus:      bus,
		where:    make(map[string]Slot),
		surfaces: make(map[string]surface.Surface),
		order:    make(map[Slot][]string),
		tracked:  make(map[*panel.Descriptor]string),
	}
}

// Attach places s into slot.
//
// A surface already attached elsewhere is detached first and the repair is
// logged. A single slot that is already occupied has its occupant moved to
// the thumbnail slot. Attaching into the slot s already occupies is a no-op.
func (c *Coordinator) Attach(s surface.Surface, slot Slot) error {
	if s == nil {
		return errors.NewValidationError("cannot attach a nil surface").WithField("surface")
	}
	if slot == SlotNone {
		return errors.NewValidationError("cannot attach into no slot").WithField("slot").WithValue(s.ID())
	}

	id := s.ID()
	current := c.where[id]
	if current == slot {
		return nil
	}
	if current != SlotNone {
		c.repair(id, current, slot, ActionDetached,
			errors.NewInvariantError("surface attached without detaching first"))
		c.Detach(s)
	}

	if slot.single() {
		if occupant := c.Occupant(slot); occupant != nil {
			c.repair(occupant.ID(), slot, SlotThumbnails, ActionEvicted,
				errors.NewInvariantError("slot already occupied"))
			c.Detach(occupant)
			c.place(occupant, SlotThumbnails)
		}
	}

	c.place(s, slot)
	return nil
}

func (c *Coordinator) place(s surface.Surface, slot Slot) {
	id := s.ID()
	c.where[id] = slot
	c.surfaces[id] = s
	c.order[slot] = append(c.order[slot], id)
	c.logger.Debug("surface attached", "surface", id, "slot", slot.String())
	c.bus.Publish(event.NewSurfaceAttachedEvent(id, string(slot)))
}

func (c *Coordinator) repair(id string, found, wanted Slot, action string, err *errors.InvariantError) {
	err = err.WithSurface(id).WithSlots(found.String(), wanted.String())
	c.logger.Warn("invariant repaired", "surface", id, "action", action, "error", err)
	c.bus.Publish(event.NewInvariantRepairedEvent(id, found.String(), action))
}

// Detach removes s from its slot and returns that slot, or SlotNone when s
// was not attached.
func (c *Coordinator) Detach(s surface.Surface) Slot {
	if s == nil {
		return SlotNone
	}
	id := s.ID()
	slot, ok := c.where[id]
	if !ok {
		return SlotNone
	}
	delete(c.where, id)
	delete(c.surfaces, id)
	c.order[slot] = slices.DeleteFunc(c.order[slot], func(other string) bool { return other == id })
	c.logger.Debug("surface detached", "surface", id, "slot", slot.String())
	c.bus.Publish(event.NewSurfaceDetachedEvent(id, string(slot)))
	return slot
}

// Where returns the slot holding s.
func (c *Coordinator) Where(s surface.Surface) Slot {
	if s == nil {
		return SlotNone
	}
	return c.where[s.ID()]
}

// Occupant returns the surface in a single slot, or nil.
func (c *Coordinator) Occupant(slot Slot) surface.Surface {
	ids := c.order[slot]
	if len(ids) == 0 {
		return nil
	}
	return c.surfaces[ids[len(ids)-1]]
}

// Members returns the surfaces in slot in attach order.
func (c *Coordinator) Members(slot Slot) []surface.Surface {
	ids := c.order[slot]
	out := make([]surface.Surface, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.surfaces[id])
	}
	return out
}

// Select moves the live tech selection from prev to next.
//
// The previous descriptor's surface is detached and the descriptor deselected,
// which sends the surface back to the thumbnail slot through Track. The next
// descriptor's surface is detached from wherever it rests, the descriptor is
// selected, and a derived visualization is attached into the tech slot.
// A nil next descriptor reports reverted so the caller can restore its last
// valid index.
func (c *Coordinator) Select(prev, next *panel.Descriptor) (reverted bool) {
	if prev != nil && prev != next {
		c.Detach(prev.Surface())
		prev.SetSelected(false)
		if c.Where(prev.Surface()) == SlotNone {
			// Untracked descriptors have nobody to return them to rest.
			_ = c.Attach(prev.Surface(), SlotThumbnails)
		}
	}
	if next == nil {
		return true
	}

	c.Detach(next.Surface())
	next.SetSelected(true)
	if next.Kind() == panel.KindDerivedVisualization {
		_ = c.Attach(next.Surface(), SlotTech)
	}
	return false
}

// Track watches d so that an external deselection returns its surface to the
// thumbnail slot. An untracked, unattached surface starts in the thumbnail
// slot.
func (c *Coordinator) Track(d *panel.Descriptor) {
	if _, ok := c.tracked[d]; ok {
		return
	}
	if c.Where(d.Surface()) == SlotNone && !d.IsSelected() {
		_ = c.Attach(d.Surface(), SlotThumbnails)
	}
	c.tracked[d] = d.Subscribe(func(e event.Event) {
		pc, ok := e.(event.PanelPropertyChangedEvent)
		if !ok || pc.Property != event.PropertySelected || pc.New != false {
			return
		}
		c.onDeselected(d)
	})
}

// onDeselected handles a descriptor whose selection flag went false.
func (c *Coordinator) onDeselected(d *panel.Descriptor) {
	s := d.Surface()
	switch c.Where(s) {
	case SlotTech:
		// Still live: refuse the deselection instead of leaving the tech
		// slot with an unselected surface.
		c.repair(s.ID(), SlotTech, SlotThumbnails, ActionReselected,
			errors.NewInvariantError("live surface deselected"))
		d.SetSelected(true)
	case SlotThumbnails:
	default:
		_ = c.Attach(s, SlotThumbnails)
	}
}

// Untrack stops watching d.
func (c *Coordinator) Untrack(d *panel.Descriptor) {
	if id, ok := c.tracked[d]; ok {
		d.Unsubscribe(id)
		delete(c.tracked, d)
	}
}

// Tracked returns the number of watched descriptors.
func (c *Coordinator) Tracked() int { return len(c.tracked) }

// Reset untracks every descriptor and empties all slots without publishing.
func (c *Coordinator) Reset() {
	for d := range c.tracked {
		c.Untrack(d)
	}
	clear(c.where)
	clear(c.surfaces)
	clear(c.order)
}
