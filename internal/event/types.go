// Package event defines event types for decoupling components of the shell.
// These events let the panel model, the attachment coordinator, the view-state
// machine and the TUI talk to each other without direct dependencies.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "panel.property_changed").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypePanelPropertyChanged = "panel.property_changed"
	TypeCatalogRebuilt       = "catalog.rebuilt"
	TypeSelectionChanged     = "selection.changed"
	TypeSurfaceAttached      = "surface.attached"
	TypeSurfaceDetached      = "surface.detached"
	TypeSurfaceStarted       = "surface.started"
	TypeInvariantRepaired    = "invariant.repaired"
	TypeViewStateChanged     = "viewstate.changed"
	TypeCameraModeChanged    = "camera.mode_changed"
	TypeSensorAvailability   = "sensor.availability_changed"
)

// baseEvent provides common fields for all events.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Panel Events
// -----------------------------------------------------------------------------

// Property names carried by PanelPropertyChangedEvent.
const (
	PropertyKind        = "kind"
	PropertyTitle       = "title"
	PropertyDescription = "description"
	PropertySelected    = "selected"
)

// PanelPropertyChangedEvent is emitted synchronously by a panel descriptor
// whenever one of its attributes is written with a new value.
type PanelPropertyChangedEvent struct {
	baseEvent
	PanelID  string // Surface identity of the descriptor
	Property string // One of the Property* constants
	Old      any
	New      any
}

// NewPanelPropertyChangedEvent creates a PanelPropertyChangedEvent.
func NewPanelPropertyChangedEvent(panelID, property string, oldValue, newValue any) PanelPropertyChangedEvent {
	return PanelPropertyChangedEvent{
		baseEvent: newBaseEvent(TypePanelPropertyChanged),
		PanelID:   panelID,
		Property:  property,
		Old:       oldValue,
		New:       newValue,
	}
}

// CatalogRebuiltEvent is emitted after the panel catalog swapped its sequence.
type CatalogRebuiltEvent struct {
	baseEvent
	SessionID string // Empty when the catalog was cleared
	Count     int
}

// NewCatalogRebuiltEvent creates a CatalogRebuiltEvent.
func NewCatalogRebuiltEvent(sessionID string, count int) CatalogRebuiltEvent {
	return CatalogRebuiltEvent{
		baseEvent: newBaseEvent(TypeCatalogRebuilt),
		SessionID: sessionID,
		Count:     count,
	}
}

// SelectionChangedEvent is emitted when the live tech selection changes.
type SelectionChangedEvent struct {
	baseEvent
	Previous int // -1 when nothing was selected
	Current  int // -1 when the selection was cleared
	Title    string
}

// NewSelectionChangedEvent creates a SelectionChangedEvent.
func NewSelectionChangedEvent(previous, current int, title string) SelectionChangedEvent {
	return SelectionChangedEvent{
		baseEvent: newBaseEvent(TypeSelectionChanged),
		Previous:  previous,
		Current:   current,
		Title:     title,
	}
}

// -----------------------------------------------------------------------------
// Surface Events
// -----------------------------------------------------------------------------

// SurfaceAttachedEvent is emitted when a surface is placed into a slot.
type SurfaceAttachedEvent struct {
	baseEvent
	SurfaceID string
	Slot      string
}

// NewSurfaceAttachedEvent creates a SurfaceAttachedEvent.
func NewSurfaceAttachedEvent(surfaceID, slot string) SurfaceAttachedEvent {
	return SurfaceAttachedEvent{
		baseEvent: newBaseEvent(TypeSurfaceAttached),
		SurfaceID: surfaceID,
		Slot:      slot,
	}
}

// SurfaceDetachedEvent is emitted when a surface is removed from a slot.
type SurfaceDetachedEvent struct {
	baseEvent
	SurfaceID string
	Slot      string
}

// NewSurfaceDetachedEvent creates a SurfaceDetachedEvent.
func NewSurfaceDetachedEvent(surfaceID, slot string) SurfaceDetachedEvent {
	return SurfaceDetachedEvent{
		baseEvent: newBaseEvent(TypeSurfaceDetached),
		SurfaceID: surfaceID,
		Slot:      slot,
	}
}

// SurfaceStartedEvent is emitted when a surface receives its resume signal.
type SurfaceStartedEvent struct {
	baseEvent
	SurfaceID string
}

// NewSurfaceStartedEvent creates a SurfaceStartedEvent.
func NewSurfaceStartedEvent(surfaceID string) SurfaceStartedEvent {
	return SurfaceStartedEvent{
		baseEvent: newBaseEvent(TypeSurfaceStarted),
		SurfaceID: surfaceID,
	}
}

// InvariantRepairedEvent is emitted when the attachment coordinator corrected
// a surface that was about to end up in two slots, or in none.
type InvariantRepairedEvent struct {
	baseEvent
	SurfaceID string
	Found     string
	Action    string
}

// NewInvariantRepairedEvent creates an InvariantRepairedEvent.
func NewInvariantRepairedEvent(surfaceID, found, action string) InvariantRepairedEvent {
	return InvariantRepairedEvent{
		baseEvent: newBaseEvent(TypeInvariantRepaired),
		SurfaceID: surfaceID,
		Found:     found,
		Action:    action,
	}
}

// -----------------------------------------------------------------------------
// View Events
// -----------------------------------------------------------------------------

// ViewStateChangedEvent is emitted when the presentation state changes.
type ViewStateChangedEvent struct {
	baseEvent
	Previous string
	Current  string
}

// NewViewStateChangedEvent creates a ViewStateChangedEvent.
func NewViewStateChangedEvent(previous, current string) ViewStateChangedEvent {
	return ViewStateChangedEvent{
		baseEvent: newBaseEvent(TypeViewStateChanged),
		Previous:  previous,
		Current:   current,
	}
}

// CameraModeChangedEvent is emitted when the camera slot switches mode.
type CameraModeChangedEvent struct {
	baseEvent
	Previous string
	Current  string
}

// NewCameraModeChangedEvent creates a CameraModeChangedEvent.
func NewCameraModeChangedEvent(previous, current string) CameraModeChangedEvent {
	return CameraModeChangedEvent{
		baseEvent: newBaseEvent(TypeCameraModeChanged),
		Previous:  previous,
		Current:   current,
	}
}

// -----------------------------------------------------------------------------
// Sensor Events
// -----------------------------------------------------------------------------

// SensorAvailabilityEvent is emitted when the device appears or disappears.
type SensorAvailabilityEvent struct {
	baseEvent
	SessionID string
	Available bool
}

// NewSensorAvailabilityEvent creates a SensorAvailabilityEvent.
func NewSensorAvailabilityEvent(sessionID string, available bool) SensorAvailabilityEvent {
	return SensorAvailabilityEvent{
		baseEvent: newBaseEvent(TypeSensorAvailability),
		SessionID: sessionID,
		Available: available,
	}
}
