// Package panel defines the observable record describing one visualization
// panel: its surface, display metadata and selection flag.
package panel

import (
	"fmt"
	"sync"

	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/surface"
)

// Kind distinguishes the always-visible camera feed from the selectable
// tech visualizations.
type Kind int

const (
	KindSourceFeed Kind = iota
	KindDerivedVisualization
)

func (k Kind) String() string {
	switch k {
	case KindSourceFeed:
		return "source-feed"
	case KindDerivedVisualization:
		return "derived-visualization"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Descriptor wraps one surface plus its selection and display metadata.
//
// Every setter that changes a value publishes a
// [event.PanelPropertyChangedEvent] to the descriptor's subscribers before
// it returns. Writing the current value again is silent.
type Descriptor struct {
	mu          sync.Mutex
	surface     surface.Surface
	bus         *event.Bus
	kind        Kind
	title       string
	description string
	selected    bool
}

// New creates an unselected descriptor for s. The descriptor does not own the
// surface's lifecycle.
func New(s surface.Surface, kind Kind, title, description string) *Descriptor {
	return &Descriptor{
		surface:     s,
		bus:         event.NewBus(),
		kind:        kind,
		title:       title,
		description: description,
	}
}

// ID returns the surface identity.
func (d *Descriptor) ID() string { return d.surface.ID() }

// Surface returns the injected surface.
func (d *Descriptor) Surface() surface.Surface { return d.surface }

func (d *Descriptor) Kind() Kind {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.kind
}

func (d *Descriptor) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

func (d *Descriptor) Description() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.description
}

func (d *Descriptor) IsSelected() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// SetKind changes the kind.
func (d *Descriptor) SetKind(k Kind) {
	d.mu.Lock()
	old := d.kind
	d.kind = k
	d.mu.Unlock()
	d.notify(event.PropertyKind, old, k)
}

// SetTitle changes the title.
func (d *Descriptor) SetTitle(title string) {
	d.mu.Lock()
	old := d.title
	d.title = title
	d.mu.Unlock()
	d.notify(event.PropertyTitle, old, title)
}

// SetDescription changes the description.
func (d *Descriptor) SetDescription(description string) {
	d.mu.Lock()
	old := d.description
	d.description = description
	d.mu.Unlock()
	d.notify(event.PropertyDescription, old, description)
}

// SetSelected changes the selection flag.
func (d *Descriptor) SetSelected(selected bool) {
	d.mu.Lock()
	old := d.selected
	d.selected = selected
	d.mu.Unlock()
	d.notify(event.PropertySelected, old, selected)
}

func (d *Descriptor) notify(property string, oldValue, newValue any) {
	if oldValue == newValue {
		return
	}
	d.bus.Publish(event.NewPanelPropertyChangedEvent(d.ID(), property, oldValue, newValue))
}

// Subscribe registers h for property changes and returns its subscription ID.
func (d *Descriptor) Subscribe(h event.Handler) string {
	return d.bus.Subscribe(event.TypePanelPropertyChanged, h)
}

// Unsubscribe removes a subscription. It reports whether one was removed.
func (d *Descriptor) Unsubscribe(id string) bool {
	return d.bus.Unsubscribe(id)
}

// SubscriberCount returns the number of active subscriptions.
func (d *Descriptor) SubscriberCount() int {
	return d.bus.SubscriptionCount()
}

// String implements fmt.Stringer.
func (d *Descriptor) String() string {
	return fmt.Sprintf("%s(%s)", d.Title(), d.ID())
}
