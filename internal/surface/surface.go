// Package surface provides the renderable regions the shell moves between
// display slots.
//
// A Surface keeps its own state across attach and detach; the shell only
// decides where it is drawn. Rendering is deliberately simple: each surface
// turns the latest reading of its sensor source into a block of text.
package surface

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/evolution/internal/errors"
	"github.com/Iron-Ham/evolution/internal/sensor"
)

// Kind is the visualization a surface draws.
type Kind int

// Surface kinds. The first four back the tech panels in catalog order.
const (
	KindAudio Kind = iota
	KindBody
	KindRotation
	KindDepthWithColor
	KindCamera
)

// TechKinds returns the kinds built for every session, in catalog order.
func TechKinds() []Kind {
	return []Kind{KindAudio, KindBody, KindRotation, KindDepthWithColor}
}

func (k Kind) String() string {
	switch k {
	case KindAudio:
		return "audio"
	case KindBody:
		return "body"
	case KindRotation:
		return "rotation"
	case KindDepthWithColor:
		return "depth-with-color"
	case KindCamera:
		return "camera"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Modality returns the sensor stream a kind consumes.
func (k Kind) Modality() sensor.Modality {
	switch k {
	case KindAudio:
		return sensor.ModalityAudio
	case KindBody, KindRotation:
		return sensor.ModalityBody
	default:
		return sensor.ModalityDepth
	}
}

// Surface is a renderable region bound to one sensor source.
type Surface interface {
	ID() string
	Kind() Kind
	// Start delivers the resume signal; the surface begins consuming frames.
	Start()
	Started() bool
	// Render draws the surface into a width x height block of text.
	Render(width, height int) string
}

// Factory constructs surfaces for a session's sources.
type Factory interface {
	New(kind Kind, source sensor.Source) (Surface, error)
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func(kind Kind, source sensor.Source) (Surface, error)

// New calls f.
func (f FactoryFunc) New(kind Kind, source sensor.Source) (Surface, error) {
	return f(kind, source)
}

// TextFactory builds the text renderers used by the terminal shell.
type TextFactory struct{}

// New returns the renderer for kind. A nil source fails with ErrSurfaceFactory.
func (TextFactory) New(kind Kind, source sensor.Source) (Surface, error) {
	if source == nil {
		return nil, errors.Wrapf(errors.ErrSurfaceFactory, "no %s source for %s surface", kind.Modality(), kind)
	}
	base := newBase(kind, source)
	switch kind {
	case KindAudio:
		return &audioSurface{base}, nil
	case KindBody:
		return &bodySurface{base}, nil
	case KindRotation:
		return &rotationSurface{base}, nil
	case KindDepthWithColor:
		return &depthSurface{base}, nil
	case KindCamera:
		return NewCamera(source), nil
	default:
		return nil, errors.Wrapf(errors.ErrSurfaceFactory, "unknown surface kind %d", int(kind))
	}
}

// base holds the state shared by every text renderer.
type base struct {
	mu      sync.Mutex
	id      string
	kind    Kind
	source  sensor.Source
	started bool
	last    sensor.Reading
}

func newBase(kind Kind, source sensor.Source) *base {
	return &base{
		id:     kind.String() + "-" + uuid.NewString()[:8],
		kind:   kind,
		source: source,
	}
}

func (b *base) ID() string { return b.id }
func (b *base) Kind() Kind { return b.kind }

func (b *base) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = true
}

func (b *base) Started() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

// frame returns the next reading, or false while the surface is paused.
func (b *base) frame() (sensor.Reading, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return sensor.Reading{}, false
	}
	b.last = b.source.Read()
	return b.last, true
}
