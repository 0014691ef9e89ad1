package surface

import (
	"strconv"
	"sync"

	"github.com/Iron-Ham/evolution/internal/sensor"
)

// Fake is a Surface that records the resume signals it receives.
type Fake struct {
	mu     sync.Mutex
	id     string
	kind   Kind
	starts int
}

// NewFake creates a Fake with a fixed identity.
func NewFake(id string, kind Kind) *Fake {
	return &Fake{id: id, kind: kind}
}

func (f *Fake) ID() string { return f.id }
func (f *Fake) Kind() Kind { return f.kind }

func (f *Fake) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
}

func (f *Fake) Started() bool { return f.StartCount() > 0 }

// StartCount returns how many times Start was called.
func (f *Fake) StartCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func (f *Fake) Render(width, height int) string {
	return block([]string{f.id}, width, height)
}

// FakeFactory is a Factory producing Fakes named "<kind>-<n>" and
// recording every surface it made.
type FakeFactory struct {
	FailOn map[Kind]error

	mu   sync.Mutex
	made []*Fake
}

// New implements Factory.
func (f *FakeFactory) New(kind Kind, source sensor.Source) (Surface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.FailOn[kind]; err != nil {
		return nil, err
	}
	fake := NewFake(kind.String()+"-"+strconv.Itoa(len(f.made)), kind)
	f.made = append(f.made, fake)
	return fake, nil
}

// Made returns every Fake created so far.
func (f *FakeFactory) Made() []*Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*Fake(nil), f.made...)
}
