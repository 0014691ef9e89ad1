package sensor

import (
	"fmt"
	"math"
	"sync"
)

// Modality identifies one stream a session can deliver.
type Modality int

// Modalities exposed by a session.
const (
	ModalityDepth Modality = iota
	ModalityColor
	ModalityInfrared
	ModalityBody
	ModalityAudio
)

// Modalities returns every modality in declaration order.
func Modalities() []Modality {
	return []Modality{ModalityDepth, ModalityColor, ModalityInfrared, ModalityBody, ModalityAudio}
}

func (m Modality) String() string {
	switch m {
	case ModalityDepth:
		return "depth"
	case ModalityColor:
		return "color"
	case ModalityInfrared:
		return "infrared"
	case ModalityBody:
		return "body"
	case ModalityAudio:
		return "audio"
	default:
		return fmt.Sprintf("modality(%d)", int(m))
	}
}

// Reading is one frame worth of normalized samples in [0, 1].
type Reading struct {
	Seq    uint64
	Values []float64
}

// Source is a per-modality frame source.
type Source interface {
	Modality() Modality
	// Read returns the next reading. It never blocks.
	Read() Reading
}

// CoordinateMapper maps depth-space coordinates into color space.
type CoordinateMapper interface {
	DepthToColor(x, y int) (cx, cy int)
}

// Session is an open connection to a sensor device.
type Session interface {
	ID() string
	Open() error
	Close() error
	IsOpen() bool
	IsAvailable() bool
	// OnAvailabilityChanged registers fn and returns a function removing it.
	// fn may be called from any goroutine.
	OnAvailabilityChanged(fn func(available bool)) (cancel func())
	Source(m Modality) Source
	CoordinateMapper() CoordinateMapper
}

// samplesPerReading is the width of every synthetic reading.
const samplesPerReading = 16

// syntheticSource produces a deterministic waveform per modality.
type syntheticSource struct {
	mu       sync.Mutex
	modality Modality
	seq      uint64
}

func newSyntheticSource(m Modality) *syntheticSource {
	return &syntheticSource{modality: m}
}

func (s *syntheticSource) Modality() Modality { return s.modality }

func (s *syntheticSource) Read() Reading {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	values := make([]float64, samplesPerReading)
	phase := float64(seq) / 8
	offset := float64(s.modality) * math.Pi / 5
	for i := range values {
		x := float64(i)/samplesPerReading*2*math.Pi + phase + offset
		values[i] = (math.Sin(x) + 1) / 2
	}
	return Reading{Seq: seq, Values: values}
}

func newSources() map[Modality]Source {
	sources := make(map[Modality]Source, len(Modalities()))
	for _, m := range Modalities() {
		sources[m] = newSyntheticSource(m)
	}
	return sources
}

// scaleMapper maps depth coordinates to color coordinates by a fixed ratio.
type scaleMapper struct {
	numerator, denominator int
}

func (m scaleMapper) DepthToColor(x, y int) (int, int) {
	return x * m.numerator / m.denominator, y * m.numerator / m.denominator
}

// defaultMapper matches a 512-wide depth frame to a 1920-wide color frame.
var defaultMapper = scaleMapper{numerator: 1920, denominator: 512}

// listeners keeps availability callbacks in registration order.
type listeners struct {
	mu     sync.Mutex
	nextID int
	fns    []listener
}

type listener struct {
	id int
	fn func(bool)
}

func (l *listeners) add(fn func(bool)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.fns = append(l.fns, listener{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(id) })
	}
}

func (l *listeners) remove(id int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, ln := range l.fns {
		if ln.id == id {
			l.fns = append(l.fns[:i:i], l.fns[i+1:]...)
			return
		}
	}
}

func (l *listeners) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}

// notify calls every listener outside the lock.
func (l *listeners) notify(available bool) {
	l.mu.Lock()
	snapshot := make([]listener, len(l.fns))
	copy(snapshot, l.fns)
	l.mu.Unlock()

	for _, ln := range snapshot {
		ln.fn(available)
	}
}
