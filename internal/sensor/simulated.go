package sensor

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Iron-Ham/evolution/internal/errors"
)

// SimulatedConfig configures a Simulated session.
type SimulatedConfig struct {
	// Available is the availability reported right after Open.
	Available bool
	// FlapInterval toggles availability periodically when positive.
	FlapInterval time.Duration
}

// Simulated is an in-process session with caller-controlled availability.
type Simulated struct {
	mu        sync.Mutex
	id        string
	cfg       SimulatedConfig
	open      bool
	available bool
	opens     int

	sources   map[Modality]Source
	listeners listeners

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSimulated creates a closed simulated session.
func NewSimulated(cfg SimulatedConfig) *Simulated {
	return &Simulated{
		id:      uuid.NewString(),
		cfg:     cfg,
		sources: newSources(),
	}
}

// ID returns the session identifier.
func (s *Simulated) ID() string { return s.id }

// Open marks the session open and, with a flap interval, starts toggling
// availability in the background.
func (s *Simulated) Open() error {
	s.mu.Lock()
	if s.open {
		s.mu.Unlock()
		return nil
	}
	s.open = true
	s.opens++
	s.available = s.cfg.Available
	available := s.available

	if s.cfg.FlapInterval > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.wg.Go(func() { s.flap(ctx) })
	}
	s.mu.Unlock()

	if available {
		s.listeners.notify(true)
	}
	return nil
}

func (s *Simulated) flap(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.FlapInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			next := !s.available
			s.mu.Unlock()
			s.SetAvailable(next)
		}
	}
}

// Close stops the flapper and marks the session closed. Listeners are not
// notified; owners unsubscribe before closing.
func (s *Simulated) Close() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return errors.NewSessionError("close", errors.ErrSessionClosed).WithSessionID(s.id).WithDriver("simulated")
	}
	s.open = false
	s.available = false
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	return nil
}

// IsOpen reports whether Open has been called without a matching Close.
func (s *Simulated) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// IsAvailable reports whether the device is present. Always false when closed.
func (s *Simulated) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open && s.available
}

// SetAvailable changes availability and notifies listeners when it changed.
// It is ignored while the session is closed.
func (s *Simulated) SetAvailable(available bool) {
	s.mu.Lock()
	if !s.open || s.available == available {
		s.mu.Unlock()
		return
	}
	s.available = available
	s.mu.Unlock()

	s.listeners.notify(available)
}

// OnAvailabilityChanged registers fn.
func (s *Simulated) OnAvailabilityChanged(fn func(bool)) func() {
	return s.listeners.add(fn)
}

// ListenerCount returns the number of registered availability callbacks.
func (s *Simulated) ListenerCount() int {
	return s.listeners.len()
}

// OpenCount returns how many times the session was opened.
func (s *Simulated) OpenCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opens
}

// Source returns the source for m, or nil for an unknown modality.
func (s *Simulated) Source(m Modality) Source {
	return s.sources[m]
}

// CoordinateMapper returns the fixed-ratio mapper.
func (s *Simulated) CoordinateMapper() CoordinateMapper {
	return defaultMapper
}
