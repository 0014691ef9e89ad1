// Package viewstate derives the presentation state of the shell from the
// terminal geometry and sensor availability, and carries the two explicit
// fullscreen toggles.
package viewstate

import (
	"fmt"

	"github.com/Iron-Ham/evolution/internal/event"
	"github.com/Iron-Ham/evolution/internal/logging"
)

// State is the coarse presentation mode of the whole display.
type State int

const (
	Snapped State = iota
	Default
	NoSensor
	CameraFullscreen
	TechFullscreen
)

func (s State) String() string {
	switch s {
	case Snapped:
		return "Snapped"
	case Default:
		return "Default"
	case NoSensor:
		return "NoSensor"
	case CameraFullscreen:
		return "CameraFullscreen"
	case TechFullscreen:
		return "TechFullscreen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsFullscreen reports whether s gives one region the whole display.
func (s State) IsFullscreen() bool {
	return s == CameraFullscreen || s == TechFullscreen
}

// Evaluate is the pure transition function over the two inputs.
func Evaluate(fullScreen, sensorAvailable bool) State {
	switch {
	case !fullScreen:
		return Snapped
	case !sensorAvailable:
		return NoSensor
	default:
		return Default
	}
}

// Machine holds the current state and the inputs it was derived from.
//
// Machine is not safe for concurrent use.
type Machine struct {
	logger *logging.Logger
	bus    *event.Bus

	state      State
	fullScreen bool
	available  bool

	cameraFullscreen bool
	techFullscreen   bool
}

// New creates a Machine in the Snapped state. A nil bus gets a private one;
// a nil logger discards output.
func New(bus *event.Bus, logger *logging.Logger) *Machine {
	if bus == nil {
		bus = event.NewBus()
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Machine{
		logger: logger.WithComponent("viewstate"),
		bus:    bus,
		state:  Snapped,
	}
}

// State returns the active state.
func (m *Machine) State() State { return m.state }

// CameraFullscreen reports whether the camera fullscreen flag is set.
func (m *Machine) CameraFullscreen() bool { return m.cameraFullscreen }

// TechFullscreen reports whether the tech fullscreen flag is set.
func (m *Machine) TechFullscreen() bool { return m.techFullscreen }

// FullScreen returns the last geometry input.
func (m *Machine) FullScreen() bool { return m.fullScreen }

// Available returns the last availability input.
func (m *Machine) Available() bool { return m.available }

// Evaluate records the inputs, clears both fullscreen flags and moves to the
// derived state.
func (m *Machine) Evaluate(fullScreen, sensorAvailable bool) State {
	m.fullScreen = fullScreen
	m.available = sensorAvailable
	m.cameraFullscreen = false
	m.techFullscreen = false
	m.set(Evaluate(fullScreen, sensorAvailable))
	return m.state
}

// Reset re-evaluates with the last inputs, leaving any fullscreen region.
func (m *Machine) Reset() State {
	return m.Evaluate(m.fullScreen, m.available)
}

// RequestCameraFullscreen toggles the camera region into fullscreen. Calling
// it while the camera is already fullscreen falls back to Evaluate.
func (m *Machine) RequestCameraFullscreen() State {
	if m.cameraFullscreen {
		return m.Reset()
	}
	m.cameraFullscreen = true
	m.techFullscreen = false
	m.set(CameraFullscreen)
	return m.state
}

// RequestTechFullscreen toggles the tech region into fullscreen. Calling it
// while the tech region is already fullscreen falls back to Evaluate.
func (m *Machine) RequestTechFullscreen() State {
	if m.techFullscreen {
		return m.Reset()
	}
	m.techFullscreen = true
	m.cameraFullscreen = false
	m.set(TechFullscreen)
	return m.state
}

// SetFullScreen feeds a geometry change. Losing fullscreen geometry always
// snaps, whatever region was fullscreen; a resize that stays fullscreen keeps
// the current state.
func (m *Machine) SetFullScreen(fullScreen bool) State {
	if fullScreen && m.fullScreen {
		return m.state
	}
	return m.Evaluate(fullScreen, m.available)
}

// SetAvailability feeds an availability change and reports whether the sensor
// went from unavailable to available.
func (m *Machine) SetAvailability(available bool) (becameAvailable bool) {
	becameAvailable = available && !m.available
	if available == m.available {
		return false
	}
	m.logger.Info("sensor availability changed", "available", available)
	m.Evaluate(m.fullScreen, available)
	return becameAvailable
}

func (m *Machine) set(next State) {
	if next == m.state {
		return
	}
	prev := m.state
	m.state = next
	m.logger.Info("view state changed", "from", prev.String(), "to", next.String())
	m.bus.Publish(event.NewViewStateChangedEvent(prev.String(), next.String()))
}
