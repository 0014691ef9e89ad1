package viewstate

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Iron-Ham/evolution/internal/event"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		fullScreen, available bool
		want                  State
	}{
		{false, false, Snapped},
		{false, true, Snapped},
		{true, false, NoSensor},
		{true, true, Default},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.fullScreen, tt.available); got != tt.want {
			t.Errorf("Evaluate(%v, %v) = %v, want %v", tt.fullScreen, tt.available, got, tt.want)
		}
	}
}

func TestMachine_InitialSnapped(t *testing.T) {
	m := New(nil, nil)
	if m.State() != Snapped {
		t.Errorf("initial State() = %v, want Snapped", m.State())
	}
}

func TestMachine_NotFullScreenAlwaysSnaps(t *testing.T) {
	setups := map[string]func(m *Machine){
		"from default":           func(m *Machine) { m.Evaluate(true, true) },
		"from no sensor":         func(m *Machine) { m.Evaluate(true, false) },
		"from camera fullscreen": func(m *Machine) { m.Evaluate(true, true); m.RequestCameraFullscreen() },
		"from tech fullscreen":   func(m *Machine) { m.Evaluate(true, true); m.RequestTechFullscreen() },
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			for _, available := range []bool{false, true} {
				m := New(nil, nil)
				setup(m)
				if got := m.Evaluate(false, available); got != Snapped {
					t.Errorf("Evaluate(false, %v) = %v, want Snapped", available, got)
				}
				if m.CameraFullscreen() || m.TechFullscreen() {
					t.Error("fullscreen flag survived a snap")
				}
			}
		})
	}
}

func TestMachine_CameraThenTechFullscreen(t *testing.T) {
	m := New(nil, nil)
	m.Evaluate(true, true)

	if got := m.RequestCameraFullscreen(); got != CameraFullscreen {
		t.Fatalf("RequestCameraFullscreen() = %v", got)
	}
	if got := m.RequestTechFullscreen(); got != TechFullscreen {
		t.Fatalf("RequestTechFullscreen() = %v", got)
	}
	if m.CameraFullscreen() {
		t.Error("camera flag should be cleared")
	}
	if !m.TechFullscreen() {
		t.Error("tech flag should be set")
	}
}

func TestMachine_ToggleFallsBackToEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		available bool
		request   func(m *Machine) State
		want      State
	}{
		{"camera with sensor", true, (*Machine).RequestCameraFullscreen, Default},
		{"camera without sensor", false, (*Machine).RequestCameraFullscreen, NoSensor},
		{"tech with sensor", true, (*Machine).RequestTechFullscreen, Default},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(nil, nil)
			m.Evaluate(true, tt.available)
			tt.request(m)
			if got := tt.request(m); got != tt.want {
				t.Errorf("second request = %v, want %v", got, tt.want)
			}
			if m.CameraFullscreen() || m.TechFullscreen() {
				t.Error("flags should be cleared after toggling off")
			}
		})
	}
}

func TestMachine_Reset(t *testing.T) {
	m := New(nil, nil)
	m.Evaluate(true, true)
	m.RequestTechFullscreen()
	if got := m.Reset(); got != Default {
		t.Errorf("Reset() = %v, want Default", got)
	}
}

func TestMachine_SetFullScreen(t *testing.T) {
	m := New(nil, nil)
	m.SetAvailability(true)
	if m.State() != Snapped {
		t.Fatalf("availability alone should not leave Snapped, got %v", m.State())
	}
	if got := m.SetFullScreen(true); got != Default {
		t.Fatalf("SetFullScreen(true) = %v, want Default", got)
	}

	m.RequestCameraFullscreen()
	if got := m.SetFullScreen(true); got != CameraFullscreen {
		t.Errorf("resize within fullscreen = %v, want CameraFullscreen kept", got)
	}
	if got := m.SetFullScreen(false); got != Snapped {
		t.Errorf("SetFullScreen(false) = %v, want Snapped", got)
	}
	if m.CameraFullscreen() {
		t.Error("snap should clear the camera flag")
	}
}

func TestMachine_SetAvailability(t *testing.T) {
	m := New(nil, nil)
	m.SetFullScreen(true)
	if m.State() != NoSensor {
		t.Fatalf("State() = %v, want NoSensor", m.State())
	}

	if !m.SetAvailability(true) {
		t.Error("false->true should report becameAvailable")
	}
	if m.State() != Default {
		t.Errorf("State() = %v, want Default", m.State())
	}
	if m.SetAvailability(true) {
		t.Error("true->true should not report becameAvailable")
	}
	if m.SetAvailability(false) {
		t.Error("true->false should not report becameAvailable")
	}
	if m.State() != NoSensor {
		t.Errorf("State() = %v, want NoSensor", m.State())
	}
}

func TestMachine_PublishesChanges(t *testing.T) {
	bus := event.NewBus()
	var got []string
	bus.Subscribe(event.TypeViewStateChanged, func(e event.Event) {
		ev := e.(event.ViewStateChangedEvent)
		got = append(got, ev.Previous+"->"+ev.Current)
	})

	m := New(bus, nil)
	m.Evaluate(false, false) // unchanged, silent
	m.Evaluate(true, false)
	m.SetAvailability(true)
	m.RequestCameraFullscreen()
	m.RequestTechFullscreen()
	m.RequestTechFullscreen()

	want := []string{
		"Snapped->NoSensor",
		"NoSensor->Default",
		"Default->CameraFullscreen",
		"CameraFullscreen->TechFullscreen",
		"TechFullscreen->Default",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("transitions mismatch (-want +got):\n%s", diff)
	}
}

func TestState_String(t *testing.T) {
	for s, want := range map[State]string{
		Snapped:          "Snapped",
		Default:          "Default",
		NoSensor:         "NoSensor",
		CameraFullscreen: "CameraFullscreen",
		TechFullscreen:   "TechFullscreen",
		State(9):         "State(9)",
	} {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
	if !TechFullscreen.IsFullscreen() || Default.IsFullscreen() {
		t.Error("IsFullscreen mismatch")
	}
}
