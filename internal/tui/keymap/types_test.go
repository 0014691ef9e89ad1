package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeyBindingMatches(t *testing.T) {
	tests := []struct {
		name     string
		binding  KeyBinding
		msg      tea.KeyMsg
		expected bool
	}{
		{
			name:     "simple rune match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'm'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}},
			expected: true,
		},
		{
			name:     "simple rune mismatch",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'm'},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}},
			expected: false,
		},
		{
			name:     "special key match",
			binding:  KeyBinding{KeyType: tea.KeyLeft},
			msg:      tea.KeyMsg{Type: tea.KeyLeft},
			expected: true,
		},
		{
			name:     "special key mismatch",
			binding:  KeyBinding{KeyType: tea.KeyLeft},
			msg:      tea.KeyMsg{Type: tea.KeyRight},
			expected: false,
		},
		{
			name:     "space key",
			binding:  KeyBinding{KeyType: tea.KeySpace},
			msg:      tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
			expected: true,
		},
		{
			name:     "alt modifier match",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true},
			expected: true,
		},
		{
			name:     "alt modifier mismatch - binding wants alt",
			binding:  KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}},
			expected: false,
		},
		{
			name:     "catch-all rune",
			binding:  KeyBinding{KeyType: tea.KeyRunes},
			msg:      tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}},
			expected: true,
		},
		{
			name:     "catch-all rune ignores special keys",
			binding:  KeyBinding{KeyType: tea.KeyRunes},
			msg:      tea.KeyMsg{Type: tea.KeyEnter},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.msg); got != tt.expected {
				t.Errorf("Matches() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestKeyBindingString(t *testing.T) {
	tests := []struct {
		binding KeyBinding
		want    string
	}{
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'n'}, "n"},
		{KeyBinding{KeyType: tea.KeySpace}, "space"},
		{KeyBinding{KeyType: tea.KeyEnter}, "enter"},
		{KeyBinding{KeyType: tea.KeyRunes, Rune: 'x', Modifiers: ModAlt}, "alt+x"},
		{KeyBinding{KeyType: tea.KeyRunes}, "any"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.binding.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		mode Mode
		want Command
	}{
		{"n steps camera back", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, ModeNormal, CmdCameraPrev},
		{"m steps camera forward", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, ModeNormal, CmdCameraNext},
		{"left steps tech back", tea.KeyMsg{Type: tea.KeyLeft}, ModeNormal, CmdTechPrev},
		{"right steps tech forward", tea.KeyMsg{Type: tea.KeyRight}, ModeNormal, CmdTechNext},
		{"enter toggles tech fullscreen", tea.KeyMsg{Type: tea.KeyEnter}, ModeNormal, CmdTechFullscreen},
		{"space toggles camera fullscreen", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ModeNormal, CmdCameraFullscreen},
		{"digit selects panel", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}, ModeNormal, CmdJumpToPanel},
		{"d resets view", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, ModeNormal, CmdDefaultView},
		{"slash enters jump", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}}, ModeNormal, CmdEnterJumpMode},
		{"question opens help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}}, ModeNormal, CmdToggleHelp},
		{"q quits", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ModeNormal, CmdQuit},
		{"enter confirms jump", tea.KeyMsg{Type: tea.KeyEnter}, ModeJump, CmdJumpConfirm},
		{"esc cancels jump", tea.KeyMsg{Type: tea.KeyEsc}, ModeJump, CmdJumpCancel},
		{"q closes help", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ModeHelp, CmdCloseHelp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.GetBinding(tt.msg, tt.mode)
			if !ok {
				t.Fatalf("GetBinding() found nothing for %v in %s", tt.msg, tt.mode)
			}
			if got != tt.want {
				t.Errorf("GetBinding() = %q, want %q", got, tt.want)
			}
		})
	}

	if _, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}}, ModeNormal); ok {
		t.Error("z should not be bound in normal mode")
	}
	if _, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyEnter}, Mode("bogus")); ok {
		t.Error("unknown mode should have no bindings")
	}
}

func TestDefaultKeymap_CommandsAreKnown(t *testing.T) {
	km := DefaultKeymap()
	for _, mode := range Modes() {
		known := make(map[Command]bool)
		for _, c := range Commands(mode) {
			known[c] = true
		}
		for _, b := range km.GetModeBindings(mode) {
			if !known[b.Command] {
				t.Errorf("%s binding %s uses unknown command %q", mode, b, b.Command)
			}
			if b.Description == "" {
				t.Errorf("%s binding %s has no description", mode, b)
			}
		}
	}
}

func TestKeysFor(t *testing.T) {
	km := DefaultKeymap()
	if got := km.KeysFor(CmdCameraFullscreen, ModeNormal); got != "space" {
		t.Errorf("KeysFor(camera fullscreen) = %q, want %q", got, "space")
	}
	if got := km.KeysFor(CmdTechPrev, ModeNormal); !strings.HasPrefix(got, "left/h") {
		t.Errorf("KeysFor(tech prev) = %q, want prefix %q", got, "left/h")
	}
}

func TestGetCategories(t *testing.T) {
	km := DefaultKeymap()
	got := km.GetCategories(ModeNormal)
	want := []string{"Camera", "Panels", "View", "Modes", "Application"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("GetCategories() = %v, want %v", got, want)
	}
	byCat := km.GetBindingsByCategory(ModeNormal)
	if len(byCat["Camera"]) != 3 {
		t.Errorf("Camera bindings = %d, want 3", len(byCat["Camera"]))
	}
}

func TestParseKeySpec(t *testing.T) {
	tests := []struct {
		spec     string
		keyType  tea.KeyType
		r        rune
		mods     Modifier
		hasError bool
	}{
		{spec: "j", keyType: tea.KeyRunes, r: 'j'},
		{spec: "enter", keyType: tea.KeyEnter},
		{spec: "space", keyType: tea.KeySpace},
		{spec: "left", keyType: tea.KeyLeft},
		{spec: "ctrl+c", keyType: tea.KeyCtrlC},
		{spec: "shift+tab", keyType: tea.KeyShiftTab},
		{spec: "alt+x", keyType: tea.KeyRunes, r: 'x', mods: ModAlt},
		{spec: "é", keyType: tea.KeyRunes, r: 'é'},
		{spec: "notakey", hasError: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			keyType, r, mods, err := ParseKeySpec(tt.spec)
			if tt.hasError {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if keyType != tt.keyType || r != tt.r || mods != tt.mods {
				t.Errorf("ParseKeySpec(%q) = (%v, %q, %v), want (%v, %q, %v)",
					tt.spec, keyType, r, mods, tt.keyType, tt.r, tt.mods)
			}
		})
	}
}

func TestParse_Overrides(t *testing.T) {
	doc := `
name: custom
modes:
  normal:
    - key: x
      command: camera_next
    - key: "."
      command: camera_next
`
	km, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if km.Name != "custom" {
		t.Errorf("Name = %q, want custom", km.Name)
	}

	for _, r := range []rune{'x', '.'} {
		got, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}, ModeNormal)
		if !ok || got != CmdCameraNext {
			t.Errorf("%q = (%q, %v), want camera_next", r, got, ok)
		}
	}
	// The old binding for the overridden command is gone.
	if got, ok := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'m'}}, ModeNormal); ok {
		t.Errorf("m should be unbound after override, got %q", got)
	}
	// Untouched commands keep their defaults.
	if got, _ := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}}, ModeNormal); got != CmdCameraPrev {
		t.Errorf("n = %q, want camera_prev", got)
	}
	// Help text is inherited.
	for _, b := range km.GetBindingsForCommand(CmdCameraNext, ModeNormal) {
		if b.Description != "Next camera mode" || b.Category != "Camera" {
			t.Errorf("override %s lost help text: %+v", b, b)
		}
	}
	if n := len(km.GetBindingsForCommand(CmdCameraNext, ModeNormal)); n != 2 {
		t.Errorf("camera_next bindings = %d, want 2", n)
	}
}

func TestParse_OverrideShadowsDefaultKey(t *testing.T) {
	// Rebinding q to the help toggle must beat the default quit binding.
	km, err := Parse([]byte("modes:\n  normal:\n    - key: q\n      command: toggle_help\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got, _ := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, ModeNormal)
	if got != CmdToggleHelp {
		t.Errorf("q = %q, want toggle_help", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown mode", "modes:\n  insert:\n    - key: x\n      command: quit\n", "unknown keymap mode"},
		{"unknown command", "modes:\n  normal:\n    - key: x\n      command: fly\n", "unknown command"},
		{"command in wrong mode", "modes:\n  jump:\n    - key: x\n      command: camera_next\n", "unknown command"},
		{"bad key", "modes:\n  normal:\n    - key: hyper+x\n      command: quit\n", "unrecognized key spec"},
		{"unknown field", "colour: red\n", "parse keymap"},
		{"unknown parent", "extends: vim\n", "extends unknown keymap"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.yaml")
	if err := os.WriteFile(path, []byte("extends: default\nmodes:\n  help:\n    - key: x\n      command: close_help\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	km, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if got, _ := km.GetBinding(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, ModeHelp); got != CmdCloseHelp {
		t.Errorf("x = %q, want close_help", got)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile() of a missing file should fail")
	}
}
