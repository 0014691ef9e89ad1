// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declarative and mode-aware so the Update loop only has to map
// a key to a Command and dispatch on it.
package keymap

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal Mode = "normal" // Driving the shell
	ModeJump   Mode = "jump"   // Typing a panel title after /
	ModeHelp   Mode = "help"   // Help overlay is open
)

// Modes returns every mode in display order.
func Modes() []Mode {
	return []Mode{ModeNormal, ModeJump, ModeHelp}
}

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	// Camera slot
	CmdCameraPrev       Command = "camera_prev"
	CmdCameraNext       Command = "camera_next"
	CmdCameraFullscreen Command = "camera_fullscreen"

	// Tech slot
	CmdTechPrev       Command = "tech_prev"
	CmdTechNext       Command = "tech_next"
	CmdTechFullscreen Command = "tech_fullscreen"
	CmdJumpToPanel    Command = "jump_to_panel" // 1-9 keys

	// View
	CmdDefaultView Command = "default_view"

	// Mode entry
	CmdEnterJumpMode Command = "enter_jump_mode"
	CmdToggleHelp    Command = "toggle_help"

	// Exit
	CmdQuit Command = "quit"
)

// Jump mode commands
const (
	CmdJumpConfirm Command = "jump_confirm"
	CmdJumpCancel  Command = "jump_cancel"
	CmdJumpNext    Command = "jump_next_match"
	CmdJumpPrev    Command = "jump_prev_match"
)

// Help mode commands
const (
	CmdCloseHelp Command = "close_help"
	CmdHelpDown  Command = "help_down"
	CmdHelpUp    Command = "help_up"
)

// Commands returns every command a mode understands.
func Commands(mode Mode) []Command {
	switch mode {
	case ModeNormal:
		return []Command{
			CmdCameraPrev, CmdCameraNext, CmdCameraFullscreen,
			CmdTechPrev, CmdTechNext, CmdTechFullscreen, CmdJumpToPanel,
			CmdDefaultView, CmdEnterJumpMode, CmdToggleHelp, CmdQuit,
		}
	case ModeJump:
		return []Command{CmdJumpConfirm, CmdJumpCancel, CmdJumpNext, CmdJumpPrev}
	case ModeHelp:
		return []Command{CmdCloseHelp, CmdHelpDown, CmdHelpUp, CmdQuit}
	}
	return nil
}

// Modifier represents keyboard modifiers (Ctrl, Alt, Shift).
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << iota
	ModAlt
	ModShift
)

// String returns a human-readable representation of modifiers.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var s string
	if m&ModCtrl != 0 {
		s += "ctrl+"
	}
	if m&ModAlt != 0 {
		s += "alt+"
	}
	if m&ModShift != 0 {
		s += "shift+"
	}
	return s
}

// KeyBinding represents a single key binding configuration.
type KeyBinding struct {
	// KeyType is the primary key for this binding.
	// For special keys, use tea.KeyType constants (e.g., tea.KeyEnter).
	// For rune keys, use tea.KeyRunes and set Rune.
	KeyType tea.KeyType

	// Rune is the character for rune-based keys (when KeyType is tea.KeyRunes).
	Rune rune

	// Modifiers contains the modifier keys that must be pressed.
	Modifiers Modifier

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Description is a human-readable description for help display.
	Description string

	// Category groups related bindings together in help display.
	Category string
}

// Matches checks if a tea.KeyMsg matches this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	wantAlt := kb.Modifiers&ModAlt != 0
	if msg.Alt != wantAlt {
		return false
	}

	// For special keys (not runes), match the key type directly
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}

	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return false
	}

	// If Rune is 0, this is a catch-all binding for any rune
	if kb.Rune == 0 {
		return true
	}

	return msg.Runes[0] == kb.Rune
}

// String returns a human-readable representation of the key binding.
func (kb KeyBinding) String() string {
	prefix := kb.Modifiers.String()

	switch kb.KeyType {
	case tea.KeyRunes:
	case tea.KeySpace:
		return prefix + "space"
	default:
		return prefix + kb.KeyType.String()
	}

	switch kb.Rune {
	case 0:
		return prefix + "any"
	case ' ':
		return prefix + "space"
	default:
		return prefix + string(kb.Rune)
	}
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []KeyBinding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, binding := range mb.Bindings {
		if binding.Matches(msg) {
			return binding.Command, true
		}
	}
	return "", false
}

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap (e.g., "default").
	Name string

	// Description provides a human-readable description.
	Description string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// GetModeBindings returns all bindings for a specific mode.
func (km *Keymap) GetModeBindings(mode Mode) []KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb.Bindings
}

// GetBindingsForCommand returns all bindings that trigger a specific command.
func (km *Keymap) GetBindingsForCommand(cmd Command, mode Mode) []KeyBinding {
	var result []KeyBinding
	for _, binding := range km.GetModeBindings(mode) {
		if binding.Command == cmd {
			result = append(result, binding)
		}
	}
	return result
}

// KeysFor returns the keys bound to cmd joined with "/", e.g. "left/h".
func (km *Keymap) KeysFor(cmd Command, mode Mode) string {
	var keys []string
	for _, b := range km.GetBindingsForCommand(cmd, mode) {
		keys = append(keys, b.String())
	}
	return strings.Join(keys, "/")
}

// GetCategories returns all unique categories in a mode's bindings, in
// first-seen order.
func (km *Keymap) GetCategories(mode Mode) []string {
	seen := make(map[string]bool)
	var categories []string

	for _, binding := range km.GetModeBindings(mode) {
		if binding.Category != "" && !seen[binding.Category] {
			seen[binding.Category] = true
			categories = append(categories, binding.Category)
		}
	}
	return categories
}

// GetBindingsByCategory returns bindings grouped by category for a mode.
func (km *Keymap) GetBindingsByCategory(mode Mode) map[string][]KeyBinding {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}

	result := make(map[string][]KeyBinding)
	for _, binding := range mb.Bindings {
		cat := binding.Category
		if cat == "" {
			cat = "Other"
		}
		result[cat] = append(result[cat], binding)
	}
	return result
}

// ParseKeySpec parses a key specification string into KeyType, Rune, and Modifiers.
// Examples: "ctrl+r", "shift+tab", "j", "enter", "alt+left", "space"
func ParseKeySpec(spec string) (keyType tea.KeyType, r rune, mods Modifier, err error) {
	remaining := spec
	for {
		switch {
		case len(remaining) > 5 && remaining[:5] == "ctrl+":
			mods |= ModCtrl
			remaining = remaining[5:]
		case len(remaining) > 4 && remaining[:4] == "alt+":
			mods |= ModAlt
			remaining = remaining[4:]
		case len(remaining) > 6 && remaining[:6] == "shift+":
			mods |= ModShift
			remaining = remaining[6:]
		default:
			goto parseKey
		}
	}

parseKey:
	switch remaining {
	case "enter":
		return tea.KeyEnter, 0, mods, nil
	case "tab":
		if mods&ModShift != 0 {
			return tea.KeyShiftTab, 0, mods &^ ModShift, nil
		}
		return tea.KeyTab, 0, mods, nil
	case "esc", "escape":
		return tea.KeyEsc, 0, mods, nil
	case "space":
		return tea.KeySpace, 0, mods, nil
	case "backspace":
		return tea.KeyBackspace, 0, mods, nil
	case "up":
		return tea.KeyUp, 0, mods, nil
	case "down":
		return tea.KeyDown, 0, mods, nil
	case "left":
		return tea.KeyLeft, 0, mods, nil
	case "right":
		return tea.KeyRight, 0, mods, nil
	case "home":
		return tea.KeyHome, 0, mods, nil
	case "end":
		return tea.KeyEnd, 0, mods, nil
	case "pgup", "pageup":
		return tea.KeyPgUp, 0, mods, nil
	case "pgdown", "pagedown":
		return tea.KeyPgDown, 0, mods, nil
	}

	// ctrl+letter maps onto tea.KeyCtrlA..tea.KeyCtrlZ
	if mods&ModCtrl != 0 && len(remaining) == 1 {
		ch := remaining[0]
		if ch >= 'a' && ch <= 'z' {
			return tea.KeyCtrlA + tea.KeyType(ch-'a'), 0, mods &^ ModCtrl, nil
		}
	}

	if rs := []rune(remaining); len(rs) == 1 {
		return tea.KeyRunes, rs[0], mods, nil
	}

	return 0, 0, 0, fmt.Errorf("unrecognized key spec: %s", spec)
}
