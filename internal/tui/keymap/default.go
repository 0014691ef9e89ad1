package keymap

import tea "github.com/charmbracelet/bubbletea"

// DefaultKeymap returns the built-in key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default Evolution key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeJump:   defaultJumpBindings(),
			ModeHelp:   defaultHelpBindings(),
		},
	}
}

func defaultNormalBindings() *ModeBindings {
	bindings := []KeyBinding{
		// Camera
		{KeyType: tea.KeyRunes, Rune: 'n', Command: CmdCameraPrev, Description: "Previous camera mode", Category: "Camera"},
		{KeyType: tea.KeyRunes, Rune: 'm', Command: CmdCameraNext, Description: "Next camera mode", Category: "Camera"},
		{KeyType: tea.KeySpace, Command: CmdCameraFullscreen, Description: "Toggle camera fullscreen", Category: "Camera"},

		// Tech panels
		{KeyType: tea.KeyLeft, Command: CmdTechPrev, Description: "Previous panel", Category: "Panels"},
		{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdTechPrev, Description: "Previous panel", Category: "Panels"},
		{KeyType: tea.KeyShiftTab, Command: CmdTechPrev, Description: "Previous panel", Category: "Panels"},
		{KeyType: tea.KeyRight, Command: CmdTechNext, Description: "Next panel", Category: "Panels"},
		{KeyType: tea.KeyRunes, Rune: 'l', Command: CmdTechNext, Description: "Next panel", Category: "Panels"},
		{KeyType: tea.KeyTab, Command: CmdTechNext, Description: "Next panel", Category: "Panels"},
		{KeyType: tea.KeyEnter, Command: CmdTechFullscreen, Description: "Toggle panel fullscreen", Category: "Panels"},
	}
	for r := '1'; r <= '9'; r++ {
		bindings = append(bindings, KeyBinding{
			KeyType:     tea.KeyRunes,
			Rune:        r,
			Command:     CmdJumpToPanel,
			Description: "Select panel " + string(r),
			Category:    "Panels",
		})
	}
	bindings = append(bindings,
		// View
		KeyBinding{KeyType: tea.KeyRunes, Rune: 'd', Command: CmdDefaultView, Description: "Back to default view", Category: "View"},
		KeyBinding{KeyType: tea.KeyEsc, Command: CmdDefaultView, Description: "Back to default view", Category: "View"},

		// Modes
		KeyBinding{KeyType: tea.KeyRunes, Rune: '/', Command: CmdEnterJumpMode, Description: "Jump to panel by name", Category: "Modes"},
		KeyBinding{KeyType: tea.KeyRunes, Rune: '?', Command: CmdToggleHelp, Description: "Toggle help", Category: "Modes"},

		// Exit
		KeyBinding{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "Quit", Category: "Application"},
		KeyBinding{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
	)
	return &ModeBindings{Mode: ModeNormal, Bindings: bindings}
}

func defaultJumpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeJump,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyEnter, Command: CmdJumpConfirm, Description: "Select best match", Category: "Jump"},
			{KeyType: tea.KeyEsc, Command: CmdJumpCancel, Description: "Cancel", Category: "Jump"},
			{KeyType: tea.KeyCtrlC, Command: CmdJumpCancel, Description: "Cancel", Category: "Jump"},
			{KeyType: tea.KeyDown, Command: CmdJumpNext, Description: "Next match", Category: "Jump"},
			{KeyType: tea.KeyTab, Command: CmdJumpNext, Description: "Next match", Category: "Jump"},
			{KeyType: tea.KeyUp, Command: CmdJumpPrev, Description: "Previous match", Category: "Jump"},
			{KeyType: tea.KeyShiftTab, Command: CmdJumpPrev, Description: "Previous match", Category: "Jump"},
		},
	}
}

func defaultHelpBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeHelp,
		Bindings: []KeyBinding{
			{KeyType: tea.KeyRunes, Rune: '?', Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyEsc, Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdCloseHelp, Description: "Close help", Category: "Help"},
			{KeyType: tea.KeyDown, Command: CmdHelpDown, Description: "Scroll down", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdHelpDown, Description: "Scroll down", Category: "Help"},
			{KeyType: tea.KeyUp, Command: CmdHelpUp, Description: "Scroll up", Category: "Help"},
			{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdHelpUp, Description: "Scroll up", Category: "Help"},
			{KeyType: tea.KeyCtrlC, Command: CmdQuit, Description: "Quit", Category: "Application"},
		},
	}
}
