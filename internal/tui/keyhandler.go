package tui

import (
	"github.com/Iron-Ham/evolution/internal/navigation"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKey maps a key to a command in the current mode and runs it.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	command, ok := m.keymap.GetBinding(msg, m.mode)

	switch m.mode {
	case keymap.ModeJump:
		if !ok {
			return m, m.jump.update(msg, m.titles())
		}
		return m.executeJump(command)

	case keymap.ModeHelp:
		if !ok {
			return m, nil
		}
		return m.executeHelp(command)
	}

	m.status = ""
	if !ok {
		return m, nil
	}
	return m.executeNormal(command, msg)
}

func (m *Model) executeNormal(command keymap.Command, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch command {
	case keymap.CmdCameraPrev:
		m.ctrl.CycleCameraMode(navigation.Backward)
	case keymap.CmdCameraNext:
		m.ctrl.CycleCameraMode(navigation.Forward)
	case keymap.CmdCameraFullscreen:
		m.ctrl.RequestCameraFullscreen()

	case keymap.CmdTechPrev:
		m.report("cycle tech", m.ctrl.CycleTechSelection(navigation.Backward))
	case keymap.CmdTechNext:
		m.report("cycle tech", m.ctrl.CycleTechSelection(navigation.Forward))
	case keymap.CmdTechFullscreen:
		m.ctrl.RequestTechFullscreen()
	case keymap.CmdJumpToPanel:
		if len(msg.Runes) > 0 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			m.report("select tech", m.ctrl.SelectTech(int(msg.Runes[0]-'1')))
		}

	case keymap.CmdDefaultView:
		m.ctrl.ResetToDefaultView()

	case keymap.CmdEnterJumpMode:
		m.mode = keymap.ModeJump
		return m, m.jump.open(m.titles())
	case keymap.CmdToggleHelp:
		m.mode = keymap.ModeHelp
		m.help.offset = 0
		m.help.render(m.keymap, m.width)

	case keymap.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) executeJump(command keymap.Command) (tea.Model, tea.Cmd) {
	switch command {
	case keymap.CmdJumpNext:
		m.jump.move(1)
		return m, nil
	case keymap.CmdJumpPrev:
		m.jump.move(-1)
		return m, nil
	case keymap.CmdJumpConfirm:
		if i, ok := m.jump.selected(); ok {
			m.report("jump", m.ctrl.SelectTech(i))
		} else {
			m.status = msgNoMatch
		}
	}
	m.jump.close()
	m.mode = keymap.ModeNormal
	return m, nil
}

func (m *Model) executeHelp(command keymap.Command) (tea.Model, tea.Cmd) {
	visible := m.height - statusBarHeight - 2
	switch command {
	case keymap.CmdHelpDown:
		m.help.scroll(1, visible)
	case keymap.CmdHelpUp:
		m.help.scroll(-1, visible)
	case keymap.CmdCloseHelp:
		m.mode = keymap.ModeNormal
	case keymap.CmdQuit:
		return m, tea.Quit
	}
	return m, nil
}

// handleMouse maps a left click onto the slot under the pointer: the camera
// steps its mode, the tech slot steps to the next panel and a thumbnail is
// picked into the tech slot.
func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != keymap.ModeNormal {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	layout := m.ctrl.Layout()
	z := computeZones(m.width, m.height, m.ctrl.State(), len(layout.Thumbnails), m.thumbWidth)

	switch {
	case z.camera.contains(msg.X, msg.Y):
		m.ctrl.CycleCameraMode(navigation.Forward)
	case z.tech.contains(msg.X, msg.Y):
		m.report("cycle tech", m.ctrl.CycleTechSelection(navigation.Forward))
	default:
		for i, r := range z.thumbs {
			if !r.contains(msg.X, msg.Y) {
				continue
			}
			id := layout.Thumbnails[i].ID()
			for idx, p := range m.ctrl.Panels() {
				if p.ID() == id {
					m.report("pick tech", m.ctrl.PickTech(idx))
					break
				}
			}
			break
		}
	}
	return m, nil
}
