package tui

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/evolution/internal/panel"
	"github.com/Iron-Ham/evolution/internal/shell"
	"github.com/Iron-Ham/evolution/internal/surface"
	"github.com/Iron-Ham/evolution/internal/tui/keymap"
	"github.com/Iron-Ham/evolution/internal/viewstate"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const ellipsis = "…"

// View renders the UI
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	contentH := m.height - statusBarHeight
	state := m.ctrl.State()

	var body string
	switch {
	case m.mode == keymap.ModeHelp:
		body = m.viewHelp(contentH)
	case state == viewstate.Snapped:
		body = m.viewNotice(text(msgFullScreen), contentH)
	case state == viewstate.NoSensor:
		body = m.viewNotice(m.spinner.View()+" "+text(msgNoSensor), contentH)
	default:
		layout := m.ctrl.Layout()
		z := computeZones(m.width, m.height, state, len(layout.Thumbnails), m.thumbWidth)
		body = m.viewSlots(state, layout, z)
	}

	body = lipgloss.NewStyle().Height(contentH).MaxHeight(contentH).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, body, m.viewStatusBar(state))
}

func (m *Model) viewNotice(msg string, height int) string {
	notice := m.styles.Notice.Width(min(m.width, 64)).Render(msg)
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, notice)
}

func (m *Model) viewHelp(height int) string {
	m.help.render(m.keymap, m.width)
	visible := height - 2
	m.help.scroll(0, visible)
	content := strings.Join(m.help.window(visible), "\n")
	return m.styles.Overlay.
		Width(max(m.width-2, 1)).
		MaxHeight(height).
		Render(content)
}

func (m *Model) viewSlots(state viewstate.State, layout shell.Layout, z zones) string {
	switch state {
	case viewstate.CameraFullscreen:
		return m.viewCamera(layout.Camera, z.camera, m.styles.SlotActive)
	case viewstate.TechFullscreen:
		return m.viewTech(layout.Tech, z.tech, m.styles.SlotActive)
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.viewCamera(layout.Camera, z.camera, m.styles.Slot),
		m.viewTech(layout.Tech, z.tech, m.styles.Slot),
	)
	strip := lipgloss.NewStyle().
		Height(thumbnailHeight).
		Render(m.viewThumbnails(layout.Thumbnails, z.thumbs))
	return lipgloss.JoinVertical(lipgloss.Left, top, strip)
}

// box draws content inside a bordered style sized to exactly r.
func box(style lipgloss.Style, r rect, content string) string {
	if r.w < 3 || r.h < 3 {
		return ""
	}
	return style.
		Width(r.w - 2).
		Height(r.h - 2).
		MaxWidth(r.w).
		MaxHeight(r.h).
		Render(content)
}

func (m *Model) viewCamera(s surface.Surface, r rect, style lipgloss.Style) string {
	if r.empty() {
		return ""
	}
	innerW, innerH := r.w-2, r.h-2
	title := m.styles.Title.Render(ansi.Truncate("Camera · "+m.ctrl.CameraMode().String(), innerW, ellipsis))
	if s == nil {
		return box(style, r, title+"\n"+m.styles.Muted.Render("no camera"))
	}
	return box(style, r, title+"\n"+s.Render(innerW, max(innerH-1, 0)))
}

func (m *Model) viewTech(d *panel.Descriptor, r rect, style lipgloss.Style) string {
	if r.empty() {
		return ""
	}
	innerW, innerH := r.w-2, r.h-2
	if d == nil {
		return box(style, r, m.styles.Muted.Render("no panel selected"))
	}
	title := m.styles.Title.Render(ansi.Truncate(d.Title(), innerW, ellipsis))
	desc := m.styles.Description.Render(ansi.Truncate(d.Description(), innerW, ellipsis))
	return box(style, r, title+"\n"+desc+"\n"+d.Surface().Render(innerW, max(innerH-2, 0)))
}

func (m *Model) viewThumbnails(thumbs []*panel.Descriptor, rects []rect) string {
	highlighted := ""
	if m.mode == keymap.ModeJump {
		if i, ok := m.jump.selected(); ok {
			if p := m.ctrl.Panels(); i < len(p) {
				highlighted = p[i].ID()
			}
		}
	}

	tiles := make([]string, 0, len(rects))
	for i, r := range rects {
		d := thumbs[i]
		style := m.styles.Thumbnail
		if d.ID() == highlighted {
			style = m.styles.ThumbLive
		}
		innerW := r.w - 2
		title := ansi.Truncate(d.Title(), innerW, ellipsis)
		tiles = append(tiles, box(style, r, title+"\n"+d.Surface().Render(innerW, 1)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
}

func (m *Model) viewStatusBar(state viewstate.State) string {
	inner := max(m.width-2, 0)

	var left string
	switch {
	case m.mode == keymap.ModeJump:
		left = m.viewJumpPrompt()
	case m.status != "":
		left = text(m.status)
	default:
		left = state.String()
		if i := m.ctrl.SelectedIndex(); i >= 0 {
			if p := m.ctrl.Panels(); i < len(p) {
				left += " · " + p[i].Title()
			}
		}
		left += " · camera " + m.ctrl.CameraMode().String()
	}

	right := m.viewHints()
	line := ansi.Truncate(left, inner, ellipsis)
	if gap := inner - lipgloss.Width(line) - lipgloss.Width(right); gap >= 2 {
		line += strings.Repeat(" ", gap) + right
	}
	return m.styles.StatusBar.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m *Model) viewJumpPrompt() string {
	var b strings.Builder
	b.WriteString(m.jump.input.View())
	titles := m.titles()
	for n, idx := range m.jump.matches {
		if n == 4 {
			b.WriteString(" " + ellipsis)
			break
		}
		title := titles[idx]
		if n == m.jump.cursor {
			title = m.styles.Match.Render(title)
		}
		b.WriteString("  " + title)
	}
	return b.String()
}

func (m *Model) viewHints() string {
	key := func(cmd keymap.Command) string {
		if b := m.keymap.GetBindingsForCommand(cmd, keymap.ModeNormal); len(b) > 0 {
			return b[0].String()
		}
		return "?"
	}
	return fmt.Sprintf("%s/%s panels  %s/%s camera  %s help  %s quit",
		key(keymap.CmdTechPrev), key(keymap.CmdTechNext),
		key(keymap.CmdCameraPrev), key(keymap.CmdCameraNext),
		key(keymap.CmdToggleHelp), key(keymap.CmdQuit))
}
