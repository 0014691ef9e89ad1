package tui

import (
	"time"

	"github.com/Iron-Ham/evolution/internal/config"
	tea "github.com/charmbracelet/bubbletea"
)

// availabilityMsg carries a sensor availability flip from the session's
// goroutine into the Update loop.
type availabilityMsg struct {
	available bool
}

// configReloadedMsg carries the result of a config file change.
type configReloadedMsg struct {
	cfg *config.Config
	err error
}

// frameMsg redraws started surfaces.
type frameMsg time.Time

func frame(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
