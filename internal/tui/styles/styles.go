// Package styles holds the lipgloss styles of the shell, built from a named
// color palette.
package styles

import "github.com/charmbracelet/lipgloss"

// Styles is the full set of styles for one theme.
type Styles struct {
	Palette *ColorPalette

	// Slot frames
	Slot       lipgloss.Style // camera and tech slots
	SlotActive lipgloss.Style // the slot a fullscreen request targets
	Thumbnail  lipgloss.Style
	ThumbLive  lipgloss.Style // thumbnail highlighted by the jump prompt

	// Text
	Title       lipgloss.Style
	Description lipgloss.Style
	Muted       lipgloss.Style
	Notice      lipgloss.Style // NoSensor / Snapped banner
	Error       lipgloss.Style

	// Chrome
	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpText  lipgloss.Style
	Overlay   lipgloss.Style
	Prompt    lipgloss.Style
	Match     lipgloss.Style
}

// New builds the styles for theme. Unknown themes get the default palette.
func New(theme string) *Styles {
	p := GetPalette(ThemeName(theme))

	return &Styles{
		Palette: p,

		Slot: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Border),

		SlotActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary),

		Thumbnail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Foreground(p.Muted),

		ThumbLive: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Secondary).
			Foreground(p.Text),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Description: lipgloss.NewStyle().
			Foreground(p.Muted).
			Italic(true),

		Muted: lipgloss.NewStyle().Foreground(p.Muted),

		Notice: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Warning).
			Padding(1, 2),

		Error: lipgloss.NewStyle().Foreground(p.Error),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Text).
			Background(p.Surface).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Secondary),

		HelpText: lipgloss.NewStyle().Foreground(p.Muted),

		Overlay: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.Primary),

		Match: lipgloss.NewStyle().
			Underline(true).
			Foreground(p.Secondary),
	}
}
